package ir

import (
	"errors"
	"testing"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		k    Kind
		in   string
		want Value
	}{
		{KindByte, "5", Byte(5)},
		{KindWord, "0x10", Word(16)},
		{KindShort, "-7", Short(-7)},
		{KindDword64, "18446744073709551615", Dword64(18446744073709551615)},
		{KindFloat, "1.5", Float(1.5)},
		{KindDouble, "-2.25", Double(-2.25)},
		{KindCExoStr, "hello", CExoStr("hello")},
		{KindCExoStr, `"a\tb"`, CExoStr("a\tb")},
		{KindResRef, "nw_it_torch001", ResRef("nw_it_torch001")},
	}
	for _, tt := range tests {
		got, err := ParseValue(tt.k, tt.in)
		if err != nil {
			t.Errorf("ParseValue(%s, %q): %v", tt.k, tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseValue(%s, %q) = %#v, want %#v", tt.k, tt.in, got, tt.want)
		}
	}
	bad := []struct {
		k  Kind
		in string
	}{
		{KindByte, "300"},
		{KindByte, "-1"},
		{KindInt, "x"},
		{KindResRef, "abcdefghijklmnopq"},
		{KindStruct, "1"},
		{KindVoid, "zz"},
	}
	for _, tt := range bad {
		if _, err := ParseValue(tt.k, tt.in); !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("ParseValue(%s, %q): got %v, want type mismatch", tt.k, tt.in, err)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Short(-3), "-3"},
		{Float(0.1), "0.1"},
		{CExoStr("a b"), `"a b"`},
		{Void{0xde, 0xad}, "dead"},
		{LocString{1: "Hallo", 0: "Hi"}, `{0="Hi" 1="Hallo"}`},
		{&List{NewStruct(0)}, "[1]"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.v); got != tt.want {
			t.Errorf("FormatValue(%#v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
