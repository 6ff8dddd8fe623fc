package ir

import (
	"errors"
	"testing"
)

func TestKindNames(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %d, want %d", k, got, k)
		}
	}
	if len(Kinds()) != 16 {
		t.Errorf("got %d kinds", len(Kinds()))
	}
	if _, err := ParseKind("bool"); !errors.Is(err, ErrUnknownFieldType) {
		t.Errorf("bool: got %v", err)
	}
	if got := Kind(16).String(); got != "<unknown kind 16>" {
		t.Errorf("got %q", got)
	}
}

func TestKindInline(t *testing.T) {
	inline := map[Kind]bool{
		KindByte: true, KindChar: true, KindWord: true, KindShort: true,
		KindDword: true, KindInt: true, KindFloat: true,
	}
	for _, k := range Kinds() {
		if k.Inline() != inline[k] {
			t.Errorf("%s.Inline() = %t", k, k.Inline())
		}
	}
}
