package ir

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// FormatValue renders a leaf value the way ParseValue reads it back.
// Strings are quoted, void data is hex, structs and lists are
// summarized.
func FormatValue(v Value) string {
	switch x := v.(type) {
	case Byte, Char, Word, Short, Dword, Int, Dword64, Int64:
		return formatInteger(x)
	case Float:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case Double:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	case CExoStr:
		return strconv.Quote(string(x))
	case ResRef:
		return strconv.Quote(string(x))
	case Void:
		return hex.EncodeToString(x)
	case LocString:
		parts := make([]string, 0, len(x))
		for _, lang := range x.Languages() {
			parts = append(parts, strconv.FormatUint(uint64(lang), 10)+"="+strconv.Quote(x[lang]))
		}
		return "{" + strings.Join(parts, " ") + "}"
	case *Struct:
		return "struct " + strconv.FormatUint(uint64(x.StructID), 10)
	case *List:
		return "[" + strconv.Itoa(x.Len()) + "]"
	}
	return "<nil>"
}

func formatInteger(v Value) string {
	n, _ := asInteger(v)
	return n.String()
}

// ParseValue reads text as a value of kind k. Strings may be given
// bare or Go-quoted; void takes hex. Structs, lists and localized
// strings have no text form and fail with TypeMismatch.
func ParseValue(k Kind, text string, opts ...ValidOption) (Value, error) {
	switch k {
	case KindByte, KindChar, KindWord, KindDword, KindDword64:
		n, err := strconv.ParseUint(strings.TrimSpace(text), 0, 64)
		if err != nil {
			return nil, typeMismatch(PhaseValidate, "%q is not a %s", text, k).WithCause(err)
		}
		return ValueFor(k, n, opts...)
	case KindShort, KindInt, KindInt64:
		n, err := strconv.ParseInt(strings.TrimSpace(text), 0, 64)
		if err != nil {
			return nil, typeMismatch(PhaseValidate, "%q is not a %s", text, k).WithCause(err)
		}
		return ValueFor(k, n, opts...)
	case KindFloat, KindDouble:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, typeMismatch(PhaseValidate, "%q is not a %s", text, k).WithCause(err)
		}
		return ValueFor(k, f, opts...)
	case KindCExoStr, KindResRef:
		return ValueFor(k, unquote(text), opts...)
	case KindVoid:
		b, err := hex.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return nil, typeMismatch(PhaseValidate, "void takes hex").WithCause(err)
		}
		return Void(b), nil
	}
	if !k.Valid() {
		return nil, NewError(PhaseValidate, UnknownFieldType).Detailf("kind %d", uint32(k))
	}
	return nil, typeMismatch(PhaseValidate, "%s values have no text form", k)
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
	}
	return s
}
