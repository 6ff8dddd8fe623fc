package ir

import "fmt"

// Kind is the stored type code of a field, 0 through 15.
type Kind uint32

const (
	KindByte Kind = iota
	KindChar
	KindWord
	KindShort
	KindDword
	KindInt
	KindDword64
	KindInt64
	KindFloat
	KindDouble
	KindCExoStr
	KindResRef
	KindCExoLocStr
	KindVoid
	KindStruct
	KindList
)

var kindNames = [...]string{
	KindByte:       "byte",
	KindChar:       "char",
	KindWord:       "word",
	KindShort:      "short",
	KindDword:      "dword",
	KindInt:        "int",
	KindDword64:    "dword64",
	KindInt64:      "int64",
	KindFloat:      "float",
	KindDouble:     "double",
	KindCExoStr:    "cexostr",
	KindResRef:     "resref",
	KindCExoLocStr: "cexolocstr",
	KindVoid:       "void",
	KindStruct:     "struct",
	KindList:       "list",
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("<unknown kind %d>", uint32(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the 16 defined kinds.
func (k Kind) Valid() bool {
	return k <= KindList
}

// Inline reports whether values of kind k are stored directly in the
// 4-byte data slot of a field entry.
func (k Kind) Inline() bool {
	switch k {
	case KindByte, KindChar, KindWord, KindShort, KindDword, KindInt, KindFloat:
		return true
	default:
		return false
	}
}

// Complex reports whether k holds other nodes rather than a leaf value.
func (k Kind) Complex() bool {
	return k == KindStruct || k == KindList
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: kind %d", ErrUnknownFieldType, uint32(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, err := ParseKind(string(d))
	if err != nil {
		return err
	}
	*k = kk
	return nil
}

// ParseKind maps a kind name such as "cexolocstr" back to its Kind.
func ParseKind(v string) (Kind, error) {
	for i, name := range kindNames {
		if name == v {
			return Kind(i), nil
		}
	}
	return 0, NewError(PhaseValidate, UnknownFieldType).Detailf("unrecognized kind %q", v)
}

func Kinds() []Kind {
	res := make([]Kind, 0, len(kindNames))
	for i := range kindNames {
		res = append(res, Kind(i))
	}
	return res
}
