package ir

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
)

const (
	// ResRefMax is the resref length limit of the classic format.
	ResRefMax = 16
	// ExtendedResRefMax is the resref length limit of extended variants.
	ExtendedResRefMax = 32
	// LabelMax is the encoded length limit of a field label.
	LabelMax = 16
	// DefaultMaxDepth bounds struct nesting during validation, decoding
	// and encoding.
	DefaultMaxDepth = 256
)

type validOpts struct {
	resRefMax int
	maxDepth  int
}

// ValidOption configures value validation.
type ValidOption func(*validOpts)

// ResRefLimit sets the maximum resref length in bytes. n <= 0 leaves
// resref lengths unchecked, for callers that measure encoded bytes
// themselves.
func ResRefLimit(n int) ValidOption {
	return func(o *validOpts) { o.resRefMax = n }
}

// ExtendedResRefs allows resrefs up to ExtendedResRefMax bytes.
func ExtendedResRefs() ValidOption {
	return ResRefLimit(ExtendedResRefMax)
}

// MaxDepth bounds the struct nesting accepted by Validate.
func MaxDepth(n int) ValidOption {
	return func(o *validOpts) { o.maxDepth = n }
}

func newValidOpts(opts []ValidOption) *validOpts {
	o := &validOpts{resRefMax: ResRefMax, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ValidFor reports whether v is inside the value domain of kind k.
func ValidFor(v any, k Kind, opts ...ValidOption) bool {
	_, err := ValueFor(k, v, opts...)
	return err == nil
}

// ValueFor converts a Go value to the Value of kind k, failing with a
// TypeMismatch error if v is outside the kind's domain. Integer kinds
// accept any Go integer in range; float kinds accept floats; string
// kinds accept strings and byte slices; cexolocstr accepts LocString or
// maps from non-negative integers to strings.
func ValueFor(k Kind, v any, opts ...ValidOption) (Value, error) {
	o := newValidOpts(opts)
	return valueFor(k, v, o)
}

func valueFor(k Kind, v any, o *validOpts) (Value, error) {
	if !k.Valid() {
		return nil, NewError(PhaseValidate, UnknownFieldType).Detailf("kind %d", uint32(k))
	}
	if v == nil {
		return nil, typeMismatch(PhaseValidate, "nil is not a %s", k)
	}
	switch k {
	case KindByte, KindChar, KindWord, KindDword, KindDword64:
		n, ok := asInteger(v)
		if !ok {
			return nil, mismatch(v, k)
		}
		if n.neg || n.mag > unsignedMax(k) {
			return nil, typeMismatch(PhaseValidate, "%s out of range for %s", n, k)
		}
		switch k {
		case KindByte:
			return Byte(n.mag), nil
		case KindChar:
			return Char(n.mag), nil
		case KindWord:
			return Word(n.mag), nil
		case KindDword:
			return Dword(n.mag), nil
		default:
			return Dword64(n.mag), nil
		}
	case KindShort, KindInt, KindInt64:
		n, ok := asInteger(v)
		if !ok {
			return nil, mismatch(v, k)
		}
		lim := signedMax(k)
		if (n.neg && n.mag > lim+1) || (!n.neg && n.mag > lim) {
			return nil, typeMismatch(PhaseValidate, "%s out of range for %s", n, k)
		}
		i := n.int64()
		switch k {
		case KindShort:
			return Short(i), nil
		case KindInt:
			return Int(i), nil
		default:
			return Int64(i), nil
		}
	case KindFloat:
		f, ok := asFloat(v)
		if !ok {
			return nil, mismatch(v, k)
		}
		if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
			return nil, typeMismatch(PhaseValidate, "%g out of range for float", f)
		}
		return Float(f), nil
	case KindDouble:
		f, ok := asFloat(v)
		if !ok {
			return nil, mismatch(v, k)
		}
		return Double(f), nil
	case KindCExoStr:
		s, ok := asString(v)
		if !ok {
			return nil, mismatch(v, k)
		}
		return CExoStr(s), nil
	case KindResRef:
		s, ok := asString(v)
		if !ok {
			return nil, mismatch(v, k)
		}
		if o.resRefMax > 0 && (len(s) > o.resRefMax || len(s) > math.MaxUint8) {
			return nil, typeMismatch(PhaseValidate, "resref %q is %d bytes, limit %d", s, len(s), o.resRefMax)
		}
		return ResRef(s), nil
	case KindVoid:
		switch x := v.(type) {
		case Void:
			return Void(bytes.Clone(x)), nil
		case []byte:
			return Void(bytes.Clone(x)), nil
		case string:
			return Void(x), nil
		}
		return nil, mismatch(v, k)
	case KindCExoLocStr:
		return asLocString(v)
	case KindStruct:
		s, ok := v.(*Struct)
		if !ok || s == nil {
			return nil, mismatch(v, k)
		}
		return s, nil
	case KindList:
		var elems []*Struct
		switch x := v.(type) {
		case *List:
			if x == nil {
				return nil, mismatch(v, k)
			}
			elems = *x
		case List:
			elems = x
		case []*Struct:
			elems = x
		default:
			return nil, mismatch(v, k)
		}
		for i, e := range elems {
			if e == nil {
				return nil, typeMismatch(PhaseValidate, "list element %d is nil", i)
			}
		}
		l := List(elems)
		return &l, nil
	}
	return nil, mismatch(v, k)
}

func mismatch(v any, k Kind) *Error {
	return typeMismatch(PhaseValidate, "%T is not a %s", v, k)
}

// integer is a sign and magnitude, wide enough for every Go integer.
type integer struct {
	neg bool
	mag uint64
}

func (n integer) int64() int64 {
	if n.neg {
		return -int64(n.mag-1) - 1
	}
	return int64(n.mag)
}

func (n integer) String() string {
	if n.neg {
		return fmt.Sprintf("-%d", n.mag)
	}
	return fmt.Sprintf("%d", n.mag)
}

func fromSigned(i int64) integer {
	if i < 0 {
		return integer{neg: true, mag: uint64(-(i + 1)) + 1}
	}
	return integer{mag: uint64(i)}
}

func asInteger(v any) (integer, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fromSigned(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return integer{mag: rv.Uint()}, true
	}
	return integer{}, false
}

func unsignedMax(k Kind) uint64 {
	switch k {
	case KindByte, KindChar:
		return math.MaxUint8
	case KindWord:
		return math.MaxUint16
	case KindDword:
		return math.MaxUint32
	default:
		return math.MaxUint64
	}
}

func signedMax(k Kind) uint64 {
	switch k {
	case KindShort:
		return math.MaxInt16
	case KindInt:
		return math.MaxInt32
	default:
		return math.MaxInt64
	}
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case Float:
		return float64(x), true
	case Double:
		return float64(x), true
	}
	return 0, false
}

func asString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	case CExoStr:
		return string(x), true
	case ResRef:
		return string(x), true
	}
	return "", false
}

func asLocString(v any) (Value, error) {
	res := LocString{}
	switch x := v.(type) {
	case LocString:
		for lang, text := range x {
			res[lang] = text
		}
		return res, nil
	case map[uint32]string:
		for lang, text := range x {
			res[lang] = text
		}
		return res, nil
	case map[int]string:
		for lang, text := range x {
			if lang < 0 || uint64(lang) > math.MaxUint32 {
				return nil, typeMismatch(PhaseValidate, "language id %d out of range", lang)
			}
			res[uint32(lang)] = text
		}
		return res, nil
	}
	return nil, mismatch(v, KindCExoLocStr)
}

// Validate checks a whole tree before it is encoded: every label is
// non-empty, at most LabelMax bytes, free of NUL bytes and equal to
// its map key; every value is within its kind's domain; nesting stays
// within the depth limit and no struct contains itself.
func Validate(root *Struct, opts ...ValidOption) error {
	o := newValidOpts(opts)
	return validateStruct(root, "", 0, map[*Struct]bool{}, o)
}

func validateStruct(s *Struct, path string, depth int, active map[*Struct]bool, o *validOpts) error {
	if s == nil {
		return typeMismatch(PhaseValidate, "nil struct").WithPath(rootPath(path))
	}
	if depth > o.maxDepth {
		return NewError(PhaseValidate, OutOfBounds).WithPath(rootPath(path)).Detailf("maximum depth %d exceeded", o.maxDepth)
	}
	if active[s] {
		return typeMismatch(PhaseValidate, "struct contains itself").WithPath(rootPath(path))
	}
	active[s] = true
	defer delete(active, s)
	for _, label := range s.Labels() {
		f := s.Fields[label]
		fpath := path + "/" + label
		if err := validateLabel(label); err != nil {
			return err.WithPath(fpath)
		}
		if f == nil || f.Value == nil {
			return typeMismatch(PhaseValidate, "field has no value").WithPath(fpath)
		}
		if f.Label != label {
			return typeMismatch(PhaseValidate, "field label %q stored under %q", f.Label, label).WithPath(fpath)
		}
		switch x := f.Value.(type) {
		case *Struct:
			if err := validateStruct(x, fpath, depth+1, active, o); err != nil {
				return err
			}
		case *List:
			if x == nil {
				return typeMismatch(PhaseValidate, "nil list").WithPath(fpath)
			}
			for i, e := range *x {
				if err := validateStruct(e, fmt.Sprintf("%s[%d]", fpath, i), depth+1, active, o); err != nil {
					return err
				}
			}
		default:
			if _, err := valueFor(f.Kind(), f.Value, o); err != nil {
				return withPath(err, fpath)
			}
		}
	}
	return nil
}

func validateLabel(label string) *Error {
	switch {
	case label == "":
		return typeMismatch(PhaseValidate, "empty label")
	case len(label) > LabelMax:
		return typeMismatch(PhaseValidate, "label is %d bytes, limit %d", len(label), LabelMax).WithLabel(label)
	case strings.IndexByte(label, 0) >= 0:
		return typeMismatch(PhaseValidate, "label contains NUL").WithLabel(label)
	}
	return nil
}

func rootPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

func withLabel(err error, label string) error {
	var e *Error
	if errors.As(err, &e) && e.Label == "" {
		e.Label = label
	}
	return err
}

func withPath(err error, path string) error {
	var e *Error
	if errors.As(err, &e) && e.Path == "" {
		e.Path = path
	}
	return err
}
