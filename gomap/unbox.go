package gomap

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/gff-format/ir"
)

// Unbox builds a document from its map form. Values are checked
// against their kinds as they are read, and the whole tree is validated
// with opts at the end.
func Unbox(m map[string]any, opts ...ir.ValidOption) (*ir.Document, error) {
	doc := &ir.Document{Version: ir.DefaultVersion}
	t, ok := m[DataTypeKey].(string)
	if !ok {
		return nil, unboxError("/", "missing or non-string %s", DataTypeKey)
	}
	doc.Type = t
	if v, ok := m[DataVersionKey]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, unboxError("/", "%s is %T, not a string", DataVersionKey, v)
		}
		doc.Version = s
	}
	root, err := unboxStruct(m, "", true, opts)
	if err != nil {
		return nil, err
	}
	if err := ir.Validate(root, opts...); err != nil {
		return nil, err
	}
	doc.Root = root
	return doc, nil
}

// UnboxStruct is Unbox for a struct without document metadata.
func UnboxStruct(m map[string]any, opts ...ir.ValidOption) (*ir.Struct, error) {
	s, err := unboxStruct(m, "", false, opts)
	if err != nil {
		return nil, err
	}
	if err := ir.Validate(s, opts...); err != nil {
		return nil, err
	}
	return s, nil
}

func unboxError(path, format string, args ...any) *ir.Error {
	return ir.NewError(ir.PhaseDecode, ir.TypeMismatch).WithPath(path).Detailf(format, args...)
}

func at(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

func unboxStruct(m map[string]any, path string, root bool, opts []ir.ValidOption) (*ir.Struct, error) {
	idv, ok := m[StructIDKey]
	if !ok {
		return nil, unboxError(at(path), "no %s", StructIDKey)
	}
	id, err := integer(idv)
	if err != nil {
		return nil, unboxError(at(path), "%s: %v", StructIDKey, err)
	}
	sid, err := ir.ValueFor(ir.KindDword, id)
	if err != nil {
		return nil, unboxError(at(path), "%s out of range", StructIDKey).WithCause(err)
	}
	s := ir.NewStruct(uint32(sid.(ir.Dword)))
	for label, fv := range m {
		if strings.HasPrefix(label, "__") {
			switch {
			case label == StructIDKey:
			case root && (label == DataTypeKey || label == DataVersionKey):
			default:
				return nil, unboxError(at(path), "unknown key %q", label)
			}
			continue
		}
		fm, ok := asMap(fv)
		if !ok {
			return nil, unboxError(path+"/"+label, "field is %T, not a map", fv)
		}
		f, err := unboxField(label, fm, path+"/"+label, opts)
		if err != nil {
			return nil, err
		}
		s.Put(f)
	}
	return s, nil
}

func unboxField(label string, m map[string]any, path string, opts []ir.ValidOption) (*ir.Field, error) {
	for key := range m {
		switch key {
		case TypeKey, ValueKey, StrRefKey:
		default:
			return nil, unboxError(path, "unknown field key %q", key)
		}
	}
	name, ok := m[TypeKey].(string)
	if !ok {
		return nil, unboxError(path, "missing or non-string %s", TypeKey)
	}
	k, err := ir.ParseKind(name)
	if err != nil {
		return nil, ir.NewError(ir.PhaseDecode, ir.UnknownFieldType).WithPath(path).WithCause(err).Detailf("%q", name)
	}
	raw, ok := m[ValueKey]
	if !ok {
		return nil, unboxError(path, "no %s", ValueKey)
	}
	v, err := unboxValue(k, raw, path, opts)
	if err != nil {
		return nil, err
	}
	f := ir.NewField(label, v)
	if ref, ok := m[StrRefKey]; ok {
		if k != ir.KindCExoLocStr {
			return nil, unboxError(path, "%s on a %s field", StrRefKey, k)
		}
		n, err := integer(ref)
		if err != nil {
			return nil, unboxError(path, "%s: %v", StrRefKey, err)
		}
		rv, err := ir.ValueFor(ir.KindDword, n)
		if err != nil {
			return nil, unboxError(path, "%s out of range", StrRefKey).WithCause(err)
		}
		f.StrRef = uint32(rv.(ir.Dword))
	}
	return f, nil
}

func unboxValue(k ir.Kind, raw any, path string, opts []ir.ValidOption) (ir.Value, error) {
	switch k {
	case ir.KindByte, ir.KindChar, ir.KindWord, ir.KindDword, ir.KindDword64,
		ir.KindShort, ir.KindInt, ir.KindInt64:
		n, err := integer(raw)
		if err != nil {
			return nil, unboxError(path, "%s: %v", k, err)
		}
		return valueAt(k, n, path, opts)
	case ir.KindFloat, ir.KindDouble:
		f, err := float(raw)
		if err != nil {
			return nil, unboxError(path, "%s: %v", k, err)
		}
		return valueAt(k, f, path, opts)
	case ir.KindCExoStr, ir.KindResRef:
		s, ok := raw.(string)
		if !ok {
			return nil, unboxError(path, "%T is not a %s", raw, k)
		}
		return valueAt(k, s, path, opts)
	case ir.KindVoid:
		s, ok := raw.(string)
		if !ok {
			return nil, unboxError(path, "void takes a hex string, got %T", raw)
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, unboxError(path, "void takes a hex string").WithCause(err)
		}
		return ir.Void(b), nil
	case ir.KindCExoLocStr:
		m, ok := asMap(raw)
		if !ok {
			return nil, unboxError(path, "%T is not a language map", raw)
		}
		res := ir.LocString{}
		for key, tv := range m {
			lang, err := strconv.ParseUint(key, 10, 32)
			if err != nil {
				return nil, unboxError(path, "language id %q", key)
			}
			text, ok := tv.(string)
			if !ok {
				return nil, unboxError(path+"/"+key, "%T is not text", tv)
			}
			res[uint32(lang)] = text
		}
		return res, nil
	case ir.KindStruct:
		m, ok := asMap(raw)
		if !ok {
			return nil, unboxError(path, "%T is not a struct map", raw)
		}
		return unboxStruct(m, path, false, opts)
	case ir.KindList:
		elems, ok := raw.([]any)
		if !ok {
			return nil, unboxError(path, "%T is not a list", raw)
		}
		l := ir.List{}
		for i, ev := range elems {
			epath := path + "[" + strconv.Itoa(i) + "]"
			m, ok := asMap(ev)
			if !ok {
				return nil, unboxError(epath, "%T is not a struct map", ev)
			}
			s, err := unboxStruct(m, epath, false, opts)
			if err != nil {
				return nil, err
			}
			l = append(l, s)
		}
		return &l, nil
	}
	return nil, ir.NewError(ir.PhaseDecode, ir.UnknownFieldType).WithPath(path).Detailf("kind %d", uint32(k))
}

func valueAt(k ir.Kind, v any, path string, opts []ir.ValidOption) (ir.Value, error) {
	res, err := ir.ValueFor(k, v, opts...)
	if err != nil {
		var e *ir.Error
		if errors.As(err, &e) && e.Path == "" {
			e.Path = path
		}
		return nil, err
	}
	return res, nil
}

// asMap accepts the map shapes JSON and YAML decoders produce.
func asMap(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case map[string]any:
		return x, true
	case map[any]any:
		res := make(map[string]any, len(x))
		for k, v := range x {
			res[fmt.Sprint(k)] = v
		}
		return res, true
	}
	return nil, false
}

// integer normalizes the integer representations of the decoders.
// Integral floats are accepted since plain JSON decodes every number as
// float64.
func integer(v any) (any, error) {
	switch x := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return x, nil
	case json.Number:
		if i, err := strconv.ParseInt(x.String(), 10, 64); err == nil {
			return i, nil
		}
		u, err := strconv.ParseUint(x.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s is not an integer", x)
		}
		return u, nil
	case float64:
		if x != math.Trunc(x) || math.Abs(x) > 1<<53 {
			return nil, fmt.Errorf("%g is not an integer", x)
		}
		return int64(x), nil
	}
	return nil, fmt.Errorf("%T is not an integer", v)
}

func float(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case string:
		// YAML and JSON spell the special values as strings
		switch strings.ToLower(x) {
		case "nan", ".nan":
			return math.NaN(), nil
		case "inf", "+inf", ".inf", "+.inf":
			return math.Inf(1), nil
		case "-inf", "-.inf":
			return math.Inf(-1), nil
		}
		return 0, fmt.Errorf("%q is not a number", x)
	}
	n, err := integer(v)
	if err != nil {
		return 0, err
	}
	switch x := n.(type) {
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	}
	return strconv.ParseFloat(fmt.Sprint(n), 64)
}
