package gomap

import (
	"encoding/hex"
	"math"
	"strconv"

	"github.com/signadot/gff-format/ir"
)

const (
	DataTypeKey    = "__data_type"
	DataVersionKey = "__data_version"
	StructIDKey    = "__struct_id"

	TypeKey   = "type"
	StrRefKey = "str_ref"
	ValueKey  = "value"
)

// Box returns the map form of doc.
func Box(doc *ir.Document) map[string]any {
	m := BoxStruct(doc.Root)
	m[DataTypeKey] = doc.Type
	if doc.Version != ir.DefaultVersion {
		m[DataVersionKey] = doc.Version
	}
	return m
}

// BoxStruct returns the map form of s without document metadata.
func BoxStruct(s *ir.Struct) map[string]any {
	m := make(map[string]any, len(s.Fields)+1)
	m[StructIDKey] = uint64(s.StructID)
	for label, f := range s.Fields {
		m[label] = BoxField(f)
	}
	return m
}

func BoxField(f *ir.Field) map[string]any {
	m := map[string]any{
		TypeKey:  f.Kind().String(),
		ValueKey: boxValue(f.Value),
	}
	if f.Kind() == ir.KindCExoLocStr {
		m[StrRefKey] = uint64(f.StrRef)
	}
	return m
}

func boxValue(v ir.Value) any {
	switch x := v.(type) {
	case ir.Byte:
		return uint64(x)
	case ir.Char:
		return uint64(x)
	case ir.Word:
		return uint64(x)
	case ir.Dword:
		return uint64(x)
	case ir.Dword64:
		return uint64(x)
	case ir.Short:
		return int64(x)
	case ir.Int:
		return int64(x)
	case ir.Int64:
		return int64(x)
	case ir.Float:
		if special(float64(x)) {
			return specialString(float64(x))
		}
		return float32(x)
	case ir.Double:
		if special(float64(x)) {
			return specialString(float64(x))
		}
		return float64(x)
	case ir.CExoStr:
		return string(x)
	case ir.ResRef:
		return string(x)
	case ir.Void:
		return hex.EncodeToString(x)
	case ir.LocString:
		m := make(map[string]any, len(x))
		for lang, text := range x {
			m[strconv.FormatUint(uint64(lang), 10)] = text
		}
		return m
	case *ir.Struct:
		return BoxStruct(x)
	case *ir.List:
		res := make([]any, 0, x.Len())
		for _, e := range *x {
			res = append(res, BoxStruct(e))
		}
		return res
	}
	return nil
}

// special reports whether f has no JSON number form.
func special(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

func specialString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case f > 0:
		return "+Inf"
	}
	return "-Inf"
}
