package eval

import (
	"encoding/hex"
	"math"
	"strconv"

	"github.com/signadot/gff-format/ir"
)

// Env is a plain map, the only map shape the expression VM accepts.
type Env = map[string]any

// EntryEnv returns the variables a query sees for e.
func EntryEnv(e *ir.Entry) Env {
	strref := int64(-1)
	if ref := e.StrRef(); ref != ir.NoStrRef {
		strref = int64(ref)
	}
	return Env{
		"path":   e.Path,
		"label":  e.Label(),
		"kind":   e.Kind().String(),
		"value":  ToAny(e.Value()),
		"strref": strref,
		"depth":  e.Depth,
	}
}

// ToAny converts node values to the plain Go values expressions work
// with.
func ToAny(v any) any {
	switch x := v.(type) {
	case ir.Byte:
		return int(x)
	case ir.Char:
		return int(x)
	case ir.Word:
		return int(x)
	case ir.Short:
		return int(x)
	case ir.Dword:
		return int64(x)
	case ir.Int:
		return int(x)
	case ir.Dword64:
		if uint64(x) <= math.MaxInt64 {
			return int64(x)
		}
		return uint64(x)
	case ir.Int64:
		return int64(x)
	case ir.Float:
		return float64(x)
	case ir.Double:
		return float64(x)
	case ir.CExoStr:
		return string(x)
	case ir.ResRef:
		return string(x)
	case ir.Void:
		return hex.EncodeToString(x)
	case ir.LocString:
		res := make(map[string]any, len(x))
		for lang, text := range x {
			res[strconv.FormatUint(uint64(lang), 10)] = text
		}
		return res
	case string:
		return x
	case ir.Kind:
		return x.String()
	case uint32:
		return int64(x)
	}
	return nil
}
