package gomap

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/signadot/gff-format/ir"
)

// MarshalYAML returns the YAML form of doc's map, with metadata keys
// first, labels sorted, and field keys in the order type, str_ref,
// value.
func MarshalYAML(doc *ir.Document) ([]byte, error) {
	return yaml.Marshal(ordered(Box(doc)))
}

func UnmarshalYAML(d []byte, opts ...ir.ValidOption) (*ir.Document, error) {
	var m map[string]any
	if err := yaml.Unmarshal(d, &m); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("yaml: empty document")
	}
	return Unbox(m, opts...)
}

func ordered(v any) any {
	switch x := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		kind, field := x[TypeKey].(string)
		if field {
			slices.SortFunc(keys, compareFieldKeys)
		} else {
			slices.SortFunc(keys, compareKeys)
		}
		res := make(yaml.MapSlice, 0, len(keys))
		for _, k := range keys {
			v := x[k]
			if langs, ok := v.(map[string]any); ok && k == ValueKey && kind == ir.KindCExoLocStr.String() {
				res = append(res, yaml.MapItem{Key: k, Value: orderedLangs(langs)})
				continue
			}
			res = append(res, yaml.MapItem{Key: k, Value: ordered(v)})
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i, e := range x {
			res[i] = ordered(e)
		}
		return res
	}
	return v
}

func orderedLangs(m map[string]any) yaml.MapSlice {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		la, _ := strconv.ParseUint(a, 10, 32)
		lb, _ := strconv.ParseUint(b, 10, 32)
		return cmp.Compare(la, lb)
	})
	res := make(yaml.MapSlice, 0, len(keys))
	for _, k := range keys {
		res = append(res, yaml.MapItem{Key: k, Value: m[k]})
	}
	return res
}

var fieldKeyRank = map[string]int{TypeKey: 1, StrRefKey: 2, ValueKey: 3}

func compareFieldKeys(a, b string) int {
	return fieldKeyRank[a] - fieldKeyRank[b]
}

// compareKeys puts metadata before labels.
func compareKeys(a, b string) int {
	ma, mb := strings.HasPrefix(a, "__"), strings.HasPrefix(b, "__")
	switch {
	case ma && !mb:
		return -1
	case mb && !ma:
		return 1
	}
	return strings.Compare(a, b)
}
