package ir

import (
	"strconv"

	"github.com/signadot/gff-format/ir/gpath"
)

// Node is the target of a resolved path: a struct, a field of Struct, or
// one language of a localized-string field.
type Node struct {
	Path     string
	Struct   *Struct // the addressed struct, or the struct owning Field
	Field    *Field
	Lang     *uint32
	Modifier gpath.Modifier
}

// IsStruct reports whether the node addresses a struct rather than a field.
func (n *Node) IsStruct() bool {
	return n.Field == nil
}

// Text returns the selected language's text.
func (n *Node) Text() (string, bool) {
	if n.Lang == nil || n.Field == nil {
		return "", false
	}
	text, ok := n.Field.LocString()[*n.Lang]
	return text, ok
}

// Result applies the path modifier:
//   - none: *Struct, *Field, or the language text as a string
//   - $: the field's Value (the struct itself for structs, text for languages)
//   - ?: the Kind
//   - %: the string reference, NoStrRef unless the field is a bound cexolocstr
func (n *Node) Result() any {
	switch n.Modifier {
	case gpath.KindModifier:
		switch {
		case n.Field == nil:
			return KindStruct
		case n.Lang != nil:
			return KindCExoStr
		}
		return n.Field.Kind()
	case gpath.StrRefModifier:
		if n.Field == nil || n.Field.Kind() != KindCExoLocStr {
			return NoStrRef
		}
		return n.Field.StrRef
	case gpath.ValueModifier:
		switch {
		case n.Field == nil:
			return n.Struct
		case n.Lang != nil:
			text, _ := n.Text()
			return text
		}
		return n.Field.Value
	}
	switch {
	case n.Field == nil:
		return n.Struct
	case n.Lang != nil:
		text, _ := n.Text()
		return text
	}
	return n.Field
}

// Resolve is short for root.Resolve(path).
func Resolve(root *Struct, path string) (*Node, error) {
	return root.Resolve(path)
}

// Resolve finds the node addressed by path. Missing labels, list
// indices and languages give PathNotFound errors; segments applied to
// the wrong shape of node give TypeMismatch errors.
func (s *Struct) Resolve(path string) (*Node, error) {
	p, err := gpath.Parse(path)
	if err != nil {
		return nil, NewError(PhasePath, PathNotFound).WithPath(path).WithCause(err)
	}
	return s.ResolvePath(p)
}

// ResolvePath is Resolve for an already parsed path.
func (s *Struct) ResolvePath(p *gpath.Path) (*Node, error) {
	return s.resolve(p, false)
}

func (s *Struct) resolve(p *gpath.Path, newLang bool) (*Node, error) {
	cur := s
	var field *Field
	at := ""
	for seg := p.Head; seg != nil; seg = seg.Next {
		if field != nil {
			switch x := field.Value.(type) {
			case *Struct:
				cur = x
				field = nil
			case LocString:
				lang, ok := seg.Language()
				if !ok {
					return nil, typeMismatch(PhasePath, "expected a language id under cexolocstr, got %q", seg.SegmentString()).WithPath(at)
				}
				at += "/" + seg.Label
				if seg.Next != nil {
					return nil, typeMismatch(PhasePath, "language selector must be the last segment").WithPath(at)
				}
				if _, ok := x[lang]; !ok && !newLang {
					return nil, pathNotFound(at).Detailf("no language %d", lang)
				}
				return &Node{Path: at, Struct: cur, Field: field, Lang: &lang, Modifier: p.Modifier}, nil
			case *List:
				return nil, typeMismatch(PhasePath, "list field needs an index, got %q", seg.SegmentString()).WithPath(at)
			default:
				return nil, typeMismatch(PhasePath, "%s field has no children", field.Kind()).WithPath(at)
			}
		}
		at += "/" + seg.Label
		f := cur.Fields[seg.Label]
		if f == nil {
			return nil, pathNotFound(at).WithLabel(seg.Label)
		}
		if seg.Index == nil {
			field = f
			continue
		}
		l, ok := f.Value.(*List)
		if !ok {
			return nil, typeMismatch(PhasePath, "index on %s field", f.Kind()).WithPath(at).WithLabel(seg.Label)
		}
		i := *seg.Index
		at = at + "[" + strconv.Itoa(i) + "]"
		if i >= l.Len() {
			return nil, pathNotFound(at).Detailf("list has %d elements", l.Len())
		}
		cur = (*l)[i]
	}
	if at == "" {
		at = "/"
	}
	return &Node{Path: at, Struct: cur, Field: field, Modifier: p.Modifier}, nil
}

// Get resolves path and applies its modifier, see Node.Result.
func (s *Struct) Get(path string) (any, error) {
	n, err := s.Resolve(path)
	if err != nil {
		return nil, err
	}
	return n.Result(), nil
}

// Set stores v at path. Depending on the modifier:
//   - none or $: replaces a field's value, or a language's text, after
//     checking v against the field's current kind; a missing language
//     is added
//   - %: sets the string reference of a cexolocstr field
//   - ?: changes the field's kind; v is a Kind or a kind name, and the
//     current value must be valid for the new kind
//
// Structs and lists cannot be replaced. On error nothing is
// modified.
func (s *Struct) Set(path string, v any, opts ...ValidOption) error {
	p, err := gpath.Parse(path)
	if err != nil {
		return NewError(PhasePath, PathNotFound).WithPath(path).WithCause(err)
	}
	n, err := s.resolve(p, true)
	if err != nil {
		return err
	}
	if n.Field == nil {
		return typeMismatch(PhasePath, "cannot replace a struct through a path").WithPath(n.Path)
	}
	f := n.Field
	switch p.Modifier {
	case gpath.StrRefModifier:
		if f.Kind() != KindCExoLocStr {
			return typeMismatch(PhasePath, "%s field has no string reference", f.Kind()).WithPath(n.Path)
		}
		ref, err := ValueFor(KindDword, v)
		if err != nil {
			return withPath(err, n.Path)
		}
		f.StrRef = uint32(ref.(Dword))
		return nil
	case gpath.KindModifier:
		if n.Lang != nil {
			return typeMismatch(PhasePath, "cannot change the kind of a language entry").WithPath(n.Path)
		}
		k, err := kindArg(v)
		if err != nil {
			return withPath(err, n.Path)
		}
		val, err := ValueFor(k, f.Value, opts...)
		if err != nil {
			return withPath(err, n.Path)
		}
		f.Value = val
		if k != KindCExoLocStr {
			f.StrRef = NoStrRef
		}
		return nil
	}
	if n.Lang != nil {
		text, ok := asString(v)
		if !ok {
			return typeMismatch(PhasePath, "%T is not language text", v).WithPath(n.Path)
		}
		ls := f.LocString()
		if ls == nil {
			ls = LocString{}
			f.Value = ls
		}
		ls[*n.Lang] = text
		return nil
	}
	if f.Kind().Complex() {
		return typeMismatch(PhasePath, "cannot replace a %s through a path", f.Kind()).WithPath(n.Path)
	}
	val, err := ValueFor(f.Kind(), v, opts...)
	if err != nil {
		return withLabel(withPath(err, n.Path), f.Label)
	}
	f.Value = val
	return nil
}

// Delete removes the field, or the language entry, addressed by path.
func (s *Struct) Delete(path string) error {
	n, err := s.Resolve(path)
	if err != nil {
		return err
	}
	switch {
	case n.Field == nil:
		return typeMismatch(PhasePath, "cannot delete a struct through a path").WithPath(n.Path)
	case n.Lang != nil:
		delete(n.Field.LocString(), *n.Lang)
	default:
		delete(n.Struct.Fields, n.Field.Label)
	}
	return nil
}

func kindArg(v any) (Kind, error) {
	switch x := v.(type) {
	case Kind:
		if !x.Valid() {
			return 0, NewError(PhasePath, UnknownFieldType).Detailf("kind %d", uint32(x))
		}
		return x, nil
	case string:
		return ParseKind(x)
	}
	return 0, typeMismatch(PhasePath, "%T is not a kind", v)
}
