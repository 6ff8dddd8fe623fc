package ir

import (
	"errors"
	"strconv"
)

// SkipChildren may be returned by a WalkFunc to skip the nested struct,
// list elements or languages of the entry just visited.
var SkipChildren = errors.New("skip children")

// Entry is one node visited by Walk.
type Entry struct {
	Path  string
	Depth int
	// Field is the field named by the last path segment. For list
	// elements it is the list field and Index is the element index.
	Field *Field
	Index int
	// Struct is set for list elements.
	Struct *Struct
	// Lang is set for the languages of a localized string.
	Lang *uint32
}

// Kind returns the kind of the visited node: the field kind, KindStruct
// for list elements and KindCExoStr for languages.
func (e *Entry) Kind() Kind {
	switch {
	case e.Struct != nil:
		return KindStruct
	case e.Lang != nil:
		return KindCExoStr
	}
	return e.Field.Kind()
}

// Value returns the visited node's value: the field value, the element
// struct, or the text of a language.
func (e *Entry) Value() any {
	switch {
	case e.Struct != nil:
		return e.Struct
	case e.Lang != nil:
		return e.Field.LocString()[*e.Lang]
	}
	return e.Field.Value
}

// Label returns the last path segment.
func (e *Entry) Label() string {
	switch {
	case e.Struct != nil:
		return e.Field.Label + "[" + strconv.Itoa(e.Index) + "]"
	case e.Lang != nil:
		return strconv.FormatUint(uint64(*e.Lang), 10)
	}
	return e.Field.Label
}

// StrRef returns the string reference of a localized string field or
// language, NoStrRef otherwise.
func (e *Entry) StrRef() uint32 {
	if e.Struct == nil && e.Field.Kind() == KindCExoLocStr {
		return e.Field.StrRef
	}
	return NoStrRef
}

type WalkFunc func(e *Entry) error

// Walk visits every node below s depth first, fields in label order.
// A list field is visited before its elements /List[i], and each
// element before its own fields; a localized string is followed by its
// languages /Name/<lang> in ascending order. Walk stops at the first
// error returned by fn other than SkipChildren.
func (s *Struct) Walk(fn WalkFunc) error {
	err := walkStruct(s, "", 1, fn)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func walkStruct(s *Struct, prefix string, depth int, fn WalkFunc) error {
	for _, label := range s.Labels() {
		f := s.Fields[label]
		path := prefix + "/" + label
		e := &Entry{Path: path, Depth: depth, Field: f}
		if err := fn(e); err != nil {
			if err == SkipChildren {
				continue
			}
			return err
		}
		switch x := f.Value.(type) {
		case *Struct:
			if err := walkStruct(x, path, depth+1, fn); err != nil {
				return err
			}
		case *List:
			for i, elt := range *x {
				epath := path + "[" + strconv.Itoa(i) + "]"
				err := fn(&Entry{Path: epath, Depth: depth + 1, Field: f, Index: i, Struct: elt})
				if err == SkipChildren {
					continue
				}
				if err != nil {
					return err
				}
				if err := walkStruct(elt, epath, depth+2, fn); err != nil {
					return err
				}
			}
		case LocString:
			for _, lang := range x.Languages() {
				err := fn(&Entry{Path: path + "/" + strconv.FormatUint(uint64(lang), 10), Depth: depth + 1, Field: f, Lang: &lang})
				if err == SkipChildren {
					break
				}
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Paths returns the paths of every node Walk visits, in order.
func (s *Struct) Paths() []string {
	var res []string
	_ = s.Walk(func(e *Entry) error {
		res = append(res, e.Path)
		return nil
	})
	return res
}
