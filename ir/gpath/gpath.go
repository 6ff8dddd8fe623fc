package gpath

import (
	"fmt"
	"strconv"
	"strings"
)

// Modifier selects what a resolved path yields.
type Modifier byte

const (
	NoModifier     Modifier = 0
	ValueModifier  Modifier = '$'
	KindModifier   Modifier = '?'
	StrRefModifier Modifier = '%'
)

func (m Modifier) String() string {
	if m == NoModifier {
		return ""
	}
	return string(rune(m))
}

// Path is a parsed path. Head is nil for the root.
type Path struct {
	Head     *Segment
	Modifier Modifier
}

// Segment is one '/'-separated step of a path.
//
//	Segment{Label: "a"}                  → "a"
//	Segment{Label: "a", Index: &2}       → "a[2]"
//	Segment{Label: "0"}                  → "0" (language 0 under a cexolocstr)
type Segment struct {
	Label string
	Index *int // list element, nil when the segment has no [N] suffix
	Next  *Segment
}

// Parse parses a path string.
//
// Examples:
//   - "" or "/" → root path
//   - "/Tag" → one segment
//   - "/ItemList[0]/Tag" → list element then field
//   - "/LocName/0" → field then language selector
//   - "/Tag$" → value of Tag
func Parse(path string) (*Path, error) {
	res := &Path{}
	if n := len(path); n > 0 {
		switch m := Modifier(path[n-1]); m {
		case ValueModifier, KindModifier, StrRefModifier:
			res.Modifier = m
			path = path[:n-1]
		}
	}
	var tail *Segment
	for _, frag := range strings.Split(path, "/") {
		frag = strings.TrimSpace(frag)
		if frag == "" {
			continue
		}
		seg, err := parseSegment(frag)
		if err != nil {
			return nil, err
		}
		if tail == nil {
			res.Head = seg
		} else {
			tail.Next = seg
		}
		tail = seg
	}
	return res, nil
}

// MustParse is like Parse but panics on error.
func MustParse(path string) *Path {
	p, err := Parse(path)
	if err != nil {
		panic(fmt.Sprintf("gpath: %v", err))
	}
	return p
}

func parseSegment(frag string) (*Segment, error) {
	seg := &Segment{Label: frag}
	if frag[len(frag)-1] != ']' {
		return seg, nil
	}
	i := strings.LastIndexByte(frag, '[')
	if i == -1 {
		return nil, fmt.Errorf("unbalanced ']' in segment %q", frag)
	}
	if i == 0 {
		return nil, fmt.Errorf("list index without label in segment %q", frag)
	}
	digits := frag[i+1 : len(frag)-1]
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return nil, fmt.Errorf("expected '[' <non-negative index> ']' in segment %q", frag)
	}
	index, err := strconv.Atoi(digits)
	if err != nil {
		return nil, fmt.Errorf("invalid list index in segment %q: %w", frag, err)
	}
	seg.Label = frag[:i]
	seg.Index = &index
	return seg, nil
}

// String returns the canonical form of the path: a leading '/', no
// empty segments, and the modifier if any.
func (p *Path) String() string {
	var b strings.Builder
	for s := p.Head; s != nil; s = s.Next {
		b.WriteByte('/')
		b.WriteString(s.SegmentString())
	}
	if b.Len() == 0 {
		b.WriteByte('/')
	}
	b.WriteString(p.Modifier.String())
	return b.String()
}

// SegmentString returns the string form of this segment alone.
func (s *Segment) SegmentString() string {
	if s == nil {
		return ""
	}
	if s.Index != nil {
		return s.Label + "[" + strconv.Itoa(*s.Index) + "]"
	}
	return s.Label
}

// Language reports whether the segment is a bare non-negative integer,
// and if so its value as a language id.
func (s *Segment) Language() (uint32, bool) {
	if s.Index != nil || s.Label == "" {
		return 0, false
	}
	if strings.TrimLeft(s.Label, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.ParseUint(s.Label, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// IsRoot reports whether the path addresses the root struct.
func (p *Path) IsRoot() bool {
	return p.Head == nil
}

// Segments returns the segments from root to leaf.
func (p *Path) Segments() []*Segment {
	var res []*Segment
	for s := p.Head; s != nil; s = s.Next {
		res = append(res, s)
	}
	return res
}

func (p *Path) Len() int {
	n := 0
	for s := p.Head; s != nil; s = s.Next {
		n++
	}
	return n
}

// Last returns the leaf segment, or nil for the root.
func (p *Path) Last() *Segment {
	s := p.Head
	if s == nil {
		return nil
	}
	for s.Next != nil {
		s = s.Next
	}
	return s
}

// Parent returns the path without its last segment and modifier.
// The parent of the root is the root.
func (p *Path) Parent() *Path {
	segs := p.Segments()
	if len(segs) <= 1 {
		return &Path{}
	}
	return fromSegments(segs[:len(segs)-1], NoModifier)
}

// Append returns a new path with seg added after the last segment. The
// modifier is kept.
func (p *Path) Append(seg Segment) *Path {
	seg.Next = nil
	segs := append(p.Segments(), &seg)
	return fromSegments(segs, p.Modifier)
}

// WithModifier returns a copy of p using modifier m.
func (p *Path) WithModifier(m Modifier) *Path {
	return fromSegments(p.Segments(), m)
}

func fromSegments(segs []*Segment, m Modifier) *Path {
	res := &Path{Modifier: m}
	var tail *Segment
	for _, s := range segs {
		c := &Segment{Label: s.Label}
		if s.Index != nil {
			i := *s.Index
			c.Index = &i
		}
		if tail == nil {
			res.Head = c
		} else {
			tail.Next = c
		}
		tail = c
	}
	return res
}

// Field returns a segment naming a field.
func Field(label string) Segment {
	return Segment{Label: label}
}

// Element returns a segment selecting element index of list label.
func Element(label string, index int) Segment {
	return Segment{Label: label, Index: &index}
}

// Language returns a language selector segment.
func Language(lang uint32) Segment {
	return Segment{Label: strconv.FormatUint(uint64(lang), 10)}
}

// Join joins a parent path and a child path string.
//
// Examples:
//   - Join("/A", "B/C") → "/A/B/C"
//   - Join("", "B") → "/B"
//   - Join("/A/", "/B") → "/A/B"
func Join(prefix, suffix string) string {
	prefix = strings.Trim(prefix, "/")
	suffix = strings.Trim(suffix, "/")
	switch {
	case prefix == "" && suffix == "":
		return "/"
	case prefix == "":
		return "/" + suffix
	case suffix == "":
		return "/" + prefix
	}
	return "/" + prefix + "/" + suffix
}

// Split splits a path into its first segment and the remaining path.
// Panics if the path cannot be parsed.
//
// Examples:
//   - Split("/A[0]/B/C") → ("A[0]", "/B/C")
//   - Split("/A") → ("A", "/")
//   - Split("/") → ("", "/")
func Split(path string) (first string, rest string) {
	p := MustParse(path)
	if p.Head == nil {
		return "", p.String()
	}
	first = p.Head.SegmentString()
	rest = fromSegments(p.Segments()[1:], p.Modifier).String()
	return first, rest
}

// RSplit splits a path into its parent path and last segment.
// Panics if the path cannot be parsed.
//
// Examples:
//   - RSplit("/A/B[1]/C") → ("/A/B[1]", "C")
//   - RSplit("/A") → ("/", "A")
func RSplit(path string) (parent string, last string) {
	p := MustParse(path)
	if p.Head == nil {
		return "/", ""
	}
	return p.Parent().String(), p.Last().SegmentString()
}
