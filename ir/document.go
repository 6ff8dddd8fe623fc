package ir

import "fmt"

// DefaultVersion is the only version tag the classic format uses.
const DefaultVersion = "V3.2"

// Document is a decoded or constructed file: its 4-character type and
// version tags and the top-level struct.
type Document struct {
	Type    string
	Version string
	Root    *Struct
}

// NewDocument returns a document of the given type with the default
// version and an empty root struct.
func NewDocument(typeTag string) *Document {
	return &Document{Type: typeTag, Version: DefaultVersion, Root: NewStruct(NoStructID)}
}

func (d *Document) Clone() *Document {
	res := *d
	if d.Root != nil {
		res.Root = d.Root.Clone()
	}
	return &res
}

func (d *Document) String() string {
	return fmt.Sprintf("%q %q %s", d.Type, d.Version, d.Root)
}
