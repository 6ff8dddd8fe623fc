package gomap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/signadot/gff-format/ir"
)

// MarshalJSON returns the indented JSON form of doc's map.
func MarshalJSON(doc *ir.Document) ([]byte, error) {
	d, err := json.MarshalIndent(Box(doc), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(d, '\n'), nil
}

// UnmarshalJSON reads a document from JSON. Numbers are kept exact, so
// dword64 and int64 values survive.
func UnmarshalJSON(d []byte, opts ...ir.ValidOption) (*ir.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("json: trailing data after document")
	}
	return Unbox(m, opts...)
}
