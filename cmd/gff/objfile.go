package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/gff-format/format"
	"github.com/signadot/gff-format/ir"
	"github.com/signadot/gff-format/parse"
)

func readDoc(cfg *MainConfig, in io.Reader, path string) (*ir.Document, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = in
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	opts, err := cfg.parseOpts()
	if err != nil {
		return nil, err
	}
	doc, err := parse.Parse(d, opts...)
	if err != nil {
		return nil, err
	}
	if t, err := format.ForFile(path); err == nil && t.String() != doc.Type {
		cfg.logger().Warn("type tag does not match file suffix",
			"file", path, "type", doc.Type, "suffix", t.Suffix())
	}
	return doc, nil
}

func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
