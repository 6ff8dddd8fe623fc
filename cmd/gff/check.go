package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/gff-format/encode"
	"github.com/signadot/gff-format/ir"
	"github.com/signadot/gff-format/libdiff"
	"github.com/signadot/gff-format/parse"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	failed := 0
	for _, file := range inputs(args) {
		if err := checkFile(cfg, cc.In, file); err != nil {
			fmt.Fprintf(cc.Out, "%s: %v\n", file, err)
			failed++
			continue
		}
		fmt.Fprintf(cc.Out, "%s: ok\n", file)
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func checkFile(cfg *CheckConfig, in io.Reader, file string) error {
	var (
		d   []byte
		err error
	)
	if file == "-" {
		d, err = io.ReadAll(in)
	} else {
		d, err = os.ReadFile(file)
	}
	if err != nil {
		return err
	}
	return checkData(cfg, d)
}

// checkData decodes d, encodes the result and decodes it again. The two
// trees must be equal and, with -bytes, the encoding must reproduce d.
func checkData(cfg *CheckConfig, d []byte) error {
	popts, err := cfg.parseOpts()
	if err != nil {
		return err
	}
	eopts, err := cfg.encOpts()
	if err != nil {
		return err
	}
	doc, err := parse.Parse(d, popts...)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	re, err := encode.Bytes(doc, eopts...)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	doc2, err := parse.Parse(re, popts...)
	if err != nil {
		return fmt.Errorf("decode of re-encoding: %w", err)
	}
	if doc.Type != doc2.Type || doc.Version != doc2.Version || !ir.Equal(doc.Root, doc2.Root) {
		return fmt.Errorf("round trip differs:\n%s", libdiff.Format(libdiff.DiffDocuments(doc, doc2)))
	}
	if cfg.Bytes && !bytes.Equal(d, re) {
		return fmt.Errorf("re-encoding is not byte identical (%d bytes, was %d)", len(re), len(d))
	}
	return nil
}
