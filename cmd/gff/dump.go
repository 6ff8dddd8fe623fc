package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/gff-format/encode"
	"github.com/signadot/gff-format/ir"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	files := inputs(args)
	for i, file := range files {
		doc, err := readDoc(cfg.MainConfig, cc.In, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		if err := dumpDoc(cfg, cc.Out, doc); err != nil {
			return fmt.Errorf("error dumping %s: %w", file, err)
		}
		if i < len(files)-1 {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func dumpDoc(cfg *DumpConfig, w io.Writer, doc *ir.Document) error {
	if _, err := fmt.Fprintf(w, "# %q %q\n", doc.Type, doc.Version); err != nil {
		return err
	}
	opts := append(cfg.dumpOpts(w), encode.DumpDepth(cfg.Depth))
	return encode.Dump(doc.Root, w, opts...)
}
