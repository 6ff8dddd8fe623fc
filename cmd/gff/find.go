package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/gff-format/encode"
	"github.com/signadot/gff-format/eval"
	"github.com/signadot/gff-format/ir"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		cfg.Find.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: find requires an expression", cli.ErrUsage)
	}
	q, err := eval.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	files := inputs(args[1:])
	for _, file := range files {
		doc, err := readDoc(cfg.MainConfig, cc.In, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		prefix := ""
		if len(files) > 1 {
			prefix = file + ":"
		}
		if err := findDoc(cfg.MainConfig, cc.Out, q, doc.Root, prefix); err != nil {
			return fmt.Errorf("error querying %s: %w", file, err)
		}
	}
	return nil
}

func findDoc(cfg *MainConfig, w io.Writer, q *eval.Query, root *ir.Struct, prefix string) error {
	es, err := q.Find(root)
	if err != nil {
		return err
	}
	st := encode.NewEncState(cfg.dumpOpts(w)...)
	bw := bufio.NewWriter(w)
	for _, e := range es {
		if _, err := bw.WriteString(prefix + encode.DumpLine(e, st) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
