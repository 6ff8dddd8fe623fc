package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/scott-cotton/cli"

	"github.com/signadot/gff-format/encode"
	"github.com/signadot/gff-format/ir"
	"github.com/signadot/gff-format/ir/gpath"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	path := args[0]
	for _, arg := range inputs(args[1:]) {
		doc, err := readDoc(cfg.MainConfig, cc.In, arg)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		if err := getPath(cfg.MainConfig, cc.Out, doc.Root, path); err != nil {
			return fmt.Errorf("error getting %s from %s: %w", path, arg, err)
		}
	}
	return nil
}

func getPath(cfg *MainConfig, w io.Writer, root *ir.Struct, path string) error {
	n, err := root.Resolve(path)
	if err != nil {
		return err
	}
	switch x := n.Result().(type) {
	case ir.Kind:
		_, err = fmt.Fprintln(w, x)
	case uint32:
		_, err = fmt.Fprintln(w, strRef(x))
	case string:
		_, err = fmt.Fprintln(w, x)
	case ir.CExoStr:
		_, err = fmt.Fprintln(w, string(x))
	case ir.ResRef:
		_, err = fmt.Fprintln(w, string(x))
	case ir.Value:
		if s, ok := x.(*ir.Struct); ok {
			return dumpNode(w, &ir.Node{Path: n.Path, Struct: s}, cfg.dumpOpts(w))
		}
		_, err = fmt.Fprintln(w, ir.FormatValue(x))
	default:
		return dumpNode(w, n, cfg.dumpOpts(w))
	}
	return err
}

func strRef(ref uint32) string {
	if ref == ir.NoStrRef {
		return "-1"
	}
	return strconv.FormatUint(uint64(ref), 10)
}

// dumpNode dumps a struct, or a field with everything below it, using
// absolute paths.
func dumpNode(w io.Writer, n *ir.Node, opts []encode.EncodeOption) error {
	s, prefix := n.Struct, n.Path
	if !n.IsStruct() {
		s = ir.NewStruct(ir.NoStructID)
		s.Fields[n.Field.Label] = n.Field
		prefix, _ = gpath.RSplit(n.Path)
	}
	if prefix == "/" {
		prefix = ""
	}
	es := encode.NewEncState(opts...)
	bw := bufio.NewWriter(w)
	err := s.Walk(func(e *ir.Entry) error {
		ce := *e
		ce.Path = prefix + e.Path
		_, err := bw.WriteString(encode.DumpLine(&ce, es) + "\n")
		return err
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}
