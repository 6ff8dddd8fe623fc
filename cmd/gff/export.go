package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/signadot/gff-format/encode"
	"github.com/signadot/gff-format/gomap"
	"github.com/signadot/gff-format/ir"
)

type textFormat string

const (
	jsonFormat textFormat = "json"
	yamlFormat textFormat = "yaml"
)

func parseTextFormat(s string) (textFormat, error) {
	switch strings.ToLower(s) {
	case "json", "j":
		return jsonFormat, nil
	case "yaml", "yml", "y":
		return yamlFormat, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

func export(cfg *ExportConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Export.Parse(cc, args)
	if err != nil {
		cfg.Export.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	f, err := parseTextFormat(cfg.Format)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	files := inputs(args)
	for i, file := range files {
		doc, err := readDoc(cfg.MainConfig, cc.In, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		if i > 0 && f == yamlFormat {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return err
			}
		}
		if err := exportDoc(cc.Out, doc, f); err != nil {
			return fmt.Errorf("error exporting %s: %w", file, err)
		}
	}
	return nil
}

func exportDoc(w io.Writer, doc *ir.Document, f textFormat) error {
	var (
		d   []byte
		err error
	)
	switch f {
	case jsonFormat:
		d, err = gomap.MarshalJSON(doc)
	default:
		d, err = gomap.MarshalYAML(doc)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

func importTree(cfg *ImportConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Import.Parse(cc, args)
	if err != nil {
		cfg.Import.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: import takes at most one file, got %v", cli.ErrUsage, args)
	}
	file := inputs(args)[0]
	format := cfg.Format
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(file), ".")
	}
	f, err := parseTextFormat(format)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	var d []byte
	if file == "-" {
		d, err = io.ReadAll(cc.In)
	} else {
		d, err = os.ReadFile(file)
	}
	if err != nil {
		return err
	}
	return importData(cfg.MainConfig, cc.Out, d, f)
}

func importData(cfg *MainConfig, w io.Writer, d []byte, f textFormat) error {
	var (
		doc *ir.Document
		err error
	)
	switch f {
	case jsonFormat:
		doc, err = gomap.UnmarshalJSON(d, cfg.validOpts()...)
	default:
		doc, err = gomap.UnmarshalYAML(d, cfg.validOpts()...)
	}
	if err != nil {
		return err
	}
	opts, err := cfg.encOpts()
	if err != nil {
		return err
	}
	return encode.Encode(doc, w, opts...)
}
