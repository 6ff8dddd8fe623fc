package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/signadot/gff-format/encode"
	"github.com/signadot/gff-format/ir"
	"github.com/signadot/gff-format/parse"
)

type MainConfig struct {
	Color    bool   `cli:"name=color desc='dump with color'"`
	ResRef32 bool   `cli:"name=resref32 desc='allow resrefs up to 32 bytes'"`
	Encoding string `cli:"name=encoding desc='text encoding of strings, such as windows-1252'"`
	Verbose  bool   `cli:"name=v desc='log decoding and encoding details'"`

	Out      string
	CloseOut func() error

	enc encoding.Encoding

	Main *cli.Command
}

func (cfg *MainConfig) textEncoding() (encoding.Encoding, error) {
	if cfg.enc != nil || cfg.Encoding == "" {
		return cfg.enc, nil
	}
	enc, err := htmlindex.Get(cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding %q: %w", cli.ErrUsage, cfg.Encoding, err)
	}
	cfg.enc = enc
	return enc, nil
}

func (cfg *MainConfig) resRefMax() int {
	if cfg.ResRef32 {
		return ir.ExtendedResRefMax
	}
	return ir.ResRefMax
}

// validOpts leaves resref lengths to the encoder when an encoding is
// set, since the limit counts encoded bytes.
func (cfg *MainConfig) validOpts() []ir.ValidOption {
	if cfg.Encoding != "" {
		return []ir.ValidOption{ir.ResRefLimit(0)}
	}
	return []ir.ValidOption{ir.ResRefLimit(cfg.resRefMax())}
}

func (cfg *MainConfig) parseOpts() ([]parse.ParseOption, error) {
	enc, err := cfg.textEncoding()
	if err != nil {
		return nil, err
	}
	res := []parse.ParseOption{parse.ResRefLimit(cfg.resRefMax())}
	if enc != nil {
		res = append(res, parse.TextEncoding(enc))
	}
	if cfg.Verbose {
		res = append(res, parse.Logger(cfg.logger()))
	}
	return res, nil
}

func (cfg *MainConfig) encOpts() ([]encode.EncodeOption, error) {
	enc, err := cfg.textEncoding()
	if err != nil {
		return nil, err
	}
	res := []encode.EncodeOption{encode.ResRefLimit(cfg.resRefMax())}
	if enc != nil {
		res = append(res, encode.TextEncoding(enc))
	}
	if cfg.Verbose {
		res = append(res, encode.Logger(cfg.logger()))
	}
	return res, nil
}

// dumpOpts adds colors when -color is given, or when it is not given
// and w is a terminal.
func (cfg *MainConfig) dumpOpts(w io.Writer) []encode.EncodeOption {
	var res []encode.EncodeOption
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return res
			}
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig
	Backup string `cli:"name=b aliases=backup desc='backup mode: none, simple, numbered or existing'"`

	Set *cli.Command
}

type DumpConfig struct {
	*MainConfig
	Depth int `cli:"name=d aliases=depth desc='maximum depth to dump, 0 for all'"`

	Dump *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type FindConfig struct {
	*MainConfig

	Find *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Bytes bool `cli:"name=bytes desc='also require byte identical re-encoding'"`

	Check *cli.Command
}

type ExportConfig struct {
	*MainConfig
	Format string `cli:"name=f aliases=format desc='output format: json or yaml'"`

	Export *cli.Command
}

type ImportConfig struct {
	*MainConfig
	Format string `cli:"name=f aliases=format desc='input format: json or yaml, default from the file suffix'"`

	Import *cli.Command
}
