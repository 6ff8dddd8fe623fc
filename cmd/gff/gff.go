package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func gffMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer cfg.closeOut()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.setup(); err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// setup checks the global options once, before any file is read, so a
// bad -encoding fails even for commands that never touch text.
func (cfg *MainConfig) setup() error {
	enc, err := cfg.textEncoding()
	if err != nil {
		return err
	}
	name := "utf-8"
	if enc != nil {
		name = cfg.Encoding
	}
	cfg.logger().Debug("options",
		"encoding", name,
		"resref_max", cfg.resRefMax(),
		"out", cfg.Out)
	return nil
}

func (cfg *MainConfig) closeOut() {
	if cfg.CloseOut == nil {
		return
	}
	if err := cfg.CloseOut(); err != nil {
		theLog.Error("closing output", "file", cfg.Out, "error", err)
	}
	cfg.CloseOut = nil
}

// outOpt redirects output to a file. Encoded GFF is binary, so the file
// is created fresh rather than appended to.
func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	if a == "" {
		return nil, fmt.Errorf("%w: -o needs a file name", cli.ErrUsage)
	}
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}
