package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/signadot/gff-format/encode"
	"github.com/signadot/gff-format/ir"
	"github.com/signadot/gff-format/ir/gpath"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: set requires a path, a value and a file, got %v", cli.ErrUsage, args)
	}
	mode, err := parseBackupMode(cfg.Backup)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	path, text, file := args[0], args[1], args[2]
	if file == "-" || cfg.Out != "" {
		return setFile(cfg.MainConfig, cc.In, cc.Out, path, text, file, backupNone)
	}
	return setFile(cfg.MainConfig, cc.In, nil, path, text, file, mode)
}

// setFile sets path to the value read from text. The result goes to out
// if it is not nil, otherwise file is replaced.
func setFile(cfg *MainConfig, in io.Reader, out io.Writer, path, text, file string, mode backupMode) error {
	doc, err := readDoc(cfg, in, file)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	v, err := setValue(cfg, doc.Root, path, text)
	if err != nil {
		return err
	}
	if err := doc.Root.Set(path, v, cfg.validOpts()...); err != nil {
		return fmt.Errorf("error setting %s: %w", path, err)
	}
	opts, err := cfg.encOpts()
	if err != nil {
		return err
	}
	d, err := encode.Bytes(doc, opts...)
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", file, err)
	}
	if out != nil {
		_, err := io.Copy(out, bytes.NewReader(d))
		return err
	}
	return replaceFile(cfg, file, d, mode)
}

// setValue reads text as the kind of value the path's target expects.
func setValue(cfg *MainConfig, root *ir.Struct, path, text string) (any, error) {
	p, err := gpath.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	switch p.Modifier {
	case gpath.KindModifier:
		return ir.ParseKind(strings.TrimSpace(text))
	case gpath.StrRefModifier:
		text = strings.TrimSpace(text)
		if text == "-1" {
			return ir.NoStrRef, nil
		}
		ref, err := strconv.ParseUint(text, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("string reference %q: %w", text, err)
		}
		return uint32(ref), nil
	}
	n, err := root.ResolvePath(p)
	switch {
	case err == nil && n.Lang != nil:
		return text, nil
	case err == nil && n.Field != nil:
		return ir.ParseValue(n.Field.Kind(), text, cfg.validOpts()...)
	case p.Last() != nil && isLanguage(p.Last()):
		// a new language of an existing localized string
		return text, nil
	case err != nil:
		return nil, err
	}
	return nil, fmt.Errorf("cannot set %s", path)
}

func isLanguage(s *gpath.Segment) bool {
	_, ok := s.Language()
	return ok
}

func replaceFile(cfg *MainConfig, file string, d []byte, mode backupMode) error {
	perm := os.FileMode(0644)
	if fi, err := os.Stat(file); err == nil {
		perm = fi.Mode().Perm()
	}
	bak, err := backupFile(file, mode)
	if err != nil {
		return fmt.Errorf("error backing up %s: %w", file, err)
	}
	if bak != "" {
		cfg.logger().Debug("backup", "file", file, "to", bak)
	}
	return os.WriteFile(file, d, perm)
}
