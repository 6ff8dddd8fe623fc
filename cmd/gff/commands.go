package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "gff").
		WithSynopsis("gff [opts] command [opts]").
		WithDescription("gff is a tool for inspecting and editing GFF files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return gffMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			SetCommand(cfg),
			DumpCommand(cfg),
			DiffCommand(cfg),
			FindCommand(cfg),
			CheckCommand(cfg),
			ExportCommand(cfg),
			ImportCommand(cfg))
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <path> [files]").
		WithDescription(getDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

const getDescription = `get prints the node at a path.

Paths are '/'-separated labels, list elements are selected with [N] and
the languages of a localized string by number:

  /Tag
  /ItemList[0]/Tag
  /FirstName/0

A trailing modifier selects what is printed: '$' the value, '?' the
kind and '%' the string reference of a localized string.`

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg, Backup: "none"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Set, "set").
		WithAliases("s").
		WithSynopsis("set [-b mode] <path> <value> file").
		WithDescription(setDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

const setDescription = `set replaces the value at a path and writes the file back.

The value is read as text for the kind of the field: numbers for
numeric kinds, hex for void data, plain or quoted text for strings.
With the '?' modifier the value is a kind name and the field is
converted; with '%' it is a string reference.

With -o the result is written there and the file is left as is.
Otherwise the file is replaced, after a backup as selected by -b:

  none      no backup
  simple    file~
  numbered  file~N, N counting from 0
  existing  numbered if numbered backups exist, simple otherwise`

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithSynopsis("dump [-d depth] [files]").
		WithDescription("dump prints every node of GFF files, one path per line").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff a b").
		WithDescription("diff prints the differences between two GFF files, exiting 1 if there are any").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func FindCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FindConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Find, "find").
		WithAliases("f").
		WithSynopsis("find <expr> [files]").
		WithDescription(findDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return find(cfg, cc, args)
		})
}

const findDescription = `find prints the nodes for which an expression is true.

The expression sees path, label, kind, value, strref and depth, and
the functions get(path) and has(path):

  gff find 'kind == "resref" && value startsWith "nw_"' guard.utc
  gff find 'label == "Tag" && depth > 1' guard.utc`

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-bytes] [files]").
		WithDescription("check decodes, re-encodes and decodes files again, reporting those that do not survive").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func ExportCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExportConfig{MainConfig: mainCfg, Format: "yaml"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Export, "export").
		WithAliases("x").
		WithSynopsis("export [-f json|yaml] [files]").
		WithDescription("export prints GFF files as JSON or YAML").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return export(cfg, cc, args)
		})
}

func ImportCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ImportConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Import, "import").
		WithAliases("i").
		WithSynopsis("import [-f json|yaml] [file]").
		WithDescription("import encodes a JSON or YAML tree, as written by export, to GFF").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return importTree(cfg, cc, args)
		})
}
