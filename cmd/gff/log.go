package main

import (
	"log/slog"
	"os"

	"github.com/signadot/gff-format/debug"
)

var (
	theLog = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.LevelKey {
				if a.Value.String() == "INFO" {
					return slog.Attr{}
				}
			}
			return a
		},
	}))
)

func (cfg *MainConfig) logger() *slog.Logger {
	if cfg.Verbose {
		return debug.NewLogger(os.Stderr, slog.LevelDebug)
	}
	return theLog
}
