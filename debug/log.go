package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/signadot/gff-format/ir"
)

// Logger returns a debug level text logger on stderr.
func Logger() *slog.Logger {
	return NewLogger(os.Stderr, slog.LevelDebug)
}

// NewLogger returns a text logger writing to w without timestamps.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Logf prints to stderr, rendering *ir.Struct and *ir.Document
// arguments as flat path listings.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *ir.Struct:
			args[i] = Flat(x)
		case *ir.Document:
			args[i] = fmt.Sprintf("%s %s\n%s", x.Type, x.Version, Flat(x.Root))
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

// Flat renders a tree one node per line as "path (kind) value".
func Flat(s *ir.Struct) string {
	if s == nil {
		return "<nil>"
	}
	b := &strings.Builder{}
	_ = s.Walk(func(e *ir.Entry) error {
		switch v := e.Value().(type) {
		case *ir.Struct:
			fmt.Fprintf(b, "%s (struct %d)\n", e.Path, v.StructID)
		case *ir.List:
			fmt.Fprintf(b, "%s (list) %d\n", e.Path, v.Len())
		case ir.LocString:
			fmt.Fprintf(b, "%s (cexolocstr) %d\n", e.Path, e.StrRef())
		default:
			fmt.Fprintf(b, "%s (%s) %v\n", e.Path, e.Kind(), v)
		}
		return nil
	})
	return b.String()
}
