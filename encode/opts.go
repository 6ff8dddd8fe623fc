package encode

import (
	"log/slog"

	"golang.org/x/text/encoding"

	"github.com/signadot/gff-format/debug"
	"github.com/signadot/gff-format/ir"
)

type EncodeOption func(*EncState)

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{
		maxDepth:  ir.DefaultMaxDepth,
		resRefMax: ir.ResRefMax,
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.logger == nil {
		if debug.Encode() {
			es.logger = debug.Logger()
		} else {
			es.logger = debug.Discard()
		}
	}
	return es
}

// MaxDepth bounds struct nesting of the encoded tree.
func MaxDepth(n int) EncodeOption {
	return func(es *EncState) { es.maxDepth = n }
}

// TextEncoding encodes UTF-8 strings to enc before writing them.
func TextEncoding(enc encoding.Encoding) EncodeOption {
	return func(es *EncState) { es.encoding = enc }
}

// ResRefLimit sets the longest resref accepted, ir.ResRefMax by default.
func ResRefLimit(n int) EncodeOption {
	return func(es *EncState) { es.resRefMax = n }
}

func Logger(l *slog.Logger) EncodeOption {
	return func(es *EncState) { es.logger = l }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// DumpDepth limits Dump to nodes at most n levels deep; 0 means no limit.
func DumpDepth(n int) EncodeOption {
	return func(es *EncState) { es.dumpDepth = n }
}

// NewEncState returns the state built from opts, for callers rendering
// single lines with DumpLine.
func NewEncState(opts ...EncodeOption) *EncState {
	return newEncState(opts)
}
