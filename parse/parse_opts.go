package parse

import (
	"log/slog"

	"golang.org/x/text/encoding"

	"github.com/signadot/gff-format/debug"
	"github.com/signadot/gff-format/ir"
)

type parseOpts struct {
	floatRounding int
	floatUnsigned bool
	encoding      encoding.Encoding
	version       string
	resRefMax     int
	maxDepth      int
	logger        *slog.Logger
}

type ParseOption func(*parseOpts)

func newParseOpts(opts []ParseOption) *parseOpts {
	o := &parseOpts{
		floatRounding: -1,
		version:       ir.DefaultVersion,
		maxDepth:      ir.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		if debug.Parse() {
			o.logger = debug.Logger()
		} else {
			o.logger = debug.Discard()
		}
	}
	return o
}

// FloatRounding rounds decoded float values to n decimal places. A
// negative n, the default, disables rounding.
func FloatRounding(n int) ParseOption {
	return func(o *parseOpts) { o.floatRounding = n }
}

// FloatUnsigned stores the absolute value of decoded floats.
func FloatUnsigned(v bool) ParseOption {
	return func(o *parseOpts) { o.floatUnsigned = v }
}

// TextEncoding decodes string payloads from enc to UTF-8. Without it
// strings keep their raw bytes.
func TextEncoding(enc encoding.Encoding) ParseOption {
	return func(o *parseOpts) { o.encoding = enc }
}

// SupportedVersion changes the version tag accepted in the header.
func SupportedVersion(v string) ParseOption {
	return func(o *parseOpts) { o.version = v }
}

// ResRefLimit rejects decoded resrefs longer than n bytes. By default
// any length the 1-byte prefix allows is accepted.
func ResRefLimit(n int) ParseOption {
	return func(o *parseOpts) { o.resRefMax = n }
}

func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}

func Logger(l *slog.Logger) ParseOption {
	return func(o *parseOpts) { o.logger = l }
}
