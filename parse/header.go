package parse

import (
	"github.com/signadot/gff-format/format"
	"github.com/signadot/gff-format/ir"
)

// ParseHeader decodes and checks the 56-byte preamble of d.
func ParseHeader(d []byte, opts ...ParseOption) (*format.Header, error) {
	return parseHeader(d, newParseOpts(opts))
}

func parseHeader(d []byte, o *parseOpts) (*format.Header, error) {
	if len(d) < format.HeaderSize {
		return nil, ir.NewError(ir.PhaseDecode, ir.OutOfBounds).At(int64(len(d))).
			Detailf("header needs %d bytes, have %d", format.HeaderSize, len(d))
	}
	h := format.DecodeHeader(d)
	if h.VersionTag() != o.version {
		return nil, ir.NewError(ir.PhaseDecode, ir.MalformedHeader).At(4).
			Detailf("unsupported version %q, want %q", h.Version, o.version)
	}
	if h.Structs.Offset != format.HeaderSize {
		return nil, ir.NewError(ir.PhaseDecode, ir.MalformedHeader).At(8).
			Detailf("struct table at %d, want %d", h.Structs.Offset, format.HeaderSize)
	}
	return &h, nil
}
