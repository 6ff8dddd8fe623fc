package encode

import (
	"github.com/signadot/gff-format/format"
	"github.com/signadot/gff-format/ir"
)

func checkTag(which, tag string) error {
	if len(tag) > 4 {
		return ir.NewError(ir.PhaseEncode, ir.MalformedHeader).Detailf("%s tag %q longer than 4 bytes", which, tag)
	}
	return nil
}

// header lays the six regions out back to back after the preamble.
func (w *writer) header(typeTag, version string) format.Header {
	h := format.Header{Type: typeTag, Version: version}
	h.Structs = format.Region{Offset: format.HeaderSize, Count: uint32(len(w.structs) / 3)}
	h.Fields = format.Region{
		Offset: h.Structs.Offset + h.Structs.Count*format.StructEntrySize,
		Count:  uint32(len(w.fields) / 3),
	}
	h.Labels = format.Region{
		Offset: h.Fields.Offset + h.Fields.Count*format.FieldEntrySize,
		Count:  uint32(len(w.labels)),
	}
	h.FieldData = format.Region{
		Offset: h.Labels.Offset + h.Labels.Count*format.LabelSize,
		Count:  uint32(len(w.fieldData)),
	}
	h.FieldIndices = format.Region{
		Offset: h.FieldData.Offset + h.FieldData.Count,
		Count:  uint32(len(w.fieldIndices) * format.IndexSize),
	}
	h.ListIndices = format.Region{
		Offset: h.FieldIndices.Offset + h.FieldIndices.Count,
		Count:  uint32(len(w.listIndices) * format.IndexSize),
	}
	return h
}
