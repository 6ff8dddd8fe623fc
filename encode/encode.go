package encode

import (
	"encoding/binary"
	"io"
	"log/slog"
	"math"
	"strconv"

	"golang.org/x/text/encoding"

	"github.com/signadot/gff-format/format"
	"github.com/signadot/gff-format/ir"
)

type EncState struct {
	maxDepth  int
	resRefMax int
	encoding  encoding.Encoding
	logger    *slog.Logger

	dumpDepth int
	Color     func(ir.Kind, ColorAttr, string) string
}

// Encode writes doc to w. Nothing is written unless the whole tree
// validates.
func Encode(doc *ir.Document, w io.Writer, opts ...EncodeOption) error {
	d, err := Bytes(doc, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

// Bytes returns the encoding of doc.
func Bytes(doc *ir.Document, opts ...EncodeOption) ([]byte, error) {
	return EncodeStruct(doc.Root, doc.Type, doc.Version, opts...)
}

// EncodeStruct encodes root as the top-level struct of a file with the
// given type and version tags.
func EncodeStruct(root *ir.Struct, typeTag, versionTag string, opts ...EncodeOption) ([]byte, error) {
	es := newEncState(opts)
	if err := checkTag("type", typeTag); err != nil {
		return nil, err
	}
	if err := checkTag("version", versionTag); err != nil {
		return nil, err
	}
	// with a text encoding the resref limit applies to the encoded
	// bytes, checked in writeField
	limit := es.resRefMax
	if es.encoding != nil {
		limit = 0
	}
	if err := ir.Validate(root, ir.ResRefLimit(limit), ir.MaxDepth(es.maxDepth)); err != nil {
		return nil, err
	}
	w := &writer{es: es, labelIndex: map[string]uint32{}}
	if _, err := w.writeStruct(root, ""); err != nil {
		return nil, err
	}
	h := w.header(typeTag, versionTag)
	es.logger.Debug("encoded",
		slog.String("type", typeTag),
		slog.Int("structs", int(h.Structs.Count)),
		slog.Int("fields", int(h.Fields.Count)),
		slog.Int("labels", int(h.Labels.Count)),
		slog.Int("field_data", int(h.FieldData.Count)),
		slog.Int("field_indices", int(h.FieldIndices.Count)),
		slog.Int("list_indices", int(h.ListIndices.Count)))

	size := int(h.ListIndices.Offset + h.ListIndices.Count)
	d := make([]byte, 0, size)
	d = h.AppendBinary(d)
	d = appendUint32s(d, w.structs)
	d = appendUint32s(d, w.fields)
	for _, l := range w.labels {
		var b [format.LabelSize]byte
		copy(b[:], l)
		d = append(d, b[:]...)
	}
	d = append(d, w.fieldData...)
	d = appendUint32s(d, w.fieldIndices)
	d = appendUint32s(d, w.listIndices)
	return d, nil
}

func appendUint32s(d []byte, vs []uint32) []byte {
	for _, v := range vs {
		d = binary.LittleEndian.AppendUint32(d, v)
	}
	return d
}

// writer accumulates the six regions. structs and fields hold three
// words per entry.
type writer struct {
	es *EncState

	structs      []uint32
	fields       []uint32
	labels       []string
	labelIndex   map[string]uint32
	fieldData    []byte
	fieldIndices []uint32
	listIndices  []uint32
}

func (w *writer) label(l string) uint32 {
	if i, ok := w.labelIndex[l]; ok {
		return i
	}
	i := uint32(len(w.labels))
	w.labels = append(w.labels, l)
	w.labelIndex[l] = i
	return i
}

func (w *writer) addField(k ir.Kind, label string, data uint32) uint32 {
	w.fields = append(w.fields, uint32(k), w.label(label), data)
	return uint32(len(w.fields)/3 - 1)
}

func (w *writer) writeStruct(s *ir.Struct, path string) (uint32, error) {
	index := uint32(len(w.structs) / 3)
	w.structs = append(w.structs, s.StructID, 0, 0)

	var fis []uint32
	for _, label := range s.Labels() {
		fi, err := w.writeField(s.Fields[label], path+"/"+label)
		if err != nil {
			return 0, err
		}
		fis = append(fis, fi)
	}

	w.structs[3*index+2] = uint32(len(fis))
	switch len(fis) {
	case 0:
	case 1:
		w.structs[3*index+1] = fis[0]
	default:
		w.structs[3*index+1] = uint32(format.IndexSize * len(w.fieldIndices))
		w.fieldIndices = append(w.fieldIndices, fis...)
	}
	return index, nil
}

func (w *writer) writeField(f *ir.Field, path string) (uint32, error) {
	k := f.Kind()
	switch v := f.Value.(type) {
	case ir.Byte:
		return w.addField(k, f.Label, uint32(v)), nil
	case ir.Char:
		return w.addField(k, f.Label, uint32(v)), nil
	case ir.Word:
		return w.addField(k, f.Label, uint32(v)), nil
	case ir.Short:
		return w.addField(k, f.Label, uint32(uint16(v))), nil
	case ir.Dword:
		return w.addField(k, f.Label, uint32(v)), nil
	case ir.Int:
		return w.addField(k, f.Label, uint32(v)), nil
	case ir.Float:
		return w.addField(k, f.Label, math.Float32bits(float32(v))), nil

	case ir.Dword64:
		fi := w.addField(k, f.Label, w.dataOffset())
		w.fieldData = binary.LittleEndian.AppendUint32(w.fieldData, uint32(uint64(v)>>32))
		w.fieldData = binary.LittleEndian.AppendUint32(w.fieldData, uint32(v))
		return fi, nil
	case ir.Int64:
		fi := w.addField(k, f.Label, w.dataOffset())
		w.fieldData = binary.LittleEndian.AppendUint64(w.fieldData, uint64(v))
		return fi, nil
	case ir.Double:
		fi := w.addField(k, f.Label, w.dataOffset())
		w.fieldData = binary.LittleEndian.AppendUint64(w.fieldData, math.Float64bits(float64(v)))
		return fi, nil
	case ir.Void:
		fi := w.addField(k, f.Label, w.dataOffset())
		w.fieldData = binary.LittleEndian.AppendUint32(w.fieldData, uint32(len(v)))
		w.fieldData = append(w.fieldData, v...)
		return fi, nil

	case ir.CExoStr:
		b, err := w.text(string(v), path)
		if err != nil {
			return 0, err
		}
		fi := w.addField(k, f.Label, w.dataOffset())
		w.fieldData = binary.LittleEndian.AppendUint32(w.fieldData, uint32(len(b)))
		w.fieldData = append(w.fieldData, b...)
		return fi, nil
	case ir.ResRef:
		b, err := w.text(string(v), path)
		if err != nil {
			return 0, err
		}
		if len(b) > math.MaxUint8 || len(b) > w.es.resRefMax {
			return 0, ir.NewError(ir.PhaseEncode, ir.TypeMismatch).WithPath(path).WithLabel(f.Label).
				Detailf("encoded resref is %d bytes, limit %d", len(b), w.es.resRefMax)
		}
		fi := w.addField(k, f.Label, w.dataOffset())
		w.fieldData = append(w.fieldData, byte(len(b)))
		w.fieldData = append(w.fieldData, b...)
		return fi, nil
	case ir.LocString:
		return w.writeLocString(f, v, path)

	case *ir.Struct:
		si, err := w.writeStruct(v, path)
		if err != nil {
			return 0, err
		}
		return w.addField(k, f.Label, si), nil
	case *ir.List:
		start := len(w.listIndices)
		fi := w.addField(k, f.Label, uint32(format.IndexSize*start))
		w.listIndices = append(w.listIndices, uint32(v.Len()))
		w.listIndices = append(w.listIndices, make([]uint32, v.Len())...)
		for i, elt := range *v {
			si, err := w.writeStruct(elt, path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return 0, err
			}
			w.listIndices[start+1+i] = si
		}
		return fi, nil
	}
	return 0, ir.NewError(ir.PhaseEncode, ir.UnknownFieldType).WithPath(path).WithLabel(f.Label).
		Detailf("%T", f.Value)
}

func (w *writer) writeLocString(f *ir.Field, v ir.LocString, path string) (uint32, error) {
	langs := v.Languages()
	texts := make([][]byte, len(langs))
	total := 8
	for i, lang := range langs {
		b, err := w.text(v[lang], path+"/"+strconv.FormatUint(uint64(lang), 10))
		if err != nil {
			return 0, err
		}
		texts[i] = b
		total += 8 + len(b)
	}
	fi := w.addField(ir.KindCExoLocStr, f.Label, w.dataOffset())
	w.fieldData = binary.LittleEndian.AppendUint32(w.fieldData, uint32(total))
	w.fieldData = binary.LittleEndian.AppendUint32(w.fieldData, f.StrRef)
	w.fieldData = binary.LittleEndian.AppendUint32(w.fieldData, uint32(len(langs)))
	for i, lang := range langs {
		w.fieldData = binary.LittleEndian.AppendUint32(w.fieldData, lang)
		w.fieldData = binary.LittleEndian.AppendUint32(w.fieldData, uint32(len(texts[i])))
		w.fieldData = append(w.fieldData, texts[i]...)
	}
	return fi, nil
}

func (w *writer) dataOffset() uint32 {
	return uint32(len(w.fieldData))
}

func (w *writer) text(s, path string) ([]byte, error) {
	if w.es.encoding == nil {
		return []byte(s), nil
	}
	b, err := w.es.encoding.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, ir.NewError(ir.PhaseEncode, ir.TypeMismatch).WithPath(path).WithCause(err).
			Detailf("text not representable")
	}
	return b, nil
}
