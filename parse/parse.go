package parse

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/signadot/gff-format/format"
	"github.com/signadot/gff-format/ir"
)

// Parse decodes a complete GFF buffer.
func Parse(data []byte, opts ...ParseOption) (*ir.Document, error) {
	o := newParseOpts(opts)
	h, err := parseHeader(data, o)
	if err != nil {
		return nil, err
	}
	p, err := newParser(data, h, o)
	if err != nil {
		return nil, err
	}
	root, err := p.parseStruct(0, "")
	if err != nil {
		return nil, err
	}
	return &ir.Document{Type: h.Type, Version: h.Version, Root: root}, nil
}

// ParseStruct decodes data and returns only the root struct.
func ParseStruct(data []byte, opts ...ParseOption) (*ir.Struct, error) {
	doc, err := Parse(data, opts...)
	if err != nil {
		return nil, err
	}
	return doc.Root, nil
}

// Read decodes everything r yields.
func Read(r io.Reader, opts ...ParseOption) (*ir.Document, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(d, opts...)
}

type parser struct {
	opts   *parseOpts
	header *format.Header

	structs      []byte
	fields       []byte
	labels       []string
	fieldData    []byte
	fieldIndices []byte
	listIndices  []byte

	active   map[uint32]bool
	resolved map[uint32]bool
	depth    int
}

func newParser(data []byte, h *format.Header, o *parseOpts) (*parser, error) {
	p := &parser{opts: o, header: h, active: map[uint32]bool{}, resolved: map[uint32]bool{}}
	var err error
	if p.structs, err = region(data, "struct table", h.Structs, format.StructEntrySize); err != nil {
		return nil, err
	}
	if p.fields, err = region(data, "field table", h.Fields, format.FieldEntrySize); err != nil {
		return nil, err
	}
	labels, err := region(data, "label table", h.Labels, format.LabelSize)
	if err != nil {
		return nil, err
	}
	if p.fieldData, err = region(data, "field data", h.FieldData, 1); err != nil {
		return nil, err
	}
	if p.fieldIndices, err = region(data, "field indices", h.FieldIndices, 1); err != nil {
		return nil, err
	}
	if p.listIndices, err = region(data, "list indices", h.ListIndices, 1); err != nil {
		return nil, err
	}
	p.labels = make([]string, h.Labels.Count)
	for i := range p.labels {
		l := labels[i*format.LabelSize : (i+1)*format.LabelSize]
		if j := bytes.IndexByte(l, 0); j >= 0 {
			l = l[:j]
		}
		p.labels[i] = string(l)
	}
	o.logger.Debug("regions",
		slog.String("type", h.Type),
		slog.Any("structs", h.Structs),
		slog.Any("fields", h.Fields),
		slog.Any("labels", h.Labels),
		slog.Any("field_data", h.FieldData),
		slog.Any("field_indices", h.FieldIndices),
		slog.Any("list_indices", h.ListIndices))
	return p, nil
}

func region(data []byte, name string, r format.Region, size int) ([]byte, error) {
	start := uint64(r.Offset)
	end := start + uint64(r.Count)*uint64(size)
	if end > uint64(len(data)) {
		return nil, ir.NewError(ir.PhaseDecode, ir.OutOfBounds).At(int64(start)).
			Detailf("%s [%d, %d) exceeds buffer of %d bytes", name, start, end, len(data))
	}
	return data[start:end], nil
}

func (p *parser) oob(region format.Region, off uint64, msg string, args ...any) *ir.Error {
	return ir.NewError(ir.PhaseDecode, ir.OutOfBounds).At(int64(region.Offset)+int64(off)).Detailf(msg, args...)
}

func (p *parser) parseStruct(index uint32, path string) (*ir.Struct, error) {
	n := uint64(len(p.structs) / format.StructEntrySize)
	if uint64(index) >= n {
		return nil, p.oob(p.header.Structs, uint64(index)*format.StructEntrySize,
			"struct index %d outside struct table of %d entries", index, n).WithPath(at(path))
	}
	if p.active[index] {
		return nil, ir.NewError(ir.PhaseDecode, ir.MalformedHeader).WithPath(at(path)).
			Detailf("struct cycle at struct index %d", index)
	}
	if p.resolved[index] {
		return nil, ir.NewError(ir.PhaseDecode, ir.MalformedHeader).WithPath(at(path)).
			Detailf("struct shared: struct index %d referenced twice", index)
	}
	if p.depth >= p.opts.maxDepth {
		return nil, ir.NewError(ir.PhaseDecode, ir.OutOfBounds).WithPath(at(path)).
			Detailf("maximum depth exceeded (%d)", p.opts.maxDepth)
	}
	p.active[index] = true
	p.resolved[index] = true
	p.depth++
	defer func() {
		delete(p.active, index)
		p.depth--
	}()

	e := p.structs[index*format.StructEntrySize:]
	id := binary.LittleEndian.Uint32(e)
	dataOrOffset := binary.LittleEndian.Uint32(e[4:])
	count := binary.LittleEndian.Uint32(e[8:])
	s := ir.NewStruct(id)

	switch {
	case count == 0:
		return s, nil
	case count == 1:
		if err := p.addField(s, dataOrOffset, path); err != nil {
			return nil, err
		}
		return s, nil
	}
	if dataOrOffset%format.IndexSize != 0 {
		return nil, p.oob(p.header.Structs, uint64(index)*format.StructEntrySize+4,
			"field index offset %d of struct %d not a multiple of 4", dataOrOffset, index).WithPath(at(path))
	}
	start := uint64(dataOrOffset)
	end := start + uint64(count)*format.IndexSize
	if end > uint64(len(p.fieldIndices)) {
		return nil, p.oob(p.header.FieldIndices, start,
			"struct %d field indices [%d, %d) exceed %d bytes", index, start, end, len(p.fieldIndices)).WithPath(at(path))
	}
	for off := start; off < end; off += format.IndexSize {
		fi := binary.LittleEndian.Uint32(p.fieldIndices[off:])
		if err := p.addField(s, fi, path); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (p *parser) addField(s *ir.Struct, index uint32, path string) error {
	f, err := p.parseField(index, path)
	if err != nil {
		return err
	}
	if s.Fields[f.Label] != nil {
		return ir.NewError(ir.PhaseDecode, ir.MalformedHeader).WithPath(path + "/" + f.Label).WithLabel(f.Label).
			Detailf("duplicate label")
	}
	s.Put(f)
	return nil
}

func (p *parser) parseField(index uint32, parent string) (*ir.Field, error) {
	n := uint64(len(p.fields) / format.FieldEntrySize)
	if uint64(index) >= n {
		return nil, p.oob(p.header.Fields, uint64(index)*format.FieldEntrySize,
			"field index %d outside field table of %d entries", index, n).WithPath(at(parent))
	}
	e := p.fields[index*format.FieldEntrySize:]
	typ := binary.LittleEndian.Uint32(e)
	labelIndex := binary.LittleEndian.Uint32(e[4:])
	data := binary.LittleEndian.Uint32(e[8:])
	if uint64(labelIndex) >= uint64(len(p.labels)) {
		return nil, p.oob(p.header.Fields, uint64(index)*format.FieldEntrySize+4,
			"label index %d outside label table of %d entries", labelIndex, len(p.labels)).WithPath(at(parent))
	}
	label := p.labels[labelIndex]
	path := parent + "/" + label
	k := ir.Kind(typ)
	if !k.Valid() {
		return nil, ir.NewError(ir.PhaseDecode, ir.UnknownFieldType).
			At(int64(p.header.Fields.Offset)+int64(index)*format.FieldEntrySize).
			WithPath(path).WithLabel(label).Detailf("type code %d", typ)
	}
	f := ir.NewField(label, nil)
	var err error
	if k == ir.KindCExoLocStr {
		f.Value, f.StrRef, err = p.locString(data)
	} else {
		f.Value, err = p.parseValue(k, data, path)
	}
	if err != nil {
		var ierr *ir.Error
		if errors.As(err, &ierr) {
			if ierr.Path == "" {
				ierr.Path = path
			}
			if ierr.Label == "" {
				ierr.Label = label
			}
		}
		return nil, err
	}
	return f, nil
}

func (p *parser) parseValue(k ir.Kind, data uint32, path string) (ir.Value, error) {
	switch k {
	case ir.KindByte:
		return ir.Byte(data), nil
	case ir.KindChar:
		return ir.Char(data), nil
	case ir.KindWord:
		return ir.Word(data), nil
	case ir.KindShort:
		return ir.Short(int16(uint16(data))), nil
	case ir.KindDword:
		return ir.Dword(data), nil
	case ir.KindInt:
		return ir.Int(int32(data)), nil
	case ir.KindFloat:
		return p.float(math.Float32frombits(data)), nil
	case ir.KindDword64:
		b, err := p.payload(data, 8)
		if err != nil {
			return nil, err
		}
		hi := binary.LittleEndian.Uint32(b)
		lo := binary.LittleEndian.Uint32(b[4:])
		return ir.Dword64(uint64(hi)<<32 | uint64(lo)), nil
	case ir.KindInt64:
		b, err := p.payload(data, 8)
		if err != nil {
			return nil, err
		}
		return ir.Int64(binary.LittleEndian.Uint64(b)), nil
	case ir.KindDouble:
		b, err := p.payload(data, 8)
		if err != nil {
			return nil, err
		}
		return ir.Double(math.Float64frombits(binary.LittleEndian.Uint64(b))), nil
	case ir.KindCExoStr:
		b, err := p.sized(data, 4)
		if err != nil {
			return nil, err
		}
		s, err := p.text(b)
		if err != nil {
			return nil, err
		}
		return ir.CExoStr(s), nil
	case ir.KindResRef:
		b, err := p.sized(data, 1)
		if err != nil {
			return nil, err
		}
		s, err := p.text(b)
		if err != nil {
			return nil, err
		}
		if p.opts.resRefMax > 0 && len(b) > p.opts.resRefMax {
			return nil, ir.NewError(ir.PhaseDecode, ir.TypeMismatch).At(int64(p.header.FieldData.Offset)+int64(data)).
				Detailf("resref %q is %d bytes, limit %d", s, len(b), p.opts.resRefMax)
		}
		return ir.ResRef(s), nil
	case ir.KindVoid:
		b, err := p.sized(data, 4)
		if err != nil {
			return nil, err
		}
		return ir.Void(bytes.Clone(b)), nil
	case ir.KindStruct:
		return p.parseStruct(data, path)
	case ir.KindList:
		return p.list(data, path)
	}
	return nil, ir.NewError(ir.PhaseDecode, ir.UnknownFieldType).Detailf("type code %d", uint32(k))
}

// payload returns n bytes of field data at off.
func (p *parser) payload(off uint32, n uint64) ([]byte, error) {
	start := uint64(off)
	end := start + n
	if end > uint64(len(p.fieldData)) {
		return nil, p.oob(p.header.FieldData, start,
			"field data [%d, %d) exceeds %d bytes", start, end, len(p.fieldData))
	}
	return p.fieldData[start:end], nil
}

// sized returns the bytes following a little-endian length prefix of
// prefix bytes at off.
func (p *parser) sized(off uint32, prefix uint64) ([]byte, error) {
	b, err := p.payload(off, prefix)
	if err != nil {
		return nil, err
	}
	var n uint64
	if prefix == 1 {
		n = uint64(b[0])
	} else {
		n = uint64(binary.LittleEndian.Uint32(b))
	}
	start := uint64(off) + prefix
	end := start + n
	if end > uint64(len(p.fieldData)) {
		return nil, p.oob(p.header.FieldData, start,
			"field data [%d, %d) exceeds %d bytes", start, end, len(p.fieldData))
	}
	return p.fieldData[start:end], nil
}

func (p *parser) locString(off uint32) (ir.LocString, uint32, error) {
	b, err := p.payload(off, 12)
	if err != nil {
		return nil, 0, err
	}
	total := uint64(binary.LittleEndian.Uint32(b))
	strRef := binary.LittleEndian.Uint32(b[4:])
	count := binary.LittleEndian.Uint32(b[8:])
	if total < 8 {
		return nil, 0, p.oob(p.header.FieldData, uint64(off), "cexolocstr size %d below 8", total)
	}
	body, err := p.payload(off+12, total-8)
	if err != nil {
		return nil, 0, err
	}
	texts := ir.LocString{}
	pos := uint64(0)
	for i := uint32(0); i < count; i++ {
		if pos+8 > uint64(len(body)) {
			return nil, 0, p.oob(p.header.FieldData, uint64(off)+12+pos,
				"cexolocstr entry %d header overflows %d bytes", i, len(body))
		}
		lang := binary.LittleEndian.Uint32(body[pos:])
		n := uint64(binary.LittleEndian.Uint32(body[pos+4:]))
		pos += 8
		if pos+n > uint64(len(body)) {
			return nil, 0, p.oob(p.header.FieldData, uint64(off)+12+pos,
				"cexolocstr entry %d text of %d bytes overflows %d bytes", i, n, len(body))
		}
		s, err := p.text(body[pos : pos+n])
		if err != nil {
			return nil, 0, err
		}
		texts[lang] = s
		pos += n
	}
	return texts, strRef, nil
}

func (p *parser) list(data uint32, path string) (ir.Value, error) {
	if data%format.IndexSize != 0 {
		return nil, p.oob(p.header.ListIndices, uint64(data), "list offset %d not a multiple of 4", data)
	}
	start := uint64(data)
	if start+format.IndexSize > uint64(len(p.listIndices)) {
		return nil, p.oob(p.header.ListIndices, start, "list offset %d outside %d bytes of list indices", data, len(p.listIndices))
	}
	count := uint64(binary.LittleEndian.Uint32(p.listIndices[start:]))
	end := start + format.IndexSize + count*format.IndexSize
	if end > uint64(len(p.listIndices)) {
		return nil, p.oob(p.header.ListIndices, start, "list of %d elements overflows %d bytes of list indices", count, len(p.listIndices))
	}
	l := make(ir.List, 0, count)
	for i := uint64(0); i < count; i++ {
		si := binary.LittleEndian.Uint32(p.listIndices[start+format.IndexSize*(i+1):])
		s, err := p.parseStruct(si, path+"["+strconv.FormatUint(i, 10)+"]")
		if err != nil {
			return nil, err
		}
		l = append(l, s)
	}
	return &l, nil
}

func (p *parser) float(f float32) ir.Float {
	if p.opts.floatRounding >= 0 {
		s := strconv.FormatFloat(float64(f), 'f', p.opts.floatRounding, 32)
		if r, err := strconv.ParseFloat(s, 32); err == nil {
			f = float32(r)
		}
	}
	if p.opts.floatUnsigned {
		f = float32(math.Abs(float64(f)))
	}
	return ir.Float(f)
}

func (p *parser) text(b []byte) (string, error) {
	if p.opts.encoding == nil {
		return string(b), nil
	}
	d, err := p.opts.encoding.NewDecoder().Bytes(b)
	if err != nil {
		return "", ir.NewError(ir.PhaseDecode, ir.TypeMismatch).WithCause(err).Detailf("text decoding")
	}
	return string(d), nil
}

func at(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
