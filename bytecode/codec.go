package bytecode

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/ingzkp/zinc/semantic/types"
)

// FormatVersion is bumped whenever the binary layout changes; Decode
// rejects any other version outright rather than attempting to guess a
// compatible subset.
const FormatVersion uint32 = 1

var magic = [4]byte{'Z', 'N', 'B', 'C'}

// Encode serializes p into the deterministic wire format: a fixed header
// (magic, version), then the constant pool, function table, type schema,
// and instruction stream, each length-prefixed. Encoding the same
// Program twice always yields byte-identical output.
func Encode(p *Program) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(magic[:])
	writeUint32(&buf, FormatVersion)

	writeUint32(&buf, uint32(len(p.Constants)))
	for _, c := range p.Constants {
		writeUint32(&buf, uint32(len(c)))
		buf.Write(c)
	}

	writeUint32(&buf, uint32(len(p.Functions)))
	for _, f := range p.Functions {
		writeString(&buf, f.Name)
		writeUint32(&buf, uint32(f.Start))
		writeUint32(&buf, uint32(f.LocalCount))
	}

	writeString(&buf, p.Entry)

	if err := writeTypeSchema(&buf, p.InputNames, p.InputTypes); err != nil {
		return nil, errors.Wrap(err, "encoding input schema")
	}
	if err := writeTypeSchema(&buf, nil, p.OutputTypes); err != nil {
		return nil, errors.Wrap(err, "encoding output schema")
	}

	writeUint32(&buf, uint32(len(p.Instructions)))
	for _, instr := range p.Instructions {
		buf.WriteByte(byte(instr.Op))
		writeInt64(&buf, instr.Operand)
	}

	return buf.Bytes(), nil
}

// Decode parses bytes produced by Encode, rejecting anything with the
// wrong magic or an unsupported FormatVersion.
func Decode(data []byte) (*Program, error) {
	r := bytes.NewReader(data)
	var gotMagic [4]byte
	if _, err := r.Read(gotMagic[:]); err != nil || gotMagic != magic {
		return nil, errors.New("not a recognized bytecode program")
	}
	version, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("unsupported bytecode format version %d, expected %d", version, FormatVersion)
	}

	p := &Program{}

	constCount, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	p.Constants = make([][]byte, constCount)
	for i := range p.Constants {
		n, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, n)
		if _, err := r.Read(buf); err != nil {
			return nil, errors.Wrap(err, "reading constant pool entry")
		}
		p.Constants[i] = buf
	}

	fnCount, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	p.Functions = make([]FunctionEntry, fnCount)
	for i := range p.Functions {
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		start, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		locals, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		p.Functions[i] = FunctionEntry{Name: name, Start: int(start), LocalCount: int(locals)}
	}

	if p.Entry, err = readString(r); err != nil {
		return nil, err
	}

	if p.InputNames, p.InputTypes, err = readTypeSchema(r); err != nil {
		return nil, errors.Wrap(err, "decoding input schema")
	}
	if _, p.OutputTypes, err = readTypeSchema(r); err != nil {
		return nil, errors.Wrap(err, "decoding output schema")
	}

	instrCount, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	p.Instructions = make([]Instruction, instrCount)
	for i := range p.Instructions {
		opByte, err := r.ReadByte()
		if err != nil {
			return nil, errors.Wrap(err, "reading instruction opcode")
		}
		operand, err := readInt64(r)
		if err != nil {
			return nil, err
		}
		p.Instructions[i] = Instruction{Op: Opcode(opByte), Operand: operand}
	}

	return p, nil
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeInt64(buf *bytes.Buffer, v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	buf.Write(b[:])
}

func writeString(buf *bytes.Buffer, s string) {
	writeUint32(buf, uint32(len(s)))
	buf.WriteString(s)
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := r.Read(b[:]); err != nil {
		return 0, errors.Wrap(err, "reading uint32")
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func readInt64(r *bytes.Reader) (int64, error) {
	var b [8]byte
	if _, err := r.Read(b[:]); err != nil {
		return 0, errors.Wrap(err, "reading int64")
	}
	return int64(binary.BigEndian.Uint64(b[:])), nil
}

func readString(r *bytes.Reader) (string, error) {
	n, err := readUint32(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := r.Read(buf); err != nil {
		return "", errors.Wrap(err, "reading string")
	}
	return string(buf), nil
}

// writeTypeSchema serializes a flat list of (optional name, type) pairs
// by recursively encoding each *types.Type's shape rather than its
// String() form, so decoding never has to re-parse type syntax.
func writeTypeSchema(buf *bytes.Buffer, names []string, ts []*types.Type) error {
	writeUint32(buf, uint32(len(ts)))
	for i, t := range ts {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		writeString(buf, name)
		if err := writeType(buf, t); err != nil {
			return err
		}
	}
	return nil
}

func readTypeSchema(r *bytes.Reader) ([]string, []*types.Type, error) {
	count, err := readUint32(r)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, count)
	ts := make([]*types.Type, count)
	for i := range ts {
		name, err := readString(r)
		if err != nil {
			return nil, nil, err
		}
		t, err := readType(r)
		if err != nil {
			return nil, nil, err
		}
		names[i] = name
		ts[i] = t
	}
	return names, ts, nil
}

func writeType(buf *bytes.Buffer, t *types.Type) error {
	buf.WriteByte(byte(t.Kind))
	switch t.Kind {
	case types.KindInteger:
		if t.Signed {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
		writeUint32(buf, uint32(t.Bits))
	case types.KindArray:
		writeUint32(buf, uint32(t.Size))
		return writeType(buf, t.Element)
	case types.KindTuple:
		writeUint32(buf, uint32(len(t.Elements)))
		for _, e := range t.Elements {
			if err := writeType(buf, e); err != nil {
				return err
			}
		}
	case types.KindStruct:
		writeString(buf, t.Name)
		writeUint32(buf, uint32(len(t.Fields)))
		for _, f := range t.Fields {
			writeString(buf, f.Name)
			if err := writeType(buf, f.Type); err != nil {
				return err
			}
		}
	case types.KindEnum:
		writeString(buf, t.Name)
		return writeType(buf, t.Repr)
	}
	return nil
}

func readType(r *bytes.Reader) (*types.Type, error) {
	kindByte, err := r.ReadByte()
	if err != nil {
		return nil, errors.Wrap(err, "reading type kind")
	}
	kind := types.Kind(kindByte)
	switch kind {
	case types.KindUnit:
		return types.Unit, nil
	case types.KindBool:
		return types.Bool, nil
	case types.KindField:
		return types.Field, nil
	case types.KindString:
		return types.String, nil
	case types.KindInteger:
		signedByte, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		bits, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		return types.Integer(signedByte == 1, int(bits)), nil
	case types.KindArray:
		size, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		elem, err := readType(r)
		if err != nil {
			return nil, err
		}
		return types.Array(elem, int(size)), nil
	case types.KindTuple:
		n, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		elems := make([]*types.Type, n)
		for i := range elems {
			if elems[i], err = readType(r); err != nil {
				return nil, err
			}
		}
		return types.Tuple(elems), nil
	case types.KindStruct:
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		n, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		fields := make([]types.StructField, n)
		for i := range fields {
			fname, err := readString(r)
			if err != nil {
				return nil, err
			}
			ftype, err := readType(r)
			if err != nil {
				return nil, err
			}
			fields[i] = types.StructField{Name: fname, Type: ftype}
		}
		return types.Struct(name, fields), nil
	case types.KindEnum:
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		repr, err := readType(r)
		if err != nil {
			return nil, err
		}
		return types.Enum(name, repr), nil
	default:
		return nil, fmt.Errorf("unrecognized encoded type kind %d", kindByte)
	}
}
