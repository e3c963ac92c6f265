// Package types holds the semantic type model: the types values carry
// after resolution, as distinct from the syntax package's unresolved
// TypeExpr trees.
package types

import "fmt"

// Kind discriminates the arms of the Type tagged union.
type Kind int

const (
	KindUnit Kind = iota
	KindBool
	KindInteger
	KindField
	KindArray
	KindTuple
	KindStruct
	KindEnum
	KindString // compile-time-only, never appears in a circuit input/output
)

// Type is the tagged union every expression, place, and declaration carries
// after semantic analysis: unit | bool | u<N>/i<N> | field | array(T, n) |
// tuple(T...) | struct(name, fields) | enum(name, repr) | string.
type Type struct {
	Kind Kind

	// KindInteger
	Signed bool
	Bits   int

	// KindArray
	Element *Type
	Size    int

	// KindTuple
	Elements []*Type

	// KindStruct / KindEnum
	Name   string
	Fields []StructField  // KindStruct
	Repr   *Type          // KindEnum: always an unsigned integer type
}

type StructField struct {
	Name string
	Type *Type
}

var (
	Unit   = &Type{Kind: KindUnit}
	Bool   = &Type{Kind: KindBool}
	Field  = &Type{Kind: KindField}
	String = &Type{Kind: KindString}
)

// Integer returns the u<N> or i<N> type. Bits must be in 1..=248.
func Integer(signed bool, bits int) *Type {
	return &Type{Kind: KindInteger, Signed: signed, Bits: bits}
}

// Array returns the fixed-size array type [element; size].
func Array(element *Type, size int) *Type {
	return &Type{Kind: KindArray, Element: element, Size: size}
}

// Tuple returns the tuple type over the given elements. A single-element
// tuple is legal here; the parser is what collapses `(T)` to `T`.
func Tuple(elements []*Type) *Type {
	return &Type{Kind: KindTuple, Elements: elements}
}

// Struct returns a named struct type over the given fields, in declaration
// order (order matters: it is the order struct literals must initialize
// fields in and the order fields are flattened into circuit wires).
func Struct(name string, fields []StructField) *Type {
	return &Type{Kind: KindStruct, Name: name, Fields: fields}
}

// Enum returns a named enum type backed by repr, an unsigned integer type
// wide enough to hold every variant's discriminant.
func Enum(name string, repr *Type) *Type {
	return &Type{Kind: KindEnum, Name: name, Repr: repr}
}

// Equal reports structural equality: same shape and, for named types, same
// name (two structs with identical field lists but different names are
// distinct types).
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindInteger:
		return a.Signed == b.Signed && a.Bits == b.Bits
	case KindArray:
		return a.Size == b.Size && Equal(a.Element, b.Element)
	case KindTuple:
		if len(a.Elements) != len(b.Elements) {
			return false
		}
		for i := range a.Elements {
			if !Equal(a.Elements[i], b.Elements[i]) {
				return false
			}
		}
		return true
	case KindStruct, KindEnum:
		return a.Name == b.Name
	default:
		return true
	}
}

// IsScalar reports whether a value of this type occupies exactly one
// circuit wire: bool, integer, field, and enum (by its representation) are
// scalar; array, tuple, struct, and string are not.
func (t *Type) IsScalar() bool {
	switch t.Kind {
	case KindBool, KindInteger, KindField, KindEnum:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether arithmetic operators apply directly to this
// type: integer and field, but not bool or enum (an enum must be cast to
// its representation first).
func (t *Type) IsNumeric() bool {
	return t.Kind == KindInteger || t.Kind == KindField
}

func (t *Type) String() string {
	switch t.Kind {
	case KindUnit:
		return "()"
	case KindBool:
		return "bool"
	case KindInteger:
		if t.Signed {
			return fmt.Sprintf("i%d", t.Bits)
		}
		return fmt.Sprintf("u%d", t.Bits)
	case KindField:
		return "field"
	case KindArray:
		return fmt.Sprintf("[%s; %d]", t.Element, t.Size)
	case KindTuple:
		s := "("
		for i, e := range t.Elements {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + ")"
	case KindStruct, KindEnum:
		return t.Name
	case KindString:
		return "String"
	default:
		return "<invalid type>"
	}
}

// FlatWireCount is the number of circuit input/output wires a value of this
// type occupies: 1 for every scalar kind, and the recursive sum of element
// wire counts for array/tuple/struct. String never appears in an
// input/output schema.
func (t *Type) FlatWireCount() int {
	switch t.Kind {
	case KindUnit:
		return 0
	case KindArray:
		return t.Element.FlatWireCount() * t.Size
	case KindTuple:
		n := 0
		for _, e := range t.Elements {
			n += e.FlatWireCount()
		}
		return n
	case KindStruct:
		n := 0
		for _, f := range t.Fields {
			n += f.Type.FlatWireCount()
		}
		return n
	default:
		return 1
	}
}
