package scope

import (
	"fmt"

	"github.com/ingzkp/zinc/semantic/types"
)

// StepKind discriminates the arms a Place's access chain can take after
// its root variable: a struct field, a tuple field, or an array index.
type StepKind int

const (
	StepField StepKind = iota
	StepTupleField
	StepIndex
)

// Step is one link in a Place's access chain.
type Step struct {
	Kind       StepKind
	FieldName  string // StepField
	TupleIndex int    // StepTupleField
	// IndexConst holds a compile-time-known index for StepIndex, when the
	// index expression folded to a constant; -1 when it did not (the index
	// is only known at circuit-evaluation time, still legal for reads but
	// the place's flattened wire offset cannot be computed until then).
	IndexConst int
}

// Place describes an assignable or readable storage location: a root
// variable plus a chain of field/index accesses, together with its
// resolved type and whether its root was declared mutable.
type Place struct {
	Root    string
	Steps   []Step
	Type    *types.Type
	Mutable bool
}

// Field appends a struct-field step, resolving the new place's type from
// fieldType.
func (p Place) Field(name string, fieldType *types.Type) Place {
	p.Steps = append(append([]Step{}, p.Steps...), Step{Kind: StepField, FieldName: name})
	p.Type = fieldType
	return p
}

// TupleField appends a tuple-field step.
func (p Place) TupleField(index int, elementType *types.Type) Place {
	p.Steps = append(append([]Step{}, p.Steps...), Step{Kind: StepTupleField, TupleIndex: index})
	p.Type = elementType
	return p
}

// Index appends an array-index step. constIndex is -1 when the index is
// not compile-time-known.
func (p Place) Index(constIndex int, elementType *types.Type) Place {
	p.Steps = append(append([]Step{}, p.Steps...), Step{Kind: StepIndex, IndexConst: constIndex})
	p.Type = elementType
	return p
}

// FlatOffset computes this place's starting wire offset within its root
// variable's flattened layout, when every Index step along the chain is
// compile-time-known. It returns an error naming the first step that is
// not.
func (p Place) FlatOffset(rootType *types.Type) (int, error) {
	offset := 0
	cur := rootType
	for _, step := range p.Steps {
		switch step.Kind {
		case StepField:
			found := false
			for _, f := range cur.Fields {
				if f.Name == step.FieldName {
					cur = f.Type
					found = true
					break
				}
				offset += f.Type.FlatWireCount()
			}
			if !found {
				return 0, fmt.Errorf("no field %q in type %s", step.FieldName, cur)
			}
		case StepTupleField:
			if step.TupleIndex >= len(cur.Elements) {
				return 0, fmt.Errorf("tuple index %d out of range for type %s", step.TupleIndex, cur)
			}
			for i := 0; i < step.TupleIndex; i++ {
				offset += cur.Elements[i].FlatWireCount()
			}
			cur = cur.Elements[step.TupleIndex]
		case StepIndex:
			if step.IndexConst < 0 {
				return 0, fmt.Errorf("array index is not known at compile time")
			}
			offset += step.IndexConst * cur.Element.FlatWireCount()
			cur = cur.Element
		}
	}
	return offset, nil
}
