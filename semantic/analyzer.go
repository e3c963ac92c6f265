// Package semantic performs the compiler's middle pass: given a parsed
// module, it resolves names, checks and infers types, folds constant
// expressions, checks match exhaustiveness, and produces a Program ready
// for bytecode emission.
package semantic

import (
	"errors"
	"fmt"

	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/semantic/element"
	"github.com/ingzkp/zinc/semantic/scope"
	"github.com/ingzkp/zinc/semantic/types"
	"github.com/ingzkp/zinc/syntax"
)

// Param is one resolved function parameter.
type Param struct {
	Name string
	Type *types.Type
}

// Function is a fully type-resolved function ready for IR emission. Body
// keeps referencing the original syntax tree; ExprTypes on the owning
// Program records every sub-expression's resolved type.
type Function struct {
	Name       string
	IsConstFn  bool
	Params     []Param
	ReturnType *types.Type
	Body       *syntax.BlockExpr
}

// Program is the output of semantic analysis: every item a module root
// declares, flattened and type-resolved, plus the single `main` entry
// point's wire schema.
type Program struct {
	Structs   map[string]*types.Type
	Enums     map[string]*types.Type
	Constants map[string]element.Const
	Functions map[string]*Function

	Entry       *Function
	InputNames  []string
	InputTypes  []*types.Type
	OutputTypes []*types.Type

	// ExprTypes records the resolved type of every expression node
	// visited during analysis, keyed by identity.
	ExprTypes map[syntax.Expr]*types.Type
}

// Analyzer walks a module in successive passes (type declarations, value
// declarations, function bodies, then the entry point), building the
// scope tree and Program alongside; diagnostics accumulate in Diags rather
// than aborting immediately, so a single run can report more than one
// error.
type Analyzer struct {
	Diags *diagnostics.Bag

	root    *scope.Scope
	program *Program

	currentFn     *Function
	currentScope  *scope.Scope
}

// New creates an Analyzer with an empty root scope.
func New() *Analyzer {
	return &Analyzer{
		Diags: &diagnostics.Bag{},
		root:  scope.Root(),
		program: &Program{
			Structs:   make(map[string]*types.Type),
			Enums:     make(map[string]*types.Type),
			Constants: make(map[string]element.Const),
			Functions: make(map[string]*Function),
			ExprTypes: make(map[syntax.Expr]*types.Type),
		},
	}
}

// Analyze runs the full pipeline over a single module and returns the
// resolved Program, or nil if any diagnostic was raised.
func (a *Analyzer) Analyze(mod *syntax.Module) (*Program, *diagnostics.Bag) {
	a.currentScope = a.root

	a.declareTypes(mod.Statements)
	a.declareValues(mod.Statements)
	a.checkFunctionBodies(mod.Statements)
	a.resolveEntry()

	if !a.Diags.Empty() {
		return nil, a.Diags
	}
	return a.program, a.Diags
}

func (a *Analyzer) errorf(loc diagnostics.Location, format string, args ...interface{}) {
	a.Diags.Add(diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch, loc, fmt.Sprintf(format, args...)))
}

// report adds err to the diagnostic bag. When err wraps (or is) a
// *diagnostics.Diagnostic raised deeper in the type-checking call chain,
// that diagnostic's own Category/Kind/Location/Offending are preserved
// verbatim rather than collapsed into a generic type-mismatch at
// fallback's location; fallback is used only for errors with no such
// identity (a bare fmt.Errorf from a call site not yet converted).
func (a *Analyzer) report(fallback diagnostics.Location, err error) {
	var d *diagnostics.Diagnostic
	if errors.As(err, &d) {
		a.Diags.Add(d)
		return
	}
	a.errorf(fallback, "%v", err)
}

func (a *Analyzer) redeclared(loc diagnostics.Location, err error) {
	a.Diags.Add(diagnostics.New(diagnostics.CategoryScope, diagnostics.KindItemRedeclared, loc, err.Error()))
}

// declareTypes is a first pass over struct/enum/type declarations only,
// so that forward references between items (a struct whose field type is
// declared later in the same file) resolve correctly.
func (a *Analyzer) declareTypes(stmts []syntax.Stmt) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *syntax.StructStmt:
			a.program.Structs[s.Name] = &types.Type{Kind: types.KindStruct, Name: s.Name}
		case *syntax.EnumStmt:
			a.program.Enums[s.Name] = &types.Type{Kind: types.KindEnum, Name: s.Name}
		}
	}
	// Second sub-pass: now that every name exists, fill in field/repr
	// details, which may reference other named types.
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *syntax.StructStmt:
			fields := make([]types.StructField, 0, len(s.Fields))
			for _, f := range s.Fields {
				ft, err := a.resolveTypeExpr(f.Type)
				if err != nil {
					a.report(s.Loc(), err)
					continue
				}
				fields = append(fields, types.StructField{Name: f.Name, Type: ft})
			}
			a.program.Structs[s.Name].Fields = fields
			if err := a.root.Declare(&scope.Item{Kind: scope.ItemType, Name: s.Name, Type: a.program.Structs[s.Name]}); err != nil {
				a.redeclared(s.Loc(), err)
			}
		case *syntax.EnumStmt:
			enumType := a.program.Enums[s.Name]
			values := a.evalEnumVariantValues(s)
			enumType.Repr = smallestUnsignedForValue(maxInt64(values))
			if err := a.root.Declare(&scope.Item{Kind: scope.ItemType, Name: s.Name, Type: enumType}); err != nil {
				a.redeclared(s.Loc(), err)
			}
			a.declareEnumVariants(s, enumType, values)
		case *syntax.TypeStmt:
			target, err := a.resolveTypeExpr(s.Type)
			if err != nil {
				a.report(s.Loc(), err)
				continue
			}
			if err := a.root.Declare(&scope.Item{Kind: scope.ItemType, Name: s.Name, Type: target}); err != nil {
				a.redeclared(s.Loc(), err)
			}
		}
	}
}

// discriminantWidths are the integer widths an enum's representation may
// promote to, in ascending order: the language's conventional concrete
// integer sizes rather than a raw bit count, so `enum { A = 512 }` lands
// on u16 rather than the literal 10 bits 512 needs.
var discriminantWidths = []int{8, 16, 32, 64, 128, 248}

// smallestUnsignedForValue picks the narrowest discriminantWidths entry
// wide enough to hold max as an unsigned value.
func smallestUnsignedForValue(max int64) *types.Type {
	v := uint64(max)
	for _, bits := range discriminantWidths {
		if bits >= 64 || v < (uint64(1)<<uint(bits)) {
			return types.Integer(false, bits)
		}
	}
	return types.Integer(false, discriminantWidths[len(discriminantWidths)-1])
}

func maxInt64(values []int64) int64 {
	var max int64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

// evalEnumVariantValues folds each variant's explicit discriminant (or the
// auto-incremented predecessor+1) before enumType.Repr is sized, so the
// representation can be picked from the actual value range rather than
// merely the variant count.
func (a *Analyzer) evalEnumVariantValues(s *syntax.EnumStmt) []int64 {
	next := int64(0)
	values := make([]int64, len(s.Variants))
	for i, v := range s.Variants {
		val := next
		if v.Value != nil {
			c, err := a.evalConstExpr(v.Value, a.root)
			if err != nil {
				a.report(s.Loc(), err)
			} else {
				val = c.Field.BigInt().Int64()
			}
		}
		values[i] = val
		next = val + 1
	}
	return values
}

func (a *Analyzer) declareEnumVariants(s *syntax.EnumStmt, enumType *types.Type, values []int64) {
	for i, v := range s.Variants {
		name := s.Name + "::" + v.Name
		a.program.Constants[name] = element.Const{Type: enumType, Field: element.FieldFromUint64(uint64(values[i]))}
	}
}

// declareValues registers top-level const/static/function names so that
// any function can reference any other, regardless of declaration order.
func (a *Analyzer) declareValues(stmts []syntax.Stmt) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *syntax.ConstStmt:
			a.declareConst(s.Name, s.Type, s.Value, s.Loc())
		case *syntax.StaticStmt:
			a.declareConst(s.Name, s.Type, s.Value, s.Loc())
		case *syntax.FnStmt:
			a.declareFunction(s.Name, s)
		case *syntax.ImplStmt:
			for _, item := range s.Items {
				switch it := item.(type) {
				case *syntax.FnStmt:
					a.declareFunction(s.Target+"::"+it.Name, it)
				case *syntax.ConstStmt:
					a.declareConst(s.Target+"::"+it.Name, it.Type, it.Value, it.Loc())
				}
			}
		}
	}
}

func (a *Analyzer) declareConst(name string, typeExpr syntax.TypeExpr, value syntax.Expr, loc diagnostics.Location) {
	declared, err := a.resolveTypeExpr(typeExpr)
	if err != nil {
		a.report(loc, err)
		return
	}
	c, err := a.evalConstExprExpected(value, a.root, declared)
	if err != nil {
		a.report(loc, err)
		return
	}
	a.program.Constants[name] = c
	if err := a.root.Declare(&scope.Item{Kind: scope.ItemConstant, Name: name, Type: declared}); err != nil {
		a.redeclared(loc, err)
	}
}

func (a *Analyzer) declareFunction(name string, s *syntax.FnStmt) {
	params := make([]Param, 0, len(s.Params))
	paramTypes := make([]*types.Type, 0, len(s.Params))
	for _, p := range s.Params {
		if p.IsSelf {
			continue
		}
		pt, err := a.resolveTypeExpr(p.Type)
		if err != nil {
			a.report(p.Location, err)
			continue
		}
		params = append(params, Param{Name: p.Name, Type: pt})
		paramTypes = append(paramTypes, pt)
	}
	ret := types.Unit
	if s.ReturnType != nil {
		rt, err := a.resolveTypeExpr(s.ReturnType)
		if err != nil {
			a.report(s.Loc(), err)
		} else {
			ret = rt
		}
	}
	fn := &Function{Name: name, IsConstFn: s.IsConst, Params: params, ReturnType: ret, Body: s.Body}
	a.program.Functions[name] = fn
	if err := a.root.Declare(&scope.Item{Kind: scope.ItemFunction, Name: name, Type: ret, Params: paramTypes, IsConstFn: s.IsConst}); err != nil {
		a.redeclared(s.Loc(), err)
	}
}

// resolveEntry locates the `main` function, which defines the circuit's
// public input/output schema: its parameters are the circuit's inputs
// and its return type is the circuit's output.
func (a *Analyzer) resolveEntry() {
	main, ok := a.program.Functions["main"]
	if !ok {
		a.errorf(diagnostics.Location{}, "no main function found")
		return
	}
	a.program.Entry = main
	for _, p := range main.Params {
		a.program.InputNames = append(a.program.InputNames, p.Name)
		a.program.InputTypes = append(a.program.InputTypes, p.Type)
	}
	if main.ReturnType.Kind != types.KindUnit {
		a.program.OutputTypes = []*types.Type{main.ReturnType}
	}
}
