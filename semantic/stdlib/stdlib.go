// Package stdlib catalogs the intrinsic functions and compile-time-only
// facilities available without an explicit `use`: the small set of
// built-ins the language provides directly rather than through a
// user-definable function.
package stdlib

import (
	"fmt"

	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/semantic/types"
)

// Intrinsic describes one built-in function's call shape. Variadic
// intrinsics (dbg!) accept any number of trailing arguments after the
// fixed prefix described by Params.
type Intrinsic struct {
	Name       string
	Params     []*types.Type
	Variadic   bool
	ReturnType *types.Type

	// RequiresConstArg marks arguments that must fold to a compile-time
	// constant (e.g. a format string), by index into Params.
	RequiresConstArg map[int]bool
}

// dbg! and require are macro-like intrinsics recognized by name rather
// than resolved through scope: they accept a format/message string and
// one bool condition plus format arguments, and lower to debug-print or
// assertion bytecode rather than a call instruction.
var (
	Dbg = Intrinsic{
		Name:             "dbg",
		Params:           []*types.Type{types.String},
		Variadic:         true,
		ReturnType:       types.Unit,
		RequiresConstArg: map[int]bool{0: true},
	}
	Require = Intrinsic{
		Name:             "require",
		Params:           []*types.Type{types.Bool, types.String},
		ReturnType:       types.Unit,
		RequiresConstArg: map[int]bool{1: true},
	}
)

// Lookup finds a built-in by name, if one exists.
func Lookup(name string) (Intrinsic, bool) {
	switch name {
	case Dbg.Name:
		return Dbg, true
	case Require.Name:
		return Require, true
	default:
		return Intrinsic{}, false
	}
}

// IsStdlibType reports whether name is a compile-time-only type provided
// by the standard catalog rather than user `struct`/`enum` declarations.
// String is the only one: it exists purely to carry dbg!/require format
// text and never reaches a circuit input, output, or wire.
func IsStdlibType(name string) (*types.Type, bool) {
	if name == "String" {
		return types.String, true
	}
	return nil, false
}

// bits256 and bits512 are the bit-array shapes the hashing and signature
// library functions traffic in: a boolean per bit, most-significant first.
var (
	bits256 = types.Array(types.Bool, 256)
	bits512 = types.Array(types.Bool, 512)
)

// LibraryFunction describes one std::/zksync:: call: its full dotted
// path, the stable identifier the VM dispatches on, and a Validate
// callback that checks the call's argument types (and any
// compile-time-constant arguments already folded by the caller) and
// reports the call's result type. The front-end validates; the VM
// implements the behavior this call's ID names.
type LibraryFunction struct {
	Name      string
	ID        int64
	ArgCount  int
	ConstArgs map[int]bool
	Validate  func(args []*types.Type, constInts map[int]int64, loc diagnostics.Location) (*types.Type, error)
}

func argTypeError(loc diagnostics.Location, fn string, index int, expected, found *types.Type) error {
	msg := fmt.Sprintf("%s argument %d: expected %s, found %s", fn, index+1, expected, found)
	return diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArgumentType, loc, msg).
		With("function", fn).With("expected", expected.String()).With("found", found.String())
}

func requireArrayOf(loc diagnostics.Location, fn string, index int, elem *types.Type, found *types.Type) error {
	if found.Kind != types.KindArray || !types.Equal(found.Element, elem) {
		msg := fmt.Sprintf("%s argument %d: expected an array of %s, found %s", fn, index+1, elem, found)
		return diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArgumentType, loc, msg).
			With("function", fn).With("expected", "array of "+elem.String()).With("found", found.String())
	}
	return nil
}

// libraryCatalog is the closed set of standard-library calls: each maps
// to exactly one bytecode identifier; the VM owns the behavior, this
// package owns the call's admissible argument/result shape.
var libraryCatalog = map[string]LibraryFunction{
	"std::array::reverse": {
		Name: "std::array::reverse", ID: 1, ArgCount: 1,
		Validate: func(args []*types.Type, _ map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			if args[0].Kind != types.KindArray {
				return nil, argTypeError(loc, "std::array::reverse", 0, types.Array(types.Field, args[0].Size), args[0])
			}
			return args[0], nil
		},
	},
	"std::array::truncate": {
		Name: "std::array::truncate", ID: 2, ArgCount: 2, ConstArgs: map[int]bool{1: true},
		Validate: func(args []*types.Type, constInts map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			if args[0].Kind != types.KindArray {
				return nil, argTypeError(loc, "std::array::truncate", 0, types.Array(types.Field, 0), args[0])
			}
			n := int(constInts[1])
			if n < 0 || n > args[0].Size {
				return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArrayNewLengthInvalid, loc,
					fmt.Sprintf("std::array::truncate: new length %d exceeds array length %d", n, args[0].Size))
			}
			return types.Array(args[0].Element, n), nil
		},
	},
	"std::array::pad": {
		Name: "std::array::pad", ID: 3, ArgCount: 3, ConstArgs: map[int]bool{1: true},
		Validate: func(args []*types.Type, constInts map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			if args[0].Kind != types.KindArray {
				return nil, argTypeError(loc, "std::array::pad", 0, types.Array(types.Field, 0), args[0])
			}
			n := int(constInts[1])
			if n < args[0].Size {
				return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArrayPaddingToLesserSize, loc,
					fmt.Sprintf("std::array::pad: new length %d is smaller than array length %d", n, args[0].Size))
			}
			if !types.Equal(args[0].Element, args[2]) {
				return nil, argTypeError(loc, "std::array::pad", 2, args[0].Element, args[2])
			}
			return types.Array(args[0].Element, n), nil
		},
	},
	"std::convert::to_bits": {
		Name: "std::convert::to_bits", ID: 4, ArgCount: 1,
		Validate: func(args []*types.Type, _ map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			bits, err := scalarBits(args[0], loc, "std::convert::to_bits", 0)
			if err != nil {
				return nil, err
			}
			return types.Array(types.Bool, bits), nil
		},
	},
	"std::convert::from_bits_unsigned": {
		Name: "std::convert::from_bits_unsigned", ID: 5, ArgCount: 1,
		Validate: func(args []*types.Type, _ map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			if err := requireArrayOf(loc, "std::convert::from_bits_unsigned", 0, types.Bool, args[0]); err != nil {
				return nil, err
			}
			return types.Integer(false, args[0].Size), nil
		},
	},
	"std::convert::from_bits_signed": {
		Name: "std::convert::from_bits_signed", ID: 6, ArgCount: 1,
		Validate: func(args []*types.Type, _ map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			if err := requireArrayOf(loc, "std::convert::from_bits_signed", 0, types.Bool, args[0]); err != nil {
				return nil, err
			}
			return types.Integer(true, args[0].Size), nil
		},
	},
	"std::convert::from_bits_field": {
		Name: "std::convert::from_bits_field", ID: 7, ArgCount: 1,
		Validate: func(args []*types.Type, _ map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			if err := requireArrayOf(loc, "std::convert::from_bits_field", 0, types.Bool, args[0]); err != nil {
				return nil, err
			}
			return types.Field, nil
		},
	},
	"std::crypto::sha256": {
		Name: "std::crypto::sha256", ID: 8, ArgCount: 1,
		Validate: func(args []*types.Type, _ map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			if err := requireArrayOf(loc, "std::crypto::sha256", 0, types.Bool, args[0]); err != nil {
				return nil, err
			}
			return bits256, nil
		},
	},
	"std::crypto::pedersen": {
		Name: "std::crypto::pedersen", ID: 9, ArgCount: 1,
		Validate: func(args []*types.Type, _ map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			if err := requireArrayOf(loc, "std::crypto::pedersen", 0, types.Bool, args[0]); err != nil {
				return nil, err
			}
			return types.Tuple([]*types.Type{types.Field, types.Field}), nil
		},
	},
	"std::crypto::blake2s": {
		Name: "std::crypto::blake2s", ID: 10, ArgCount: 1,
		Validate: func(args []*types.Type, _ map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			if err := requireArrayOf(loc, "std::crypto::blake2s", 0, types.Bool, args[0]); err != nil {
				return nil, err
			}
			return bits256, nil
		},
	},
	"std::crypto::schnorr_signature_verify": {
		Name: "std::crypto::schnorr_signature_verify", ID: 11, ArgCount: 3,
		Validate: func(args []*types.Type, _ map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			if !types.Equal(args[0], bits512) {
				return nil, argTypeError(loc, "std::crypto::schnorr_signature_verify", 0, bits512, args[0])
			}
			if !types.Equal(args[1], bits256) {
				return nil, argTypeError(loc, "std::crypto::schnorr_signature_verify", 1, bits256, args[1])
			}
			if err := requireArrayOf(loc, "std::crypto::schnorr_signature_verify", 2, types.Bool, args[2]); err != nil {
				return nil, err
			}
			return types.Bool, nil
		},
	},
	"std::collections::MTreeMap::get": {
		Name: "std::collections::MTreeMap::get", ID: 12, ArgCount: 2, ConstArgs: map[int]bool{0: true},
		Validate: func(args []*types.Type, _ map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			if args[0].Kind != types.KindField {
				return nil, argTypeError(loc, "std::collections::MTreeMap::get", 0, types.Field, args[0])
			}
			if args[1].Kind != types.KindField {
				return nil, argTypeError(loc, "std::collections::MTreeMap::get", 1, types.Field, args[1])
			}
			return types.Tuple([]*types.Type{types.Field, types.Bool}), nil
		},
	},
	"std::collections::MTreeMap::contains": {
		Name: "std::collections::MTreeMap::contains", ID: 13, ArgCount: 2, ConstArgs: map[int]bool{0: true},
		Validate: func(args []*types.Type, _ map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			if args[0].Kind != types.KindField {
				return nil, argTypeError(loc, "std::collections::MTreeMap::contains", 0, types.Field, args[0])
			}
			if args[1].Kind != types.KindField {
				return nil, argTypeError(loc, "std::collections::MTreeMap::contains", 1, types.Field, args[1])
			}
			return types.Bool, nil
		},
	},
	"std::collections::MTreeMap::insert": {
		Name: "std::collections::MTreeMap::insert", ID: 14, ArgCount: 3, ConstArgs: map[int]bool{0: true},
		Validate: func(args []*types.Type, _ map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			if args[0].Kind != types.KindField {
				return nil, argTypeError(loc, "std::collections::MTreeMap::insert", 0, types.Field, args[0])
			}
			if args[1].Kind != types.KindField {
				return nil, argTypeError(loc, "std::collections::MTreeMap::insert", 1, types.Field, args[1])
			}
			if args[2].Kind != types.KindField {
				return nil, argTypeError(loc, "std::collections::MTreeMap::insert", 2, types.Field, args[2])
			}
			return types.Unit, nil
		},
	},
	"std::collections::MTreeMap::remove": {
		Name: "std::collections::MTreeMap::remove", ID: 15, ArgCount: 2, ConstArgs: map[int]bool{0: true},
		Validate: func(args []*types.Type, _ map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			if args[0].Kind != types.KindField {
				return nil, argTypeError(loc, "std::collections::MTreeMap::remove", 0, types.Field, args[0])
			}
			if args[1].Kind != types.KindField {
				return nil, argTypeError(loc, "std::collections::MTreeMap::remove", 1, types.Field, args[1])
			}
			return types.Unit, nil
		},
	},
	"std::ff::invert": {
		Name: "std::ff::invert", ID: 16, ArgCount: 1,
		Validate: func(args []*types.Type, _ map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			if args[0].Kind != types.KindField {
				return nil, argTypeError(loc, "std::ff::invert", 0, types.Field, args[0])
			}
			return types.Field, nil
		},
	},
	"zksync::transfer": {
		Name: "zksync::transfer", ID: 17, ArgCount: 3,
		Validate: func(args []*types.Type, _ map[int]int64, loc diagnostics.Location) (*types.Type, error) {
			for i, want := range []*types.Type{types.Field, types.Field, types.Field} {
				if args[i].Kind != want.Kind {
					return nil, argTypeError(loc, "zksync::transfer", i, want, args[i])
				}
			}
			return types.Unit, nil
		},
	},
}

// scalarBits reports the bit width a to_bits conversion uses for a given
// operand type: its declared width for an integer, the field's full
// modulus width (254 bits for bn254, matching element.Field) for field.
func scalarBits(t *types.Type, loc diagnostics.Location, fn string, index int) (int, error) {
	switch t.Kind {
	case types.KindInteger:
		return t.Bits, nil
	case types.KindField:
		return 254, nil
	default:
		return 0, argTypeError(loc, fn, index, types.Field, t)
	}
}

// LookupLibrary finds a std::/zksync:: catalog entry by its full dotted
// path (e.g. "std::array::reverse").
func LookupLibrary(path string) (LibraryFunction, bool) {
	fn, ok := libraryCatalog[path]
	return fn, ok
}
