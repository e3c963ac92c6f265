package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/semantic/stdlib"
	"github.com/ingzkp/zinc/semantic/types"
)

var noLoc diagnostics.Location

func TestLookupFindsKnownIntrinsics(t *testing.T) {
	dbg, ok := stdlib.Lookup("dbg")
	assert.True(t, ok)
	assert.True(t, dbg.Variadic)

	req, ok := stdlib.Lookup("require")
	assert.True(t, ok)
	assert.False(t, req.Variadic)
	assert.Len(t, req.Params, 2)
}

func TestLookupMissingName(t *testing.T) {
	_, ok := stdlib.Lookup("nonexistent")
	assert.False(t, ok)
}

func TestIsStdlibTypeRecognizesString(t *testing.T) {
	typ, ok := stdlib.IsStdlibType("String")
	assert.True(t, ok)
	assert.Equal(t, "String", typ.String())
}

func TestIsStdlibTypeRejectsOther(t *testing.T) {
	_, ok := stdlib.IsStdlibType("Point")
	assert.False(t, ok)
}

func TestLookupLibraryFindsEveryCatalogedCall(t *testing.T) {
	for _, path := range []string{
		"std::array::reverse",
		"std::array::truncate",
		"std::array::pad",
		"std::convert::to_bits",
		"std::convert::from_bits_unsigned",
		"std::convert::from_bits_signed",
		"std::convert::from_bits_field",
		"std::crypto::sha256",
		"std::crypto::pedersen",
		"std::crypto::blake2s",
		"std::crypto::schnorr_signature_verify",
		"std::collections::MTreeMap::get",
		"std::collections::MTreeMap::contains",
		"std::collections::MTreeMap::insert",
		"std::collections::MTreeMap::remove",
		"std::ff::invert",
		"zksync::transfer",
	} {
		fn, ok := stdlib.LookupLibrary(path)
		assert.Truef(t, ok, "missing library function %s", path)
		assert.Equal(t, path, fn.Name)
	}
}

func TestLookupLibraryMissingName(t *testing.T) {
	_, ok := stdlib.LookupLibrary("std::array::sort")
	assert.False(t, ok)
}

func TestArrayReverseReturnsSameArrayType(t *testing.T) {
	fn, ok := stdlib.LookupLibrary("std::array::reverse")
	require.True(t, ok)
	arr := types.Array(types.Field, 4)
	result, err := fn.Validate([]*types.Type{arr}, nil, noLoc)
	require.NoError(t, err)
	assert.True(t, types.Equal(result, arr))
}

func TestArrayTruncateRejectsLengthLargerThanSource(t *testing.T) {
	fn, ok := stdlib.LookupLibrary("std::array::truncate")
	require.True(t, ok)
	arr := types.Array(types.Field, 4)
	_, err := fn.Validate([]*types.Type{arr, types.Integer(false, 32)}, map[int]int64{1: 8}, noLoc)
	assert.Error(t, err)
}

func TestArrayPadRejectsLengthSmallerThanSource(t *testing.T) {
	fn, ok := stdlib.LookupLibrary("std::array::pad")
	require.True(t, ok)
	arr := types.Array(types.Field, 4)
	_, err := fn.Validate([]*types.Type{arr, types.Integer(false, 32), types.Field}, map[int]int64{1: 2}, noLoc)
	assert.Error(t, err)
}

func TestConvertToBitsWidthMatchesIntegerBits(t *testing.T) {
	fn, ok := stdlib.LookupLibrary("std::convert::to_bits")
	require.True(t, ok)
	result, err := fn.Validate([]*types.Type{types.Integer(false, 32)}, nil, noLoc)
	require.NoError(t, err)
	assert.True(t, types.Equal(result, types.Array(types.Bool, 32)))
}

func TestConvertFromBitsUnsignedWidthMatchesArrayLength(t *testing.T) {
	fn, ok := stdlib.LookupLibrary("std::convert::from_bits_unsigned")
	require.True(t, ok)
	result, err := fn.Validate([]*types.Type{types.Array(types.Bool, 16)}, nil, noLoc)
	require.NoError(t, err)
	assert.True(t, types.Equal(result, types.Integer(false, 16)))
}

func TestCryptoSha256RejectsNonBoolArray(t *testing.T) {
	fn, ok := stdlib.LookupLibrary("std::crypto::sha256")
	require.True(t, ok)
	_, err := fn.Validate([]*types.Type{types.Array(types.Field, 8)}, nil, noLoc)
	assert.Error(t, err)
}

func TestFfInvertRequiresField(t *testing.T) {
	fn, ok := stdlib.LookupLibrary("std::ff::invert")
	require.True(t, ok)
	_, err := fn.Validate([]*types.Type{types.Bool}, nil, noLoc)
	assert.Error(t, err)

	result, err := fn.Validate([]*types.Type{types.Field}, nil, noLoc)
	require.NoError(t, err)
	assert.True(t, types.Equal(result, types.Field))
}
