package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingzkp/zinc/semantic/types"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	b := NewBuilder()
	b.SetSchema(
		[]string{"a", "b"},
		[]*types.Type{types.Integer(false, 32), types.Field},
		[]*types.Type{types.Bool},
	)
	b.BeginFunction("main", 2)
	b.PushFieldConst([]byte{0x01})
	b.Emit(OpLoadLocal, 0)
	b.Emit(OpAdd, 0)
	label := b.NewLabel("join")
	b.Jump(label)
	b.Label(label)
	b.Emit(OpReturn, 0)

	prog, err := b.Finish()
	require.NoError(t, err)

	data, err := Encode(prog)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, prog.Entry, decoded.Entry)
	assert.Equal(t, prog.Instructions, decoded.Instructions)
	assert.Equal(t, prog.Constants, decoded.Constants)
	assert.Equal(t, prog.Functions, decoded.Functions)
	assert.Equal(t, prog.InputNames, decoded.InputNames)
	require.Len(t, decoded.InputTypes, 2)
	assert.True(t, types.Equal(prog.InputTypes[0], decoded.InputTypes[0]))
	assert.True(t, types.Equal(prog.InputTypes[1], decoded.InputTypes[1]))
	require.Len(t, decoded.OutputTypes, 1)
	assert.True(t, types.Equal(prog.OutputTypes[0], decoded.OutputTypes[0]))
}

func TestEncodeIsDeterministic(t *testing.T) {
	b := NewBuilder()
	b.SetSchema([]string{"x"}, []*types.Type{types.Field}, nil)
	b.BeginFunction("main", 1)
	b.Emit(OpLoadLocal, 0)
	b.Emit(OpReturn, 0)
	prog, err := b.Finish()
	require.NoError(t, err)

	first, err := Encode(prog)
	require.NoError(t, err)
	second, err := Encode(prog)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecodeRejectsWrongMagic(t *testing.T) {
	_, err := Decode([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	assert.Error(t, err)
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	b := NewBuilder()
	b.SetSchema(nil, nil, nil)
	b.BeginFunction("main", 0)
	b.Emit(OpReturn, 0)
	prog, err := b.Finish()
	require.NoError(t, err)

	data, err := Encode(prog)
	require.NoError(t, err)

	// Corrupt the version field (bytes 4..8, big-endian uint32) to a value
	// that will never be a real FormatVersion.
	data[7] = 0xff
	_, err = Decode(data)
	assert.Error(t, err)
}

func TestWireCounts(t *testing.T) {
	prog := &Program{
		InputTypes:  []*types.Type{types.Integer(false, 8), types.Array(types.Field, 3)},
		OutputTypes: []*types.Type{types.Tuple([]*types.Type{types.Bool, types.Bool})},
	}
	assert.Equal(t, 4, prog.InputWireCount())
	assert.Equal(t, 2, prog.OutputWireCount())
}
