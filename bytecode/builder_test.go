package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderResolvesForwardJump(t *testing.T) {
	b := NewBuilder()
	label := b.NewLabel("else")
	b.JumpIfFalse(label)
	b.Emit(OpPushConst, 1)
	b.Label(label)
	b.Emit(OpReturn, 0)

	prog, err := b.Finish()
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 3)
	assert.Equal(t, int64(2), prog.Instructions[0].Operand)
}

func TestBuilderErrorsOnUndefinedLabel(t *testing.T) {
	b := NewBuilder()
	b.Jump("nowhere")
	_, err := b.Finish()
	assert.Error(t, err)
}

func TestBuilderInternsConstantsByContent(t *testing.T) {
	b := NewBuilder()
	b.PushFieldConst([]byte{0x2a})
	b.PushFieldConst([]byte{0x2a})
	b.PushFieldConst([]byte{0x2b})
	prog, err := b.Finish()
	require.NoError(t, err)
	require.Len(t, prog.Constants, 2)
	assert.Equal(t, prog.Instructions[0].Operand, prog.Instructions[1].Operand)
	assert.NotEqual(t, prog.Instructions[0].Operand, prog.Instructions[2].Operand)
}
