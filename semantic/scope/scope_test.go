package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingzkp/zinc/semantic/types"
)

func TestDeclareRejectsRedeclarationInSameScope(t *testing.T) {
	s := Root()
	require.NoError(t, s.Declare(&Item{Kind: ItemVariable, Name: "x", Type: types.Field}))
	assert.Error(t, s.Declare(&Item{Kind: ItemVariable, Name: "x", Type: types.Bool}))
}

func TestChildScopeAllowsShadowing(t *testing.T) {
	root := Root()
	require.NoError(t, root.Declare(&Item{Kind: ItemVariable, Name: "x", Type: types.Field}))
	child := root.Child()
	assert.NoError(t, child.Declare(&Item{Kind: ItemVariable, Name: "x", Type: types.Bool}))

	item, ok := child.Lookup("x")
	require.True(t, ok)
	assert.True(t, types.Equal(item.Type, types.Bool))
}

func TestLookupWalksToRoot(t *testing.T) {
	root := Root()
	require.NoError(t, root.Declare(&Item{Kind: ItemConstant, Name: "N", Type: types.Field}))
	child := root.Child().Child()
	item, ok := child.Lookup("N")
	require.True(t, ok)
	assert.Equal(t, ItemConstant, item.Kind)

	_, ok = child.LookupLocal("N")
	assert.False(t, ok)
}

func TestLookupMissingName(t *testing.T) {
	s := Root()
	_, ok := s.Lookup("nope")
	assert.False(t, ok)
}
