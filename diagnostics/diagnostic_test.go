package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingzkp/zinc/diagnostics"
)

func TestBagOrdersItemsBySourceLocation(t *testing.T) {
	bag := &diagnostics.Bag{}
	bag.Add(diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch,
		diagnostics.Location{File: "b.zn", Line: 3, Column: 1}, "second"))
	bag.Add(diagnostics.New(diagnostics.CategorySyntax, diagnostics.KindUnexpectedEOF,
		diagnostics.Location{File: "a.zn", Line: 10, Column: 1}, "first by file"))
	bag.Add(diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch,
		diagnostics.Location{File: "b.zn", Line: 1, Column: 5}, "earliest in b.zn"))

	items := bag.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "first by file", items[0].Message)
	assert.Equal(t, "earliest in b.zn", items[1].Message)
	assert.Equal(t, "second", items[2].Message)
}

func TestBagEmptyAndLen(t *testing.T) {
	bag := &diagnostics.Bag{}
	assert.True(t, bag.Empty())
	assert.Equal(t, 0, bag.Len())
	assert.Nil(t, bag.Err())

	bag.Add(diagnostics.New(diagnostics.CategoryLexical, diagnostics.KindForbiddenCharacter, diagnostics.Location{}, "bad char"))
	assert.False(t, bag.Empty())
	assert.Equal(t, 1, bag.Len())
	require.Error(t, bag.Err())
}

func TestDiagnosticErrorIncludesLocation(t *testing.T) {
	d := diagnostics.New(diagnostics.CategorySyntax, diagnostics.KindUnexpectedEOF,
		diagnostics.Location{File: "main.zn", Line: 4, Column: 2}, "unexpected end of file")
	assert.Equal(t, "main.zn:4:2: unexpected end of file", d.Error())
}

func TestDiagnosticWithAttachesOffendingValues(t *testing.T) {
	d := diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArgumentType, diagnostics.Location{}, "bad argument")
	d.With("expected", "u8").With("found", "field")
	assert.Equal(t, "u8", d.Offending["expected"])
	assert.Equal(t, "field", d.Offending["found"])
}

func TestLocationIsZero(t *testing.T) {
	assert.True(t, diagnostics.Location{}.IsZero())
	assert.False(t, diagnostics.Location{File: "x.zn"}.IsZero())
}
