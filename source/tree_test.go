package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingzkp/zinc/source"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadResolvesRootEntry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.zn"), "fn main() -> field { 0 }")

	tree, err := source.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, tree.RootDir)
	assert.Equal(t, "main", tree.Entry.Identifier)
	assert.Empty(t, tree.Entry.Children)
}

func TestLoadResolvesNestedSubmodule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.zn"), "mod util;\nfn main() -> field { 0 }")
	writeFile(t, filepath.Join(dir, "util", "mod.zn"), "const LIMIT: field = 10;")

	tree, err := source.Load(dir)
	require.NoError(t, err)
	require.Contains(t, tree.Entry.Children, "util")
	assert.Equal(t, "util", tree.Entry.Children["util"].Identifier)
}

func TestLoadErrorsOnMissingEntry(t *testing.T) {
	dir := t.TempDir()
	_, err := source.Load(dir)
	assert.Error(t, err)
}

func TestLoadUsesManifestEntryName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "zinc.yaml"), "entry: circuit\nedition: \"2021\"\n")
	writeFile(t, filepath.Join(dir, "circuit.zn"), "fn main() -> field { 0 }")

	tree, err := source.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "2021", tree.Manifest.Edition)
	assert.Equal(t, "circuit", tree.Entry.Identifier)
}

func TestManifestStdlibEnabled(t *testing.T) {
	empty := source.Manifest{}
	assert.True(t, empty.StdlibEnabled("std::crypto"))

	restricted := source.Manifest{Stdlib: []string{"std::convert"}}
	assert.True(t, restricted.StdlibEnabled("std::convert"))
	assert.False(t, restricted.StdlibEnabled("std::crypto"))
}
