// Package source models the source tree the compiler consumes: a named root
// directory containing an entry module and recursively nested sub-modules.
// Directory traversal itself is plain os/filepath walking — there is no
// corpus library for "find the one entry file in a directory" that would
// not be a worse fit than the standard library here (see DESIGN.md).
package source

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

const (
	// FileExtension is the suffix recognized for module source files.
	FileExtension = ".zn"
	// RootEntryName is the entry file expected at the root of a source tree.
	RootEntryName = "main" + FileExtension
	// SubEntryName is the entry file expected in every nested module directory.
	SubEntryName = "mod" + FileExtension
	// ManifestName is the optional project manifest, see Manifest.
	ManifestName = "zinc.yaml"
)

// Module is one text buffer: either the tree's entry module or a sub-module
// reachable from it. Its Identifier is the name other modules use to refer
// to it via `mod` / path expressions; for the root it is the manifest's
// configured entry name (default "main").
type Module struct {
	Identifier string
	Path       string // path used as diagnostics.Location.File
	Text       []byte
	Children   map[string]*Module // sub-module identifier -> module
}

// Tree is one compilation unit: a root directory plus everything reachable
// from its entry module.
type Tree struct {
	RootDir  string
	Entry    *Module
	Manifest Manifest
}

// Load walks rootDir, resolving the entry module and every nested
// sub-module directory into a Tree. It does not parse or lex anything; it
// only establishes the module graph and loads each file's bytes.
func Load(rootDir string) (*Tree, error) {
	manifest, err := loadManifest(filepath.Join(rootDir, ManifestName))
	if err != nil {
		return nil, err
	}

	entryName := RootEntryName
	if manifest.Entry != "" {
		entryName = manifest.Entry + FileExtension
	}

	entry, err := loadModule(rootDir, entryName, manifest.Entry, true)
	if err != nil {
		return nil, err
	}

	return &Tree{RootDir: rootDir, Entry: entry, Manifest: manifest}, nil
}

func loadModule(dir, entryFile, identifier string, isRoot bool) (*Module, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading module directory %q", dir)
	}

	var foundEntries []string
	subdirs := make([]string, 0)
	for _, e := range entries {
		if e.IsDir() {
			subdirs = append(subdirs, e.Name())
			continue
		}
		if filepath.Ext(e.Name()) != FileExtension {
			continue
		}
		if e.Name() == entryFile {
			foundEntries = append(foundEntries, e.Name())
		}
	}

	switch len(foundEntries) {
	case 0:
		return nil, errors.Errorf("%s: no entry module %q found", dir, entryFile)
	default:
		if len(foundEntries) > 1 {
			return nil, errors.Errorf("%s: multiple entry modules named %q", dir, entryFile)
		}
	}

	path := filepath.Join(dir, entryFile)
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading module file %q", path)
	}

	if identifier == "" {
		identifier = "main"
		if !isRoot {
			identifier = filepath.Base(dir)
		}
	}

	module := &Module{
		Identifier: identifier,
		Path:       path,
		Text:       text,
		Children:   make(map[string]*Module),
	}

	sort.Strings(subdirs)
	for _, name := range subdirs {
		child, err := loadModule(filepath.Join(dir, name), SubEntryName, name, false)
		if err != nil {
			return nil, err
		}
		if _, exists := module.Children[name]; exists {
			return nil, errors.Errorf("%s: sub-module %q declared more than once", dir, name)
		}
		module.Children[name] = child
	}

	return module, nil
}
