// Package scope implements name resolution: a tree of lexical scopes,
// each holding the items (bindings, constants, functions, types) visible
// within it, with lookup walking outward to the module root.
package scope

import (
	"fmt"

	"github.com/ingzkp/zinc/semantic/types"
)

// ItemKind discriminates what a name in scope refers to.
type ItemKind int

const (
	ItemVariable ItemKind = iota
	ItemConstant
	ItemFunction
	ItemType
	ItemModule
)

// Item is an entry in a scope: a name bound to a kind and a type. For
// ItemFunction, Type is the function's return type and Params holds its
// parameter types; for ItemVariable, Mutable records whether it was bound
// with `let mut`.
type Item struct {
	Kind    ItemKind
	Name    string
	Type    *types.Type
	Params  []*types.Type
	Mutable bool

	// IsConstFn marks a `const fn`. Its calls are type-checked like any
	// other call and the emitter inlines each call site; a call to it is
	// not folded inside a constant expression.
	IsConstFn bool
}

// Scope is one lexical level: a function body, a block, an if/match arm,
// or the module root. Parent is nil at the root.
type Scope struct {
	Parent *Scope
	items  map[string]*Item
}

// Root creates a module-level scope with no parent.
func Root() *Scope {
	return &Scope{items: make(map[string]*Item)}
}

// Child opens a nested scope, e.g. entering a block or function body.
func (s *Scope) Child() *Scope {
	return &Scope{Parent: s, items: make(map[string]*Item)}
}

// Declare adds name to this scope. It returns an error if name is already
// declared directly in this scope (shadowing an outer scope's name is
// allowed; redeclaring within the same scope is not).
func (s *Scope) Declare(item *Item) error {
	if _, exists := s.items[item.Name]; exists {
		return fmt.Errorf("%q is already declared in this scope", item.Name)
	}
	s.items[item.Name] = item
	return nil
}

// Lookup finds name starting in s and walking outward to the root.
func (s *Scope) Lookup(name string) (*Item, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if item, ok := cur.items[name]; ok {
			return item, true
		}
	}
	return nil, false
}

// LookupLocal finds name only within this scope, without walking outward.
func (s *Scope) LookupLocal(name string) (*Item, bool) {
	item, ok := s.items[name]
	return item, ok
}
