// Package compiler wires the front end's stages into one pipeline: load a
// source tree, lex and parse every module it reaches, run semantic
// analysis over the merged statement list, and emit bytecode from the
// result.
package compiler

import (
	"io"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ingzkp/zinc/bytecode"
	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/semantic"
	"github.com/ingzkp/zinc/source"
	"github.com/ingzkp/zinc/syntax"
)

// Options controls one Compile invocation.
type Options struct {
	// HaltOnFirstError stops parsing at the first malformed module instead
	// of collecting parse errors across every module reachable from the
	// tree's entry point.
	HaltOnFirstError bool
	// Log receives structured progress entries for each compile stage. A
	// nil Log falls back to a discarded, silent logger.
	Log *logrus.Logger
}

// Result is what Compile returns alongside its error. On success Program
// holds the linked program ready for witness generation and Diags is
// empty; when parsing or analysis fails, Program is nil and Diags holds
// the diagnostics that stopped it.
type Result struct {
	Program *bytecode.Program
	Diags   *diagnostics.Bag
}

// Compile runs the full pipeline over tree: parse every module reachable
// from its entry point, merge their statements into one compilation unit
// (`mod` only marks a sub-module present; it does not yet scope names to
// it - every module shares one flat namespace, a simplification recorded
// in the design notes), analyze, and emit.
func Compile(tree *source.Tree, opts Options) (*Result, error) {
	log := opts.Log
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	log.WithField("root", tree.RootDir).Debug("parsing source tree")
	stmts, parseDiags, err := parseTree(tree.Entry, opts)
	if err != nil {
		return nil, err
	}
	if !parseDiags.Empty() {
		return &Result{Diags: parseDiags}, errors.New(parseDiags.Err().Error())
	}

	mod := &syntax.Module{Statements: stmts}

	log.Debug("running semantic analysis")
	analyzer := semantic.New()
	program, diags := analyzer.Analyze(mod)
	if program == nil {
		return &Result{Diags: diags}, errors.New(diags.Err().Error())
	}

	log.WithField("entry", program.Entry.Name).Debug("emitting bytecode")
	bc, err := Emit(program)
	if err != nil {
		return nil, errors.Wrap(err, "emitting bytecode")
	}

	return &Result{Program: bc, Diags: diags}, nil
}

// parseTree parses one module's text and recursively every child module
// reachable from it, returning the combined statement list in a
// deterministic (parent-before-children, alphabetical among siblings)
// order.
func parseTree(m *source.Module, opts Options) ([]syntax.Stmt, *diagnostics.Bag, error) {
	diags := &diagnostics.Bag{}

	parser := syntax.NewParser(m.Text, m.Path)

	parsed, diag := parser.ParseModule()
	if diag != nil {
		diags.Add(diag)
		if opts.HaltOnFirstError {
			return nil, diags, nil
		}
	}

	var stmts []syntax.Stmt
	if parsed != nil {
		stmts = append(stmts, parsed.Statements...)
	}

	for _, name := range sortedModuleNames(m.Children) {
		childStmts, childDiags, err := parseTree(m.Children[name], opts)
		if err != nil {
			return nil, nil, err
		}
		for _, d := range childDiags.Items() {
			diags.Add(d)
		}
		stmts = append(stmts, childStmts...)
		if !childDiags.Empty() && opts.HaltOnFirstError {
			break
		}
	}

	return stmts, diags, nil
}

func sortedModuleNames(children map[string]*source.Module) []string {
	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
