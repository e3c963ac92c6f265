// Package diagnostics holds the located, typed error values produced by
// every stage of the compiler: lexical, syntax, and semantic analysis.
package diagnostics

import "fmt"

// Location identifies a single byte position in a source tree by the path
// of the file it came from and its human-readable line/column. It is
// attached to every token and AST node and threaded into every diagnostic.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsZero reports whether the location was never set.
func (l Location) IsZero() bool {
	return l.File == "" && l.Line == 0 && l.Column == 0
}
