package ast

import "github.com/kaylendog/kali/internal/source"

// Module is the root of a parsed file: a flat sequence of statements in
// source order. Imports and exports are ordinary Stmt
// entries rather than separate fields, so rewriter passes can traverse
// a Module uniformly without special-casing them.
type Module[Meta any] struct {
	Node[Meta]
	File  source.FileID
	Stmts []Stmt[Meta]
}

// Imports returns the module's ImportStmt entries, in source order.
func (m Module[Meta]) Imports() []ImportStmt[Meta] {
	var out []ImportStmt[Meta]
	for _, s := range m.Stmts {
		if is, ok := s.(ImportStmt[Meta]); ok {
			out = append(out, is)
		}
	}
	return out
}

// Exports returns the module's ExportStmt entries, in source order.
func (m Module[Meta]) Exports() []ExportStmt[Meta] {
	var out []ExportStmt[Meta]
	for _, s := range m.Stmts {
		if es, ok := s.(ExportStmt[Meta]); ok {
			out = append(out, es)
		}
	}
	return out
}
