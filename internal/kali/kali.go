// Package kali exposes Kali's pipeline stages (lex, parse, infer) as a
// small, language-neutral API, the shape a CLI or an embedding host
// actually calls.
package kali

import (
	"fmt"

	"github.com/kaylendog/kali/internal/ast"
	"github.com/kaylendog/kali/internal/diag"
	"github.com/kaylendog/kali/internal/infer"
	"github.com/kaylendog/kali/internal/ir"
	"github.com/kaylendog/kali/internal/lexer"
	"github.com/kaylendog/kali/internal/parser"
	"github.com/kaylendog/kali/internal/rewriter"
	"github.com/kaylendog/kali/internal/source"
	"github.com/kaylendog/kali/internal/token"
	"github.com/kaylendog/kali/internal/vm"
)

// Lex scans file into a layout-aware token stream, applying the
// indentation pass on top of the raw lexer.
func Lex(fs *source.FileSet, file source.FileID) ([]token.Token, []*diag.LexicalError) {
	f := fs.File(file)
	raw := lexer.New(file, string(f.Content))
	il := lexer.NewIndentLexer(raw)
	toks := il.Tokenize()
	errs := append(append([]*diag.LexicalError(nil), raw.Errors...), il.Errors...)
	return toks, errs
}

// ParseModule lexes and parses file into a full module.
func ParseModule(fs *source.FileSet, file source.FileID) (ast.Module[source.Span], []diag.Error) {
	toks, lexErrs := Lex(fs, file)
	p := parser.New(file, toks)
	mod, parseErrs := p.ParseModule()

	var errs []diag.Error
	for _, e := range lexErrs {
		errs = append(errs, e)
	}
	for _, e := range parseErrs {
		errs = append(errs, e)
	}
	return mod, errs
}

// ParseExpr lexes and parses file as a single standalone expression,
// rather than a whole module.
func ParseExpr(fs *source.FileSet, file source.FileID) (ast.Expr[source.Span], []diag.Error) {
	toks, lexErrs := Lex(fs, file)
	p := parser.New(file, toks)
	expr, parseErrs := p.ParseExpr()

	var errs []diag.Error
	for _, e := range lexErrs {
		errs = append(errs, e)
	}
	for _, e := range parseErrs {
		errs = append(errs, e)
	}
	return expr, errs
}

// Erase drops mod's metadata entirely, producing a module of the same
// shape annotated with rewriter.Unit everywhere. It is total and
// infallible: erasure only discards data, so it never reports an error,
// and erasing an already-erased module is a no-op under the tree's
// shape (erasure is idempotent).
func Erase[Meta any](mod ast.Module[Meta]) ast.Module[rewriter.Unit] {
	out, _ := rewriter.NewEraser[Meta]().RewriteModule(mod)
	return out
}

// Infer runs type inference over an already-parsed module, producing a
// module annotated with resolved types.
func Infer(mod ast.Module[source.Span]) (ast.Module[infer.TypedMeta], *diag.InferenceError) {
	engine := infer.NewEngine()
	return engine.InferModule(mod)
}

// Check lexes, parses, and type-checks file in one call, the common
// path for a `kali check` style command.
func Check(fs *source.FileSet, file source.FileID) (ast.Module[infer.TypedMeta], []diag.Error) {
	mod, errs := ParseModule(fs, file)
	if len(errs) > 0 {
		return ast.Module[infer.TypedMeta]{}, errs
	}
	typed, err := Infer(mod)
	if err != nil {
		errs = append(errs, err)
	}
	return typed, errs
}

// Lower compiles a type-checked module to stack IR, the step between
// Check and Run.
func Lower(mod ast.Module[infer.TypedMeta]) *ir.Chunk {
	return ir.Lower(mod)
}

// Run lexes, parses, type-checks, and lowers file, then executes its
// entry function, the full pipeline a `kali run` subcommand drives
// when no cached Chunk is available.
func Run(fs *source.FileSet, file source.FileID, args ...vm.Value) (vm.Value, []diag.Error) {
	typed, errs := Check(fs, file)
	if len(errs) > 0 {
		return vm.Value{}, errs
	}
	result, err := RunChunk(Lower(typed), args...)
	if err != nil {
		return vm.Value{}, []diag.Error{&diag.InferenceError{Msg: err.Error()}}
	}
	return result, nil
}

// RunChunk executes an already-lowered (possibly cache-loaded) Chunk
// directly, skipping lex/parse/infer/lower entirely.
func RunChunk(chunk *ir.Chunk, args ...vm.Value) (vm.Value, error) {
	return vm.New(chunk).Run(args...)
}

// FormatValue renders a vm.Value the way `kali run` prints its
// program's result.
func FormatValue(v vm.Value) string {
	switch v.Kind {
	case ir.ConstUnit:
		return "()"
	case ir.ConstInt, ir.ConstNat:
		return fmt.Sprintf("%d", v.Int)
	case ir.ConstFloat:
		return fmt.Sprintf("%g", v.Float)
	case ir.ConstBool:
		return fmt.Sprintf("%t", v.Bool)
	case ir.ConstString:
		return v.Str
	default:
		return fmt.Sprintf("%v", v)
	}
}
