package kali_test

import (
	"testing"

	"github.com/kaylendog/kali/internal/ast"
	"github.com/kaylendog/kali/internal/kali"
	"github.com/kaylendog/kali/internal/rewriter"
	"github.com/kaylendog/kali/internal/source"
)

func TestParseExprParsesStandaloneExpression(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("expr.kali", []byte("1 + 2 * 3"))

	expr, errs := kali.ParseExpr(fs, file)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	bin, ok := expr.(ast.BinaryExpr[source.Span])
	if !ok {
		t.Fatalf("want top-level BinaryExpr, got %T", expr)
	}
	if bin.Op != ast.Add {
		t.Errorf("want Add at the top level (lower precedence binds outermost), got %v", bin.Op)
	}
}

func TestParseExprRejectsTrailingGarbage(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("expr.kali", []byte("1 + 2 )"))

	_, errs := kali.ParseExpr(fs, file)
	if len(errs) == 0 {
		t.Fatal("want an error for unconsumed trailing input, got none")
	}
}

func TestEraseModuleDropsTypes(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("check.kali", []byte("fn double(n: Nat) -> Nat = n * 2"))

	typed, errs := kali.Check(fs, file)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	erased := kali.Erase(typed)
	if len(erased.Stmts) != len(typed.Stmts) {
		t.Fatalf("erasure changed statement count: %d vs %d", len(erased.Stmts), len(typed.Stmts))
	}
	fd, ok := erased.Stmts[0].(ast.FuncDecl[rewriter.Unit])
	if !ok {
		t.Fatalf("want FuncDecl, got %T", erased.Stmts[0])
	}
	if fd.Name != "double" {
		t.Errorf("erasure must not change names, got %q", fd.Name)
	}
	if fd.Meta() != (rewriter.Unit{}) {
		t.Errorf("want erased metadata to be Unit{}, got %v", fd.Meta())
	}
}
