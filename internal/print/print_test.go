package print_test

import (
	"testing"

	"github.com/kaylendog/kali/internal/ast"
	"github.com/kaylendog/kali/internal/print"
	"github.com/kaylendog/kali/internal/source"
)

func TestExprPrecedenceParenthesization(t *testing.T) {
	// (1 + 2) * 3 needs parens around the Add since it binds looser than
	// the outer Multiply; a bare "1 + 2 * 3" would reparse as 1 + (2 * 3).
	inner := ast.BinaryExpr[source.Span]{
		LHS: ast.NatLiteral[source.Span]{Value: 1},
		RHS: ast.NatLiteral[source.Span]{Value: 2},
		Op:  ast.Add,
	}
	outer := ast.BinaryExpr[source.Span]{
		LHS: inner,
		RHS: ast.NatLiteral[source.Span]{Value: 3},
		Op:  ast.Multiply,
	}
	got := print.Expr(outer)
	want := "(1 + 2) * 3"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestExprRightAssociativeOmitsRedundantParens(t *testing.T) {
	// 2 ** (3 ** 2) prints without parens around the RHS since ** is
	// right-associative and that's already how it would reparse.
	rhs := ast.BinaryExpr[source.Span]{
		LHS: ast.NatLiteral[source.Span]{Value: 3},
		RHS: ast.NatLiteral[source.Span]{Value: 2},
		Op:  ast.Exponentiate,
	}
	top := ast.BinaryExpr[source.Span]{
		LHS: ast.NatLiteral[source.Span]{Value: 2},
		RHS: rhs,
		Op:  ast.Exponentiate,
	}
	got := print.Expr(top)
	want := "2 ** 3 ** 2"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestPatternPrint(t *testing.T) {
	pat := ast.ConsPattern[source.Span]{
		Head: ast.IdentPattern[source.Span]{Name: "x"},
		Tail: ast.EmptyListPattern[source.Span]{},
	}
	got := print.Pattern(pat)
	want := "x :: []"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestTypeExprPrint(t *testing.T) {
	te := ast.FunctionTypeExpr[source.Span]{
		Params: []ast.TypeExpr[source.Span]{
			ast.ConstantTypeExpr[source.Span]{Name: "Int"},
			ast.ConstantTypeExpr[source.Span]{Name: "Bool"},
		},
		Return: ast.ConstantTypeExpr[source.Span]{Name: "String"},
	}
	got := print.TypeExpr(te)
	want := "(Int, Bool) -> String"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestMatchPrintIndentsBranches(t *testing.T) {
	m := ast.Match[source.Span]{
		Subject: ast.IdentExpr[source.Span]{Ident: ast.Identifier[source.Span]{Name: "x"}},
		Branches: []ast.MatchBranch[source.Span]{
			{Pattern: ast.IdentPattern[source.Span]{Name: "n"}, Body: ast.IdentExpr[source.Span]{Ident: ast.Identifier[source.Span]{Name: "n"}}},
			{Pattern: ast.WildcardPattern[source.Span]{}, Body: ast.NatLiteral[source.Span]{Value: 0}},
		},
	}
	got := print.Expr(m)
	want := "match x with\n    n -> n\n    _ -> 0"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}
