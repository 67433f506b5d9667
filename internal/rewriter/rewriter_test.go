package rewriter_test

import (
	"testing"

	"github.com/kaylendog/kali/internal/ast"
	"github.com/kaylendog/kali/internal/rewriter"
	"github.com/kaylendog/kali/internal/source"
)

func span(lo, hi uint32) source.Span { return source.Span{Start: lo, End: hi} }

// buildModule constructs `let x = 1 + 2` as a hand-built Module[source.Span],
// exercising BinaryExpr, NatLiteral and Decl without going through the
// parser.
func buildModule() ast.Module[source.Span] {
	one := ast.NatLiteral[source.Span]{Node: ast.NewNode(span(8, 9), span(8, 9)), Value: 1}
	two := ast.NatLiteral[source.Span]{Node: ast.NewNode(span(12, 13), span(12, 13)), Value: 2}
	sum := ast.BinaryExpr[source.Span]{
		Node: ast.NewNode(span(8, 13), span(8, 13)),
		LHS:  one,
		RHS:  two,
		Op:   ast.Add,
	}
	decl := ast.Decl[source.Span]{
		Node:  ast.NewNode(span(0, 13), span(0, 13)),
		Name:  "x",
		Value: sum,
	}
	return ast.Module[source.Span]{
		Node:  ast.NewNode(span(0, 13), span(0, 13)),
		Stmts: []ast.Stmt[source.Span]{decl},
	}
}

func TestEraserDropsMetadataButKeepsShape(t *testing.T) {
	mod := buildModule()
	out, err := rewriter.NewEraser[source.Span]().RewriteModule(mod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Stmts) != 1 {
		t.Fatalf("want 1 stmt, got %d", len(out.Stmts))
	}
	decl, ok := out.Stmts[0].(ast.Decl[rewriter.Unit])
	if !ok {
		t.Fatalf("want Decl, got %T", out.Stmts[0])
	}
	if decl.Meta() != (rewriter.Unit{}) {
		t.Errorf("want Unit{} metadata, got %v", decl.Meta())
	}
	sum, ok := decl.Value.(ast.BinaryExpr[rewriter.Unit])
	if !ok {
		t.Fatalf("want BinaryExpr, got %T", decl.Value)
	}
	if sum.Op != ast.Add {
		t.Errorf("erasure must not change operators, got %v", sum.Op)
	}
	lhs, ok := sum.LHS.(ast.NatLiteral[rewriter.Unit])
	if !ok || lhs.Value != 1 {
		t.Errorf("want erased NatLiteral(1), got %#v", sum.LHS)
	}
}

func TestEraserIsIdempotentOnShape(t *testing.T) {
	mod := buildModule()
	once, _ := rewriter.NewEraser[source.Span]().RewriteModule(mod)
	twice, _ := rewriter.NewEraser[rewriter.Unit]().RewriteModule(once)

	onceDecl := once.Stmts[0].(ast.Decl[rewriter.Unit])
	twiceDecl := twice.Stmts[0].(ast.Decl[rewriter.Unit])
	if onceDecl.Name != twiceDecl.Name {
		t.Fatalf("erasing twice changed the tree shape: %q vs %q", onceDecl.Name, twiceDecl.Name)
	}
	onceSum := onceDecl.Value.(ast.BinaryExpr[rewriter.Unit])
	twiceSum := twiceDecl.Value.(ast.BinaryExpr[rewriter.Unit])
	if onceSum.Op != twiceSum.Op {
		t.Errorf("re-erasing changed Op: %v vs %v", onceSum.Op, twiceSum.Op)
	}
}

// countingMeta is the Out metadata for TestPerVariantRuleAppliesOnlyToThatVariant:
// a marker showing which Rule, if any, touched a node.
type countingMeta struct {
	touchedBy string
}

func TestPerVariantRuleAppliesOnlyToThatVariant(t *testing.T) {
	mod := buildModule()

	var binaryCalls int
	rw := rewriter.New(rewriter.Rules[source.Span, countingMeta]{
		Convert: func(source.Span) countingMeta { return countingMeta{touchedBy: "default"} },
		BinaryExpr: func(r *rewriter.Rewriter[source.Span, countingMeta], x ast.BinaryExpr[source.Span]) (ast.Expr[countingMeta], error) {
			binaryCalls++
			lhs, _ := r.RewriteExpr(x.LHS)
			rhs, _ := r.RewriteExpr(x.RHS)
			return ast.BinaryExpr[countingMeta]{
				Node: ast.NewNode(x.Span(), countingMeta{touchedBy: "binary-rule"}),
				LHS:  lhs,
				RHS:  rhs,
				Op:   x.Op,
			}, nil
		},
	}, nil)

	out, err := rw.RewriteModule(mod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if binaryCalls != 1 {
		t.Fatalf("want the BinaryExpr rule invoked exactly once, got %d", binaryCalls)
	}

	decl := out.Stmts[0].(ast.Decl[countingMeta])
	// The Decl itself had no Decl rule, so it fell back to structural
	// recursion and got the default Convert metadata...
	if decl.Meta().touchedBy != "default" {
		t.Errorf("want Decl to fall back to default conversion, got %q", decl.Meta().touchedBy)
	}
	// ...but its BinaryExpr child, which does have a rule, shows the
	// rule ran instead of being silently skipped.
	sum := decl.Value.(ast.BinaryExpr[countingMeta])
	if sum.Meta().touchedBy != "binary-rule" {
		t.Errorf("want BinaryExpr rule to run, got %q", sum.Meta().touchedBy)
	}
	// And the literals inside it, which have no Literal rule of their
	// own, still got lifted structurally by the rule's own recursion.
	lhs := sum.LHS.(ast.NatLiteral[countingMeta])
	if lhs.Meta().touchedBy != "default" || lhs.Value != 1 {
		t.Errorf("want LHS lifted structurally with default metadata, got %#v", lhs)
	}
}
