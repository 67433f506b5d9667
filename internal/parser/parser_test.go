package parser_test

import (
	"testing"

	"github.com/kaylendog/kali/internal/ast"
	"github.com/kaylendog/kali/internal/lexer"
	"github.com/kaylendog/kali/internal/parser"
	"github.com/kaylendog/kali/internal/print"
	"github.com/kaylendog/kali/internal/source"
)

func parseModule(t *testing.T, src string) (ast.Module[source.Span], *parser.Parser) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Add("test.kali", []byte(src))
	raw := lexer.New(file, src)
	il := lexer.NewIndentLexer(raw)
	toks := il.Tokenize()
	p := parser.New(file, toks)
	mod, _ := p.ParseModule()
	return mod, p
}

func TestParseDecl(t *testing.T) {
	mod, p := parseModule(t, "let x = 1 + 2 * 3")
	if len(p.Errors) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors)
	}
	if len(mod.Stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(mod.Stmts))
	}
	decl, ok := mod.Stmts[0].(ast.Decl[source.Span])
	if !ok {
		t.Fatalf("want ast.Decl, got %T", mod.Stmts[0])
	}
	if decl.Name != "x" {
		t.Errorf("want name x, got %s", decl.Name)
	}
	// 1 + 2 * 3 must parse as 1 + (2 * 3): multiplication binds tighter.
	bin, ok := decl.Value.(ast.BinaryExpr[source.Span])
	if !ok || bin.Op != ast.Add {
		t.Fatalf("want top-level Add, got %#v", decl.Value)
	}
	rhs, ok := bin.RHS.(ast.BinaryExpr[source.Span])
	if !ok || rhs.Op != ast.Multiply {
		t.Fatalf("want RHS Multiply, got %#v", bin.RHS)
	}
}

func TestParseExponentiateRightAssociative(t *testing.T) {
	mod, p := parseModule(t, "let x = 2 ** 3 ** 2")
	if len(p.Errors) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors)
	}
	decl := mod.Stmts[0].(ast.Decl[source.Span])
	// Right-associative: 2 ** (3 ** 2), so the top-level RHS is itself
	// an Exponentiate and the LHS is the bare literal 2.
	top, ok := decl.Value.(ast.BinaryExpr[source.Span])
	if !ok || top.Op != ast.Exponentiate {
		t.Fatalf("want top-level Exponentiate, got %#v", decl.Value)
	}
	if _, ok := top.LHS.(ast.NatLiteral[source.Span]); !ok {
		t.Fatalf("want bare literal LHS, got %#v", top.LHS)
	}
	if _, ok := top.RHS.(ast.BinaryExpr[source.Span]); !ok {
		t.Fatalf("want nested Exponentiate RHS, got %#v", top.RHS)
	}
}

func TestParseFuncDecl(t *testing.T) {
	mod, p := parseModule(t, "fn add(a, b) = a + b")
	if len(p.Errors) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors)
	}
	fn, ok := mod.Stmts[0].(ast.FuncDecl[source.Span])
	if !ok {
		t.Fatalf("want ast.FuncDecl, got %T", mod.Stmts[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("want add/2 params, got %s/%d", fn.Name, len(fn.Params))
	}
}

func TestParseConditional(t *testing.T) {
	mod, p := parseModule(t, "let x = if a then b else c")
	if len(p.Errors) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors)
	}
	decl := mod.Stmts[0].(ast.Decl[source.Span])
	if _, ok := decl.Value.(ast.Conditional[source.Span]); !ok {
		t.Fatalf("want ast.Conditional, got %#v", decl.Value)
	}
}

func TestParseCall(t *testing.T) {
	mod, p := parseModule(t, "let x = f(1, 2)")
	if len(p.Errors) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors)
	}
	decl := mod.Stmts[0].(ast.Decl[source.Span])
	call, ok := decl.Value.(ast.Call[source.Span])
	if !ok {
		t.Fatalf("want ast.Call, got %#v", decl.Value)
	}
	if len(call.Args) != 2 {
		t.Fatalf("want 2 args, got %d", len(call.Args))
	}
}

// Parsing and re-printing a statement should produce the same text:
// print.Module renders with the same precedence table the parser climbs,
// so a round trip must be stable.
func TestPrintRoundTrip(t *testing.T) {
	for _, src := range []string{
		"let x = 1 + 2 * 3",
		"let x = 2 ** 3 ** 2",
		"fn add(a, b) = a + b",
	} {
		mod, p := parseModule(t, src)
		if len(p.Errors) != 0 {
			t.Fatalf("%s: unexpected parse errors: %v", src, p.Errors)
		}
		rendered := print.Module(mod)
		mod2, p2 := parseModule(t, rendered)
		if len(p2.Errors) != 0 {
			t.Fatalf("%s: reparse of %q failed: %v", src, rendered, p2.Errors)
		}
		if print.Module(mod2) != rendered {
			t.Errorf("%s: round trip unstable: %q != %q", src, rendered, print.Module(mod2))
		}
	}
}

func TestParseErrorRecoverySkipsToNextStatement(t *testing.T) {
	// The malformed `let` (missing `=`) should not swallow the valid
	// `fn` declaration after it.
	mod, p := parseModule(t, "let x\nfn f(y) = y\n")
	if len(p.Errors) == 0 {
		t.Fatal("want at least one parse error for the malformed let")
	}
	var sawFunc bool
	for _, s := range mod.Stmts {
		if _, ok := s.(ast.FuncDecl[source.Span]); ok {
			sawFunc = true
		}
	}
	if !sawFunc {
		t.Fatalf("expected recovery to still parse the fn decl, got stmts: %#v", mod.Stmts)
	}
}
