package ast_test

import (
	"testing"

	"github.com/kaylendog/kali/internal/ast"
	"github.com/kaylendog/kali/internal/source"
)

func ident(name string) ast.IdentPattern[source.Span] {
	return ast.IdentPattern[source.Span]{Name: name}
}

func TestPatternKeyStructuralEquality(t *testing.T) {
	a := ast.ConsPattern[source.Span]{Head: ident("x"), Tail: ast.EmptyListPattern[source.Span]{}}
	b := ast.ConsPattern[source.Span]{Head: ident("x"), Tail: ast.EmptyListPattern[source.Span]{}}
	if a.Key() != b.Key() {
		t.Errorf("structurally identical patterns should share a key: %q != %q", a.Key(), b.Key())
	}

	c := ast.ConsPattern[source.Span]{Head: ident("y"), Tail: ast.EmptyListPattern[source.Span]{}}
	if a.Key() == c.Key() {
		t.Errorf("patterns binding different names should differ: %q", a.Key())
	}
}

func TestOrderedPatternMapPreservesInsertionOrder(t *testing.T) {
	m := ast.NewOrderedPatternMap[source.Span, int]()
	m.Set(ident("a"), 1)
	m.Set(ast.WildcardPattern[source.Span]{}, 2)
	m.Set(ident("b"), 3)

	var order []string
	m.Each(func(p ast.Pattern[source.Span], v int) {
		order = append(order, string(p.Key()))
	})
	want := []string{"@a", "_", "@b"}
	if len(order) != len(want) {
		t.Fatalf("want %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: want %s, got %s", i, want[i], order[i])
		}
	}
}

func TestOrderedPatternMapSetOverwritesInPlace(t *testing.T) {
	m := ast.NewOrderedPatternMap[source.Span, int]()
	m.Set(ident("a"), 1)
	m.Set(ident("b"), 2)
	m.Set(ident("a"), 99)

	if m.Len() != 2 {
		t.Fatalf("want 2 distinct entries, got %d", m.Len())
	}
	v, ok := m.Get(ident("a"))
	if !ok || v != 99 {
		t.Errorf("want overwritten value 99, got %d (ok=%v)", v, ok)
	}

	var order []string
	m.Each(func(p ast.Pattern[source.Span], v int) { order = append(order, string(p.Key())) })
	if len(order) != 2 || order[0] != "@a" || order[1] != "@b" {
		t.Errorf("overwrite must not move the entry to the end, got %v", order)
	}
}

func TestOrderedPatternMapGetMissing(t *testing.T) {
	m := ast.NewOrderedPatternMap[source.Span, int]()
	if _, ok := m.Get(ident("nowhere")); ok {
		t.Fatal("want ok=false for a pattern never set")
	}
}
