package types_test

import (
	"bytes"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/kaylendog/kali/internal/types"
)

func TestContextScopeShadowing(t *testing.T) {
	ctx := types.NewContext()
	ctx.Bind("x", types.IntType)

	ctx.Push()
	ctx.Bind("x", types.BoolType)
	if got, ok := ctx.Lookup("x"); !ok || got != types.BoolType {
		t.Fatalf("inner scope: want Bool, got %v (ok=%v)", got, ok)
	}
	ctx.Pop()

	if got, ok := ctx.Lookup("x"); !ok || got != types.IntType {
		t.Fatalf("after pop: want Int, got %v (ok=%v)", got, ok)
	}
}

func TestContextLookupMissing(t *testing.T) {
	ctx := types.NewContext()
	if _, ok := ctx.Lookup("nowhere"); ok {
		t.Fatal("want ok=false for an unbound name")
	}
}

func TestContextFreshIsUnique(t *testing.T) {
	ctx := types.NewContext()
	a := ctx.Fresh()
	b := ctx.Fresh()
	if a.ID == b.ID {
		t.Fatalf("want distinct ids, got %d twice", a.ID)
	}
}

func TestContextPrunePathCompression(t *testing.T) {
	ctx := types.NewContext()
	a := ctx.Fresh()
	b := ctx.Fresh()
	ctx.SetBound(a.ID, b)
	ctx.SetBound(b.ID, types.IntType)

	if got := ctx.Prune(a); got != types.IntType {
		t.Fatalf("want Int, got %v", got)
	}
	// Prune should have compacted a's binding directly to Int rather than
	// leaving it pointing at b.
	bound, ok := ctx.Bound(a.ID)
	if !ok || bound != types.IntType {
		t.Fatalf("want a bound directly to Int after compression, got %v (ok=%v)", bound, ok)
	}
}

// bindingSnapshot is the shape a `kali check --debug-bindings` dump would
// serialize a module's resolved top-level bindings to, for a human (or a
// golden file) to diff.
type bindingSnapshot struct {
	Bindings map[string]string `toml:"bindings"`
}

func TestBindingSnapshotRoundTrip(t *testing.T) {
	ctx := types.NewContext()
	ctx.Bind("one", types.IntType)
	ctx.Bind("two", types.Lambda{Params: []types.Type{types.IntType}, Return: types.BoolType})

	snap := bindingSnapshot{Bindings: map[string]string{}}
	for _, name := range []string{"one", "two"} {
		ty, ok := ctx.Lookup(name)
		if !ok {
			t.Fatalf("missing binding %q", name)
		}
		snap.Bindings[name] = ty.String()
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(snap); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var decoded bindingSnapshot
	if _, err := toml.Decode(buf.String(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bindings["one"] != "Int" {
		t.Errorf("want one: Int, got %s", decoded.Bindings["one"])
	}
	if decoded.Bindings["two"] != "(Int) -> Bool" {
		t.Errorf("want two: (Int) -> Bool, got %s", decoded.Bindings["two"])
	}
}
