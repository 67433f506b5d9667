package types_test

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/kaylendog/kali/internal/source"
	"github.com/kaylendog/kali/internal/types"
)

func TestUnifyConstants(t *testing.T) {
	ctx := types.NewContext()
	if err := types.Unify(ctx, types.IntType, types.IntType); err != nil {
		t.Fatalf("Int vs Int: unexpected error: %v", err)
	}
	if err := types.Unify(ctx, types.IntType, types.BoolType); err == nil {
		t.Fatal("Int vs Bool: want error, got nil")
	}
}

func TestUnifyBindsInferVariable(t *testing.T) {
	ctx := types.NewContext()
	v := ctx.Fresh()
	if err := types.Unify(ctx, v, types.StringType); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resolved, rerr := types.Resolve(ctx, source.Span{}, v)
	if rerr != nil {
		t.Fatalf("unexpected resolution error: %v", rerr)
	}
	if diff := deep.Equal(resolved, types.StringType); diff != nil {
		t.Errorf("resolved type diff: %v", diff)
	}
}

func TestUnifyOccursCheckRejectsInfiniteType(t *testing.T) {
	ctx := types.NewContext()
	v := ctx.Fresh()
	// ?0 = [?0] is a recursive constraint the occurs check must reject.
	if err := types.Unify(ctx, v, types.Array{Element: v}); err == nil {
		t.Fatal("want occurs-check error, got nil")
	}
}

func TestUnifyArrayElementMismatch(t *testing.T) {
	ctx := types.NewContext()
	a := types.Array{Element: types.IntType}
	b := types.Array{Element: types.BoolType}
	if err := types.Unify(ctx, a, b); err == nil {
		t.Fatal("want element mismatch error, got nil")
	}
}

func TestUnifyTupleArityMismatch(t *testing.T) {
	ctx := types.NewContext()
	a := types.Tuple{Elements: []types.Type{types.IntType, types.IntType}}
	b := types.Tuple{Elements: []types.Type{types.IntType}}
	err := types.Unify(ctx, a, b)
	if err == nil || !err.MismatchedLength {
		t.Fatalf("want MismatchedLength error, got %v", err)
	}
}

func TestUnifyRecordFieldOrderIndependent(t *testing.T) {
	ctx := types.NewContext()
	a := types.NewRecord([]types.RecordField{{Name: "x", Type: types.IntType}, {Name: "y", Type: types.BoolType}})
	b := types.NewRecord([]types.RecordField{{Name: "y", Type: types.BoolType}, {Name: "x", Type: types.IntType}})
	if err := types.Unify(ctx, a, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := deep.Equal(a, b); diff != nil {
		t.Errorf("canonicalized records should be structurally equal, diff: %v", diff)
	}
}

func TestUnifyLambda(t *testing.T) {
	ctx := types.NewContext()
	v := ctx.Fresh()
	a := types.Lambda{Params: []types.Type{types.IntType}, Return: v}
	b := types.Lambda{Params: []types.Type{types.IntType}, Return: types.BoolType}
	if err := types.Unify(ctx, a, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resolved, rerr := types.Resolve(ctx, source.Span{}, v)
	if rerr != nil {
		t.Fatalf("unexpected resolution error: %v", rerr)
	}
	if diff := deep.Equal(resolved, types.BoolType); diff != nil {
		t.Errorf("resolved return type diff: %v", diff)
	}
}

func TestResolveFailsOnUnboundVariable(t *testing.T) {
	ctx := types.NewContext()
	v := ctx.Fresh()
	if _, err := types.Resolve(ctx, source.Span{}, v); err == nil {
		t.Fatal("want ResolutionFailed error, got nil")
	}
}

func TestErrorTypeUnifiesWithAnything(t *testing.T) {
	ctx := types.NewContext()
	if err := types.Unify(ctx, types.Error{}, types.BoolType); err != nil {
		t.Errorf("Error vs Bool: want nil, got %v", err)
	}
	if err := types.Unify(ctx, types.IntType, types.Error{}); err != nil {
		t.Errorf("Int vs Error: want nil, got %v", err)
	}
}
