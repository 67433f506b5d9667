package types

import (
	"github.com/kaylendog/kali/internal/diag"
	"github.com/kaylendog/kali/internal/source"
)

// Unify attempts to make a and b equal by binding Infer variables in
// ctx's substitution map, following structural decomposition rules. It
// returns a diag.UnificationError describing the first mismatch found,
// or nil on success.
//
// An occurs check guards every Infer bind: without it, a recursive
// constraint like `?0 = [?0]` would silently produce an infinite type
// that later resolution would loop forever walking.
func Unify(ctx *Context, a, b Type) *diag.UnificationError {
	a = ctx.Prune(a)
	b = ctx.Prune(b)

	if _, ok := a.(Error); ok {
		return nil
	}
	if _, ok := b.(Error); ok {
		return nil
	}

	if av, ok := a.(Infer); ok {
		return bindInfer(ctx, av, b)
	}
	if bv, ok := b.(Infer); ok {
		return bindInfer(ctx, bv, a)
	}

	switch av := a.(type) {
	case Constant:
		bv, ok := b.(Constant)
		if !ok || av.Name != bv.Name {
			return mismatch(a, b)
		}
		return nil

	case Array:
		bv, ok := b.(Array)
		if !ok {
			return mismatch(a, b)
		}
		return Unify(ctx, av.Element, bv.Element)

	case Tuple:
		bv, ok := b.(Tuple)
		if !ok {
			return mismatch(a, b)
		}
		if len(av.Elements) != len(bv.Elements) {
			return &diag.UnificationError{MismatchedLength: true, N: len(av.Elements), M: len(bv.Elements)}
		}
		for i := range av.Elements {
			if err := Unify(ctx, av.Elements[i], bv.Elements[i]); err != nil {
				return err
			}
		}
		return nil

	case Record:
		bv, ok := b.(Record)
		if !ok {
			return mismatch(a, b)
		}
		if len(av.Fields) != len(bv.Fields) {
			return &diag.UnificationError{MismatchedFields: true, FieldMessage: "different number of fields"}
		}
		for i := range av.Fields {
			if av.Fields[i].Name != bv.Fields[i].Name {
				return &diag.UnificationError{MismatchedFields: true, FieldMessage: "field " + av.Fields[i].Name + " vs " + bv.Fields[i].Name}
			}
			if err := Unify(ctx, av.Fields[i].Type, bv.Fields[i].Type); err != nil {
				return err
			}
		}
		return nil

	case Parameterized:
		bv, ok := b.(Parameterized)
		if !ok || av.Name != bv.Name || len(av.Args) != len(bv.Args) {
			return mismatch(a, b)
		}
		for i := range av.Args {
			if err := Unify(ctx, av.Args[i], bv.Args[i]); err != nil {
				return err
			}
		}
		return nil

	case Lambda:
		bv, ok := b.(Lambda)
		if !ok {
			return mismatch(a, b)
		}
		if len(av.Params) != len(bv.Params) {
			return &diag.UnificationError{MismatchedLength: true, N: len(av.Params), M: len(bv.Params)}
		}
		for i := range av.Params {
			if err := Unify(ctx, av.Params[i], bv.Params[i]); err != nil {
				return err
			}
		}
		return Unify(ctx, av.Return, bv.Return)

	case Never:
		_, ok := b.(Never)
		if !ok {
			return mismatch(a, b)
		}
		return nil

	default:
		return mismatch(a, b)
	}
}

func mismatch(a, b Type) *diag.UnificationError {
	return &diag.UnificationError{FieldMessage: a.String() + " vs " + b.String(), MismatchedFields: true}
}

func bindInfer(ctx *Context, v Infer, t Type) *diag.UnificationError {
	if tv, ok := t.(Infer); ok && tv.ID == v.ID {
		return nil
	}
	if occurs(ctx, v.ID, t) {
		return &diag.UnificationError{FieldMessage: "infinite type: " + v.String() + " occurs in " + t.String(), MismatchedFields: true}
	}
	ctx.SetBound(v.ID, t)
	return nil
}

// occurs reports whether the Infer variable id appears anywhere inside t,
// after following bound substitutions. This is the occurs check.
func occurs(ctx *Context, id uint64, t Type) bool {
	t = ctx.Prune(t)
	switch tv := t.(type) {
	case Infer:
		return tv.ID == id
	case Array:
		return occurs(ctx, id, tv.Element)
	case Tuple:
		for _, e := range tv.Elements {
			if occurs(ctx, id, e) {
				return true
			}
		}
		return false
	case Record:
		for _, f := range tv.Fields {
			if occurs(ctx, id, f.Type) {
				return true
			}
		}
		return false
	case Parameterized:
		for _, a := range tv.Args {
			if occurs(ctx, id, a) {
				return true
			}
		}
		return false
	case Lambda:
		for _, p := range tv.Params {
			if occurs(ctx, id, p) {
				return true
			}
		}
		return occurs(ctx, id, tv.Return)
	default:
		return false
	}
}

// Resolve replaces every Infer variable reachable from t with its bound
// type, recursively. It fails with ResolutionFailed if any variable in
// t's structure is still unbound. span is attributed to
// any ResolutionFailed error so callers don't need to re-wrap it.
func Resolve(ctx *Context, span source.Span, t Type) (Type, *diag.InferenceError) {
	t = ctx.Prune(t)
	switch tv := t.(type) {
	case Infer:
		return nil, diag.NewResolutionFailed(span, t.String())
	case Array:
		el, err := Resolve(ctx, span, tv.Element)
		if err != nil {
			return nil, err
		}
		return Array{Element: el}, nil
	case Tuple:
		elems := make([]Type, len(tv.Elements))
		for i, e := range tv.Elements {
			r, err := Resolve(ctx, span, e)
			if err != nil {
				return nil, err
			}
			elems[i] = r
		}
		return Tuple{Elements: elems}, nil
	case Record:
		fields := make([]RecordField, len(tv.Fields))
		for i, f := range tv.Fields {
			r, err := Resolve(ctx, span, f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = RecordField{Name: f.Name, Type: r}
		}
		return Record{Fields: fields}, nil
	case Parameterized:
		args := make([]Type, len(tv.Args))
		for i, a := range tv.Args {
			r, err := Resolve(ctx, span, a)
			if err != nil {
				return nil, err
			}
			args[i] = r
		}
		return Parameterized{Name: tv.Name, Args: args}, nil
	case Lambda:
		params := make([]Type, len(tv.Params))
		for i, p := range tv.Params {
			r, err := Resolve(ctx, span, p)
			if err != nil {
				return nil, err
			}
			params[i] = r
		}
		ret, err := Resolve(ctx, span, tv.Return)
		if err != nil {
			return nil, err
		}
		return Lambda{Params: params, Return: ret}, nil
	default:
		return t, nil
	}
}
