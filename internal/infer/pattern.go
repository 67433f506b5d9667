package infer

import (
	"github.com/kaylendog/kali/internal/ast"
	"github.com/kaylendog/kali/internal/diag"
	"github.com/kaylendog/kali/internal/types"
)

// inferPattern checks pat against subjectType, binding any identifiers
// it introduces into the current (innermost) scope, and returns the
// re-annotated pattern tree.
func (e *Engine) inferPattern(pat ast.Pattern[SpanMeta], subjectType types.Type) (ast.Pattern[TypedMeta], *diag.InferenceError) {
	span := pat.Span()

	switch p := pat.(type) {

	case ast.WildcardPattern[SpanMeta]:
		return ast.WildcardPattern[TypedMeta]{Node: wrap(span, subjectType)}, nil

	case ast.IdentPattern[SpanMeta]:
		e.ctx.Bind(p.Name, subjectType)
		return ast.IdentPattern[TypedMeta]{Node: wrap(span, subjectType), Name: p.Name}, nil

	case ast.LiteralPattern[SpanMeta]:
		value, err := e.inferExpr(p.Value)
		if err != nil {
			return ast.LiteralPattern[TypedMeta]{Node: wrap(span, types.Error{})}, err
		}
		lit, ok := value.(ast.Literal[TypedMeta])
		if !ok {
			return ast.LiteralPattern[TypedMeta]{Node: wrap(span, types.Error{})}, diag.NewResolutionFailed(span, "literal pattern")
		}
		if uerr := e.unify(span, subjectType, value.Meta().Type); uerr != nil {
			return ast.LiteralPattern[TypedMeta]{Node: wrap(span, types.Error{}), Value: lit}, uerr
		}
		return ast.LiteralPattern[TypedMeta]{Node: wrap(span, value.Meta().Type), Value: lit}, nil

	case ast.RangePattern[SpanMeta]:
		low, lerr := e.inferExpr(p.Low)
		high, herr := e.inferExpr(p.High)
		errs := diag.Combine(lerr, herr)
		if errs != nil {
			return ast.RangePattern[TypedMeta]{Node: wrap(span, types.Error{})}, errs
		}
		lowLit, _ := low.(ast.Literal[TypedMeta])
		highLit, _ := high.(ast.Literal[TypedMeta])
		if uerr := e.unify(span, subjectType, low.Meta().Type); uerr != nil {
			return ast.RangePattern[TypedMeta]{Node: wrap(span, types.Error{})}, uerr
		}
		if uerr := e.unify(span, low.Meta().Type, high.Meta().Type); uerr != nil {
			return ast.RangePattern[TypedMeta]{Node: wrap(span, types.Error{})}, uerr
		}
		return ast.RangePattern[TypedMeta]{Node: wrap(span, subjectType), Low: lowLit, High: highLit}, nil

	case ast.EmptyListPattern[SpanMeta]:
		elem := types.Type(e.ctx.Fresh())
		if uerr := e.unify(span, subjectType, types.Array{Element: elem}); uerr != nil {
			return ast.EmptyListPattern[TypedMeta]{Node: wrap(span, types.Error{})}, uerr
		}
		return ast.EmptyListPattern[TypedMeta]{Node: wrap(span, subjectType)}, nil

	case ast.ConsPattern[SpanMeta]:
		elem := types.Type(e.ctx.Fresh())
		if uerr := e.unify(span, subjectType, types.Array{Element: elem}); uerr != nil {
			return ast.ConsPattern[TypedMeta]{Node: wrap(span, types.Error{})}, uerr
		}
		head, herr := e.inferPattern(p.Head, elem)
		tail, terr := e.inferPattern(p.Tail, types.Array{Element: elem})
		errs := diag.Combine(herr, terr)
		if errs != nil {
			return ast.ConsPattern[TypedMeta]{Node: wrap(span, types.Error{}), Head: head, Tail: tail}, errs
		}
		return ast.ConsPattern[TypedMeta]{Node: wrap(span, subjectType), Head: head, Tail: tail}, nil

	case ast.TuplePattern[SpanMeta]:
		elemTypes := make([]types.Type, len(p.Elements))
		for i := range elemTypes {
			elemTypes[i] = e.ctx.Fresh()
		}
		if uerr := e.unify(span, subjectType, types.Tuple{Elements: elemTypes}); uerr != nil {
			return ast.TuplePattern[TypedMeta]{Node: wrap(span, types.Error{})}, uerr
		}
		elems := make([]ast.Pattern[TypedMeta], len(p.Elements))
		var errs *diag.InferenceError
		for i, el := range p.Elements {
			out, err := e.inferPattern(el, elemTypes[i])
			if err != nil {
				errs = diag.Combine(errs, err)
				continue
			}
			elems[i] = out
		}
		if errs != nil {
			return ast.TuplePattern[TypedMeta]{Node: wrap(span, types.Error{}), Elements: elems}, errs
		}
		return ast.TuplePattern[TypedMeta]{Node: wrap(span, subjectType), Elements: elems}, nil

	default:
		return nil, diag.NewResolutionFailed(span, "unrecognized pattern form")
	}
}
