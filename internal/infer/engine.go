package infer

import (
	"github.com/kaylendog/kali/internal/ast"
	"github.com/kaylendog/kali/internal/diag"
	"github.com/kaylendog/kali/internal/rewriter"
	"github.com/kaylendog/kali/internal/source"
	"github.com/kaylendog/kali/internal/types"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Engine runs Hindley-Milner style inference over a parsed module. It
// owns the single types.Context for the run: every fresh variable and
// every binding made while inferring one module shares the same
// substitution map. The engine is a Rewriter instance mapping Span
// metadata to {span, type} metadata; rw is that instance, with
// inferModuleBody as its Module rule.
type Engine struct {
	ctx     *types.Context
	aliases map[string]types.Type
	rw      *rewriter.Rewriter[SpanMeta, TypedMeta]

	// aliasCache memoizes ConstantTypeExpr name lookups against e.aliases
	// within one run; aliases never change size after the first pass, so
	// a small bounded cache avoids repeat map probes on hot, frequently
	// annotated names (e.g. "Int", "String") across a large module body.
	aliasCache *lru.Cache[string, types.Type]
}

// NewEngine returns an Engine with a fresh, empty Context.
func NewEngine() *Engine {
	cache, _ := lru.New[string, types.Type](256)
	e := &Engine{ctx: types.NewContext(), aliases: make(map[string]types.Type), aliasCache: cache}
	e.rw = rewriter.New(rewriter.Rules[SpanMeta, TypedMeta]{
		Module: func(_ *rewriter.Rewriter[SpanMeta, TypedMeta], m ast.Module[SpanMeta]) (ast.Module[TypedMeta], error) {
			return e.inferModuleBody(m)
		},
		Stmt: func(_ *rewriter.Rewriter[SpanMeta, TypedMeta], s ast.Stmt[SpanMeta]) (ast.Stmt[TypedMeta], error) {
			out, err := e.inferStmt(s)
			return out, asError(err)
		},
		Expr: func(_ *rewriter.Rewriter[SpanMeta, TypedMeta], x ast.Expr[SpanMeta]) (ast.Expr[TypedMeta], error) {
			out, err := e.inferExpr(x)
			return out, asError(err)
		},
	}, func(a, b error) error {
		return asError(diag.Combine(asInferenceError(a), asInferenceError(b)))
	})
	return e
}

func wrap(span source.Span, t types.Type) ast.Node[TypedMeta] {
	return ast.NewNode(span, TypedMeta{Span: span, Type: t})
}

// asError adapts a possibly-nil *diag.InferenceError to the plain error
// interface rewriter.Rules expects, so a nil *InferenceError (a non-nil
// interface value wrapping a nil pointer) never masquerades as an error.
func asError(err *diag.InferenceError) error {
	if err == nil {
		return nil
	}
	return err
}

// asInferenceError is asError's inverse, used where rewriter hands back
// a plain error that is always, in practice, one this package produced.
func asInferenceError(err error) *diag.InferenceError {
	if err == nil {
		return nil
	}
	ie, _ := err.(*diag.InferenceError)
	return ie
}

// InferModule type-checks m end to end via the Engine's Rewriter
// instance.
func (e *Engine) InferModule(m ast.Module[SpanMeta]) (ast.Module[TypedMeta], *diag.InferenceError) {
	out, err := e.rw.RewriteModule(m)
	return out, asInferenceError(err)
}

// inferModuleBody is the Engine's Rewriter Module rule: it predeclares
// type aliases and function signatures before inferring any body so
// that forward and recursive references resolve.
func (e *Engine) inferModuleBody(m ast.Module[SpanMeta]) (ast.Module[TypedMeta], error) {
	var errs *diag.InferenceError

	for _, s := range m.Stmts {
		if td, ok := s.(ast.TypeDecl[SpanMeta]); ok {
			t, err := e.typeExprToType(td.Type)
			if err != nil {
				errs = diag.Combine(errs, err)
				continue
			}
			e.aliases[td.Name] = t
		}
	}

	for _, s := range m.Stmts {
		fd, ok := s.(ast.FuncDecl[SpanMeta])
		if !ok {
			continue
		}
		sig, err := e.predeclareFunc(fd)
		if err != nil {
			errs = diag.Combine(errs, err)
			continue
		}
		e.ctx.Bind(fd.Name, sig)
	}

	stmts := make([]ast.Stmt[TypedMeta], 0, len(m.Stmts))
	for _, s := range m.Stmts {
		out, err := e.inferStmt(s)
		if err != nil {
			errs = diag.Combine(errs, err)
			continue
		}
		stmts = append(stmts, out)
	}

	return ast.Module[TypedMeta]{
		Node:  wrap(m.Span(), types.UnitType),
		File:  m.File,
		Stmts: stmts,
	}, asError(errs)
}

func (e *Engine) predeclareFunc(fd ast.FuncDecl[SpanMeta]) (types.Type, *diag.InferenceError) {
	params := make([]types.Type, len(fd.Params))
	for i, p := range fd.Params {
		if p.Type != nil {
			t, err := e.typeExprToType(p.Type)
			if err != nil {
				return nil, err
			}
			params[i] = t
		} else {
			params[i] = e.ctx.Fresh()
		}
	}
	var ret types.Type
	if fd.ReturnType != nil {
		t, err := e.typeExprToType(fd.ReturnType)
		if err != nil {
			return nil, err
		}
		ret = t
	} else {
		ret = e.ctx.Fresh()
	}
	return types.Lambda{Params: params, Return: ret}, nil
}

// typeExprToType converts a surface TypeExpr annotation into a semantic
// types.Type, resolving alias names registered by earlier TypeDecls.
func (e *Engine) typeExprToType(te ast.TypeExpr[SpanMeta]) (types.Type, *diag.InferenceError) {
	switch t := te.(type) {
	case ast.ConstantTypeExpr[SpanMeta]:
		if cached, ok := e.aliasCache.Get(t.Name); ok {
			return cached, nil
		}
		if alias, ok := e.aliases[t.Name]; ok {
			e.aliasCache.Add(t.Name, alias)
			return alias, nil
		}
		constant := types.Type(types.Constant{Name: t.Name})
		e.aliasCache.Add(t.Name, constant)
		return constant, nil
	case ast.VariableTypeExpr[SpanMeta]:
		return e.ctx.Fresh(), nil
	case ast.FunctionTypeExpr[SpanMeta]:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			pt, err := e.typeExprToType(p)
			if err != nil {
				return nil, err
			}
			params[i] = pt
		}
		ret, err := e.typeExprToType(t.Return)
		if err != nil {
			return nil, err
		}
		return types.Lambda{Params: params, Return: ret}, nil
	case ast.TupleTypeExpr[SpanMeta]:
		elems := make([]types.Type, len(t.Elements))
		for i, el := range t.Elements {
			et, err := e.typeExprToType(el)
			if err != nil {
				return nil, err
			}
			elems[i] = et
		}
		return types.Tuple{Elements: elems}, nil
	case ast.ArrayTypeExpr[SpanMeta]:
		el, err := e.typeExprToType(t.Element)
		if err != nil {
			return nil, err
		}
		return types.Array{Element: el}, nil
	case ast.ParameterizedTypeExpr[SpanMeta]:
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			at, err := e.typeExprToType(a)
			if err != nil {
				return nil, err
			}
			args[i] = at
		}
		return types.Parameterized{Name: t.Name, Args: args}, nil
	case ast.RecordTypeExpr[SpanMeta]:
		fields := make([]types.RecordField, len(t.Fields))
		for i, f := range t.Fields {
			ft, err := e.typeExprToType(f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = types.RecordField{Name: f.Name, Type: ft}
		}
		return types.NewRecord(fields), nil
	default:
		return nil, diag.NewResolutionFailed(te.Span(), "unknown type annotation form")
	}
}

func (e *Engine) unify(span source.Span, a, b types.Type) *diag.InferenceError {
	if uerr := types.Unify(e.ctx, a, b); uerr != nil {
		return diag.NewUnificationFailed(span, uerr)
	}
	return nil
}
