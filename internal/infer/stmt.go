package infer

import (
	"github.com/kaylendog/kali/internal/ast"
	"github.com/kaylendog/kali/internal/diag"
	"github.com/kaylendog/kali/internal/source"
	"github.com/kaylendog/kali/internal/types"
)

func (e *Engine) inferStmt(s ast.Stmt[SpanMeta]) (ast.Stmt[TypedMeta], *diag.InferenceError) {
	span := s.Span()

	switch st := s.(type) {

	case ast.ImportStmt[SpanMeta]:
		names := make([]ast.ImportName, len(st.Names))
		copy(names, st.Names)
		return ast.ImportStmt[TypedMeta]{Node: wrap(span, types.UnitType), Path: st.Path, Names: names}, nil

	case ast.ExportStmt[SpanMeta]:
		return ast.ExportStmt[TypedMeta]{Node: wrap(span, types.UnitType), Name: st.Name}, nil

	case ast.TypeDecl[SpanMeta]:
		return ast.TypeDecl[TypedMeta]{Node: wrap(span, types.UnitType), Name: st.Name}, nil

	case ast.ConstDecl[SpanMeta]:
		value, err := e.inferExpr(st.Value)
		if err != nil {
			return ast.ConstDecl[TypedMeta]{Node: wrap(span, types.Error{}), Name: st.Name, Value: value}, err
		}
		declType := value.Meta().Type
		if st.Type != nil {
			annot, terr := e.typeExprToType(st.Type)
			if terr != nil {
				return ast.ConstDecl[TypedMeta]{Node: wrap(span, types.Error{}), Name: st.Name, Value: value}, terr
			}
			if uerr := e.unify(span, annot, declType); uerr != nil {
				return ast.ConstDecl[TypedMeta]{Node: wrap(span, types.Error{}), Name: st.Name, Value: value}, uerr
			}
		}
		e.ctx.Bind(st.Name, declType)
		return ast.ConstDecl[TypedMeta]{Node: wrap(span, declType), Name: st.Name, Value: value}, nil

	case ast.Decl[SpanMeta]:
		value, err := e.inferExpr(st.Value)
		if err != nil {
			return ast.Decl[TypedMeta]{Node: wrap(span, types.Error{}), Name: st.Name, Value: value}, err
		}
		declType := value.Meta().Type
		if st.Type != nil {
			annot, terr := e.typeExprToType(st.Type)
			if terr != nil {
				return ast.Decl[TypedMeta]{Node: wrap(span, types.Error{}), Name: st.Name, Value: value}, terr
			}
			if uerr := e.unify(span, annot, declType); uerr != nil {
				return ast.Decl[TypedMeta]{Node: wrap(span, types.Error{}), Name: st.Name, Value: value}, uerr
			}
		}
		e.ctx.Bind(st.Name, declType)
		return ast.Decl[TypedMeta]{Node: wrap(span, declType), Name: st.Name, Value: value}, nil

	case ast.FuncDecl[SpanMeta]:
		return e.inferFuncDecl(span, st)

	case ast.ExprStmt[SpanMeta]:
		value, err := e.inferExpr(st.Expr)
		if err != nil {
			return ast.ExprStmt[TypedMeta]{Node: wrap(span, types.Error{}), Expr: value}, err
		}
		return ast.ExprStmt[TypedMeta]{Node: wrap(span, value.Meta().Type), Expr: value}, nil

	default:
		return nil, diag.NewResolutionFailed(span, "unrecognized statement form")
	}
}

// inferFuncDecl infers a function body against the signature already
// bound by Engine.predeclareFunc, so recursive calls to the function's
// own name resolve to the (possibly still partially unresolved) Lambda
// type rather than failing lookup.
func (e *Engine) inferFuncDecl(span source.Span, fd ast.FuncDecl[SpanMeta]) (ast.Stmt[TypedMeta], *diag.InferenceError) {
	sig, ok := e.ctx.Lookup(fd.Name)
	if !ok {
		return nil, diag.NewResolutionFailed(span, fd.Name)
	}
	lambda, ok := sig.(types.Lambda)
	if !ok {
		return nil, diag.NewResolutionFailed(span, fd.Name)
	}

	e.ctx.Push()
	params := make([]ast.Param[TypedMeta], len(fd.Params))
	for i, p := range fd.Params {
		e.ctx.Bind(p.Name, lambda.Params[i])
		params[i] = ast.Param[TypedMeta]{Name: p.Name, Span: p.Span}
	}
	body, err := e.inferExpr(fd.Body)
	e.ctx.Pop()
	if err != nil {
		return ast.FuncDecl[TypedMeta]{Node: wrap(span, types.Error{}), Name: fd.Name, Params: params, Body: body}, err
	}
	if uerr := e.unify(span, lambda.Return, body.Meta().Type); uerr != nil {
		return ast.FuncDecl[TypedMeta]{Node: wrap(span, types.Error{}), Name: fd.Name, Params: params, Body: body}, uerr
	}

	// The signature was predeclared with fresh Infer vars for any
	// unannotated param/return; resolve it now that the body has been
	// unified against it, so the exported FuncDecl type carries concrete
	// types rather than dangling type variables wherever inference alone
	// was able to pin them down.
	resolved, rerr := types.Resolve(e.ctx, span, lambda)
	if rerr != nil {
		resolved = lambda
	}
	return ast.FuncDecl[TypedMeta]{Node: wrap(span, resolved), Name: fd.Name, Params: params, Body: body}, nil
}
