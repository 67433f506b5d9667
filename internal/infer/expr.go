package infer

import (
	"github.com/kaylendog/kali/internal/ast"
	"github.com/kaylendog/kali/internal/diag"
	"github.com/kaylendog/kali/internal/print"
	"github.com/kaylendog/kali/internal/source"
	"github.com/kaylendog/kali/internal/types"
)

// inferExpr computes the type of e, returning the re-annotated tree
// alongside it. On error, the caller still gets a usable tree annotated
// with types.Error so a single bad subexpression doesn't prevent typing
// its siblings.
func (e *Engine) inferExpr(expr ast.Expr[SpanMeta]) (ast.Expr[TypedMeta], *diag.InferenceError) {
	span := expr.Span()

	switch x := expr.(type) {

	case ast.NatLiteral[SpanMeta]:
		return ast.NatLiteral[TypedMeta]{Node: wrap(span, types.NatType), Value: x.Value}, nil
	case ast.IntLiteral[SpanMeta]:
		return ast.IntLiteral[TypedMeta]{Node: wrap(span, types.IntType), Value: x.Value}, nil
	case ast.FloatLiteral[SpanMeta]:
		return ast.FloatLiteral[TypedMeta]{Node: wrap(span, types.FloatType), Value: x.Value}, nil
	case ast.BoolLiteral[SpanMeta]:
		return ast.BoolLiteral[TypedMeta]{Node: wrap(span, types.BoolType), Value: x.Value}, nil
	case ast.StringLiteral[SpanMeta]:
		return ast.StringLiteral[TypedMeta]{Node: wrap(span, types.StringType), Value: x.Value}, nil
	case ast.UnitLiteral[SpanMeta]:
		return ast.UnitLiteral[TypedMeta]{Node: wrap(span, types.UnitType)}, nil

	case ast.ArrayLiteral[SpanMeta]:
		elemType := types.Type(e.ctx.Fresh())
		elems := make([]ast.Expr[TypedMeta], len(x.Elements))
		var errs *diag.InferenceError
		for i, el := range x.Elements {
			out, err := e.inferExpr(el)
			if err != nil {
				errs = diag.Combine(errs, err)
				continue
			}
			if uerr := e.unify(out.Span(), elemType, out.Meta().Type); uerr != nil {
				errs = diag.Combine(errs, uerr)
			}
			elems[i] = out
		}
		if errs != nil {
			return ast.ArrayLiteral[TypedMeta]{Node: wrap(span, types.Error{}), Elements: elems}, errs
		}
		return ast.ArrayLiteral[TypedMeta]{Node: wrap(span, types.Array{Element: elemType}), Elements: elems}, nil

	case ast.TupleLiteral[SpanMeta]:
		elems := make([]ast.Expr[TypedMeta], len(x.Elements))
		elemTypes := make([]types.Type, len(x.Elements))
		var errs *diag.InferenceError
		for i, el := range x.Elements {
			out, err := e.inferExpr(el)
			if err != nil {
				errs = diag.Combine(errs, err)
				continue
			}
			elems[i] = out
			elemTypes[i] = out.Meta().Type
		}
		if errs != nil {
			return ast.TupleLiteral[TypedMeta]{Node: wrap(span, types.Error{}), Elements: elems}, errs
		}
		return ast.TupleLiteral[TypedMeta]{Node: wrap(span, types.Tuple{Elements: elemTypes}), Elements: elems}, nil

	case ast.RecordLiteral[SpanMeta]:
		fields := make([]ast.RecordField[TypedMeta], len(x.Fields))
		typeFields := make([]types.RecordField, len(x.Fields))
		var errs *diag.InferenceError
		for i, f := range x.Fields {
			out, err := e.inferExpr(f.Value)
			if err != nil {
				errs = diag.Combine(errs, err)
				continue
			}
			fields[i] = ast.RecordField[TypedMeta]{Name: f.Name, Value: out}
			typeFields[i] = types.RecordField{Name: f.Name, Type: out.Meta().Type}
		}
		if errs != nil {
			return ast.RecordLiteral[TypedMeta]{Node: wrap(span, types.Error{}), Fields: fields}, errs
		}
		return ast.RecordLiteral[TypedMeta]{Node: wrap(span, types.NewRecord(typeFields)), Fields: fields}, nil

	case ast.IdentExpr[SpanMeta]:
		t, ok := e.ctx.Lookup(x.Ident.Name)
		if !ok {
			err := diag.NewResolutionFailed(span, x.Ident.Name)
			return ast.IdentExpr[TypedMeta]{Node: wrap(span, types.Error{}), Ident: ast.Identifier[TypedMeta]{Node: wrap(span, types.Error{}), Name: x.Ident.Name}}, err
		}
		return ast.IdentExpr[TypedMeta]{
			Node:  wrap(span, t),
			Ident: ast.Identifier[TypedMeta]{Node: wrap(x.Ident.Span(), t), Name: x.Ident.Name},
		}, nil

	case ast.BinaryExpr[SpanMeta]:
		return e.inferBinary(span, x)

	case ast.UnaryExpr[SpanMeta]:
		return e.inferUnary(span, x)

	case ast.Conditional[SpanMeta]:
		return e.inferConditional(span, x)

	case ast.Lambda[SpanMeta]:
		return e.inferLambda(span, x)

	case ast.Match[SpanMeta]:
		return e.inferMatch(span, x)

	case ast.Call[SpanMeta]:
		return e.inferCall(span, x)

	default:
		return nil, diag.NewResolutionFailed(span, "unrecognized expression form")
	}
}

func (e *Engine) inferBinary(span source.Span, x ast.BinaryExpr[SpanMeta]) (ast.Expr[TypedMeta], *diag.InferenceError) {
	lhs, lerr := e.inferExpr(x.LHS)
	rhs, rerr := e.inferExpr(x.RHS)
	errs := diag.Combine(lerr, rerr)
	if errs != nil {
		node := ast.BinaryExpr[TypedMeta]{Node: wrap(span, types.Error{}), Op: x.Op}
		if lhs != nil {
			node.LHS = lhs
		}
		if rhs != nil {
			node.RHS = rhs
		}
		return node, errs
	}

	var result types.Type
	switch x.Op {
	case ast.Equal, ast.NotEqual, ast.LessThan, ast.LessThanOrEqual, ast.GreaterThan, ast.GreaterThanOrEqual:
		if err := e.unify(span, lhs.Meta().Type, rhs.Meta().Type); err != nil {
			return binErr(span, x.Op, lhs, rhs), err
		}
		result = types.BoolType
	case ast.LogicalAnd, ast.LogicalOr:
		if err := e.unify(span, lhs.Meta().Type, types.BoolType); err != nil {
			return binErr(span, x.Op, lhs, rhs), err
		}
		if err := e.unify(span, rhs.Meta().Type, types.BoolType); err != nil {
			return binErr(span, x.Op, lhs, rhs), err
		}
		result = types.BoolType
	case ast.Cons:
		arr := types.Array{Element: lhs.Meta().Type}
		if err := e.unify(span, rhs.Meta().Type, arr); err != nil {
			return binErr(span, x.Op, lhs, rhs), err
		}
		result = arr
	default: // arithmetic and bitwise: operands and result share one type
		if err := e.unify(span, lhs.Meta().Type, rhs.Meta().Type); err != nil {
			return binErr(span, x.Op, lhs, rhs), err
		}
		result = lhs.Meta().Type
	}
	return ast.BinaryExpr[TypedMeta]{Node: wrap(span, result), LHS: lhs, RHS: rhs, Op: x.Op}, nil
}

func binErr(span source.Span, op ast.BinaryOp, lhs, rhs ast.Expr[TypedMeta]) ast.Expr[TypedMeta] {
	return ast.BinaryExpr[TypedMeta]{Node: wrap(span, types.Error{}), LHS: lhs, RHS: rhs, Op: op}
}

func (e *Engine) inferUnary(span source.Span, x ast.UnaryExpr[SpanMeta]) (ast.Expr[TypedMeta], *diag.InferenceError) {
	inner, err := e.inferExpr(x.Inner)
	if err != nil {
		return ast.UnaryExpr[TypedMeta]{Node: wrap(span, types.Error{}), Op: x.Op, Inner: inner}, err
	}
	result := inner.Meta().Type
	if x.Op == ast.LogicalNot {
		if uerr := e.unify(span, inner.Meta().Type, types.BoolType); uerr != nil {
			return ast.UnaryExpr[TypedMeta]{Node: wrap(span, types.Error{}), Op: x.Op, Inner: inner}, uerr
		}
		result = types.BoolType
	}
	return ast.UnaryExpr[TypedMeta]{Node: wrap(span, result), Op: x.Op, Inner: inner}, nil
}

func (e *Engine) inferConditional(span source.Span, x ast.Conditional[SpanMeta]) (ast.Expr[TypedMeta], *diag.InferenceError) {
	cond, cerr := e.inferExpr(x.Condition)
	body, berr := e.inferExpr(x.Body)
	other, oerr := e.inferExpr(x.Otherwise)
	errs := diag.Combine(diag.Combine(cerr, berr), oerr)
	if errs != nil {
		return ast.Conditional[TypedMeta]{Node: wrap(span, types.Error{}), Condition: cond, Body: body, Otherwise: other}, errs
	}
	if uerr := e.unify(span, cond.Meta().Type, types.BoolType); uerr != nil {
		uerr.Context = "if " + print.Expr(cond)
		return ast.Conditional[TypedMeta]{Node: wrap(span, types.Error{}), Condition: cond, Body: body, Otherwise: other}, uerr
	}
	if uerr := e.unify(span, body.Meta().Type, other.Meta().Type); uerr != nil {
		return ast.Conditional[TypedMeta]{Node: wrap(span, types.Error{}), Condition: cond, Body: body, Otherwise: other}, uerr
	}
	return ast.Conditional[TypedMeta]{Node: wrap(span, body.Meta().Type), Condition: cond, Body: body, Otherwise: other}, nil
}

func (e *Engine) inferLambda(span source.Span, x ast.Lambda[SpanMeta]) (ast.Expr[TypedMeta], *diag.InferenceError) {
	e.ctx.Push()
	defer e.ctx.Pop()

	params := make([]ast.Param[TypedMeta], len(x.Params))
	paramTypes := make([]types.Type, len(x.Params))
	for i, p := range x.Params {
		var pt types.Type
		if p.Type != nil {
			t, err := e.typeExprToType(p.Type)
			if err != nil {
				return nil, err
			}
			pt = t
		} else {
			pt = e.ctx.Fresh()
		}
		e.ctx.Bind(p.Name, pt)
		paramTypes[i] = pt
		params[i] = ast.Param[TypedMeta]{Name: p.Name, Span: p.Span}
	}

	body, err := e.inferExpr(x.Body)
	if err != nil {
		return ast.Lambda[TypedMeta]{Node: wrap(span, types.Error{}), Params: params, Body: body}, err
	}
	lambdaType := types.Lambda{Params: paramTypes, Return: body.Meta().Type}
	return ast.Lambda[TypedMeta]{Node: wrap(span, lambdaType), Params: params, Body: body}, nil
}

func (e *Engine) inferMatch(span source.Span, x ast.Match[SpanMeta]) (ast.Expr[TypedMeta], *diag.InferenceError) {
	subject, serr := e.inferExpr(x.Subject)
	if serr != nil {
		return ast.Match[TypedMeta]{Node: wrap(span, types.Error{}), Subject: subject}, serr
	}

	resultType := types.Type(e.ctx.Fresh())
	branches := make([]ast.MatchBranch[TypedMeta], 0, len(x.Branches))
	var errs *diag.InferenceError
	for _, br := range x.Branches {
		e.ctx.Push()
		pat, perr := e.inferPattern(br.Pattern, subject.Meta().Type)
		if perr != nil {
			errs = diag.Combine(errs, perr)
			e.ctx.Pop()
			continue
		}
		body, berr := e.inferExpr(br.Body)
		e.ctx.Pop()
		if berr != nil {
			errs = diag.Combine(errs, berr)
			continue
		}
		if uerr := e.unify(body.Span(), resultType, body.Meta().Type); uerr != nil {
			errs = diag.Combine(errs, uerr)
			continue
		}
		branches = append(branches, ast.MatchBranch[TypedMeta]{Pattern: pat, Body: body})
	}
	if errs != nil {
		return ast.Match[TypedMeta]{Node: wrap(span, types.Error{}), Subject: subject, Branches: branches}, errs
	}
	return ast.Match[TypedMeta]{Node: wrap(span, resultType), Subject: subject, Branches: branches}, nil
}

func (e *Engine) inferCall(span source.Span, x ast.Call[SpanMeta]) (ast.Expr[TypedMeta], *diag.InferenceError) {
	fun, ferr := e.inferExpr(x.Fun)
	if ferr != nil {
		return ast.Call[TypedMeta]{Node: wrap(span, types.Error{}), Fun: fun}, ferr
	}

	args := make([]ast.Expr[TypedMeta], len(x.Args))
	argTypes := make([]types.Type, len(x.Args))
	var errs *diag.InferenceError
	for i, a := range x.Args {
		out, err := e.inferExpr(a)
		if err != nil {
			errs = diag.Combine(errs, err)
			continue
		}
		args[i] = out
		argTypes[i] = out.Meta().Type
	}
	if errs != nil {
		return ast.Call[TypedMeta]{Node: wrap(span, types.Error{}), Fun: fun, Args: args, ZeroArg: x.ZeroArg}, errs
	}

	resultType := e.ctx.Fresh()
	expected := types.Lambda{Params: argTypes, Return: resultType}
	if uerr := e.unify(span, fun.Meta().Type, expected); uerr != nil {
		return ast.Call[TypedMeta]{Node: wrap(span, types.Error{}), Fun: fun, Args: args, ZeroArg: x.ZeroArg}, uerr
	}
	return ast.Call[TypedMeta]{Node: wrap(span, types.Type(resultType)), Fun: fun, Args: args, ZeroArg: x.ZeroArg}, nil
}
