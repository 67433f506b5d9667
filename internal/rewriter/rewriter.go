// Package rewriter implements a generic, schema-driven tree transform
// over ast nodes. A Rewriter[In, Out] turns a tree annotated with In
// metadata into one annotated with Out metadata, applying at most one
// user-supplied rule per AST variant and falling back to plain
// structural recursion for every variant the caller doesn't override.
// The inference engine is one instance: Rewriter[source.Span,
// infer.TypedMeta]. Eraser (this package's NewEraser) is the other: it sets
// no variant rules at all, so every node is rebuilt unchanged with its
// metadata replaced by Unit{}.
package rewriter

import "github.com/kaylendog/kali/internal/ast"

// Unit is the empty metadata an Eraser converts every node to.
type Unit struct{}

// Rules is the schema: one optional hook per AST variant, plus three
// whole-node overrides (Expr, Stmt, Module) a pass can use to intercept
// before per-variant dispatch runs at all — the inference engine's
// Module override predeclares signatures before any Stmt is visited,
// something no per-variant hook could do on its own.
//
// A nil variant hook means "recurse structurally and keep only the
// metadata conversion": RewriteExpr/RewriteStmt rebuild that node with
// its children rewritten and Convert applied to its own metadata. A
// Rewriter with every hook nil is the Eraser: structural recursion all
// the way down, metadata mapped to Unit{} by Convert.
type Rules[In, Out any] struct {
	Convert func(In) Out

	// Expr variants named per the framework's automatic-lifting schema.
	Literal     func(*Rewriter[In, Out], ast.Literal[In]) (ast.Expr[Out], error)
	Identifier  func(*Rewriter[In, Out], ast.IdentExpr[In]) (ast.Expr[Out], error)
	BinaryExpr  func(*Rewriter[In, Out], ast.BinaryExpr[In]) (ast.Expr[Out], error)
	UnaryExpr   func(*Rewriter[In, Out], ast.UnaryExpr[In]) (ast.Expr[Out], error)
	Conditional func(*Rewriter[In, Out], ast.Conditional[In]) (ast.Expr[Out], error)
	Lambda      func(*Rewriter[In, Out], ast.Lambda[In]) (ast.Expr[Out], error)
	Match       func(*Rewriter[In, Out], ast.Match[In]) (ast.Expr[Out], error)
	Call        func(*Rewriter[In, Out], ast.Call[In]) (ast.Expr[Out], error)

	// Stmt variants named per the framework's automatic-lifting schema.
	Import   func(*Rewriter[In, Out], ast.ImportStmt[In]) (ast.Stmt[Out], error)
	Export   func(*Rewriter[In, Out], ast.ExportStmt[In]) (ast.Stmt[Out], error)
	Const    func(*Rewriter[In, Out], ast.ConstDecl[In]) (ast.Stmt[Out], error)
	TypeDecl func(*Rewriter[In, Out], ast.TypeDecl[In]) (ast.Stmt[Out], error)
	Decl     func(*Rewriter[In, Out], ast.Decl[In]) (ast.Stmt[Out], error)
	FuncDecl func(*Rewriter[In, Out], ast.FuncDecl[In]) (ast.Stmt[Out], error)
	ExprStmt func(*Rewriter[In, Out], ast.ExprStmt[In]) (ast.Stmt[Out], error)

	// Whole-node overrides. Set rarely, and only when a pass needs to
	// see the undispatched node before any variant rule runs.
	Expr   func(*Rewriter[In, Out], ast.Expr[In]) (ast.Expr[Out], error)
	Stmt   func(*Rewriter[In, Out], ast.Stmt[In]) (ast.Stmt[Out], error)
	Module func(*Rewriter[In, Out], ast.Module[In]) (ast.Module[Out], error)
}

// Rewriter walks a tree pre-order, visiting each node exactly once, and
// combines errors raised by sibling subtrees via Combine rather than
// stopping at the first.
type Rewriter[In, Out any] struct {
	Rules   Rules[In, Out]
	Combine func(a, b error) error
}

// New builds a Rewriter from the given rules. combine merges two
// non-nil errors raised by sibling subtrees into one (diag.Combine
// instantiated for *diag.InferenceError is the typical argument).
func New[In, Out any](rules Rules[In, Out], combine func(a, b error) error) *Rewriter[In, Out] {
	return &Rewriter[In, Out]{Rules: rules, Combine: combine}
}

// NewEraser returns the canonical Eraser instance: every node in the
// tree is rebuilt with the same shape and Unit{} metadata, with no
// variant rules of its own. It never fails: erasure only drops data, it
// never needs to resolve or unify anything, so the returned error is
// always nil in practice.
func NewEraser[In any]() *Rewriter[In, Unit] {
	return New(Rules[In, Unit]{
		Convert: func(In) Unit { return Unit{} },
	}, func(a, b error) error {
		if a != nil {
			return a
		}
		return b
	})
}

func (r *Rewriter[In, Out]) combine(a, b error) error {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if r.Combine != nil {
		return r.Combine(a, b)
	}
	return a
}

// convert maps a leaf's In metadata to Out without any structural
// change, the default behavior for every variant without a Rule.
func (r *Rewriter[In, Out]) convert(in In) Out {
	if r.Rules.Convert != nil {
		return r.Rules.Convert(in)
	}
	var zero Out
	return zero
}

// RewriteModule runs the full pass over m. Because the tree is acyclic
// and each call consumes its own subtree once, pre-order traversal
// visits every node exactly once per pass without any extra bookkeeping.
func (r *Rewriter[In, Out]) RewriteModule(m ast.Module[In]) (ast.Module[Out], error) {
	if r.Rules.Module != nil {
		return r.Rules.Module(r, m)
	}
	return r.rewriteModuleDefault(m)
}

func (r *Rewriter[In, Out]) rewriteModuleDefault(m ast.Module[In]) (ast.Module[Out], error) {
	var errs error
	stmts := make([]ast.Stmt[Out], 0, len(m.Stmts))
	for _, s := range m.Stmts {
		out, err := r.RewriteStmt(s)
		if err != nil {
			errs = r.combine(errs, err)
			continue
		}
		stmts = append(stmts, out)
	}
	return ast.Module[Out]{
		Node:  ast.NewNode(m.Span(), r.convert(m.Meta())),
		File:  m.File,
		Stmts: stmts,
	}, errs
}

// RewriteStmt dispatches a single statement through its per-variant
// Rule if one is set for that concrete kind, falling back to structural
// recursion (lifting every Expr/TypeExpr child through this same
// Rewriter and converting the node's own metadata) when it isn't. This
// is the automatic Stmt<In> -> Stmt<Out> lift the framework promises:
// supplying rules for Import, Export, TypeDecl, Decl, FuncDecl and
// ExprStmt lifts every statement shape this parser produces.
func (r *Rewriter[In, Out]) RewriteStmt(s ast.Stmt[In]) (ast.Stmt[Out], error) {
	if r.Rules.Stmt != nil {
		return r.Rules.Stmt(r, s)
	}

	switch x := s.(type) {
	case ast.ImportStmt[In]:
		if r.Rules.Import != nil {
			return r.Rules.Import(r, x)
		}
		return ast.ImportStmt[Out]{
			Node:  ast.NewNode(x.Span(), r.convert(x.Meta())),
			Path:  x.Path,
			Names: x.Names,
		}, nil

	case ast.ExportStmt[In]:
		if r.Rules.Export != nil {
			return r.Rules.Export(r, x)
		}
		return ast.ExportStmt[Out]{
			Node: ast.NewNode(x.Span(), r.convert(x.Meta())),
			Name: x.Name,
		}, nil

	case ast.ConstDecl[In]:
		if r.Rules.Const != nil {
			return r.Rules.Const(r, x)
		}
		value, err := r.RewriteExpr(x.Value)
		var typ ast.TypeExpr[Out]
		if x.Type != nil {
			typ = r.liftTypeExpr(x.Type)
		}
		return ast.ConstDecl[Out]{
			Node:  ast.NewNode(x.Span(), r.convert(x.Meta())),
			Name:  x.Name,
			Type:  typ,
			Value: value,
		}, err

	case ast.TypeDecl[In]:
		if r.Rules.TypeDecl != nil {
			return r.Rules.TypeDecl(r, x)
		}
		return ast.TypeDecl[Out]{
			Node: ast.NewNode(x.Span(), r.convert(x.Meta())),
			Name: x.Name,
			Type: r.liftTypeExpr(x.Type),
		}, nil

	case ast.Decl[In]:
		if r.Rules.Decl != nil {
			return r.Rules.Decl(r, x)
		}
		value, err := r.RewriteExpr(x.Value)
		var typ ast.TypeExpr[Out]
		if x.Type != nil {
			typ = r.liftTypeExpr(x.Type)
		}
		return ast.Decl[Out]{
			Node:  ast.NewNode(x.Span(), r.convert(x.Meta())),
			Name:  x.Name,
			Type:  typ,
			Value: value,
		}, err

	case ast.FuncDecl[In]:
		if r.Rules.FuncDecl != nil {
			return r.Rules.FuncDecl(r, x)
		}
		body, err := r.RewriteExpr(x.Body)
		var ret ast.TypeExpr[Out]
		if x.ReturnType != nil {
			ret = r.liftTypeExpr(x.ReturnType)
		}
		return ast.FuncDecl[Out]{
			Node:       ast.NewNode(x.Span(), r.convert(x.Meta())),
			Name:       x.Name,
			Params:     r.liftParams(x.Params),
			ReturnType: ret,
			Body:       body,
		}, err

	case ast.ExprStmt[In]:
		if r.Rules.ExprStmt != nil {
			return r.Rules.ExprStmt(r, x)
		}
		inner, err := r.RewriteExpr(x.Expr)
		return ast.ExprStmt[Out]{
			Node: ast.NewNode(x.Span(), r.convert(x.Meta())),
			Expr: inner,
		}, err

	default:
		var zero ast.Stmt[Out]
		return zero, nil
	}
}

// RewriteExpr dispatches a single expression through its per-variant
// Rule if one is set for that concrete kind, falling back to structural
// recursion otherwise. This is the automatic Expr<In> -> Expr<Out> lift
// the framework promises: supplying rules for Literal, Identifier,
// BinaryExpr, UnaryExpr, Conditional, Lambda, Match and Call lifts every
// expression shape this parser produces. It also serves as the
// auto-lifting point for a bare expression statement: an Expr appearing
// where a Stmt is expected is rewritten as an expression and the caller
// wraps the result in ast.ExprStmt.
func (r *Rewriter[In, Out]) RewriteExpr(e ast.Expr[In]) (ast.Expr[Out], error) {
	if r.Rules.Expr != nil {
		return r.Rules.Expr(r, e)
	}

	if lit, ok := e.(ast.Literal[In]); ok {
		if r.Rules.Literal != nil {
			return r.Rules.Literal(r, lit)
		}
		return r.liftLiteral(lit)
	}

	switch x := e.(type) {
	case ast.IdentExpr[In]:
		if r.Rules.Identifier != nil {
			return r.Rules.Identifier(r, x)
		}
		return ast.IdentExpr[Out]{
			Node: ast.NewNode(x.Span(), r.convert(x.Meta())),
			Ident: ast.Identifier[Out]{
				Node: ast.NewNode(x.Ident.Span(), r.convert(x.Ident.Meta())),
				Name: x.Ident.Name,
			},
		}, nil

	case ast.BinaryExpr[In]:
		if r.Rules.BinaryExpr != nil {
			return r.Rules.BinaryExpr(r, x)
		}
		lhs, lerr := r.RewriteExpr(x.LHS)
		rhs, rerr := r.RewriteExpr(x.RHS)
		return ast.BinaryExpr[Out]{
			Node: ast.NewNode(x.Span(), r.convert(x.Meta())),
			LHS:  lhs,
			RHS:  rhs,
			Op:   x.Op,
		}, r.combine(lerr, rerr)

	case ast.UnaryExpr[In]:
		if r.Rules.UnaryExpr != nil {
			return r.Rules.UnaryExpr(r, x)
		}
		inner, err := r.RewriteExpr(x.Inner)
		return ast.UnaryExpr[Out]{
			Node:  ast.NewNode(x.Span(), r.convert(x.Meta())),
			Op:    x.Op,
			Inner: inner,
		}, err

	case ast.Conditional[In]:
		if r.Rules.Conditional != nil {
			return r.Rules.Conditional(r, x)
		}
		cond, cerr := r.RewriteExpr(x.Condition)
		body, berr := r.RewriteExpr(x.Body)
		other, oerr := r.RewriteExpr(x.Otherwise)
		return ast.Conditional[Out]{
			Node:      ast.NewNode(x.Span(), r.convert(x.Meta())),
			Condition: cond,
			Body:      body,
			Otherwise: other,
		}, r.combine(r.combine(cerr, berr), oerr)

	case ast.Lambda[In]:
		if r.Rules.Lambda != nil {
			return r.Rules.Lambda(r, x)
		}
		body, err := r.RewriteExpr(x.Body)
		return ast.Lambda[Out]{
			Node:   ast.NewNode(x.Span(), r.convert(x.Meta())),
			Params: r.liftParams(x.Params),
			Body:   body,
		}, err

	case ast.Match[In]:
		if r.Rules.Match != nil {
			return r.Rules.Match(r, x)
		}
		subject, serr := r.RewriteExpr(x.Subject)
		errs := serr
		branches := make([]ast.MatchBranch[Out], 0, len(x.Branches))
		for _, br := range x.Branches {
			body, berr := r.RewriteExpr(br.Body)
			errs = r.combine(errs, berr)
			branches = append(branches, ast.MatchBranch[Out]{
				Pattern: r.liftPattern(br.Pattern),
				Body:    body,
			})
		}
		return ast.Match[Out]{
			Node:     ast.NewNode(x.Span(), r.convert(x.Meta())),
			Subject:  subject,
			Branches: branches,
		}, errs

	case ast.Call[In]:
		if r.Rules.Call != nil {
			return r.Rules.Call(r, x)
		}
		fun, ferr := r.RewriteExpr(x.Fun)
		errs := ferr
		args := make([]ast.Expr[Out], len(x.Args))
		for i, a := range x.Args {
			out, err := r.RewriteExpr(a)
			errs = r.combine(errs, err)
			args[i] = out
		}
		return ast.Call[Out]{
			Node:    ast.NewNode(x.Span(), r.convert(x.Meta())),
			Fun:     fun,
			Args:    args,
			ZeroArg: x.ZeroArg,
		}, errs

	default:
		var zero ast.Expr[Out]
		return zero, nil
	}
}

// liftLiteral structurally rewrites any Literal variant, recursing into
// the element expressions of the container forms (array/tuple/record).
func (r *Rewriter[In, Out]) liftLiteral(l ast.Literal[In]) (ast.Expr[Out], error) {
	switch x := l.(type) {
	case ast.NatLiteral[In]:
		return ast.NatLiteral[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Value: x.Value}, nil
	case ast.IntLiteral[In]:
		return ast.IntLiteral[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Value: x.Value}, nil
	case ast.FloatLiteral[In]:
		return ast.FloatLiteral[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Value: x.Value}, nil
	case ast.BoolLiteral[In]:
		return ast.BoolLiteral[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Value: x.Value}, nil
	case ast.StringLiteral[In]:
		return ast.StringLiteral[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Value: x.Value}, nil
	case ast.UnitLiteral[In]:
		return ast.UnitLiteral[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta()))}, nil
	case ast.ArrayLiteral[In]:
		elems := make([]ast.Expr[Out], len(x.Elements))
		var errs error
		for i, el := range x.Elements {
			out, err := r.RewriteExpr(el)
			errs = r.combine(errs, err)
			elems[i] = out
		}
		return ast.ArrayLiteral[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Elements: elems}, errs
	case ast.TupleLiteral[In]:
		elems := make([]ast.Expr[Out], len(x.Elements))
		var errs error
		for i, el := range x.Elements {
			out, err := r.RewriteExpr(el)
			errs = r.combine(errs, err)
			elems[i] = out
		}
		return ast.TupleLiteral[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Elements: elems}, errs
	case ast.RecordLiteral[In]:
		fields := make([]ast.RecordField[Out], len(x.Fields))
		var errs error
		for i, f := range x.Fields {
			out, err := r.RewriteExpr(f.Value)
			errs = r.combine(errs, err)
			fields[i] = ast.RecordField[Out]{Name: f.Name, Value: out}
		}
		return ast.RecordLiteral[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Fields: fields}, errs
	default:
		var zero ast.Expr[Out]
		return zero, nil
	}
}

// liftParams converts a parameter list's TypeExpr annotations, leaving
// names untouched (a Param carries no Expr metadata of its own beyond
// its annotation).
func (r *Rewriter[In, Out]) liftParams(params []ast.Param[In]) []ast.Param[Out] {
	out := make([]ast.Param[Out], len(params))
	for i, p := range params {
		var typ ast.TypeExpr[Out]
		if p.Type != nil {
			typ = r.liftTypeExpr(p.Type)
		}
		out[i] = ast.Param[Out]{Name: p.Name, Type: typ, Span: p.Span}
	}
	return out
}

// liftTypeExpr structurally rewrites a surface type annotation. Type
// annotations carry no inference-relevant data of their own (they are
// resolved to types.Type elsewhere), so this is unconditional structural
// recursion with no variant-rule override point.
func (r *Rewriter[In, Out]) liftTypeExpr(te ast.TypeExpr[In]) ast.TypeExpr[Out] {
	switch x := te.(type) {
	case ast.ConstantTypeExpr[In]:
		return ast.ConstantTypeExpr[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Name: x.Name}
	case ast.VariableTypeExpr[In]:
		return ast.VariableTypeExpr[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Name: x.Name}
	case ast.FunctionTypeExpr[In]:
		params := make([]ast.TypeExpr[Out], len(x.Params))
		for i, p := range x.Params {
			params[i] = r.liftTypeExpr(p)
		}
		return ast.FunctionTypeExpr[Out]{
			Node:   ast.NewNode(x.Span(), r.convert(x.Meta())),
			Params: params,
			Return: r.liftTypeExpr(x.Return),
		}
	case ast.TupleTypeExpr[In]:
		elems := make([]ast.TypeExpr[Out], len(x.Elements))
		for i, el := range x.Elements {
			elems[i] = r.liftTypeExpr(el)
		}
		return ast.TupleTypeExpr[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Elements: elems}
	case ast.ArrayTypeExpr[In]:
		return ast.ArrayTypeExpr[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Element: r.liftTypeExpr(x.Element)}
	case ast.ParameterizedTypeExpr[In]:
		args := make([]ast.TypeExpr[Out], len(x.Args))
		for i, a := range x.Args {
			args[i] = r.liftTypeExpr(a)
		}
		return ast.ParameterizedTypeExpr[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Name: x.Name, Args: args}
	case ast.RecordTypeExpr[In]:
		fields := make([]ast.RecordTypeFieldExpr[Out], len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = ast.RecordTypeFieldExpr[Out]{Name: f.Name, Type: r.liftTypeExpr(f.Type)}
		}
		return ast.RecordTypeExpr[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Fields: fields}
	default:
		var zero ast.TypeExpr[Out]
		return zero
	}
}

// liftPattern structurally rewrites a Match branch's pattern. Patterns
// are compared and keyed on structure with metadata excluded, so
// converting their metadata never changes a Key().
func (r *Rewriter[In, Out]) liftPattern(p ast.Pattern[In]) ast.Pattern[Out] {
	switch x := p.(type) {
	case ast.WildcardPattern[In]:
		return ast.WildcardPattern[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta()))}
	case ast.IdentPattern[In]:
		return ast.IdentPattern[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Name: x.Name}
	case ast.LiteralPattern[In]:
		lit, _ := r.liftLiteral(x.Value)
		return ast.LiteralPattern[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Value: lit.(ast.Literal[Out])}
	case ast.RangePattern[In]:
		low, _ := r.liftLiteral(x.Low)
		high, _ := r.liftLiteral(x.High)
		return ast.RangePattern[Out]{
			Node: ast.NewNode(x.Span(), r.convert(x.Meta())),
			Low:  low.(ast.Literal[Out]),
			High: high.(ast.Literal[Out]),
		}
	case ast.EmptyListPattern[In]:
		return ast.EmptyListPattern[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta()))}
	case ast.ConsPattern[In]:
		return ast.ConsPattern[Out]{
			Node: ast.NewNode(x.Span(), r.convert(x.Meta())),
			Head: r.liftPattern(x.Head),
			Tail: r.liftPattern(x.Tail),
		}
	case ast.TuplePattern[In]:
		elems := make([]ast.Pattern[Out], len(x.Elements))
		for i, el := range x.Elements {
			elems[i] = r.liftPattern(el)
		}
		return ast.TuplePattern[Out]{Node: ast.NewNode(x.Span(), r.convert(x.Meta())), Elements: elems}
	default:
		var zero ast.Pattern[Out]
		return zero
	}
}
