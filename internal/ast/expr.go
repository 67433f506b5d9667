package ast

import "github.com/kaylendog/kali/internal/source"

// Expr is the sum of all expression forms. Every concrete
// variant embeds Node[Meta] and so exposes Span()/Meta() uniformly.
type Expr[Meta any] interface {
	isExpr()
	Span() source.Span
	Meta() Meta
}

// Identifier is a named reference.
type Identifier[Meta any] struct {
	Node[Meta]
	Name string
}

func (Identifier[Meta]) isExpr() {}

// IdentExpr wraps an Identifier as an expression (a bare name reference).
type IdentExpr[Meta any] struct {
	Node[Meta]
	Ident Identifier[Meta]
}

func (IdentExpr[Meta]) isExpr() {}

// BinaryOp enumerates Kali's binary operators.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Subtract
	Multiply
	Divide
	Exponentiate
	Modulo
	Equal
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
	LogicalAnd
	LogicalOr
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	ShiftLeft
	ShiftRight
	Cons
)

func (op BinaryOp) String() string {
	names := [...]string{
		"+", "-", "*", "/", "**", "%",
		"==", "!=", "<", "<=", ">", ">=",
		"&&", "||", "&", "|", "^", "<<", ">>", "::",
	}
	if int(op) < len(names) {
		return names[op]
	}
	return "<unknown-op>"
}

// BinaryExpr is `lhs op rhs`.
type BinaryExpr[Meta any] struct {
	Node[Meta]
	LHS Expr[Meta]
	RHS Expr[Meta]
	Op  BinaryOp
}

func (BinaryExpr[Meta]) isExpr() {}

// UnaryOp enumerates Kali's unary operators.
type UnaryOp uint8

const (
	Negate UnaryOp = iota
	LogicalNot
	BitwiseNot
)

func (op UnaryOp) String() string {
	switch op {
	case Negate:
		return "-"
	case LogicalNot:
		return "!"
	case BitwiseNot:
		return "~"
	default:
		return "<unknown-unary-op>"
	}
}

// UnaryExpr is `op inner`.
type UnaryExpr[Meta any] struct {
	Node[Meta]
	Op    UnaryOp
	Inner Expr[Meta]
}

func (UnaryExpr[Meta]) isExpr() {}

// Conditional is `if condition then body else otherwise`; both branches
// are mandatory.
type Conditional[Meta any] struct {
	Node[Meta]
	Condition Expr[Meta]
	Body      Expr[Meta]
	Otherwise Expr[Meta]
}

func (Conditional[Meta]) isExpr() {}

// Param is one lambda or function-declaration parameter.
type Param[Meta any] struct {
	Name string
	Type TypeExpr[Meta] // nil if unannotated
	Span source.Span
}

// Lambda is `fn (params) -> body` in expression position.
type Lambda[Meta any] struct {
	Node[Meta]
	Params []Param[Meta]
	Body   Expr[Meta]
}

func (Lambda[Meta]) isExpr() {}

// MatchBranch is one `pattern -> expr` arm of a Match, in source order.
type MatchBranch[Meta any] struct {
	Pattern Pattern[Meta]
	Body    Expr[Meta]
}

// Match is `match subject with branches`. Branches are kept in an
// insertion-ordered structure: iterating Branches yields patterns in
// source order, while Lookup still offers
// structural pattern lookup.
type Match[Meta any] struct {
	Node[Meta]
	Subject  Expr[Meta]
	Branches []MatchBranch[Meta]
}

func (Match[Meta]) isExpr() {}

// Lookup returns the body for the first branch whose pattern has the same
// structural key as key, and whether one was found.
func (m Match[Meta]) Lookup(key PatternKey) (Expr[Meta], bool) {
	for _, b := range m.Branches {
		if b.Pattern.Key() == key {
			return b.Body, true
		}
	}
	var zero Expr[Meta]
	return zero, false
}

// Call is a function application. A zero-arg call `f()` has no Args and
// ZeroArg set to true.
type Call[Meta any] struct {
	Node[Meta]
	Fun     Expr[Meta]
	Args    []Expr[Meta]
	ZeroArg bool
}

func (Call[Meta]) isExpr() {}
