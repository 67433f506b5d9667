package ast

// Literal is the sum of Kali's literal forms.
type Literal[Meta any] interface {
	Expr[Meta]
	isLiteral()
}

// NatLiteral is an unsigned natural-number literal (e.g. 42, 0xFF).
type NatLiteral[Meta any] struct {
	Node[Meta]
	Value uint64
}

func (NatLiteral[Meta]) isExpr()    {}
func (NatLiteral[Meta]) isLiteral() {}

// IntLiteral is a signed integer literal (e.g. -7).
type IntLiteral[Meta any] struct {
	Node[Meta]
	Value int64
}

func (IntLiteral[Meta]) isExpr()    {}
func (IntLiteral[Meta]) isLiteral() {}

// FloatLiteral is a floating-point literal.
type FloatLiteral[Meta any] struct {
	Node[Meta]
	Value float64
}

func (FloatLiteral[Meta]) isExpr()    {}
func (FloatLiteral[Meta]) isLiteral() {}

// BoolLiteral is `true` or `false`.
type BoolLiteral[Meta any] struct {
	Node[Meta]
	Value bool
}

func (BoolLiteral[Meta]) isExpr()    {}
func (BoolLiteral[Meta]) isLiteral() {}

// StringLiteral is a quoted string literal, already escape-decoded.
type StringLiteral[Meta any] struct {
	Node[Meta]
	Value string
}

func (StringLiteral[Meta]) isExpr()    {}
func (StringLiteral[Meta]) isLiteral() {}

// UnitLiteral is `()`.
type UnitLiteral[Meta any] struct {
	Node[Meta]
}

func (UnitLiteral[Meta]) isExpr()    {}
func (UnitLiteral[Meta]) isLiteral() {}

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral[Meta any] struct {
	Node[Meta]
	Elements []Expr[Meta]
}

func (ArrayLiteral[Meta]) isExpr()    {}
func (ArrayLiteral[Meta]) isLiteral() {}

// TupleLiteral is `(e1, e2, ...)` with two or more elements.
type TupleLiteral[Meta any] struct {
	Node[Meta]
	Elements []Expr[Meta]
}

func (TupleLiteral[Meta]) isExpr()    {}
func (TupleLiteral[Meta]) isLiteral() {}

// RecordField is one `name: value` entry of a record literal.
type RecordField[Meta any] struct {
	Name  string
	Value Expr[Meta]
}

// RecordLiteral is `{ name: value, ... }`, fields kept in source order.
type RecordLiteral[Meta any] struct {
	Node[Meta]
	Fields []RecordField[Meta]
}

func (RecordLiteral[Meta]) isExpr()    {}
func (RecordLiteral[Meta]) isLiteral() {}
