package ast

import "github.com/kaylendog/kali/internal/source"

// TypeExpr is the sum of surface-syntax type annotations.
// It is distinct from types.Type: TypeExpr is what the parser produces
// from annotation syntax, types.Type is what the inference engine
// resolves it to.
type TypeExpr[Meta any] interface {
	isTypeExpr()
	Span() source.Span
	Meta() Meta
}

// ConstantTypeExpr names a builtin or user-declared type by identifier,
// e.g. `Int`, `Bool`, `String`, or a user type name.
type ConstantTypeExpr[Meta any] struct {
	Node[Meta]
	Name string
}

func (ConstantTypeExpr[Meta]) isTypeExpr() {}

// VariableTypeExpr is a lowercase type variable in a polymorphic
// annotation, e.g. the `a` in `fn(a) -> a`.
type VariableTypeExpr[Meta any] struct {
	Node[Meta]
	Name string
}

func (VariableTypeExpr[Meta]) isTypeExpr() {}

// FunctionTypeExpr is `(Params) -> Return`.
type FunctionTypeExpr[Meta any] struct {
	Node[Meta]
	Params []TypeExpr[Meta]
	Return TypeExpr[Meta]
}

func (FunctionTypeExpr[Meta]) isTypeExpr() {}

// TupleTypeExpr is `(T1, T2, ...)`.
type TupleTypeExpr[Meta any] struct {
	Node[Meta]
	Elements []TypeExpr[Meta]
}

func (TupleTypeExpr[Meta]) isTypeExpr() {}

// ArrayTypeExpr is `[T]`.
type ArrayTypeExpr[Meta any] struct {
	Node[Meta]
	Element TypeExpr[Meta]
}

func (ArrayTypeExpr[Meta]) isTypeExpr() {}

// ParameterizedTypeExpr is a named type applied to type arguments, e.g.
// `Option(Int)`.
type ParameterizedTypeExpr[Meta any] struct {
	Node[Meta]
	Name string
	Args []TypeExpr[Meta]
}

func (ParameterizedTypeExpr[Meta]) isTypeExpr() {}

// RecordTypeFieldExpr is one `name: Type` entry of a record type
// annotation.
type RecordTypeFieldExpr[Meta any] struct {
	Name string
	Type TypeExpr[Meta]
}

// RecordTypeExpr is `{ name: Type, ... }`.
type RecordTypeExpr[Meta any] struct {
	Node[Meta]
	Fields []RecordTypeFieldExpr[Meta]
}

func (RecordTypeExpr[Meta]) isTypeExpr() {}
