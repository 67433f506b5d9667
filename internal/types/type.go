// Package types implements Kali's semantic type lattice and the
// Hindley-Milner style unification engine that operates over it. It is
// deliberately separate from ast.TypeExpr: TypeExpr is surface syntax,
// Type is what unification actually works on.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the sum of Kali's semantic types.
type Type interface {
	isType()
	String() string
}

// Constant is a builtin nominal type: Int, Nat, Float, Bool, String, Unit,
// or a user-declared nominal type name.
type Constant struct {
	Name string
}

func (Constant) isType()        {}
func (c Constant) String() string { return c.Name }

// Array is `[T]`.
type Array struct {
	Element Type
}

func (Array) isType() {}
func (a Array) String() string {
	return "[" + a.Element.String() + "]"
}

// Tuple is `(T1, T2, ...)`, two or more elements.
type Tuple struct {
	Elements []Type
}

func (Tuple) isType() {}
func (t Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Record is a structural row type `{name: T, ...}`. Two Records are
// equal and unify iff they have the same field set regardless of the
// order fields were declared in: Fields is kept in
// canonical (sorted) key order specifically so equality and unification
// can be done by straight positional comparison.
type Record struct {
	Fields []RecordField
}

// RecordField is one canonically-ordered field of a Record.
type RecordField struct {
	Name string
	Type Type
}

func (Record) isType() {}
func (r Record) String() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = f.Name + ": " + f.Type.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// NewRecord builds a Record with its fields sorted into canonical key
// order, so two Records built from the same field set always compare
// and print identically regardless of declaration order.
func NewRecord(fields []RecordField) Record {
	sorted := append([]RecordField(nil), fields...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return Record{Fields: sorted}
}

// Parameterized is a named type applied to type arguments, e.g.
// `Option(Int)`, `Result(Int, String)`.
type Parameterized struct {
	Name string
	Args []Type
}

func (Parameterized) isType() {}
func (p Parameterized) String() string {
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(parts, ", "))
}

// Lambda is a function type `(Params) -> Return`.
type Lambda struct {
	Params []Type
	Return Type
}

func (Lambda) isType() {}
func (l Lambda) String() string {
	parts := make([]string, len(l.Params))
	for i, p := range l.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), l.Return.String())
}

// Infer is an as-yet-unresolved type variable, identified by a
// monotonically increasing id minted from a Context's fresh-variable
// counter.
type Infer struct {
	ID uint64
}

func (Infer) isType() {}
func (i Infer) String() string { return fmt.Sprintf("?%d", i.ID) }

// Never is the type of expressions that cannot produce a value (e.g. an
// unreachable match arm).
type Never struct{}

func (Never) isType()        {}
func (Never) String() string { return "Never" }

// Error stands in for a type that could not be determined because an
// earlier stage already reported a diagnostic; it unifies successfully
// with anything so one failure doesn't cascade into spurious others.
type Error struct{}

func (Error) isType()        {}
func (Error) String() string { return "<error>" }

// Builtin nominal constant types.
var (
	IntType    = Constant{Name: "Int"}
	NatType    = Constant{Name: "Nat"}
	FloatType  = Constant{Name: "Float"}
	BoolType   = Constant{Name: "Bool"}
	StringType = Constant{Name: "String"}
	UnitType   = Constant{Name: "Unit"}
)

// Equal reports whether two types are structurally identical. Infer
// variables compare equal only to themselves: callers that want
// unification semantics should call Unify, not Equal.
func Equal(a, b Type) bool {
	switch av := a.(type) {
	case Constant:
		bv, ok := b.(Constant)
		return ok && av.Name == bv.Name
	case Array:
		bv, ok := b.(Array)
		return ok && Equal(av.Element, bv.Element)
	case Tuple:
		bv, ok := b.(Tuple)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case Record:
		bv, ok := b.(Record)
		if !ok || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if av.Fields[i].Name != bv.Fields[i].Name || !Equal(av.Fields[i].Type, bv.Fields[i].Type) {
				return false
			}
		}
		return true
	case Parameterized:
		bv, ok := b.(Parameterized)
		if !ok || av.Name != bv.Name || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !Equal(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case Lambda:
		bv, ok := b.(Lambda)
		if !ok || len(av.Params) != len(bv.Params) {
			return false
		}
		for i := range av.Params {
			if !Equal(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return Equal(av.Return, bv.Return)
	case Infer:
		bv, ok := b.(Infer)
		return ok && av.ID == bv.ID
	case Never:
		_, ok := b.(Never)
		return ok
	case Error:
		_, ok := b.(Error)
		return ok
	default:
		return false
	}
}
