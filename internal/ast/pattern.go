package ast

import (
	"fmt"
	"strings"

	"github.com/kaylendog/kali/internal/source"
)

// PatternKey is a structural fingerprint of a Pattern with metadata
// excluded. Two patterns compare equal under Key() iff they have the same
// structure, including the names they bind.
type PatternKey string

// Pattern is the sum of all pattern forms.
type Pattern[Meta any] interface {
	isPattern()
	Span() source.Span
	Meta() Meta
	Key() PatternKey
}

// WildcardPattern is `_`, matching anything and binding nothing.
type WildcardPattern[Meta any] struct {
	Node[Meta]
}

func (WildcardPattern[Meta]) isPattern()      {}
func (WildcardPattern[Meta]) Key() PatternKey { return "_" }

// IdentPattern binds the matched value to Name.
type IdentPattern[Meta any] struct {
	Node[Meta]
	Name string
}

func (IdentPattern[Meta]) isPattern() {}
func (p IdentPattern[Meta]) Key() PatternKey {
	return PatternKey("@" + p.Name)
}

// LiteralPattern matches a literal value exactly.
type LiteralPattern[Meta any] struct {
	Node[Meta]
	Value Literal[Meta]
}

func (LiteralPattern[Meta]) isPattern() {}
func (p LiteralPattern[Meta]) Key() PatternKey {
	return PatternKey(fmt.Sprintf("lit(%v)", literalValue[Meta](p.Value)))
}

func literalValue[Meta any](l Literal[Meta]) any {
	switch v := l.(type) {
	case NatLiteral[Meta]:
		return v.Value
	case IntLiteral[Meta]:
		return v.Value
	case FloatLiteral[Meta]:
		return v.Value
	case BoolLiteral[Meta]:
		return v.Value
	case StringLiteral[Meta]:
		return v.Value
	case UnitLiteral[Meta]:
		return "()"
	default:
		return fmt.Sprintf("%T", l)
	}
}

// RangePattern matches a value falling within the inclusive bounds [Low, High],
// e.g. `1..10`.
type RangePattern[Meta any] struct {
	Node[Meta]
	Low  Literal[Meta]
	High Literal[Meta]
}

func (RangePattern[Meta]) isPattern() {}
func (p RangePattern[Meta]) Key() PatternKey {
	return PatternKey(fmt.Sprintf("range(%v..%v)", literalValue[Meta](p.Low), literalValue[Meta](p.High)))
}

// EmptyListPattern matches the empty array, `[]`.
type EmptyListPattern[Meta any] struct {
	Node[Meta]
}

func (EmptyListPattern[Meta]) isPattern()      {}
func (EmptyListPattern[Meta]) Key() PatternKey { return "[]" }

// ConsPattern matches `head :: tail`, destructuring a non-empty array.
type ConsPattern[Meta any] struct {
	Node[Meta]
	Head Pattern[Meta]
	Tail Pattern[Meta]
}

func (ConsPattern[Meta]) isPattern() {}
func (p ConsPattern[Meta]) Key() PatternKey {
	return PatternKey(fmt.Sprintf("(%s::%s)", p.Head.Key(), p.Tail.Key()))
}

// TuplePattern destructures a tuple value element-wise.
type TuplePattern[Meta any] struct {
	Node[Meta]
	Elements []Pattern[Meta]
}

func (TuplePattern[Meta]) isPattern() {}
func (p TuplePattern[Meta]) Key() PatternKey {
	parts := make([]string, len(p.Elements))
	for i, e := range p.Elements {
		parts[i] = string(e.Key())
	}
	return PatternKey("(" + strings.Join(parts, ",") + ")")
}

// patternMapEntry is one slot of an OrderedPatternMap.
type patternMapEntry[Meta any, V any] struct {
	pattern Pattern[Meta]
	value   V
}

// OrderedPatternMap is an insertion-ordered mapping from Pattern to a
// value type V, keeping a Match's branches addressable by structural
// pattern equality while preserving source order. Go's native maps are
// unordered and cannot be keyed on interface values holding generic
// structs reliably, so lookup is backed by a PatternKey index instead.
type OrderedPatternMap[Meta any, V any] struct {
	entries []patternMapEntry[Meta, V]
	index   map[PatternKey]int
}

// NewOrderedPatternMap returns an empty map.
func NewOrderedPatternMap[Meta any, V any]() *OrderedPatternMap[Meta, V] {
	return &OrderedPatternMap[Meta, V]{index: make(map[PatternKey]int)}
}

// Set appends (or, for a duplicate key, overwrites in place) pattern -> value.
func (m *OrderedPatternMap[Meta, V]) Set(pattern Pattern[Meta], value V) {
	key := pattern.Key()
	if i, ok := m.index[key]; ok {
		m.entries[i].value = value
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, patternMapEntry[Meta, V]{pattern: pattern, value: value})
}

// Get looks up the value bound to a structurally-equal pattern.
func (m *OrderedPatternMap[Meta, V]) Get(pattern Pattern[Meta]) (V, bool) {
	var zero V
	i, ok := m.index[pattern.Key()]
	if !ok {
		return zero, false
	}
	return m.entries[i].value, true
}

// Len returns the number of distinct patterns stored.
func (m *OrderedPatternMap[Meta, V]) Len() int { return len(m.entries) }

// Each calls fn for every (pattern, value) pair in insertion order.
func (m *OrderedPatternMap[Meta, V]) Each(fn func(Pattern[Meta], V)) {
	for _, e := range m.entries {
		fn(e.pattern, e.value)
	}
}
