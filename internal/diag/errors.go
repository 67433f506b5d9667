// Package diag implements Kali's error taxonomy: a typed,
// span-carrying error for each pipeline stage, combinable so a single pass
// can surface every problem it found instead of stopping at the first.
package diag

import (
	"fmt"
	"strings"

	"github.com/kaylendog/kali/internal/source"
)

// Error is the interface every Kali diagnostic error implements.
type Error interface {
	error
	Span() source.Span
}

// ---- Lexical errors -------------------------------------------------------

// LexicalErrorKind distinguishes the ways the lexer can fail.
type LexicalErrorKind uint8

const (
	InvalidInteger LexicalErrorKind = iota
	InvalidToken
	BadIndentationCharacter
	BadIndentationSize
)

// LexicalError is a fail-soft error produced in place of a token.
type LexicalError struct {
	Kind     LexicalErrorKind
	Span_    source.Span
	Expected string
	Found    string
}

func (e *LexicalError) Span() source.Span { return e.Span_ }

func (e *LexicalError) Error() string {
	switch e.Kind {
	case InvalidInteger:
		return "invalid integer literal"
	case InvalidToken:
		return fmt.Sprintf("invalid token %q", e.Found)
	case BadIndentationCharacter:
		return fmt.Sprintf("inconsistent indentation: expected %s, found %s", e.Expected, e.Found)
	case BadIndentationSize:
		return fmt.Sprintf("misaligned indentation: expected a multiple of %s, found %s", e.Expected, e.Found)
	default:
		return "lexical error"
	}
}

// ---- Parse errors -----------------------------------------------------------

type ParseErrorKind uint8

const (
	UnrecognizedToken ParseErrorKind = iota
	UnrecognizedEOF
	ExtraToken
	InvalidTokenP
)

type ParseError struct {
	Kind     ParseErrorKind
	Span_    source.Span
	Token    string
	Expected []string
}

func (e *ParseError) Span() source.Span { return e.Span_ }

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnrecognizedToken:
		return fmt.Sprintf("unexpected token %s (expected one of: %s)", e.Token, strings.Join(e.Expected, ", "))
	case UnrecognizedEOF:
		return fmt.Sprintf("unexpected end of input (expected one of: %s)", strings.Join(e.Expected, ", "))
	case ExtraToken:
		return fmt.Sprintf("unexpected extra token %s", e.Token)
	case InvalidTokenP:
		return "invalid token"
	default:
		return "parse error"
	}
}

// ---- Type unification errors ------------------------------------------------

// UnificationError is returned by types.Unify; it carries no span of its
// own (the caller, the inference engine, attaches one).
type UnificationError struct {
	MismatchedLength  bool
	N, M              int
	MismatchedFields  bool
	FieldMessage      string
}

func (e *UnificationError) Error() string {
	switch {
	case e.MismatchedLength:
		return fmt.Sprintf("mismatched arity: expected %d, found %d", e.N, e.M)
	case e.MismatchedFields:
		return fmt.Sprintf("mismatched fields: %s", e.FieldMessage)
	default:
		return "type mismatch"
	}
}

// ---- Inference errors --------------------------------------------------------

type InferenceError struct {
	Span_    source.Span
	Msg      string
	Cause    error
	Expected string
	Found    string
	// Context is an optional rendering of the enclosing expression (via
	// internal/print), appended as "in <context>" to Error().
	Context string
	Multi    []*InferenceError
}

func (e *InferenceError) Span() source.Span { return e.Span_ }

func (e *InferenceError) Error() string {
	if len(e.Multi) > 0 {
		parts := make([]string, len(e.Multi))
		for i, m := range e.Multi {
			parts[i] = m.Error()
		}
		return strings.Join(parts, "; ")
	}
	var msg string
	switch {
	case e.Expected != "" || e.Found != "":
		msg = fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
	case e.Cause != nil:
		msg = fmt.Sprintf("%s: %s", e.Msg, e.Cause)
	default:
		msg = e.Msg
	}
	if e.Context != "" {
		return fmt.Sprintf("%s in %s", msg, e.Context)
	}
	return msg
}

func (e *InferenceError) Unwrap() error { return e.Cause }

// NewUnificationFailed builds a UnificationFailed-kind InferenceError.
func NewUnificationFailed(span source.Span, cause error) *InferenceError {
	return &InferenceError{Span_: span, Msg: "unification failed", Cause: cause}
}

// NewMismatch builds a Mismatch-kind InferenceError.
func NewMismatch(span source.Span, expected, found string) *InferenceError {
	return &InferenceError{Span_: span, Expected: expected, Found: found}
}

// NewResolutionFailed builds a ResolutionFailed-kind InferenceError.
func NewResolutionFailed(span source.Span, typeName string) *InferenceError {
	return &InferenceError{Span_: span, Msg: fmt.Sprintf("unresolved type %s", typeName)}
}

// Combine merges two InferenceErrors into an associative, flattened
// Multiple.
func Combine(a, b *InferenceError) *InferenceError {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	var members []*InferenceError
	members = append(members, flatten(a)...)
	members = append(members, flatten(b)...)
	return &InferenceError{Multi: members, Span_: a.Span_.Extend(b.Span_)}
}

func flatten(e *InferenceError) []*InferenceError {
	if len(e.Multi) == 0 {
		return []*InferenceError{e}
	}
	return e.Multi
}
