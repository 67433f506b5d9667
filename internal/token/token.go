package token

import "github.com/kaylendog/kali/internal/source"

// Indent describes the whitespace immediately following a '\n', as
// produced by the raw lexer's Newline token before the indentation pass
// consumes it.
type Indent struct {
	Length int
	Kind   IndentKind
}

// IndentKind classifies the whitespace character used for one line's
// leading indentation.
type IndentKind uint8

const (
	IndentUnknown IndentKind = iota
	IndentSpaces
	IndentTabs
)

// Token is a single classified lexeme with its source span.
type Token struct {
	Kind    Kind
	Lexeme  string
	Span    source.Span
	Indent  Indent // only meaningful when Kind == Newline
	Literal any    // decoded literal payload: int64, uint64, float64, bool, string
}

func (t Token) String() string {
	if t.Lexeme != "" {
		return t.Lexeme
	}
	return t.Kind.String()
}
