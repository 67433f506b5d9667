package lexer

import (
	"strconv"

	"github.com/kaylendog/kali/internal/diag"
	"github.com/kaylendog/kali/internal/token"
)

// IndentLexer wraps a raw Lexer, converting its Newline(indent) tokens into
// explicit BlockStart/BlockEnd layout markers, via a state machine that
// tracks the current indentation depth.
type IndentLexer struct {
	raw *Lexer

	kind           token.IndentKind
	unitSize       int
	currentDepth   int
	pendingUnindents int

	pending []token.Token // queued tokens to emit before pulling from raw
	done    bool

	Errors []*diag.LexicalError
}

// NewIndentLexer wraps raw with the indentation state machine.
func NewIndentLexer(raw *Lexer) *IndentLexer {
	return &IndentLexer{raw: raw}
}

// Tokenize drains the indentation-aware stream to completion, flushing any
// blocks still open at EOF so BlockStart/BlockEnd stay balanced.
func (il *IndentLexer) Tokenize() []token.Token {
	var out []token.Token
	for {
		tok := il.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (il *IndentLexer) blockEnd(at token.Token) token.Token {
	zero := at.Span
	zero.End = zero.Start
	return token.Token{Kind: token.BlockEnd, Span: zero}
}

func (il *IndentLexer) blockStart(at token.Token) token.Token {
	zero := at.Span
	zero.End = zero.Start
	return token.Token{Kind: token.BlockStart, Span: zero}
}

// Next returns the next token in the layout-aware stream.
func (il *IndentLexer) Next() token.Token {
	if len(il.pending) > 0 {
		tok := il.pending[0]
		il.pending = il.pending[1:]
		return tok
	}

	next := il.raw.Next()

	if il.pendingUnindents > 0 {
		il.pendingUnindents--
		il.pending = append(il.pending, next)
		return il.blockEnd(next)
	}

	if next.Kind != token.Newline {
		if next.Kind == token.EOF {
			return il.flushEOF(next)
		}
		return next
	}

	return il.handleNewline(next)
}

// flushEOF closes every block still open at end-of-input, keeping the
// BlockStart/BlockEnd count balanced.
func (il *IndentLexer) flushEOF(eof token.Token) token.Token {
	if il.currentDepth == 0 {
		return eof
	}
	closes := il.currentDepth
	il.currentDepth = 0
	for i := 1; i < closes; i++ {
		il.pending = append(il.pending, il.blockEnd(eof))
	}
	il.pending = append(il.pending, eof)
	return il.blockEnd(eof)
}

func (il *IndentLexer) handleNewline(nl token.Token) token.Token {
	indent := nl.Indent

	if indent.Length == 0 {
		return il.raw.Next()
	}

	if il.kind == token.IndentUnknown {
		il.kind = indent.Kind
		il.unitSize = indent.Length
		il.currentDepth = 1
		return il.blockStart(nl)
	}

	if indent.Kind != il.kind {
		if indent.Kind == token.IndentUnknown {
			unindents := il.currentDepth - 1
			il.currentDepth = 0
			if unindents > 0 {
				il.pendingUnindents = unindents - 1
				return il.blockEnd(nl)
			}
			return il.raw.Next()
		}
		il.Errors = append(il.Errors, &diag.LexicalError{
			Kind:     diag.BadIndentationCharacter,
			Span_:    nl.Span,
			Expected: describeIndent(il.kind),
			Found:    describeIndent(indent.Kind),
		})
		return il.raw.Next()
	}

	if il.unitSize == 0 || indent.Length%il.unitSize != 0 {
		il.Errors = append(il.Errors, &diag.LexicalError{
			Kind:     diag.BadIndentationSize,
			Span_:    nl.Span,
			Expected: strconv.Itoa(il.unitSize),
			Found:    strconv.Itoa(indent.Length),
		})
		return il.raw.Next()
	}

	depth := indent.Length / il.unitSize
	switch {
	case depth > il.currentDepth:
		il.currentDepth = depth
		return il.blockStart(nl)
	case depth < il.currentDepth:
		il.currentDepth = depth
		return il.blockEnd(nl)
	default:
		return il.raw.Next()
	}
}

func describeIndent(k token.IndentKind) string {
	switch k {
	case token.IndentSpaces:
		return "spaces"
	case token.IndentTabs:
		return "tabs"
	default:
		return "no indentation"
	}
}
