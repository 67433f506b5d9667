// Package lexer turns Kali source text into a token stream, fail-soft:
// unrecognized input becomes an error token rather than aborting the scan.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kaylendog/kali/internal/diag"
	"github.com/kaylendog/kali/internal/source"
	"github.com/kaylendog/kali/internal/token"
)

// Lexer scans raw bytes into tokens. It never panics and never stops: an
// unrecognized byte becomes a LexicalError token, and scanning resumes
// right after it (fail-soft).
type Lexer struct {
	file    source.FileID
	input   string
	pos     int // current rune's start offset
	readPos int // offset to read next
	ch      rune
	width   int
	atLineStart bool

	Errors []*diag.LexicalError
}

// New creates a Lexer over input, attributing its spans to file.
func New(file source.FileID, input string) *Lexer {
	l := &Lexer{file: file, input: input, atLineStart: true}
	l.advance()
	return l
}

func (l *Lexer) advance() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.width = 0
		l.pos = len(l.input)
		l.readPos = len(l.input) + 1
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.width = w
	l.pos = l.readPos
	l.readPos += w
}

func (l *Lexer) peek() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) span(start int) source.Span {
	return source.Span{File: l.file, Start: uint32(start), End: uint32(l.pos)}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

// Tokenize scans the entire input and returns the raw token stream
// (before the indentation pass). The final token is always EOF.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next scans and returns the next token.
func (l *Lexer) Next() token.Token {
	if l.atLineStart {
		if tok, ok := l.scanIndent(); ok {
			return tok
		}
	}
	l.skipHorizontalSpaceAndComments()

	start := l.pos
	if l.eof() {
		return token.Token{Kind: token.EOF, Span: l.span(start)}
	}

	ch := l.ch

	switch {
	case ch == '\n':
		l.advance()
		l.atLineStart = true
		return l.Next()
	case unicode.IsDigit(ch):
		return l.scanNumber(start)
	case ch == '-' && unicode.IsDigit(l.peek()):
		return l.scanNumber(start)
	case ch == '_' && !isIdentRune(l.peek()):
		l.advance()
		return token.Token{Kind: token.Wildcard, Lexeme: "_", Span: l.span(start)}
	case isIdentStart(ch):
		return l.scanIdent(start)
	case ch == '"':
		return l.scanString(start)
	default:
		return l.scanOperator(start)
	}
}

// scanIndent consumes the whitespace at the start of a line and produces a
// Newline token describing it. It returns ok=false when there is nothing
// to report (meaning Next should fall through to normal scanning, e.g.
// at EOF).
func (l *Lexer) scanIndent() (token.Token, bool) {
	l.atLineStart = false
	start := l.pos
	length := 0
	kind := token.IndentUnknown
	for {
		switch l.ch {
		case ' ':
			if kind == token.IndentUnknown {
				kind = token.IndentSpaces
			}
			length++
			l.advance()
			continue
		case '\t':
			if kind == token.IndentUnknown {
				kind = token.IndentTabs
			}
			length++
			l.advance()
			continue
		}
		break
	}
	// A line that is blank or comment-only carries no layout information;
	// let the caller skip straight through it.
	if l.ch == '\n' || l.ch == '#' || l.eof() {
		return token.Token{}, false
	}
	return token.Token{
		Kind:   token.Newline,
		Span:   l.span(start),
		Indent: token.Indent{Length: length, Kind: kind},
	}, true
}

func (l *Lexer) skipHorizontalSpaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.advance()
			continue
		case '#':
			for l.ch != '\n' && !l.eof() {
				l.advance()
			}
			continue
		}
		return
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentRune(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func (l *Lexer) scanIdent(start int) token.Token {
	for isIdentRune(l.ch) {
		l.advance()
	}
	lexeme := l.input[start:l.pos]
	kind := token.LookupIdent(lexeme)
	tok := token.Token{Kind: kind, Lexeme: lexeme, Span: l.span(start)}
	if kind == token.BoolLit {
		tok.Literal = lexeme == "true"
	}
	return tok
}

func (l *Lexer) scanString(start int) token.Token {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		if l.eof() {
			l.errorf(start, "unterminated string literal")
			break
		}
		if l.ch == '"' {
			l.advance()
			break
		}
		if l.ch == '\\' {
			l.advance()
			sb.WriteRune(decodeEscape(l.ch))
			l.advance()
			continue
		}
		sb.WriteRune(l.ch)
		l.advance()
	}
	return token.Token{Kind: token.StringLit, Lexeme: l.input[start:l.pos], Span: l.span(start), Literal: sb.String()}
}

func decodeEscape(ch rune) rune {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return ch
	}
}

func (l *Lexer) errorf(start int, kindMsg string) {
	_ = kindMsg
	l.Errors = append(l.Errors, &diag.LexicalError{
		Kind:  diag.InvalidToken,
		Span_: l.span(start),
		Found: l.input[start:l.pos],
	})
}

// scanOperator handles symbols and operators, greedily matching the
// longest recognized lexeme.
func (l *Lexer) scanOperator(start int) token.Token {
	ch := l.ch
	two := string(ch) + string(l.peek())

	simpleTwo := map[string]token.Kind{
		"->": token.Arrow,
		"::": token.Cons,
		"==": token.Eq,
		"!=": token.NotEq,
		"<=": token.LtEq,
		">=": token.GtEq,
		"&&": token.AndAnd,
		"||": token.OrOr,
		"<<": token.Shl,
		">>": token.Shr,
		"**": token.Caret,
		"..": token.Range,
	}
	if kind, ok := simpleTwo[two]; ok {
		l.advance()
		l.advance()
		return token.Token{Kind: kind, Lexeme: two, Span: l.span(start)}
	}

	simpleOne := map[rune]token.Kind{
		'(': token.LParen,
		')': token.RParen,
		'[': token.LBracket,
		']': token.RBracket,
		'{': token.LBrace,
		'}': token.RBrace,
		',': token.Comma,
		':': token.Colon,
		'|': token.Pipe,
		'=': token.Assign,
		'+': token.Plus,
		'-': token.Minus,
		'*': token.Star,
		'/': token.Slash,
		'%': token.Percent,
		'<': token.Lt,
		'>': token.Gt,
		'&': token.Amp,
		'^': token.Xor,
		'!': token.Bang,
		'~': token.Tilde,
		'@': token.Concat,
	}
	if kind, ok := simpleOne[ch]; ok {
		l.advance()
		return token.Token{Kind: kind, Lexeme: string(ch), Span: l.span(start)}
	}

	// Unrecognized byte: fail-soft, produce InvalidToken and keep scanning.
	l.advance()
	lexeme := l.input[start:l.pos]
	l.Errors = append(l.Errors, &diag.LexicalError{
		Kind:  diag.InvalidToken,
		Span_: l.span(start),
		Found: lexeme,
	})
	return token.Token{Kind: token.Invalid, Lexeme: lexeme, Span: l.span(start)}
}

func (l *Lexer) scanNumber(start int) token.Token {
	negative := false
	if l.ch == '-' {
		negative = true
		l.advance()
	}

	radix := 10
	digitStart := l.pos
	if l.ch == '0' {
		switch l.peek() {
		case 'x', 'X':
			radix = 16
			l.advance()
			l.advance()
			digitStart = l.pos
		case 'b', 'B':
			radix = 2
			l.advance()
			l.advance()
			digitStart = l.pos
		case 'o', 'O':
			radix = 8
			l.advance()
			l.advance()
			digitStart = l.pos
		case 'd', 'D':
			radix = 10
			l.advance()
			l.advance()
			digitStart = l.pos
		}
	}

	isFloat := false
	for isDigitForRadix(l.ch, radix) || l.ch == '_' {
		l.advance()
	}
	if radix == 10 && l.ch == '.' && unicode.IsDigit(l.peek()) {
		isFloat = true
		l.advance()
		for unicode.IsDigit(l.ch) || l.ch == '_' {
			l.advance()
		}
	}
	if radix == 10 && (l.ch == 'e' || l.ch == 'E') {
		isFloat = true
		l.advance()
		if l.ch == '+' || l.ch == '-' {
			l.advance()
		}
		for unicode.IsDigit(l.ch) {
			l.advance()
		}
	}

	digits := strings.ReplaceAll(l.input[digitStart:l.pos], "_", "")
	lexeme := l.input[start:l.pos]
	sp := l.span(start)

	if isFloat {
		f, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			l.Errors = append(l.Errors, &diag.LexicalError{Kind: diag.InvalidInteger, Span_: sp, Found: lexeme})
			return token.Token{Kind: token.Invalid, Lexeme: lexeme, Span: sp}
		}
		if negative {
			f = -f
		}
		return token.Token{Kind: token.FloatLit, Lexeme: lexeme, Span: sp, Literal: f}
	}

	u, err := strconv.ParseUint(digits, radix, 64)
	if err != nil {
		l.Errors = append(l.Errors, &diag.LexicalError{Kind: diag.InvalidInteger, Span_: sp, Found: lexeme})
		return token.Token{Kind: token.Invalid, Lexeme: lexeme, Span: sp}
	}
	if negative {
		return token.Token{Kind: token.IntLit, Lexeme: lexeme, Span: sp, Literal: -int64(u)}
	}
	return token.Token{Kind: token.NatLit, Lexeme: lexeme, Span: sp, Literal: u}
}

func isDigitForRadix(ch rune, radix int) bool {
	switch radix {
	case 2:
		return ch == '0' || ch == '1'
	case 8:
		return ch >= '0' && ch <= '7'
	case 16:
		return unicode.IsDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
	default:
		return unicode.IsDigit(ch)
	}
}
