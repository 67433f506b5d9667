// Package parser turns a layout-aware token stream into an
// ast.Module[source.Span]. Errors do not abort the
// parse: the parser resumes scanning at the next statement boundary
// and accumulates everything it found, so one malformed statement
// never hides problems in the rest of the file.
package parser

import (
	"github.com/kaylendog/kali/internal/ast"
	"github.com/kaylendog/kali/internal/diag"
	"github.com/kaylendog/kali/internal/source"
	"github.com/kaylendog/kali/internal/token"
)

// Parser consumes a flat token.Token slice (the output of
// lexer.IndentLexer.Tokenize) and builds a Module.
type Parser struct {
	file   source.FileID
	toks   []token.Token
	pos    int
	Errors []*diag.ParseError
}

// New builds a Parser over toks, the full token stream for file
// (BlockStart/BlockEnd/EOF included).
func New(file source.FileID, toks []token.Token) *Parser {
	return &Parser{file: file, toks: toks}
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[i]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) at(kind token.Kind) bool { return p.cur().Kind == kind }

func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	tok := p.cur()
	if tok.Kind == token.EOF {
		p.Errors = append(p.Errors, &diag.ParseError{
			Kind: diag.UnrecognizedEOF, Span_: tok.Span, Expected: []string{kind.String()},
		})
	} else {
		p.Errors = append(p.Errors, &diag.ParseError{
			Kind: diag.UnrecognizedToken, Span_: tok.Span, Token: tok.String(), Expected: []string{kind.String()},
		})
	}
	return tok, false
}

// syncToStatement discards tokens until it finds one that plausibly
// starts the next statement, so a single parse error doesn't cascade
// into spurious follow-on errors.
func (p *Parser) syncToStatement() {
	for !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.KwImport, token.KwExport, token.KwFn, token.KwType, token.KwLet, token.BlockEnd:
			return
		}
		p.advance()
	}
}

// ParseModule parses the entire token stream as a module: a flat,
// unindented sequence of statements.
func (p *Parser) ParseModule() (ast.Module[source.Span], []*diag.ParseError) {
	start := p.cur().Span
	var stmts []ast.Stmt[source.Span]
	for !p.at(token.EOF) {
		if p.at(token.BlockEnd) || p.at(token.BlockStart) {
			p.advance()
			continue
		}
		stmt, ok := p.parseStmt()
		if !ok {
			p.syncToStatement()
			continue
		}
		stmts = append(stmts, stmt)
	}
	end := p.cur().Span
	span := start.Extend(end)
	return ast.Module[source.Span]{
		Node:  ast.NewNode(span, span),
		File:  p.file,
		Stmts: stmts,
	}, p.Errors
}

// ParseExpr parses the token stream as a single standalone expression,
// the entry point kali.ParseExpr uses when it wants an Expr rather than
// a whole Module.
func (p *Parser) ParseExpr() (ast.Expr[source.Span], []*diag.ParseError) {
	expr, ok := p.parseExpr(0)
	if !ok {
		return nil, p.Errors
	}
	if !p.at(token.EOF) {
		tok := p.cur()
		p.Errors = append(p.Errors, &diag.ParseError{
			Kind: diag.ExtraToken, Span_: tok.Span, Token: tok.String(),
		})
	}
	return expr, p.Errors
}

func (p *Parser) parseStmt() (ast.Stmt[source.Span], bool) {
	switch p.cur().Kind {
	case token.KwImport:
		return p.parseImport()
	case token.KwExport:
		return p.parseExport()
	case token.KwType:
		return p.parseTypeDecl()
	case token.KwLet:
		return p.parseDecl()
	case token.KwFn:
		if p.peekAt(1).Kind == token.Ident {
			return p.parseFuncDecl()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseExprStmt() (ast.Stmt[source.Span], bool) {
	expr, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	return ast.ExprStmt[source.Span]{Node: ast.NewNode(expr.Span(), expr.Span()), Expr: expr}, true
}
