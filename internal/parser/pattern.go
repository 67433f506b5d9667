package parser

import (
	"github.com/kaylendog/kali/internal/ast"
	"github.com/kaylendog/kali/internal/diag"
	"github.com/kaylendog/kali/internal/source"
	"github.com/kaylendog/kali/internal/token"
)

// parsePattern parses one match-branch pattern. Range patterns
// (`1..10`) and cons patterns (`head :: tail`) bind looser than the
// atoms they combine, so those are checked for after parsing an atom.
func (p *Parser) parsePattern() (ast.Pattern[source.Span], bool) {
	atom, ok := p.parsePatternAtom()
	if !ok {
		return nil, false
	}

	if p.at(token.Range) {
		p.advance()
		highAtom, ok := p.parsePatternAtom()
		if !ok {
			return nil, false
		}
		lowLit, lok := atom.(ast.LiteralPattern[source.Span])
		highLit, hok := highAtom.(ast.LiteralPattern[source.Span])
		if !lok || !hok {
			span := atom.Span().Extend(highAtom.Span())
			p.Errors = append(p.Errors, &diag.ParseError{Kind: diag.InvalidTokenP, Span_: span})
			return nil, false
		}
		span := atom.Span().Extend(highAtom.Span())
		return ast.RangePattern[source.Span]{Node: ast.NewNode(span, span), Low: lowLit.Value, High: highLit.Value}, true
	}

	if p.at(token.Cons) {
		p.advance()
		tail, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		span := atom.Span().Extend(tail.Span())
		return ast.ConsPattern[source.Span]{Node: ast.NewNode(span, span), Head: atom, Tail: tail}, true
	}

	return atom, true
}

func (p *Parser) parsePatternAtom() (ast.Pattern[source.Span], bool) {
	tok := p.cur()
	switch tok.Kind {
	case token.Wildcard:
		p.advance()
		return ast.WildcardPattern[source.Span]{Node: ast.NewNode(tok.Span, tok.Span)}, true

	case token.Ident:
		p.advance()
		return ast.IdentPattern[source.Span]{Node: ast.NewNode(tok.Span, tok.Span), Name: tok.Lexeme}, true

	case token.LBracket:
		p.advance()
		closeTok, ok := p.expect(token.RBracket)
		if !ok {
			return nil, false
		}
		span := tok.Span.Extend(closeTok.Span)
		return ast.EmptyListPattern[source.Span]{Node: ast.NewNode(span, span)}, true

	case token.LParen:
		p.advance()
		var elems []ast.Pattern[source.Span]
		for !p.at(token.RParen) && !p.at(token.EOF) {
			el, ok := p.parsePattern()
			if !ok {
				return nil, false
			}
			elems = append(elems, el)
			if p.at(token.Comma) {
				p.advance()
			}
		}
		closeTok, ok := p.expect(token.RParen)
		if !ok {
			return nil, false
		}
		span := tok.Span.Extend(closeTok.Span)
		return ast.TuplePattern[source.Span]{Node: ast.NewNode(span, span), Elements: elems}, true

	case token.NatLit, token.IntLit, token.FloatLit, token.BoolLit, token.StringLit:
		lit, ok := p.parsePrimary()
		if !ok {
			return nil, false
		}
		literal, ok := lit.(ast.Literal[source.Span])
		if !ok {
			p.Errors = append(p.Errors, &diag.ParseError{Kind: diag.InvalidTokenP, Span_: tok.Span})
			return nil, false
		}
		return ast.LiteralPattern[source.Span]{Node: ast.NewNode(lit.Span(), lit.Span()), Value: literal}, true

	default:
		p.Errors = append(p.Errors, &diag.ParseError{
			Kind: diag.UnrecognizedToken, Span_: tok.Span, Token: tok.String(), Expected: []string{"pattern"},
		})
		p.advance()
		return nil, false
	}
}
