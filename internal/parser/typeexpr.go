package parser

import (
	"unicode"

	"github.com/kaylendog/kali/internal/ast"
	"github.com/kaylendog/kali/internal/source"
	"github.com/kaylendog/kali/internal/token"
)

// parseTypeExpr parses one type annotation. Lowercase-leading identifiers
// are polymorphic type variables; uppercase-leading ones are nominal or
// parameterized type names.
func (p *Parser) parseTypeExpr() (ast.TypeExpr[source.Span], bool) {
	switch p.cur().Kind {
	case token.LParen:
		return p.parseParenOrFunctionType()
	case token.LBracket:
		return p.parseArrayType()
	case token.LBrace:
		return p.parseRecordType()
	case token.Ident:
		return p.parseNamedType()
	default:
		return p.parseNamedType()
	}
}

func (p *Parser) parseParenOrFunctionType() (ast.TypeExpr[source.Span], bool) {
	start := p.advance().Span // '('
	var elements []ast.TypeExpr[source.Span]
	for !p.at(token.RParen) && !p.at(token.EOF) {
		te, ok := p.parseTypeExpr()
		if !ok {
			return nil, false
		}
		elements = append(elements, te)
		if p.at(token.Comma) {
			p.advance()
		}
	}
	closeTok, ok := p.expect(token.RParen)
	if !ok {
		return nil, false
	}

	if p.at(token.Arrow) {
		p.advance()
		ret, ok := p.parseTypeExpr()
		if !ok {
			return nil, false
		}
		span := start.Extend(ret.Span())
		return ast.FunctionTypeExpr[source.Span]{Node: ast.NewNode(span, span), Params: elements, Return: ret}, true
	}

	span := start.Extend(closeTok.Span)
	if len(elements) == 1 {
		return elements[0], true
	}
	return ast.TupleTypeExpr[source.Span]{Node: ast.NewNode(span, span), Elements: elements}, true
}

func (p *Parser) parseArrayType() (ast.TypeExpr[source.Span], bool) {
	start := p.advance().Span // '['
	elem, ok := p.parseTypeExpr()
	if !ok {
		return nil, false
	}
	closeTok, ok := p.expect(token.RBracket)
	if !ok {
		return nil, false
	}
	span := start.Extend(closeTok.Span)
	return ast.ArrayTypeExpr[source.Span]{Node: ast.NewNode(span, span), Element: elem}, true
}

func (p *Parser) parseRecordType() (ast.TypeExpr[source.Span], bool) {
	start := p.advance().Span // '{'
	var fields []ast.RecordTypeFieldExpr[source.Span]
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		nameTok, ok := p.expect(token.Ident)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon); !ok {
			return nil, false
		}
		te, ok := p.parseTypeExpr()
		if !ok {
			return nil, false
		}
		fields = append(fields, ast.RecordTypeFieldExpr[source.Span]{Name: nameTok.Lexeme, Type: te})
		if p.at(token.Comma) {
			p.advance()
		}
	}
	closeTok, ok := p.expect(token.RBrace)
	if !ok {
		return nil, false
	}
	span := start.Extend(closeTok.Span)
	return ast.RecordTypeExpr[source.Span]{Node: ast.NewNode(span, span), Fields: fields}, true
}

func (p *Parser) parseNamedType() (ast.TypeExpr[source.Span], bool) {
	nameTok, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}
	isVar := len(nameTok.Lexeme) > 0 && unicode.IsLower(rune(nameTok.Lexeme[0]))

	if p.at(token.LParen) {
		p.advance()
		var args []ast.TypeExpr[source.Span]
		for !p.at(token.RParen) && !p.at(token.EOF) {
			arg, ok := p.parseTypeExpr()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
			if p.at(token.Comma) {
				p.advance()
			}
		}
		closeTok, ok := p.expect(token.RParen)
		if !ok {
			return nil, false
		}
		span := nameTok.Span.Extend(closeTok.Span)
		return ast.ParameterizedTypeExpr[source.Span]{Node: ast.NewNode(span, span), Name: nameTok.Lexeme, Args: args}, true
	}

	if isVar {
		return ast.VariableTypeExpr[source.Span]{Node: ast.NewNode(nameTok.Span, nameTok.Span), Name: nameTok.Lexeme}, true
	}
	return ast.ConstantTypeExpr[source.Span]{Node: ast.NewNode(nameTok.Span, nameTok.Span), Name: nameTok.Lexeme}, true
}
