package parser

import (
	"github.com/kaylendog/kali/internal/ast"
	"github.com/kaylendog/kali/internal/source"
	"github.com/kaylendog/kali/internal/token"
)

func (p *Parser) parseImport() (ast.Stmt[source.Span], bool) {
	start := p.advance().Span // 'import'

	var path []string
	first, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}
	path = append(path, first.Lexeme)
	for p.at(token.Cons) { // '::' reused as a module-path separator
		p.advance()
		part, ok := p.expect(token.Ident)
		if !ok {
			return nil, false
		}
		path = append(path, part.Lexeme)
	}

	var names []ast.ImportName
	if p.at(token.LParen) {
		p.advance()
		for !p.at(token.RParen) && !p.at(token.EOF) {
			nameTok, ok := p.expect(token.Ident)
			if !ok {
				return nil, false
			}
			n := ast.ImportName{Name: nameTok.Lexeme}
			if p.at(token.KwAs) {
				p.advance()
				aliasTok, ok := p.expect(token.Ident)
				if !ok {
					return nil, false
				}
				n.Alias = aliasTok.Lexeme
			}
			names = append(names, n)
			if p.at(token.Comma) {
				p.advance()
			}
		}
		if _, ok := p.expect(token.RParen); !ok {
			return nil, false
		}
	}

	end := p.toks[p.pos-1].Span
	span := start.Extend(end)
	return ast.ImportStmt[source.Span]{Node: ast.NewNode(span, span), Path: path, Names: names}, true
}

func (p *Parser) parseExport() (ast.Stmt[source.Span], bool) {
	start := p.advance().Span // 'export'
	name, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}
	span := start.Extend(name.Span)
	return ast.ExportStmt[source.Span]{Node: ast.NewNode(span, span), Name: name.Lexeme}, true
}

func (p *Parser) parseTypeDecl() (ast.Stmt[source.Span], bool) {
	start := p.advance().Span // 'type'
	name, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Assign); !ok {
		return nil, false
	}
	te, ok := p.parseTypeExpr()
	if !ok {
		return nil, false
	}
	span := start.Extend(te.Span())
	return ast.TypeDecl[source.Span]{Node: ast.NewNode(span, span), Name: name.Lexeme, Type: te}, true
}

func (p *Parser) parseDecl() (ast.Stmt[source.Span], bool) {
	start := p.advance().Span // 'let'
	name, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}

	var typeAnnot ast.TypeExpr[source.Span]
	if p.at(token.Colon) {
		p.advance()
		te, ok := p.parseTypeExpr()
		if !ok {
			return nil, false
		}
		typeAnnot = te
	}

	if _, ok := p.expect(token.Assign); !ok {
		return nil, false
	}
	value, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	span := start.Extend(value.Span())
	return ast.Decl[source.Span]{Node: ast.NewNode(span, span), Name: name.Lexeme, Type: typeAnnot, Value: value}, true
}

func (p *Parser) parseFuncDecl() (ast.Stmt[source.Span], bool) {
	start := p.advance().Span // 'fn'
	name, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}
	params, ok := p.parseParamList()
	if !ok {
		return nil, false
	}

	var ret ast.TypeExpr[source.Span]
	if p.at(token.Arrow) {
		p.advance()
		te, ok := p.parseTypeExpr()
		if !ok {
			return nil, false
		}
		ret = te
	}

	if _, ok := p.expect(token.Assign); !ok {
		return nil, false
	}
	body, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	span := start.Extend(body.Span())
	return ast.FuncDecl[source.Span]{
		Node: ast.NewNode(span, span), Name: name.Lexeme, Params: params, ReturnType: ret, Body: body,
	}, true
}

func (p *Parser) parseParamList() ([]ast.Param[source.Span], bool) {
	if _, ok := p.expect(token.LParen); !ok {
		return nil, false
	}
	var params []ast.Param[source.Span]
	for !p.at(token.RParen) && !p.at(token.EOF) {
		nameTok, ok := p.expect(token.Ident)
		if !ok {
			return nil, false
		}
		param := ast.Param[source.Span]{Name: nameTok.Lexeme, Span: nameTok.Span}
		if p.at(token.Colon) {
			p.advance()
			te, ok := p.parseTypeExpr()
			if !ok {
				return nil, false
			}
			param.Type = te
			param.Span = nameTok.Span.Extend(te.Span())
		}
		params = append(params, param)
		if p.at(token.Comma) {
			p.advance()
		}
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil, false
	}
	return params, true
}
