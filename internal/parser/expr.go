package parser

import (
	"github.com/kaylendog/kali/internal/ast"
	"github.com/kaylendog/kali/internal/diag"
	"github.com/kaylendog/kali/internal/source"
	"github.com/kaylendog/kali/internal/token"
)

type binOpInfo struct {
	op         ast.BinaryOp
	precedence int
	rightAssoc bool
}

var binOps = map[token.Kind]binOpInfo{
	token.OrOr:    {ast.LogicalOr, 1, false},
	token.AndAnd:  {ast.LogicalAnd, 2, false},
	token.Pipe:    {ast.BitwiseOr, 3, false},
	token.Xor:     {ast.BitwiseXor, 4, false},
	token.Amp:     {ast.BitwiseAnd, 5, false},
	token.Eq:      {ast.Equal, 6, false},
	token.NotEq:   {ast.NotEqual, 6, false},
	token.Lt:      {ast.LessThan, 7, false},
	token.LtEq:    {ast.LessThanOrEqual, 7, false},
	token.Gt:      {ast.GreaterThan, 7, false},
	token.GtEq:    {ast.GreaterThanOrEqual, 7, false},
	token.Shl:     {ast.ShiftLeft, 8, false},
	token.Shr:     {ast.ShiftRight, 8, false},
	token.Plus:    {ast.Add, 9, false},
	token.Minus:   {ast.Subtract, 9, false},
	token.Star:    {ast.Multiply, 10, false},
	token.Slash:   {ast.Divide, 10, false},
	token.Percent: {ast.Modulo, 10, false},
	token.Cons:    {ast.Cons, 11, true},
	token.Caret:   {ast.Exponentiate, 12, true},
}

// parseExpr parses an expression whose operators bind at least as
// tightly as minPrec, precedence-climbing over the table above.
func (p *Parser) parseExpr(minPrec int) (ast.Expr[source.Span], bool) {
	lhs, ok := p.parseUnary()
	if !ok {
		return nil, false
	}

	for {
		info, known := binOps[p.cur().Kind]
		if !known || info.precedence < minPrec {
			return lhs, true
		}
		p.advance()
		nextMin := info.precedence + 1
		if info.rightAssoc {
			nextMin = info.precedence
		}
		rhs, ok := p.parseExpr(nextMin)
		if !ok {
			return nil, false
		}
		span := lhs.Span().Extend(rhs.Span())
		lhs = ast.BinaryExpr[source.Span]{Node: ast.NewNode(span, span), LHS: lhs, RHS: rhs, Op: info.op}
	}
}

func (p *Parser) parseUnary() (ast.Expr[source.Span], bool) {
	var op ast.UnaryOp
	switch p.cur().Kind {
	case token.Minus:
		op = ast.Negate
	case token.Bang:
		op = ast.LogicalNot
	case token.Tilde:
		op = ast.BitwiseNot
	default:
		return p.parsePostfix()
	}
	start := p.advance().Span
	inner, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	span := start.Extend(inner.Span())
	return ast.UnaryExpr[source.Span]{Node: ast.NewNode(span, span), Op: op, Inner: inner}, true
}

// parsePostfix handles call application chained onto a primary
// expression: `f(a)(b)` parses as two nested Calls.
func (p *Parser) parsePostfix() (ast.Expr[source.Span], bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for p.at(token.LParen) {
		p.advance()
		var args []ast.Expr[source.Span]
		zeroArg := p.at(token.RParen)
		for !p.at(token.RParen) && !p.at(token.EOF) {
			arg, ok := p.parseExpr(0)
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
		span := expr.Span().Extend(closeTok.Span)
		expr = ast.Call[source.Span]{Node: ast.NewNode(span, span), Fun: expr, Args: args, ZeroArg: zeroArg}
	}
	return expr, true
}

func (p *Parser) parsePrimary() (ast.Expr[source.Span], bool) {
	tok := p.cur()
	switch tok.Kind {
	case token.NatLit:
		p.advance()
		return ast.NatLiteral[source.Span]{Node: ast.NewNode(tok.Span, tok.Span), Value: tok.Literal.(uint64)}, true
	case token.IntLit:
		p.advance()
		return ast.IntLiteral[source.Span]{Node: ast.NewNode(tok.Span, tok.Span), Value: tok.Literal.(int64)}, true
	case token.FloatLit:
		p.advance()
		return ast.FloatLiteral[source.Span]{Node: ast.NewNode(tok.Span, tok.Span), Value: tok.Literal.(float64)}, true
	case token.BoolLit:
		p.advance()
		return ast.BoolLiteral[source.Span]{Node: ast.NewNode(tok.Span, tok.Span), Value: tok.Literal.(bool)}, true
	case token.StringLit:
		p.advance()
		return ast.StringLiteral[source.Span]{Node: ast.NewNode(tok.Span, tok.Span), Value: tok.Literal.(string)}, true
	case token.Ident:
		p.advance()
		ident := ast.Identifier[source.Span]{Node: ast.NewNode(tok.Span, tok.Span), Name: tok.Lexeme}
		return ast.IdentExpr[source.Span]{Node: ast.NewNode(tok.Span, tok.Span), Ident: ident}, true
	case token.LParen:
		return p.parseParenOrUnitOrTuple()
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseRecordLiteral()
	case token.KwIf:
		return p.parseConditional()
	case token.KwFn:
		return p.parseLambda()
	case token.KwMatch:
		return p.parseMatch()
	default:
		if tok.Kind == token.EOF {
			p.Errors = append(p.Errors, &diag.ParseError{
				Kind: diag.UnrecognizedEOF, Span_: tok.Span, Expected: []string{"expression"},
			})
		} else {
			p.Errors = append(p.Errors, &diag.ParseError{
				Kind: diag.UnrecognizedToken, Span_: tok.Span, Token: tok.String(), Expected: []string{"expression"},
			})
			p.advance()
		}
		return nil, false
	}
}

func (p *Parser) parseParenOrUnitOrTuple() (ast.Expr[source.Span], bool) {
	start := p.advance().Span // '('
	if p.at(token.RParen) {
		closeTok := p.advance()
		span := start.Extend(closeTok.Span)
		return ast.UnitLiteral[source.Span]{Node: ast.NewNode(span, span)}, true
	}
	first, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	if p.at(token.RParen) {
		p.advance()
		return first, true
	}
	elems := []ast.Expr[source.Span]{first}
	for p.at(token.Comma) {
		p.advance()
		if p.at(token.RParen) {
			break
		}
		next, ok := p.parseExpr(0)
		if !ok {
			return nil, false
		}
		elems = append(elems, next)
	}
	closeTok, ok := p.expect(token.RParen)
	if !ok {
		return nil, false
	}
	span := start.Extend(closeTok.Span)
	return ast.TupleLiteral[source.Span]{Node: ast.NewNode(span, span), Elements: elems}, true
}

func (p *Parser) parseArrayLiteral() (ast.Expr[source.Span], bool) {
	start := p.advance().Span // '['
	var elems []ast.Expr[source.Span]
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		el, ok := p.parseExpr(0)
		if !ok {
			return nil, false
		}
		elems = append(elems, el)
		if p.at(token.Comma) {
			p.advance()
		}
	}
	closeTok, ok := p.expect(token.RBracket)
	if !ok {
		return nil, false
	}
	span := start.Extend(closeTok.Span)
	return ast.ArrayLiteral[source.Span]{Node: ast.NewNode(span, span), Elements: elems}, true
}

func (p *Parser) parseRecordLiteral() (ast.Expr[source.Span], bool) {
	start := p.advance().Span // '{'
	var fields []ast.RecordField[source.Span]
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		nameTok, ok := p.expect(token.Ident)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon); !ok {
			return nil, false
		}
		value, ok := p.parseExpr(0)
		if !ok {
			return nil, false
		}
		fields = append(fields, ast.RecordField[source.Span]{Name: nameTok.Lexeme, Value: value})
		if p.at(token.Comma) {
			p.advance()
		}
	}
	closeTok, ok := p.expect(token.RBrace)
	if !ok {
		return nil, false
	}
	span := start.Extend(closeTok.Span)
	return ast.RecordLiteral[source.Span]{Node: ast.NewNode(span, span), Fields: fields}, true
}

func (p *Parser) parseConditional() (ast.Expr[source.Span], bool) {
	start := p.advance().Span // 'if'
	cond, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwThen); !ok {
		return nil, false
	}
	body, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwElse); !ok {
		return nil, false
	}
	otherwise, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	span := start.Extend(otherwise.Span())
	return ast.Conditional[source.Span]{Node: ast.NewNode(span, span), Condition: cond, Body: body, Otherwise: otherwise}, true
}

func (p *Parser) parseLambda() (ast.Expr[source.Span], bool) {
	start := p.advance().Span // 'fn'
	params, ok := p.parseParamList()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Arrow); !ok {
		return nil, false
	}
	body, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	span := start.Extend(body.Span())
	return ast.Lambda[source.Span]{Node: ast.NewNode(span, span), Params: params, Body: body}, true
}

func (p *Parser) parseMatch() (ast.Expr[source.Span], bool) {
	start := p.advance().Span // 'match'
	subject, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwWith); !ok {
		return nil, false
	}
	if p.at(token.BlockStart) {
		p.advance()
	}

	var branches []ast.MatchBranch[source.Span]
	lastSpan := subject.Span()
	for !p.at(token.BlockEnd) && !p.at(token.EOF) {
		if p.at(token.Pipe) {
			p.advance()
		}
		pat, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Arrow); !ok {
			return nil, false
		}
		body, ok := p.parseExpr(0)
		if !ok {
			return nil, false
		}
		branches = append(branches, ast.MatchBranch[source.Span]{Pattern: pat, Body: body})
		lastSpan = body.Span()
	}
	if p.at(token.BlockEnd) {
		p.advance()
	}
	span := start.Extend(lastSpan)
	return ast.Match[source.Span]{Node: ast.NewNode(span, span), Subject: subject, Branches: branches}, true
}

