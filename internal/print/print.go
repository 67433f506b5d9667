// Package print renders AST nodes back to source-like text: it backs
// both the "in if <cond>" context the inference engine appends to a
// conditional's type error and golden-test round-trip assertions. It works over any Meta type
// since rendering never looks at metadata, only tree shape.
package print

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/kaylendog/kali/internal/ast"
)

// binaryPrecedence mirrors the parser's binOps table so parenthesization
// decisions agree with how the rendered text would itself reparse.
var binaryPrecedence = map[ast.BinaryOp]int{
	ast.LogicalOr: 1, ast.LogicalAnd: 2,
	ast.BitwiseOr: 3, ast.BitwiseXor: 4, ast.BitwiseAnd: 5,
	ast.Equal: 6, ast.NotEqual: 6,
	ast.LessThan: 7, ast.LessThanOrEqual: 7, ast.GreaterThan: 7, ast.GreaterThanOrEqual: 7,
	ast.ShiftLeft: 8, ast.ShiftRight: 8,
	ast.Add: 9, ast.Subtract: 9,
	ast.Multiply: 10, ast.Divide: 10, ast.Modulo: 10,
	ast.Cons: 11, ast.Exponentiate: 12,
}

var rightAssoc = map[ast.BinaryOp]bool{ast.Cons: true, ast.Exponentiate: true}

// Printer accumulates rendered text with indentation tracking, the same
// buffer-plus-indent-level shape the reference tree's own code printer
// uses.
type Printer struct {
	buf    bytes.Buffer
	indent int
}

// New returns an empty Printer.
func New() *Printer {
	return &Printer{}
}

// String returns everything written so far.
func (p *Printer) String() string {
	return p.buf.String()
}

func (p *Printer) write(s string) {
	p.buf.WriteString(s)
}

func (p *Printer) newline() {
	p.buf.WriteString("\n")
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

// Expr renders expr as a standalone string.
func Expr[Meta any](expr ast.Expr[Meta]) string {
	p := New()
	writeExpr(p, expr, 0)
	return p.String()
}

// Pattern renders pat as a standalone string.
func Pattern[Meta any](pat ast.Pattern[Meta]) string {
	p := New()
	writePattern(p, pat)
	return p.String()
}

// TypeExpr renders a surface type annotation as a standalone string.
func TypeExpr[Meta any](te ast.TypeExpr[Meta]) string {
	p := New()
	writeTypeExpr(p, te)
	return p.String()
}

// Module renders every top-level statement of m, one per line.
func Module[Meta any](m ast.Module[Meta]) string {
	p := New()
	for i, s := range m.Stmts {
		if i > 0 {
			p.write("\n")
		}
		writeStmt(p, s)
	}
	return p.String()
}

func writeParams[Meta any](p *Printer, params []ast.Param[Meta]) {
	p.write("(")
	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Name)
		if param.Type != nil {
			p.write(": ")
			writeTypeExpr(p, param.Type)
		}
	}
	p.write(")")
}

func writeStmt[Meta any](p *Printer, s ast.Stmt[Meta]) {
	switch st := s.(type) {
	case ast.ImportStmt[Meta]:
		names := make([]string, len(st.Names))
		for i, n := range st.Names {
			if n.Alias != "" {
				names[i] = n.Name + " as " + n.Alias
			} else {
				names[i] = n.Name
			}
		}
		p.write(fmt.Sprintf("import %s (%s)", strings.Join(st.Path, "::"), strings.Join(names, ", ")))
	case ast.ExportStmt[Meta]:
		p.write("export " + st.Name)
	case ast.TypeDecl[Meta]:
		p.write("type " + st.Name + " = ")
		writeTypeExpr(p, st.Type)
	case ast.ConstDecl[Meta]:
		p.write("const " + st.Name)
		if st.Type != nil {
			p.write(": ")
			writeTypeExpr(p, st.Type)
		}
		p.write(" = ")
		writeExpr(p, st.Value, 0)
	case ast.Decl[Meta]:
		p.write("let " + st.Name)
		if st.Type != nil {
			p.write(": ")
			writeTypeExpr(p, st.Type)
		}
		p.write(" = ")
		writeExpr(p, st.Value, 0)
	case ast.FuncDecl[Meta]:
		p.write("fn " + st.Name)
		writeParams(p, st.Params)
		if st.ReturnType != nil {
			p.write(" -> ")
			writeTypeExpr(p, st.ReturnType)
		}
		p.write(" = ")
		writeExpr(p, st.Body, 0)
	case ast.ExprStmt[Meta]:
		writeExpr(p, st.Expr, 0)
	default:
		p.write(fmt.Sprintf("<%T>", st))
	}
}

func writeExpr[Meta any](p *Printer, expr ast.Expr[Meta], minPrec int) {
	switch x := expr.(type) {
	case ast.NatLiteral[Meta]:
		p.write(strconv.FormatUint(x.Value, 10))
	case ast.IntLiteral[Meta]:
		p.write(strconv.FormatInt(x.Value, 10))
	case ast.FloatLiteral[Meta]:
		p.write(strconv.FormatFloat(x.Value, 'g', -1, 64))
	case ast.BoolLiteral[Meta]:
		p.write(strconv.FormatBool(x.Value))
	case ast.StringLiteral[Meta]:
		p.write(strconv.Quote(x.Value))
	case ast.UnitLiteral[Meta]:
		p.write("()")
	case ast.ArrayLiteral[Meta]:
		p.write("[")
		for i, el := range x.Elements {
			if i > 0 {
				p.write(", ")
			}
			writeExpr(p, el, 0)
		}
		p.write("]")
	case ast.TupleLiteral[Meta]:
		p.write("(")
		for i, el := range x.Elements {
			if i > 0 {
				p.write(", ")
			}
			writeExpr(p, el, 0)
		}
		p.write(")")
	case ast.RecordLiteral[Meta]:
		p.write("{")
		for i, f := range x.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.write(f.Name + ": ")
			writeExpr(p, f.Value, 0)
		}
		p.write("}")
	case ast.IdentExpr[Meta]:
		p.write(x.Ident.Name)
	case ast.BinaryExpr[Meta]:
		writeBinary(p, x, minPrec)
	case ast.UnaryExpr[Meta]:
		p.write(x.Op.String())
		writeExpr(p, x.Inner, 100)
	case ast.Conditional[Meta]:
		p.write("if ")
		writeExpr(p, x.Condition, 0)
		p.write(" then ")
		writeExpr(p, x.Body, 0)
		p.write(" else ")
		writeExpr(p, x.Otherwise, 0)
	case ast.Lambda[Meta]:
		p.write("fn")
		writeParams(p, x.Params)
		p.write(" -> ")
		writeExpr(p, x.Body, 0)
	case ast.Match[Meta]:
		p.write("match ")
		writeExpr(p, x.Subject, 0)
		p.write(" with")
		p.indent++
		for _, br := range x.Branches {
			p.newline()
			writePattern(p, br.Pattern)
			p.write(" -> ")
			writeExpr(p, br.Body, 0)
		}
		p.indent--
	case ast.Call[Meta]:
		writeExpr(p, x.Fun, 100)
		p.write("(")
		for i, a := range x.Args {
			if i > 0 {
				p.write(", ")
			}
			writeExpr(p, a, 0)
		}
		p.write(")")
	default:
		p.write(fmt.Sprintf("<%T>", x))
	}
}

func writeBinary[Meta any](p *Printer, x ast.BinaryExpr[Meta], minPrec int) {
	prec := binaryPrecedence[x.Op]
	needsParens := prec < minPrec
	if needsParens {
		p.write("(")
	}
	lhsMin, rhsMin := prec, prec+1
	if rightAssoc[x.Op] {
		lhsMin, rhsMin = prec+1, prec
	}
	writeExpr(p, x.LHS, lhsMin)
	p.write(" " + x.Op.String() + " ")
	writeExpr(p, x.RHS, rhsMin)
	if needsParens {
		p.write(")")
	}
}

func writePattern[Meta any](p *Printer, pat ast.Pattern[Meta]) {
	switch x := pat.(type) {
	case ast.WildcardPattern[Meta]:
		p.write("_")
	case ast.IdentPattern[Meta]:
		p.write(x.Name)
	case ast.LiteralPattern[Meta]:
		writeExpr(p, x.Value, 0)
	case ast.RangePattern[Meta]:
		writeExpr(p, x.Low, 0)
		p.write("..")
		writeExpr(p, x.High, 0)
	case ast.EmptyListPattern[Meta]:
		p.write("[]")
	case ast.ConsPattern[Meta]:
		writePattern(p, x.Head)
		p.write(" :: ")
		writePattern(p, x.Tail)
	case ast.TuplePattern[Meta]:
		p.write("(")
		for i, el := range x.Elements {
			if i > 0 {
				p.write(", ")
			}
			writePattern(p, el)
		}
		p.write(")")
	default:
		p.write(fmt.Sprintf("<%T>", x))
	}
}

func writeTypeExpr[Meta any](p *Printer, te ast.TypeExpr[Meta]) {
	switch t := te.(type) {
	case ast.ConstantTypeExpr[Meta]:
		p.write(t.Name)
	case ast.VariableTypeExpr[Meta]:
		p.write(t.Name)
	case ast.FunctionTypeExpr[Meta]:
		p.write("(")
		for i, param := range t.Params {
			if i > 0 {
				p.write(", ")
			}
			writeTypeExpr(p, param)
		}
		p.write(") -> ")
		writeTypeExpr(p, t.Return)
	case ast.TupleTypeExpr[Meta]:
		p.write("(")
		for i, el := range t.Elements {
			if i > 0 {
				p.write(", ")
			}
			writeTypeExpr(p, el)
		}
		p.write(")")
	case ast.ArrayTypeExpr[Meta]:
		p.write("[")
		writeTypeExpr(p, t.Element)
		p.write("]")
	case ast.ParameterizedTypeExpr[Meta]:
		p.write(t.Name + "(")
		for i, a := range t.Args {
			if i > 0 {
				p.write(", ")
			}
			writeTypeExpr(p, a)
		}
		p.write(")")
	case ast.RecordTypeExpr[Meta]:
		p.write("{")
		for i, f := range t.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.write(f.Name + ": ")
			writeTypeExpr(p, f.Type)
		}
		p.write("}")
	default:
		p.write(fmt.Sprintf("<%T>", t))
	}
}
