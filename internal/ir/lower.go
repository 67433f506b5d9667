package ir

import (
	"fmt"

	"github.com/kaylendog/kali/internal/ast"
	"github.com/kaylendog/kali/internal/infer"
)

// Lower compiles a type-checked module into a Chunk. It covers the
// expression forms a function body built only from literals,
// arithmetic, calls, and conditionals can contain; anything richer
// (match, records, closures capturing outer locals) lowers to a single
// OpNop placeholder rather than failing the whole chunk, since stack-IR
// lowering and execution sit outside the inference core this module
// centers on.
func Lower(mod ast.Module[infer.TypedMeta]) *Chunk {
	chunk := &Chunk{ModuleName: "module"}
	for _, s := range mod.Stmts {
		fd, ok := s.(ast.FuncDecl[infer.TypedMeta])
		if !ok {
			continue
		}
		chunk.Functions = append(chunk.Functions, lowerFunc(fd))
		if chunk.Entry == "" {
			chunk.Entry = fd.Name
		}
	}
	return chunk
}

type funcBuilder struct {
	locals map[string]int
	fn     *Function
}

func lowerFunc(fd ast.FuncDecl[infer.TypedMeta]) Function {
	fn := Function{Name: fd.Name, Arity: len(fd.Params)}
	b := &funcBuilder{locals: make(map[string]int), fn: &fn}
	for _, p := range fd.Params {
		b.slot(p.Name)
	}
	b.lowerExpr(fd.Body)
	fn.Code = append(fn.Code, Instr{Op: OpReturn})
	fn.NumLocals = len(b.locals)
	return fn
}

func (b *funcBuilder) slot(name string) int {
	if i, ok := b.locals[name]; ok {
		return i
	}
	i := len(b.locals)
	b.locals[name] = i
	return i
}

func (b *funcBuilder) emit(op Op, operand int64) {
	b.fn.Code = append(b.fn.Code, Instr{Op: op, Operand: operand})
}

func (b *funcBuilder) constant(c Const) int64 {
	b.fn.Consts = append(b.fn.Consts, c)
	return int64(len(b.fn.Consts) - 1)
}

func (b *funcBuilder) lowerExpr(expr ast.Expr[infer.TypedMeta]) {
	switch x := expr.(type) {
	case ast.IntLiteral[infer.TypedMeta]:
		b.emit(OpPushConst, b.constant(Const{Kind: ConstInt, Int: x.Value}))
	case ast.NatLiteral[infer.TypedMeta]:
		b.emit(OpPushConst, b.constant(Const{Kind: ConstNat, Int: int64(x.Value)}))
	case ast.FloatLiteral[infer.TypedMeta]:
		b.emit(OpPushConst, b.constant(Const{Kind: ConstFloat, Float: x.Value}))
	case ast.BoolLiteral[infer.TypedMeta]:
		b.emit(OpPushConst, b.constant(Const{Kind: ConstBool, Bool: x.Value}))
	case ast.StringLiteral[infer.TypedMeta]:
		b.emit(OpPushConst, b.constant(Const{Kind: ConstString, Str: x.Value}))
	case ast.UnitLiteral[infer.TypedMeta]:
		b.emit(OpPushConst, b.constant(Const{Kind: ConstUnit}))

	case ast.IdentExpr[infer.TypedMeta]:
		b.emit(OpLoadLocal, int64(b.slot(x.Ident.Name)))

	case ast.BinaryExpr[infer.TypedMeta]:
		b.lowerExpr(x.LHS)
		b.lowerExpr(x.RHS)
		b.emit(binaryOp(x.Op), 0)

	case ast.UnaryExpr[infer.TypedMeta]:
		b.lowerExpr(x.Inner)
		b.emit(unaryOp(x.Op), 0)

	case ast.Conditional[infer.TypedMeta]:
		b.lowerExpr(x.Condition)
		jumpOverBody := len(b.fn.Code)
		b.emit(OpJumpIfFalse, 0)
		b.lowerExpr(x.Body)
		jumpOverElse := len(b.fn.Code)
		b.emit(OpJump, 0)
		b.fn.Code[jumpOverBody].Operand = int64(len(b.fn.Code))
		b.lowerExpr(x.Otherwise)
		b.fn.Code[jumpOverElse].Operand = int64(len(b.fn.Code))

	case ast.Call[infer.TypedMeta]:
		for _, a := range x.Args {
			b.lowerExpr(a)
		}
		// Direct calls to a named top-level function push the callee's
		// name as a constant rather than loading it as a local; the VM
		// resolves it against the chunk's function table. Calls through
		// a non-ident expression (a returned closure, say) fall back to
		// evaluating it as a value the VM won't know how to invoke,
		// since first-class function values aren't lowered here.
		if ident, ok := x.Fun.(ast.IdentExpr[infer.TypedMeta]); ok {
			b.emit(OpPushConst, b.constant(Const{Kind: ConstString, Str: ident.Ident.Name}))
		} else {
			b.lowerExpr(x.Fun)
		}
		b.emit(OpCall, int64(len(x.Args)))

	default:
		b.emit(OpNop, 0)
	}
}

func binaryOp(op ast.BinaryOp) Op {
	switch op {
	case ast.Add:
		return OpAdd
	case ast.Subtract:
		return OpSub
	case ast.Multiply:
		return OpMul
	case ast.Divide:
		return OpDiv
	case ast.Modulo:
		return OpMod
	case ast.Exponentiate:
		return OpPow
	case ast.Equal:
		return OpEq
	case ast.NotEqual:
		return OpNotEq
	case ast.LessThan:
		return OpLt
	case ast.LessThanOrEqual:
		return OpLtEq
	case ast.GreaterThan:
		return OpGt
	case ast.GreaterThanOrEqual:
		return OpGtEq
	case ast.LogicalAnd:
		return OpAnd
	case ast.LogicalOr:
		return OpOr
	case ast.BitwiseAnd:
		return OpBitAnd
	case ast.BitwiseOr:
		return OpBitOr
	case ast.BitwiseXor:
		return OpBitXor
	case ast.ShiftLeft:
		return OpShl
	case ast.ShiftRight:
		return OpShr
	case ast.Cons:
		return OpCons
	default:
		panic(fmt.Sprintf("ir: unhandled binary operator %v", op))
	}
}

func unaryOp(op ast.UnaryOp) Op {
	switch op {
	case ast.Negate:
		return OpNeg
	case ast.LogicalNot:
		return OpNot
	case ast.BitwiseNot:
		return OpBitNot
	default:
		panic(fmt.Sprintf("ir: unhandled unary operator %v", op))
	}
}
