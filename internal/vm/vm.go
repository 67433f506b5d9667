// Package vm implements a minimal stack machine that executes ir.Chunk
// values. Like package ir, this sits outside the compiler's core
// (lexing, parsing, inference); it exists so a lowered Chunk has
// somewhere to run, not as a production bytecode interpreter.
package vm

import (
	"fmt"

	"github.com/kaylendog/kali/internal/ir"
)

// Value is a runtime value. The VM only needs enough shape to execute
// the opcodes ir.Lower emits.
type Value struct {
	Kind  ir.ConstKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

func fromConst(c ir.Const) Value {
	return Value{Kind: c.Kind, Int: c.Int, Float: c.Float, Str: c.Str, Bool: c.Bool}
}

// VM executes a single ir.Chunk.
type VM struct {
	chunk *ir.Chunk
}

// New returns a VM ready to run chunk.
func New(chunk *ir.Chunk) *VM {
	return &VM{chunk: chunk}
}

// Run executes the chunk's entry function with args and returns its
// result.
func (v *VM) Run(args ...Value) (Value, error) {
	fn := v.lookup(v.chunk.Entry)
	if fn == nil {
		return Value{}, fmt.Errorf("vm: no entry function %q", v.chunk.Entry)
	}
	return v.call(fn, args)
}

func (v *VM) lookup(name string) *ir.Function {
	for i := range v.chunk.Functions {
		if v.chunk.Functions[i].Name == name {
			return &v.chunk.Functions[i]
		}
	}
	return nil
}

func (v *VM) call(fn *ir.Function, args []Value) (Value, error) {
	locals := make([]Value, fn.NumLocals)
	copy(locals, args)
	stack := make([]Value, 0, 16)

	push := func(val Value) { stack = append(stack, val) }
	pop := func() Value {
		val := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return val
	}

	pc := 0
	for pc < len(fn.Code) {
		instr := fn.Code[pc]
		switch instr.Op {
		case ir.OpNop:
		case ir.OpPushConst:
			push(fromConst(fn.Consts[instr.Operand]))
		case ir.OpLoadLocal:
			push(locals[instr.Operand])
		case ir.OpStoreLocal:
			locals[instr.Operand] = pop()
		case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv, ir.OpMod, ir.OpPow:
			rhs, lhs := pop(), pop()
			result, err := arith(instr.Op, lhs, rhs)
			if err != nil {
				return Value{}, err
			}
			push(result)
		case ir.OpEq, ir.OpNotEq, ir.OpLt, ir.OpLtEq, ir.OpGt, ir.OpGtEq:
			rhs, lhs := pop(), pop()
			push(compare(instr.Op, lhs, rhs))
		case ir.OpAnd:
			rhs, lhs := pop(), pop()
			push(Value{Kind: ir.ConstBool, Bool: lhs.Bool && rhs.Bool})
		case ir.OpOr:
			rhs, lhs := pop(), pop()
			push(Value{Kind: ir.ConstBool, Bool: lhs.Bool || rhs.Bool})
		case ir.OpNot:
			operand := pop()
			push(Value{Kind: ir.ConstBool, Bool: !operand.Bool})
		case ir.OpNeg:
			operand := pop()
			push(negate(operand))
		case ir.OpJump:
			pc = int(instr.Operand)
			continue
		case ir.OpJumpIfFalse:
			cond := pop()
			if !cond.Bool {
				pc = int(instr.Operand)
				continue
			}
		case ir.OpCall:
			argc := int(instr.Operand)
			callee := pop()
			callArgs := append([]Value(nil), stack[len(stack)-argc:]...)
			stack = stack[:len(stack)-argc]
			target := v.lookup(callee.Str)
			if target == nil {
				return Value{}, fmt.Errorf("vm: call to undefined function %q", callee.Str)
			}
			result, err := v.call(target, callArgs)
			if err != nil {
				return Value{}, err
			}
			push(result)
		case ir.OpReturn:
			if len(stack) == 0 {
				return Value{Kind: ir.ConstUnit}, nil
			}
			return pop(), nil
		case ir.OpPop:
			pop()
		default:
			return Value{}, fmt.Errorf("vm: unsupported opcode %s", instr.Op)
		}
		pc++
	}
	return Value{Kind: ir.ConstUnit}, nil
}

func arith(op ir.Op, lhs, rhs Value) (Value, error) {
	if lhs.Kind == ir.ConstFloat || rhs.Kind == ir.ConstFloat {
		l, r := asFloat(lhs), asFloat(rhs)
		var result float64
		switch op {
		case ir.OpAdd:
			result = l + r
		case ir.OpSub:
			result = l - r
		case ir.OpMul:
			result = l * r
		case ir.OpDiv:
			if r == 0 {
				return Value{}, fmt.Errorf("vm: division by zero")
			}
			result = l / r
		default:
			return Value{}, fmt.Errorf("vm: unsupported float operator")
		}
		return Value{Kind: ir.ConstFloat, Float: result}, nil
	}
	l, r := lhs.Int, rhs.Int
	var result int64
	switch op {
	case ir.OpAdd:
		result = l + r
	case ir.OpSub:
		result = l - r
	case ir.OpMul:
		result = l * r
	case ir.OpDiv:
		if r == 0 {
			return Value{}, fmt.Errorf("vm: division by zero")
		}
		result = l / r
	case ir.OpMod:
		if r == 0 {
			return Value{}, fmt.Errorf("vm: modulo by zero")
		}
		result = l % r
	case ir.OpPow:
		result = 1
		for i := int64(0); i < r; i++ {
			result *= l
		}
	}
	return Value{Kind: lhs.Kind, Int: result}, nil
}

func compare(op ir.Op, lhs, rhs Value) Value {
	var l, r float64
	if lhs.Kind == ir.ConstFloat || rhs.Kind == ir.ConstFloat {
		l, r = asFloat(lhs), asFloat(rhs)
	} else {
		l, r = float64(lhs.Int), float64(rhs.Int)
	}
	var result bool
	switch op {
	case ir.OpEq:
		result = l == r
	case ir.OpNotEq:
		result = l != r
	case ir.OpLt:
		result = l < r
	case ir.OpLtEq:
		result = l <= r
	case ir.OpGt:
		result = l > r
	case ir.OpGtEq:
		result = l >= r
	}
	return Value{Kind: ir.ConstBool, Bool: result}
}

func negate(v Value) Value {
	if v.Kind == ir.ConstFloat {
		return Value{Kind: ir.ConstFloat, Float: -v.Float}
	}
	return Value{Kind: v.Kind, Int: -v.Int}
}

func asFloat(v Value) float64 {
	if v.Kind == ir.ConstFloat {
		return v.Float
	}
	return float64(v.Int)
}
