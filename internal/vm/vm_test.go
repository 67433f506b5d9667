package vm_test

import (
	"testing"

	"github.com/kaylendog/kali/internal/ir"
	"github.com/kaylendog/kali/internal/kali"
	"github.com/kaylendog/kali/internal/source"
	"github.com/kaylendog/kali/internal/vm"
)

func TestVMArithmetic(t *testing.T) {
	chunk := &ir.Chunk{
		ModuleName: "test",
		Entry:      "main",
		Functions: []ir.Function{
			{
				Name: "main",
				Consts: []ir.Const{
					{Kind: ir.ConstNat, Int: 2},
					{Kind: ir.ConstNat, Int: 3},
				},
				Code: []ir.Instr{
					{Op: ir.OpPushConst, Operand: 0},
					{Op: ir.OpPushConst, Operand: 1},
					{Op: ir.OpAdd},
					{Op: ir.OpReturn},
				},
			},
		},
	}
	result, err := vm.New(chunk).Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Int != 5 {
		t.Errorf("want 5, got %d", result.Int)
	}
}

func TestVMDivisionByZero(t *testing.T) {
	chunk := &ir.Chunk{
		Entry: "main",
		Functions: []ir.Function{
			{
				Name:   "main",
				Consts: []ir.Const{{Kind: ir.ConstNat, Int: 1}, {Kind: ir.ConstNat, Int: 0}},
				Code: []ir.Instr{
					{Op: ir.OpPushConst, Operand: 0},
					{Op: ir.OpPushConst, Operand: 1},
					{Op: ir.OpDiv},
					{Op: ir.OpReturn},
				},
			},
		},
	}
	if _, err := vm.New(chunk).Run(); err == nil {
		t.Fatal("want division-by-zero error, got nil")
	}
}

func TestVMCallUndefinedFunction(t *testing.T) {
	chunk := &ir.Chunk{
		Entry: "main",
		Functions: []ir.Function{
			{
				Name:   "main",
				Consts: []ir.Const{{Kind: ir.ConstString, Str: "nowhere"}},
				Code: []ir.Instr{
					{Op: ir.OpPushConst, Operand: 0},
					{Op: ir.OpCall, Operand: 0},
					{Op: ir.OpReturn},
				},
			},
		},
	}
	if _, err := vm.New(chunk).Run(); err == nil {
		t.Fatal("want call-to-undefined-function error, got nil")
	}
}

func TestVMCallNamedFunctionWithArgs(t *testing.T) {
	chunk := &ir.Chunk{
		Entry: "main",
		Functions: []ir.Function{
			{
				Name:   "main",
				Consts: []ir.Const{{Kind: ir.ConstNat, Int: 4}, {Kind: ir.ConstString, Str: "double"}},
				Code: []ir.Instr{
					{Op: ir.OpPushConst, Operand: 0}, // push 4
					{Op: ir.OpPushConst, Operand: 1}, // push callee name
					{Op: ir.OpCall, Operand: 1},
					{Op: ir.OpReturn},
				},
			},
			{
				Name:      "double",
				Arity:     1,
				NumLocals: 1,
				Consts:    []ir.Const{{Kind: ir.ConstNat, Int: 2}},
				Code: []ir.Instr{
					{Op: ir.OpLoadLocal, Operand: 0},
					{Op: ir.OpPushConst, Operand: 0},
					{Op: ir.OpMul},
					{Op: ir.OpReturn},
				},
			},
		},
	}
	result, err := vm.New(chunk).Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Int != 8 {
		t.Errorf("want 8, got %d", result.Int)
	}
}

// End-to-end: source through Check, Lower, and RunChunk, exercising a
// recursive function whose calls lower through the named-callee OpCall
// path built for this.
func TestRunRecursiveFactorial(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("fact.kali", []byte(
		"fn fact(n: Nat) -> Nat = if n == 0 then 1 else n * fact(n - 1)",
	))
	result, errs := kali.Run(fs, file, vm.Value{Kind: ir.ConstNat, Int: 5})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if result.Int != 120 {
		t.Errorf("want fact(5) = 120, got %d", result.Int)
	}
}
