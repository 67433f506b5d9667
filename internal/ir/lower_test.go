package ir_test

import (
	"testing"

	"github.com/kaylendog/kali/internal/ir"
	"github.com/kaylendog/kali/internal/kali"
	"github.com/kaylendog/kali/internal/source"
)

func lower(t *testing.T, src string) *ir.Chunk {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Add("test.kali", []byte(src))
	mod, errs := kali.Check(fs, file)
	if len(errs) != 0 {
		t.Fatalf("unexpected check errors: %v", errs)
	}
	return kali.Lower(mod)
}

func TestLowerEntryIsFirstFuncDecl(t *testing.T) {
	chunk := lower(t, "fn add(a: Int, b: Int) -> Int = a + b\nfn sub(a: Int, b: Int) -> Int = a - b")
	if chunk.Entry != "add" {
		t.Errorf("want entry add, got %s", chunk.Entry)
	}
	if len(chunk.Functions) != 2 {
		t.Fatalf("want 2 functions, got %d", len(chunk.Functions))
	}
}

func TestLowerDirectCallPushesCalleeNameConstant(t *testing.T) {
	chunk := lower(t, "fn one() -> Nat = 1\nfn two() -> Nat = one()")
	var callee *ir.Function
	for i := range chunk.Functions {
		if chunk.Functions[i].Name == "two" {
			callee = &chunk.Functions[i]
		}
	}
	if callee == nil {
		t.Fatal("missing function two")
	}
	var sawCall bool
	for _, instr := range callee.Code {
		if instr.Op == ir.OpCall {
			sawCall = true
			if instr.Operand != 0 {
				t.Errorf("want 0 args for one(), got %d", instr.Operand)
			}
		}
	}
	if !sawCall {
		t.Fatal("want an OpCall instruction lowering one()")
	}
	var sawCalleeConst bool
	for _, c := range callee.Consts {
		if c.Kind == ir.ConstString && c.Str == "one" {
			sawCalleeConst = true
		}
	}
	if !sawCalleeConst {
		t.Errorf("want callee name \"one\" pushed as a constant, consts: %v", callee.Consts)
	}
}

func TestLowerConditionalEmitsJumps(t *testing.T) {
	chunk := lower(t, "fn f(x: Bool) -> Nat = if x then 1 else 2")
	fn := chunk.Functions[0]
	var sawJumpIfFalse, sawJump bool
	for _, instr := range fn.Code {
		switch instr.Op {
		case ir.OpJumpIfFalse:
			sawJumpIfFalse = true
		case ir.OpJump:
			sawJump = true
		}
	}
	if !sawJumpIfFalse || !sawJump {
		t.Errorf("want both jump forms in a lowered conditional, code: %v", fn.Code)
	}
}
