package vm

import (
	"fmt"
)

// OpKind is the operation kind of an instruction.
type OpKind int

//go:generate go tool stringer -linecomment -type=OpKind
const (
	OP_FUNC    = OpKind(0)  // func
	OP_ENDFUNC = OpKind(1)  // endfunc
	OP_CALL    = OpKind(2)  // call
	OP_RET     = OpKind(3)  // ret
	OP_LABEL   = OpKind(4)  // label
	OP_JMP     = OpKind(5)  // jmp
	OP_JZ      = OpKind(6)  // jz
	OP_JNZ     = OpKind(7)  // jnz
	OP_JB      = OpKind(8)  // jb
	OP_JBE     = OpKind(9)  // jbe
	OP_JA      = OpKind(10) // ja
	OP_JAE     = OpKind(11) // jae
	OP_JE      = OpKind(12) // je
	OP_JNE     = OpKind(13) // jne
	OP_MOV     = OpKind(14) // mov
	OP_ADD     = OpKind(15) // add
	OP_SUB     = OpKind(16) // sub
	OP_VAR8    = OpKind(17) // i8
	OP_VAR16   = OpKind(18) // i16
	OP_VAR32   = OpKind(19) // i32
	OP_VAR64   = OpKind(20) // i64
)

// VarSize returns the declared byte size of a variable declaration
// kind, or 0 for any other kind.
func (k OpKind) VarSize() int {
	switch k {
	case OP_VAR8:
		return 1
	case OP_VAR16:
		return 2
	case OP_VAR32:
		return 4
	case OP_VAR64:
		return 8
	}

	return 0
}

// Instruction is one unit of a program. Name carries the function, label,
// or variable identifier, depending on the kind.
type Instruction struct {
	Kind OpKind
	Name string
	Dst  Operand
	Src1 Operand
	Src2 Operand
}

// MakeFunc creates a function start marker. Service opcode, never executed.
func MakeFunc(name string) Instruction {
	return Instruction{Kind: OP_FUNC, Name: name}
}

// MakeEndFunc creates a function end marker. Service opcode, never executed.
func MakeEndFunc() Instruction {
	return Instruction{Kind: OP_ENDFUNC}
}

// MakeCall creates a call to the named function.
func MakeCall(name string) Instruction {
	return Instruction{Kind: OP_CALL, Name: name}
}

// MakeReturn creates a return to the most recent call site.
func MakeReturn() Instruction {
	return Instruction{Kind: OP_RET}
}

// MakeLabel creates a jump target. Executes as a no-op.
func MakeLabel(name string) Instruction {
	return Instruction{Kind: OP_LABEL, Name: name}
}

// MakeJump creates an unconditional jump to a label.
func MakeJump(label string) Instruction {
	return Instruction{Kind: OP_JMP, Name: label}
}

// MakeJumpZero creates a jump taken when the operand is zero.
func MakeJumpZero(label string, arg Operand) Instruction {
	return Instruction{Kind: OP_JZ, Name: label, Src1: arg}
}

// MakeJumpNotZero creates a jump taken when the operand is not zero.
func MakeJumpNotZero(label string, arg Operand) Instruction {
	return Instruction{Kind: OP_JNZ, Name: label, Src1: arg}
}

// MakeJumpBelow creates a jump taken when arg1 < arg2.
func MakeJumpBelow(label string, arg1, arg2 Operand) Instruction {
	return Instruction{Kind: OP_JB, Name: label, Src1: arg1, Src2: arg2}
}

// MakeJumpBelowEqual creates a jump taken when arg1 <= arg2.
func MakeJumpBelowEqual(label string, arg1, arg2 Operand) Instruction {
	return Instruction{Kind: OP_JBE, Name: label, Src1: arg1, Src2: arg2}
}

// MakeJumpAbove creates a jump taken when arg1 > arg2.
func MakeJumpAbove(label string, arg1, arg2 Operand) Instruction {
	return Instruction{Kind: OP_JA, Name: label, Src1: arg1, Src2: arg2}
}

// MakeJumpAboveEqual creates a jump taken when arg1 >= arg2.
func MakeJumpAboveEqual(label string, arg1, arg2 Operand) Instruction {
	return Instruction{Kind: OP_JAE, Name: label, Src1: arg1, Src2: arg2}
}

// MakeJumpEqual creates a jump taken when arg1 == arg2.
func MakeJumpEqual(label string, arg1, arg2 Operand) Instruction {
	return Instruction{Kind: OP_JE, Name: label, Src1: arg1, Src2: arg2}
}

// MakeJumpNotEqual creates a jump taken when arg1 != arg2.
func MakeJumpNotEqual(label string, arg1, arg2 Operand) Instruction {
	return Instruction{Kind: OP_JNE, Name: label, Src1: arg1, Src2: arg2}
}

// MakeMove creates a move from src into dst. The destination cannot be a
// constant.
func MakeMove(dst, src Operand) Instruction {
	return Instruction{Kind: OP_MOV, Dst: dst, Src1: src}
}

// MakeAdd creates an instruction storing src1 + src2 into dst.
func MakeAdd(dst, src1, src2 Operand) Instruction {
	return Instruction{Kind: OP_ADD, Dst: dst, Src1: src1, Src2: src2}
}

// MakeSub creates an instruction storing src1 - src2 into dst.
func MakeSub(dst, src1, src2 Operand) Instruction {
	return Instruction{Kind: OP_SUB, Dst: dst, Src1: src1, Src2: src2}
}

// MakeVar8 declares a 1 byte variable in the enclosing function.
func MakeVar8(name string) Instruction {
	return Instruction{Kind: OP_VAR8, Name: name}
}

// MakeVar16 declares a 2 byte variable in the enclosing function.
func MakeVar16(name string) Instruction {
	return Instruction{Kind: OP_VAR16, Name: name}
}

// MakeVar32 declares a 4 byte variable in the enclosing function.
func MakeVar32(name string) Instruction {
	return Instruction{Kind: OP_VAR32, Name: name}
}

// MakeVar64 declares an 8 byte variable in the enclosing function.
func MakeVar64(name string) Instruction {
	return Instruction{Kind: OP_VAR64, Name: name}
}

// String returns the assembly language representation of this instruction.
func (in Instruction) String() (out string) {
	switch in.Kind {
	case OP_FUNC, OP_CALL, OP_LABEL, OP_JMP, OP_VAR8, OP_VAR16, OP_VAR32, OP_VAR64:
		out = fmt.Sprintf("%v %v", in.Kind, in.Name)
	case OP_JZ, OP_JNZ:
		out = fmt.Sprintf("%v %v, %v", in.Kind, in.Name, in.Src1)
	case OP_JB, OP_JBE, OP_JA, OP_JAE, OP_JE, OP_JNE:
		out = fmt.Sprintf("%v %v, %v, %v", in.Kind, in.Name, in.Src1, in.Src2)
	case OP_MOV:
		out = fmt.Sprintf("%v %v, %v", in.Kind, in.Dst, in.Src1)
	case OP_ADD, OP_SUB:
		out = fmt.Sprintf("%v %v, %v, %v", in.Kind, in.Dst, in.Src1, in.Src2)
	default:
		out = in.Kind.String()
	}

	return
}
