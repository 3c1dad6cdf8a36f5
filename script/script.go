// Package script builds Parallax instruction sequences from starlark
// programs. A script calls opcode builtins in order; each call appends one
// instruction. The machine itself never depends on this package, it only
// consumes the resulting slice.
package script

import (
	"fmt"
	"iter"
	"maps"
	"os"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/parallaxvm/parallax/internal"
	"github.com/parallaxvm/parallax/vm"
)

// Script-level predefines, merged with the machine's Defines().
var _script_defines = map[string]string{
	"TRUE":  "1",
	"FALSE": "0",
}

// operand wraps a vm.Operand as a starlark value.
type operand struct {
	op vm.Operand
}

func (o operand) String() string        { return o.op.String() }
func (o operand) Type() string          { return "operand" }
func (o operand) Freeze()               {}
func (o operand) Truth() starlark.Bool  { return starlark.True }
func (o operand) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: operand") }

// asOperand converts a starlark value into a vm.Operand. Bare ints and
// floats become constants of the matching kind.
func asOperand(v starlark.Value) (op vm.Operand, err error) {
	switch val := v.(type) {
	case operand:
		op = val.op
	case starlark.Int:
		n, ok := val.Int64()
		if !ok {
			err = fmt.Errorf("constant %v does not fit in 64 bits", val)
			return
		}
		op = vm.IntConst(n)
	case starlark.Float:
		op = vm.FloatConst(float64(val))
	default:
		err = fmt.Errorf("%v is not an operand", v.Type())
	}

	return
}

// Builder collects the instructions a script emits.
type Builder struct {
	Program []vm.Instruction
}

func (b *Builder) emit(in vm.Instruction) {
	b.Program = append(b.Program, in)
}

// nullary wraps a no-argument instruction constructor as a builtin.
func (b *Builder) nullary(id string, make func() vm.Instruction) *starlark.Builtin {
	return starlark.NewBuiltin(id, func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		b.emit(make())
		return starlark.None, nil
	})
}

// named wraps a name-only instruction constructor as a builtin.
func (b *Builder) named(id string, make func(string) vm.Instruction) *starlark.Builtin {
	return starlark.NewBuiltin(id, func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
			return nil, err
		}
		b.emit(make(name))
		return starlark.None, nil
	})
}

// jump1 wraps a one-operand conditional jump constructor as a builtin.
func (b *Builder) jump1(id string, make func(string, vm.Operand) vm.Instruction) *starlark.Builtin {
	return starlark.NewBuiltin(id, func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var label string
		var arg starlark.Value
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &label, &arg); err != nil {
			return nil, err
		}
		op, err := asOperand(arg)
		if err != nil {
			return nil, err
		}
		b.emit(make(label, op))
		return starlark.None, nil
	})
}

// jump2 wraps a two-operand relational jump constructor as a builtin.
func (b *Builder) jump2(id string, make func(string, vm.Operand, vm.Operand) vm.Instruction) *starlark.Builtin {
	return starlark.NewBuiltin(id, func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var label string
		var arg1, arg2 starlark.Value
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 3, &label, &arg1, &arg2); err != nil {
			return nil, err
		}
		op1, err := asOperand(arg1)
		if err != nil {
			return nil, err
		}
		op2, err := asOperand(arg2)
		if err != nil {
			return nil, err
		}
		b.emit(make(label, op1, op2))
		return starlark.None, nil
	})
}

// binary wraps a dst+src instruction constructor as a builtin.
func (b *Builder) binary(id string, make func(vm.Operand, vm.Operand) vm.Instruction) *starlark.Builtin {
	return starlark.NewBuiltin(id, func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var dst, src starlark.Value
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &dst, &src); err != nil {
			return nil, err
		}
		dop, err := asOperand(dst)
		if err != nil {
			return nil, err
		}
		sop, err := asOperand(src)
		if err != nil {
			return nil, err
		}
		b.emit(make(dop, sop))
		return starlark.None, nil
	})
}

// ternary wraps a dst+src1+src2 instruction constructor as a builtin.
func (b *Builder) ternary(id string, make func(vm.Operand, vm.Operand, vm.Operand) vm.Instruction) *starlark.Builtin {
	return starlark.NewBuiltin(id, func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var dst, src1, src2 starlark.Value
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 3, &dst, &src1, &src2); err != nil {
			return nil, err
		}
		dop, err := asOperand(dst)
		if err != nil {
			return nil, err
		}
		op1, err := asOperand(src1)
		if err != nil {
			return nil, err
		}
		op2, err := asOperand(src2)
		if err != nil {
			return nil, err
		}
		b.emit(make(dop, op1, op2))
		return starlark.None, nil
	})
}

// operandBuiltin wraps an operand constructor as a builtin.
func operandBuiltin(id string, make func(int) vm.Operand) *starlark.Builtin {
	return starlark.NewBuiltin(id, func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var n int
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &n); err != nil {
			return nil, err
		}
		return operand{make(n)}, nil
	})
}

// builtins returns the opcode vocabulary bound to this builder.
func (b *Builder) builtins() starlark.StringDict {
	return starlark.StringDict{
		"func_start": b.named("func_start", vm.MakeFunc),
		"func_end":   b.nullary("func_end", vm.MakeEndFunc),
		"call":       b.named("call", vm.MakeCall),
		"ret":        b.nullary("ret", vm.MakeReturn),
		"label":      b.named("label", vm.MakeLabel),
		"jmp":        b.named("jmp", vm.MakeJump),
		"jz":         b.jump1("jz", vm.MakeJumpZero),
		"jnz":        b.jump1("jnz", vm.MakeJumpNotZero),
		"jb":         b.jump2("jb", vm.MakeJumpBelow),
		"jbe":        b.jump2("jbe", vm.MakeJumpBelowEqual),
		"ja":         b.jump2("ja", vm.MakeJumpAbove),
		"jae":        b.jump2("jae", vm.MakeJumpAboveEqual),
		"je":         b.jump2("je", vm.MakeJumpEqual),
		"jne":        b.jump2("jne", vm.MakeJumpNotEqual),
		"mov":        b.binary("mov", vm.MakeMove),
		"add":        b.ternary("add", vm.MakeAdd),
		"sub":        b.ternary("sub", vm.MakeSub),
		"i8":         b.named("i8", vm.MakeVar8),
		"i16":        b.named("i16", vm.MakeVar16),
		"i32":        b.named("i32", vm.MakeVar32),
		"i64":        b.named("i64", vm.MakeVar64),
		"reg":        operandBuiltin("reg", vm.IntReg),
		"freg":       operandBuiltin("freg", vm.FloatReg),
		"mem":        operandBuiltin("mem", vm.Mem),
	}
}

// Loader turns starlark scripts into instruction sequences.
type Loader struct {
	Defines iter.Seq2[string, string] // Extra predeclared constants, e.g. vm.Defines().
}

// predeclared merges the opcode builtins with the script and loader
// defines. Numeric defines become starlark ints, the rest strings.
func (ld *Loader) predeclared(b *Builder) starlark.StringDict {
	dict := b.builtins()

	seqs := []iter.Seq2[string, string]{maps.All(_script_defines)}
	if ld.Defines != nil {
		seqs = append(seqs, ld.Defines)
	}

	for key, str := range internal.IterSeq2Concat(seqs...) {
		if n, err := strconv.ParseInt(str, 0, 64); err == nil {
			dict[key] = starlark.MakeInt64(n)
		} else {
			dict[key] = starlark.String(str)
		}
	}

	return dict
}

// Load reads a starlark program file and returns the instruction sequence
// it emits.
func (ld *Loader) Load(filename string) (program []vm.Instruction, err error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return
	}

	return ld.LoadSource(filename, src)
}

// LoadSource builds a program from in-memory starlark source. The src
// argument accepts everything syntax.FileOptions.Parse does.
func (ld *Loader) LoadSource(filename string, src any) (program []vm.Instruction, err error) {
	builder := &Builder{}

	thread := &starlark.Thread{Name: "parallax"}
	opts := &syntax.FileOptions{
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
		Recursion:       true,
	}

	_, err = starlark.ExecFileOptions(opts, thread, filename, src, ld.predeclared(builder))
	if err != nil {
		return
	}

	program = builder.Program
	return
}
