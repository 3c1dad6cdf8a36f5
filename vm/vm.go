package vm

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"time"
)

const (
	INT_REGISTERS   = 32 // Size of the integer register bank.
	FLOAT_REGISTERS = 32 // Size of the floating point register bank.
)

// EntryFunction is the function every program starts from.
const EntryFunction = "main"

var _vm_defines = map[string]string{
	"INT_REGISTERS":   fmt.Sprintf("%d", INT_REGISTERS),
	"FLOAT_REGISTERS": fmt.Sprintf("%d", FLOAT_REGISTERS),
}

// Vm is one Parallax machine instance. The zero value is ready to use.
// All mutable state is owned by the instance; independent programs run
// concurrently only on independent instances.
type Vm struct {
	Verbose bool // Set to enable verbose logging.
	Float   bool // Set to enable the floating point register bank.

	intRegister   [INT_REGISTERS]int64
	floatRegister [FLOAT_REGISTERS]float64

	opcodePointer int
	stackPointer  int

	returnStack Stack
}

// Defines returns the machine constants, for hosts that construct programs.
func (vm *Vm) Defines() iter.Seq2[string, string] {
	return maps.All(_vm_defines)
}

// Reset clears the registers, pointers, and return stack. Configuration
// flags are left alone.
func (vm *Vm) Reset() {
	if vm.Verbose {
		log.Printf("vm: reset")
	}

	clear(vm.intRegister[:])
	clear(vm.floatRegister[:])
	vm.opcodePointer = 0
	vm.stackPointer = 0
	vm.returnStack.Reset()
}

// IntRegisters returns a read-only snapshot of the integer register bank.
func (vm *Vm) IntRegisters() (regs []int64) {
	regs = make([]int64, len(vm.intRegister))
	copy(regs, vm.intRegister[:])
	return
}

// FloatRegisters returns a read-only snapshot of the floating register bank.
func (vm *Vm) FloatRegisters() (regs []float64) {
	regs = make([]float64, len(vm.floatRegister))
	copy(regs, vm.floatRegister[:])
	return
}

// String returns the current machine state as a string. Registers holding
// zero are elided.
func (vm *Vm) String() (text string) {
	text = fmt.Sprintf("   ip: %04d\n   sp: %04d\ndepth: %d\n",
		vm.opcodePointer, vm.stackPointer, vm.returnStack.Depth())

	for n, val := range vm.intRegister {
		if val == 0 {
			continue
		}
		text += fmt.Sprintf("  r%02d: %016X (%d)\n", n, uint64(val), val)
	}

	if vm.Float {
		for n, val := range vm.floatRegister {
			if val == 0 {
				continue
			}
			text += fmt.Sprintf("  f%02d: %v\n", n, val)
		}
	}

	return
}

// getIntRegister reads integer register n.
func (vm *Vm) getIntRegister(n int) (value int64, err error) {
	if n < 0 || n >= len(vm.intRegister) {
		err = ErrNoSuchRegister{Bank: "integer", Have: len(vm.intRegister), Index: n}
		return
	}

	value = vm.intRegister[n]
	return
}

// setIntRegister writes integer register n.
func (vm *Vm) setIntRegister(n int, value int64) (err error) {
	if n < 0 || n >= len(vm.intRegister) {
		err = ErrNoSuchRegister{Bank: "integer", Have: len(vm.intRegister), Index: n}
		return
	}

	vm.intRegister[n] = value
	return
}

// getFloatRegister reads floating register n.
func (vm *Vm) getFloatRegister(n int) (value float64, err error) {
	if n < 0 || n >= len(vm.floatRegister) {
		err = ErrNoSuchRegister{Bank: "floating", Have: len(vm.floatRegister), Index: n}
		return
	}

	value = vm.floatRegister[n]
	return
}

// setFloatRegister writes floating register n.
func (vm *Vm) setFloatRegister(n int, value float64) (err error) {
	if n < 0 || n >= len(vm.floatRegister) {
		err = ErrNoSuchRegister{Bank: "floating", Have: len(vm.floatRegister), Index: n}
		return
	}

	vm.floatRegister[n] = value
	return
}

// fetchOperand resolves an operand to a runtime value against the current
// register state.
func (vm *Vm) fetchOperand(op Operand) (val Value, err error) {
	switch op.Mode {
	case MODE_INT_REG:
		var n int64
		n, err = vm.getIntRegister(op.Index)
		if err != nil {
			return
		}
		val = IntValue(n)
	case MODE_INT_CONST:
		val = IntValue(op.Int)
	case MODE_FLOAT_REG:
		if !vm.Float {
			err = ErrNotImplemented
			return
		}
		var n float64
		n, err = vm.getFloatRegister(op.Index)
		if err != nil {
			return
		}
		val = FloatValue(n)
	case MODE_FLOAT_CONST:
		if !vm.Float {
			err = ErrNotImplemented
			return
		}
		val = FloatValue(op.Float)
	case MODE_MEM:
		// Reserved addressing mode.
		err = ErrNotImplemented
	default:
		err = ErrNotImplemented
	}

	return
}

// fetchInt resolves an operand all the way to an integer.
func (vm *Vm) fetchInt(op Operand) (out int64, err error) {
	val, err := vm.fetchOperand(op)
	if err != nil {
		return
	}

	return val.AsInt()
}

// storeValue stores a runtime value through an operand. Only register
// addressing modes are valid destinations.
func (vm *Vm) storeValue(op Operand, val Value) (err error) {
	switch op.Mode {
	case MODE_INT_REG:
		var n int64
		n, err = val.AsInt()
		if err != nil {
			return
		}
		err = vm.setIntRegister(op.Index, n)
	case MODE_FLOAT_REG:
		if !vm.Float {
			err = ErrNotImplemented
			return
		}
		var n float64
		n, err = val.AsFloat()
		if err != nil {
			return
		}
		err = vm.setFloatRegister(op.Index, n)
	case MODE_INT_CONST, MODE_FLOAT_CONST:
		err = ErrUnsupportedOperation
	case MODE_MEM:
		err = ErrNotImplemented
	default:
		err = ErrNotImplemented
	}

	return
}

// jumpInsideFunc implements every jump variant. The label must resolve
// inside the current function; a taken jump moves the pointer to the
// target, a non-taken jump falls through to the next instruction.
func (vm *Vm) jumpInsideFunc(fn *Function, label string, predicate func(a, b int64) bool, arg1, arg2 Operand) (err error) {
	target, err := fn.Label(label)
	if err != nil {
		return
	}

	if !fn.Contains(target) {
		// Last safeguard; the table builder only registers in-range labels.
		err = ErrJumpOutOfScope(fn.Name)
		return
	}

	a, err := vm.fetchInt(arg1)
	if err != nil {
		return
	}
	b, err := vm.fetchInt(arg2)
	if err != nil {
		return
	}

	if predicate(a, b) {
		vm.opcodePointer = target
	} else {
		vm.opcodePointer++
	}

	return
}

// binaryOp resolves both sources, then combines and stores. The pointer
// moves before the store, so a destination aliasing a source still sees
// the pre-write values combined.
func (vm *Vm) binaryOp(combine func(a, b Value) (Value, error), dst, src1, src2 Operand) (err error) {
	a, err := vm.fetchOperand(src1)
	if err != nil {
		return
	}
	b, err := vm.fetchOperand(src2)
	if err != nil {
		return
	}

	vm.opcodePointer++

	out, err := combine(a, b)
	if err != nil {
		return
	}

	return vm.storeValue(dst, out)
}

// turn processes a single instruction and returns the function execution
// continues in.
func (vm *Vm) turn(op Instruction, fn *Function, table *Table) (next *Function, err error) {
	if vm.Verbose {
		log.Printf("vm: %04d: %v", vm.opcodePointer, op)
	}

	next = fn

	switch op.Kind {
	case OP_FUNC, OP_ENDFUNC:
		// Service opcodes live outside every function's range.
		err = ErrOpcodeUnreachable
	case OP_LABEL, OP_VAR8, OP_VAR16, OP_VAR32, OP_VAR64:
		// Consumed at load time, no-ops here.
		vm.opcodePointer++
	case OP_CALL:
		var callee *Function
		callee, err = table.Lookup(op.Name)
		if err != nil {
			return
		}
		vm.returnStack.Push(Frame{Fn: fn.ID, Resume: vm.opcodePointer + 1, Sp: vm.stackPointer})
		vm.opcodePointer = callee.Start
		vm.stackPointer += callee.FrameSize
		next = callee
	case OP_RET:
		frame, ok := vm.returnStack.Pop()
		if !ok {
			err = ErrReturnStackExhausted
			return
		}
		next, err = table.ByID(frame.Fn)
		if err != nil {
			return
		}
		vm.opcodePointer = frame.Resume
		vm.stackPointer = frame.Sp
	case OP_JMP:
		err = vm.jumpInsideFunc(fn, op.Name,
			func(_, _ int64) bool { return true }, IntConst(0), IntConst(0))
	case OP_JZ:
		err = vm.jumpInsideFunc(fn, op.Name,
			func(a, _ int64) bool { return a == 0 }, op.Src1, IntConst(0))
	case OP_JNZ:
		err = vm.jumpInsideFunc(fn, op.Name,
			func(a, _ int64) bool { return a != 0 }, op.Src1, IntConst(0))
	case OP_JB:
		err = vm.jumpInsideFunc(fn, op.Name,
			func(a, b int64) bool { return a < b }, op.Src1, op.Src2)
	case OP_JBE:
		err = vm.jumpInsideFunc(fn, op.Name,
			func(a, b int64) bool { return a <= b }, op.Src1, op.Src2)
	case OP_JA:
		err = vm.jumpInsideFunc(fn, op.Name,
			func(a, b int64) bool { return a > b }, op.Src1, op.Src2)
	case OP_JAE:
		err = vm.jumpInsideFunc(fn, op.Name,
			func(a, b int64) bool { return a >= b }, op.Src1, op.Src2)
	case OP_JE:
		err = vm.jumpInsideFunc(fn, op.Name,
			func(a, b int64) bool { return a == b }, op.Src1, op.Src2)
	case OP_JNE:
		err = vm.jumpInsideFunc(fn, op.Name,
			func(a, b int64) bool { return a != b }, op.Src1, op.Src2)
	case OP_MOV:
		var val Value
		val, err = vm.fetchOperand(op.Src1)
		if err != nil {
			return
		}
		err = vm.storeValue(op.Dst, val)
		if err != nil {
			return
		}
		vm.opcodePointer++
	case OP_ADD:
		err = vm.binaryOp(Value.Add, op.Dst, op.Src1, op.Src2)
	case OP_SUB:
		err = vm.binaryOp(Value.Sub, op.Dst, op.Src1, op.Src2)
	default:
		err = ErrNotImplemented
	}

	return
}

// Run executes the given program from its entry function to completion
// and returns the elapsed wall-clock duration. The machine is reset first,
// so every run starts from zeroed state. The first error aborts the run.
func (vm *Vm) Run(program []Instruction) (elapsed time.Duration, err error) {
	start := time.Now()

	vm.Reset()

	table, err := BuildTable(program)
	if err != nil {
		return
	}

	current, err := table.Lookup(EntryFunction)
	if err != nil {
		return
	}

	// The sentinel frame makes a return out of the entry function drain
	// the stack and end the run; there is no halt instruction.
	vm.opcodePointer = current.Start
	vm.stackPointer = 0
	vm.returnStack.Push(Frame{Fn: current.ID, Resume: current.End, Sp: 0})

	for !vm.returnStack.Empty() {
		if !current.Contains(vm.opcodePointer) {
			panic(fmt.Sprintf("vm: pointer %d escaped function %v [%d,%d), load-time invariants are broken",
				vm.opcodePointer, current.Name, current.Start, current.End))
		}

		current, err = vm.turn(program[vm.opcodePointer], current, table)
		if err != nil {
			return
		}
	}

	elapsed = time.Since(start)
	return
}
