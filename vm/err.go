package vm

import (
	"errors"

	"github.com/parallaxvm/parallax/translate"
)

var f = translate.From

var (
	// Runtime errors
	ErrReturnStackExhausted = errors.New(f("return stack exhausted, more returns than calls"))
	ErrOpcodeUnreachable    = errors.New(f("service opcode reached during execution"))
	ErrDataSegment          = errors.New(f("variable lies outside its data segment"))
	ErrUnsupportedOperation = errors.New(f("unsupported operation"))
	ErrUnsupportedOperand   = errors.New(f("unsupported operand"))
	ErrNotImplemented       = errors.New(f("not implemented"))
)

// ErrNoSuchRegister reports access past the end of a register bank.
type ErrNoSuchRegister struct {
	Bank  string
	Have  int
	Index int
}

func (e ErrNoSuchRegister) Error() string {
	return f("the %v bank has %d registers, no register #%d", e.Bank, e.Have, e.Index)
}

func (e ErrNoSuchRegister) Is(err error) (ok bool) {
	_, ok = err.(ErrNoSuchRegister)
	return
}

// ErrBrokenFunction reports a function definition without a terminator,
// an illegally nested definition, or a duplicated function name.
type ErrBrokenFunction string

func (e ErrBrokenFunction) Error() string {
	return f("broken definition of function %v", string(e))
}

func (e ErrBrokenFunction) Is(err error) (ok bool) {
	_, ok = err.(ErrBrokenFunction)
	return
}

// ErrFunctionNotDefined reports a reference to a function the program
// never defines.
type ErrFunctionNotDefined string

func (e ErrFunctionNotDefined) Error() string {
	return f("function %v is not defined", string(e))
}

func (e ErrFunctionNotDefined) Is(err error) (ok bool) {
	_, ok = err.(ErrFunctionNotDefined)
	return
}

// ErrLabelNotFound reports a jump to a label that does not exist in the
// current function's scope.
type ErrLabelNotFound string

func (e ErrLabelNotFound) Error() string {
	return f("label %v does not exist in the current function", string(e))
}

func (e ErrLabelNotFound) Is(err error) (ok bool) {
	_, ok = err.(ErrLabelNotFound)
	return
}

// ErrVariableNotFound reports a variable that does not exist in the
// current function's scope.
type ErrVariableNotFound string

func (e ErrVariableNotFound) Error() string {
	return f("variable %v does not exist in the current function", string(e))
}

func (e ErrVariableNotFound) Is(err error) (ok bool) {
	_, ok = err.(ErrVariableNotFound)
	return
}

// ErrJumpOutOfScope reports a jump resolving outside the named function's
// range. Unreachable when the function table is built correctly.
type ErrJumpOutOfScope string

func (e ErrJumpOutOfScope) Error() string {
	return f("jump target is outside the scope of function %v", string(e))
}

func (e ErrJumpOutOfScope) Is(err error) (ok bool) {
	_, ok = err.(ErrJumpOutOfScope)
	return
}
