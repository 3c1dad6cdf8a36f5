package vm

import (
	"strconv"
)

// AddrMode describes where an operand's value comes from or goes to.
type AddrMode int

//go:generate go tool stringer -linecomment -type=AddrMode
const (
	MODE_INT_REG     = AddrMode(0) // int-reg
	MODE_MEM         = AddrMode(1) // mem
	MODE_INT_CONST   = AddrMode(2) // int-const
	MODE_FLOAT_REG   = AddrMode(3) // float-reg
	MODE_FLOAT_CONST = AddrMode(4) // float-const
)

// Operand is an addressing mode with its payload. Index carries the
// register index or memory address, Int and Float the constant values.
type Operand struct {
	Mode  AddrMode
	Index int
	Int   int64
	Float float64
}

// IntReg addresses integer register n.
func IntReg(n int) Operand {
	return Operand{Mode: MODE_INT_REG, Index: n}
}

// Mem addresses a memory location. Reserved, not implemented.
func Mem(addr int) Operand {
	return Operand{Mode: MODE_MEM, Index: addr}
}

// IntConst is an immediate 64-bit integer.
func IntConst(v int64) Operand {
	return Operand{Mode: MODE_INT_CONST, Int: v}
}

// FloatReg addresses floating register n. Requires the floating extension.
func FloatReg(n int) Operand {
	return Operand{Mode: MODE_FLOAT_REG, Index: n}
}

// FloatConst is an immediate 64-bit float. Requires the floating extension.
func FloatConst(v float64) Operand {
	return Operand{Mode: MODE_FLOAT_CONST, Float: v}
}

// String returns the assembly language representation of this operand.
func (op Operand) String() (out string) {
	switch op.Mode {
	case MODE_INT_REG:
		out = "r" + strconv.Itoa(op.Index)
	case MODE_FLOAT_REG:
		out = "f" + strconv.Itoa(op.Index)
	case MODE_MEM:
		out = "[" + strconv.Itoa(op.Index) + "]"
	case MODE_INT_CONST:
		out = strconv.FormatInt(op.Int, 10)
	case MODE_FLOAT_CONST:
		out = strconv.FormatFloat(op.Float, 'g', -1, 64)
	default:
		out = op.Mode.String()
	}

	return
}

// ValueKind tags the runtime kind a resolved Value carries.
type ValueKind int

//go:generate go tool stringer -linecomment -type=ValueKind
const (
	VALUE_INT   = ValueKind(0) // int
	VALUE_ADDR  = ValueKind(1) // addr
	VALUE_FLOAT = ValueKind(2) // float
)

// Value is a concrete runtime value produced by resolving an operand.
// Values of different kinds never combine or store across banks.
type Value struct {
	Kind  ValueKind
	Int   int64
	Addr  int
	Float float64
}

// IntValue wraps an int64 as a runtime value.
func IntValue(v int64) Value {
	return Value{Kind: VALUE_INT, Int: v}
}

// FloatValue wraps a float64 as a runtime value.
func FloatValue(v float64) Value {
	return Value{Kind: VALUE_FLOAT, Float: v}
}

// AsInt returns the integer payload, or ErrUnsupportedOperand for any
// other kind.
func (v Value) AsInt() (out int64, err error) {
	if v.Kind != VALUE_INT {
		err = ErrUnsupportedOperand
		return
	}

	out = v.Int
	return
}

// AsFloat returns the floating payload, or ErrUnsupportedOperand for any
// other kind.
func (v Value) AsFloat() (out float64, err error) {
	if v.Kind != VALUE_FLOAT {
		err = ErrUnsupportedOperand
		return
	}

	out = v.Float
	return
}

// Add combines two values of the same kind. Integer addition wraps at
// 64 bits.
func (v Value) Add(other Value) (out Value, err error) {
	switch v.Kind {
	case VALUE_INT:
		var b int64
		b, err = other.AsInt()
		if err != nil {
			return
		}
		out = IntValue(v.Int + b)
	case VALUE_FLOAT:
		var b float64
		b, err = other.AsFloat()
		if err != nil {
			return
		}
		out = FloatValue(v.Float + b)
	default:
		err = ErrNotImplemented
	}

	return
}

// Sub combines two values of the same kind. Integer subtraction wraps at
// 64 bits.
func (v Value) Sub(other Value) (out Value, err error) {
	switch v.Kind {
	case VALUE_INT:
		var b int64
		b, err = other.AsInt()
		if err != nil {
			return
		}
		out = IntValue(v.Int - b)
	case VALUE_FLOAT:
		var b float64
		b, err = other.AsFloat()
		if err != nil {
			return
		}
		out = FloatValue(v.Float - b)
	default:
		err = ErrNotImplemented
	}

	return
}
