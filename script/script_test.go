package script

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parallaxvm/parallax/vm"
)

func TestLoadSource_Demo(t *testing.T) {
	assert := assert.New(t)

	src := `
func_start("main")
mov(reg(1), 0xE1EE7)
add(reg(2), 3, 5)
jmp("skip_next_opcode")
add(reg(3), reg(2), -1)
label("skip_next_opcode")
call("test1")
sub(reg(2), reg(2), 6)
ret()
func_end()

func_start("test1")
i32("first_var")
add(reg(10), 31, 5)
ret()
func_end()
`

	ld := &Loader{}
	program, err := ld.LoadSource("demo.star", src)
	assert.NoError(err)
	assert.Len(program, 15)

	machine := &vm.Vm{}
	_, err = machine.Run(program)
	assert.NoError(err)

	regs := machine.IntRegisters()
	assert.Equal(int64(925415), regs[1])
	assert.Equal(int64(2), regs[2])
	assert.Equal(int64(0), regs[3])
	assert.Equal(int64(36), regs[10])
}

func TestLoadSource_Operands(t *testing.T) {
	assert := assert.New(t)

	src := `
func_start("main")
mov(reg(1), 42)
mov(freg(2), 1.5)
mov(reg(3), mem(16))
ret()
func_end()
`

	ld := &Loader{}
	program, err := ld.LoadSource("operands.star", src)
	assert.NoError(err)

	assert.Equal(vm.MakeMove(vm.IntReg(1), vm.IntConst(42)), program[1])
	assert.Equal(vm.MakeMove(vm.FloatReg(2), vm.FloatConst(1.5)), program[2])
	assert.Equal(vm.MakeMove(vm.IntReg(3), vm.Mem(16)), program[3])
}

func TestLoadSource_Defines(t *testing.T) {
	assert := assert.New(t)

	src := `
func_start("main")
mov(reg(1), INT_REGISTERS)
mov(reg(2), TRUE)
mov(reg(3), FALSE)
ret()
func_end()
`

	machine := &vm.Vm{}
	ld := &Loader{Defines: machine.Defines()}
	program, err := ld.LoadSource("defines.star", src)
	assert.NoError(err)

	_, err = machine.Run(program)
	assert.NoError(err)

	regs := machine.IntRegisters()
	assert.Equal(int64(vm.INT_REGISTERS), regs[1])
	assert.Equal(int64(1), regs[2])
	assert.Equal(int64(0), regs[3])
}

func TestLoadSource_SyntaxError(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}
	_, err := ld.LoadSource("broken.star", `func_start("main"`)
	assert.Error(err)
}

func TestLoadSource_BadOperand(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}
	_, err := ld.LoadSource("bad.star", `mov("x", 1)`)
	assert.ErrorContains(err, "not an operand")
}

func TestLoadSource_HugeConstant(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}
	_, err := ld.LoadSource("huge.star", `mov(reg(1), 1 << 80)`)
	assert.ErrorContains(err, "does not fit in 64 bits")
}

func TestLoadSource_TopLevelControl(t *testing.T) {
	assert := assert.New(t)

	src := `
func_start("main")
mov(reg(1), 0)
for n in range(3):
    add(reg(1), reg(1), 1)
ret()
func_end()
`

	ld := &Loader{}
	program, err := ld.LoadSource("loop.star", src)
	assert.NoError(err)
	assert.Len(program, 7)

	machine := &vm.Vm{}
	_, err = machine.Run(program)
	assert.NoError(err)
	assert.Equal(int64(3), machine.IntRegisters()[1])
}
