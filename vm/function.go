package vm

import (
	"strconv"
)

// Variable is a named slot in a function's data segment.
type Variable struct {
	Offset int
	Size   int
}

// Function is the load-time metadata of one named instruction sub-range.
// It never copies instructions; Start and End index the shared program.
// Start is the index right after the func marker, End the index of the
// matching endfunc marker, exclusive.
type Function struct {
	Name      string
	ID        int
	Start     int
	End       int
	FrameSize int

	labels    map[string]int
	variables map[string]Variable
	data      []byte
}

// Contains reports whether a global instruction index lies inside the
// function's range. End is exclusive, so the endfunc marker itself is
// never a valid in-range instruction.
func (fn *Function) Contains(index int) bool {
	return index >= fn.Start && index < fn.End
}

// Label resolves a label name to its global instruction index. Labels of
// other functions are never visible here.
func (fn *Function) Label(name string) (index int, err error) {
	index, ok := fn.labels[name]
	if !ok {
		err = ErrLabelNotFound(name)
	}

	return
}

// Variable resolves a variable name to its slot in the data segment.
func (fn *Function) Variable(name string) (slot Variable, err error) {
	slot, ok := fn.variables[name]
	if !ok {
		err = ErrVariableNotFound(name)
		return
	}

	if slot.Size == 0 || slot.Offset+slot.Size > len(fn.data) {
		err = ErrDataSegment
	}

	return
}

// DataSize returns the byte size of the function's data segment.
func (fn *Function) DataSize() int {
	return len(fn.data)
}

// Table is the id-indexed set of functions defined by one program.
// Immutable once built; call frames refer to functions by id.
type Table struct {
	funcs []Function
	ids   map[string]int
}

// BuildTable scans the program once, forward, and collects every function
// definition. Two functions sharing a name reject the whole program.
func BuildTable(program []Instruction) (table *Table, err error) {
	table = &Table{ids: map[string]int{}}

	for i := 0; i < len(program); i++ {
		if program[i].Kind != OP_FUNC {
			continue
		}

		var fn Function
		fn, err = buildFunction(program, i)
		if err != nil {
			return
		}

		if _, ok := table.ids[fn.Name]; ok {
			err = ErrBrokenFunction(fn.Name)
			return
		}

		fn.ID = len(table.funcs)
		table.ids[fn.Name] = fn.ID
		table.funcs = append(table.funcs, fn)

		// Resume scanning after the endfunc marker.
		i = fn.End
	}

	return
}

// buildFunction collects the metadata of the function whose func marker
// sits at index start. Duplicate label or variable names within one
// function overwrite the earlier entry; the last declaration wins.
func buildFunction(program []Instruction, start int) (fn Function, err error) {
	fn = Function{
		Name:      program[start].Name,
		Start:     start + 1,
		End:       -1,
		labels:    map[string]int{},
		variables: map[string]Variable{},
	}

	size := 0
scan:
	for i := fn.Start; i < len(program); i++ {
		op := program[i]
		switch op.Kind {
		case OP_ENDFUNC:
			fn.End = i
			break scan
		case OP_FUNC:
			// Nested definitions are forbidden. Name the inner one.
			err = ErrBrokenFunction(op.Name)
			return
		case OP_LABEL:
			fn.labels[op.Name] = i
		case OP_VAR8, OP_VAR16, OP_VAR32, OP_VAR64:
			fn.variables[op.Name] = Variable{Offset: size, Size: op.Kind.VarSize()}
			size += op.Kind.VarSize()
		}
	}

	if fn.End < 0 {
		err = ErrBrokenFunction(fn.Name)
		return
	}

	fn.FrameSize = size
	fn.data = make([]byte, size)
	return
}

// Lookup finds a function by name.
func (t *Table) Lookup(name string) (fn *Function, err error) {
	id, ok := t.ids[name]
	if !ok {
		err = ErrFunctionNotDefined(name)
		return
	}

	fn = &t.funcs[id]
	return
}

// ByID finds a function by the stable id assigned at load time.
func (t *Table) ByID(id int) (fn *Function, err error) {
	if id < 0 || id >= len(t.funcs) {
		err = ErrFunctionNotDefined("#" + strconv.Itoa(id))
		return
	}

	fn = &t.funcs[id]
	return
}

// Len returns the number of functions in the table.
func (t *Table) Len() int {
	return len(t.funcs)
}
