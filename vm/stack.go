package vm

// Frame records where execution resumes once a call returns: the caller's
// function id, the instruction index after the call, and the caller's
// stack pointer.
type Frame struct {
	Fn     int
	Resume int
	Sp     int
}

// Stack is the return stack. Depth is unbounded; recursion limits are the
// guest program's concern.
type Stack struct {
	Data []Frame
}

func (s *Stack) Push(frame Frame) {
	s.Data = append(s.Data, frame)
}

func (s *Stack) Pop() (frame Frame, ok bool) {
	frame, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Peek() (frame Frame, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack) Depth() int {
	return len(s.Data)
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
