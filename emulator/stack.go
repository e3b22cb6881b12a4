package emulator

const (
	STACK_LIMIT = 1 << 20 // Default maximum stack depth, 8MiB of 64-bit slots
)

// Stack is the machine stack of 64-bit slots.
type Stack struct {
	Limit int // Maximum depth. Zero means STACK_LIMIT.
	Data  []int64
}

func (s *Stack) limit() int {
	if s.Limit <= 0 {
		return STACK_LIMIT
	}
	return s.Limit
}

func (s *Stack) Push(value int64) (ok bool) {
	if s.Full() {
		return
	}
	s.Data = append(s.Data, value)
	return true
}

func (s *Stack) Pop() (value int64, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Full() bool {
	return len(s.Data) >= s.limit()
}

func (s *Stack) Depth() int {
	return len(s.Data)
}

func (s *Stack) Peek() (value int64, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
