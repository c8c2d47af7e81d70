package util

// Stack is a LIFO list. The zero value is an empty stack.
type Stack[A any] struct {
	items []A
}

func (s *Stack[A]) Push(v A) {
	s.items = append(s.items, v)
}

func (s *Stack[A]) Pop() (ret A, ok bool) {
	if len(s.items) == 0 {
		return ret, false
	}
	ret = s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return ret, true
}

// Top points to the most recently pushed element, so it can be updated in
// place. It is nil when the stack is empty, and invalidated by the next Push.
func (s *Stack[A]) Top() *A {
	if len(s.items) == 0 {
		return nil
	}
	return &s.items[len(s.items)-1]
}
