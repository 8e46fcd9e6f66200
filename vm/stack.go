package vm

import (
	"errors"

	"github.com/minond/bananabread/value"
)

// ErrStackUnderflow indicates a pop or peek on an empty operand stack.
var ErrStackUnderflow = errors.New("stack underflow")

// ---------------------------------------------------------------------------
// Stack: the operand stack
// ---------------------------------------------------------------------------

// Stack is the machine's LIFO operand stack. The execution loop owns it
// and passes a pointer into each dispatch call; the stack is never
// copied per instruction. Push and Pop are the only mutating operations.
type Stack struct {
	values []value.Value
	sp     int // points to next free slot
}

// NewStack creates an operand stack with the given initial capacity.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = 256
	}
	return &Stack{values: make([]value.Value, capacity)}
}

// Push places a value on top of the stack, growing it if needed.
func (s *Stack) Push(v value.Value) {
	if s.sp >= len(s.values) {
		grown := make([]value.Value, len(s.values)*2)
		copy(grown, s.values)
		s.values = grown
	}
	s.values[s.sp] = v
	s.sp++
}

// Pop removes and returns the top of the stack.
func (s *Stack) Pop() (value.Value, error) {
	if s.sp <= 0 {
		return value.Nil, ErrStackUnderflow
	}
	s.sp--
	return s.values[s.sp], nil
}

// Peek returns the top of the stack without removing it.
func (s *Stack) Peek() (value.Value, error) {
	if s.sp <= 0 {
		return value.Nil, ErrStackUnderflow
	}
	return s.values[s.sp-1], nil
}

// Depth returns the number of values on the stack.
func (s *Stack) Depth() int {
	return s.sp
}

// Reset discards all values.
func (s *Stack) Reset() {
	s.sp = 0
}
