// Package instruction defines the decoded instruction set of the
// Bananabread virtual machine.
//
// The variant set is sealed: Code has an unexported marker method, so
// every implementation lives in this package and the dispatcher can
// enumerate the full set. Anything the dispatcher does not recognize is
// reported as an unhandled instruction rather than silently skipped.
package instruction

import "github.com/minond/bananabread/value"

// Code is the interface implemented by all decoded instructions.
// Instructions are immutable; they are constructed once at load time and
// owned by their Program.
type Code interface {
	String() string
	code() // marker method
}

// ---------------------------------------------------------------------------
// Instruction variants
// ---------------------------------------------------------------------------

// Label marks a jump target. Labels are resolved to indices at load time
// and have no effect at runtime.
type Label struct {
	Name string
}

func (c *Label) String() string { return c.Name + ":" }
func (c *Label) code()          {}

// Value carries a literal datum. The machine recognizes it and moves on;
// pushing the datum onto the operand stack is a planned extension of the
// dispatch contract.
type Value struct {
	Datum value.Value
}

func (c *Value) String() string { return "value " + c.Datum.String() }
func (c *Value) code()          {}

// Halt terminates execution. It is the only instruction that stops the
// machine under normal operation.
type Halt struct{}

func (c *Halt) String() string { return "halt" }
func (c *Halt) code()          {}
