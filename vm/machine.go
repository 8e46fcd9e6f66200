package vm

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/minond/bananabread/instruction"
)

// ErrNoHalt indicates the program counter ran past the end of the
// program without reaching a halt instruction.
var ErrNoHalt = errors.New("program ended without halt")

// ErrStepLimit indicates the machine hit its configured step budget.
var ErrStepLimit = errors.New("step limit exceeded")

// UnhandledInstructionError is returned by Run when the dispatcher
// reports an instruction it has no transition for.
type UnhandledInstructionError struct {
	Pc      int
	Code    instruction.Code
	Message string
}

func (e *UnhandledInstructionError) Error() string {
	return fmt.Sprintf("%s: %s at %d", e.Message, e.Code, e.Pc)
}

// ---------------------------------------------------------------------------
// Machine: the execution loop driving the dispatcher
// ---------------------------------------------------------------------------

// Machine owns one register file and one operand stack and advances one
// instruction at a time: fetch the instruction at Pc, dispatch it once,
// act strictly on the returned decision, fetch again. It is
// single-threaded; machines running in parallel must each own an
// independent register/stack pair. Cooperative shutdown happens only
// through the stop and error decisions the dispatcher returns.
type Machine struct {
	program   *instruction.Program
	registers *Registers
	stack     *Stack

	// MaxSteps bounds the number of dispatch calls per Run; 0 means
	// unbounded.
	MaxSteps int

	// Trace enables per-step tracing. Output goes to the writer set
	// via SetTraceOutput, or os.Stderr when none is set.
	Trace    bool
	traceOut io.Writer
}

// NewMachine creates a machine for the given program with a fresh
// register file and an operand stack of the given capacity.
func NewMachine(program *instruction.Program, stackCapacity int) *Machine {
	return &Machine{
		program:   program,
		registers: NewRegisters(),
		stack:     NewStack(stackCapacity),
	}
}

// SetTraceOutput enables tracing to w.
func (m *Machine) SetTraceOutput(w io.Writer) {
	m.Trace = w != nil
	m.traceOut = w
}

// Registers exposes the machine's register file, mainly for tests and
// tooling. The machine remains the owner.
func (m *Machine) Registers() *Registers {
	return m.registers
}

// Stack exposes the machine's operand stack. The machine remains the
// owner.
func (m *Machine) Stack() *Stack {
	return m.stack
}

// Jump moves the program counter to the instruction at the given label.
func (m *Machine) Jump(label string) error {
	i, ok := m.program.ResolveLabel(label)
	if !ok {
		return fmt.Errorf("unknown label %q", label)
	}
	m.registers.Pc = i
	return nil
}

// Run executes the program from the current program counter until the
// dispatcher stops the machine, the dispatcher reports an error, or the
// program counter leaves the program.
func (m *Machine) Run() error {
	steps := 0
	for {
		code := m.program.At(m.registers.Pc)
		if code == nil {
			return fmt.Errorf("%w: pc=%d", ErrNoHalt, m.registers.Pc)
		}

		if m.Trace {
			out := m.traceOut
			if out == nil {
				out = os.Stderr
			}
			fmt.Fprintf(out, "[%04d] %-24s depth=%d\n", m.registers.Pc, code, m.stack.Depth())
		}

		action := Dispatch(code, m.registers, m.stack)

		switch action.Kind {
		case ActionContinue:
			m.registers.Pc++
		case ActionStop:
			return nil
		case ActionError:
			return &UnhandledInstructionError{
				Pc:      m.registers.Pc,
				Code:    code,
				Message: action.Message,
			}
		default:
			// The decision set is as closed as the instruction set.
			return fmt.Errorf("internal error: unknown action kind %d", action.Kind)
		}

		steps++
		if m.MaxSteps > 0 && steps >= m.MaxSteps {
			return fmt.Errorf("%w: %d", ErrStepLimit, m.MaxSteps)
		}
	}
}
