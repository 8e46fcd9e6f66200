package vm

import "github.com/minond/bananabread/instruction"

// ---------------------------------------------------------------------------
// Action: what the execution loop should do next
// ---------------------------------------------------------------------------

// ActionKind identifies the control decision a dispatch call produced.
type ActionKind int

const (
	// ActionContinue advances to the next instruction.
	ActionContinue ActionKind = iota
	// ActionStop terminates the execution loop cleanly.
	ActionStop
	// ActionError aborts the run with a diagnostic message.
	ActionError
)

// Action is the dispatch decision returned to the execution loop. It is
// a plain value: constructed fresh on every dispatch call, owned by the
// caller, and it carries no state across calls.
type Action struct {
	Kind    ActionKind
	Message string // diagnostic, set only for ActionError
}

// Cont builds a continue decision.
func Cont() Action {
	return Action{Kind: ActionContinue}
}

// Stop builds a clean-stop decision.
func Stop() Action {
	return Action{Kind: ActionStop}
}

// Errored builds an error decision carrying a diagnostic.
func Errored(message string) Action {
	return Action{Kind: ActionError, Message: message}
}

// UnhandledDiagnostic is the diagnostic attached to instructions the
// dispatcher has no transition for. Hitting it means the instruction set
// and the dispatcher have drifted out of sync; it is a program-integrity
// fault, not a runtime-data error.
const UnhandledDiagnostic = "internal error: unhandled instruction"

// ---------------------------------------------------------------------------
// Dispatch: the per-step state-transition function
// ---------------------------------------------------------------------------

// Dispatch maps one decoded instruction to a control decision given the
// current register file and operand stack. It is pure and synchronous:
// no I/O, no blocking, and for the variants modeled here no mutation of
// reg or stack. It never panics and never aborts the process; failure is
// only ever the returned error decision.
//
// Labels are resolved at load time, so at runtime they are no-ops.
// Value instructions are recognized but do not yet push their datum;
// the stack effect of literals is a planned extension. Halt is the only
// variant that stops the machine. Every other instruction kind falls to
// the unhandled-instruction error path; a missed case in a VM dispatcher
// is a silent-hang bug, so the default branch must stay reachable for
// any unmodeled kind.
func Dispatch(code instruction.Code, reg *Registers, stack *Stack) Action {
	switch code.(type) {
	case *instruction.Label:
		return Cont()
	case *instruction.Value:
		return Cont()
	case *instruction.Halt:
		return Stop()
	default:
		return Errored(UnhandledDiagnostic)
	}
}
