package vm

import "github.com/minond/bananabread/value"

// ---------------------------------------------------------------------------
// Registers: the machine's named control/data slots
// ---------------------------------------------------------------------------

// Registers is the machine's register file. The execution loop owns it;
// the dispatcher borrows a pointer for the duration of one call.
//
// Pc, Lr and Jm hold instruction indices into the current program. Rt
// holds the most recent return value.
type Registers struct {
	Pc int         // program counter
	Lr int         // link register (return address for calls)
	Jm int         // jump register (pending jump target)
	Rt value.Value // return-value register
}

// NewRegisters creates a register file in its boot state.
func NewRegisters() *Registers {
	return &Registers{Rt: value.Nil}
}

// Reset returns the register file to its boot state.
func (r *Registers) Reset() {
	r.Pc = 0
	r.Lr = 0
	r.Jm = 0
	r.Rt = value.Nil
}
