// Package vm implements the Bananabread virtual machine core.
//
// This package contains:
//   - Register file and operand stack
//   - Dispatch decision set (continue / stop / error)
//   - The per-instruction dispatcher
//   - The Machine execution loop that drives it
//
// The dispatcher is the machine's state-transition function: one decoded
// instruction in, one control decision out. It classifies every
// instruction variant exhaustively and reports anything outside the
// modeled set as an unhandled-instruction error instead of skipping it.
package vm
