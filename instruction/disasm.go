package instruction

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing for the program.
func (p *Program) Disassemble() string {
	return p.DisassembleWithName("")
}

// DisassembleWithName returns a human-readable listing with a name header.
func (p *Program) DisassembleWithName(name string) string {
	var sb strings.Builder

	// Header
	if name != "" {
		sb.WriteString(fmt.Sprintf("; === %s ===\n", name))
	}
	sb.WriteString(fmt.Sprintf("; %d instructions, %d labels\n", len(p.Codes), len(p.labels)))

	for i, code := range p.Codes {
		if _, ok := code.(*Label); ok {
			// Labels start a block; print them unindented.
			sb.WriteString(fmt.Sprintf("%04d %s\n", i, code))
			continue
		}
		sb.WriteString(fmt.Sprintf("%04d     %s\n", i, code))
	}

	return sb.String()
}
