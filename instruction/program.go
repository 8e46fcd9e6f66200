package instruction

import "fmt"

// ---------------------------------------------------------------------------
// Program: an instruction sequence with resolved labels
// ---------------------------------------------------------------------------

// Program holds a loaded instruction sequence together with its label
// index, built once at load time. The machine executes a Program but
// never mutates it; several machines may share one.
type Program struct {
	Codes  []Code
	labels map[string]int // label name -> index into Codes
}

// NewProgram builds a Program from a decoded instruction sequence,
// resolving every Label to its index. Duplicate labels are a load error.
func NewProgram(codes []Code) (*Program, error) {
	labels := make(map[string]int)
	for i, c := range codes {
		l, ok := c.(*Label)
		if !ok {
			continue
		}
		if prev, dup := labels[l.Name]; dup {
			return nil, fmt.Errorf("duplicate label %q at %d (first at %d)", l.Name, i, prev)
		}
		labels[l.Name] = i
	}
	return &Program{Codes: codes, labels: labels}, nil
}

// ResolveLabel returns the instruction index of a label.
func (p *Program) ResolveLabel(name string) (int, bool) {
	i, ok := p.labels[name]
	return i, ok
}

// Labels returns a copy of the label index.
func (p *Program) Labels() map[string]int {
	out := make(map[string]int, len(p.labels))
	for name, i := range p.labels {
		out[name] = i
	}
	return out
}

// Len returns the number of instructions in the program.
func (p *Program) Len() int {
	return len(p.Codes)
}

// At returns the instruction at index i, or nil when i is out of range.
func (p *Program) At(i int) Code {
	if i < 0 || i >= len(p.Codes) {
		return nil
	}
	return p.Codes[i]
}
