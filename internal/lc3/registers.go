// registers.go - the eight general-purpose registers and the program counter.

package lc3

const generalRegisters = 8

// Registers holds R0..R7. Indexing outside [0,7] is a defect in the
// decoder, never a value that can arise from a well-formed instruction
// word (every register field is 3 bits), so it panics rather than
// returning an error.
type Registers struct {
	cells [generalRegisters]uint16
}

func (r *Registers) Get(reg uint16) uint16 {
	if reg >= generalRegisters {
		panic("lc3: register index out of range")
	}
	return r.cells[reg]
}

func (r *Registers) Set(reg uint16, value uint16) {
	if reg >= generalRegisters {
		panic("lc3: register index out of range")
	}
	r.cells[reg] = value
}

// ProgramCounter is the 16-bit instruction pointer. All arithmetic on it
// wraps modulo 2^16 simply by being stored as uint16.
type ProgramCounter struct {
	pc uint16
}

// NewProgramCounter seeds the counter at origin, conventionally the load
// origin taken from the first word of the object file (0x3000 by LC-3
// convention when the host supplies no override).
func NewProgramCounter(origin uint16) *ProgramCounter {
	return &ProgramCounter{pc: origin}
}

func (p *ProgramCounter) Get() uint16 { return p.pc }

func (p *ProgramCounter) Set(addr uint16) { p.pc = addr }

// FetchThenIncrement returns the current PC and advances it by one,
// the address the fetch loop reads the next instruction word from.
func (p *ProgramCounter) FetchThenIncrement() uint16 {
	cur := p.pc
	p.pc++
	return cur
}
