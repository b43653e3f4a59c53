// memory.go - the 65,536-cell address space and its memory-mapped keyboard.

package lc3

const (
	// MemorySize is the full 16-bit address space, in 16-bit cells.
	MemorySize = 1 << 16

	// KBSR and KBDR are the memory-mapped keyboard status and data
	// registers. Reading KBSR is the core's only location with an
	// observable side effect on a plain memory read.
	KBSR uint16 = 0xFE00
	KBDR uint16 = 0xFE02
)

// Memory is the flat LC-3 address space. Addresses wrap modulo 2^16 simply
// by virtue of being stored as uint16; every cell is reachable.
type Memory struct {
	cells [MemorySize]uint16
	kbd   InputPort
}

// NewMemory returns a zero-filled address space. kbd may be nil if the
// program never polls the keyboard (e.g. unit tests of non-interactive
// instructions); polling a nil port is treated as "no byte available".
func NewMemory(kbd InputPort) *Memory {
	return &Memory{kbd: kbd}
}

// Get reads the cell at addr. Reading KBSR first polls the input source
// for one byte and updates KBSR/KBDR accordingly; every other address is
// a pure read.
func (m *Memory) Get(addr uint16) uint16 {
	if addr == KBSR {
		m.pollKeyboard()
	}
	return m.cells[addr]
}

// Set writes value into the cell at addr. Set never has side effects;
// writing KBSR/KBDR directly is allowed but has no special meaning.
func (m *Memory) Set(addr, value uint16) {
	m.cells[addr] = value
}

// pollKeyboard attempts exactly one byte read from the keyboard input.
// A byte of 0, or a failed read (including EOF), leaves KBSR not-ready;
// any other byte marks KBDR/KBSR ready. Errors are not propagated here:
// Get returns a plain uint16 with no error channel to report through.
func (m *Memory) pollKeyboard() {
	if m.kbd == nil {
		m.cells[KBSR] = 0
		return
	}

	b, err := m.kbd.ReadByte()
	if err != nil || b == 0 {
		m.cells[KBSR] = 0
		return
	}

	m.cells[KBDR] = uint16(b)
	m.cells[KBSR] = 0x8000
}

// Load copies words into cells [origin, origin+len(words)), failing if the
// program would run past the top of the address space.
func (m *Memory) Load(origin uint16, words []uint16) error {
	if int(origin)+len(words) > MemorySize {
		return ErrProgramTooBig
	}
	copy(m.cells[origin:], words)
	return nil
}
