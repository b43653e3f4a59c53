// traps.go - the OS-level service routines reachable via the TRAP instruction.
//
// None of these save R7 on entry: unlike the real LC-3 ISA, TRAP in this
// VM does not implicitly link the return address. A handler that needs
// R0 on entry and leaves it holding a result (GETC, IN) follows the LC-3
// convention; nothing here touches R7.

package lc3

const (
	trapGETC  = 0x20
	trapOUT   = 0x21
	trapPUTS  = 0x22
	trapIN    = 0x23
	trapPUTSP = 0x24
	trapHALT  = 0x25
)

// execTRAP dispatches on the low byte of the instruction word. It returns
// halted=true only for HALT; every other vector either runs to completion
// or returns a fatal error.
func (vm *VM) execTRAP(instr uint16) (halted bool, err error) {
	vector := byte(instr & 0x00FF)

	switch vector {
	case trapGETC:
		return false, vm.trapGetc()
	case trapOUT:
		return false, vm.trapOut()
	case trapPUTS:
		return false, vm.trapPuts()
	case trapIN:
		return false, vm.trapIn()
	case trapPUTSP:
		return false, vm.trapPutsp()
	case trapHALT:
		return true, nil
	default:
		return false, &UnknownTrapError{Vector: vector}
	}
}

// trapGetc reads one input byte into R0 (high byte zero) and sets flags.
func (vm *VM) trapGetc() error {
	b, err := vm.in.ReadByte()
	if err != nil {
		return &IOError{Op: "GETC", Err: err}
	}
	vm.Reg.Set(0, uint16(b))
	vm.Flags.Set(uint16(b))
	return nil
}

// trapOut writes the low byte of R0 to output, then flushes.
func (vm *VM) trapOut() error {
	if err := vm.Out.WriteByte(byte(vm.Reg.Get(0))); err != nil {
		return &IOError{Op: "OUT", Err: err}
	}
	if err := vm.Out.Flush(); err != nil {
		return &IOError{Op: "OUT", Err: err}
	}
	return nil
}

// trapPuts writes the low byte of each word starting at R0 until a zero
// word terminates the string, then flushes.
func (vm *VM) trapPuts() error {
	addr := vm.Reg.Get(0)
	for {
		word := vm.Mem.Get(addr)
		if word == 0 {
			break
		}
		if err := vm.Out.WriteByte(byte(word)); err != nil {
			return &IOError{Op: "PUTS", Err: err}
		}
		addr++
	}
	if err := vm.Out.Flush(); err != nil {
		return &IOError{Op: "PUTS", Err: err}
	}
	return nil
}

// trapIn flushes output, then reads one input byte into R0 and sets
// flags. No automatic echo happens here; whether the typed byte is
// visible to the user is a property of the terminal mode the host
// configured, not of this trap.
func (vm *VM) trapIn() error {
	if err := vm.Out.Flush(); err != nil {
		return &IOError{Op: "IN", Err: err}
	}
	b, err := vm.in.ReadByte()
	if err != nil {
		return &IOError{Op: "IN", Err: err}
	}
	vm.Reg.Set(0, uint16(b))
	vm.Flags.Set(uint16(b))
	return nil
}

// trapPutsp writes the low byte of each word starting at R0, then the
// high byte if it is nonzero, until a zero word terminates the string,
// then flushes. This byte order (low, then high) diverges from the
// usual LC-3 convention for strings with an embedded zero high byte
// mid-string, but is kept exactly as the reference implementation has it.
func (vm *VM) trapPutsp() error {
	addr := vm.Reg.Get(0)
	for {
		word := vm.Mem.Get(addr)
		if word == 0 {
			break
		}

		low := byte(word)
		if err := vm.Out.WriteByte(low); err != nil {
			return &IOError{Op: "PUTSP", Err: err}
		}

		high := byte(word >> 8)
		if high != 0 {
			if err := vm.Out.WriteByte(high); err != nil {
				return &IOError{Op: "PUTSP", Err: err}
			}
		}

		addr++
	}
	if err := vm.Out.Flush(); err != nil {
		return &IOError{Op: "PUTSP", Err: err}
	}
	return nil
}
