// vm.go - machine state construction, program loading, and the instruction executor.

package lc3

import (
	"fmt"
	"io"
)

// Opcode values, the top nibble of every instruction word.
const (
	opBR       = 0x0
	opADD      = 0x1
	opLD       = 0x2
	opST       = 0x3
	opJSR      = 0x4
	opAND      = 0x5
	opLDR      = 0x6
	opSTR      = 0x7
	opRTI      = 0x8
	opNOT      = 0x9
	opLDI      = 0xA
	opSTI      = 0xB
	opJMP      = 0xC
	opReserved = 0xD
	opLEA      = 0xE
	opTRAP     = 0xF
)

// defaultOrigin is the conventional LC-3 user program origin, used when a
// caller constructs a VM without loading an object file first.
const defaultOrigin = 0x3000

// VM is the complete LC-3 machine: memory, registers, condition codes,
// program counter, and the I/O ports bound to it for its lifetime. A VM
// is single-threaded and owns all of its state exclusively; nothing about
// it is safe to share across goroutines, and nothing in this package
// tries to make it so.
type VM struct {
	Mem   *Memory
	Reg   *Registers
	Flags *Flags
	PC    *ProgramCounter
	Out   OutputPort

	in InputPort

	// Trace, when non-nil, receives one "pc: word" line per fetched
	// instruction. Left nil by default so an LC-3 program's own console
	// output is never interleaved with diagnostic noise.
	Trace io.Writer
}

// New builds a VM with zero-filled memory and registers, flags at Z, and
// PC at the conventional 0x3000 origin. Call LoadProgram to replace both
// the program image and PC with the contents of an object file.
func New(in InputPort, out OutputPort) *VM {
	vm := &VM{
		Reg:   &Registers{},
		Flags: &Flags{},
		PC:    NewProgramCounter(defaultOrigin),
		Out:   out,
		in:    in,
	}
	vm.Mem = NewMemory(in)
	vm.Flags.Set(0)
	return vm
}

// LoadProgram reads path as an LC-3 object file and installs it in memory.
// If originOverride is nonzero it replaces the origin word the file
// declares; either way PC is set to the origin actually used.
func (vm *VM) LoadProgram(path string, originOverride uint16) error {
	origin, words, err := LoadObjectFile(path)
	if err != nil {
		return err
	}
	if originOverride != 0 {
		origin = originOverride
	}
	if err := vm.Mem.Load(origin, words); err != nil {
		return &LoadError{Path: path, Err: err}
	}
	vm.PC.Set(origin)
	return nil
}

// RunResult distinguishes the two clean ways a Run can end.
type RunResult int

const (
	Halted RunResult = iota
	CycleLimitReached
)

// Run repeats Step until HALT fires, a fatal error occurs, or limit
// fetch-execute cycles have run (limit of 0 means unbounded — the
// cycle limit is a test/debug convenience, never part of a program's
// own semantics).
func (vm *VM) Run(limit uint64) (RunResult, error) {
	var cycles uint64
	for {
		if limit > 0 && cycles >= limit {
			return CycleLimitReached, nil
		}

		halted, err := vm.Step()
		if err != nil {
			return Halted, err
		}
		if halted {
			return Halted, nil
		}
		cycles++
	}
}

// Step fetches the word at PC, advances PC by one, and executes it,
// reporting whether a HALT trap fired. PC always lies in [0, 65536)
// because it is a uint16: this VM terminates on HALT (or the optional
// cycle limit), never on an "out of range" PC.
func (vm *VM) Step() (halted bool, err error) {
	pc := vm.PC.FetchThenIncrement()
	instruction := vm.Mem.Get(pc)
	vm.traceFetch(pc, instruction)

	if instruction == 0 {
		// 0x0000 decodes as BR with n=z=p=0: always a no-op. Skip dispatch.
		return false, nil
	}

	opcode := byte(instruction >> 12)
	switch opcode {
	case opBR:
		vm.execBR(instruction)
	case opADD:
		vm.execADD(instruction)
	case opLD:
		vm.execLD(instruction)
	case opST:
		vm.execST(instruction)
	case opJSR:
		vm.execJSR(instruction)
	case opAND:
		vm.execAND(instruction)
	case opLDR:
		vm.execLDR(instruction)
	case opSTR:
		vm.execSTR(instruction)
	case opRTI:
		// No-op: this is a user-mode VM with no supervisor state to return from.
	case opNOT:
		vm.execNOT(instruction)
	case opLDI:
		vm.execLDI(instruction)
	case opSTI:
		vm.execSTI(instruction)
	case opJMP:
		vm.execJMP(instruction)
	case opReserved:
		// No-op by this repo's documented choice; see the reserved-opcode
		// design note for the alternative (treat as fatal).
	case opLEA:
		vm.execLEA(instruction)
	case opTRAP:
		return vm.execTRAP(instruction)
	default:
		return false, &UnknownOpcodeError{Opcode: opcode}
	}

	return false, nil
}

func (vm *VM) traceFetch(pc, instruction uint16) {
	if vm.Trace == nil {
		return
	}
	fmt.Fprintf(vm.Trace, "0x%04x: 0x%04x\n", pc, instruction)
}

func (vm *VM) execBR(instr uint16) {
	n := instr&0x0800 != 0
	z := instr&0x0400 != 0
	p := instr&0x0200 != 0

	if (n && vm.Flags.IsNegative()) || (z && vm.Flags.IsZero()) || (p && vm.Flags.IsPositive()) {
		vm.PC.Set(vm.PC.Get() + PCOffset9(instr))
	}
}

func (vm *VM) execADD(instr uint16) {
	dr := RegisterAt(instr, 9)
	sr1 := RegisterAt(instr, 6)

	var operand uint16
	if instr&0x0020 == 0 {
		operand = vm.Reg.Get(RegisterAt(instr, 0))
	} else {
		operand = Imm5(instr)
	}

	value := vm.Reg.Get(sr1) + operand
	vm.Reg.Set(dr, value)
	vm.Flags.Set(value)
}

func (vm *VM) execAND(instr uint16) {
	dr := RegisterAt(instr, 9)
	sr1 := RegisterAt(instr, 6)

	var operand uint16
	if instr&0x0020 == 0 {
		operand = vm.Reg.Get(RegisterAt(instr, 0))
	} else {
		operand = Imm5(instr)
	}

	value := vm.Reg.Get(sr1) & operand
	vm.Reg.Set(dr, value)
	vm.Flags.Set(value)
}

func (vm *VM) execLD(instr uint16) {
	dr := RegisterAt(instr, 9)
	addr := vm.PC.Get() + PCOffset9(instr)
	value := vm.Mem.Get(addr)
	vm.Reg.Set(dr, value)
	vm.Flags.Set(value)
}

func (vm *VM) execST(instr uint16) {
	sr := RegisterAt(instr, 9)
	addr := vm.PC.Get() + PCOffset9(instr)
	vm.Mem.Set(addr, vm.Reg.Get(sr))
}

func (vm *VM) execJSR(instr uint16) {
	vm.Reg.Set(7, vm.PC.Get())

	if instr&0x0800 != 0 {
		vm.PC.Set(vm.PC.Get() + PCOffset11(instr))
		return
	}
	vm.PC.Set(vm.Reg.Get(RegisterAt(instr, 6)))
}

func (vm *VM) execLDR(instr uint16) {
	dr := RegisterAt(instr, 9)
	base := RegisterAt(instr, 6)
	addr := vm.Reg.Get(base) + Offset6(instr)
	value := vm.Mem.Get(addr)
	vm.Reg.Set(dr, value)
	vm.Flags.Set(value)
}

func (vm *VM) execSTR(instr uint16) {
	sr := RegisterAt(instr, 9)
	base := RegisterAt(instr, 6)
	addr := vm.Reg.Get(base) + Offset6(instr)
	vm.Mem.Set(addr, vm.Reg.Get(sr))
}

func (vm *VM) execNOT(instr uint16) {
	dr := RegisterAt(instr, 9)
	sr := RegisterAt(instr, 6)
	value := ^vm.Reg.Get(sr)
	vm.Reg.Set(dr, value)
	vm.Flags.Set(value)
}

func (vm *VM) execLDI(instr uint16) {
	dr := RegisterAt(instr, 9)
	addr := vm.PC.Get() + PCOffset9(instr)
	indirect := vm.Mem.Get(addr)
	value := vm.Mem.Get(indirect)
	vm.Reg.Set(dr, value)
	vm.Flags.Set(value)
}

func (vm *VM) execSTI(instr uint16) {
	sr := RegisterAt(instr, 9)
	addr := vm.PC.Get() + PCOffset9(instr)
	indirect := vm.Mem.Get(addr)
	vm.Mem.Set(indirect, vm.Reg.Get(sr))
}

func (vm *VM) execJMP(instr uint16) {
	// RET is just JMP through R7 (base == 7); no separate handling needed.
	vm.PC.Set(vm.Reg.Get(RegisterAt(instr, 6)))
}

func (vm *VM) execLEA(instr uint16) {
	dr := RegisterAt(instr, 9)
	value := vm.PC.Get() + PCOffset9(instr)
	vm.Reg.Set(dr, value)
	vm.Flags.Set(value)
}
