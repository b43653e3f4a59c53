package lc3

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeObjectFile(t *testing.T, words []uint16) string {
	t.Helper()
	buf := make([]byte, len(words)*2)
	for i, w := range words {
		binary.BigEndian.PutUint16(buf[i*2:], w)
	}
	path := filepath.Join(t.TempDir(), "test.obj")
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("failed to write test object file: %v", err)
	}
	return path
}

func TestLoadObjectFile(t *testing.T) {
	path := writeObjectFile(t, []uint16{0x3000, 0xE2FF, 0x5000})

	origin, program, err := LoadObjectFile(path)
	if err != nil {
		t.Fatalf("LoadObjectFile: %v", err)
	}
	if origin != 0x3000 {
		t.Fatalf("origin = 0x%04X, want 0x3000", origin)
	}
	if len(program) != 2 || program[0] != 0xE2FF || program[1] != 0x5000 {
		t.Fatalf("program = %#v, want [0xE2FF 0x5000]", program)
	}
}

func TestLoadObjectFileMissing(t *testing.T) {
	_, _, err := LoadObjectFile(filepath.Join(t.TempDir(), "does-not-exist.obj"))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %v, want *LoadError", err)
	}
}

func TestLoadObjectFileOddLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.obj")
	if err := os.WriteFile(path, []byte{0x30, 0x00, 0x01}, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, _, err := LoadObjectFile(path)
	if !errors.Is(err, ErrOddLength) {
		t.Fatalf("error = %v, want ErrOddLength", err)
	}
}

func TestVMLoadProgramEndToEnd(t *testing.T) {
	path := writeObjectFile(t, []uint16{0x3000, 0xE2FF, 0x5000})

	vm := New(nil, NewStreamOutput(new(devNullWriter)))
	if err := vm.LoadProgram(path, 0); err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	if vm.PC.Get() != 0x3000 {
		t.Fatalf("PC = 0x%04X, want 0x3000", vm.PC.Get())
	}
	if got := vm.Mem.Get(0x3000); got != 0xE2FF {
		t.Fatalf("M[0x3000] = 0x%04X, want 0xE2FF", got)
	}
	if got := vm.Mem.Get(0x3001); got != 0x5000 {
		t.Fatalf("M[0x3001] = 0x%04X, want 0x5000", got)
	}
}

func TestVMLoadProgramOriginOverride(t *testing.T) {
	path := writeObjectFile(t, []uint16{0x3000, 0xE2FF})

	vm := New(nil, NewStreamOutput(new(devNullWriter)))
	if err := vm.LoadProgram(path, 0x4000); err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	if vm.PC.Get() != 0x4000 {
		t.Fatalf("PC = 0x%04X, want 0x4000 (override)", vm.PC.Get())
	}
	if got := vm.Mem.Get(0x4000); got != 0xE2FF {
		t.Fatalf("M[0x4000] = 0x%04X, want 0xE2FF", got)
	}
}

type devNullWriter struct{}

func (*devNullWriter) Write(p []byte) (int, error) { return len(p), nil }
