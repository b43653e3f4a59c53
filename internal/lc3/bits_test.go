package lc3

import "testing"

func TestSignExtend(t *testing.T) {
	tests := []struct {
		name  string
		value uint16
		width uint
		want  uint16
	}{
		{"16-bit passthrough", 0x0001, 16, 0x0001},
		{"4-bit positive", 0x0001, 4, 0x0001},
		{"4-bit negative top bit", 0x0009, 4, 0xFFF9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SignExtend(tc.value, tc.width); got != tc.want {
				t.Fatalf("SignExtend(0x%04X, %d) = 0x%04X, want 0x%04X", tc.value, tc.width, got, tc.want)
			}
		})
	}
}

func TestImm5(t *testing.T) {
	if got := Imm5(0b0000_0000_0000_0001); got != 0b0000_0000_0000_0001 {
		t.Fatalf("Imm5(1) = 0x%04X, want 0x0001", got)
	}
	if got := Imm5(0b0000_0000_0001_0001); got != 0b1111_1111_1111_0001 {
		t.Fatalf("Imm5(0x11) = 0x%04X, want 0xFFF1", got)
	}
}

func TestOffset6(t *testing.T) {
	if got := Offset6(0b0000_0000_0000_0001); got != 0b0000_0000_0000_0001 {
		t.Fatalf("Offset6(1) = 0x%04X, want 0x0001", got)
	}
	if got := Offset6(0b0000_0000_0010_0001); got != 0b1111_1111_1110_0001 {
		t.Fatalf("Offset6(0x21) = 0x%04X, want 0xFFE1", got)
	}
}

func TestPCOffset9(t *testing.T) {
	if got := PCOffset9(0b0000_0000_0000_0001); got != 0b0000_0000_0000_0001 {
		t.Fatalf("PCOffset9(1) = 0x%04X, want 0x0001", got)
	}
	if got := PCOffset9(0b0000_0001_0000_0001); got != 0b1111_1111_0000_0001 {
		t.Fatalf("PCOffset9(0x101) = 0x%04X, want 0xFF01", got)
	}
}

func TestPCOffset11(t *testing.T) {
	if got := PCOffset11(0b0000_0000_0000_0001); got != 0b0000_0000_0000_0001 {
		t.Fatalf("PCOffset11(1) = 0x%04X, want 0x0001", got)
	}
	if got := PCOffset11(0b0000_0100_0000_0001); got != 0b1111_1100_0000_0001 {
		t.Fatalf("PCOffset11(0x401) = 0x%04X, want 0xFC01", got)
	}
}

func TestRegisterAt(t *testing.T) {
	if got := RegisterAt(0b0000_1010_0000_0000, 9); got != 0b0000_0000_0000_0101 {
		t.Fatalf("RegisterAt(0x0A00, 9) = 0x%04X, want 0x0005", got)
	}
}
