// loader.go - reads a relocatable LC-3 object image off disk.

package lc3

import (
	"encoding/binary"
	"os"
)

// LoadObjectFile reads path as a sequence of 16-bit big-endian words. The
// first word is the load origin; the remaining words are the program body
// to be placed starting at that origin. There is no header, section
// table, relocation record, or checksum beyond this.
func LoadObjectFile(path string) (origin uint16, program []uint16, err error) {
	raw, readErr := os.ReadFile(path)
	if readErr != nil {
		return 0, nil, &LoadError{Path: path, Err: readErr}
	}
	if len(raw)%2 != 0 {
		return 0, nil, &LoadError{Path: path, Err: ErrOddLength}
	}
	if len(raw) == 0 {
		return 0, nil, &LoadError{Path: path, Err: ErrMissingOrigin}
	}

	words := make([]uint16, len(raw)/2)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(raw[i*2 : i*2+2])
	}

	return words[0], words[1:], nil
}
