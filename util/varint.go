package util

import (
	"encoding/binary"
	"fmt"
)

// VarintSize calculates the number of bytes required to store a value as a Bitcoin variable-length integer.
// Returns 1, 3, 5, or 9 bytes depending on the value size.
func VarintSize(x uint64) uint64 {
	if x < 0xfd {
		return 1
	}

	if x <= 0xffff {
		return 3
	}

	if x <= 0xffffffff {
		return 5
	}

	return 9
}

// AppendVarint appends the CompactSize encoding of n to dst and returns the extended buffer.
func AppendVarint(dst []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(dst, byte(n))
	case n <= 0xffff:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(n))
		return append(append(dst, 0xfd), b[:]...)
	case n <= 0xffffffff:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(n))
		return append(append(dst, 0xfe), b[:]...)
	default:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], n)
		return append(append(dst, 0xff), b[:]...)
	}
}

// ReadVarint decodes a CompactSize integer from the start of b, returning the
// value and the number of bytes consumed.
func ReadVarint(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, fmt.Errorf("varint: empty buffer")
	}

	switch b[0] {
	case 0xfd:
		if len(b) < 3 {
			return 0, 0, fmt.Errorf("varint: need 3 bytes, have %d", len(b))
		}
		return uint64(binary.LittleEndian.Uint16(b[1:3])), 3, nil
	case 0xfe:
		if len(b) < 5 {
			return 0, 0, fmt.Errorf("varint: need 5 bytes, have %d", len(b))
		}
		return uint64(binary.LittleEndian.Uint32(b[1:5])), 5, nil
	case 0xff:
		if len(b) < 9 {
			return 0, 0, fmt.Errorf("varint: need 9 bytes, have %d", len(b))
		}
		return binary.LittleEndian.Uint64(b[1:9]), 9, nil
	default:
		return uint64(b[0]), 1, nil
	}
}
