// Package flags models the four-bit view of the CPU's F register.
package flags

// Bit positions of the four flags within F. The low nibble is always zero.
const (
	zBit = 7
	nBit = 6
	hBit = 5
	cBit = 4
)

// Flags is a decoded view of the upper nibble of the F register.
type Flags struct {
	Z bool // Zero
	N bool // Subtract
	H bool // Half-carry
	C bool // Carry
}

// ToByte packs the four flags into the upper nibble of a byte, with the
// low nibble forced to zero.
func (f Flags) ToByte() uint8 {
	var b uint8
	if f.Z {
		b |= 1 << zBit
	}
	if f.N {
		b |= 1 << nBit
	}
	if f.H {
		b |= 1 << hBit
	}
	if f.C {
		b |= 1 << cBit
	}
	return b
}

// FromByte extracts the four flags from the upper nibble of a byte. The
// low nibble is discarded, so FromByte(b) == FromByte(b | 0x0F) for any b.
func FromByte(b uint8) Flags {
	return Flags{
		Z: b&(1<<zBit) != 0,
		N: b&(1<<nBit) != 0,
		H: b&(1<<hBit) != 0,
		C: b&(1<<cBit) != 0,
	}
}
