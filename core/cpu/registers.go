package cpu

import (
	"github.com/dmgcore/core/bit"
	"github.com/dmgcore/core/flags"
)

// getAF/setAF combine/split the accumulator and flags into the paired
// 16-bit view. The round trip through flags.FromByte/ToByte is what wires
// the low nibble of F to zero on real hardware: FromByte ignores it when
// decoding and ToByte never sets it when re-encoding.
func (c *CPU) getAF() uint16 {
	return bit.Combine(c.a, flags.FromByte(c.f).ToByte())
}

func (c *CPU) setAF(value uint16) {
	c.a = bit.High(value)
	c.f = flags.FromByte(bit.Low(value)).ToByte()
}

func (c *CPU) getBC() uint16 {
	return bit.Combine(c.b, c.c)
}

func (c *CPU) setBC(value uint16) {
	c.b = bit.High(value)
	c.c = bit.Low(value)
}

func (c *CPU) getDE() uint16 {
	return bit.Combine(c.d, c.e)
}

func (c *CPU) setDE(value uint16) {
	c.d = bit.High(value)
	c.e = bit.Low(value)
}

func (c *CPU) getHL() uint16 {
	return bit.Combine(c.h, c.l)
}

func (c *CPU) setHL(value uint16) {
	c.h = bit.High(value)
	c.l = bit.Low(value)
}
