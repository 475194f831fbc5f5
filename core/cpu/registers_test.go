package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterPairs(t *testing.T) {
	t.Run("AF combines A and the flag nibble of F", func(t *testing.T) {
		c := &CPU{}
		c.setAF(0xBEEF)

		assert.Equal(t, uint8(0xBE), c.a)
		// low nibble of F is always wired to zero
		assert.Equal(t, uint8(0xE0), c.f)
		assert.Equal(t, uint16(0xBEE0), c.getAF())
	})

	t.Run("BC", func(t *testing.T) {
		c := &CPU{}
		c.setBC(0xCAFE)

		assert.Equal(t, uint8(0xCA), c.b)
		assert.Equal(t, uint8(0xFE), c.c)
		assert.Equal(t, uint16(0xCAFE), c.getBC())
	})

	t.Run("DE", func(t *testing.T) {
		c := &CPU{}
		c.setDE(0x1234)

		assert.Equal(t, uint8(0x12), c.d)
		assert.Equal(t, uint8(0x34), c.e)
		assert.Equal(t, uint16(0x1234), c.getDE())
	})

	t.Run("HL", func(t *testing.T) {
		c := &CPU{}
		c.setHL(0x9ABC)

		assert.Equal(t, uint8(0x9A), c.h)
		assert.Equal(t, uint8(0xBC), c.l)
		assert.Equal(t, uint16(0x9ABC), c.getHL())
	})
}

func TestFlags(t *testing.T) {
	t.Run("setFlag and resetFlag toggle individual bits without disturbing others", func(t *testing.T) {
		c := &CPU{}
		c.setFlag(zeroFlag)
		c.setFlag(carryFlag)

		assert.True(t, c.isSetFlag(zeroFlag))
		assert.True(t, c.isSetFlag(carryFlag))
		assert.False(t, c.isSetFlag(subFlag))
		assert.False(t, c.isSetFlag(halfCarryFlag))

		c.resetFlag(zeroFlag)
		assert.False(t, c.isSetFlag(zeroFlag))
		assert.True(t, c.isSetFlag(carryFlag))
	})

	t.Run("setFlagToCondition", func(t *testing.T) {
		c := &CPU{}
		c.setFlagToCondition(zeroFlag, true)
		assert.True(t, c.isSetFlag(zeroFlag))

		c.setFlagToCondition(zeroFlag, false)
		assert.False(t, c.isSetFlag(zeroFlag))
	})

	t.Run("flagToBit", func(t *testing.T) {
		c := &CPU{}
		assert.Equal(t, uint8(0), c.flagToBit(carryFlag))

		c.setFlag(carryFlag)
		assert.Equal(t, uint8(1), c.flagToBit(carryFlag))
	})
}
