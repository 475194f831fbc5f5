package cpu

import "github.com/dmgcore/core/bit"

func (c *CPU) pushStack(r uint16) {
	c.sp--
	c.bus.Write(c.sp, bit.High(r))
	c.sp--
	c.bus.Write(c.sp, bit.Low(r))
}

func (c *CPU) popStack() uint16 {
	low := c.bus.Read(c.sp)
	c.sp++
	high := c.bus.Read(c.sp)
	c.sp++

	return bit.Combine(high, low)
}

// readImmediate reads the byte at pc and advances pc past it.
func (c *CPU) readImmediate() uint8 {
	value := c.bus.Read(c.pc)
	c.pc++
	return value
}

// readImmediateWord reads the 16 bit little-endian value at pc and advances
// pc past both bytes.
func (c *CPU) readImmediateWord() uint16 {
	low := c.bus.Read(c.pc)
	high := c.bus.Read(c.pc + 1)
	c.pc += 2
	return bit.Combine(high, low)
}

func (c *CPU) readSignedImmediate() int8 {
	return int8(c.readImmediate())
}

func (c *CPU) inc(r *uint8) {
	*r++
	value := *r

	c.setFlagToCondition(zeroFlag, value == 0)
	c.setFlagToCondition(halfCarryFlag, (value&0xF) == 0x0)
	c.resetFlag(subFlag)
}

func (c *CPU) dec(r *uint8) {
	*r--
	value := *r

	c.setFlagToCondition(zeroFlag, value == 0)
	c.setFlagToCondition(halfCarryFlag, (value&0xF) == 0xF)
	c.setFlag(subFlag)
}

// rlc, rl, rrc and rr are shared by the accumulator-only opcodes
// (RLCA/RLA/RRCA/RRA) and the CB-prefixed per-register forms. Real hardware
// always clears Z for the accumulator-only forms regardless of the result;
// the register operand identifies which case applies.
func (c *CPU) rlc(r *uint8) {
	value := *r
	carry := value > 0x7F
	result := (value << 1) | (value >> 7)
	*r = result

	c.setFlagToCondition(zeroFlag, result == 0 && r != &c.a)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)
}

func (c *CPU) rl(r *uint8) {
	value := *r
	carryIn := c.flagToBit(carryFlag)
	carryOut := value > 0x7F
	result := (value << 1) | carryIn
	*r = result

	c.setFlagToCondition(zeroFlag, result == 0 && r != &c.a)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carryOut)
}

func (c *CPU) rrc(r *uint8) {
	value := *r
	carry := value&1 == 1
	result := (value >> 1) | ((value & 1) << 7)
	*r = result

	c.setFlagToCondition(zeroFlag, result == 0 && r != &c.a)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)
}

func (c *CPU) rr(r *uint8) {
	value := *r
	carryIn := c.flagToBit(carryFlag) << 7
	carryOut := value&1 == 1
	result := (value >> 1) | carryIn
	*r = result

	c.setFlagToCondition(zeroFlag, result == 0 && r != &c.a)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carryOut)
}

// sla, sra, srl and swap only exist as CB-prefixed per-register forms, so
// unlike the rotates above they always set Z from the result.
func (c *CPU) sla(r *uint8) {
	value := *r
	carry := value > 0x7F
	result := value << 1
	*r = result

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)
}

func (c *CPU) sra(r *uint8) {
	value := *r
	carry := value&1 == 1
	result := (value >> 1) | (value & 0x80)
	*r = result

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)
}

func (c *CPU) srl(r *uint8) {
	value := *r
	carry := value&1 == 1
	result := value >> 1
	*r = result

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)
}

func (c *CPU) swap(r *uint8) {
	value := *r
	result := (value << 4) | (value >> 4)
	*r = result

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

// bit tests bit index of value without modifying it.
func (c *CPU) bit(index uint8, value uint8) {
	c.setFlagToCondition(zeroFlag, value&(1<<index) == 0)
	c.resetFlag(subFlag)
	c.setFlag(halfCarryFlag)
}

func (c *CPU) set(index uint8, r *uint8) {
	*r |= 1 << index
}

func (c *CPU) res(index uint8, r *uint8) {
	*r &^= 1 << index
}

// addToA adds value to the accumulator, setting all relevant flags.
func (c *CPU) addToA(value uint8) {
	a := c.a
	result := a + value

	carry := (uint16(a) + uint16(value)) > 0xFF
	halfCarry := (a&0xF)+(value&0xF) > 0xF

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(carryFlag, carry)
	c.setFlagToCondition(halfCarryFlag, halfCarry)

	c.a = result
}

// adc adds value and the carry flag to the accumulator.
func (c *CPU) adc(value uint8) {
	a := c.a
	carryIn := c.flagToBit(carryFlag)
	full := uint16(a) + uint16(value) + uint16(carryIn)
	result := uint8(full)
	halfCarry := (a&0xF)+(value&0xF)+carryIn > 0xF

	c.a = result

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(carryFlag, full > 0xFF)
	c.setFlagToCondition(halfCarryFlag, halfCarry)
}

// addToHL adds reg to HL, setting all flags except Zero.
func (c *CPU) addToHL(reg uint16) {
	hl := bit.Combine(c.h, c.l)
	result := hl + reg

	carry := (uint32(hl) + uint32(reg)) > 0xFFFF
	halfCarry := (hl&0xFFF)+(reg&0xFFF) > 0xFFF

	c.resetFlag(subFlag)
	c.setFlagToCondition(carryFlag, carry)
	c.setFlagToCondition(halfCarryFlag, halfCarry)

	c.h = bit.High(result)
	c.l = bit.Low(result)
}

// sub subtracts value from the accumulator, setting all relevant flags.
func (c *CPU) sub(value uint8) {
	a := c.a
	c.a = a - value

	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(carryFlag, a < value)
	c.setFlagToCondition(halfCarryFlag, (int(a)&0xF)-(int(value)&0xF) < 0)
}

// sbc subtracts value and the carry flag from the accumulator.
func (c *CPU) sbc(value uint8) {
	a := c.a
	carry := 0
	if c.isSetFlag(carryFlag) {
		carry = 1
	}

	result := int(c.a) - int(value) - carry
	c.a = uint8(result)

	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(carryFlag, result < 0)
	c.setFlagToCondition(halfCarryFlag, (int(a)&0xF)-(int(value)&0xF)-carry < 0)
}

func (c *CPU) and(value uint8) {
	c.a &= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.setFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) or(value uint8) {
	c.a |= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.resetFlag(carryFlag)
	c.resetFlag(halfCarryFlag)
}

func (c *CPU) xor(value uint8) {
	c.a ^= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.resetFlag(carryFlag)
	c.resetFlag(halfCarryFlag)
}

// cp compares value against the accumulator (a subtraction that discards
// its result), setting flags only.
func (c *CPU) cp(value uint8) {
	a := c.a
	result := a - value

	c.setFlagToCondition(zeroFlag, result == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(carryFlag, a < value)
	c.setFlagToCondition(halfCarryFlag, (int(a)&0xF)-(int(value)&0xF) < 0)
}

// daa adjusts A into packed BCD form after an 8 bit ADD/ADC/SUB/SBC, per the
// sign of the Subtract flag left over from that instruction.
func (c *CPU) daa() {
	a := c.a
	adjust := uint8(0)
	carry := c.isSetFlag(carryFlag)

	if c.isSetFlag(subFlag) {
		if c.isSetFlag(halfCarryFlag) {
			adjust |= 0x06
		}
		if carry {
			adjust |= 0x60
		}
		a -= adjust
	} else {
		if c.isSetFlag(halfCarryFlag) || (a&0xF) > 0x9 {
			adjust |= 0x06
		}
		if carry || a > 0x99 {
			adjust |= 0x60
			carry = true
		}
		a += adjust
	}

	c.a = a
	c.setFlagToCondition(zeroFlag, a == 0)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)
}

// jr performs a relative jump using the signed immediate byte following the
// opcode, consuming it from the instruction stream.
func (c *CPU) jr() {
	offset := c.readSignedImmediate()
	c.pc = uint16(int32(c.pc) + int32(offset))
}

// jp performs an absolute jump to the 16 bit immediate word following the
// opcode.
func (c *CPU) jp() {
	c.pc = c.readImmediateWord()
}
