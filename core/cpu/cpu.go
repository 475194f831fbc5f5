package cpu

import (
	"github.com/dmgcore/core/addr"
	"github.com/dmgcore/core/bit"
	"github.com/dmgcore/core/memory"
)

// Flag is one of the 4 possible flags used in the flag register (high part of AF)
type Flag uint8

const (
	zeroFlag      Flag = 0x80
	subFlag       Flag = 0x40
	halfCarryFlag Flag = 0x20
	carryFlag     Flag = 0x10
)

// CPU is the main struct holding Sharp LR35902 state: the 8 single-byte
// registers, stack pointer, program counter, and the bits of control state
// (IME, EI delay, HALT and its hardware bug) that drive instruction dispatch.
type CPU struct {
	a, f uint8
	b, c uint8
	d, e uint8
	h, l uint8

	sp uint16
	pc uint16

	bus *memory.MMU

	currentOpcode uint16

	interruptsEnabled bool
	eiPending         bool
	halted            bool
	haltBug           bool
	stopped           bool

	cycles uint64
}

// New returns a CPU set to the register state a DMG has immediately after
// its internal boot ROM hands off control to cartridge code at 0x0100.
func New(bus *memory.MMU) *CPU {
	c := &CPU{bus: bus}
	c.setAF(0x01B0)
	c.setBC(0x0013)
	c.setDE(0x00D8)
	c.setHL(0x014D)
	c.sp = 0xFFFE
	c.pc = 0x100
	return c
}

// NewAtResetVector returns a CPU with every register zeroed and PC at
// 0x0000, the state a DMG's hardware reset leaves it in before its internal
// boot ROM runs. Use this instead of New when a boot ROM image has been
// loaded into the MMU's overlay: the boot ROM itself establishes New's
// post-boot register values before jumping to cartridge code at 0x0100.
func NewAtResetVector(bus *memory.MMU) *CPU {
	return &CPU{bus: bus}
}

// Cycles returns the running total of T-cycles executed since New.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Step executes exactly one instruction (servicing a pending interrupt or
// HALT wake-up first, if applicable) and returns the number of T-cycles it
// took.
func (c *CPU) Step() int {
	pending, serviced := c.handleInterrupts()

	if c.halted {
		if pending {
			c.halted = false
			// handleInterrupts has already cleared IME when it dispatched, so
			// only a wake that was not serviced (IME=0) triggers the HALT bug.
			if !serviced {
				c.haltBug = true
			}
		} else {
			c.cycles += 4
			c.bus.Tick(4)
			return 4
		}
	}

	// An interrupt was pushed and PC was set to its vector: the dispatch
	// itself took the full 20 cycles and fetches nothing this step.
	if serviced {
		return 20
	}

	op := Decode(c)
	isCB := c.currentOpcode&0xFF00 == 0xCB00

	skipAdvance := c.haltBug
	c.haltBug = false

	if !skipAdvance {
		if isCB {
			c.pc += 2
		} else {
			c.pc++
		}
	}

	cycles := op(c)
	c.cycles += uint64(cycles)

	// opcodes_cb.go self-ticks the bus as part of executing each instruction;
	// the base opcode table never does, so it's ticked once here instead.
	if !isCB {
		c.bus.Tick(cycles)
	}

	if c.eiPending {
		c.eiPending = false
		c.interruptsEnabled = true
	}

	return cycles
}

// handleInterrupts checks IF&IE for a pending, enabled interrupt and, if IME
// is set, services the highest-priority one: pushes pc, jumps to its vector,
// clears IME and the serviced IF bit. pending reports whether any interrupt
// (IF&IE) is pending, regardless of IME, since HALT wakes on a pending
// interrupt even with interrupts globally disabled. serviced reports whether
// a dispatch actually happened (pc was pushed and redirected to the vector);
// Step must return immediately without fetching when serviced is true.
func (c *CPU) handleInterrupts() (pending bool, serviced bool) {
	firing := c.bus.Read(addr.IF) & c.bus.Read(addr.IE) & 0x1F
	if firing == 0 {
		return false, false
	}

	if !c.interruptsEnabled {
		return true, false
	}

	var bitPos uint8
	var vector uint16
	switch {
	case bit.IsSet(0, firing):
		bitPos, vector = 0, 0x40
	case bit.IsSet(1, firing):
		bitPos, vector = 1, 0x48
	case bit.IsSet(2, firing):
		bitPos, vector = 2, 0x50
	case bit.IsSet(3, firing):
		bitPos, vector = 3, 0x58
	default:
		bitPos, vector = 4, 0x60
	}

	c.interruptsEnabled = false
	c.bus.Write(addr.IF, bit.Reset(bitPos, c.bus.Read(addr.IF)))
	c.pushStack(c.pc)
	c.pc = vector
	c.cycles += 20
	c.bus.Tick(20)

	return true, true
}

func (c *CPU) setFlag(flag Flag) {
	c.f |= uint8(flag)
}

func (c *CPU) resetFlag(flag Flag) {
	c.f &^= uint8(flag)
}

func (c *CPU) isSetFlag(flag Flag) bool {
	return c.f&uint8(flag) != 0
}

func (c *CPU) setFlagToCondition(flag Flag, condition bool) {
	if condition {
		c.setFlag(flag)
	} else {
		c.resetFlag(flag)
	}
}

// flagToBit returns 1 if flag is set, 0 otherwise - used by RL/RR to fetch
// the incoming carry bit.
func (c *CPU) flagToBit(flag Flag) uint8 {
	if c.isSetFlag(flag) {
		return 1
	}
	return 0
}
