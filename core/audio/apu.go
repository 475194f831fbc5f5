package audio

import (
	"github.com/dmgcore/core/addr"
	"github.com/dmgcore/core/bit"
)

// APU is the Audio Processing Unit register file of a DMG Game Boy. No
// channel synthesis, mixing or audio backend is implemented here: software
// that probes 0xFF10-0xFF3F sees correctly-shaped, read/write register
// storage with the documented write-only and unused-bit masks, but the
// registers never drive a sample generator.
type APU struct {
	enabled bool

	NR10, NR11, NR12, NR13, NR14 uint8 // Channel 1
	NR21, NR22, NR23, NR24       uint8 // Channel 2
	NR30, NR31, NR32, NR33, NR34 uint8 // Channel 3
	NR41, NR42, NR43, NR44       uint8 // Channel 4
	NR50, NR51, NR52             uint8 // Global controls
	waveRAM                      [waveRAMSize]uint8
}

func New() *APU {
	return &APU{}
}

// Tick is a no-op: the APU carries no cycle-driven synthesis state.
func (a *APU) Tick(cycles int) {}

// ReadRegister reads an audio register, applying the unused/write-only bit
// masks documented for each NRxx register.
func (a *APU) ReadRegister(address uint16) uint8 {
	switch address {
	case addr.NR10:
		return a.NR10 | 0b1000_0000
	case addr.NR11:
		return a.NR11 | 0b0011_1111
	case addr.NR12:
		return a.NR12
	case addr.NR13:
		return 0xFF // write-only reg
	case addr.NR14:
		return a.NR14 | 0b1011_1111
	case addr.NR21:
		return a.NR21 | 0b0011_1111
	case addr.NR22:
		return a.NR22
	case addr.NR23:
		return 0xFF // write-only reg
	case addr.NR24:
		return a.NR24 | 0b1011_1111
	case addr.NR30:
		return a.NR30 | 0b0111_1111
	case addr.NR31:
		return 0xFF // write-only reg
	case addr.NR32:
		return a.NR32 | 0b1001_1111
	case addr.NR33:
		return 0xFF // write-only reg
	case addr.NR34:
		return a.NR34 | 0b1011_1111
	case addr.NR41:
		return 0xFF // write-only reg
	case addr.NR42:
		return a.NR42
	case addr.NR43:
		return a.NR43
	case addr.NR44:
		return a.NR44 | 0b1011_1111
	case addr.NR50:
		return a.NR50
	case addr.NR51:
		return a.NR51
	case addr.NR52:
		// bit 7 = power, bits 6-4 always 1, bits 3-0 = channel active status.
		// No channel is ever synthesized here, so the status bits always read 0.
		status := uint8(0b0111_0000)
		if a.enabled {
			status = bit.Set(7, status)
		}
		return status
	}
	if address >= addr.WaveRAMStart && address <= addr.WaveRAMEnd {
		return a.waveRAM[address-addr.WaveRAMStart]
	}
	return 0xFF
}

// WriteRegister stores value into the addressed register. Per real hardware,
// writes to registers other than NR52 and wave RAM are ignored while the APU
// is powered off.
func (a *APU) WriteRegister(address uint16, value uint8) {
	isInWaveRAM := address >= addr.WaveRAMStart && address <= addr.WaveRAMEnd

	if !a.enabled && address != addr.NR52 && !isInWaveRAM {
		return
	}

	switch address {
	case addr.NR10:
		a.NR10 = value
	case addr.NR11:
		a.NR11 = value
	case addr.NR12:
		a.NR12 = value
	case addr.NR13:
		a.NR13 = value
	case addr.NR14:
		a.NR14 = value
	case addr.NR21:
		a.NR21 = value
	case addr.NR22:
		a.NR22 = value
	case addr.NR23:
		a.NR23 = value
	case addr.NR24:
		a.NR24 = value
	case addr.NR30:
		a.NR30 = value
	case addr.NR31:
		a.NR31 = value
	case addr.NR32:
		a.NR32 = value
	case addr.NR33:
		a.NR33 = value
	case addr.NR34:
		a.NR34 = value
	case addr.NR41:
		a.NR41 = value
	case addr.NR42:
		a.NR42 = value
	case addr.NR43:
		a.NR43 = value
	case addr.NR44:
		a.NR44 = value
	case addr.NR50:
		a.NR50 = value
	case addr.NR51:
		a.NR51 = value
	case addr.NR52:
		a.NR52 = value
		a.enabled = bit.IsSet(7, value)
		if !a.enabled {
			// Per Pan Docs: powering off clears every register except NR52 and wave RAM.
			a.NR10, a.NR11, a.NR12, a.NR13, a.NR14 = 0, 0, 0, 0, 0
			a.NR21, a.NR22, a.NR23, a.NR24 = 0, 0, 0, 0
			a.NR30, a.NR31, a.NR32, a.NR33, a.NR34 = 0, 0, 0, 0, 0
			a.NR41, a.NR42, a.NR43, a.NR44 = 0, 0, 0, 0
			a.NR50, a.NR51 = 0, 0
		}
	}

	if isInWaveRAM {
		a.waveRAM[address-addr.WaveRAMStart] = value
	}
}
