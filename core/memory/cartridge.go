package memory

import (
	"fmt"
	"strings"
)

const titleLength = 11

const (
	entryPointAddress       = 0x100
	logoAddress             = 0x104
	titleAddress            = 0x134
	manufacturerCodeAddress = 0x13F
	cgbFlagAddress          = 0x143
	newLicenseCodeAddress   = 0x144
	sgbFlagAddress          = 0x146
	cartridgeTypeAddress    = 0x147
	romSizeAddress          = 0x148
	ramSizeAddress          = 0x149
	destinationCodeAddress  = 0x14A
	oldLicenseCodeAddress   = 0x14B
	versionNumberAddress    = 0x14C
	headerChecksumAddress   = 0x14D
	globalChecksumAddress   = 0x14E
)

// minROMSize is the smallest cartridge hardware can produce: a single 32KiB
// bank with no banking at all.
const minROMSize = 0x8000

// MBCType identifies which banking chip (if any) a cartridge header declares.
type MBCType uint8

const (
	NoMBCType MBCType = iota
	MBC1Type
	MBC1MultiType
	MBC2Type
	MBC3Type
	MBC5Type
	MBCUnknownType
)

// Cartridge holds raw ROM data plus the header fields needed to pick and
// configure an MBC implementation.
type Cartridge struct {
	data           []byte
	title          string
	headerChecksum uint16
	globalChecksum uint16
	version        uint8
	cartType       uint8
	romSize        uint8
	ramSize        uint8

	mbcType      MBCType
	hasBattery   bool
	hasRTC       bool
	hasRumble    bool
	ramBankCount uint8
}

// NewCartridge creates an empty cartridge, useful only for debugging purposes.
func NewCartridge() *Cartridge {
	return &Cartridge{
		data:    make([]byte, 0x10000),
		mbcType: NoMBCType,
	}
}

// NewCartridgeWithData initializes a new Cartridge from a slice of bytes,
// parsing its header to determine title, banking chip and RAM layout.
// Returns an error if the ROM is smaller than a single 32KiB bank.
func NewCartridgeWithData(bytes []byte) (*Cartridge, error) {
	if len(bytes) < minROMSize {
		return nil, fmt.Errorf("cartridge ROM too small: got %d bytes, need at least %d", len(bytes), minROMSize)
	}

	cart := &Cartridge{
		data:           make([]byte, len(bytes)),
		title:          cleanGameboyTitle(bytes[titleAddress : titleAddress+titleLength]),
		headerChecksum: combineBytes(bytes[headerChecksumAddress], bytes[headerChecksumAddress+1]),
		globalChecksum: combineBytes(bytes[globalChecksumAddress], bytes[globalChecksumAddress+1]),
		version:        bytes[versionNumberAddress],
		cartType:       bytes[cartridgeTypeAddress],
		romSize:        bytes[romSizeAddress],
		ramSize:        bytes[ramSizeAddress],
	}
	copy(cart.data, bytes)

	cart.mbcType, cart.hasBattery, cart.hasRTC, cart.hasRumble = classifyCartType(cart.cartType)
	cart.ramBankCount = ramBankCountFor(cart.ramSize)

	return cart, nil
}

// classifyCartType maps the cartridge-type header byte (0x147) to an MBC
// family and its auxiliary hardware flags, per the values real boards use.
func classifyCartType(cartType uint8) (mbc MBCType, hasBattery, hasRTC, hasRumble bool) {
	switch cartType {
	case 0x00, 0x08, 0x09:
		return NoMBCType, cartType == 0x09, false, false
	case 0x01, 0x02:
		return MBC1Type, false, false, false
	case 0x03:
		return MBC1Type, true, false, false
	case 0x05:
		return MBC2Type, false, false, false
	case 0x06:
		return MBC2Type, true, false, false
	case 0x0F, 0x10:
		return MBC3Type, true, true, false
	case 0x11, 0x12:
		return MBC3Type, false, false, false
	case 0x13:
		return MBC3Type, true, false, false
	case 0x19, 0x1A:
		return MBC5Type, false, false, false
	case 0x1B:
		return MBC5Type, true, false, false
	case 0x1C, 0x1D:
		return MBC5Type, false, false, true
	case 0x1E:
		return MBC5Type, true, false, true
	default:
		return MBCUnknownType, false, false, false
	}
}

// ramBankCountFor maps the RAM-size header byte (0x149) to a count of
// 8KiB banks.
func ramBankCountFor(ramSize uint8) uint8 {
	switch ramSize {
	case 0x00:
		return 0
	case 0x02:
		return 1
	case 0x03:
		return 4
	case 0x04:
		return 16
	case 0x05:
		return 8
	default:
		return 0
	}
}

// combineBytes combines two bytes into a 16 bit value, high then low, matching
// how multi-byte header fields are laid out (low byte at the lower address).
func combineBytes(low, high uint8) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// cleanGameboyTitle converts a raw header title field into a printable string:
// null bytes become spaces, other non-printable bytes become '?', and the
// result is trimmed. An empty result falls back to a placeholder.
func cleanGameboyTitle(titleBytes []byte) string {
	runes := make([]byte, len(titleBytes))
	for i, b := range titleBytes {
		switch {
		case b == 0x00:
			runes[i] = ' '
		case b < 0x20 || b > 0x7E:
			runes[i] = '?'
		default:
			runes[i] = b
		}
	}
	title := strings.TrimSpace(string(runes))
	if title == "" {
		return "(Untitled)"
	}
	return title
}

// ReadByte reads a byte at the specified address. Does not check bounds, so the caller must make sure the
// address is valid for the cartridge.
func (c Cartridge) ReadByte(addr uint16) uint8 {
	return c.data[addr]
}

// WriteByte writes a byte directly into cartridge-backed storage. Only used
// for the no-cartridge debugging path; real ROM/RAM access goes through the MBC.
func (c Cartridge) WriteByte(addr uint16, value uint8) uint8 {
	c.data[addr] = value
	return value
}
