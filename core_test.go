package jeebie

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/dmgcore/core/addr"
	"github.com/dmgcore/core/memory"
)

func TestNew_BootsWithoutCartridge(t *testing.T) {
	e := New()
	assert.NotNil(t, e.GetCurrentFrame())
	assert.Equal(t, uint64(0), e.GetFrameCount())
}

func TestNewWithFile_RejectsUndersizedROM(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/tiny.gb"
	if err := os.WriteFile(path, make([]byte, 0x100), 0644); err != nil {
		t.Fatalf("failed to write test fixture: %v", err)
	}

	_, err := NewWithFile(path)
	assert.Error(t, err)
}

func TestRunUntilFrame_AdvancesFrameCount(t *testing.T) {
	e := New()

	e.RunUntilFrame()
	assert.Equal(t, uint64(1), e.GetFrameCount())

	e.RunUntilFrame()
	assert.Equal(t, uint64(2), e.GetFrameCount())
}

func TestHandleKeyPress_ReachesJoypadRegister(t *testing.T) {
	e := New()
	e.mem.Write(addr.P1, 0x10) // bit 5 clear: select the action buttons

	e.HandleKeyPress(memory.JoypadA)
	assert.Equal(t, byte(0x00), e.mem.Read(addr.P1)&0x01, "A pressed reads as 0")

	e.HandleKeyRelease(memory.JoypadA)
	assert.Equal(t, byte(0x01), e.mem.Read(addr.P1)&0x01, "A released reads as 1")
}

func TestLoadBootROM_RunsFromResetVector(t *testing.T) {
	e := New()

	boot := make([]byte, 256)
	boot[0] = 0x00 // NOP at the reset vector, so RunUntilFrame doesn't hit an undefined opcode
	e.LoadBootROM(boot)

	assert.Equal(t, byte(0x00), e.mem.Read(0x0000))

	// the CPU was rewound to the reset vector and executes the boot ROM's
	// NOP without panicking on an unmapped/undefined opcode
	e.RunUntilFrame()
	assert.Equal(t, uint64(1), e.GetFrameCount())
}

func TestLoadBootROM_RejectsWrongSizeImage(t *testing.T) {
	e := New()
	before := e.mem.Read(0x0000)

	e.LoadBootROM(make([]byte, 64))

	// rejected: overlay stays disabled, so the byte at 0x0000 is unchanged
	assert.Equal(t, before, e.mem.Read(0x0000))
}
