package jeebie

import (
	"log/slog"
	"os"

	"github.com/dmgcore/core/cpu"
	"github.com/dmgcore/core/memory"
	"github.com/dmgcore/core/video"
)

// cyclesPerFrame is the number of T-cycles the DMG executes per video frame
// at its native refresh rate (154 scanlines * 456 cycles/line).
const cyclesPerFrame = 70224

// Emulator is the root struct and entry point for running the emulation. It
// owns the CPU, MMU and GPU and drives them together one frame at a time;
// the MMU's own Tick already advances the timer and serial port per CPU
// step, so RunUntilFrame only needs to additionally tick the GPU and APU.
type Emulator struct {
	cpu *cpu.CPU
	gpu *video.GPU
	mem *memory.MMU

	frameCount uint64
}

func (e *Emulator) init(mem *memory.MMU) {
	e.cpu = cpu.New(mem)
	e.gpu = video.NewGpu(mem)
	e.mem = mem
}

// New creates a new emulator instance with no cartridge loaded.
func New() *Emulator {
	e := &Emulator{}
	e.init(memory.NewWithCartridge(memory.NewCartridge()))

	return e
}

// NewWithFile creates a new emulator instance and loads the ROM at path into it.
func NewWithFile(path string) (*Emulator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cart, err := memory.NewCartridgeWithData(data)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded ROM data", "size", len(data))

	e := &Emulator{}
	e.init(memory.NewWithCartridge(cart))

	return e, nil
}

// LoadBootROM installs bootData as the boot ROM overlay and, if it was
// accepted (exactly 256 bytes), rewinds the CPU to the hardware reset vector
// so the boot ROM runs from 0x0000 instead of the post-boot state New left
// it in. A rejected image (wrong size) leaves the emulator running from
// cartridge code at 0x0100 as if LoadBootROM had not been called.
func (e *Emulator) LoadBootROM(bootData []byte) {
	if e.mem.LoadBootROM(bootData) {
		e.cpu = cpu.NewAtResetVector(e.mem)
	}
}

// RunUntilFrame steps the CPU, GPU and APU together until a full video
// frame's worth of cycles has elapsed.
func (e *Emulator) RunUntilFrame() {
	total := 0
	for total < cyclesPerFrame {
		cycles := e.cpu.Step()
		e.gpu.Tick(cycles)
		e.mem.APU.Tick(cycles)
		total += cycles
	}

	e.frameCount++
	if e.frameCount%60 == 0 {
		slog.Debug("frame completed", "frame", e.frameCount)
	}
}

func (e *Emulator) GetCurrentFrame() *video.FrameBuffer {
	return e.gpu.GetFrameBuffer()
}

func (e *Emulator) HandleKeyPress(key memory.JoypadKey) {
	e.mem.HandleKeyPress(key)
}

func (e *Emulator) HandleKeyRelease(key memory.JoypadKey) {
	e.mem.HandleKeyRelease(key)
}

func (e *Emulator) GetMMU() *memory.MMU {
	return e.mem
}

func (e *Emulator) GetFrameCount() uint64 {
	return e.frameCount
}
