package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"
	jeebie "github.com/dmgcore/core"
	"github.com/dmgcore/core/render"
	"github.com/dmgcore/core/timing"
)

func main() {
	app := cli.NewApp()
	app.Name = "dmgcore"
	app.Description = "A Game Boy (DMG) emulator core"
	app.Usage = "dmgcore [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.StringFlag{
			Name:  "boot",
			Usage: "Path to a 256-byte DMG boot ROM image to run before cartridge code (optional)",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without a graphical interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.BoolFlag{
			Name:  "test-pattern",
			Usage: "Display a test pattern instead of emulation (for debugging display)",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.StringFlag{
			Name:  "frame-limiter",
			Usage: "Frame pacing strategy for interactive mode: adaptive (default) or ticker",
			Value: "adaptive",
		},
	}
	app.Action = runEmulator

	if err := app.Run(os.Args); err != nil {
		slog.Error("error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	if c.Bool("test-pattern") {
		slog.Info("running in test pattern mode")
		return render.RunTestPattern()
	}

	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	if c.Bool("headless") {
		return runHeadless(romPath, c.String("boot"), c.Int("frames"), c.Int("snapshot-interval"), c.String("snapshot-dir"))
	}

	emu, err := jeebie.NewWithFile(romPath)
	if err != nil {
		return err
	}
	if err := loadBootROM(emu, c.String("boot")); err != nil {
		return err
	}

	var renderer *render.TerminalRenderer
	switch c.String("frame-limiter") {
	case "ticker":
		renderer, err = render.NewTerminalRendererWithLimiter(emu, timing.NewTickerLimiter())
	case "adaptive", "":
		renderer, err = render.NewTerminalRenderer(emu)
	default:
		return fmt.Errorf("unknown frame-limiter %q (want adaptive or ticker)", c.String("frame-limiter"))
	}
	if err != nil {
		return err
	}
	return renderer.Run()
}

// loadBootROM reads bootPath, if given, and installs it on emu. A path of ""
// is a no-op: the emulator starts straight from post-boot register state.
func loadBootROM(emu *jeebie.Emulator, bootPath string) error {
	if bootPath == "" {
		return nil
	}
	data, err := os.ReadFile(bootPath)
	if err != nil {
		return fmt.Errorf("failed to read boot ROM: %v", err)
	}
	emu.LoadBootROM(data)
	return nil
}

func runHeadless(romPath, bootPath string, frames, snapshotInterval int, snapshotDir string) error {
	if frames <= 0 {
		return errors.New("headless mode requires --frames option with a positive value")
	}

	if snapshotInterval > 0 {
		if snapshotDir == "" {
			tempDir, err := os.MkdirTemp("", "dmgcore-snapshots-*")
			if err != nil {
				return fmt.Errorf("failed to create snapshot directory: %v", err)
			}
			snapshotDir = tempDir
		} else if err := os.MkdirAll(snapshotDir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %v", err)
		}
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(handler))

	romName := filepath.Base(romPath)
	romName = strings.TrimSuffix(romName, filepath.Ext(romName))

	slog.Info("running headless mode", "frames", frames, "snapshot_interval", snapshotInterval, "snapshot_dir", snapshotDir)

	emu, err := jeebie.NewWithFile(romPath)
	if err != nil {
		return err
	}
	if err := loadBootROM(emu, bootPath); err != nil {
		return err
	}

	// Headless mode runs as fast as possible: no pacing, so NewNoOpLimiter
	// stands in for the wall-clock limiter the interactive renderer uses.
	limiter := timing.NewNoOpLimiter()

	for i := 0; i < frames; i++ {
		emu.RunUntilFrame()
		limiter.WaitForNextFrame()

		if snapshotInterval > 0 && (i+1)%snapshotInterval == 0 {
			snapshotPath := filepath.Join(snapshotDir, fmt.Sprintf("%s_frame_%d.txt", romName, i+1))
			if err := saveFrameSnapshot(emu, snapshotPath); err != nil {
				slog.Error("failed to save snapshot", "frame", i+1, "path", snapshotPath, "error", err)
			} else {
				slog.Info("saved frame snapshot", "frame", i+1, "path", snapshotPath)
			}
		}

		if i%10 == 0 {
			slog.Info("frame progress", "completed", i+1, "total", frames)
		}
	}

	slog.Info("headless execution completed", "frames", frames)
	return nil
}

// saveFrameSnapshot writes the current frame as a half-block text rendering.
func saveFrameSnapshot(emu *jeebie.Emulator, filename string) error {
	fb := emu.GetCurrentFrame()
	frame := fb.ToSlice()

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %v", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "# Game Boy Frame Snapshot (Half-Block Rendering)\n")
	fmt.Fprintf(file, "# Frame: %d\n", emu.GetFrameCount())
	fmt.Fprintf(file, "# Resolution: 160x144 pixels -> 160x72 text rows\n")
	fmt.Fprintf(file, "#\n")

	for _, line := range render.RenderFrameToHalfBlocks(frame, 160, 144) {
		fmt.Fprintf(file, "%s\n", line)
	}

	return nil
}
