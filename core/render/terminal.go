package render

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	jeebie "github.com/dmgcore/core"
	"github.com/dmgcore/core/input"
	"github.com/dmgcore/core/input/action"
	"github.com/dmgcore/core/input/event"
	"github.com/dmgcore/core/timing"
)

const (
	width  = 160
	height = 144

	textHeight   = height / 2 // two pixel rows packed per half-block character
	minTermWidth = width + 2
)

// TerminalRenderer draws the Game Boy screen to a terminal using tcell and
// pumps keyboard input into the emulated joypad.
type TerminalRenderer struct {
	screen   tcell.Screen
	emulator *jeebie.Emulator
	input    *input.Manager
	limiter  timing.Limiter
	running  bool
}

// NewTerminalRenderer builds a renderer paced by timing.AdaptiveLimiter.
func NewTerminalRenderer(emu *jeebie.Emulator) (*TerminalRenderer, error) {
	return newTerminalRenderer(emu, timing.NewAdaptiveLimiter())
}

// NewTerminalRendererWithLimiter builds a renderer paced by the given
// timing.Limiter, e.g. timing.NewTickerLimiter() for simple fixed-tick
// pacing instead of the default drift-correcting adaptive limiter.
func NewTerminalRendererWithLimiter(emu *jeebie.Emulator, limiter timing.Limiter) (*TerminalRenderer, error) {
	return newTerminalRenderer(emu, limiter)
}

func newTerminalRenderer(emu *jeebie.Emulator, limiter timing.Limiter) (*TerminalRenderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}

	slog.Info("terminal renderer initialized")

	t := &TerminalRenderer{
		screen:   screen,
		emulator: emu,
		input:    input.NewManager(emu.GetMMU()),
		limiter:  limiter,
		running:  true,
	}
	t.input.On(action.EmulatorQuit, event.Press, func() { t.running = false })

	return t, nil
}

func (t *TerminalRenderer) Run() error {
	defer func() {
		slog.Info("finishing terminal")
		t.screen.Fini()
	}()

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	go t.handleInput()

	for t.running {
		select {
		case <-signals:
			t.running = false
			slog.Info("received signal to stop")
			return nil
		default:
		}

		t.emulator.RunUntilFrame()
		t.render()
		t.screen.Show()
		t.limiter.WaitForNextFrame()
	}

	return nil
}

func (t *TerminalRenderer) handleInput() {
	for t.running {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				t.running = false
				continue
			}
			if keyName, ok := keyEventName(ev); ok {
				if act, ok := input.GetDefaultMapping(keyName); ok {
					t.input.Trigger(act, event.Press)
				}
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// keyEventName maps a tcell key event to the key name strings used by
// input.DefaultKeyMap.
func keyEventName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return "Enter", true
	case tcell.KeyUp:
		return "Up", true
	case tcell.KeyDown:
		return "Down", true
	case tcell.KeyLeft:
		return "Left", true
	case tcell.KeyRight:
		return "Right", true
	case tcell.KeyEscape:
		return "Escape", true
	case tcell.KeyRune:
		return string(ev.Rune()), true
	}
	return "", false
}

func (t *TerminalRenderer) render() {
	termWidth, termHeight := t.screen.Size()

	if termWidth < minTermWidth || termHeight < textHeight {
		t.screen.Clear()
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, textHeight)
		for i, ch := range msg {
			t.screen.SetContent(i, termHeight/2, ch, nil, style)
		}
		return
	}

	t.screen.Clear()
	t.drawGameBoy()
}

func (t *TerminalRenderer) drawGameBoy() {
	frame := t.emulator.GetCurrentFrame().ToSlice()
	lines := RenderFrameToHalfBlocks(frame, width, height)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	for y, line := range lines {
		for x, ch := range line {
			t.screen.SetContent(x, y, ch, nil, style)
		}
	}
}
