package input

import (
	"time"

	"github.com/dmgcore/core/input/action"
	"github.com/dmgcore/core/input/event"
	"github.com/dmgcore/core/memory"
)

const (
	// debounceDuration is the minimum time between debounced events
	debounceDuration = 300 * time.Millisecond
)

// Manager handles input actions and their associated callbacks
type Manager struct {
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]map[event.Type]time.Time
	mmu           *memory.MMU
}

func NewManager(mmu *memory.MMU) *Manager {
	return &Manager{
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]map[event.Type]time.Time),
		mmu:           mmu,
	}
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	if m.lastTriggered[act] == nil {
		m.lastTriggered[act] = make(map[event.Type]time.Time)
	}

	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type. Game Boy hardware
// buttons bypass debouncing entirely: the DMG joypad is driven by raw
// press/release state, and a player holding or rapidly tapping a button is
// normal input, not a duplicate event to suppress.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	// GB controls, written directly to the joypad register via the MMU
	if m.mmu != nil {
		if joypadKey, ok := m.getJoypadKey(act); ok {
			switch evt {
			case event.Press:
				m.mmu.HandleKeyPress(joypadKey)
			case event.Release:
				m.mmu.HandleKeyRelease(joypadKey)
			}
			return
		}
	}

	// Debounce Press and Release events for non-hardware actions
	if evt == event.Press || evt == event.Release {
		now := time.Now()
		if m.lastTriggered[act] == nil {
			m.lastTriggered[act] = make(map[event.Type]time.Time)
		}
		lastTime := m.lastTriggered[act][evt]
		if now.Sub(lastTime) < debounceDuration {
			return
		}
		m.lastTriggered[act][evt] = now
	}

	// Other emulator actions
	if m.handlers[act] != nil && len(m.handlers[act][evt]) > 0 {
		for _, callback := range m.handlers[act][evt] {
			callback()
		}
	}
}

// getJoypadKey maps Game Boy actions to joypad keys. ok is false for actions
// that don't correspond to a hardware button (JoypadRight is a valid key
// with a zero value, so a bare zero return can't signal "not mapped").
func (m *Manager) getJoypadKey(act action.Action) (key memory.JoypadKey, ok bool) {
	switch act {
	case action.GBButtonA:
		return memory.JoypadA, true
	case action.GBButtonB:
		return memory.JoypadB, true
	case action.GBButtonStart:
		return memory.JoypadStart, true
	case action.GBButtonSelect:
		return memory.JoypadSelect, true
	case action.GBDPadUp:
		return memory.JoypadUp, true
	case action.GBDPadDown:
		return memory.JoypadDown, true
	case action.GBDPadLeft:
		return memory.JoypadLeft, true
	case action.GBDPadRight:
		return memory.JoypadRight, true
	default:
		return 0, false
	}
}
