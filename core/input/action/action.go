package action

// Action represents an input action that can be performed in the emulator.
type Action int

const (
	GBButtonA Action = iota
	GBButtonB
	GBButtonStart
	GBButtonSelect
	GBDPadUp
	GBDPadDown
	GBDPadLeft
	GBDPadRight
	EmulatorQuit
)

// Category represents the category of an action for routing purposes
type Category int

const (
	CategoryGameInput Category = iota // Game Boy hardware controls
	CategoryEmulator                  // Core emulator features
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Category    Category
	Debounce    bool // True if the action should only trigger once per key press
	Description string
}

var actionInfoMap = map[Action]ActionInfo{
	GBButtonA:      {Action: GBButtonA, Category: CategoryGameInput, Debounce: false, Description: "A button"},
	GBButtonB:      {Action: GBButtonB, Category: CategoryGameInput, Debounce: false, Description: "B button"},
	GBButtonStart:  {Action: GBButtonStart, Category: CategoryGameInput, Debounce: false, Description: "Start button"},
	GBButtonSelect: {Action: GBButtonSelect, Category: CategoryGameInput, Debounce: false, Description: "Select button"},
	GBDPadUp:       {Action: GBDPadUp, Category: CategoryGameInput, Debounce: false, Description: "D-Pad Up"},
	GBDPadDown:     {Action: GBDPadDown, Category: CategoryGameInput, Debounce: false, Description: "D-Pad Down"},
	GBDPadLeft:     {Action: GBDPadLeft, Category: CategoryGameInput, Debounce: false, Description: "D-Pad Left"},
	GBDPadRight:    {Action: GBDPadRight, Category: CategoryGameInput, Debounce: false, Description: "D-Pad Right"},
	EmulatorQuit:   {Action: EmulatorQuit, Category: CategoryEmulator, Debounce: true, Description: "Quit"},
}

// GetInfo returns metadata for an action
func GetInfo(a Action) ActionInfo {
	if info, ok := actionInfoMap[a]; ok {
		return info
	}
	return ActionInfo{
		Action:      a,
		Category:    CategoryEmulator,
		Debounce:    false,
		Description: "Unknown action",
	}
}
