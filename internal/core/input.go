package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionFlap           // Space, W, Up - boost the flyer
	ActionRestart        // R, Enter - restart after a loss
	ActionPause          // P - pause/unpause game
	ActionDebug          // D - toggle collider overlay
	ActionBack           // B, Escape - leave the game
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionDebug:
		return "Debug"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were held or triggered during this frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// EdgeDetector turns per-frame "held" state into "just pressed" edges.
// An action fires on the first frame it is held and not again until it has
// been released for at least one frame.
type EdgeDetector struct {
	prev map[Action]bool
}

// NewEdgeDetector creates a detector with nothing held.
func NewEdgeDetector() *EdgeDetector {
	return &EdgeDetector{prev: make(map[Action]bool)}
}

// Update compares held against the previous frame and returns the actions
// that transitioned from released to held.
func (e *EdgeDetector) Update(held InputFrame) InputFrame {
	if e.prev == nil {
		e.prev = make(map[Action]bool)
	}

	pressed := NewInputFrame()
	for a, down := range held.Actions {
		if down && !e.prev[a] {
			pressed.Set(a)
		}
	}

	for a := range e.prev {
		delete(e.prev, a)
	}
	for a, down := range held.Actions {
		if down {
			e.prev[a] = true
		}
	}
	return pressed
}

// Reset forgets all held state.
func (e *EdgeDetector) Reset() {
	for a := range e.prev {
		delete(e.prev, a)
	}
}
