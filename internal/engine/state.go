package engine

// GameState is the session's top-level mode.
type GameState uint8

const (
	StatePlaying GameState = iota
	StateLoss
)

func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateLoss:
		return "loss"
	default:
		return "unknown"
	}
}

// Input carries the edge-triggered events consumed by one tick.
type Input struct {
	Flap    bool
	Restart bool
}

// Banner is the loss announcement shown to the player.
type Banner struct {
	Title    string
	Subtitle string
}

func lossBanner() *Banner {
	return &Banner{
		Title:    "You lost!",
		Subtitle: "Press Enter to restart",
	}
}
