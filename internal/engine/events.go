package engine

// Event is something a tick reports to collaborators.
type Event interface {
	engineEvent()
}

// ScoreChanged is emitted whenever the score mutates, including the reset to
// zero on restart.
type ScoreChanged struct {
	Score int
}

func (ScoreChanged) engineEvent() {}

// GateSpawned is emitted for every new gate pair.
type GateSpawned struct {
	Floor   EntityID
	Ceiling EntityID
}

func (GateSpawned) engineEvent() {}

// GateRetired is emitted when a gate leaves the field.
type GateRetired struct {
	ID EntityID
}

func (GateRetired) engineEvent() {}

// Lost is emitted on the Playing -> Loss transition.
type Lost struct {
	Tick  uint64
	Score int
	Hits  int // Gates overlapped on the losing tick
}

func (Lost) engineEvent() {}

// Restarted is emitted on the Loss -> Playing transition.
type Restarted struct{}

func (Restarted) engineEvent() {}
