package replay

import (
	"sync"

	"github.com/vovakirdan/skygate/internal/config"
	"github.com/vovakirdan/skygate/internal/core"
)

// Recorder accumulates inputs as they are fed to a game.
// It is safe for concurrent use.
type Recorder struct {
	mu sync.Mutex
	r  Replay
}

// NewRecorder starts a recording for a game run with the given seed and tuning.
// A non-positive tick rate is recorded as the platform default, which is
// the rate the game actually runs at.
func NewRecorder(gameID string, rc core.RuntimeConfig, preset string, cfg config.FlappyConfig) *Recorder {
	if rc.TickRate <= 0 {
		rc.TickRate = core.DefaultConfig().TickRate
	}
	return &Recorder{r: Replay{
		GameID:   gameID,
		Seed:     rc.Seed,
		TickRate: rc.TickRate,
		Preset:   preset,
		Config:   cfg,
	}}
}

// Record appends one tick.
func (rec *Recorder) Record(in core.InputFrame) {
	m := MaskOf(in)

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if n := len(rec.r.Inputs); n > 0 && rec.r.Inputs[n-1].Mask == m {
		rec.r.Inputs[n-1].Count++
		return
	}
	rec.r.Inputs = append(rec.r.Inputs, Run{Mask: m, Count: 1})
}

// Ticks returns the number of recorded ticks.
func (rec *Recorder) Ticks() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.r.Ticks()
}

// Replay returns a copy of the recording so far.
func (rec *Recorder) Replay() *Replay {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	out := rec.r
	out.Inputs = append([]Run(nil), rec.r.Inputs...)
	return &out
}
