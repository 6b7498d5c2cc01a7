// Package replay records the per-tick input stream of a game and re-runs it
// deterministically. A replay stores the seed, tick rate, tuning and inputs;
// scores are recomputed on playback rather than stored.
package replay

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/skygate/internal/config"
	"github.com/vovakirdan/skygate/internal/core"
	"github.com/vovakirdan/skygate/internal/storage"
)

// ErrEmpty is returned when saving a replay with no recorded ticks.
var ErrEmpty = errors.New("replay: no ticks recorded")

// Mask is a compact set of the actions that affect the simulation.
type Mask uint8

const (
	MaskFlap Mask = 1 << iota
	MaskRestart
	MaskPause
)

var maskActions = []struct {
	bit    Mask
	action core.Action
}{
	{MaskFlap, core.ActionFlap},
	{MaskRestart, core.ActionRestart},
	{MaskPause, core.ActionPause},
}

// MaskOf keeps the recordable actions of a frame.
func MaskOf(f core.InputFrame) Mask {
	var m Mask
	for _, ma := range maskActions {
		if f.Has(ma.action) {
			m |= ma.bit
		}
	}
	return m
}

// Frame expands the mask back into an input frame.
func (m Mask) Frame() core.InputFrame {
	f := core.NewInputFrame()
	for _, ma := range maskActions {
		if m&ma.bit != 0 {
			f.Set(ma.action)
		}
	}
	return f
}

// Run is Count consecutive ticks with the same held actions.
type Run struct {
	Mask  Mask `yaml:"m"`
	Count int  `yaml:"n"`
}

// Replay is a complete recording.
type Replay struct {
	ID        int64               `yaml:"-"`
	CreatedAt time.Time           `yaml:"-"`
	GameID    string              `yaml:"game"`
	Seed      int64               `yaml:"seed"`
	TickRate  int                 `yaml:"tick_rate"`
	Preset    string              `yaml:"preset,omitempty"`
	Config    config.FlappyConfig `yaml:"config"`
	Inputs    []Run               `yaml:"inputs,flow"`
}

// Ticks returns the number of recorded ticks.
func (r *Replay) Ticks() int {
	n := 0
	for _, run := range r.Inputs {
		n += run.Count
	}
	return n
}

// Runtime returns the platform configuration the recording was made with.
// Screen size does not influence the simulation.
func (r *Replay) Runtime() core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.TickRate = r.TickRate
	rc.Seed = r.Seed
	return rc
}

// Cursor returns a reader positioned at the first tick.
func (r *Replay) Cursor() *Cursor {
	return &Cursor{runs: r.Inputs}
}

// Cursor walks a replay tick by tick.
type Cursor struct {
	runs []Run
	run  int
	used int
	tick int
}

// Next returns the next tick's input, or false when the replay is exhausted.
func (c *Cursor) Next() (core.InputFrame, bool) {
	for c.run < len(c.runs) && c.used >= c.runs[c.run].Count {
		c.run++
		c.used = 0
	}
	if c.run >= len(c.runs) {
		return core.InputFrame{}, false
	}
	c.used++
	c.tick++
	return c.runs[c.run].Mask.Frame(), true
}

// Tick returns how many ticks have been read.
func (c *Cursor) Tick() int { return c.tick }

// Marshal encodes the replay payload.
func Marshal(r *Replay) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a replay payload.
func Unmarshal(data []byte) (*Replay, error) {
	r := &Replay{Config: config.DefaultFlappyConfig()}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	for i, run := range r.Inputs {
		if run.Count <= 0 {
			return nil, fmt.Errorf("replay: decode: run %d has count %d", i, run.Count)
		}
	}
	if r.TickRate <= 0 {
		return nil, fmt.Errorf("replay: decode: tick rate %d", r.TickRate)
	}
	return r, nil
}

// Save stores r and sets its ID.
func Save(store *storage.Store, r *Replay) (int64, error) {
	ticks := r.Ticks()
	if ticks == 0 {
		return 0, ErrEmpty
	}
	if r.TickRate <= 0 {
		return 0, fmt.Errorf("replay: save: tick rate %d", r.TickRate)
	}
	data, err := Marshal(r)
	if err != nil {
		return 0, err
	}

	id, err := store.SaveReplay(storage.ReplayEntry{
		GameID:   r.GameID,
		Seed:     r.Seed,
		TickRate: r.TickRate,
		Ticks:    ticks,
		Preset:   r.Preset,
		Data:     data,
	})
	if err != nil {
		return 0, err
	}
	r.ID = id
	return id, nil
}

// Load fetches and decodes a stored replay.
func Load(store *storage.Store, id int64) (*Replay, error) {
	entry, err := store.LoadReplay(id)
	if err != nil {
		return nil, err
	}
	r, err := Unmarshal(entry.Data)
	if err != nil {
		return nil, fmt.Errorf("replay %d: %w", id, err)
	}
	r.ID = entry.ID
	r.CreatedAt = entry.CreatedAt
	return r, nil
}
