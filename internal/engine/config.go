// Package engine implements the flyer-and-gates simulation core: timers,
// the entity store, physics integration, gate spawning, collision detection,
// the score clock and the Playing/Loss state machine.
//
// The package has no rendering or input dependencies. A host drives a Session
// with Tick and reads back a Snapshot between ticks.
package engine

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidConfig is returned by Validate and NewSession for unusable settings.
var ErrInvalidConfig = errors.New("engine: invalid config")

// Config holds every tunable of a session. Distances are in field units
// (the play-field is centred on the origin with +Y up), speeds in units/s.
type Config struct {
	FieldWidth  float64
	FieldHeight float64

	FlyerX      float64 // Fixed horizontal position of the flyer
	FlyerWidth  float64
	FlyerHeight float64

	GateWidth  float64
	GateHeight float64

	Gravity      float64 // Subtracted from velocity every second
	FlapVelocity float64 // Velocity set by a flap
	MinVelocity  float64
	MaxVelocity  float64

	GateSpeed    float64 // Leftward gate speed
	SpawnOffset  float64 // Spawn x is FieldWidth/2 + SpawnOffset
	RetireMargin float64 // Gates are removed once x < -FieldWidth/2 - RetireMargin
	FloorBand    int     // Half-width of the floor gate band around the bottom edge
	MinGap       int     // Minimum distance between floor and ceiling gate centres
	GapSpread    int     // Gap is drawn from [MinGap, MinGap+GapSpread)

	MinSpawnInterval time.Duration
	MaxSpawnInterval time.Duration
	SpawnRampStep    time.Duration // Interval reduction per two points of score

	ScoreInterval time.Duration

	// MaxStep bounds a single integration step; longer ticks are split.
	MaxStep time.Duration
}

// DefaultConfig returns the classic 700x400 field tuning.
func DefaultConfig() Config {
	return Config{
		FieldWidth:  700,
		FieldHeight: 400,

		FlyerX:      0,
		FlyerWidth:  34,
		FlyerHeight: 24,

		GateWidth:  52,
		GateHeight: 320,

		Gravity:      200,
		FlapVelocity: 150,
		MinVelocity:  -250,
		MaxVelocity:  250,

		GateSpeed:    100,
		SpawnOffset:  100,
		RetireMargin: 50,
		FloorBand:    75,
		MinGap:       400,
		GapSpread:    95,

		MinSpawnInterval: 1500 * time.Millisecond,
		MaxSpawnInterval: 3000 * time.Millisecond,
		SpawnRampStep:    2 * time.Millisecond,

		ScoreInterval: 750 * time.Millisecond,

		MaxStep: 100 * time.Millisecond,
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"field width", c.FieldWidth},
		{"field height", c.FieldHeight},
		{"flyer width", c.FlyerWidth},
		{"flyer height", c.FlyerHeight},
		{"gate width", c.GateWidth},
		{"gate height", c.GateHeight},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}

	finite := []struct {
		name string
		v    float64
	}{
		{"flyer x", c.FlyerX},
		{"flap velocity", c.FlapVelocity},
		{"spawn offset", c.SpawnOffset},
	}
	for _, f := range finite {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidConfig, f.name)
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"gravity", c.Gravity},
		{"gate speed", c.GateSpeed},
		{"retire margin", c.RetireMargin},
	}
	for _, n := range nonNegative {
		if !(n.v >= 0) || math.IsInf(n.v, 0) {
			return fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalidConfig, n.name, n.v)
		}
	}

	if c.FlyerHeight >= c.FieldHeight {
		return fmt.Errorf("%w: flyer height %v does not fit field height %v", ErrInvalidConfig, c.FlyerHeight, c.FieldHeight)
	}
	if math.IsNaN(c.MinVelocity) || math.IsNaN(c.MaxVelocity) || c.MinVelocity > c.MaxVelocity {
		return fmt.Errorf("%w: velocity range [%v, %v] is empty", ErrInvalidConfig, c.MinVelocity, c.MaxVelocity)
	}
	if c.FloorBand <= 0 {
		return fmt.Errorf("%w: floor band must be positive, got %d", ErrInvalidConfig, c.FloorBand)
	}
	if c.MinGap < 0 || c.GapSpread <= 0 {
		return fmt.Errorf("%w: gap range [%d, %d) is empty", ErrInvalidConfig, c.MinGap, c.MinGap+c.GapSpread)
	}

	durations := []struct {
		name string
		d    time.Duration
	}{
		{"min spawn interval", c.MinSpawnInterval},
		{"max spawn interval", c.MaxSpawnInterval},
		{"score interval", c.ScoreInterval},
		{"max step", c.MaxStep},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidConfig, d.name, d.d)
		}
	}
	if c.MinSpawnInterval > c.MaxSpawnInterval {
		return fmt.Errorf("%w: min spawn interval %s exceeds max %s", ErrInvalidConfig, c.MinSpawnInterval, c.MaxSpawnInterval)
	}
	if c.SpawnRampStep < 0 {
		return fmt.Errorf("%w: spawn ramp step must not be negative, got %s", ErrInvalidConfig, c.SpawnRampStep)
	}

	return nil
}

// FlyerBounds returns the lowest and highest centre y the flyer may occupy.
func (c Config) FlyerBounds() (bottom, top float64) {
	top = (c.FieldHeight - c.FlyerHeight) / 2
	return -top, top
}

// SpawnX is the horizontal position new gates appear at.
func (c Config) SpawnX() float64 {
	return c.FieldWidth/2 + c.SpawnOffset
}

// RetireX is the position left of which gates are removed.
func (c Config) RetireX() float64 {
	return -c.FieldWidth/2 - c.RetireMargin
}
