package config

import (
	"math"
	"time"

	"github.com/vovakirdan/skygate/internal/engine"
)

// Difficulty scales an engine configuration by a level in [0, 1].
type Difficulty struct {
	cfg   DifficultyConfig
	level float64
}

// NewDifficulty creates a difficulty scaler.
func NewDifficulty(cfg DifficultyConfig) *Difficulty {
	return &Difficulty{
		cfg:   cfg,
		level: clampF(cfg.Level, 0.0, 1.0),
	}
}

// SetLevel overrides the difficulty level (0.0 to 1.0).
func (d *Difficulty) SetLevel(level float64) {
	d.level = clampF(level, 0.0, 1.0)
}

// Level returns the effective level.
func (d *Difficulty) Level() float64 {
	return d.level
}

// SetRamp enables or disables the score-driven spawn ramp.
func (d *Difficulty) SetRamp(enabled bool) {
	d.cfg.Ramp = enabled
}

// Apply returns ec with gate speed, spawn bounds and minimum gap scaled.
func (d *Difficulty) Apply(ec engine.Config) engine.Config {
	ec.GateSpeed = d.Speed(ec.GateSpeed)
	ec.MinSpawnInterval = d.Interval(ec.MinSpawnInterval)
	ec.MaxSpawnInterval = d.Interval(ec.MaxSpawnInterval)
	ec.MinGap = d.Gap(ec.MinGap)
	if !d.cfg.Ramp {
		ec.SpawnRampStep = 0
	}
	return ec
}

// Speed returns the gate speed at the current level.
func (d *Difficulty) Speed(base float64) float64 {
	// Speed increases from base to base * (1 + speedMultiplier)
	return base * (1.0 + d.level*d.cfg.Scaling.SpeedMultiplier)
}

// Interval returns a spawn interval at the current level.
func (d *Difficulty) Interval(base time.Duration) time.Duration {
	f := 1.0 - d.level*clampF(d.cfg.Scaling.IntervalReduction, 0.0, 0.9)
	return time.Duration(math.Round(float64(base) * f))
}

// Gap returns the minimum gate gap at the current level.
func (d *Difficulty) Gap(base int) int {
	reduction := int(d.level * float64(d.cfg.Scaling.GapReduction))
	result := base - reduction
	if result < 0 {
		result = 0
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
