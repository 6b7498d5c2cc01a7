// Package config provides YAML-based game configuration loading and
// difficulty presets for skygate.
package config

import (
	"time"

	"github.com/vovakirdan/skygate/internal/engine"
)

// FlappyConfig contains all configuration for the flyer-and-gates game.
// Distances are field units on a play-field centred at the origin, +Y up.
type FlappyConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Flyer      FlyerConfig      `yaml:"flyer"`
	Gate       GateConfig       `yaml:"gate"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Score      ScoreConfig      `yaml:"score"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the play-field size.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FlyerConfig defines the flyer's fixed column and collider size.
type FlyerConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// GateConfig defines gate size and motion.
type GateConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`
	SpawnOffset  float64 `yaml:"spawn_offset"`
	RetireMargin float64 `yaml:"retire_margin"`
}

// PhysicsConfig defines vertical motion of the flyer.
type PhysicsConfig struct {
	Gravity      float64       `yaml:"gravity"`
	FlapVelocity float64       `yaml:"flap_velocity"`
	MinVelocity  float64       `yaml:"min_velocity"`
	MaxVelocity  float64       `yaml:"max_velocity"`
	MaxStep      time.Duration `yaml:"max_step"`
}

// SpawnConfig defines gate pair geometry and cadence.
type SpawnConfig struct {
	FloorBand   int           `yaml:"floor_band"`
	MinGap      int           `yaml:"min_gap"`
	GapSpread   int           `yaml:"gap_spread"`
	MinInterval time.Duration `yaml:"min_interval"`
	MaxInterval time.Duration `yaml:"max_interval"`
	RampStep    time.Duration `yaml:"ramp_step"` // Interval reduction per two points
}

// ScoreConfig defines the score clock.
type ScoreConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// DifficultyConfig scales the base tuning at session start.
type DifficultyConfig struct {
	Ramp    bool          `yaml:"ramp"`  // Shorten spawn interval as the score grows
	Level   float64       `yaml:"level"` // 0.0 = base tuning, 1.0 = fully scaled
	Scaling ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes at level 1.0.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Added to gate speed multiplier
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction removed from spawn intervals
	GapReduction      int     `yaml:"gap_reduction"`      // Field units removed from the minimum gap
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// LevelForPreset returns the difficulty level for a preset.
func LevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.7
	case DifficultyNormal:
		return 0.3
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables the spawn ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset validates a preset name. An empty name selects easy, the
// base tuning.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyEasy, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// Engine converts the YAML tuning into an engine configuration with the
// difficulty level applied. The result still has to pass engine validation.
func (c FlappyConfig) Engine() engine.Config {
	ec := engine.Config{
		FieldWidth:  c.Field.Width,
		FieldHeight: c.Field.Height,

		FlyerX:      c.Flyer.X,
		FlyerWidth:  c.Flyer.Width,
		FlyerHeight: c.Flyer.Height,

		GateWidth:  c.Gate.Width,
		GateHeight: c.Gate.Height,

		Gravity:      c.Physics.Gravity,
		FlapVelocity: c.Physics.FlapVelocity,
		MinVelocity:  c.Physics.MinVelocity,
		MaxVelocity:  c.Physics.MaxVelocity,

		GateSpeed:    c.Gate.Speed,
		SpawnOffset:  c.Gate.SpawnOffset,
		RetireMargin: c.Gate.RetireMargin,
		FloorBand:    c.Spawn.FloorBand,
		MinGap:       c.Spawn.MinGap,
		GapSpread:    c.Spawn.GapSpread,

		MinSpawnInterval: c.Spawn.MinInterval,
		MaxSpawnInterval: c.Spawn.MaxInterval,
		SpawnRampStep:    c.Spawn.RampStep,

		ScoreInterval: c.Score.Interval,
		MaxStep:       c.Physics.MaxStep,
	}
	return NewDifficulty(c.Difficulty).Apply(ec)
}
