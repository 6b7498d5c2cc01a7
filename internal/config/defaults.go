package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the classic 700x400 tuning.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Field: FieldConfig{
			Width:  700,
			Height: 400,
		},
		Flyer: FlyerConfig{
			X:      0,
			Width:  34,
			Height: 24,
		},
		Gate: GateConfig{
			Width:        52,
			Height:       320,
			Speed:        100,
			SpawnOffset:  100,
			RetireMargin: 50,
		},
		Physics: PhysicsConfig{
			Gravity:      200,
			FlapVelocity: 150,
			MinVelocity:  -250,
			MaxVelocity:  250,
			MaxStep:      100 * time.Millisecond,
		},
		Spawn: SpawnConfig{
			FloorBand:   75,
			MinGap:      400,
			GapSpread:   95,
			MinInterval: 1500 * time.Millisecond,
			MaxInterval: 3000 * time.Millisecond,
			RampStep:    2 * time.Millisecond,
		},
		Score: ScoreConfig{
			Interval: 750 * time.Millisecond,
		},
		Difficulty: DifficultyConfig{
			Ramp:  true,
			Level: 0.0,
			Scaling: ScalingConfig{
				SpeedMultiplier:   0.5,
				IntervalReduction: 0.3,
				GapReduction:      40,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "flappy":
		return defaultFlappyYAML
	default:
		return nil
	}
}
