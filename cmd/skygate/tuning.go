package main

import (
	"fmt"

	"github.com/vovakirdan/skygate/internal/config"
)

// Shared by play and serve.
var (
	flagConfig     string
	flagDifficulty string
)

// loadTuning reads the game config and applies the difficulty preset.
func loadTuning(path, difficulty string) (config.FlappyConfig, config.DifficultyPreset, error) {
	preset, ok := config.ParsePreset(difficulty)
	if !ok {
		return config.FlappyConfig{}, "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", difficulty)
	}

	cfg, err := config.LoadFlappy(path)
	if err != nil {
		return config.FlappyConfig{}, "", err
	}
	config.ApplyFlappyPreset(&cfg, preset)

	if err := cfg.Engine().Validate(); err != nil {
		return config.FlappyConfig{}, "", fmt.Errorf("config: %w", err)
	}
	return cfg, preset, nil
}
