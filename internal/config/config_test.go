package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/skygate/internal/engine"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseFlappy(GetDefaultYAML("flappy"))
	if err != nil {
		t.Fatalf("embedded default failed to parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFlappyConfig()) {
		t.Errorf("embedded YAML differs from DefaultFlappyConfig():\n%+v\n%+v", cfg, DefaultFlappyConfig())
	}
}

func TestDefaultEngineConfig(t *testing.T) {
	ec := DefaultFlappyConfig().Engine()
	if !reflect.DeepEqual(ec, engine.DefaultConfig()) {
		t.Errorf("Engine() = %+v\nexpected %+v", ec, engine.DefaultConfig())
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFlappyCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	data := []byte("gate:\n  speed: 180\nspawn:\n  min_interval: 900ms\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}

	if cfg.Gate.Speed != 180 {
		t.Errorf("gate speed = %v, expected 180", cfg.Gate.Speed)
	}
	if cfg.Spawn.MinInterval != 900*time.Millisecond {
		t.Errorf("min interval = %s, expected 900ms", cfg.Spawn.MinInterval)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Gate.Width != 52 || cfg.Spawn.MaxInterval != 3*time.Second {
		t.Errorf("unset fields lost their defaults: %+v", cfg)
	}
}

func TestLoadFlappyErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("spawn:\n  min_interval: soon\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.yaml")},
		{"bad duration", bad},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadFlappy(tc.path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadFlappyUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".skygate", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "flappy.yaml"), []byte("physics:\n  gravity: 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy("")
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Physics.Gravity != 300 {
		t.Errorf("gravity = %v, expected the user override 300", cfg.Physics.Gravity)
	}
}

func TestLoadFlappyFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadFlappy("")
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFlappyConfig()) {
		t.Errorf("LoadFlappy() = %+v, expected defaults", cfg)
	}
}

func TestApplyFlappyPreset(t *testing.T) {
	base := DefaultFlappyConfig()

	tests := []struct {
		preset     DifficultyPreset
		speedAbove bool
		ramp       bool
	}{
		{DifficultyEasy, false, true},
		{DifficultyNormal, true, true},
		{DifficultyHard, true, true},
		{DifficultyFixed, false, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := base
			ApplyFlappyPreset(&cfg, tc.preset)
			ec := cfg.Engine()

			if got := ec.GateSpeed > base.Gate.Speed; got != tc.speedAbove {
				t.Errorf("gate speed %v, base %v", ec.GateSpeed, base.Gate.Speed)
			}
			if got := ec.SpawnRampStep > 0; got != tc.ramp {
				t.Errorf("ramp step = %s", ec.SpawnRampStep)
			}
			if err := ec.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestHardScalesSpawnBounds(t *testing.T) {
	cfg := DefaultFlappyConfig()
	ApplyFlappyPreset(&cfg, DifficultyHard)
	ec := cfg.Engine()

	// level 0.7 * reduction 0.3 = 21% shorter intervals
	if ec.MinSpawnInterval != 1185*time.Millisecond {
		t.Errorf("min interval = %s, expected 1.185s", ec.MinSpawnInterval)
	}
	if ec.MaxSpawnInterval != 2370*time.Millisecond {
		t.Errorf("max interval = %s, expected 2.37s", ec.MaxSpawnInterval)
	}
	if ec.MinGap != 372 {
		t.Errorf("min gap = %d, expected 372", ec.MinGap)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		ok       bool
	}{
		{"", DifficultyEasy, true},
		{"easy", DifficultyEasy, true},
		{"hard", DifficultyHard, true},
		{"fixed", DifficultyFixed, true},
		{"nightmare", "", false},
	}

	for _, tc := range tests {
		got, ok := ParsePreset(tc.in)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("ParsePreset(%q) = %q, %v; expected %q, %v", tc.in, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestDifficultyClampsLevel(t *testing.T) {
	d := NewDifficulty(DifficultyConfig{Level: 3, Scaling: ScalingConfig{SpeedMultiplier: 1}})
	if d.Level() != 1 {
		t.Errorf("Level() = %v, expected 1", d.Level())
	}
	if got := d.Speed(100); got != 200 {
		t.Errorf("Speed(100) = %v, expected 200", got)
	}
	d.SetLevel(-1)
	if got := d.Speed(100); got != 100 {
		t.Errorf("Speed(100) = %v at level 0", got)
	}
}
