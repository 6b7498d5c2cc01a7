package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skygate/internal/config"
	"github.com/vovakirdan/skygate/internal/core"
	"github.com/vovakirdan/skygate/internal/platform/tui"
	"github.com/vovakirdan/skygate/internal/registry"
	"github.com/vovakirdan/skygate/internal/replay"
	"github.com/vovakirdan/skygate/internal/storage"
)

var (
	flagRecord bool
	flagDebug  bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. The game defaults to flappy.

Controls:
  Space/W/Up - Flap
  Enter/R    - Restart (after a loss)
  P          - Pause
  D          - Toggle collider overlay
  Ctrl+S     - Save a screenshot to ~/.skygate/screenshots
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Base tuning (default)
  normal - 30% faster gates, shorter spawn intervals and tighter gaps
  hard   - 70% of the full scaling
  fixed  - Base tuning without the score-driven spawn ramp

With --record the run's seed and inputs are stored in the replay database.
With --verbose events are logged to ~/.skygate/skygate.log.

Examples:
  skygate play
  skygate play --difficulty hard
  skygate play --config ./my-flappy.yaml --record
  skygate play --seed 42 --debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the run as a replay")
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Start with the collider overlay shown")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := defaultGame
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'skygate list' to see available games", gameID)
	}

	tuning, preset, err := loadTuning(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	logger, closeLog := playLogger()
	defer closeLog()

	game, err := registry.CreateConfigured(gameID, tuning.Engine(), logger)
	if err != nil {
		return err
	}
	if d, ok := game.(interface{ SetDebug(bool) }); ok && flagDebug {
		d.SetDebug(true)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// The seed is fixed here so a recording can reproduce the run.
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	var rec *replay.Recorder
	if flagRecord {
		rec = replay.NewRecorder(gameID, cfg, string(preset), tuning)
	}

	// Run the game
	if err := tui.Run(game, cfg, rec); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if rec != nil {
		return saveRecording(rec)
	}
	return nil
}

// saveRecording stores a finished recording and reports its ID.
func saveRecording(rec *replay.Recorder) error {
	if rec.Ticks() == 0 {
		fmt.Println("Nothing recorded.")
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := replay.Save(store, rec.Replay())
	if err != nil {
		return fmt.Errorf("saving replay: %w", err)
	}
	fmt.Printf("Replay %d saved (%d ticks). Watch it with: skygate replay %d --watch\n", id, rec.Ticks(), id)
	return nil
}

// playLogger writes to ~/.skygate/skygate.log with --verbose; the terminal
// belongs to the game otherwise.
func playLogger() (*log.Logger, func()) {
	if !flagVerbose {
		return log.New(io.Discard), func() {}
	}

	path := config.UserPath("skygate.log")
	if path == "" {
		return log.New(io.Discard), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f, "skygate"), func() { f.Close() }
}
