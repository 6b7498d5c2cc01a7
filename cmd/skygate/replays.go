package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skygate/internal/platform/tui"
	"github.com/vovakirdan/skygate/internal/replay"
	"github.com/vovakirdan/skygate/internal/storage"
)

var (
	flagWatch  bool
	flagDelete bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded replays",
	Long: `Open an interactive list of recorded replays.

Controls:
  Up/Down  - Select
  Enter    - Watch the selected replay
  X        - Delete the selected replay
  Q/Esc    - Quit`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-run a recorded replay",
	Long: `Re-simulate a replay from its seed and inputs.

Without flags the replay runs headless and prints the outcome.
With --watch it plays back in the terminal; with --delete it is removed.

Examples:
  skygate replay 3
  skygate replay 3 --watch
  skygate replay 3 --delete`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the replay back in the terminal")
	replayCmd.Flags().BoolVar(&flagDelete, "delete", false, "Delete the replay")
	replayCmd.MarkFlagsMutuallyExclusive("watch", "delete")
}

func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func runReplays(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	width, height := terminalSize()
	id, err := tui.RunReplays(store, "", width, height)
	if err != nil || id == 0 {
		return err
	}
	return watchReplay(store, id)
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid replay id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagDelete:
		if err := store.DeleteReplay(id); err != nil {
			return err
		}
		fmt.Printf("Replay %d deleted.\n", id)
		return nil
	case flagWatch:
		return watchReplay(store, id)
	}

	r, err := replay.Load(store, id)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(os.Stderr, "replay")
	logger.Debug("replaying", "id", id, "seed", r.Seed, "ticks", r.Ticks(), "tick_rate", r.TickRate)

	res, err := replay.Play(ctx, r, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Replay %d (%s, recorded %s)\n", r.ID, r.GameID, r.CreatedAt.Format("Jan 02 15:04"))
	fmt.Printf("  Seed:     %d\n", r.Seed)
	fmt.Printf("  Ticks:    %d at %d/s\n", res.Ticks, r.TickRate)
	fmt.Printf("  Losses:   %d\n", res.Losses)
	fmt.Printf("  Restarts: %d\n", res.Restarts)
	fmt.Printf("  Best:     %d\n", res.Best)
	fmt.Printf("  Final:    %d", res.Score)
	if res.Final.GameOver {
		fmt.Print(" (lost)")
	}
	fmt.Println()
	return nil
}

func watchReplay(store *storage.Store, id int64) error {
	r, err := replay.Load(store, id)
	if err != nil {
		return err
	}
	game, err := replay.NewGame(r, nil)
	if err != nil {
		return err
	}

	width, height := terminalSize()
	return tui.Watch(game, r, width, height)
}
