// skygate is a terminal side-scroller: steer a flyer through an endless
// stream of gates.
//
// Usage:
//
//	skygate list              - List available games
//	skygate play [game]       - Play (default: flappy)
//	skygate serve             - Start SSH server for remote play
//	skygate replays           - Browse recorded replays
//	skygate replay <id>       - Re-simulate a replay headless, or --watch it
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set replay database path (default: ~/.skygate/replays.db)
//	--verbose       - Debug logging
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/skygate/internal/games/flappy"
	"github.com/vovakirdan/skygate/internal/storage"
)

const defaultGame = "flappy"

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skygate",
	Short: "Skygate - fly through the gates in your terminal",
	Long: `Skygate is a terminal side-scroller. Your flyer falls under gravity;
flap to climb and slip through the gap between each pair of gates.
The score grows with every moment you stay alive.

Available commands:
  list     - Show all available games
  play     - Play a game
  serve    - Start SSH server for remote play
  replays  - Browse recorded replays
  replay   - Re-run a recorded replay

Examples:
  skygate play
  skygate play --difficulty hard --record
  skygate serve --ssh :2222
  skygate replays
  skygate replay 3 --watch`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to replay database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
}

// newLogger returns a logger on w, at debug level when --verbose is set.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}
