package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skygate/internal/config"
	"github.com/vovakirdan/skygate/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in skygate.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print games
	for _, g := range games {
		title := g.Title
		if g.ID == defaultGame {
			title += " (default)"
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, title)
	}

	fmt.Println()
	fmt.Println("Run 'skygate play [id]' to play a game.")
	fmt.Printf("Tuning is read from --config, %s, ./configs/flappy.yaml or the built-in defaults.\n",
		config.UserPath("configs", "flappy.yaml"))
}
