package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-collect/internal/board"
	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/game"
	"github.com/vovakirdan/tui-collect/internal/render"
	"github.com/vovakirdan/tui-collect/internal/session"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print a generated board as text",
	Long: `Generate a board and print it: '*' marks an item, '1' and '2' the
players, '.' an empty cell. Use --seed to inspect the board a match will use.

Examples:
  collect preview
  collect preview --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPreview,
}

func runPreview(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	seed := runtimeConfig(cfg).ResolveSeed()

	b := board.Generate(board.NewRand(seed))
	snap := game.FromBoard(b).Snapshot(0)
	names := session.Names(cfg)

	fmt.Printf("Seed: %d\n", seed)
	if err := render.WriteText(os.Stdout, snap, names); err != nil {
		fail("%v", err)
	}

	fmt.Println()
	fmt.Println("=== CONTROLS ===")
	for id, keys := range session.KeySets(cfg) {
		var bound []string
		for _, d := range core.Directions {
			bound = append(bound, fmt.Sprintf("%s=%s", strings.ToLower(d.String()), keys.Key(d)))
		}
		line := fmt.Sprintf("%s: %s", names[id], strings.Join(bound, " "))
		if keys.Quit != "" {
			line += fmt.Sprintf(" quit=%s", keys.Quit)
		}
		fmt.Println(line)
	}
	fmt.Println("Esc or Ctrl+C to quit")
	fmt.Println("Collect items to score points!")
}
