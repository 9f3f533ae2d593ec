package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/platform/tui"
	"github.com/vovakirdan/tui-collect/internal/session"
	"github.com/vovakirdan/tui-collect/internal/storage"
)

var (
	flagLimit      int
	flagHistoryTUI bool
	flagClear      bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent matches",
	Long: `Display recent match results and win totals per player.

Examples:
  collect history
  collect history --limit 50
  collect history --tui`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of matches to show")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse the history in an interactive table")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the whole history")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	names := session.Names(cfg)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening history database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearMatches(); err != nil {
			fail("%v", err)
		}
		fmt.Println("History cleared.")
		return
	}

	if flagHistoryTUI {
		rc := runtimeConfig(cfg)
		if err := tui.RunHistory(store, names, rc.ScreenW, rc.ScreenH); err != nil {
			fail("%v", err)
		}
		return
	}

	matches, err := store.RecentMatches(flagLimit)
	if err != nil {
		fail("retrieving matches: %v", err)
	}
	stats, err := store.Stats()
	if err != nil {
		fail("retrieving stats: %v", err)
	}

	fmt.Println("Match History")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'collect play' to record the first one!")
		return
	}

	fmt.Printf("  %-16s  %-10s  %-16s  %-7s  %-5s  %s\n", "Date", "Mode", "Result", "Score", "Board", "Time")
	fmt.Printf("  %-16s  %-10s  %-16s  %-7s  %-5s  %s\n", "----", "----", "------", "-----", "-----", "----")
	for _, m := range matches {
		result := m.EndReason
		if m.Completed() && m.Winner >= 0 && m.Winner < core.PlayerCount {
			result = names[m.Winner] + " won"
		}
		fmt.Printf("  %-16s  %-10s  %-16s  %-7s  %-5d  %s\n",
			m.CreatedAt.Local().Format("2006-01-02 15:04"),
			m.Mode,
			result,
			fmt.Sprintf("%d-%d", m.Score1, m.Score2),
			m.BoardSize,
			m.Duration.Round(time.Second),
		)
	}

	fmt.Println()
	fmt.Printf("Matches: %d (%d finished)\n", stats.Matches, stats.Completed)
	fmt.Printf("Wins: %s %d, %s %d\n",
		names[core.Player1], stats.Wins[core.Player1],
		names[core.Player2], stats.Wins[core.Player2])
	fmt.Printf("Best score: %d\n", stats.BestScore)
}
