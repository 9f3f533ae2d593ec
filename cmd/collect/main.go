// collect is a two-player item-collection race played in the terminal.
//
// Usage:
//
//	collect play             - Play a local two-player match
//	collect play --vs-cpu    - Play against a CPU opponent
//	collect sim              - Watch two CPUs play headless and print the result
//	collect preview          - Print a generated board as text
//	collect history          - Show recent matches and win totals
//
// Global flags:
//
//	--config <path>    - Config file (default: search ~/.collect, ./configs, built-in)
//	--fps <rate>       - Override the loop frame rate
//	--seed <value>     - Set RNG seed for a reproducible board
//	--db <path>        - Set database path (default: ~/.collect/history.db)
//	--log <path>       - Log file used during play (default: ~/.collect/collect.log)
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-collect/internal/config"
	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/logging"
	"github.com/vovakirdan/tui-collect/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogPath  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "collect",
	Short: "Grid Collect - race a friend for items in your terminal",
	Long: `Grid Collect is a two-player local game. Both players move on a
randomly sized grid and collect items; whoever collects more wins.

Available commands:
  play     - Play a match (two humans, or --vs-cpu)
  sim      - Run CPU vs CPU matches without a terminal UI
  preview  - Print a generated board as text
  history  - View recent matches

Examples:
  collect play
  collect play --vs-cpu --seed 42
  collect sim --games 10
  collect preview --seed 42
  collect history --tui`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate override (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", logging.DefaultPath, "Log file used while the terminal UI runs")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(historyCmd)
}

// fail prints an error and exits with status 1.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the configuration and applies the global flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagFPS > 0 {
		cfg.Timing.FrameRate = flagFPS
	}
	return cfg
}

// runtimeConfig captures the terminal size and seed for this run.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.FrameRate = cfg.Timing.FrameRate
	rc.Seed = flagSeed
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	return rc
}
