package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-collect/internal/config"
	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/logging"
	"github.com/vovakirdan/tui-collect/internal/multiplayer"
	"github.com/vovakirdan/tui-collect/internal/render"
	"github.com/vovakirdan/tui-collect/internal/session"
	"github.com/vovakirdan/tui-collect/internal/storage"
)

var (
	flagGames    int
	flagRealtime bool
	flagLevel    string
	flagNoSave   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run CPU vs CPU matches headless",
	Long: `Play complete matches between two CPU players without a terminal UI
and print each result. Matches run as fast as possible unless --realtime
is set. Logs go to stderr.

CPU levels: easy, normal, hard, perfect

Examples:
  collect sim
  collect sim --games 20 --level hard
  collect sim --seed 42 --realtime --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagGames, "games", 1, "Number of matches to play")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Use the configured timing instead of running flat out")
	simCmd.Flags().StringVar(&flagLevel, "level", "", "CPU level override: easy, normal, hard, perfect")
	simCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record results in the history database")
}

// simConfig applies the sim timing. Unless realtime is set the loop runs
// flat out, but an explicit fps still wins.
func simConfig(cfg config.Config, realtime bool, fps int) config.Config {
	if realtime {
		return cfg
	}
	cfg = session.FastTiming(cfg)
	if fps > 0 {
		cfg.Timing.FrameRate = fps
	}
	return cfg
}

func runSim(cmd *cobra.Command, args []string) {
	if flagGames < 1 {
		fail("--games must be at least 1")
	}

	cfg := simConfig(loadConfig(), flagRealtime, flagFPS)
	if flagLevel != "" {
		level := config.CPULevel(flagLevel)
		if !level.Valid() {
			fail("unknown CPU level %q", flagLevel)
		}
		cfg.CPU.Level = level
	}

	logger, err := logging.New(os.Stderr, flagLogLevel)
	if err != nil {
		fail("%v", err)
	}

	var saver multiplayer.MatchResultSaver
	if !flagNoSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open history database", "error", err)
		} else {
			defer store.Close()
			saver = store
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	baseSeed := runtimeConfig(cfg).ResolveSeed()
	names := session.Names(cfg)
	var wins [core.PlayerCount]int

	for i := range flagGames {
		if ctx.Err() != nil {
			break
		}

		s := session.New(session.Options{
			Config: cfg,
			Mode:   multiplayer.MatchModeCPUvsCPU,
			Seed:   baseSeed + int64(i),
			Logger: logger,
			Saver:  saver,
		}, render.NewHeadless(120, 40))
		s.AddCPU(core.Player1)
		s.AddCPU(core.Player2)

		r := s.Run(ctx)
		if r.Completed() {
			wins[r.Winner]++
		}

		fmt.Printf("#%-3d seed %-20d board %2dx%-2d  %s %2d - %2d %s  %-9s %s\n",
			i+1, r.Seed, r.BoardSize, r.BoardSize,
			names[core.Player1], r.Score1, r.Score2, names[core.Player2],
			r.Reason, r.Duration.Round(time.Millisecond))
	}

	fmt.Println()
	fmt.Printf("Wins: %s %d, %s %d\n", names[core.Player1], wins[core.Player1], names[core.Player2], wins[core.Player2])
}
