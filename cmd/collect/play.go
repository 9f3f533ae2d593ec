package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/logging"
	"github.com/vovakirdan/tui-collect/internal/multiplayer"
	"github.com/vovakirdan/tui-collect/internal/platform/tui"
	"github.com/vovakirdan/tui-collect/internal/render"
	"github.com/vovakirdan/tui-collect/internal/session"
	"github.com/vovakirdan/tui-collect/internal/storage"
)

var flagVsCPU bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match",
	Long: `Start a match on a freshly generated board.

Controls (default config):
  W/A/S/D    - Player 1
  Arrows     - Player 2
  ?          - Toggle help
  Esc/Ctrl+C - Quit

The match ends when every item is collected. The winner is shown for a
few seconds, then the result is saved to the history database.

Examples:
  collect play
  collect play --vs-cpu
  collect play --seed 42 --config ./my-collect.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagVsCPU, "vs-cpu", false, "Let the CPU control Player 2")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	rc := runtimeConfig(cfg)
	seed := rc.ResolveSeed()

	logger, closer, err := logging.OpenFile(flagLogPath, flagLogLevel)
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	mode := multiplayer.MatchModeLocal
	if flagVsCPU {
		mode = multiplayer.MatchModeVsCPU
		if p2 := &cfg.Players[core.Player2]; p2.Name == core.Player2.String() {
			p2.Name = "CPU"
		}
	}

	opts := session.Options{
		Config: cfg,
		Mode:   mode,
		Seed:   seed,
		Logger: logger,
	}

	// Open history storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		// Continue without storage - the match still works
	} else {
		defer store.Close()
		opts.Saver = store
	}

	var tone render.Tone
	if cfg.Audio.Enabled {
		tone = tui.NewBellTone(os.Stderr)
	}

	terminal := tui.NewTerminal(tui.Options{
		Width:  rc.ScreenW,
		Height: rc.ScreenH,
		Names:  session.Names(cfg),
		Keys:   session.KeySets(cfg),
		Tone:   tone,
	})

	s := session.New(opts, terminal.Backend())
	s.AddHuman(core.Player1, terminal.KeyState(core.Player1))
	if flagVsCPU {
		s.AddCPU(core.Player2)
	} else {
		s.AddHuman(core.Player2, terminal.KeyState(core.Player2))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var result multiplayer.MatchResult
	if err := terminal.Run(ctx, func(ctx context.Context) {
		result = s.Run(ctx)
	}); err != nil {
		fail("%v", err)
	}

	printResult(result, session.Names(cfg))
}

// printResult prints a one-paragraph summary of a finished match.
func printResult(r multiplayer.MatchResult, names [core.PlayerCount]string) {
	fmt.Printf("Board %dx%d, seed %d\n", r.BoardSize, r.BoardSize, r.Seed)
	fmt.Printf("%s: %d  %s: %d\n", names[core.Player1], r.Score1, names[core.Player2], r.Score2)
	if r.Completed() {
		fmt.Printf("%s wins!\n", names[r.Winner])
	} else {
		fmt.Printf("Match %s after %s\n", r.Reason, r.Duration.Round(time.Millisecond))
	}
}
