// Package session assembles a configured match: it generates the board,
// builds the loop and attaches a sampler per player, human or CPU.
package session

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-collect/internal/board"
	"github.com/vovakirdan/tui-collect/internal/config"
	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/game"
	"github.com/vovakirdan/tui-collect/internal/input"
	"github.com/vovakirdan/tui-collect/internal/logging"
	"github.com/vovakirdan/tui-collect/internal/multiplayer"
	"github.com/vovakirdan/tui-collect/internal/render"
)

// Options describes one match.
type Options struct {
	Config config.Config
	Mode   multiplayer.MatchMode
	Seed   int64                        // Board seed, must already be resolved
	Logger *log.Logger                  // nil discards
	Saver  multiplayer.MatchResultSaver // nil keeps no history
}

// Session is a match ready to run.
type Session struct {
	opts   Options
	board  board.Board
	state  *game.State
	match  *multiplayer.LocalMatch
	tasks  []multiplayer.InputTask
	logger *log.Logger
}

// New generates the board from the seed and builds the loop over backend.
func New(opts Options, backend render.Backend) *Session {
	b := board.Generate(board.NewRand(opts.Seed))
	state := game.FromBoard(b)

	match := multiplayer.NewLocalMatch(opts.Config.MatchConfig(opts.Mode, opts.Seed), state, backend)
	match.SetPainter(render.NewPainter(Theme(opts.Config)))
	match.SetResultSaver(opts.Saver)

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	match.SetLogger(logger)

	return &Session{
		opts:   opts,
		board:  b,
		state:  state,
		match:  match,
		logger: logger,
	}
}

// Board returns the generated board.
func (s *Session) Board() board.Board {
	return s.board
}

// Match returns the underlying loop.
func (s *Session) Match() *multiplayer.LocalMatch {
	return s.match
}

// AddHuman drives player id from a key state using the configured bindings.
func (s *Session) AddHuman(id core.PlayerID, ks input.KeyState) {
	keys := s.opts.Config.Player(id).Keys.KeySet()
	s.addSampler(id, keys, ks)
}

// AddCPU drives player id with a CPU opponent that watches every frame.
func (s *Session) AddCPU(id core.PlayerID) *input.CPU {
	keys := input.DefaultKeys(id)
	cpu := input.NewCPU(id, keys, s.opts.Config.CPUSettings(), s.opts.Seed+int64(id)+1)
	s.match.AddObserver(cpu.Observe)
	s.addSampler(id, keys, cpu)
	return cpu
}

func (s *Session) addSampler(id core.PlayerID, keys input.KeySet, ks input.KeyState) {
	sampler := input.NewSampler(id, keys, ks, s.match.Channel(id), s.opts.Config.Timing.SampleInterval())
	sampler.SetLogger(s.logger)
	s.tasks = append(s.tasks, sampler)
}

// Run plays the match until it completes, a player quits or ctx is done.
func (s *Session) Run(ctx context.Context) multiplayer.MatchResult {
	return s.match.Run(ctx, s.tasks...)
}

// Theme builds the painter theme from the player config.
// Colors were validated when the config was loaded.
func Theme(cfg config.Config) render.Theme {
	theme := render.DefaultTheme()
	for id := range core.PlayerCount {
		p := cfg.Player(core.PlayerID(id))
		if c, err := core.ParseColor(p.Color); err == nil {
			theme.Players[id] = c
		}
		if p.Name != "" {
			theme.Names[id] = p.Name
		}
	}
	return theme
}

// Names returns the configured player names.
func Names(cfg config.Config) [core.PlayerCount]string {
	return Theme(cfg).Names
}

// KeySets returns the configured bindings of both players.
func KeySets(cfg config.Config) [core.PlayerCount]input.KeySet {
	var sets [core.PlayerCount]input.KeySet
	for id := range core.PlayerCount {
		sets[id] = cfg.Player(core.PlayerID(id)).Keys.KeySet()
	}
	return sets
}

// FastTiming returns cfg with the loop running as fast as the tick budget
// allows and no game-over hold or audio, for headless simulation.
func FastTiming(cfg config.Config) config.Config {
	cfg.Timing.FrameRate = 1000
	cfg.Timing.SampleRate = 1000
	cfg.Timing.PollTimeout = time.Millisecond
	cfg.Timing.GameOverHold = 0
	cfg.Audio.Enabled = false
	return cfg
}
