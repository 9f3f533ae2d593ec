package input

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/multiplayer"
)

// DefaultSampleInterval is roughly 60 samples per second.
const DefaultSampleInterval = 16 * time.Millisecond

// Sampler polls one player's keys at a fixed rate and emits intents.
type Sampler struct {
	player   core.PlayerID
	keys     KeySet
	state    KeyState
	out      *multiplayer.IntentChannel
	interval time.Duration
	logger   *log.Logger
}

// NewSampler creates a sampler writing to out.
// A non-positive interval uses DefaultSampleInterval.
func NewSampler(player core.PlayerID, keys KeySet, state KeyState, out *multiplayer.IntentChannel, interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	return &Sampler{
		player:   player,
		keys:     keys,
		state:    state,
		out:      out,
		interval: interval,
		logger:   log.New(io.Discard),
	}
}

// SetLogger sets the logger used for dropped intents.
func (s *Sampler) SetLogger(logger *log.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Run samples until ctx is done or the quit key is pressed.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if !s.sample(ctx) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// sample reads the key state once. Returns false when sampling should stop.
func (s *Sampler) sample(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}

	if s.keys.Quit != "" && s.state.IsKeyPressed(s.keys.Quit) {
		if err := s.out.Send(ctx, multiplayer.Quit{Player: s.player}); err != nil {
			s.logger.Debug("quit not delivered", "player", s.player, "error", err)
		}
		return false
	}

	dir := s.keys.Direction(s.state)
	if dir == core.DirNone {
		return true
	}
	if !s.out.TrySend(multiplayer.MoveIn(s.player, dir)) {
		s.logger.Debug("intent dropped", "player", s.player, "dir", dir)
	}
	return true
}
