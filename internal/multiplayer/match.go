package multiplayer

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-collect/internal/game"
	"github.com/vovakirdan/tui-collect/internal/render"
)

// Phase is the state of the match loop.
type Phase int32

const (
	PhaseRunning  Phase = iota // Accepting intents
	PhaseGameOver              // Every item collected, showing the winner
	PhaseStopped               // Loop has exited
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game over"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// MatchConfig holds the timing of the match loop.
type MatchConfig struct {
	Mode            MatchMode
	FrameInterval   time.Duration // Target duration of one tick
	PollTimeout     time.Duration // Max wait for an intent per tick
	GameOverHold    time.Duration // How long the winner is shown
	ToneDuration    time.Duration // Collection tone length, 0 = silent
	ChannelCapacity int           // Buffer size of each intent channel
	Seed            int64         // Board seed, recorded in the result
}

// DefaultMatchConfig returns the classic 60 Hz timing.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		Mode:            MatchModeLocal,
		FrameInterval:   16 * time.Millisecond,
		PollTimeout:     16666 * time.Microsecond,
		GameOverHold:    5 * time.Second,
		ToneDuration:    100 * time.Millisecond,
		ChannelCapacity: DefaultChannelCapacity,
	}
}

// InputTask is a concurrent producer of intents, typically an input sampler.
// Run must return promptly once ctx is done.
type InputTask interface {
	Run(ctx context.Context)
}

// LocalMatch is the authoritative loop of a two-player session.
// It is the only goroutine that touches the game state.
type LocalMatch struct {
	id      MatchID
	cfg     MatchConfig
	state   *game.State
	backend render.Backend
	painter *render.Painter
	logger  *log.Logger
	saver   MatchResultSaver // Optional, can be nil

	channels  [2]*IntentChannel
	observers []func(game.Snapshot)

	tick  uint64
	phase atomic.Int32
}

// NewLocalMatch creates a match over state rendered through backend.
// The intent channels are created here, before any input task starts.
func NewLocalMatch(cfg MatchConfig, state *game.State, backend render.Backend) *LocalMatch {
	def := DefaultMatchConfig()
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = def.FrameInterval
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = def.PollTimeout
	}
	if cfg.GameOverHold < 0 {
		cfg.GameOverHold = 0
	}

	return &LocalMatch{
		id:      NewMatchID(),
		cfg:     cfg,
		state:   state,
		backend: backend,
		painter: render.NewPainter(render.DefaultTheme()),
		logger:  log.New(io.Discard),
		channels: [2]*IntentChannel{
			NewIntentChannel(Player1, cfg.ChannelCapacity),
			NewIntentChannel(Player2, cfg.ChannelCapacity),
		},
	}
}

// ID returns the match identifier.
func (m *LocalMatch) ID() MatchID {
	return m.id
}

// Channel returns the intent channel of a player.
func (m *LocalMatch) Channel(player PlayerID) *IntentChannel {
	return m.channels[player]
}

// Phase returns the current loop phase. Safe to call from any goroutine.
func (m *LocalMatch) Phase() Phase {
	return Phase(m.phase.Load())
}

// SetLogger sets the logger used for match events.
func (m *LocalMatch) SetLogger(logger *log.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// SetPainter replaces the default painter.
func (m *LocalMatch) SetPainter(p *render.Painter) {
	if p != nil {
		m.painter = p
	}
}

// SetResultSaver sets the optional match result saver.
func (m *LocalMatch) SetResultSaver(saver MatchResultSaver) {
	m.saver = saver
}

// AddObserver registers a callback that receives every rendered snapshot.
// Observers run on the loop goroutine and must not block.
func (m *LocalMatch) AddObserver(fn func(game.Snapshot)) {
	m.observers = append(m.observers, fn)
}

// Run starts the input tasks, drives the loop until the match ends, joins
// the tasks and closes the channels. The result is saved when a saver is set.
func (m *LocalMatch) Run(ctx context.Context, inputs ...InputTask) MatchResult {
	start := time.Now()
	m.state.SetListener(game.CollectFunc(m.onCollect))
	defer m.state.SetListener(nil)

	m.logger.Info("match started",
		"match", m.id,
		"mode", m.cfg.Mode,
		"size", m.state.Size(),
		"items", m.state.ItemCount(),
		"seed", m.cfg.Seed,
	)

	inputCtx, stopInputs := context.WithCancel(ctx)
	var wg sync.WaitGroup
	for _, in := range inputs {
		wg.Add(1)
		go func(in InputTask) {
			defer wg.Done()
			in.Run(inputCtx)
		}(in)
	}

	reason := m.loop(ctx)
	m.phase.Store(int32(PhaseStopped))

	stopInputs()
	wg.Wait()
	for _, ch := range m.channels {
		ch.Close()
	}

	result := m.result(reason, time.Since(start))
	m.logger.Info("match ended",
		"match", m.id,
		"reason", result.Reason,
		"winner", result.Winner,
		"score1", result.Score1,
		"score2", result.Score2,
		"ticks", result.Ticks,
		"dropped", result.Dropped,
	)

	if m.saver != nil {
		if err := m.saver.SaveMatchResult(result); err != nil {
			m.logger.Warn("could not save match result", "error", err)
		}
	}
	return result
}

// loop runs ticks until the match ends and returns why it ended.
func (m *LocalMatch) loop(ctx context.Context) MatchEndReason {
	m.render()

	for {
		tickStart := time.Now()

		if ctx.Err() != nil {
			return MatchEndReasonCancelled
		}
		if m.quitRequested() {
			return MatchEndReasonQuit
		}

		if m.applyIntents(m.receive(ctx)) {
			return MatchEndReasonQuit
		}

		m.tick++
		m.render()

		if m.state.IsGameOver() {
			return m.gameOver(ctx)
		}

		if !m.pace(ctx, tickStart) {
			return MatchEndReasonCancelled
		}
	}
}

// quitRequested drains the back end's quit signal without blocking.
func (m *LocalMatch) quitRequested() bool {
	select {
	case <-m.backend.Quit():
		return true
	default:
		return false
	}
}

// receive waits up to the poll timeout for either channel, then takes at
// most one intent from each channel that has data.
func (m *LocalMatch) receive(ctx context.Context) [2]Intent {
	var got [2]Intent

	timer := time.NewTimer(m.cfg.PollTimeout)
	defer timer.Stop()

	select {
	case in, ok := <-m.channels[Player1].C():
		if ok {
			got[Player1] = in
		}
	case in, ok := <-m.channels[Player2].C():
		if ok {
			got[Player2] = in
		}
	case <-timer.C:
		return got
	case <-ctx.Done():
		return got
	}

	for i, ch := range m.channels {
		if got[i] != nil {
			continue
		}
		if in, ok := ch.TryRecv(); ok {
			got[i] = in
		}
	}
	return got
}

// applyIntents applies Player 1's intent before Player 2's.
// Returns true when a Quit intent was received. A Quit that arrives after a
// move collected the last item is ignored so the match still completes.
func (m *LocalMatch) applyIntents(intents [2]Intent) bool {
	for i, in := range intents {
		if in == nil {
			continue
		}
		switch in := in.(type) {
		case Move:
			if !in.Valid() || in.Player != PlayerID(i) {
				m.logger.Debug("ignoring invalid move", "player", in.Player, "dx", in.DX, "dy", in.DY)
				continue
			}
			m.state.TryMove(in.Player, in.DX, in.DY)
		case Quit:
			if m.state.IsGameOver() {
				continue
			}
			m.logger.Info("player quit", "player", in.Player)
			return true
		}
	}
	return false
}

func (m *LocalMatch) render() {
	snap := m.state.Snapshot(m.tick)
	m.painter.Paint(m.backend, snap)
	for _, fn := range m.observers {
		fn(snap)
	}
}

// gameOver holds the final frame for the display duration.
func (m *LocalMatch) gameOver(ctx context.Context) MatchEndReason {
	m.phase.Store(int32(PhaseGameOver))
	winner := m.state.Winner()
	m.logger.Info("game over",
		"winner", winner,
		"score1", m.state.Player(Player1).Score,
		"score2", m.state.Player(Player2).Score,
	)

	timer := time.NewTimer(m.cfg.GameOverHold)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-m.backend.Quit():
	case <-ctx.Done():
	}
	return MatchEndReasonCompleted
}

// pace sleeps until the frame interval measured from tickStart has passed.
// Returns false if ctx was cancelled while waiting.
func (m *LocalMatch) pace(ctx context.Context, tickStart time.Time) bool {
	wait := m.cfg.FrameInterval - time.Since(tickStart)
	if wait <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (m *LocalMatch) onCollect(c game.Collection) {
	m.logger.Info("item collected",
		"player", c.Player,
		"score", c.Score,
		"remaining", c.Remaining,
	)
	if m.cfg.ToneDuration > 0 {
		m.backend.PlayTone(m.cfg.ToneDuration)
	}
}

func (m *LocalMatch) result(reason MatchEndReason, elapsed time.Duration) MatchResult {
	return MatchResult{
		MatchID:   m.id,
		Mode:      m.cfg.Mode,
		Reason:    reason,
		Winner:    m.state.Winner(),
		Score1:    m.state.Player(Player1).Score,
		Score2:    m.state.Player(Player2).Score,
		BoardSize: m.state.Size(),
		Items:     m.state.ItemCount(),
		Seed:      m.cfg.Seed,
		Ticks:     m.tick,
		Dropped:   m.channels[Player1].Dropped() + m.channels[Player2].Dropped(),
		Duration:  elapsed,
	}
}
