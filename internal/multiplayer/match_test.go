package multiplayer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/game"
	"github.com/vovakirdan/tui-collect/internal/render"
)

func testMatchConfig() MatchConfig {
	return MatchConfig{
		Mode:            MatchModeLocal,
		FrameInterval:   time.Millisecond,
		PollTimeout:     time.Millisecond,
		GameOverHold:    time.Millisecond,
		ToneDuration:    time.Millisecond,
		ChannelCapacity: 8,
	}
}

func newTestMatch(size int, items ...core.Point) (*LocalMatch, *game.State, *render.Headless) {
	state := game.New(size, items)
	backend := render.NewHeadless(80, 24)
	return NewLocalMatch(testMatchConfig(), state, backend), state, backend
}

type recordingSaver struct {
	results []MatchResult
}

func (s *recordingSaver) SaveMatchResult(r MatchResult) error {
	s.results = append(s.results, r)
	return nil
}

type blockingTask struct {
	started atomic.Bool
	stopped atomic.Bool
}

func (b *blockingTask) Run(ctx context.Context) {
	b.started.Store(true)
	<-ctx.Done()
	b.stopped.Store(true)
}

func TestLocalMatchCompletes(t *testing.T) {
	m, state, backend := newTestMatch(3, core.Point{X: 1, Y: 0}, core.Point{X: 2, Y: 0})

	m.Channel(Player1).TrySend(MoveIn(Player1, core.DirRight))
	m.Channel(Player1).TrySend(MoveIn(Player1, core.DirRight))

	result := m.Run(context.Background())

	if !result.Completed() {
		t.Fatalf("Reason = %v, want completed", result.Reason)
	}
	if result.Winner != Player1 {
		t.Errorf("Winner = %v, want Player 1", result.Winner)
	}
	if result.Score1 != 2 || result.Score2 != 0 {
		t.Errorf("Scores = %d/%d, want 2/0", result.Score1, result.Score2)
	}
	if result.Ticks != 2 {
		t.Errorf("Ticks = %d, want 2", result.Ticks)
	}
	if !state.IsGameOver() {
		t.Error("state should be game over")
	}
	if backend.Tones() != 2 {
		t.Errorf("Tones() = %d, want 2", backend.Tones())
	}
	if m.Phase() != PhaseStopped {
		t.Errorf("Phase() = %v, want stopped", m.Phase())
	}
}

func TestLocalMatchQuitIntent(t *testing.T) {
	m, _, _ := newTestMatch(5, core.Point{X: 4, Y: 0})

	m.Channel(Player2).TrySend(Quit{Player: Player2})

	result := m.Run(context.Background())

	if result.Reason != MatchEndReasonQuit {
		t.Errorf("Reason = %v, want quit", result.Reason)
	}
	if result.Ticks != 0 {
		t.Errorf("Ticks = %d, want 0", result.Ticks)
	}
}

func TestLocalMatchCompletionBeatsLateQuit(t *testing.T) {
	m, _, _ := newTestMatch(3, core.Point{X: 1, Y: 0})

	m.Channel(Player1).TrySend(MoveIn(Player1, core.DirRight))
	m.Channel(Player2).TrySend(Quit{Player: Player2})

	result := m.Run(context.Background())

	if !result.Completed() {
		t.Fatalf("Reason = %v, want completed", result.Reason)
	}
	if result.Score1 != 1 {
		t.Errorf("Score1 = %d, want 1", result.Score1)
	}
}

func TestLocalMatchBackendQuit(t *testing.T) {
	m, _, backend := newTestMatch(5, core.Point{X: 4, Y: 0})
	backend.RequestQuit()

	result := m.Run(context.Background())

	if result.Reason != MatchEndReasonQuit {
		t.Errorf("Reason = %v, want quit", result.Reason)
	}
}

func TestLocalMatchCancelled(t *testing.T) {
	m, _, _ := newTestMatch(5, core.Point{X: 4, Y: 0})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	result := m.Run(ctx)

	if result.Reason != MatchEndReasonCancelled {
		t.Errorf("Reason = %v, want cancelled", result.Reason)
	}
	if result.Ticks == 0 {
		t.Error("expected some ticks before cancellation")
	}
}

func TestLocalMatchPlayerOneFirst(t *testing.T) {
	// Both players step onto the only item in the same tick.
	m, state, _ := newTestMatch(2, core.Point{X: 1, Y: 0})

	m.Channel(Player1).TrySend(MoveIn(Player1, core.DirRight))
	m.Channel(Player2).TrySend(MoveIn(Player2, core.DirUp))

	result := m.Run(context.Background())

	if result.Score1 != 1 || result.Score2 != 0 {
		t.Errorf("Scores = %d/%d, want 1/0", result.Score1, result.Score2)
	}
	if result.Ticks != 1 {
		t.Errorf("Ticks = %d, want 1", result.Ticks)
	}
	if got := state.Player(Player2).Pos; got != (core.Point{X: 1, Y: 0}) {
		t.Errorf("Player 2 at %v, want (1,0)", got)
	}
}

func TestLocalMatchIgnoresInvalidMoves(t *testing.T) {
	m, state, _ := newTestMatch(5, core.Point{X: 4, Y: 4})

	m.Channel(Player1).TrySend(Move{Player: Player1, DX: 1, DY: 1})
	m.Channel(Player1).TrySend(Move{Player: Player2, DX: 1, DY: 0})
	m.Channel(Player1).TrySend(Quit{Player: Player1})

	result := m.Run(context.Background())

	if result.Reason != MatchEndReasonQuit {
		t.Fatalf("Reason = %v, want quit", result.Reason)
	}
	if got := state.Player(Player1).Pos; got != (core.Point{}) {
		t.Errorf("Player 1 moved to %v", got)
	}
	if got := state.Player(Player2).Pos; got != (core.Point{X: 4, Y: 4}) {
		t.Errorf("Player 2 moved to %v", got)
	}
}

func TestLocalMatchSavesResult(t *testing.T) {
	m, _, _ := newTestMatch(2, core.Point{X: 1, Y: 0})
	saver := &recordingSaver{}
	m.SetResultSaver(saver)

	m.Channel(Player1).TrySend(MoveIn(Player1, core.DirRight))
	result := m.Run(context.Background())

	if len(saver.results) != 1 {
		t.Fatalf("saved %d results, want 1", len(saver.results))
	}
	if saver.results[0].MatchID != result.MatchID {
		t.Error("saved result has a different match ID")
	}
	if saver.results[0].BoardSize != 2 || saver.results[0].Items != 1 {
		t.Errorf("saved board = %d/%d, want 2/1", saver.results[0].BoardSize, saver.results[0].Items)
	}
}

func TestLocalMatchObserversSeeFinalFrame(t *testing.T) {
	m, _, backend := newTestMatch(2, core.Point{X: 1, Y: 0})

	var snaps []game.Snapshot
	m.AddObserver(func(s game.Snapshot) {
		snaps = append(snaps, s)
	})

	m.Channel(Player1).TrySend(MoveIn(Player1, core.DirRight))
	m.Run(context.Background())

	// Initial frame plus one tick.
	if len(snaps) != 2 {
		t.Fatalf("observed %d snapshots, want 2", len(snaps))
	}
	if snaps[0].GameOver {
		t.Error("initial snapshot should not be game over")
	}
	last := snaps[len(snaps)-1]
	if !last.GameOver || last.Winner != Player1 {
		t.Errorf("final snapshot = %+v, want game over won by Player 1", last)
	}
	if backend.Frames() != len(snaps) {
		t.Errorf("Frames() = %d, want %d", backend.Frames(), len(snaps))
	}
}

func TestLocalMatchJoinsInputs(t *testing.T) {
	m, _, _ := newTestMatch(5, core.Point{X: 4, Y: 0})
	task := &blockingTask{}

	m.Channel(Player1).TrySend(Quit{Player: Player1})
	m.Run(context.Background(), task)

	if !task.stopped.Load() {
		t.Error("input task was not joined")
	}
	if _, ok := m.Channel(Player1).TryRecv(); ok {
		t.Error("channel should be closed and empty")
	}
}

func TestLocalMatchCountsDropped(t *testing.T) {
	state := game.New(5, []core.Point{{X: 4, Y: 0}})
	cfg := testMatchConfig()
	cfg.ChannelCapacity = 1
	m := NewLocalMatch(cfg, state, render.NewHeadless(80, 24))

	m.Channel(Player1).TrySend(Quit{Player: Player1})
	if m.Channel(Player1).TrySend(MoveIn(Player1, core.DirRight)) {
		t.Fatal("TrySend on a full channel should fail")
	}

	result := m.Run(context.Background())
	if result.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", result.Dropped)
	}
}

func TestIntentChannelSendCancelled(t *testing.T) {
	ch := NewIntentChannel(Player1, 1)
	ch.TrySend(MoveIn(Player1, core.DirUp))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := ch.Send(ctx, Quit{Player: Player1}); err == nil {
		t.Error("Send on a full channel with a cancelled context should fail")
	}
	if ch.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ch.Len())
	}
	ch.Close()
	ch.Close()
}

func TestMoveValid(t *testing.T) {
	tests := []struct {
		move Move
		want bool
	}{
		{MoveIn(Player1, core.DirUp), true},
		{MoveIn(Player2, core.DirLeft), true},
		{Move{Player: Player1}, false},
		{Move{Player: Player1, DX: 2}, false},
		{Move{Player: Player1, DX: 1, DY: -1}, false},
		{Move{Player: PlayerID(5), DX: 1}, false},
	}
	for _, tt := range tests {
		if got := tt.move.Valid(); got != tt.want {
			t.Errorf("%+v.Valid() = %v, want %v", tt.move, got, tt.want)
		}
	}
}
