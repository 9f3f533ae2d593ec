package tui

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/game"
	"github.com/vovakirdan/tui-collect/internal/input"
	"github.com/vovakirdan/tui-collect/internal/render"
	"github.com/vovakirdan/tui-collect/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func defaultSets() [core.PlayerCount]input.KeySet {
	return [core.PlayerCount]input.KeySet{
		input.DefaultKeys(core.Player1),
		input.DefaultKeys(core.Player2),
	}
}

func testTerminal() *Terminal {
	return NewTerminal(Options{
		Width:  80,
		Height: 25,
		Names:  [core.PlayerCount]string{"Player 1", "Player 2"},
		Keys:   defaultSets(),
	})
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd", core.ColorBlue)
	s.DrawText(0, 1, "xyz", core.ColorDefault)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestKeyRouterRoutesToOwner(t *testing.T) {
	r := NewKeyRouter(defaultSets())

	if !r.Route(runeKey('d')) {
		t.Fatal("d should be routed")
	}
	if !r.Route(tea.KeyMsg{Type: tea.KeyLeft}) {
		t.Fatal("left should be routed")
	}
	if r.Route(runeKey('x')) {
		t.Error("x has no owner")
	}

	if !r.KeyState(core.Player1).IsKeyPressed("d") {
		t.Error("Player 1 should see d")
	}
	if r.KeyState(core.Player1).IsKeyPressed("left") {
		t.Error("Player 1 should not see Player 2's key")
	}
	if !r.KeyState(core.Player2).IsKeyPressed("left") {
		t.Error("Player 2 should see left")
	}
}

func TestMoveHelp(t *testing.T) {
	if got := moveHelp(input.DefaultKeys(core.Player1)); got != "wasd" {
		t.Errorf("moveHelp(P1) = %q, want wasd", got)
	}
	if got := moveHelp(input.DefaultKeys(core.Player2)); got != "↑←↓→" {
		t.Errorf("moveHelp(P2) = %q, want arrows", got)
	}
	custom := input.KeySet{Up: "i", Down: "k", Left: "j", Right: "ctrl+l"}
	if got := moveHelp(custom); got != "i/j/k/ctrl+l" {
		t.Errorf("moveHelp(custom) = %q", got)
	}
}

func TestBackendPresentSendsFrame(t *testing.T) {
	b := NewBackend(20, 8, nil)
	var got []tea.Msg
	b.Attach(func(msg tea.Msg) { got = append(got, msg) })

	state := game.New(10, []core.Point{{X: 3, Y: 3}})
	render.NewPainter(render.DefaultTheme()).Paint(b, state.Snapshot(0))

	if len(got) != 1 {
		t.Fatalf("sent %d messages, want 1", len(got))
	}
	frame, ok := got[0].(FrameMsg)
	if !ok {
		t.Fatalf("got %T, want FrameMsg", got[0])
	}
	if !strings.Contains(string(frame), "too small") {
		t.Errorf("20x8 frame should report a small terminal: %q", frame)
	}
}

func TestBackendResizeAppliesOnBounds(t *testing.T) {
	b := NewBackend(10, 5, nil)
	b.Resize(40, 20)

	if w, h := b.Screen().Width(), b.Screen().Height(); w != 10 || h != 5 {
		t.Errorf("resize applied early: %dx%d", w, h)
	}
	if w, h := b.Bounds(); w != 40 || h != 20 {
		t.Errorf("Bounds() = %dx%d, want 40x20", w, h)
	}
}

func TestBackendQuitAndTone(t *testing.T) {
	var rang atomic.Int32
	tone := render.NewAsyncTone(func(time.Duration) { rang.Add(1) })
	b := NewBackend(10, 5, tone)

	b.RequestQuit()
	b.RequestQuit()
	select {
	case <-b.Quit():
	default:
		t.Error("quit channel should be closed")
	}

	b.PlayTone(0)
	deadline := time.Now().Add(time.Second)
	for rang.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("tone not played")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestBellTone(t *testing.T) {
	var sb safeBuffer
	tone := NewBellTone(&sb)
	tone.PlayTone(time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for !strings.Contains(sb.String(), "\a") {
		if time.Now().After(deadline) {
			t.Fatal("bell not written")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestGameModelFrames(t *testing.T) {
	m := newGameModel(testTerminal())

	next, _ := m.Update(FrameMsg("board"))
	if !strings.HasPrefix(next.View(), "board\n") {
		t.Errorf("View() = %q, want frame first", next.View())
	}

	next, cmd := next.Update(MatchDoneMsg{})
	if !isQuit(cmd) {
		t.Error("MatchDoneMsg should quit the program")
	}
	if next.View() != "" {
		t.Error("View() should be empty once done")
	}
}

func TestGameModelQuitKey(t *testing.T) {
	term := testTerminal()
	m := newGameModel(term)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !isQuit(cmd) {
		t.Error("esc should quit")
	}
	select {
	case <-term.Backend().Quit():
	default:
		t.Error("quit key should signal the match loop")
	}
}

func TestGameModelRoutesKeys(t *testing.T) {
	term := testTerminal()
	m := newGameModel(term)

	m.Update(runeKey('w'))
	if !term.KeyState(core.Player1).IsKeyPressed("w") {
		t.Error("w press not routed to Player 1")
	}
}

func TestGameModelResize(t *testing.T) {
	term := testTerminal()
	m := newGameModel(term)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if w, h := term.Backend().Bounds(); w != 100 || h != 40-helpHeight {
		t.Errorf("Bounds() = %dx%d, want 100x%d", w, h, 40-helpHeight)
	}

	next.Update(runeKey('?'))
	if _, h := term.Backend().Bounds(); h != 40-fullHelpHeight {
		t.Errorf("full help should shrink the board to %d rows, got %d", 40-fullHelpHeight, h)
	}
}

type fakeHistory struct {
	matches []storage.MatchRecord
	stats   *storage.HistoryStats
	err     error
}

func (f fakeHistory) RecentMatches(int) ([]storage.MatchRecord, error) {
	return f.matches, f.err
}

func (f fakeHistory) Stats() (*storage.HistoryStats, error) {
	return f.stats, f.err
}

func TestHistoryModelTabs(t *testing.T) {
	src := fakeHistory{
		matches: []storage.MatchRecord{
			{MatchID: "a", Mode: "Local", EndReason: "completed", Winner: 0, Score1: 20, Score2: 10, BoardSize: 15},
			{MatchID: "b", Mode: "vs CPU", EndReason: "quit", Winner: -1, Score1: 1, Score2: 2, BoardSize: 12},
			{MatchID: "c", Mode: "Local", EndReason: "completed", Winner: 1, Score1: 5, Score2: 19, BoardSize: 12},
		},
		stats: &storage.HistoryStats{Matches: 3, Completed: 2, Wins: [2]int{1, 1}, BestScore: 20},
	}
	names := [core.PlayerCount]string{"Ann", "Bo"}
	m := NewHistoryModel(src, names, 100, 30)

	if len(m.Visible()) != 3 {
		t.Fatalf("All tab shows %d matches, want 3", len(m.Visible()))
	}
	view := m.View()
	for _, want := range []string{"MATCH HISTORY", "Ann 1 wins", "Bo won", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	local := next.(HistoryModel)
	if got := len(local.Visible()); got != 2 {
		t.Errorf("Local tab shows %d matches, want 2", got)
	}

	next, _ = local.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := len(next.(HistoryModel).Visible()); got != 3 {
		t.Errorf("back on All tab shows %d matches, want 3", got)
	}

	_, cmd := m.Update(runeKey('q'))
	if !isQuit(cmd) {
		t.Error("q should quit")
	}
}

func TestHistoryModelEmptyAndError(t *testing.T) {
	names := [core.PlayerCount]string{"Player 1", "Player 2"}

	empty := NewHistoryModel(fakeHistory{stats: &storage.HistoryStats{}}, names, 80, 24)
	if !strings.Contains(empty.View(), "No matches") {
		t.Error("empty history should say so")
	}

	failed := NewHistoryModel(fakeHistory{err: errors.New("disk on fire")}, names, 80, 24)
	if !strings.Contains(failed.View(), "disk on fire") {
		t.Error("error should be shown")
	}
}
