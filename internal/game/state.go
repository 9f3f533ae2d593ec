// Package game holds the authoritative state of a collect session and the
// move-and-collect rule. It is not safe for concurrent use: a single goroutine
// (the match loop) owns and mutates a State.
package game

import (
	"github.com/vovakirdan/tui-collect/internal/board"
	"github.com/vovakirdan/tui-collect/internal/core"
)

// Player is one of the two competitors.
type Player struct {
	ID       core.PlayerID
	Pos      core.Point
	Score    int
	Priority int // Score + 1, informational only
}

// Item is a collectible placed on the board.
type Item struct {
	Pos       core.Point
	Collected bool
}

// Collection describes a single collection event.
type Collection struct {
	Player    core.PlayerID
	Item      int // Index of the collected item in creation order
	Pos       core.Point
	Score     int // Player score after the collection
	Remaining int // Uncollected items left on the board
}

// CollectListener is notified synchronously for every collection event.
type CollectListener interface {
	OnCollect(c Collection)
}

// CollectFunc adapts a function to CollectListener.
type CollectFunc func(c Collection)

// OnCollect calls f(c).
func (f CollectFunc) OnCollect(c Collection) { f(c) }

// State is the single source of truth for one session.
type State struct {
	size      int
	players   [core.PlayerCount]Player
	items     []Item
	remaining int
	moves     [core.PlayerCount]int
	rejected  [core.PlayerCount]int
	listener  CollectListener
}

// New creates a session state for a board of the given size.
// Player 1 starts at (0, 0) and Player 2 at (size-1, size-1).
func New(size int, items []core.Point) *State {
	if size < 1 {
		size = 1
	}
	s := &State{
		size:      size,
		items:     make([]Item, len(items)),
		remaining: len(items),
	}
	for i, p := range items {
		s.items[i] = Item{Pos: p}
	}
	s.players[core.Player1] = Player{ID: core.Player1, Pos: core.Point{X: 0, Y: 0}, Priority: 1}
	s.players[core.Player2] = Player{ID: core.Player2, Pos: core.Point{X: size - 1, Y: size - 1}, Priority: 1}
	return s
}

// FromBoard creates a session state from a generated board.
func FromBoard(b board.Board) *State {
	return New(b.Size, b.Items)
}

// SetListener registers the collection listener. Nil disables notifications.
func (s *State) SetListener(l CollectListener) {
	s.listener = l
}

// Size returns the board edge length.
func (s *State) Size() int {
	return s.size
}

// Player returns a copy of the given player.
func (s *State) Player(id core.PlayerID) Player {
	return s.players[id]
}

// SetPosition places a player directly, clamped to the board.
// Only used to set up sessions; it never collects.
func (s *State) SetPosition(id core.PlayerID, p core.Point) {
	s.players[id].Pos = core.Point{
		X: core.Clamp(p.X, 0, s.size-1),
		Y: core.Clamp(p.Y, 0, s.size-1),
	}
}

// InBounds reports whether p lies on the board.
func (s *State) InBounds(p core.Point) bool {
	return p.X >= 0 && p.X < s.size && p.Y >= 0 && p.Y < s.size
}

// TryMove moves a player one cell and collects at most one item.
// Out-of-bounds destinations leave the position unchanged and return false.
// Returns true only when an item was collected.
func (s *State) TryMove(id core.PlayerID, dx, dy int) bool {
	if !id.Valid() {
		return false
	}
	p := &s.players[id]
	next := p.Pos.Add(dx, dy)
	if !s.InBounds(next) {
		s.rejected[id]++
		return false
	}
	p.Pos = next
	s.moves[id]++

	for i := range s.items {
		it := &s.items[i]
		if it.Collected || it.Pos != p.Pos {
			continue
		}
		it.Collected = true
		s.remaining--
		p.Score++
		p.Priority = p.Score + 1
		if s.listener != nil {
			s.listener.OnCollect(Collection{
				Player:    id,
				Item:      i,
				Pos:       it.Pos,
				Score:     p.Score,
				Remaining: s.remaining,
			})
		}
		return true
	}
	return false
}

// ItemCount returns the total number of items, collected or not.
func (s *State) ItemCount() int {
	return len(s.items)
}

// Remaining returns the number of uncollected items.
func (s *State) Remaining() int {
	return s.remaining
}

// IsGameOver reports whether every item has been collected.
func (s *State) IsGameOver() bool {
	for _, it := range s.items {
		if !it.Collected {
			return false
		}
	}
	return true
}

// Winner returns the player with the higher score. Ties go to Player 1.
func (s *State) Winner() core.PlayerID {
	if s.players[core.Player2].Score > s.players[core.Player1].Score {
		return core.Player2
	}
	return core.Player1
}

// Moves returns how many moves a player committed.
func (s *State) Moves(id core.PlayerID) int {
	return s.moves[id]
}

// Rejected returns how many out-of-bounds moves a player attempted.
func (s *State) Rejected(id core.PlayerID) int {
	return s.rejected[id]
}
