package game

import (
	"github.com/vovakirdan/tui-collect/internal/core"
)

// Snapshot is an immutable copy of a State for renderers and observers.
// It shares no memory with the State it was taken from.
type Snapshot struct {
	Tick      uint64
	Size      int
	Players   [core.PlayerCount]Player
	Items     []Item
	Remaining int
	GameOver  bool
	Winner    core.PlayerID
}

// Snapshot captures the current state tagged with the loop tick.
func (s *State) Snapshot(tick uint64) Snapshot {
	items := make([]Item, len(s.items))
	copy(items, s.items)

	gameOver := s.IsGameOver()
	return Snapshot{
		Tick:      tick,
		Size:      s.size,
		Players:   s.players,
		Items:     items,
		Remaining: s.remaining,
		GameOver:  gameOver,
		Winner:    s.Winner(),
	}
}

// Player returns the snapshot of a single player.
func (s Snapshot) Player(id core.PlayerID) Player {
	return s.Players[id]
}

// Uncollected returns the positions of items still on the board.
func (s Snapshot) Uncollected() []core.Point {
	out := make([]core.Point, 0, s.Remaining)
	for _, it := range s.Items {
		if !it.Collected {
			out = append(out, it.Pos)
		}
	}
	return out
}

// NearestItem returns the uncollected item closest to from.
// Ties resolve to the earliest item. ok is false when nothing is left.
func (s Snapshot) NearestItem(from core.Point) (p core.Point, ok bool) {
	best := -1
	for _, it := range s.Items {
		if it.Collected {
			continue
		}
		d := from.ManhattanDist(it.Pos)
		if best < 0 || d < best {
			best = d
			p = it.Pos
		}
	}
	return p, best >= 0
}
