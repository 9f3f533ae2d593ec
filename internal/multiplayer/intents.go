package multiplayer

import "github.com/vovakirdan/tui-collect/internal/core"

// Intent is a message from an input sampler to the match loop.
// Implementations are Move and Quit.
type Intent interface {
	intent()
	// From returns the player the intent belongs to.
	From() PlayerID
}

// Move requests a single-cell step in a cardinal direction.
type Move struct {
	Player PlayerID
	DX, DY int
}

func (Move) intent() {}

// From returns the moving player.
func (m Move) From() PlayerID { return m.Player }

// Valid reports whether the move is one of the four unit steps.
func (m Move) Valid() bool {
	return m.Player.Valid() && core.DirectionOf(m.DX, m.DY) != core.DirNone
}

// MoveIn builds a Move for the given direction.
func MoveIn(player PlayerID, dir core.Direction) Move {
	dx, dy := dir.Delta()
	return Move{Player: player, DX: dx, DY: dy}
}

// Quit asks the match to shut down.
type Quit struct {
	Player PlayerID
}

func (Quit) intent() {}

// From returns the quitting player.
func (q Quit) From() PlayerID { return q.Player }
