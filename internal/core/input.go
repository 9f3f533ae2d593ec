package core

// PlayerID identifies one of the two players of a session.
type PlayerID int

const (
	Player1 PlayerID = iota // WASD by default, starts top-left
	Player2                 // Arrow keys by default, starts bottom-right
)

// PlayerCount is the fixed number of players in a session.
const PlayerCount = 2

// Valid reports whether the id names one of the two players.
func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

// String returns a human-readable name for the player.
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	default:
		return "Unknown"
	}
}

// Symbol returns the single-character board marker of the player.
func (p PlayerID) Symbol() rune {
	switch p {
	case Player1:
		return '1'
	case Player2:
		return '2'
	default:
		return '?'
	}
}

// Direction is one of the four cardinal movement directions.
// The order of the constants is the input priority order.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Directions lists the movement directions in input priority order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the unit step of the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// DirectionOf maps a unit step back to its direction.
// Returns DirNone for anything that is not a cardinal unit step.
func DirectionOf(dx, dy int) Direction {
	for _, d := range Directions {
		if ddx, ddy := d.Delta(); ddx == dx && ddy == dy {
			return d
		}
	}
	return DirNone
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "None"
	}
}
