// Package multiplayer provides the local two-player match: the intent
// protocol between input samplers and the match loop, the bounded intent
// channels, and the authoritative loop that owns the game state.
package multiplayer

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-collect/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// MatchID uniquely identifies a match.
type MatchID string

// NewMatchID returns a fresh random match identifier.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// MatchMode defines who controls the second player.
type MatchMode int

const (
	// MatchModeLocal is two humans sharing one keyboard.
	MatchModeLocal MatchMode = iota

	// MatchModeVsCPU is a human against a computer-controlled Player 2.
	MatchModeVsCPU

	// MatchModeCPUvsCPU is a headless match between two computer players.
	MatchModeCPUvsCPU
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeLocal:
		return "Local"
	case MatchModeVsCPU:
		return "vs CPU"
	case MatchModeCPUvsCPU:
		return "CPU vs CPU"
	default:
		return "Unknown"
	}
}

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonCompleted MatchEndReason = iota // Every item collected
	MatchEndReasonQuit                            // Window closed or a player quit
	MatchEndReasonCancelled                       // Context cancelled
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonCompleted:
		return "completed"
	case MatchEndReasonQuit:
		return "quit"
	case MatchEndReasonCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// MatchResult contains the outcome of a match.
type MatchResult struct {
	MatchID   MatchID
	Mode      MatchMode
	Reason    MatchEndReason
	Winner    PlayerID // Meaningful only when Reason is completed
	Score1    int
	Score2    int
	BoardSize int
	Items     int
	Seed      int64
	Ticks     uint64
	Dropped   int // Intents dropped because a channel was full
	Duration  time.Duration
}

// Completed reports whether every item was collected.
func (r MatchResult) Completed() bool {
	return r.Reason == MatchEndReasonCompleted
}

// MatchResultSaver persists finished matches.
// This allows the match to save results without depending on the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResult) error
}
