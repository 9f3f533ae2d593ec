// Package board generates the randomized board for a collect session.
package board

import (
	"math/rand"

	"github.com/vovakirdan/tui-collect/internal/core"
)

// Size generation constants.
const (
	drawMin     = 10 // Inclusive lower bound of the size draw
	drawMax     = 99 // Inclusive upper bound of the size draw
	drawFactor  = 3
	drawModulus = 25
	minSize     = 10 // Results below this are bumped by sizeBump
	sizeBump    = 15

	// ItemsPerRow is the number of items generated per board row.
	ItemsPerRow = 2
)

// Board is the immutable layout of one session: its size and item positions.
type Board struct {
	Size  int
	Items []core.Point
}

// SizeFor maps a draw in [10, 99] to a board size.
// The mapping is not uniform; sizes fall in [10, 24].
func SizeFor(draw int) int {
	size := (draw * drawFactor) % drawModulus
	if size < minSize {
		size += sizeBump
	}
	return size
}

// Generate draws a board size and places 2*size items uniformly.
// Items may share a cell.
func Generate(rng *rand.Rand) Board {
	size := SizeFor(drawMin + rng.Intn(drawMax-drawMin+1))
	return Board{
		Size:  size,
		Items: PlaceItems(rng, size, ItemsPerRow*size),
	}
}

// PlaceItems draws n positions with X and Y uniform in [0, size-1].
func PlaceItems(rng *rand.Rand, size, n int) []core.Point {
	items := make([]core.Point, n)
	for i := range items {
		items[i] = core.Point{X: rng.Intn(size), Y: rng.Intn(size)}
	}
	return items
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
