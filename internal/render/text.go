package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/game"
)

// Runes of the plain text board.
const (
	TextEmpty = '.'
	TextItem  = '*'
)

// BoardText returns the board as rows of space separated cells:
// '.' for empty, '*' for an uncollected item and the player symbols on top.
func BoardText(snap game.Snapshot) string {
	grid := make([][]rune, snap.Size)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(TextEmpty), snap.Size))
	}
	for _, it := range snap.Uncollected() {
		grid[it.Y][it.X] = TextItem
	}
	for _, p := range snap.Players {
		grid[p.Pos.Y][p.Pos.X] = p.ID.Symbol()
	}

	var sb strings.Builder
	for _, row := range grid {
		for _, r := range row {
			sb.WriteRune(r)
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteText prints the board followed by each player's score and priority.
func WriteText(w io.Writer, snap game.Snapshot, names [core.PlayerCount]string) error {
	if _, err := fmt.Fprintf(w, "Board %dx%d, %d items left\n\n", snap.Size, snap.Size, snap.Remaining); err != nil {
		return err
	}
	if _, err := io.WriteString(w, BoardText(snap)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "\nScores:"); err != nil {
		return err
	}
	for _, p := range snap.Players {
		if _, err := fmt.Fprintf(w, "%s: %d (Priority: %d)\n", names[p.ID], p.Score, p.Priority); err != nil {
			return err
		}
	}
	return nil
}
