package render

import "github.com/vovakirdan/tui-collect/internal/core"

// HUDHeight is the number of rows reserved above the board.
const HUDHeight = 2

// Layout maps board cells to surface rectangles.
type Layout struct {
	Board    core.Rect // Outer rectangle including grid lines or border
	CellW    int       // Fill width of a single cell
	CellH    int       // Fill height of a single cell
	Grid     bool      // Grid lines are drawn between cells
	TooSmall bool      // The surface cannot hold the board
	size     int
}

// ComputeLayout fits a board of the given size into a w x h surface.
// It prefers a grid with lines between cells, falls back to a compact
// two-column-per-cell board with a border, and otherwise reports TooSmall.
func ComputeLayout(size, w, h int) Layout {
	availH := h - HUDHeight
	if size <= 0 || w <= 0 || availH <= 0 {
		return Layout{TooSmall: true, size: size}
	}

	// Grid mode: each cell is a content area plus one line column/row.
	maxCellW := (w-1)/size - 1
	maxCellH := (availH-1)/size - 1
	cellH := min(maxCellH, max(1, (maxCellW-1)/2))
	cellW := min(maxCellW, 2*cellH+1)
	if cellW >= 3 && cellH >= 1 {
		bw := size*(cellW+1) + 1
		bh := size*(cellH+1) + 1
		return Layout{
			Board: core.NewRect((w-bw)/2, HUDHeight, bw, bh),
			CellW: cellW,
			CellH: cellH,
			Grid:  true,
			size:  size,
		}
	}

	// Compact mode: 2x1 cells inside a border.
	bw := size*2 + 2
	bh := size + 2
	if bw <= w && bh <= availH {
		return Layout{
			Board: core.NewRect((w-bw)/2, HUDHeight, bw, bh),
			CellW: 2,
			CellH: 1,
			size:  size,
		}
	}

	return Layout{TooSmall: true, size: size}
}

// MinSize returns the smallest surface that can hold a board of this size.
func MinSize(size int) (w, h int) {
	return size*2 + 2, size + 2 + HUDHeight
}

// CellRect returns the fill rectangle of the cell at p.
func (l Layout) CellRect(p core.Point) core.Rect {
	if l.Grid {
		return core.NewRect(
			l.Board.X+1+p.X*(l.CellW+1),
			l.Board.Y+1+p.Y*(l.CellH+1),
			l.CellW,
			l.CellH,
		)
	}
	return core.NewRect(l.Board.X+1+p.X*l.CellW, l.Board.Y+1+p.Y*l.CellH, l.CellW, l.CellH)
}

// gridLineX returns the surface column of the i-th vertical grid line.
func (l Layout) gridLineX(i int) int {
	return l.Board.X + i*(l.CellW+1)
}

// gridLineY returns the surface row of the i-th horizontal grid line.
func (l Layout) gridLineY(i int) int {
	return l.Board.Y + i*(l.CellH+1)
}
