package render

import (
	"testing"

	"github.com/vovakirdan/tui-collect/internal/core"
)

func TestComputeLayoutModes(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		w, h     int
		grid     bool
		tooSmall bool
	}{
		{"large terminal uses grid", 10, 100, 60, true, false},
		{"standard terminal compact", 15, 80, 24, false, false},
		{"exact compact fit", 20, 42, 24, false, false},
		{"too narrow", 20, 41, 60, false, true},
		{"too short", 20, 100, 23, false, true},
		{"zero surface", 10, 0, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ComputeLayout(tt.size, tt.w, tt.h)
			if l.TooSmall != tt.tooSmall {
				t.Fatalf("TooSmall = %v, expected %v", l.TooSmall, tt.tooSmall)
			}
			if tt.tooSmall {
				return
			}
			if l.Grid != tt.grid {
				t.Errorf("Grid = %v, expected %v", l.Grid, tt.grid)
			}
			if l.Board.Right() > tt.w || l.Board.Bottom() > tt.h {
				t.Errorf("board %+v does not fit %dx%d", l.Board, tt.w, tt.h)
			}
			if l.Board.Y != HUDHeight {
				t.Errorf("board should start below the HUD, got y=%d", l.Board.Y)
			}
		})
	}
}

func TestCellRectsInsideBoard(t *testing.T) {
	for _, dims := range [][2]int{{100, 60}, {80, 24}} {
		l := ComputeLayout(10, dims[0], dims[1])
		inner := l.Board.Inset(1)
		seen := make(map[core.Point]bool)

		for y := 0; y < 10; y++ {
			for x := 0; x < 10; x++ {
				r := l.CellRect(core.Point{X: x, Y: y})
				if !inner.Contains(r.X, r.Y) || !inner.Contains(r.Right()-1, r.Bottom()-1) {
					t.Fatalf("%v: cell (%d,%d) rect %+v outside board %+v", dims, x, y, r, l.Board)
				}
				origin := core.Point{X: r.X, Y: r.Y}
				if seen[origin] {
					t.Fatalf("%v: cells overlap at %+v", dims, origin)
				}
				seen[origin] = true
			}
		}
	}
}

func TestMinSizeMatchesCompactLayout(t *testing.T) {
	for size := 10; size <= 24; size++ {
		w, h := MinSize(size)
		if ComputeLayout(size, w, h).TooSmall {
			t.Errorf("size %d should fit in %dx%d", size, w, h)
		}
		if !ComputeLayout(size, w-1, h).TooSmall || !ComputeLayout(size, w, h-1).TooSmall {
			t.Errorf("size %d should not fit below %dx%d", size, w, h)
		}
	}
}
