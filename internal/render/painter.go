package render

import (
	"fmt"

	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/game"
)

// Theme holds the colors and labels used to paint a session.
type Theme struct {
	Background core.Color
	Grid       core.Color
	Item       core.Color
	Overlay    core.Color
	Text       core.Color
	Players    [core.PlayerCount]core.Color
	Names      [core.PlayerCount]string
}

// DefaultTheme mirrors the classic red/blue players on a light grid.
func DefaultTheme() Theme {
	return Theme{
		Background: core.ColorDefault,
		Grid:       core.ColorGray,
		Item:       core.ColorGreen,
		Overlay:    core.ColorGray,
		Text:       core.ColorBrightWhite,
		Players:    [core.PlayerCount]core.Color{core.ColorRed, core.ColorBlue},
		Names:      [core.PlayerCount]string{core.Player1.String(), core.Player2.String()},
	}
}

// Painter draws snapshots onto a Surface.
type Painter struct {
	theme Theme
}

// NewPainter creates a painter with the given theme.
func NewPainter(theme Theme) *Painter {
	return &Painter{theme: theme}
}

// Theme returns the painter's theme.
func (p *Painter) Theme() Theme {
	return p.theme
}

// Paint draws the full frame for snap and presents it.
// When snap.GameOver is set the winner announcement is drawn on top.
func (p *Painter) Paint(dst Surface, snap game.Snapshot) Layout {
	w, h := dst.Bounds()
	dst.Clear(p.theme.Background)

	layout := ComputeLayout(snap.Size, w, h)
	if layout.TooSmall {
		p.drawTooSmall(dst, snap.Size, w, h)
		dst.Present()
		return layout
	}

	p.drawHUD(dst, snap, w)
	p.drawBoard(dst, layout, snap)
	if snap.GameOver {
		p.drawWinner(dst, layout, snap)
	}

	dst.Present()
	return layout
}

func (p *Painter) drawTooSmall(dst Surface, size, w, h int) {
	needW, needH := MinSize(size)
	lines := []string{
		"Terminal too small",
		fmt.Sprintf("need %dx%d, have %dx%d", needW, needH, w, h),
	}
	y := max(0, h/2-1)
	for i, line := range lines {
		dst.DrawText(max(0, (w-len(line))/2), y+i, line, p.theme.Text)
	}
}

func (p *Painter) drawHUD(dst Surface, snap game.Snapshot, w int) {
	left := p.scoreLabel(core.Player1, snap)
	right := p.scoreLabel(core.Player2, snap)
	dst.DrawText(1, 0, left, p.theme.Players[core.Player1])
	dst.DrawText(max(0, w-len([]rune(right))-1), 0, right, p.theme.Players[core.Player2])

	center := fmt.Sprintf("Items left: %d", snap.Remaining)
	dst.DrawText(max(0, (w-len(center))/2), 0, center, p.theme.Item)
}

func (p *Painter) scoreLabel(id core.PlayerID, snap game.Snapshot) string {
	return fmt.Sprintf("■ %s: %d", p.theme.Names[id], snap.Player(id).Score)
}

func (p *Painter) drawBoard(dst Surface, l Layout, snap game.Snapshot) {
	if l.Grid {
		for i := 0; i <= snap.Size; i++ {
			x := l.gridLineX(i)
			y := l.gridLineY(i)
			dst.DrawLine(x, l.Board.Y, x, l.Board.Bottom()-1, p.theme.Grid)
			dst.DrawLine(l.Board.X, y, l.Board.Right()-1, y, p.theme.Grid)
		}
	} else {
		dst.DrawRect(l.Board, p.theme.Grid)
	}

	for _, it := range snap.Items {
		if !it.Collected {
			p.fillCell(dst, l, it.Pos, p.theme.Item)
		}
	}

	for _, pl := range snap.Players {
		color := p.theme.Players[pl.ID]
		p.fillCell(dst, l, pl.Pos, color)
		if l.CellW >= 3 {
			r := l.CellRect(pl.Pos)
			dst.DrawText(r.X+r.W/2, r.Y+r.H/2, string(pl.ID.Symbol()), p.theme.Text)
		}
	}
}

// fillCell draws a filled board cell.
func (p *Painter) fillCell(dst Surface, l Layout, pos core.Point, c core.Color) {
	dst.FillRect(l.CellRect(pos), c)
}

func (p *Painter) drawWinner(dst Surface, l Layout, snap game.Snapshot) {
	dst.FillRect(l.Board, p.theme.Overlay)

	winner := snap.Winner
	color := p.theme.Players[winner]

	lines := []string{
		fmt.Sprintf("%s Wins!", p.theme.Names[winner]),
		"",
		fmt.Sprintf("%s: %d", p.theme.Names[core.Player1], snap.Player(core.Player1).Score),
		fmt.Sprintf("%s: %d", p.theme.Names[core.Player2], snap.Player(core.Player2).Score),
	}
	textW := 0
	for _, line := range lines {
		textW = max(textW, len(line))
	}

	boxW := min(l.Board.W, max(l.Board.W/2, textW+4))
	boxH := min(l.Board.H, len(lines)+2)
	box := core.NewRect(l.Board.X+(l.Board.W-boxW)/2, l.Board.Y+(l.Board.H-boxH)/2, boxW, boxH)

	dst.FillRect(box, core.ColorBlack)
	dst.DrawRect(box, color)
	for i, line := range lines {
		if line == "" {
			continue
		}
		c := color
		if i > 0 {
			c = p.theme.Players[core.PlayerID(i-2)]
		}
		dst.DrawText(box.X+(box.W-len(line))/2, box.Y+1+i, line, c)
	}
}
