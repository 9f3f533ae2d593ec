package render

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-collect/internal/core"
)

// Runes used by ScreenSurface.
const (
	runeFill  = '█'
	runeHLine = '─'
	runeVLine = '│'
	runeCross = '┼'
)

// ScreenSurface draws into a core.Screen.
// It is the headless back end and the drawing half of the terminal back end.
type ScreenSurface struct {
	screen    *core.Screen
	onPresent func(*core.Screen)
	frames    int
}

// NewScreenSurface creates a surface of the given size.
// onPresent, if not nil, receives the screen on every Present.
func NewScreenSurface(w, h int, onPresent func(*core.Screen)) *ScreenSurface {
	return &ScreenSurface{
		screen:    core.NewScreen(w, h),
		onPresent: onPresent,
	}
}

// Screen returns the underlying buffer.
func (s *ScreenSurface) Screen() *core.Screen {
	return s.screen
}

// Resize changes the drawable area.
func (s *ScreenSurface) Resize(w, h int) {
	s.screen.Resize(w, h)
}

// Frames returns how many frames were presented.
func (s *ScreenSurface) Frames() int {
	return s.frames
}

// Bounds returns the screen dimensions.
func (s *ScreenSurface) Bounds() (int, int) {
	return s.screen.Width(), s.screen.Height()
}

// Clear wipes the screen.
func (s *ScreenSurface) Clear(c core.Color) {
	s.screen.Fill(' ', c)
}

// FillRect fills r with block characters.
func (s *ScreenSurface) FillRect(r core.Rect, c core.Color) {
	s.screen.DrawRect(r, runeFill, c)
}

// DrawRect draws a box outline.
func (s *ScreenSurface) DrawRect(r core.Rect, c core.Color) {
	s.screen.DrawBox(r, c)
}

// DrawLine draws a horizontal or vertical line. Crossing lines join.
// Diagonal lines are not supported and are ignored.
func (s *ScreenSurface) DrawLine(x0, y0, x1, y1 int, c core.Color) {
	switch {
	case y0 == y1:
		for x := min(x0, x1); x <= max(x0, x1); x++ {
			s.plotLine(x, y0, runeHLine, runeVLine, c)
		}
	case x0 == x1:
		for y := min(y0, y1); y <= max(y0, y1); y++ {
			s.plotLine(x0, y, runeVLine, runeHLine, c)
		}
	}
}

func (s *ScreenSurface) plotLine(x, y int, r, crossing rune, c core.Color) {
	switch s.screen.Get(x, y) {
	case crossing, runeCross:
		r = runeCross
	}
	s.screen.SetCell(x, y, core.Cell{Rune: r, Color: c})
}

// DrawText writes text at (x, y).
func (s *ScreenSurface) DrawText(x, y int, text string, c core.Color) {
	s.screen.DrawText(x, y, text, c)
}

// Present counts the frame and hands the screen to the callback.
func (s *ScreenSurface) Present() {
	s.frames++
	if s.onPresent != nil {
		s.onPresent(s.screen)
	}
}

// Headless is a complete Backend without a terminal.
// Tones are recorded; RequestQuit triggers the quit signal.
type Headless struct {
	*ScreenSurface

	mu    sync.Mutex
	tones []time.Duration

	quit     chan struct{}
	quitOnce sync.Once
}

// NewHeadless creates a headless back end with a w x h screen.
func NewHeadless(w, h int) *Headless {
	return &Headless{
		ScreenSurface: NewScreenSurface(w, h, nil),
		quit:          make(chan struct{}),
	}
}

// PlayTone records the tone.
func (h *Headless) PlayTone(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tones = append(h.tones, d)
}

// Tones returns the number of tones played.
func (h *Headless) Tones() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.tones)
}

// Quit returns the quit channel.
func (h *Headless) Quit() <-chan struct{} {
	return h.quit
}

// RequestQuit simulates the user closing the window.
// Safe to call multiple times.
func (h *Headless) RequestQuit() {
	h.quitOnce.Do(func() {
		close(h.quit)
	})
}
