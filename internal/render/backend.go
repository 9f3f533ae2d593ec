// Package render draws a game snapshot through a small set of drawing
// primitives. Concrete back ends (terminal, headless) implement Surface,
// Tone and QuitSignal; the painter never depends on how they display.
package render

import (
	"time"

	"github.com/vovakirdan/tui-collect/internal/core"
)

// Surface is the drawing capability the match loop renders through.
// All methods are called from the match loop goroutine only.
// Coordinates are in surface units (terminal cells for the terminal back end).
type Surface interface {
	// Bounds returns the drawable width and height.
	Bounds() (w, h int)

	// Clear wipes the whole surface to the given color.
	Clear(c core.Color)

	// FillRect draws a filled rectangle, used for board cells and boxes.
	FillRect(r core.Rect, c core.Color)

	// DrawRect draws a rectangle outline.
	DrawRect(r core.Rect, c core.Color)

	// DrawLine draws an axis-aligned line, used for the board grid.
	DrawLine(x0, y0, x1, y1 int, c core.Color)

	// DrawText draws a single line of text.
	DrawText(x, y int, text string, c core.Color)

	// Present publishes the frame drawn since the last Clear.
	Present()
}

// Tone plays a short audio cue.
// Implementations must return promptly; the match loop calls it inline.
type Tone interface {
	PlayTone(d time.Duration)
}

// QuitSignal exposes the window-system close request.
type QuitSignal interface {
	// Quit returns a channel that is closed once the user asked to quit.
	Quit() <-chan struct{}
}

// Backend bundles everything the match loop needs from the platform.
type Backend interface {
	Surface
	Tone
	QuitSignal
}

// SilentTone discards tones.
type SilentTone struct{}

// PlayTone does nothing.
func (SilentTone) PlayTone(time.Duration) {}

// AsyncTone runs a blocking tone player off the caller's goroutine.
// At most one tone plays at a time; overlapping requests are dropped.
type AsyncTone struct {
	play func(d time.Duration)
	busy chan struct{}
}

// NewAsyncTone wraps a blocking player.
func NewAsyncTone(play func(d time.Duration)) *AsyncTone {
	return &AsyncTone{
		play: play,
		busy: make(chan struct{}, 1),
	}
}

// PlayTone starts the tone in the background unless one is already playing.
func (a *AsyncTone) PlayTone(d time.Duration) {
	select {
	case a.busy <- struct{}{}:
	default:
		return
	}
	go func() {
		defer func() { <-a.busy }()
		a.play(d)
	}()
}
