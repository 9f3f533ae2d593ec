package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/render"
)

// Backend is the terminal implementation of render.Backend.
// Frames are drawn into a screen buffer on the match loop goroutine and sent
// to the Bubble Tea program as FrameMsg. Resize and RequestQuit may be called
// from any goroutine.
type Backend struct {
	*render.ScreenSurface
	tone render.Tone
	send func(tea.Msg)

	mu       sync.Mutex
	pendingW int
	pendingH int
	resized  bool

	quit     chan struct{}
	quitOnce sync.Once
}

// NewBackend creates a back end with a w x h screen.
// A nil tone plays nothing.
func NewBackend(w, h int, tone render.Tone) *Backend {
	if tone == nil {
		tone = render.SilentTone{}
	}
	b := &Backend{
		tone: tone,
		quit: make(chan struct{}),
	}
	b.ScreenSurface = render.NewScreenSurface(w, h, b.present)
	return b
}

// NewBellTone rings the terminal bell on w. Overlapping tones are dropped
// while one is still sounding.
func NewBellTone(w io.Writer) render.Tone {
	return render.NewAsyncTone(func(d time.Duration) {
		//nolint:errcheck // Best-effort bell
		w.Write([]byte("\a"))
		time.Sleep(d)
	})
}

// Attach sets where frames are delivered, typically a tea.Program's Send.
// Must be called before the match loop starts.
func (b *Backend) Attach(send func(tea.Msg)) {
	b.send = send
}

func (b *Backend) present(s *core.Screen) {
	if b.send != nil {
		b.send(FrameMsg(RenderScreen(s)))
	}
}

// Resize schedules a new screen size. It takes effect on the next frame.
func (b *Backend) Resize(w, h int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pendingW, b.pendingH = max(w, 0), max(h, 0)
	b.resized = true
}

// Bounds applies a pending resize and returns the screen size.
func (b *Backend) Bounds() (int, int) {
	b.mu.Lock()
	if b.resized {
		b.ScreenSurface.Resize(b.pendingW, b.pendingH)
		b.resized = false
	}
	b.mu.Unlock()
	return b.ScreenSurface.Bounds()
}

// PlayTone plays the collection tone without blocking.
func (b *Backend) PlayTone(d time.Duration) {
	b.tone.PlayTone(d)
}

// Quit returns the channel closed when the user quits.
func (b *Backend) Quit() <-chan struct{} {
	return b.quit
}

// RequestQuit closes the quit channel. Safe to call multiple times.
func (b *Backend) RequestQuit() {
	b.quitOnce.Do(func() {
		close(b.quit)
	})
}

var _ render.Backend = (*Backend)(nil)
