package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/input"
	"github.com/vovakirdan/tui-collect/internal/render"
)

// Rows below the board used by the short and the full help.
const (
	helpHeight     = 1
	fullHelpHeight = 2
)

// Options configures a terminal session.
type Options struct {
	Width  int // Initial terminal size, corrected by the first WindowSizeMsg
	Height int
	Names  [core.PlayerCount]string
	Keys   [core.PlayerCount]input.KeySet
	Tone   render.Tone // nil plays nothing
}

// Terminal owns the Bubble Tea program and the back end of one match.
type Terminal struct {
	backend *Backend
	router  *KeyRouter
	keys    GameKeyMap
}

// NewTerminal creates a terminal session.
func NewTerminal(opts Options) *Terminal {
	return &Terminal{
		backend: NewBackend(opts.Width, max(opts.Height-helpHeight, 0), opts.Tone),
		router:  NewKeyRouter(opts.Keys),
		keys:    NewGameKeyMap(opts.Names, opts.Keys),
	}
}

// Backend returns the render back end for the match loop.
func (t *Terminal) Backend() *Backend {
	return t.backend
}

// KeyState returns the key state for a player's sampler.
func (t *Terminal) KeyState(id core.PlayerID) input.KeyState {
	return t.router.KeyState(id)
}

// Run starts the Bubble Tea program and calls play on another goroutine.
// play should run the match loop against Backend; when it returns the
// program exits. When the user quits first, the back end's quit signal
// fires and Run waits for play to return.
func (t *Terminal) Run(ctx context.Context, play func(ctx context.Context)) error {
	model := newGameModel(t)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	t.backend.Attach(p.Send)

	done := make(chan struct{})
	go func() {
		defer close(done)
		play(ctx)
		p.Send(MatchDoneMsg{})
	}()

	_, err := p.Run()
	t.backend.RequestQuit()
	<-done

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// gameModel displays frames and routes keys. It never touches game state.
type gameModel struct {
	backend *Backend
	router  *KeyRouter
	keys    GameKeyMap
	help    help.Model
	frame   string
	width   int
	height  int
	done    bool
}

func newGameModel(t *Terminal) gameModel {
	h := help.New()
	h.ShowAll = false
	return gameModel{
		backend: t.backend,
		router:  t.router,
		keys:    t.keys,
		help:    h,
	}
}

// Init implements tea.Model.
func (m gameModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m gameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resizeBoard()
		return m, nil

	case FrameMsg:
		m.frame = string(msg)
		return m, nil

	case MatchDoneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m gameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.done = true
		m.backend.RequestQuit()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeBoard()
		return m, nil
	}

	m.router.Route(msg)
	return m, nil
}

// resizeBoard gives the board whatever the help does not use.
func (m gameModel) resizeBoard() {
	if m.width == 0 && m.height == 0 {
		return
	}
	rows := helpHeight
	if m.help.ShowAll {
		rows = fullHelpHeight
	}
	m.backend.Resize(m.width, m.height-rows)
}

// View implements tea.Model.
func (m gameModel) View() string {
	if m.done {
		return ""
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return m.frame + "\n" + helpStyle.Render(m.help.View(m.keys))
}
