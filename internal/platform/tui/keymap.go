package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/input"
)

// GameKeyMap defines the key bindings shown while a match runs.
type GameKeyMap struct {
	Players [core.PlayerCount]key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Players[core.Player1], k.Players[core.Player2], k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Players[core.Player1], k.Players[core.Player2]},
		{k.Help, k.Quit},
	}
}

// NewGameKeyMap builds the help bindings for the players' key sets.
func NewGameKeyMap(names [core.PlayerCount]string, sets [core.PlayerCount]input.KeySet) GameKeyMap {
	var km GameKeyMap
	for i, set := range sets {
		keys := make([]string, 0, 5)
		for _, k := range set.Keys() {
			keys = append(keys, string(k))
		}
		km.Players[i] = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(moveHelp(set), "move "+names[i]),
		)
	}
	km.Help = key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more help"),
	)
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	)
	return km
}

// helpOrder is the order movement keys are listed in help text.
// It differs from the input priority order in core.Directions.
var helpOrder = [...]core.Direction{core.DirUp, core.DirLeft, core.DirDown, core.DirRight}

// moveHelp renders the movement keys compactly, e.g. "wasd" or "↑←↓→".
func moveHelp(set input.KeySet) string {
	arrows := map[input.Key]string{"up": "↑", "down": "↓", "left": "←", "right": "→"}
	var parts []string
	single := true
	for _, d := range helpOrder {
		k := set.Key(d)
		if a, ok := arrows[k]; ok {
			parts = append(parts, a)
			continue
		}
		if len([]rune(string(k))) != 1 {
			single = false
		}
		parts = append(parts, string(k))
	}
	if single {
		return strings.Join(parts, "")
	}
	return strings.Join(parts, "/")
}

// KeyRouter forwards key events to the press tracker of the player who owns
// the key. It is the terminal's stand-in for a polled keyboard.
type KeyRouter struct {
	owners   map[input.Key]core.PlayerID
	trackers [core.PlayerCount]*input.PressTracker
}

// NewKeyRouter creates a router for the players' key sets.
func NewKeyRouter(sets [core.PlayerCount]input.KeySet) *KeyRouter {
	r := &KeyRouter{owners: make(map[input.Key]core.PlayerID)}
	for i, set := range sets {
		r.trackers[i] = input.NewPressTracker()
		for _, k := range set.Keys() {
			r.owners[k] = core.PlayerID(i)
		}
	}
	return r
}

// KeyState returns the key state a player's sampler should read.
func (r *KeyRouter) KeyState(id core.PlayerID) input.KeyState {
	return r.trackers[id]
}

// Route records a key event. Returns false if no player owns the key.
func (r *KeyRouter) Route(msg tea.KeyMsg) bool {
	k := input.Key(msg.String())
	id, ok := r.owners[k]
	if !ok {
		return false
	}
	r.trackers[id].Press(k)
	return true
}
