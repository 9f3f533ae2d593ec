// Package input samples per-player key state and turns it into intents.
package input

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-collect/internal/core"
)

// Key names a physical key using Bubble Tea's key string form
// ("w", "up", "ctrl+c").
type Key string

// KeyState answers whether a key is currently held.
type KeyState interface {
	IsKeyPressed(k Key) bool
}

// KeySet is one player's bindings. Quit is optional.
type KeySet struct {
	Up    Key
	Down  Key
	Left  Key
	Right Key
	Quit  Key
}

// DefaultKeys returns WASD for Player 1 and the arrow keys for Player 2.
func DefaultKeys(player core.PlayerID) KeySet {
	if player == core.Player2 {
		return KeySet{Up: "up", Down: "down", Left: "left", Right: "right"}
	}
	return KeySet{Up: "w", Down: "s", Left: "a", Right: "d"}
}

// Key returns the binding for a direction.
func (k KeySet) Key(d core.Direction) Key {
	switch d {
	case core.DirUp:
		return k.Up
	case core.DirDown:
		return k.Down
	case core.DirLeft:
		return k.Left
	case core.DirRight:
		return k.Right
	default:
		return ""
	}
}

// Direction returns the first held direction in the order up, down, left,
// right, or DirNone.
func (k KeySet) Direction(ks KeyState) core.Direction {
	for _, d := range core.Directions {
		if key := k.Key(d); key != "" && ks.IsKeyPressed(key) {
			return d
		}
	}
	return core.DirNone
}

// Keys returns every bound key, movement keys first.
func (k KeySet) Keys() []Key {
	keys := []Key{k.Up, k.Down, k.Left, k.Right}
	if k.Quit != "" {
		keys = append(keys, k.Quit)
	}
	return keys
}

// Validate checks that every movement key is bound and no key repeats.
func (k KeySet) Validate() error {
	seen := make(map[Key]bool)
	for i, key := range k.Keys() {
		if key == "" {
			return fmt.Errorf("%s key is not bound", core.Directions[i])
		}
		if seen[key] {
			return fmt.Errorf("key %q is bound twice", key)
		}
		seen[key] = true
	}
	return nil
}

// HeldKeys is a KeyState with explicit hold and release, like a polled
// keyboard. Safe for concurrent use.
type HeldKeys struct {
	mu   sync.Mutex
	held map[Key]bool
}

// NewHeldKeys creates a key state with the given keys held.
func NewHeldKeys(keys ...Key) *HeldKeys {
	h := &HeldKeys{held: make(map[Key]bool)}
	for _, k := range keys {
		h.held[k] = true
	}
	return h
}

// Hold marks a key as held.
func (h *HeldKeys) Hold(k Key) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.held[k] = true
}

// Release marks a key as released.
func (h *HeldKeys) Release(k Key) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.held, k)
}

// ReleaseAll releases every key.
func (h *HeldKeys) ReleaseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.held)
}

// IsKeyPressed reports whether k is held.
func (h *HeldKeys) IsKeyPressed(k Key) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.held[k]
}

// MaxPendingPresses caps how many presses a PressTracker remembers per key.
const MaxPendingPresses = 3

// PressTracker is a KeyState fed by key press events.
// Terminals report presses and auto-repeats but never releases, so each
// event counts as one held sample: IsKeyPressed consumes a pending press.
// Safe for concurrent use.
type PressTracker struct {
	mu      sync.Mutex
	pending map[Key]int
}

// NewPressTracker returns an empty tracker.
func NewPressTracker() *PressTracker {
	return &PressTracker{pending: make(map[Key]int)}
}

// Press records a key event.
func (t *PressTracker) Press(k Key) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending[k] < MaxPendingPresses {
		t.pending[k]++
	}
}

// IsKeyPressed reports and consumes one pending press of k.
func (t *PressTracker) IsKeyPressed(k Key) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.pending[k]
	if n == 0 {
		return false
	}
	if n == 1 {
		delete(t.pending, k)
	} else {
		t.pending[k] = n - 1
	}
	return true
}

// Pending returns the number of unconsumed presses of k.
func (t *PressTracker) Pending(k Key) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending[k]
}

// Reset drops all pending presses.
func (t *PressTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.pending)
}
