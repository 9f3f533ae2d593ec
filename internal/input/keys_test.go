package input

import (
	"testing"

	"github.com/vovakirdan/tui-collect/internal/core"
)

func TestKeySetDirectionPriority(t *testing.T) {
	keys := DefaultKeys(core.Player1)

	tests := []struct {
		name string
		held []Key
		want core.Direction
	}{
		{"nothing", nil, core.DirNone},
		{"right", []Key{"d"}, core.DirRight},
		{"up wins over right", []Key{"d", "w"}, core.DirUp},
		{"down wins over left", []Key{"a", "s"}, core.DirDown},
		{"left wins over right", []Key{"d", "a"}, core.DirLeft},
		{"other player's keys", []Key{"up", "left"}, core.DirNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Direction(NewHeldKeys(tt.held...)); got != tt.want {
				t.Errorf("Direction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultKeys(t *testing.T) {
	p2 := DefaultKeys(core.Player2)
	if p2.Up != "up" || p2.Right != "right" {
		t.Errorf("Player 2 keys = %+v, want arrows", p2)
	}
	if p2.Quit != "" {
		t.Errorf("Player 2 should have no quit key, got %q", p2.Quit)
	}
	for _, id := range []core.PlayerID{core.Player1, core.Player2} {
		if err := DefaultKeys(id).Validate(); err != nil {
			t.Errorf("DefaultKeys(%v).Validate() = %v", id, err)
		}
	}
}

func TestKeySetValidate(t *testing.T) {
	missing := KeySet{Up: "w", Down: "s", Left: "a"}
	if err := missing.Validate(); err == nil {
		t.Error("expected error for unbound right key")
	}
	dup := KeySet{Up: "w", Down: "s", Left: "a", Right: "d", Quit: "w"}
	if err := dup.Validate(); err == nil {
		t.Error("expected error for duplicate key")
	}
}

func TestHeldKeys(t *testing.T) {
	h := NewHeldKeys("w")
	if !h.IsKeyPressed("w") {
		t.Error("w should be held")
	}
	// Polled state is not consumed by reading.
	if !h.IsKeyPressed("w") {
		t.Error("w should still be held")
	}
	h.Hold("a")
	h.Release("w")
	if h.IsKeyPressed("w") || !h.IsKeyPressed("a") {
		t.Error("Hold/Release not applied")
	}
	h.ReleaseAll()
	if h.IsKeyPressed("a") {
		t.Error("ReleaseAll left a held")
	}
}

func TestPressTracker(t *testing.T) {
	tr := NewPressTracker()
	if tr.IsKeyPressed("w") {
		t.Fatal("fresh tracker reports a press")
	}

	tr.Press("w")
	tr.Press("w")
	if !tr.IsKeyPressed("w") || !tr.IsKeyPressed("w") {
		t.Error("expected two presses")
	}
	if tr.IsKeyPressed("w") {
		t.Error("presses should be consumed")
	}

	for range 10 {
		tr.Press("d")
	}
	if got := tr.Pending("d"); got != MaxPendingPresses {
		t.Errorf("Pending() = %d, want %d", got, MaxPendingPresses)
	}

	tr.Reset()
	if tr.Pending("d") != 0 {
		t.Error("Reset left pending presses")
	}
}
