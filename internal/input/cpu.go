package input

import (
	"math/rand"

	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/game"
)

// CPU settings.
const (
	DefaultThinkEvery = 4    // Snapshots between target decisions
	DefaultAccuracy   = 0.85 // Chance a decision heads for the target
)

// CPUConfig tunes a computer-controlled player.
type CPUConfig struct {
	ThinkEvery int     // Snapshots between decisions, at least 1
	Accuracy   float64 // 0..1, 1 = always heads for the nearest item
}

// DefaultCPUConfig returns a beatable opponent.
func DefaultCPUConfig() CPUConfig {
	return CPUConfig{ThinkEvery: DefaultThinkEvery, Accuracy: DefaultAccuracy}
}

// CPU drives a player by holding keys. It watches snapshots published by
// the match loop and exposes its decision as a KeyState, so it feeds a
// regular Sampler like a human keyboard would.
type CPU struct {
	player core.PlayerID
	keys   KeySet
	held   *HeldKeys
	cfg    CPUConfig
	rng    *rand.Rand

	frames int
	target core.Point
	aimed  bool
	wander core.Direction
	dir    core.Direction
}

// NewCPU creates a CPU for player using the given bindings.
func NewCPU(player core.PlayerID, keys KeySet, cfg CPUConfig, seed int64) *CPU {
	if cfg.ThinkEvery < 1 {
		cfg.ThinkEvery = 1
	}
	cfg.Accuracy = min(max(cfg.Accuracy, 0), 1)
	return &CPU{
		player: player,
		keys:   keys,
		held:   NewHeldKeys(),
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Player returns the controlled player.
func (c *CPU) Player() core.PlayerID {
	return c.player
}

// Keys returns the bindings the CPU presses.
func (c *CPU) Keys() KeySet {
	return c.keys
}

// IsKeyPressed implements KeyState.
func (c *CPU) IsKeyPressed(k Key) bool {
	return c.held.IsKeyPressed(k)
}

// Direction returns the direction currently held.
func (c *CPU) Direction() core.Direction {
	return c.dir
}

// Observe updates the held key from a snapshot.
// Must be called from one goroutine only.
func (c *CPU) Observe(snap game.Snapshot) {
	dir := c.decide(snap)
	if dir == c.dir {
		return
	}
	c.held.ReleaseAll()
	if key := c.keys.Key(dir); key != "" {
		c.held.Hold(key)
	}
	c.dir = dir
}

func (c *CPU) decide(snap game.Snapshot) core.Direction {
	if snap.GameOver {
		return core.DirNone
	}
	me := snap.Player(c.player).Pos

	think := c.frames%c.cfg.ThinkEvery == 0
	c.frames++

	if c.aimed && (me == c.target || !hasItemAt(snap, c.target)) {
		c.aimed = false
		think = true
	}

	if think {
		c.wander = core.DirNone
		if c.rng.Float64() >= c.cfg.Accuracy {
			c.wander = core.Directions[c.rng.Intn(len(core.Directions))]
		}
		c.target, c.aimed = snap.NearestItem(me)
	}

	if c.wander != core.DirNone {
		return c.wander
	}
	if !c.aimed {
		return core.DirNone
	}
	if me == c.target {
		// Standing on an item only collects it on entry, so step off first.
		return stepOff(me, snap.Size)
	}
	return stepToward(me, c.target)
}

func stepOff(p core.Point, size int) core.Direction {
	for _, d := range core.Directions {
		dx, dy := d.Delta()
		if n := p.Add(dx, dy); n.X >= 0 && n.Y >= 0 && n.X < size && n.Y < size {
			return d
		}
	}
	return core.DirNone
}

// stepToward picks the direction that closes the larger gap first.
func stepToward(from, to core.Point) core.Direction {
	dx, dy := to.X-from.X, to.Y-from.Y
	if dx == 0 && dy == 0 {
		return core.DirNone
	}
	if core.Abs(dx) >= core.Abs(dy) {
		if dx > 0 {
			return core.DirRight
		}
		return core.DirLeft
	}
	if dy > 0 {
		return core.DirDown
	}
	return core.DirUp
}

func hasItemAt(snap game.Snapshot, p core.Point) bool {
	for _, it := range snap.Items {
		if !it.Collected && it.Pos == p {
			return true
		}
	}
	return false
}
