package multiplayer

import (
	"context"
	"sync"
	"sync/atomic"
)

// DefaultChannelCapacity is the buffer size used when none is configured.
const DefaultChannelCapacity = 4

// IntentChannel is a bounded one-writer/one-reader conduit for intents.
// Sends never block: when the buffer is full the intent is dropped.
type IntentChannel struct {
	player    PlayerID
	intents   chan Intent
	dropped   atomic.Int64
	closeOnce sync.Once
}

// NewIntentChannel creates a channel for one player.
func NewIntentChannel(player PlayerID, capacity int) *IntentChannel {
	if capacity < 1 {
		capacity = DefaultChannelCapacity
	}
	return &IntentChannel{
		player:  player,
		intents: make(chan Intent, capacity),
	}
}

// Player returns the owner of the channel.
func (c *IntentChannel) Player() PlayerID {
	return c.player
}

// TrySend queues the intent if there is room.
// Returns false when the intent was dropped.
func (c *IntentChannel) TrySend(in Intent) bool {
	select {
	case c.intents <- in:
		return true
	default:
		c.dropped.Add(1)
		return false
	}
}

// Send queues the intent, waiting for room until ctx is done.
// Used for intents that must not be lost, such as Quit.
func (c *IntentChannel) Send(ctx context.Context, in Intent) error {
	select {
	case c.intents <- in:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryRecv returns a pending intent without waiting.
func (c *IntentChannel) TryRecv() (Intent, bool) {
	select {
	case in, ok := <-c.intents:
		return in, ok
	default:
		return nil, false
	}
}

// C exposes the receive side for select statements.
func (c *IntentChannel) C() <-chan Intent {
	return c.intents
}

// Len returns the number of queued intents.
func (c *IntentChannel) Len() int {
	return len(c.intents)
}

// Dropped returns how many intents were dropped on a full buffer.
func (c *IntentChannel) Dropped() int {
	return int(c.dropped.Load())
}

// Close closes the channel. Only call once the writer has stopped.
// Safe to call multiple times.
func (c *IntentChannel) Close() {
	c.closeOnce.Do(func() {
		close(c.intents)
	})
}
