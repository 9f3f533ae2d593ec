// Package config provides YAML-based configuration loading for the game:
// timing, channel sizing, audio, per-player bindings and the CPU opponent.
package config

import (
	"time"

	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/input"
	"github.com/vovakirdan/tui-collect/internal/multiplayer"
)

// Config contains the full game configuration.
type Config struct {
	Timing  TimingConfig   `yaml:"timing"`
	Channel ChannelConfig  `yaml:"channel"`
	Audio   AudioConfig    `yaml:"audio"`
	Players []PlayerConfig `yaml:"players"`
	CPU     CPUConfig      `yaml:"cpu"`
}

// TimingConfig defines loop pacing.
type TimingConfig struct {
	FrameRate    int           `yaml:"frame_rate"`     // Loop ticks per second
	SampleRate   int           `yaml:"sample_rate"`    // Key samples per second
	PollTimeout  time.Duration `yaml:"poll_timeout"`   // Max wait for intents per tick
	GameOverHold time.Duration `yaml:"game_over_hold"` // How long the winner is shown
}

// ChannelConfig sizes the intent channels.
type ChannelConfig struct {
	Capacity int `yaml:"capacity"`
}

// AudioConfig controls the collection tone.
type AudioConfig struct {
	Enabled bool          `yaml:"enabled"`
	Tone    time.Duration `yaml:"tone"`
}

// PlayerConfig defines one player's display and bindings.
type PlayerConfig struct {
	Name  string     `yaml:"name"`
	Color string     `yaml:"color"`
	Keys  KeysConfig `yaml:"keys"`
}

// KeysConfig maps directions to Bubble Tea key names.
type KeysConfig struct {
	Up    string `yaml:"up"`
	Down  string `yaml:"down"`
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
	Quit  string `yaml:"quit"` // Optional
}

// CPUConfig tunes the computer-controlled player.
// A non-empty Level overrides ThinkEvery and Accuracy.
type CPUConfig struct {
	Level      CPULevel `yaml:"level"`
	ThinkEvery int      `yaml:"think_every"`
	Accuracy   float64  `yaml:"accuracy"`
}

// FrameInterval returns the duration of one loop tick.
func (t TimingConfig) FrameInterval() time.Duration {
	return rateInterval(t.FrameRate)
}

// SampleInterval returns the delay between key samples.
func (t TimingConfig) SampleInterval() time.Duration {
	return rateInterval(t.SampleRate)
}

func rateInterval(rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Second / time.Duration(rate)
}

// KeySet converts the bindings for the input package.
func (k KeysConfig) KeySet() input.KeySet {
	return input.KeySet{
		Up:    input.Key(k.Up),
		Down:  input.Key(k.Down),
		Left:  input.Key(k.Left),
		Right: input.Key(k.Right),
		Quit:  input.Key(k.Quit),
	}
}

// Player returns the configuration of a player.
func (c Config) Player(id core.PlayerID) PlayerConfig {
	if int(id) < len(c.Players) {
		return c.Players[id]
	}
	return DefaultConfig().Players[id]
}

// MatchConfig builds the loop configuration for a match.
func (c Config) MatchConfig(mode multiplayer.MatchMode, seed int64) multiplayer.MatchConfig {
	tone := time.Duration(0)
	if c.Audio.Enabled {
		tone = c.Audio.Tone
	}
	return multiplayer.MatchConfig{
		Mode:            mode,
		FrameInterval:   c.Timing.FrameInterval(),
		PollTimeout:     c.Timing.PollTimeout,
		GameOverHold:    c.Timing.GameOverHold,
		ToneDuration:    tone,
		ChannelCapacity: c.Channel.Capacity,
		Seed:            seed,
	}
}

// CPUSettings resolves the CPU config, applying the level preset if set.
func (c Config) CPUSettings() input.CPUConfig {
	cpu := input.CPUConfig{ThinkEvery: c.CPU.ThinkEvery, Accuracy: c.CPU.Accuracy}
	if c.CPU.Level != "" {
		cpu = c.CPU.Level.Settings()
	}
	return cpu
}
