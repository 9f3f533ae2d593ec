package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-collect/internal/input"
)

//go:embed defaults/collect.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// DefaultConfig returns the built-in configuration.
// It matches defaults/collect.yaml.
func DefaultConfig() Config {
	return Config{
		Timing: TimingConfig{
			FrameRate:    60,
			SampleRate:   60,
			PollTimeout:  16666 * time.Microsecond,
			GameOverHold: 5 * time.Second,
		},
		Channel: ChannelConfig{
			Capacity: 4,
		},
		Audio: AudioConfig{
			Enabled: true,
			Tone:    100 * time.Millisecond,
		},
		Players: []PlayerConfig{
			{
				Name:  "Player 1",
				Color: "red",
				Keys:  KeysConfig{Up: "w", Down: "s", Left: "a", Right: "d"},
			},
			{
				Name:  "Player 2",
				Color: "blue",
				Keys:  KeysConfig{Up: "up", Down: "down", Left: "left", Right: "right"},
			},
		},
		CPU: CPUConfig{
			Level:      CPULevelNormal,
			ThinkEvery: input.DefaultThinkEvery,
			Accuracy:   input.DefaultAccuracy,
		},
	}
}
