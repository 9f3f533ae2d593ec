package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/input"
)

// FileName is the configuration file name in every search location.
const FileName = "collect.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.collect/config.yaml -> ./configs/collect.yaml -> embedded default.
// Files are applied over the defaults, so they only need the keys they change.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		customPath, err := core.ExpandHome(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			cfg, err := Parse(data)
			if err != nil {
				return Config{}, fmt.Errorf("config: %s: %w", userCfgPath, err)
			}
			return cfg, nil
		}
	}

	// Try local configs directory
	localPath := filepath.Join("configs", FileName)
	if data, err := os.ReadFile(localPath); err == nil {
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", localPath, err)
		}
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	// Player entries replace the defaults wholesale.
	cfg.Players = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse: %w", err)
	}
	if len(cfg.Players) == 0 {
		cfg.Players = DefaultConfig().Players
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// UserConfigPath returns the path to the user config file, or empty if home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".collect", "config.yaml")
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.Timing.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("timing.frame_rate must be positive, got %d", c.Timing.FrameRate))
	}
	if c.Timing.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("timing.sample_rate must be positive, got %d", c.Timing.SampleRate))
	}
	if c.Timing.PollTimeout <= 0 {
		errs = append(errs, fmt.Errorf("timing.poll_timeout must be positive, got %s", c.Timing.PollTimeout))
	}
	if c.Timing.GameOverHold < 0 {
		errs = append(errs, fmt.Errorf("timing.game_over_hold must not be negative, got %s", c.Timing.GameOverHold))
	}
	if c.Channel.Capacity < 1 {
		errs = append(errs, fmt.Errorf("channel.capacity must be at least 1, got %d", c.Channel.Capacity))
	}
	if c.Audio.Tone < 0 {
		errs = append(errs, fmt.Errorf("audio.tone must not be negative, got %s", c.Audio.Tone))
	}

	if len(c.Players) != core.PlayerCount {
		errs = append(errs, fmt.Errorf("players: need exactly %d entries, got %d", core.PlayerCount, len(c.Players)))
	} else {
		errs = append(errs, validatePlayers(c.Players)...)
	}

	if c.CPU.Level != "" && !c.CPU.Level.Valid() {
		errs = append(errs, fmt.Errorf("cpu.level %q is not one of %v", c.CPU.Level, CPULevels))
	}
	if c.CPU.Level == "" {
		if c.CPU.ThinkEvery < 1 {
			errs = append(errs, fmt.Errorf("cpu.think_every must be at least 1, got %d", c.CPU.ThinkEvery))
		}
		if c.CPU.Accuracy < 0 || c.CPU.Accuracy > 1 {
			errs = append(errs, fmt.Errorf("cpu.accuracy must be within [0,1], got %g", c.CPU.Accuracy))
		}
	}

	return errors.Join(errs...)
}

func validatePlayers(players []PlayerConfig) []error {
	var errs []error
	owner := make(map[input.Key]int)

	for i, p := range players {
		prefix := fmt.Sprintf("players[%d]", i)
		if _, err := core.ParseColor(p.Color); err != nil {
			errs = append(errs, fmt.Errorf("%s.color: %w", prefix, err))
		}

		keys := p.Keys.KeySet()
		if err := keys.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s.keys: %w", prefix, err))
			continue
		}
		for _, k := range keys.Keys() {
			if other, taken := owner[k]; taken && other != i {
				errs = append(errs, fmt.Errorf("%s.keys: %q is already bound for players[%d]", prefix, k, other))
			}
			owner[k] = i
		}
	}
	return errs
}
