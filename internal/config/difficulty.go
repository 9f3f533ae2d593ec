package config

import (
	"github.com/vovakirdan/tui-collect/internal/input"
)

// CPULevel is a named CPU strength preset.
type CPULevel string

const (
	CPULevelEasy    CPULevel = "easy"
	CPULevelNormal  CPULevel = "normal"
	CPULevelHard    CPULevel = "hard"
	CPULevelPerfect CPULevel = "perfect"
)

// CPULevels lists the presets from weakest to strongest.
var CPULevels = []CPULevel{CPULevelEasy, CPULevelNormal, CPULevelHard, CPULevelPerfect}

// Valid reports whether the level is a known preset.
func (l CPULevel) Valid() bool {
	for _, known := range CPULevels {
		if l == known {
			return true
		}
	}
	return false
}

// Settings returns the CPU tuning for a preset.
// Unknown levels fall back to normal.
func (l CPULevel) Settings() input.CPUConfig {
	switch l {
	case CPULevelEasy:
		return input.CPUConfig{ThinkEvery: 8, Accuracy: 0.6}
	case CPULevelHard:
		return input.CPUConfig{ThinkEvery: 2, Accuracy: 0.95}
	case CPULevelPerfect:
		return input.CPUConfig{ThinkEvery: 1, Accuracy: 1}
	default:
		return input.DefaultCPUConfig()
	}
}
