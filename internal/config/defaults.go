package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/huematch.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Difficulties: DifficultyTable{
			Easy:   DifficultyConfig{Options: 3, Tolerance: 20},
			Medium: DifficultyConfig{Options: 6, Tolerance: 12},
			Hard:   DifficultyConfig{Options: 9, Tolerance: 7},
		},
		Decoys: DecoyConfig{
			Attempts:    20,
			Shrink:      0.8,
			Jitter:      30,
			MaxTiltDeg:  30,
			CarryRadius: false,
			Radius: []RadiusStep{
				{Options: 9, Radius: 14},
				{Options: 6, Radius: 18},
				{Options: 3, Radius: 24},
			},
		},
		Round: RoundConfig{
			MinChannel: 30,
		},
		Scoring: ScoringConfig{
			Lives:       3,
			BasePoints:  10,
			StreakBonus: 2,
			MissPenalty: 3,
			ResetDelay:  220 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultGameYAML
}
