// Package config provides YAML-based configuration loading for the
// color-matching engine and its difficulty presets.
package config

import (
	"errors"
	"fmt"
	"time"
)

// GameConfig contains all tunable parameters of the guessing game.
type GameConfig struct {
	Difficulties DifficultyTable `yaml:"difficulties"`
	Decoys       DecoyConfig     `yaml:"decoys"`
	Round        RoundConfig     `yaml:"round"`
	Scoring      ScoringConfig   `yaml:"scoring"`
}

// DifficultyTable holds the three fixed presets.
type DifficultyTable struct {
	Easy   DifficultyConfig `yaml:"easy"`
	Medium DifficultyConfig `yaml:"medium"`
	Hard   DifficultyConfig `yaml:"hard"`
}

// DifficultyConfig defines one difficulty preset.
type DifficultyConfig struct {
	Options   int     `yaml:"options"`   // Number of tiles shown
	Tolerance float64 `yaml:"tolerance"` // Max ΔE accepted in mixer mode
}

// DecoyConfig controls decoy synthesis around the target color.
type DecoyConfig struct {
	Attempts    int          `yaml:"attempts"`     // Lab attempts before the RGB jitter fallback
	Shrink      float64      `yaml:"shrink"`       // Radius multiplier after a gamut miss
	Jitter      int          `yaml:"jitter"`       // Max per-channel offset of the fallback
	MaxTiltDeg  float64      `yaml:"max_tilt_deg"` // Lightness tilt bound in degrees
	CarryRadius bool         `yaml:"carry_radius"` // Keep the shrunk radius for later decoys
	Radius      []RadiusStep `yaml:"radius"`       // Radius by option count
}

// RadiusStep maps a minimum option count to a perceptual radius.
type RadiusStep struct {
	Options int     `yaml:"options"`
	Radius  float64 `yaml:"radius"`
}

// RoundConfig controls target generation.
type RoundConfig struct {
	MinChannel int `yaml:"min_channel"` // Lower bound of each target channel
}

// ScoringConfig defines points, lives and the reset delay.
type ScoringConfig struct {
	Lives       int           `yaml:"lives"`
	BasePoints  int           `yaml:"base_points"`
	StreakBonus int           `yaml:"streak_bonus"`
	MissPenalty int           `yaml:"miss_penalty"`
	ResetDelay  time.Duration `yaml:"reset_delay"`
}

// MaxOptions caps the tiles per round. The decoy fallback walks the color
// cube for unused colors, so the count must stay far below 2^24.
const MaxOptions = 64

// Validate reports every nonsensical value in the config.
func (c GameConfig) Validate() error {
	var errs []error

	for _, d := range []struct {
		name string
		cfg  DifficultyConfig
	}{
		{"easy", c.Difficulties.Easy},
		{"medium", c.Difficulties.Medium},
		{"hard", c.Difficulties.Hard},
	} {
		if d.cfg.Options < 1 || d.cfg.Options > MaxOptions {
			errs = append(errs, fmt.Errorf("difficulty %s: options must be in [1,%d], got %d", d.name, MaxOptions, d.cfg.Options))
		}
		if d.cfg.Tolerance <= 0 {
			errs = append(errs, fmt.Errorf("difficulty %s: tolerance must be > 0, got %g", d.name, d.cfg.Tolerance))
		}
	}

	if c.Decoys.Attempts < 1 {
		errs = append(errs, fmt.Errorf("decoys: attempts must be >= 1, got %d", c.Decoys.Attempts))
	}
	if c.Decoys.Shrink <= 0 || c.Decoys.Shrink >= 1 {
		errs = append(errs, fmt.Errorf("decoys: shrink must be in (0,1), got %g", c.Decoys.Shrink))
	}
	if c.Decoys.Jitter < 1 {
		errs = append(errs, fmt.Errorf("decoys: jitter must be >= 1, got %d", c.Decoys.Jitter))
	}
	if c.Decoys.MaxTiltDeg < 0 || c.Decoys.MaxTiltDeg > 90 {
		errs = append(errs, fmt.Errorf("decoys: max_tilt_deg must be in [0,90], got %g", c.Decoys.MaxTiltDeg))
	}
	if len(c.Decoys.Radius) == 0 {
		errs = append(errs, errors.New("decoys: radius table is empty"))
	}
	for _, step := range c.Decoys.Radius {
		if step.Radius <= 0 {
			errs = append(errs, fmt.Errorf("decoys: radius for %d options must be > 0", step.Options))
		}
	}

	if c.Round.MinChannel < 0 || c.Round.MinChannel > 255 {
		errs = append(errs, fmt.Errorf("round: min_channel must be in [0,255], got %d", c.Round.MinChannel))
	}

	if c.Scoring.Lives < 1 {
		errs = append(errs, fmt.Errorf("scoring: lives must be >= 1, got %d", c.Scoring.Lives))
	}
	if c.Scoring.BasePoints < 0 || c.Scoring.StreakBonus < 0 || c.Scoring.MissPenalty < 0 {
		errs = append(errs, errors.New("scoring: points must not be negative"))
	}
	if c.Scoring.ResetDelay < 0 {
		errs = append(errs, fmt.Errorf("scoring: reset_delay must not be negative, got %s", c.Scoring.ResetDelay))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
