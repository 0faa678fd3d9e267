package config

import (
	"errors"
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyMedium DifficultyPreset = "medium"
	DifficultyHard   DifficultyPreset = "hard"
)

// ErrUnknownDifficulty is returned for names outside the preset set.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Presets returns the presets from easiest to hardest.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParsePreset parses a preset name case-insensitively.
// An empty name selects medium.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return DifficultyMedium, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium, "normal":
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("%w %q (want easy, medium or hard)", ErrUnknownDifficulty, name)
	}
}

// Preset returns the configuration of a preset.
func (t DifficultyTable) Preset(p DifficultyPreset) (DifficultyConfig, error) {
	switch p {
	case DifficultyEasy:
		return t.Easy, nil
	case DifficultyMedium:
		return t.Medium, nil
	case DifficultyHard:
		return t.Hard, nil
	default:
		return DifficultyConfig{}, fmt.Errorf("%w %q", ErrUnknownDifficulty, p)
	}
}

// RadiusFor returns the decoy radius for an option count: the entry with
// the largest Options not above count, or the smallest-count entry when
// count is below every step.
func (d DecoyConfig) RadiusFor(count int) float64 {
	var (
		best      RadiusStep
		found     bool
		smallest  RadiusStep
		haveSmall bool
	)
	for _, step := range d.Radius {
		if !haveSmall || step.Options < smallest.Options {
			smallest, haveSmall = step, true
		}
		if step.Options <= count && (!found || step.Options > best.Options) {
			best, found = step, true
		}
	}
	if found {
		return best.Radius
	}
	return smallest.Radius
}
