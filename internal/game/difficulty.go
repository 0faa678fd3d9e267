// Package game implements the color-guessing engine: decoy and round
// generation, guess evaluation, and the score/streak/lives state machine.
// It contains no terminal or network code; front-ends drive a Session and
// schedule the effects it returns.
package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/huematch/internal/config"
)

// Difficulty is a named option-count/tolerance profile.
type Difficulty struct {
	Preset       config.DifficultyPreset
	OptionCount  int     // Tiles shown per round
	ToleranceLab float64 // Max ΔE76 accepted in mixer mode
}

// Built-in presets.
var (
	Easy   = Difficulty{Preset: config.DifficultyEasy, OptionCount: 3, ToleranceLab: 20}
	Medium = Difficulty{Preset: config.DifficultyMedium, OptionCount: 6, ToleranceLab: 12}
	Hard   = Difficulty{Preset: config.DifficultyHard, OptionCount: 9, ToleranceLab: 7}
)

// Builtin returns the built-in profile of a preset.
func Builtin(p config.DifficultyPreset) (Difficulty, bool) {
	switch p {
	case config.DifficultyEasy:
		return Easy, true
	case config.DifficultyMedium:
		return Medium, true
	case config.DifficultyHard:
		return Hard, true
	}
	return Difficulty{}, false
}

// Tuned reports whether d differs from the built-in profile of its preset.
func (d Difficulty) Tuned() bool {
	b, ok := Builtin(d.Preset)
	return !ok || b != d
}

// Name returns the display name, e.g. "Hard".
func (d Difficulty) Name() string {
	s := string(d.Preset)
	if s == "" {
		return "Custom"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Validate checks that OptionCount is in [1, config.MaxOptions] and
// ToleranceLab > 0.
func (d Difficulty) Validate() error {
	if d.OptionCount < 1 || d.OptionCount > config.MaxOptions {
		return fmt.Errorf("game: difficulty %s: option count %d outside [1,%d]", d.Name(), d.OptionCount, config.MaxOptions)
	}
	if d.ToleranceLab <= 0 {
		return fmt.Errorf("game: difficulty %s: tolerance %g <= 0", d.Name(), d.ToleranceLab)
	}
	return nil
}

// DifficultyFor resolves a preset against the configured table.
func DifficultyFor(table config.DifficultyTable, preset config.DifficultyPreset) (Difficulty, error) {
	dc, err := table.Preset(preset)
	if err != nil {
		return Difficulty{}, err
	}
	d := Difficulty{Preset: preset, OptionCount: dc.Options, ToleranceLab: dc.Tolerance}
	if err := d.Validate(); err != nil {
		return Difficulty{}, err
	}
	return d, nil
}

// Difficulties returns every configured preset, easiest first.
func Difficulties(table config.DifficultyTable) []Difficulty {
	out := make([]Difficulty, 0, 3)
	for _, p := range config.Presets() {
		if d, err := DifficultyFor(table, p); err == nil {
			out = append(out, d)
		}
	}
	return out
}

// Mode selects how the player answers a round.
type Mode string

const (
	ModeTiles Mode = "tiles" // Pick the target among the options
	ModeMixer Mode = "mixer" // Mix the target with RGB sliders
)

// ErrUnknownMode is returned for names other than tiles and mixer.
var ErrUnknownMode = errors.New("unknown mode")

// ParseMode parses a mode name. An empty name selects tiles.
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case "", ModeTiles:
		return ModeTiles, nil
	case ModeMixer:
		return ModeMixer, nil
	default:
		return "", fmt.Errorf("%w %q (want tiles or mixer)", ErrUnknownMode, name)
	}
}

// Title returns the display name of the mode.
func (m Mode) Title() string {
	if m == ModeMixer {
		return "Mixer"
	}
	return "Tiles"
}
