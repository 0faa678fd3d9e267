package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(default yaml) failed: %v", err)
	}
	if diff := cmp.Diff(DefaultGameConfig(), cfg); diff != "" {
		t.Errorf("embedded YAML differs from DefaultGameConfig (-want +got):\n%s", diff)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte(`
decoys:
  attempts: 5
  carry_radius: true
scoring:
  reset_delay: 1s
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Decoys.Attempts != 5 {
		t.Errorf("Attempts = %d, expected 5", cfg.Decoys.Attempts)
	}
	if !cfg.Decoys.CarryRadius {
		t.Error("CarryRadius should be true")
	}
	if cfg.Scoring.ResetDelay != time.Second {
		t.Errorf("ResetDelay = %s, expected 1s", cfg.Scoring.ResetDelay)
	}
	// Untouched keys keep their defaults
	if cfg.Difficulties.Hard.Options != 9 {
		t.Errorf("Hard.Options = %d, expected default 9", cfg.Difficulties.Hard.Options)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with a missing custom path should fail")
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := []byte(`
difficulties:
  hard:
    options: 0
decoys:
  shrink: 1.5
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should reject options=0 and shrink=1.5")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"zero tolerance", func(c *GameConfig) { c.Difficulties.Easy.Tolerance = 0 }},
		{"too many options", func(c *GameConfig) { c.Difficulties.Hard.Options = MaxOptions + 1 }},
		{"no attempts", func(c *GameConfig) { c.Decoys.Attempts = 0 }},
		{"zero jitter", func(c *GameConfig) { c.Decoys.Jitter = 0 }},
		{"steep tilt", func(c *GameConfig) { c.Decoys.MaxTiltDeg = 120 }},
		{"empty radius table", func(c *GameConfig) { c.Decoys.Radius = nil }},
		{"negative radius", func(c *GameConfig) { c.Decoys.Radius[0].Radius = -1 }},
		{"min channel too high", func(c *GameConfig) { c.Round.MinChannel = 300 }},
		{"no lives", func(c *GameConfig) { c.Scoring.Lives = 0 }},
		{"negative penalty", func(c *GameConfig) { c.Scoring.MissPenalty = -3 }},
		{"negative delay", func(c *GameConfig) { c.Scoring.ResetDelay = -time.Second }},
	}

	if err := DefaultGameConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	atCap := DefaultGameConfig()
	atCap.Difficulties.Hard.Options = MaxOptions
	if err := atCap.Validate(); err != nil {
		t.Errorf("options = MaxOptions should be valid: %v", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
	}{
		{"easy", DifficultyEasy},
		{"MEDIUM", DifficultyMedium},
		{"normal", DifficultyMedium},
		{"", DifficultyMedium},
		{" hard ", DifficultyHard},
	}
	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}

	if _, err := ParsePreset("nightmare"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("ParsePreset(nightmare) error = %v, expected ErrUnknownDifficulty", err)
	}
}

func TestPresetsAreOrdered(t *testing.T) {
	table := DefaultGameConfig().Difficulties
	var prevOptions int
	prevTol := 1e9
	for _, p := range Presets() {
		d, err := table.Preset(p)
		if err != nil {
			t.Fatalf("Preset(%q) failed: %v", p, err)
		}
		if d.Options <= prevOptions {
			t.Errorf("%s: options %d should exceed %d", p, d.Options, prevOptions)
		}
		if d.Tolerance >= prevTol {
			t.Errorf("%s: tolerance %g should be below %g", p, d.Tolerance, prevTol)
		}
		prevOptions, prevTol = d.Options, d.Tolerance
	}
}

func TestRadiusFor(t *testing.T) {
	decoys := DefaultGameConfig().Decoys
	tests := []struct {
		count int
		want  float64
	}{
		{9, 14},
		{12, 14},
		{6, 18},
		{8, 18},
		{3, 24},
		{5, 24},
		{1, 24}, // below every step
	}
	for _, tc := range tests {
		if got := decoys.RadiusFor(tc.count); got != tc.want {
			t.Errorf("RadiusFor(%d) = %g, expected %g", tc.count, got, tc.want)
		}
	}
}
