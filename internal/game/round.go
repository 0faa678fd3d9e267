package game

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/huematch/internal/colorspace"
	"github.com/vovakirdan/huematch/internal/config"
)

// ErrNoSuchOption is returned when a tile index is out of range.
var ErrNoSuchOption = errors.New("no such option")

// Round is one puzzle: a hidden target and the shuffled options.
type Round struct {
	Target  colorspace.RGB
	Options []colorspace.RGB
}

// Validate checks that the round has count distinct options and that
// the target appears among them exactly once.
func (r Round) Validate(count int) error {
	if len(r.Options) != count {
		return fmt.Errorf("game: round has %d options, expected %d", len(r.Options), count)
	}
	seen := make(map[colorspace.RGB]bool, len(r.Options))
	targets := 0
	for _, c := range r.Options {
		if seen[c] {
			return fmt.Errorf("game: duplicate option %s", c)
		}
		seen[c] = true
		if c == r.Target {
			targets++
		}
	}
	if targets != 1 {
		return fmt.Errorf("game: target %s appears %d times", r.Target, targets)
	}
	return nil
}

// Option returns the option at index i.
func (r Round) Option(i int) (colorspace.RGB, error) {
	if i < 0 || i >= len(r.Options) {
		return colorspace.RGB{}, fmt.Errorf("%w: index %d of %d", ErrNoSuchOption, i, len(r.Options))
	}
	return r.Options[i], nil
}

// TargetIndex returns the position of the target in Options.
func (r Round) TargetIndex() int {
	for i, c := range r.Options {
		if c == r.Target {
			return i
		}
	}
	return -1
}

// RoundGenerator builds rounds from a random target plus decoys.
type RoundGenerator struct {
	rng        RandomSource
	decoys     *DecoyGenerator
	cfg        config.DecoyConfig
	minChannel int
}

// NewRoundGenerator creates a generator sharing rng with its decoy generator.
func NewRoundGenerator(rng RandomSource, cfg config.GameConfig) *RoundGenerator {
	return &RoundGenerator{
		rng:        rng,
		decoys:     NewDecoyGenerator(rng, cfg.Decoys),
		cfg:        cfg.Decoys,
		minChannel: cfg.Round.MinChannel,
	}
}

// Generate creates a round for d. It panics if d is invalid or the result
// breaks the round invariants, both of which are programming errors.
func (g *RoundGenerator) Generate(d Difficulty) Round {
	if err := d.Validate(); err != nil {
		panic(err)
	}

	target := g.randomTarget()
	radius := g.cfg.RadiusFor(d.OptionCount)

	options := g.decoys.Generate(target, d.OptionCount-1, radius)
	options = append(options, target)
	shuffle(g.rng, options)

	round := Round{Target: target, Options: options}
	if err := round.Validate(d.OptionCount); err != nil {
		panic(err)
	}
	return round
}

// randomTarget draws each channel uniformly from [minChannel, 255] so
// targets are never near-black.
func (g *RoundGenerator) randomTarget() colorspace.RGB {
	span := 256 - g.minChannel
	ch := func() int { return g.minChannel + intn(g.rng, span) }
	return colorspace.NewRGB(ch(), ch(), ch())
}
