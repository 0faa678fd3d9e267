package game

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/huematch/internal/colorspace"
	"github.com/vovakirdan/huematch/internal/config"
)

func TestGenerateRoundInvariants(t *testing.T) {
	cfg := config.DefaultGameConfig()
	gen := NewRoundGenerator(rand.New(rand.NewSource(42)), cfg)

	for _, d := range []Difficulty{Easy, Medium, Hard} {
		t.Run(d.Name(), func(t *testing.T) {
			for range 100 {
				r := gen.Generate(d)
				if err := r.Validate(d.OptionCount); err != nil {
					t.Fatalf("invalid round: %v", err)
				}
				for _, ch := range []uint8{r.Target.R, r.Target.G, r.Target.B} {
					if ch < 30 {
						t.Fatalf("target %s has channel below 30", r.Target)
					}
				}
			}
		})
	}
}

func TestGenerateRoundShufflesTarget(t *testing.T) {
	gen := NewRoundGenerator(rand.New(rand.NewSource(3)), config.DefaultGameConfig())

	hits := make([]int, Easy.OptionCount)
	for range 300 {
		r := gen.Generate(Easy)
		hits[r.TargetIndex()]++
	}
	for i, n := range hits {
		if n == 0 {
			t.Errorf("target never landed at index %d", i)
		}
	}
}

func TestGenerateRoundSingleOption(t *testing.T) {
	gen := NewRoundGenerator(rand.New(rand.NewSource(1)), config.DefaultGameConfig())
	r := gen.Generate(Difficulty{OptionCount: 1, ToleranceLab: 5})
	if len(r.Options) != 1 || r.Options[0] != r.Target {
		t.Errorf("single-option round = %+v", r)
	}
}

func TestGenerateRoundPanicsOnInvalidDifficulty(t *testing.T) {
	tests := []struct {
		name string
		d    Difficulty
	}{
		{"no options", Difficulty{OptionCount: 0, ToleranceLab: 5}},
		{"too many options", Difficulty{OptionCount: config.MaxOptions + 1, ToleranceLab: 5}},
		{"zero tolerance", Difficulty{OptionCount: 3, ToleranceLab: 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := NewRoundGenerator(rand.New(rand.NewSource(1)), config.DefaultGameConfig())
			defer func() {
				if recover() == nil {
					t.Errorf("Generate should panic for %+v", tc.d)
				}
			}()
			gen.Generate(tc.d)
		})
	}
}

func TestGenerateRoundAtOptionCap(t *testing.T) {
	gen := NewRoundGenerator(rand.New(rand.NewSource(4)), config.DefaultGameConfig())
	d := Difficulty{OptionCount: config.MaxOptions, ToleranceLab: 5}
	r := gen.Generate(d)
	if err := r.Validate(config.MaxOptions); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestGenerateRoundDeterministic(t *testing.T) {
	cfg := config.DefaultGameConfig()
	g1 := NewRoundGenerator(rand.New(rand.NewSource(99)), cfg)
	g2 := NewRoundGenerator(rand.New(rand.NewSource(99)), cfg)

	for i := range 10 {
		r1, r2 := g1.Generate(Hard), g2.Generate(Hard)
		if r1.Target != r2.Target {
			t.Fatalf("round %d: targets differ: %s vs %s", i, r1.Target, r2.Target)
		}
		for j := range r1.Options {
			if r1.Options[j] != r2.Options[j] {
				t.Fatalf("round %d: option %d differs", i, j)
			}
		}
	}
}

func TestRoundValidate(t *testing.T) {
	a := colorspace.RGB{R: 10}
	b := colorspace.RGB{G: 10}
	c := colorspace.RGB{B: 10}

	tests := []struct {
		name  string
		round Round
		count int
		ok    bool
	}{
		{"valid", Round{Target: a, Options: []colorspace.RGB{b, a, c}}, 3, true},
		{"wrong count", Round{Target: a, Options: []colorspace.RGB{b, a}}, 3, false},
		{"missing target", Round{Target: a, Options: []colorspace.RGB{b, c}}, 2, false},
		{"duplicate", Round{Target: a, Options: []colorspace.RGB{a, b, b}}, 3, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.round.Validate(tc.count)
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.ok && err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestRoundOption(t *testing.T) {
	r := Round{Target: colorspace.RGB{R: 1}, Options: []colorspace.RGB{{R: 1}, {R: 2}}}
	if c, err := r.Option(1); err != nil || c != (colorspace.RGB{R: 2}) {
		t.Errorf("Option(1) = %s, %v", c, err)
	}
	for _, i := range []int{-1, 2} {
		if _, err := r.Option(i); err == nil {
			t.Errorf("Option(%d) should fail", i)
		}
	}
}
