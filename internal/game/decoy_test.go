package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/huematch/internal/colorspace"
	"github.com/vovakirdan/huematch/internal/config"
)

// constSource always returns the same value.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func TestDecoysKeepRadiusAroundGray(t *testing.T) {
	cfg := config.DefaultGameConfig().Decoys
	target := colorspace.RGB{R: 128, G: 128, B: 128}

	for seed := int64(1); seed <= 20; seed++ {
		gen := NewDecoyGenerator(rand.New(rand.NewSource(seed)), cfg)
		decoys := gen.Generate(target, 8, 14)

		if len(decoys) != 8 {
			t.Fatalf("seed %d: got %d decoys, expected 8", seed, len(decoys))
		}
		for _, d := range decoys {
			de := colorspace.DeltaERGB(d, target)
			if de < 12 || de > 16 {
				t.Errorf("seed %d: decoy %s has ΔE %.2f, expected about 14", seed, d, de)
			}
		}
	}
}

func TestDecoysDistinctAtGamutCorner(t *testing.T) {
	cfg := config.DefaultGameConfig().Decoys
	red := colorspace.RGB{R: 255}

	for seed := int64(1); seed <= 50; seed++ {
		gen := NewDecoyGenerator(rand.New(rand.NewSource(seed)), cfg)
		decoys := gen.Generate(red, 8, 14)
		assertDistinctDecoys(t, red, decoys, 8)
	}
}

// roundingSlack covers the Lab distance lost to 8-bit channel rounding.
const roundingSlack = 1.5

func TestLabDecoysTrackShrunkRadiusAtRed(t *testing.T) {
	cfg := config.DefaultGameConfig().Decoys
	red := colorspace.RGB{R: 255}
	radius := cfg.RadiusFor(Hard.OptionCount)

	accepted := 0
	for seed := int64(1); seed <= 200; seed++ {
		gen := NewDecoyGenerator(rand.New(rand.NewSource(seed)), cfg)
		r := radius
		c, ok := gen.fromLab(red.Lab(), &r, map[colorspace.RGB]bool{red: true})
		if !ok {
			continue
		}
		accepted++

		if r > radius {
			t.Errorf("seed %d: radius grew to %.2f", seed, r)
		}
		de := colorspace.DeltaERGB(c, red)
		if math.Abs(de-r) > roundingSlack {
			t.Errorf("seed %d: decoy %s has ΔE %.2f, expected about the shrunk radius %.2f", seed, c, de, r)
		}
		if de > radius+roundingSlack {
			t.Errorf("seed %d: decoy %s has ΔE %.2f above radius %g", seed, c, de, radius)
		}
	}
	if accepted == 0 {
		t.Fatal("no Lab candidate was accepted around red")
	}
}

func TestJitterDecoysStayInBox(t *testing.T) {
	cfg := config.DefaultGameConfig().Decoys
	red := colorspace.RGB{R: 255}
	gen := NewDecoyGenerator(rand.New(rand.NewSource(3)), cfg)

	for i := range 500 {
		c := gen.fromJitter(red, map[colorspace.RGB]bool{red: true})
		if c == red {
			t.Fatalf("draw %d: jitter returned the target", i)
		}
		if !withinJitter(c, red, cfg.Jitter) {
			t.Errorf("draw %d: %s is more than %d per channel from %s", i, c, cfg.Jitter, red)
		}
	}
}

func TestHardDecoysAroundRed(t *testing.T) {
	cfg := config.DefaultGameConfig().Decoys
	red := colorspace.RGB{R: 255}
	radius := cfg.RadiusFor(Hard.OptionCount)

	for seed := int64(1); seed <= 100; seed++ {
		gen := NewDecoyGenerator(rand.New(rand.NewSource(seed)), cfg)
		decoys := gen.Generate(red, Hard.OptionCount-1, radius)
		assertDistinctDecoys(t, red, decoys, 8)

		// Each decoy comes either from Lab, bounded by the radius, or
		// from the jitter box.
		for _, d := range decoys {
			de := colorspace.DeltaERGB(d, red)
			if de > radius+roundingSlack && !withinJitter(d, red, cfg.Jitter) {
				t.Errorf("seed %d: decoy %s has ΔE %.2f and lies outside the jitter box", seed, d, de)
			}
		}
	}
}

func withinJitter(c, target colorspace.RGB, jitter int) bool {
	for _, d := range []int{
		int(c.R) - int(target.R),
		int(c.G) - int(target.G),
		int(c.B) - int(target.B),
	} {
		if d < -jitter || d > jitter {
			return false
		}
	}
	return true
}

func TestDecoysFallBackWhenLabKeepsColliding(t *testing.T) {
	// A constant source repeats the same Lab candidate, so every decoy
	// after the first must come from the jitter fallback or probing.
	cfg := config.DefaultGameConfig().Decoys
	target := colorspace.RGB{R: 128, G: 128, B: 128}

	gen := NewDecoyGenerator(constSource(0), cfg)
	decoys := gen.Generate(target, 5, 14)
	assertDistinctDecoys(t, target, decoys, 5)

	// The first jitter draw offsets every channel by -Jitter.
	want := colorspace.RGB{R: 98, G: 98, B: 98}
	if decoys[1] != want {
		t.Errorf("decoys[1] = %s, expected %s", decoys[1], want)
	}
}

func TestDecoysZeroCount(t *testing.T) {
	gen := NewDecoyGenerator(rand.New(rand.NewSource(1)), config.DefaultGameConfig().Decoys)
	if got := gen.Generate(colorspace.RGB{R: 40, G: 50, B: 60}, 0, 24); len(got) != 0 {
		t.Errorf("Generate(n=0) returned %d decoys", len(got))
	}
}

func TestDecoysCarryRadius(t *testing.T) {
	// White sits on the gamut boundary; both settings must still deliver
	// distinct decoys.
	white := colorspace.RGB{R: 255, G: 255, B: 255}
	for _, carry := range []bool{false, true} {
		cfg := config.DefaultGameConfig().Decoys
		cfg.CarryRadius = carry
		gen := NewDecoyGenerator(rand.New(rand.NewSource(7)), cfg)
		assertDistinctDecoys(t, white, gen.Generate(white, 8, 14), 8)
	}
}

func TestNextRGBWraps(t *testing.T) {
	tests := []struct {
		in, want colorspace.RGB
	}{
		{colorspace.RGB{}, colorspace.RGB{B: 1}},
		{colorspace.RGB{B: 255}, colorspace.RGB{G: 1}},
		{colorspace.RGB{G: 255, B: 255}, colorspace.RGB{R: 1}},
		{colorspace.RGB{R: 255, G: 255, B: 255}, colorspace.RGB{}},
	}
	for _, tc := range tests {
		if got := nextRGB(tc.in); got != tc.want {
			t.Errorf("nextRGB(%s) = %s, expected %s", tc.in, got, tc.want)
		}
	}
}

func assertDistinctDecoys(t *testing.T, target colorspace.RGB, decoys []colorspace.RGB, n int) {
	t.Helper()
	if len(decoys) != n {
		t.Fatalf("got %d decoys, expected %d", len(decoys), n)
	}
	seen := map[colorspace.RGB]bool{}
	for _, d := range decoys {
		if d == target {
			t.Errorf("decoy equals target %s", target)
		}
		if seen[d] {
			t.Errorf("duplicate decoy %s", d)
		}
		seen[d] = true
	}
}
