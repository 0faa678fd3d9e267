package game

import (
	"math"

	"github.com/vovakirdan/huematch/internal/colorspace"
	"github.com/vovakirdan/huematch/internal/config"
)

// jitterAttempts bounds the RGB fallback before it switches to probing.
const jitterAttempts = 64

// DecoyGenerator synthesizes colors a fixed perceptual distance away from
// a target. Working in Lab keeps decoys comparably hard for every hue.
type DecoyGenerator struct {
	rng RandomSource
	cfg config.DecoyConfig
}

// NewDecoyGenerator creates a generator drawing from rng.
func NewDecoyGenerator(rng RandomSource, cfg config.DecoyConfig) *DecoyGenerator {
	return &DecoyGenerator{rng: rng, cfg: cfg}
}

// Generate returns n in-gamut colors that are distinct from each other and
// from target, each about radius ΔE76 away from target.
func (g *DecoyGenerator) Generate(target colorspace.RGB, n int, radius float64) []colorspace.RGB {
	targetLab := target.Lab()
	used := map[colorspace.RGB]bool{target: true}
	decoys := make([]colorspace.RGB, 0, max(n, 0))

	r := radius
	for len(decoys) < n {
		if !g.cfg.CarryRadius {
			r = radius
		}
		c, ok := g.fromLab(targetLab, &r, used)
		if !ok {
			c = g.fromJitter(target, used)
		}
		used[c] = true
		decoys = append(decoys, c)
	}
	return decoys
}

// fromLab samples a direction in Lab and converts it back to sRGB.
// A gamut miss shrinks *radius; a duplicate is simply retried.
// The shrink has no floor: at gamut corners such as pure red an accepted
// decoy can land far inside the requested radius, close enough to be hard
// to tell from the target.
func (g *DecoyGenerator) fromLab(target colorspace.Lab, radius *float64, used map[colorspace.RGB]bool) (colorspace.RGB, bool) {
	maxTilt := g.cfg.MaxTiltDeg * math.Pi / 180

	for range g.cfg.Attempts {
		theta := g.rng.Float64() * 2 * math.Pi
		phi := (g.rng.Float64()*2 - 1) * maxTilt

		r := *radius
		cand := target.Offset(
			r*math.Sin(phi),
			r*math.Cos(phi)*math.Cos(theta),
			r*math.Cos(phi)*math.Sin(theta),
		)

		c, inGamut := colorspace.LabToRGBInGamut(cand)
		if !inGamut {
			*radius *= g.cfg.Shrink
			continue
		}
		if used[c] {
			continue
		}
		return c, true
	}
	return colorspace.RGB{}, false
}

// fromJitter offsets each target channel by a uniform integer in
// [-Jitter, +Jitter]. If every draw collides it probes forward from the
// last draw, so it always terminates with an unused color.
func (g *DecoyGenerator) fromJitter(target colorspace.RGB, used map[colorspace.RGB]bool) colorspace.RGB {
	var c colorspace.RGB
	for range jitterAttempts {
		c = colorspace.NewRGB(
			int(target.R)+g.offset(),
			int(target.G)+g.offset(),
			int(target.B)+g.offset(),
		)
		if !used[c] {
			return c
		}
	}
	for used[c] {
		c = nextRGB(c)
	}
	return c
}

func (g *DecoyGenerator) offset() int {
	j := g.cfg.Jitter
	return intn(g.rng, 2*j+1) - j
}

// nextRGB steps through the 24-bit color cube, wrapping at white.
func nextRGB(c colorspace.RGB) colorspace.RGB {
	v := (uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)) + 1
	v &= 0xFFFFFF
	return colorspace.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}
