package game

import (
	"math"
	"testing"

	"github.com/vovakirdan/huematch/internal/colorspace"
)

func TestEvaluateTileGuess(t *testing.T) {
	target := colorspace.RGB{R: 200, G: 100, B: 50}

	hit := EvaluateTileGuess(target, target)
	if !hit.Correct || hit.DeltaE != 0 || hit.Mode != ModeTiles {
		t.Errorf("exact tile = %+v", hit)
	}

	miss := EvaluateTileGuess(colorspace.RGB{R: 201, G: 100, B: 50}, target)
	if miss.Correct {
		t.Error("a tile one unit off must be incorrect")
	}
	if miss.Deltas != (ChannelDeltas{R: 1}) {
		t.Errorf("Deltas = %+v", miss.Deltas)
	}
}

func TestEvaluateMixerGuess(t *testing.T) {
	target := colorspace.RGB{R: 120, G: 160, B: 90}
	near := colorspace.RGB{R: 123, G: 158, B: 92}
	far := colorspace.RGB{R: 40, G: 60, B: 200}

	res := EvaluateMixerGuess(near, target, 12)
	if !res.Correct {
		t.Errorf("ΔE %.2f within tolerance 12 should be correct", res.DeltaE)
	}
	if res.Deltas != (ChannelDeltas{R: 3, G: -2, B: 2}) {
		t.Errorf("Deltas = %+v", res.Deltas)
	}
	if res.Tolerance != 12 || res.Mode != ModeMixer {
		t.Errorf("result = %+v", res)
	}

	if EvaluateMixerGuess(far, target, 12).Correct {
		t.Error("distant mix should be incorrect")
	}

	// Tolerance is inclusive
	de := colorspace.DeltaERGB(near, target)
	if !EvaluateMixerGuess(near, target, de).Correct {
		t.Error("ΔE equal to tolerance should be correct")
	}
	if EvaluateMixerGuess(near, target, math.Nextafter(de, 0)).Correct {
		t.Error("ΔE just above tolerance should be incorrect")
	}
}

func TestChannelDeltasString(t *testing.T) {
	got := ChannelDeltas{R: 4, G: -2, B: 0}.String()
	if got != "R +4 G -2 B 0" {
		t.Errorf("String() = %q", got)
	}
}
