package game

import (
	"fmt"

	"github.com/vovakirdan/huematch/internal/colorspace"
)

// ChannelDeltas is the signed per-channel difference guess minus target.
type ChannelDeltas struct {
	R, G, B int
}

// String formats the deltas with explicit signs, e.g. "R +4 G -2 B 0".
func (d ChannelDeltas) String() string {
	return fmt.Sprintf("R %s G %s B %s", signed(d.R), signed(d.G), signed(d.B))
}

func signed(v int) string {
	if v > 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprintf("%d", v)
}

// GuessResult describes one evaluated guess.
type GuessResult struct {
	Correct bool
	Guess   colorspace.RGB
	Target  colorspace.RGB
	DeltaE  float64
	Deltas  ChannelDeltas
	Mode    Mode
	// Tolerance is the threshold used in mixer mode, 0 for tiles.
	Tolerance float64
}

func evaluate(guess, target colorspace.RGB) GuessResult {
	return GuessResult{
		Guess:  guess,
		Target: target,
		DeltaE: colorspace.DeltaERGB(guess, target),
		Deltas: ChannelDeltas{
			R: int(guess.R) - int(target.R),
			G: int(guess.G) - int(target.G),
			B: int(guess.B) - int(target.B),
		},
	}
}

// EvaluateTileGuess judges a picked tile. Only exact equality is correct.
func EvaluateTileGuess(guess, target colorspace.RGB) GuessResult {
	res := evaluate(guess, target)
	res.Mode = ModeTiles
	res.Correct = guess == target
	return res
}

// EvaluateMixerGuess judges a mixed color against the tolerance in ΔE76.
func EvaluateMixerGuess(guess, target colorspace.RGB, tolerance float64) GuessResult {
	res := evaluate(guess, target)
	res.Mode = ModeMixer
	res.Tolerance = tolerance
	res.Correct = res.DeltaE <= tolerance
	return res
}
