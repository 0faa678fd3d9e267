package game

import (
	"math"
	"time"

	"github.com/vovakirdan/huematch/internal/config"
)

// State is the player's progress within a session.
type State struct {
	Score      int
	Streak     int
	Lives      int
	BestScore  int
	BestStreak int
}

// Effect tells the front-end what to do after a guess.
type Effect int

const (
	// EffectAdvance starts a new round immediately.
	EffectAdvance Effect = iota
	// EffectRetry keeps the current round.
	EffectRetry
	// EffectScheduleReset starts a new round after Transition.Delay.
	EffectScheduleReset
)

// String returns the effect name.
func (e Effect) String() string {
	switch e {
	case EffectAdvance:
		return "advance"
	case EffectRetry:
		return "retry"
	case EffectScheduleReset:
		return "schedule_reset"
	default:
		return "unknown"
	}
}

// Transition is the outcome of applying a guess to a State.
type Transition struct {
	State  State
	Gained int // Points awarded, 0 on a miss
	Effect Effect
	Delay  time.Duration // Set for EffectScheduleReset
}

// ScoreEngine is the pure score/streak/lives state machine.
// It performs no I/O and schedules nothing.
type ScoreEngine struct {
	rules config.ScoringConfig
}

// NewScoreEngine creates an engine with the given rules.
func NewScoreEngine(rules config.ScoringConfig) ScoreEngine {
	return ScoreEngine{rules: rules}
}

// MaxLives returns the number of lives a fresh round grants.
func (e ScoreEngine) MaxLives() int {
	return e.rules.Lives
}

// InitialState returns a fresh state carrying the given bests.
func (e ScoreEngine) InitialState(bestScore, bestStreak int) State {
	return State{Lives: e.rules.Lives, BestScore: bestScore, BestStreak: bestStreak}
}

// ApplyGuess folds a guess result into s.
//
// A correct guess earns BasePoints plus StreakBonus per prior streak step,
// plus a precision bonus in mixer mode. A miss costs MissPenalty points
// (never below zero), the streak and a life; losing the last life shows
// full lives again and asks for a delayed reset.
func (e ScoreEngine) ApplyGuess(s State, r GuessResult) Transition {
	if r.Correct {
		gained := e.rules.BasePoints + e.rules.StreakBonus*s.Streak
		if r.Mode == ModeMixer {
			gained += max(0, int(math.Round(r.Tolerance-r.DeltaE)))
		}
		s.Score += gained
		s.Streak++
		s.BestScore = max(s.BestScore, s.Score)
		s.BestStreak = max(s.BestStreak, s.Streak)
		return Transition{State: s, Gained: gained, Effect: EffectAdvance}
	}

	s.Score = max(0, s.Score-e.rules.MissPenalty)
	s.Streak = 0
	s.Lives--
	if s.Lives <= 0 {
		s.Lives = e.rules.Lives
		return Transition{State: s, Effect: EffectScheduleReset, Delay: e.rules.ResetDelay}
	}
	return Transition{State: s, Effect: EffectRetry}
}
