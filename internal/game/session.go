package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/huematch/internal/colorspace"
	"github.com/vovakirdan/huematch/internal/config"
)

// Keys under which bests are persisted.
const (
	KeyBestScore  = "bestScore"
	KeyBestStreak = "bestStreak"
)

// ErrWrongMode is returned when a guess does not match the session mode.
var ErrWrongMode = errors.New("guess does not match mode")

// PersistentStore is a small integer key/value store for bests.
// A missing key reads as 0.
type PersistentStore interface {
	Get(key string) (int, error)
	Set(key string, value int) error
}

// Options configures a new Session.
type Options struct {
	Config     config.GameConfig
	Difficulty config.DifficultyPreset // Empty selects medium
	Mode       Mode                    // Empty selects tiles
	Random     RandomSource            // Nil selects a time-seeded source
	Store      PersistentStore         // Nil disables persistence
	Logger     *log.Logger             // Nil discards logs
}

// Session ties rounds, evaluation and scoring together for one player.
// It is not safe for concurrent use.
type Session struct {
	cfg        config.GameConfig
	difficulty Difficulty
	mode       Mode
	rounds     *RoundGenerator
	engine     ScoreEngine
	store      PersistentStore
	logger     *log.Logger

	state   State
	round   Round
	roundNo int
	last    *GuessResult
}

// NewSession loads persisted bests and deals the first round.
func NewSession(opts Options) (*Session, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	preset := opts.Difficulty
	if preset == "" {
		preset = config.DifficultyMedium
	}
	difficulty, err := DifficultyFor(opts.Config.Difficulties, preset)
	if err != nil {
		return nil, err
	}

	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}

	rng := opts.Random
	if rng == nil {
		rng = NewRandomSource(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		cfg:        opts.Config,
		difficulty: difficulty,
		mode:       mode,
		rounds:     NewRoundGenerator(rng, opts.Config),
		engine:     NewScoreEngine(opts.Config.Scoring),
		store:      opts.Store,
		logger:     logger,
	}

	s.state = s.engine.InitialState(s.load(KeyBestScore), s.load(KeyBestStreak))
	s.deal()
	return s, nil
}

// State returns the current score, streak, lives and bests.
func (s *Session) State() State { return s.state }

// Round returns the live round.
func (s *Session) Round() Round { return s.round }

// RoundNumber counts rounds dealt since the session started.
func (s *Session) RoundNumber() int { return s.roundNo }

// Difficulty returns the active difficulty.
func (s *Session) Difficulty() Difficulty { return s.difficulty }

// Mode returns the active mode.
func (s *Session) Mode() Mode { return s.mode }

// MaxLives returns the lives granted per round.
func (s *Session) MaxLives() int { return s.engine.MaxLives() }

// LastResult returns the most recent guess result, if any.
func (s *Session) LastResult() (GuessResult, bool) {
	if s.last == nil {
		return GuessResult{}, false
	}
	return *s.last, true
}

// GuessTile evaluates the option at index in tiles mode.
func (s *Session) GuessTile(index int) (GuessResult, Transition, error) {
	if s.mode != ModeTiles {
		return GuessResult{}, Transition{}, fmt.Errorf("%w: tile guess in %s mode", ErrWrongMode, s.mode)
	}
	c, err := s.round.Option(index)
	if err != nil {
		return GuessResult{}, Transition{}, err
	}
	res, tr := s.apply(EvaluateTileGuess(c, s.round.Target))
	return res, tr, nil
}

// GuessTileColor evaluates a tile guess given by color. The color must be
// one of the options.
func (s *Session) GuessTileColor(c colorspace.RGB) (GuessResult, Transition, error) {
	for i, opt := range s.round.Options {
		if opt == c {
			return s.GuessTile(i)
		}
	}
	return GuessResult{}, Transition{}, fmt.Errorf("%w: %s is not an option", ErrNoSuchOption, c)
}

// GuessMix evaluates a mixed color in mixer mode.
func (s *Session) GuessMix(c colorspace.RGB) (GuessResult, Transition, error) {
	if s.mode != ModeMixer {
		return GuessResult{}, Transition{}, fmt.Errorf("%w: mix guess in %s mode", ErrWrongMode, s.mode)
	}
	res, tr := s.apply(EvaluateMixerGuess(c, s.round.Target, s.difficulty.ToleranceLab))
	return res, tr, nil
}

func (s *Session) apply(res GuessResult) (GuessResult, Transition) {
	prev := s.state
	tr := s.engine.ApplyGuess(s.state, res)
	s.state = tr.State
	s.last = &res

	s.logger.Debug("guess",
		"round", s.roundNo,
		"mode", res.Mode,
		"correct", res.Correct,
		"delta_e", fmt.Sprintf("%.2f", res.DeltaE),
		"effect", tr.Effect,
	)

	if s.state.BestScore > prev.BestScore {
		s.save(KeyBestScore, s.state.BestScore)
	}
	if s.state.BestStreak > prev.BestStreak {
		s.save(KeyBestStreak, s.state.BestStreak)
	}

	if tr.Effect == EffectAdvance {
		s.deal()
	}
	return res, tr
}

// deal generates the next round, keeping lives and score.
func (s *Session) deal() {
	s.round = s.rounds.Generate(s.difficulty)
	s.roundNo++
	s.logger.Debug("new round", "round", s.roundNo, "difficulty", s.difficulty.Name(), "options", len(s.round.Options))
}

// NewRound deals a fresh round and refills lives. Score and streak stay.
func (s *Session) NewRound() {
	s.state.Lives = s.engine.MaxLives()
	s.last = nil
	s.deal()
}

// ResetRound is the deferred half of EffectScheduleReset. Front-ends call
// it once the transition delay expires; firing late is harmless.
func (s *Session) ResetRound() {
	s.NewRound()
}

// SetDifficulty switches presets, deals a fresh round and refills lives.
func (s *Session) SetDifficulty(preset config.DifficultyPreset) error {
	d, err := DifficultyFor(s.cfg.Difficulties, preset)
	if err != nil {
		return err
	}
	s.difficulty = d
	s.NewRound()
	return nil
}

// SetMode switches between tiles and mixer. The live round is kept.
func (s *Session) SetMode(m Mode) error {
	mode, err := ParseMode(string(m))
	if err != nil {
		return err
	}
	s.mode = mode
	return nil
}

// Restart clears score, streak and lives and deals a fresh round.
// Bests survive.
func (s *Session) Restart() {
	s.state = s.engine.InitialState(s.state.BestScore, s.state.BestStreak)
	s.last = nil
	s.deal()
}

func (s *Session) load(key string) int {
	if s.store == nil {
		return 0
	}
	v, err := s.store.Get(key)
	if err != nil {
		s.logger.Warn("could not load best", "key", key, "error", err)
		return 0
	}
	return v
}

func (s *Session) save(key string, v int) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(key, v); err != nil {
		s.logger.Warn("could not save best", "key", key, "error", err)
	}
}
