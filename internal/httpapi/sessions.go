package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vovakirdan/huematch/internal/colorspace"
	"github.com/vovakirdan/huematch/internal/config"
	"github.com/vovakirdan/huematch/internal/game"
	"github.com/vovakirdan/huematch/internal/storage"
)

// liveSession is one game.Session plus the bookkeeping the API needs.
type liveSession struct {
	mu sync.Mutex

	id           string
	player       string
	session      *game.Session
	lastSeen     time.Time
	maxStreak    int
	resetPending int // Scheduled resets not yet fired
	closed       bool
}

type createRequest struct {
	Player     string `json:"player"`
	Difficulty string `json:"difficulty"`
	Mode       string `json:"mode"`
	Seed       int64  `json:"seed"`
}

type guessRequest struct {
	Index *int   `json:"index,omitempty"`
	Color string `json:"color,omitempty"`
}

type difficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type stateView struct {
	Score      int `json:"score"`
	Streak     int `json:"streak"`
	Lives      int `json:"lives"`
	MaxLives   int `json:"max_lives"`
	BestScore  int `json:"best_score"`
	BestStreak int `json:"best_streak"`
}

// roundView carries only what a player sees. The answer index is never sent.
type roundView struct {
	Number  int      `json:"number"`
	Prompt  string   `json:"prompt,omitempty"`
	Target  string   `json:"target,omitempty"`
	Options []string `json:"options,omitempty"`
}

type sessionView struct {
	ID           string      `json:"id"`
	Player       string      `json:"player"`
	Difficulty   string      `json:"difficulty"`
	Tolerance    float64     `json:"tolerance"`
	Mode         string      `json:"mode"`
	Round        roundView   `json:"round"`
	State        stateView   `json:"state"`
	Last         *resultView `json:"last,omitempty"` // Most recent guess
	ResetPending bool        `json:"reset_pending,omitempty"`
}

type resultView struct {
	Correct   bool    `json:"correct"`
	Guess     string  `json:"guess"`
	Target    string  `json:"target"`
	DeltaE    float64 `json:"delta_e"`
	Deltas    [3]int  `json:"deltas"`
	Tolerance float64 `json:"tolerance,omitempty"`
}

type guessResponse struct {
	Result  resultView  `json:"result"`
	Gained  int         `json:"gained"`
	Effect  string      `json:"effect"`
	DelayMS int64       `json:"delay_ms,omitempty"`
	Session sessionView `json:"session"`
}

type difficultyView struct {
	Name      string  `json:"name"`
	Options   int     `json:"options"`
	Tolerance float64 `json:"tolerance"`
	Tuned     bool    `json:"tuned,omitempty"` // Differs from the built-in preset
}

type scoreView struct {
	Player     string    `json:"player"`
	Difficulty string    `json:"difficulty"`
	Mode       string    `json:"mode"`
	Score      int       `json:"score"`
	BestStreak int       `json:"best_streak"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *Server) handleDifficulties(w http.ResponseWriter, r *http.Request) {
	out := []difficultyView{}
	for _, d := range game.Difficulties(s.opts.Config.Difficulties) {
		out = append(out, difficultyView{
			Name:      string(d.Preset),
			Options:   d.OptionCount,
			Tolerance: d.ToleranceLab,
			Tuned:     d.Tuned(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store == nil {
		writeJSON(w, http.StatusOK, []scoreView{})
		return
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, 100)
	}
	entries, err := s.opts.Store.TopScores(r.URL.Query().Get("player"), limit)
	if err != nil {
		s.logger.Error("could not load scores", "error", err)
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	out := make([]scoreView, 0, len(entries))
	for _, e := range entries {
		out = append(out, scoreView{
			Player:     e.Player,
			Difficulty: e.Difficulty,
			Mode:       e.Mode,
			Score:      e.Score,
			BestStreak: e.BestStreak,
			CreatedAt:  e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	// An empty body creates a session with defaults
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	preset, err := config.ParsePreset(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_difficulty")
		return
	}
	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_mode")
		return
	}
	player := strings.TrimSpace(req.Player)
	if player == "" {
		player = storage.DefaultPlayer
	}

	id := uuid.NewString()
	sess, err := game.NewSession(game.Options{
		Config:     s.opts.Config,
		Difficulty: preset,
		Mode:       mode,
		Random:     game.NewRandomSource(s.nextSeed(req.Seed)),
		Store:      s.bestsFor(player),
		Logger:     s.logger.With("session", id[:8], "player", player),
	})
	if err != nil {
		s.logger.Error("could not create session", "error", err)
		writeError(w, http.StatusInternalServerError, "session_error")
		return
	}

	ls := &liveSession{id: id, player: player, session: sess, lastSeen: time.Now()}
	if !s.add(ls) {
		writeError(w, http.StatusServiceUnavailable, "too_many_sessions")
		return
	}
	s.logger.Info("session created", "session", id, "player", player,
		"difficulty", preset, "mode", mode)

	writeJSON(w, http.StatusCreated, ls.view())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(ls *liveSession) {
		writeJSON(w, http.StatusOK, ls.view())
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ls := s.remove(chi.URLParam(r, "id"))
	if ls == nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.closed = true
	s.record(ls)
	s.logger.Info("session closed", "session", ls.id, "score", ls.session.State().Score)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if (req.Index == nil) == (req.Color == "") {
		writeError(w, http.StatusBadRequest, "want_index_or_color")
		return
	}
	var color colorspace.RGB
	if req.Color != "" {
		c, err := colorspace.ParseHex(req.Color)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_color")
			return
		}
		color = c
	}

	s.withSession(w, r, func(ls *liveSession) {
		if ls.resetPending > 0 {
			writeError(w, http.StatusConflict, "reset_pending")
			return
		}
		var (
			res game.GuessResult
			tr  game.Transition
			err error
		)
		switch {
		case req.Index != nil:
			res, tr, err = ls.session.GuessTile(*req.Index)
		case ls.session.Mode() == game.ModeMixer:
			res, tr, err = ls.session.GuessMix(color)
		default:
			res, tr, err = ls.session.GuessTileColor(color)
		}
		switch {
		case errors.Is(err, game.ErrWrongMode):
			writeError(w, http.StatusConflict, "wrong_mode")
			return
		case errors.Is(err, game.ErrNoSuchOption):
			writeError(w, http.StatusBadRequest, "no_such_option")
			return
		case err != nil:
			writeError(w, http.StatusBadRequest, "bad_guess")
			return
		}

		ls.maxStreak = max(ls.maxStreak, tr.State.Streak)
		if tr.Effect == game.EffectScheduleReset {
			s.scheduleReset(ls, tr.Delay)
		}

		resp := guessResponse{
			Result:  newResultView(res),
			Gained:  tr.Gained,
			Effect:  tr.Effect.String(),
			Session: ls.view(),
		}
		if tr.Effect == game.EffectScheduleReset {
			resp.DelayMS = tr.Delay.Milliseconds()
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(ls *liveSession) {
		ls.session.NewRound()
		writeJSON(w, http.StatusOK, ls.view())
	})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(ls *liveSession) {
		s.record(ls)
		ls.session.Restart()
		ls.maxStreak = 0
		writeJSON(w, http.StatusOK, ls.view())
	})
}

func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	var req difficultyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	preset, err := config.ParsePreset(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_difficulty")
		return
	}
	s.withSession(w, r, func(ls *liveSession) {
		if err := ls.session.SetDifficulty(preset); err != nil {
			writeError(w, http.StatusBadRequest, "unknown_difficulty")
			return
		}
		writeJSON(w, http.StatusOK, ls.view())
	})
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_mode")
		return
	}
	s.withSession(w, r, func(ls *liveSession) {
		//nolint:errcheck // mode was parsed above
		ls.session.SetMode(mode)
		writeJSON(w, http.StatusOK, ls.view())
	})
}

// withSession looks up the {id} session and runs fn under its lock.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*liveSession)) {
	ls := s.lookup(chi.URLParam(r, "id"))
	if ls == nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.closed {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	ls.lastSeen = time.Now()
	fn(ls)
}

// scheduleReset deals a fresh round with full lives after d. The reset
// always fires, even if the player dealt a round or switched difficulty in
// the meantime; guesses are refused until it has.
func (s *Server) scheduleReset(ls *liveSession, d time.Duration) {
	ls.resetPending++
	s.schedule(d, func() {
		ls.mu.Lock()
		defer ls.mu.Unlock()
		ls.resetPending--
		if ls.closed {
			return
		}
		ls.session.ResetRound()
		s.logger.Debug("round reset", "session", ls.id, "round", ls.session.RoundNumber())
	})
}

// record saves a finished run to the history. Caller holds ls.mu.
func (s *Server) record(ls *liveSession) {
	st := ls.session.State()
	if s.opts.Store == nil || st.Score <= 0 {
		return
	}
	_, err := s.opts.Store.SaveScore(storage.ScoreEntry{
		Player:     ls.player,
		Difficulty: string(ls.session.Difficulty().Preset),
		Mode:       string(ls.session.Mode()),
		Score:      st.Score,
		BestStreak: ls.maxStreak,
	})
	if err != nil {
		s.logger.Error("could not save score", "session", ls.id, "error", err)
	}
}

func (s *Server) lookup(id string) *liveSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// add registers ls after evicting idle sessions. It reports false when
// the server is full.
func (s *Server) add(ls *liveSession) bool {
	s.mu.Lock()
	var expired []*liveSession
	now := time.Now()
	for id, other := range s.sessions {
		other.mu.Lock()
		idle := now.Sub(other.lastSeen) > s.opts.SessionTTL
		other.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			expired = append(expired, other)
		}
	}
	full := len(s.sessions) >= s.opts.MaxSessions
	if !full {
		s.sessions[ls.id] = ls
	}
	s.mu.Unlock()

	for _, old := range expired {
		s.close(old)
		s.logger.Info("session expired", "session", old.id)
	}
	return !full
}

func (s *Server) remove(id string) *liveSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls := s.sessions[id]
	delete(s.sessions, id)
	return ls
}

func (s *Server) close(ls *liveSession) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.closed {
		return
	}
	ls.closed = true
	s.record(ls)
}

// saveAll records every live session, used on shutdown.
func (s *Server) saveAll() {
	s.mu.Lock()
	all := make([]*liveSession, 0, len(s.sessions))
	for id, ls := range s.sessions {
		all = append(all, ls)
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	for _, ls := range all {
		s.close(ls)
	}
}

// bestsFor returns the persistent bests of a player.
func (s *Server) bestsFor(player string) game.PersistentStore {
	if s.opts.Store != nil {
		return s.opts.Store.Bests(player)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bests[player]
	if !ok {
		b = storage.NewMemoryBests()
		s.bests[player] = b
	}
	return b
}

// nextSeed picks the session seed: the request's, else one derived from
// the server seed, else 0 for time-based.
func (s *Server) nextSeed(requested int64) int64 {
	if requested != 0 {
		return requested
	}
	if s.opts.Seed == 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seeds++
	return s.opts.Seed + s.seeds
}

func (ls *liveSession) view() sessionView {
	sess := ls.session
	st := sess.State()
	d := sess.Difficulty()
	rnd := sess.Round()

	v := sessionView{
		ID:         ls.id,
		Player:     ls.player,
		Difficulty: string(d.Preset),
		Tolerance:  d.ToleranceLab,
		Mode:       string(sess.Mode()),
		Round:      roundView{Number: sess.RoundNumber()},
		State: stateView{
			Score:      st.Score,
			Streak:     st.Streak,
			Lives:      st.Lives,
			MaxLives:   sess.MaxLives(),
			BestScore:  st.BestScore,
			BestStreak: st.BestStreak,
		},
		ResetPending: ls.resetPending > 0,
	}
	if res, ok := sess.LastResult(); ok {
		last := newResultView(res)
		v.Last = &last
	}
	if sess.Mode() == game.ModeMixer {
		v.Round.Target = rnd.Target.Hex()
	} else {
		v.Round.Prompt = rnd.Target.String()
		v.Round.Options = make([]string, len(rnd.Options))
		for i, c := range rnd.Options {
			v.Round.Options[i] = c.Hex()
		}
	}
	return v
}

func newResultView(res game.GuessResult) resultView {
	return resultView{
		Correct:   res.Correct,
		Guess:     res.Guess.Hex(),
		Target:    res.Target.Hex(),
		DeltaE:    res.DeltaE,
		Deltas:    [3]int{res.Deltas.R, res.Deltas.G, res.Deltas.B},
		Tolerance: res.Tolerance,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	//nolint:errcheck // the client may have gone away
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
