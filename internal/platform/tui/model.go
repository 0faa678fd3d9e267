package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/huematch/internal/colorspace"
	"github.com/vovakirdan/huematch/internal/config"
	"github.com/vovakirdan/huematch/internal/game"
	"github.com/vovakirdan/huematch/internal/storage"
)

// ScoreRecorder receives the final score of a session.
// *storage.Store satisfies it.
type ScoreRecorder interface {
	SaveScore(e storage.ScoreEntry) (int64, error)
}

// outcome is the last guess shown under the board.
type outcome struct {
	result     game.GuessResult
	transition game.Transition
}

// GameModel is the Bubble Tea model for one game session.
type GameModel struct {
	session  *game.Session
	recorder ScoreRecorder
	player   string
	logger   *log.Logger
	theme    Theme
	keys     GameKeyMap
	help     help.Model

	width  int
	height int

	seenRound int    // Round number the cursor and sliders belong to
	cursor    int    // Selected tile
	mix       [3]int // Mixer slider values
	channel   int    // Active slider
	last      *outcome

	resetting  bool // A reset is scheduled and not yet delivered
	maxStreak  int  // Longest streak since the last save
	scoreSaved bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model around an existing session.
// recorder may be nil.
func NewGameModel(session *game.Session, recorder ScoreRecorder, player string, logger *log.Logger, theme Theme, width, height int) GameModel {
	h := help.New()
	h.Width = width

	m := GameModel{
		session:  session,
		recorder: recorder,
		player:   player,
		logger:   logger,
		theme:    theme,
		keys:     DefaultGameKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
	m.syncRound()
	return m
}

// Init initializes the game.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ResetMsg:
		m.session.ResetRound()
		m.resetting = false
		m.syncRound()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveScore()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.saveScore()
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Mode):
		next := game.ModeMixer
		if m.session.Mode() == game.ModeMixer {
			next = game.ModeTiles
		}
		//nolint:errcheck // both modes are valid
		m.session.SetMode(next)
		m.last = nil
		return m, nil

	case key.Matches(msg, m.keys.Difficulty):
		if err := m.session.SetDifficulty(nextPreset(m.session.Difficulty().Preset)); err != nil {
			m.logger.Error("could not change difficulty", "error", err)
		}
		m.last = nil
		m.syncRound()
		return m, nil

	case key.Matches(msg, m.keys.NewRound):
		m.session.NewRound()
		m.last = nil
		m.syncRound()
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.saveScore()
		m.session.Restart()
		m.last = nil
		m.scoreSaved = false
		m.maxStreak = 0
		m.syncRound()
		return m, nil
	}

	if m.resetting {
		return m, nil
	}
	if m.session.Mode() == game.ModeMixer {
		return m.handleMixerKey(msg)
	}
	return m.handleTilesKey(msg)
}

func (m GameModel) handleTilesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.session.Round().Options)

	switch {
	case key.Matches(msg, m.keys.Pick):
		idx := int(msg.Runes[0] - '1')
		if idx < n {
			m.cursor = idx
			return m.guessTile(idx)
		}
	case key.Matches(msg, m.keys.Submit):
		return m.guessTile(m.cursor)
	case key.Matches(msg, m.keys.Left):
		m.cursor = (m.cursor - 1 + n) % n
	case key.Matches(msg, m.keys.Right):
		m.cursor = (m.cursor + 1) % n
	case key.Matches(msg, m.keys.Up):
		if m.cursor-tileColumns >= 0 {
			m.cursor -= tileColumns
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+tileColumns < n {
			m.cursor += tileColumns
		}
	}
	return m, nil
}

func (m GameModel) handleMixerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.guessMix()
	case key.Matches(msg, m.keys.Up):
		m.channel = (m.channel + 2) % 3
	case key.Matches(msg, m.keys.Down):
		m.channel = (m.channel + 1) % 3
	case key.Matches(msg, m.keys.Left):
		m.nudge(-1)
	case key.Matches(msg, m.keys.Right):
		m.nudge(1)
	case key.Matches(msg, m.keys.CoarseDown):
		m.nudge(-coarseStep)
	case key.Matches(msg, m.keys.CoarseUp):
		m.nudge(coarseStep)
	}
	return m, nil
}

func (m *GameModel) nudge(delta int) {
	m.mix[m.channel] = max(0, min(255, m.mix[m.channel]+delta))
}

func (m GameModel) mixColor() colorspace.RGB {
	return colorspace.NewRGB(m.mix[0], m.mix[1], m.mix[2])
}

func (m GameModel) guessTile(idx int) (tea.Model, tea.Cmd) {
	res, tr, err := m.session.GuessTile(idx)
	if err != nil {
		m.logger.Debug("tile guess rejected", "index", idx, "error", err)
		return m, nil
	}
	return m.afterGuess(res, tr)
}

func (m GameModel) guessMix() (tea.Model, tea.Cmd) {
	res, tr, err := m.session.GuessMix(m.mixColor())
	if err != nil {
		m.logger.Debug("mix guess rejected", "error", err)
		return m, nil
	}
	return m.afterGuess(res, tr)
}

// afterGuess records the outcome and schedules the deferred reset.
func (m GameModel) afterGuess(res game.GuessResult, tr game.Transition) (tea.Model, tea.Cmd) {
	m.last = &outcome{result: res, transition: tr}
	m.maxStreak = max(m.maxStreak, tr.State.Streak)

	switch tr.Effect {
	case game.EffectAdvance:
		m.syncRound()
	case game.EffectScheduleReset:
		m.resetting = true
		return m, resetCmd(tr.Delay)
	}
	return m, nil
}

// syncRound resets the cursor and sliders when a new round was dealt.
func (m *GameModel) syncRound() {
	if n := m.session.RoundNumber(); n != m.seenRound {
		m.seenRound = n
		m.cursor = 0
		m.mix = [3]int{128, 128, 128}
		m.channel = 0
	}
}

// saveScore records the session score once, if there is one.
func (m *GameModel) saveScore() {
	st := m.session.State()
	if m.scoreSaved || st.Score <= 0 || m.recorder == nil {
		return
	}
	_, err := m.recorder.SaveScore(storage.ScoreEntry{
		Player:     m.player,
		Difficulty: string(m.session.Difficulty().Preset),
		Mode:       string(m.session.Mode()),
		Score:      st.Score,
		BestStreak: m.maxStreak,
	})
	if err != nil {
		m.logger.Warn("could not save score", "error", err)
	}
	m.scoreSaved = true
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	st := m.session.State()
	round := m.session.Round()

	var board string
	if m.session.Mode() == game.ModeMixer {
		board = renderMixer(round.Target, m.mixColor(), m.channel, m.theme)
	} else {
		board = lipgloss.JoinVertical(lipgloss.Center,
			renderPrompt(round.Target, m.theme),
			"",
			renderTiles(round.Options, m.cursor, m.width, m.theme),
		)
	}

	result := " "
	if m.last != nil {
		result = renderResult(m.last.result, m.last.transition, m.theme)
	}

	var b strings.Builder
	b.WriteString(renderHUD(st, m.session.MaxLives(), m.session.Difficulty(), m.session.Mode(), m.session.RoundNumber(), m.theme))
	b.WriteString("\n\n")
	b.WriteString(board)
	b.WriteString("\n\n")
	b.WriteString(result)
	b.WriteString("\n\n")
	b.WriteString(m.theme.HUDControls.Render(m.help.View(m.keys)))

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, b.String())
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// nextPreset cycles easy -> medium -> hard -> easy.
func nextPreset(p config.DifficultyPreset) config.DifficultyPreset {
	presets := config.Presets()
	for i, q := range presets {
		if q == p {
			return presets[(i+1)%len(presets)]
		}
	}
	return presets[0]
}
