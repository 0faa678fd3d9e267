package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/huematch/internal/config"
	"github.com/vovakirdan/huematch/internal/game"
	"github.com/vovakirdan/huematch/internal/storage"
)

// AppConfig holds everything a player session needs besides storage.
type AppConfig struct {
	Game       config.GameConfig
	Difficulty config.DifficultyPreset
	Mode       game.Mode
	Player     string
	Seed       int64 // 0 means time-based
	Theme      Theme
	Width      int
	Height     int
	SkipMenu   bool // Start directly in the game
}

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
)

// SessionModel manages the full flow: menu -> game -> menu, with the
// scoreboard reachable from the menu. It is the top-level model for both
// local and SSH play.
type SessionModel struct {
	cfg        AppConfig
	store      *storage.Store
	bests      game.PersistentStore
	rng        game.RandomSource
	logger     *log.Logger
	screen     screen
	menu       MenuModel
	gameModel  *GameModel
	scoreboard *ScoreboardModel
	quitting   bool
	err        error
}

// NewSessionModel creates a new session model. store may be nil, in which
// case bests live in memory and no history is recorded.
func NewSessionModel(store *storage.Store, logger *log.Logger, cfg AppConfig) SessionModel {
	if cfg.Player == "" {
		cfg.Player = storage.DefaultPlayer
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var bests game.PersistentStore = storage.NewMemoryBests()
	if store != nil {
		bests = store.Bests(cfg.Player)
	}

	m := SessionModel{
		cfg:    cfg,
		store:  store,
		bests:  bests,
		rng:    game.NewRandomSource(cfg.Seed),
		logger: logger,
		menu:   NewMenuModel(game.Difficulties(cfg.Game.Difficulties), cfg.Difficulty, cfg.Mode, cfg.Theme, cfg.Width, cfg.Height),
	}

	if cfg.SkipMenu {
		m.startGame(cfg.Difficulty, cfg.Mode)
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.cfg.Width = wsm.Width
		m.cfg.Height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		var source ScoreSource
		if m.store != nil {
			source = m.store
		}
		sb := NewScoreboardModel(source, m.cfg.Player, m.cfg.Width, m.cfg.Height)
		m.scoreboard = &sb
		m.screen = screenScores
		return m, nil

	case m.menu.Started():
		m.startGame(m.menu.Difficulty().Preset, m.menu.Mode())
		return m, nil
	}

	return m, cmd
}

// startGame creates a game session, falling back to the menu on error.
func (m *SessionModel) startGame(preset config.DifficultyPreset, mode game.Mode) {
	session, err := game.NewSession(game.Options{
		Config:     m.cfg.Game,
		Difficulty: preset,
		Mode:       mode,
		Random:     m.rng,
		Store:      m.bests,
		Logger:     m.logger,
	})
	if err != nil {
		m.logger.Error("could not start game", "error", err)
		m.err = err
		m.resetMenu()
		return
	}

	var recorder ScoreRecorder
	if m.store != nil {
		recorder = m.store
	}
	gm := NewGameModel(session, recorder, m.cfg.Player, m.logger, m.cfg.Theme, m.cfg.Width, m.cfg.Height)
	m.gameModel = &gm
	m.screen = screenGame
	m.logger.Info("game started", "player", m.cfg.Player, "difficulty", preset, "mode", mode)
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.resetMenu()
		return m, nil
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.scoreboard = nil
		m.resetMenu()
		return m, nil
	}
	return m, cmd
}

// resetMenu shows a fresh menu keeping the last picks.
func (m *SessionModel) resetMenu() {
	preset, mode := m.cfg.Difficulty, m.cfg.Mode
	if m.menu.difficulties != nil {
		preset, mode = m.menu.Difficulty().Preset, m.menu.Mode()
	}
	m.menu = NewMenuModel(game.Difficulties(m.cfg.Game.Difficulties), preset, mode, m.cfg.Theme, m.cfg.Width, m.cfg.Height)
	m.screen = screenMenu
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// Err returns the last error that sent the player back to the menu.
func (m SessionModel) Err() error {
	return m.err
}

// Run starts a local Bubble Tea program.
func Run(store *storage.Store, logger *log.Logger, cfg AppConfig) error {
	model := NewSessionModel(store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
