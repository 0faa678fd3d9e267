package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/huematch/internal/config"
	"github.com/vovakirdan/huematch/internal/game"
)

func newTestMenu() MenuModel {
	diffs := game.Difficulties(config.DefaultGameConfig().Difficulties)
	return NewMenuModel(diffs, config.DifficultyHard, game.ModeMixer, DefaultTheme(), 80, 24)
}

func menuPress(m MenuModel, msg tea.KeyMsg) MenuModel {
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuPreselection(t *testing.T) {
	m := newTestMenu()
	if m.Difficulty().Preset != config.DifficultyHard {
		t.Errorf("Difficulty = %s, expected Hard", m.Difficulty().Name())
	}
	if m.Mode() != game.ModeMixer {
		t.Errorf("Mode = %s, expected mixer", m.Mode())
	}
}

func TestMenuCyclesPickers(t *testing.T) {
	m := newTestMenu()

	// Cursor starts on Play; move up twice to Difficulty
	m = menuPress(m, tea.KeyMsg{Type: tea.KeyUp})
	m = menuPress(m, tea.KeyMsg{Type: tea.KeyUp})
	m = menuPress(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Difficulty().Preset != config.DifficultyEasy {
		t.Errorf("Difficulty = %s, expected wrap to Easy", m.Difficulty().Name())
	}

	m = menuPress(m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuPress(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Mode() != game.ModeTiles {
		t.Errorf("Mode = %s, expected tiles", m.Mode())
	}
}

func TestMenuActions(t *testing.T) {
	m := menuPress(newTestMenu(), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Started() {
		t.Error("enter on Play should start")
	}

	m = menuPress(newTestMenu(), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}

	m = menuPress(newTestMenu(), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestSessionModelFlow(t *testing.T) {
	cfg := AppConfig{
		Game:       config.DefaultGameConfig(),
		Difficulty: config.DifficultyEasy,
		Mode:       game.ModeTiles,
		Seed:       9,
		Theme:      DefaultTheme(),
		Width:      100,
		Height:     40,
	}
	var m tea.Model = NewSessionModel(nil, log.New(io.Discard), cfg)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sm := m.(SessionModel)
	if sm.screen != screenGame || sm.gameModel == nil {
		t.Fatalf("enter on Play should start a game, screen = %d", sm.screen)
	}
	if got := len(sm.gameModel.session.Round().Options); got != 3 {
		t.Errorf("options = %d, expected 3 on easy", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	sm = m.(SessionModel)
	if sm.screen != screenMenu {
		t.Fatalf("esc should return to the menu, screen = %d", sm.screen)
	}
	if sm.menu.Difficulty().Preset != config.DifficultyEasy {
		t.Error("menu should keep the last difficulty")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	sm = m.(SessionModel)
	if sm.screen != screenScores {
		t.Fatalf("tab should open the scoreboard, screen = %d", sm.screen)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).screen != screenMenu {
		t.Error("esc on the scoreboard should return to the menu")
	}
}

func TestSessionModelSkipMenu(t *testing.T) {
	cfg := AppConfig{
		Game:       config.DefaultGameConfig(),
		Difficulty: config.DifficultyHard,
		Mode:       game.ModeMixer,
		SkipMenu:   true,
		Theme:      DefaultTheme(),
	}
	m := NewSessionModel(nil, log.New(io.Discard), cfg)
	if m.screen != screenGame {
		t.Fatal("SkipMenu should start in the game")
	}
	if m.gameModel.session.Mode() != game.ModeMixer {
		t.Error("SkipMenu should honor the mode")
	}
}

func TestScoreboardFilters(t *testing.T) {
	rec := &fakeRecorder{}
	rec.SaveScore(storageEntry("easy", 30))
	rec.SaveScore(storageEntry("hard", 50))
	rec.SaveScore(storageEntry("easy", 10))

	sb := NewScoreboardModel(rec, "tester", 100, 30)
	if len(sb.scores) != 3 {
		t.Fatalf("All tab shows %d scores", len(sb.scores))
	}

	next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyTab})
	sb = next.(ScoreboardModel)
	if len(sb.scores) != 2 {
		t.Errorf("Easy tab shows %d scores, expected 2", len(sb.scores))
	}

	next, _ = sb.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}
