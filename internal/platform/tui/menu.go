package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/huematch/internal/config"
	"github.com/vovakirdan/huematch/internal/game"
)

// Menu rows, top to bottom.
const (
	rowDifficulty = iota
	rowMode
	rowPlay
	rowScores
	rowQuit
	rowCount
)

var modes = []game.Mode{game.ModeTiles, game.ModeMixer}

// MenuModel is the Bubble Tea model for the start menu: difficulty and
// mode pickers plus play, scores and quit entries.
type MenuModel struct {
	difficulties   []game.Difficulty
	diffIndex      int
	modeIndex      int
	cursor         int
	width          int
	height         int
	theme          Theme
	keyMapper      *KeyMapper
	quitting       bool
	start          bool
	openScoreboard bool
}

// NewMenuModel creates a new menu with the given preselection.
func NewMenuModel(difficulties []game.Difficulty, preset config.DifficultyPreset, mode game.Mode, theme Theme, width, height int) MenuModel {
	m := MenuModel{
		difficulties: difficulties,
		cursor:       rowPlay,
		width:        width,
		height:       height,
		theme:        theme,
		keyMapper:    NewKeyMapper(),
	}
	for i, d := range difficulties {
		if d.Preset == preset {
			m.diffIndex = i
		}
	}
	for i, md := range modes {
		if md == mode {
			m.modeIndex = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = (m.cursor - 1 + rowCount) % rowCount

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % rowCount

	case MenuActionLeft:
		m.cycle(-1)

	case MenuActionRight:
		m.cycle(1)

	case MenuActionScoreboard:
		m.openScoreboard = true

	case MenuActionSelect:
		switch m.cursor {
		case rowDifficulty, rowMode:
			m.cycle(1)
		case rowPlay:
			m.start = true
		case rowScores:
			m.openScoreboard = true
		case rowQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *MenuModel) cycle(step int) {
	switch m.cursor {
	case rowDifficulty:
		if n := len(m.difficulties); n > 0 {
			m.diffIndex = (m.diffIndex + step + n) % n
		}
	case rowMode:
		m.modeIndex = (m.modeIndex + step + len(modes)) % len(modes)
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.theme.MenuTitle.Render(" H U E M A T C H "))
	b.WriteString("\n")
	b.WriteString(m.theme.MenuDescription.Render("spot the color, mix the color"))
	b.WriteString("\n\n")

	d := m.Difficulty()
	rows := []string{
		fmt.Sprintf("Difficulty  ‹ %s ›", d.Name()),
		fmt.Sprintf("Mode        ‹ %s ›", m.Mode().Title()),
		"Play",
		"Scores",
		"Quit",
	}
	for i, row := range rows {
		style := m.theme.MenuItemNormal
		cursor := "  "
		if i == m.cursor {
			style = m.theme.MenuItemActive
			cursor = "> "
		}
		b.WriteString(style.Render(cursor + row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	desc := fmt.Sprintf("%d tiles · mixer tolerance ΔE %.0f", d.OptionCount, d.ToleranceLab)
	b.WriteString(m.theme.MenuDescription.Render(desc))
	b.WriteString("\n\n")
	b.WriteString(m.theme.HUDControls.Render("↑/↓: Navigate  |  ←/→: Change  |  Enter: Select  |  Tab: Scores  |  Q: Quit"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// Difficulty returns the selected difficulty.
func (m MenuModel) Difficulty() game.Difficulty {
	if len(m.difficulties) == 0 {
		return game.Medium
	}
	return m.difficulties[m.diffIndex]
}

// Mode returns the selected mode.
func (m MenuModel) Mode() game.Mode {
	return modes[m.modeIndex]
}

// Started returns true once the user chose Play.
func (m MenuModel) Started() bool {
	return m.start
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}
