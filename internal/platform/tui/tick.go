// Package tui provides the Bubble Tea front-end: the difficulty menu, the
// tiles and mixer screens, the scoreboard and SSH hosting via Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ResetMsg is delivered when a scheduled round reset is due.
type ResetMsg struct {
	At time.Time
}

// resetCmd returns a command that delivers a ResetMsg after delay.
// It is fire-and-forget; a late reset is harmless.
func resetCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ResetMsg{At: t}
	})
}
