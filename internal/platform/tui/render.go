package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/huematch/internal/colorspace"
	"github.com/vovakirdan/huematch/internal/game"
)

// Layout constants
const (
	tileColumns  = 3
	tileMinWidth = 8
	tileMaxWidth = 18
	tileHeight   = 3
	sliderWidth  = 32
	coarseStep   = 16
)

var channelNames = [3]string{"R", "G", "B"}

var channelColors = [3]lipgloss.Color{"196", "46", "33"}

// swatch renders a solid truecolor block.
func swatch(c colorspace.RGB, w, h int) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Width(w).
		Height(h).
		Render("")
}

// tileWidth fits tileColumns tiles plus borders into the screen width.
func tileWidth(screenW int) int {
	w := (screenW - 4) / tileColumns
	w -= 4 // border + gap
	return max(tileMinWidth, min(tileMaxWidth, w))
}

// renderTiles lays the options out in rows of tileColumns, numbering
// each tile and highlighting the cursor.
func renderTiles(options []colorspace.RGB, cursor, screenW int, theme Theme) string {
	w := tileWidth(screenW)

	var rows []string
	var row []string
	for i, c := range options {
		border := theme.SwatchBorder
		if i == cursor {
			border = theme.SwatchSelected
		}
		label := theme.HUDLabel.Width(w).Align(lipgloss.Center).Render(fmt.Sprintf("%d", i+1))
		tile := lipgloss.JoinVertical(lipgloss.Center, border.Render(swatch(c, w, tileHeight)), label)
		row = append(row, tile)

		if len(row) == tileColumns || i == len(options)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(row, " ")...))
			row = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func joinWithGap(items []string, gap string) []string {
	out := make([]string, 0, len(items)*2)
	for i, it := range items {
		if i > 0 {
			out = append(out, gap)
		}
		out = append(out, it)
	}
	return out
}

// renderSlider draws one channel slider: label, filled track and value.
func renderSlider(channel, value int, active bool, theme Theme) string {
	label := theme.SliderLabel
	marker := "  "
	if active {
		label = theme.SliderActive
		marker = "> "
	}

	filled := value * sliderWidth / 255
	fill := lipgloss.NewStyle().Foreground(channelColors[channel]).Render(strings.Repeat("█", filled))
	rest := theme.SliderTrack.Render(strings.Repeat("░", sliderWidth-filled))

	return fmt.Sprintf("%s%s %s%s %3d", marker, label.Render(channelNames[channel]), fill, rest, value)
}

// renderMixer shows the target next to the current mix and the sliders.
func renderMixer(target, mix colorspace.RGB, channel int, theme Theme) string {
	targetBlock := lipgloss.JoinVertical(lipgloss.Center,
		theme.SwatchBorder.Render(swatch(target, 16, 5)),
		theme.HUDLabel.Render("target"),
	)
	mixBlock := lipgloss.JoinVertical(lipgloss.Center,
		theme.SwatchBorder.Render(swatch(mix, 16, 5)),
		theme.HUDLabel.Render("your mix "+mix.Hex()),
	)
	blocks := lipgloss.JoinHorizontal(lipgloss.Top, targetBlock, "   ", mixBlock)

	vals := [3]int{int(mix.R), int(mix.G), int(mix.B)}
	sliders := make([]string, 3)
	for i := range 3 {
		sliders[i] = renderSlider(i, vals[i], i == channel, theme)
	}
	return lipgloss.JoinVertical(lipgloss.Center, blocks, "", strings.Join(sliders, "\n"))
}

// renderPrompt shows the clue of a tiles round: the target's channel
// values as text. The player has to find the matching swatch.
func renderPrompt(target colorspace.RGB, theme Theme) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.HUDLabel.Render("which tile is"),
		theme.MenuTitle.Padding(0, 2).Render(target.String()),
	)
}

// renderHUD renders the status line.
func renderHUD(s game.State, maxLives int, d game.Difficulty, m game.Mode, round int, theme Theme) string {
	sep := theme.HUDSeparator.Render("  │  ")
	field := func(label string, v any) string {
		return theme.HUDLabel.Render(label+" ") + theme.HUDValue.Render(fmt.Sprint(v))
	}

	lives := theme.Lives.Render(strings.Repeat("♥", max(0, s.Lives))) +
		theme.LostLife.Render(strings.Repeat("♥", max(0, maxLives-s.Lives)))

	parts := []string{
		theme.HUDTitle.Render(fmt.Sprintf("%s · %s", d.Name(), m.Title())),
		field("Round", round),
		field("Score", s.Score),
		field("Streak", s.Streak),
		lives,
		field("Best", fmt.Sprintf("%d/%d", s.BestScore, s.BestStreak)),
	}
	return strings.Join(parts, sep)
}

// renderResult describes the last guess.
func renderResult(res game.GuessResult, tr game.Transition, theme Theme) string {
	// Channel deltas of a missed tile would give the answer away.
	detail := fmt.Sprintf("ΔE %.1f", res.DeltaE)
	if res.Mode == game.ModeMixer {
		detail = fmt.Sprintf("ΔE %.1f / %.0f  %s", res.DeltaE, res.Tolerance, res.Deltas)
	}

	if res.Correct {
		return theme.Correct.Render(fmt.Sprintf("✓ +%d", tr.Gained)) + "  " +
			theme.HUDLabel.Render(fmt.Sprintf("target was %s  %s", res.Target.Hex(), detail))
	}
	msg := "✗ try again"
	if tr.Effect == game.EffectScheduleReset {
		msg = "✗ out of lives, new round"
	}
	return theme.Wrong.Render(msg) + "  " + theme.HUDLabel.Render(detail)
}
