package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles of the game screens.
type Theme struct {
	// HUD styles
	HUDTitle     lipgloss.Style
	HUDLabel     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDControls  lipgloss.Style
	Lives        lipgloss.Style
	LostLife     lipgloss.Style

	// Feedback styles
	Correct lipgloss.Style
	Wrong   lipgloss.Style

	// Swatch styles
	SwatchBorder   lipgloss.Style
	SwatchSelected lipgloss.Style

	// Slider styles
	SliderLabel  lipgloss.Style
	SliderActive lipgloss.Style
	SliderTrack  lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDLabel:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDControls:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Lives:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		LostLife:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),

		Correct: lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Wrong:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),

		SwatchBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		SwatchSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("226")),

		SliderLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(3),
		SliderActive: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true).Width(3),
		SliderTrack:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// MonochromeTheme returns a grayscale theme for terminals where accent
// colors clash with the swatches.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.HUDTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.Correct = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.Wrong = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	theme.SwatchSelected = theme.SwatchSelected.BorderForeground(lipgloss.Color("255"))
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	return theme
}

// ThemeByName returns "mono" or the default theme.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}
