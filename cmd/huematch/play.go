package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/huematch/internal/config"
	"github.com/vovakirdan/huematch/internal/game"
	"github.com/vovakirdan/huematch/internal/platform/tui"
	"github.com/vovakirdan/huematch/internal/storage"
)

var (
	flagDifficulty string
	flagMode       string
	flagPlayer     string
	flagTheme      string
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Without --difficulty or --mode a menu lets you pick both. With either flag
the game starts right away.

Controls:
  ←/→ h/l     - Move between tiles / pick slider channel
  ↑/↓         - Move between tile rows / nudge a slider by 1
  [ ]         - Nudge a slider by 16
  1-9         - Pick a tile directly
  Enter/Space - Submit
  Tab/M       - Switch tiles/mixer
  D           - Cycle difficulty
  N           - New round
  R           - Restart
  Esc         - Back to menu
  Q/Ctrl+C    - Quit

Examples:
  huematch play
  huematch play --difficulty easy
  huematch play --mode mixer --theme mono
  huematch play --config ./my-huematch.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, medium, hard")
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode: tiles, mixer")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name for scores (default: current user)")
	playCmd.Flags().StringVar(&flagTheme, "theme", "default", "Color theme: default, mono")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the game screen hides stderr)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	// Logs would draw over the alt screen, so they go to a file or nowhere
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return fmt.Errorf("opening log file: %w", openErr)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLoggerTo(logOut, "huematch")
	if err != nil {
		return err
	}
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	mode, err := game.ParseMode(flagMode)
	if err != nil {
		return err
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(store, logger, tui.AppConfig{
		Game:       gameCfg,
		Difficulty: preset,
		Mode:       mode,
		Player:     playerName(flagPlayer),
		Seed:       flagSeed,
		Theme:      tui.ThemeByName(flagTheme),
		Width:      width,
		Height:     height,
		SkipMenu:   cmd.Flags().Changed("difficulty") || cmd.Flags().Changed("mode"),
	})

	// Close store before returning
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}

// playerName returns name, else the OS user, else the default player.
func playerName(name string) string {
	if name != "" {
		return name
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return storage.DefaultPlayer
}
