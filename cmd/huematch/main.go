// huematch is a terminal color-guessing game: find the target color among
// look-alike tiles, or mix it with RGB sliders.
//
// Usage:
//
//	huematch play            - Play in the terminal
//	huematch serve           - Start SSH server for remote play
//	huematch api             - Start the JSON HTTP API
//	huematch scores          - Show high scores
//	huematch chart           - Plot score history to a PNG
//	huematch difficulties    - List difficulty presets
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible rounds
//	--db <path>         - Set database path (default: ~/.huematch/scores.db)
//	--config <path>     - Set game config YAML
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/huematch/internal/config"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "huematch",
	Short: "huematch - Guess colors in your terminal",
	Long: `huematch shows you a color and asks you to find it.

In tiles mode the target is given as rgb(r, g, b) and you pick it among
look-alike decoys. In mixer mode you dial the target in with RGB sliders
and score extra for getting close.

Available commands:
  play          - Play in the terminal
  serve         - Start SSH server for remote play
  api           - Start the JSON HTTP API
  scores        - View high scores
  chart         - Plot score history
  difficulties  - List difficulty presets

Examples:
  huematch play
  huematch play --difficulty hard --mode mixer
  huematch serve --ssh :2222
  huematch api --addr :8080
  huematch scores --player ana`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.huematch/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(difficultiesCmd)
}

// newLogger builds the stderr logger used by every command.
func newLogger(prefix string) (*log.Logger, error) {
	return newLoggerTo(os.Stderr, prefix)
}

// newLoggerTo builds a logger writing to w at --log-level.
func newLoggerTo(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadGameConfig reads --config, falling back to the user and embedded
// defaults.
func loadGameConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.GameConfig{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
