package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/huematch/internal/config"
	"github.com/vovakirdan/huematch/internal/game"
	"github.com/vovakirdan/huematch/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the huematch SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the difficulty/mode menu.
Scores and bests are stored per SSH user in the server database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.huematch/host_key

Examples:
  huematch serve                           # Listen on :23234 with auto-generated key
  huematch serve --ssh :2222               # Listen on port 2222
  huematch serve --host-key ./my_host_key  # Use specific host key
  huematch serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Preselected difficulty: easy, medium, hard")
	serveCmd.Flags().StringVar(&flagMode, "mode", "", "Preselected mode: tiles, mixer")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger("huematch-ssh")
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

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        gameCfg,
		Difficulty:  preset,
		Mode:        mode,
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting huematch SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
