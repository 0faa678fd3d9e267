package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/huematch/internal/httpapi"
	"github.com/vovakirdan/huematch/internal/storage"
)

var (
	flagAPIAddr     string
	flagMaxSessions int
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the JSON HTTP API",
	Long: `Serve game sessions over HTTP for web or bot clients.

Routes:
  GET    /health
  GET    /difficulties
  GET    /scores?player=&limit=
  POST   /sessions                  {"player","difficulty","mode","seed"}
  GET    /sessions/{id}
  DELETE /sessions/{id}             records the run when score > 0
  POST   /sessions/{id}/guess       {"index"} or {"color":"#rrggbb"}; 409 while a reset is pending
  POST   /sessions/{id}/round
  POST   /sessions/{id}/restart
  PUT    /sessions/{id}/difficulty  {"difficulty"}
  PUT    /sessions/{id}/mode        {"mode"}

Examples:
  huematch api
  huematch api --addr 127.0.0.1:9000 --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address (host:port)")
	apiCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", httpapi.DefaultMaxSessions, "Maximum live sessions")
}

func runAPI(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger("huematch-api")
	if err != nil {
		return err
	}
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, keeping bests in memory", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	server := httpapi.New(httpapi.Options{
		Config:      gameCfg,
		Store:       store,
		Logger:      logger,
		Seed:        flagSeed,
		MaxSessions: flagMaxSessions,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, flagAPIAddr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
