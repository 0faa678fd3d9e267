package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/huematch/internal/report"
	"github.com/vovakirdan/huematch/internal/storage"
)

var (
	flagChartOut    string
	flagChartPlayer string
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Plot score history to a PNG",
	Long: `Render every recorded run as a score-over-games line per difficulty.

Examples:
  huematch chart
  huematch chart --player ana --out ana.png`,
	Args: cobra.NoArgs,
	RunE: runChart,
}

func init() {
	chartCmd.Flags().StringVar(&flagChartOut, "out", "huematch-scores.png", "Output PNG path")
	chartCmd.Flags().StringVar(&flagChartPlayer, "player", storage.DefaultPlayer, "Player whose history to plot")
}

func runChart(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	history, err := store.History(flagChartPlayer)
	if err != nil {
		return fmt.Errorf("retrieving history: %w", err)
	}

	opts := report.DefaultChartOptions()
	opts.Title = fmt.Sprintf("huematch - %s", flagChartPlayer)
	if err := report.SaveScoreChart(flagChartOut, history, opts); err != nil {
		if errors.Is(err, report.ErrNoScores) {
			fmt.Printf("No scores recorded for %s yet.\n", flagChartPlayer)
			return nil
		}
		return err
	}
	fmt.Printf("Wrote %d games to %s\n", len(history), flagChartOut)
	return nil
}
