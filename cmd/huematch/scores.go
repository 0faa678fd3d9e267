package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/huematch/internal/storage"
)

var (
	flagScoresPlayer string
	flagScoresLimit  int
	flagClear        bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top scores, optionally for a single player.

With --player the per-difficulty statistics of that player are shown too.

Examples:
  huematch scores
  huematch scores --player ana
  huematch scores --player ana --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show this player's scores")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the player's scores and bests")
}

func runScores(_ *cobra.Command, _ []string) error {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if flagScoresPlayer == "" {
			return fmt.Errorf("--clear needs --player")
		}
		if err := store.ClearScores(flagScoresPlayer); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Printf("Cleared scores for %s.\n", flagScoresPlayer)
		return nil
	}

	// Get top scores
	scores, err := store.TopScores(flagScoresPlayer, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	title := "everyone"
	if flagScoresPlayer != "" {
		title = flagScoresPlayer
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'huematch play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-10s  %-7s  %-6s  %s\n", "Rank", "Score", "Streak", "Player", "Level", "Mode", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-10s  %-7s  %-6s  %s\n", "----", "-----", "------", "------", "-----", "----", "----")

	// Print scores
	for i, e := range scores {
		dateStr := e.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-10s  %-7s  %-6s  %s\n",
			i+1, e.Score, e.BestStreak, e.Player, e.Difficulty, e.Mode, dateStr)
	}

	// Show high score
	fmt.Println()
	if highScore, err := store.HighScore(flagScoresPlayer); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}

	if flagScoresPlayer == "" {
		return nil
	}

	stats, err := store.Stats(flagScoresPlayer)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println()
	fmt.Printf("  %-7s  %-5s  %-5s  %s\n", "Level", "Games", "Best", "Average")
	for _, name := range names {
		st := stats[name]
		fmt.Printf("  %-7s  %-5d  %-5d  %.1f\n", st.Difficulty, st.Games, st.HighScore, st.AvgScore)
	}
	return nil
}
