package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/huematch/internal/game"
)

var difficultiesCmd = &cobra.Command{
	Use:   "difficulties",
	Short: "List difficulty presets",
	Long:  `Shows the option count and mixer tolerance of every preset in the active config.`,
	Args:  cobra.NoArgs,
	RunE:  runDifficulties,
}

func runDifficulties(_ *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	fmt.Println("Difficulties:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-8s  %-7s  %-14s  %s\n", "Name", "Options", "Tolerance (ΔE)", "")
	fmt.Printf("  %-8s  %-7s  %-14s  %s\n", "----", "-------", "--------------", "")

	for _, d := range game.Difficulties(cfg.Difficulties) {
		note := ""
		if d.Tuned() {
			note = "(tuned by config)"
		}
		fmt.Printf("  %-8s  %-7d  %-14g  %s\n", d.Name(), d.OptionCount, d.ToleranceLab, note)
	}

	fmt.Println()
	fmt.Println("Run 'huematch play --difficulty <name>' to play one.")
	return nil
}
