package report

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/huematch/internal/storage"
)

func sampleHistory() []storage.ScoreEntry {
	return []storage.ScoreEntry{
		{Difficulty: "easy", Score: 12},
		{Difficulty: "hard", Score: 40},
		{Difficulty: "easy", Score: 30},
		{Difficulty: "medium", Score: 22},
		{Difficulty: "easy", Score: 18},
	}
}

func TestWriteScoreChartPNG(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultChartOptions()
	if err := WriteScoreChart(&buf, sampleHistory(), opts); err != nil {
		t.Fatalf("WriteScoreChart() failed: %v", err)
	}

	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		t.Errorf("PNG size = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Width <= cfg.Height {
		t.Errorf("chart should be landscape, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestWriteScoreChartEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteScoreChart(&buf, nil, DefaultChartOptions()); !errors.Is(err, ErrNoScores) {
		t.Errorf("error = %v, expected ErrNoScores", err)
	}
}

func TestSaveScoreChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "scores.png")
	if err := SaveScoreChart(path, sampleHistory(), DefaultChartOptions()); err != nil {
		t.Fatalf("SaveScoreChart() failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestGroupByDifficulty(t *testing.T) {
	series := groupByDifficulty(sampleHistory())

	easy := series["easy"]
	if len(easy) != 3 {
		t.Fatalf("easy points = %d, expected 3", len(easy))
	}
	for i, want := range []float64{12, 30, 18} {
		if easy[i].X != float64(i+1) || easy[i].Y != want {
			t.Errorf("easy[%d] = %+v", i, easy[i])
		}
	}
	if len(series["hard"]) != 1 || len(series["medium"]) != 1 {
		t.Errorf("series = %v", series)
	}
}
