// Package report renders score history charts.
package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/vovakirdan/huematch/internal/storage"
)

// ErrNoScores is returned when there is nothing to chart.
var ErrNoScores = errors.New("report: no scores to chart")

var difficultyColors = map[string]color.RGBA{
	"easy":   {R: 46, G: 160, B: 67, A: 255},
	"medium": {R: 219, G: 141, B: 24, A: 255},
	"hard":   {R: 207, G: 34, B: 46, A: 255},
}

var fallbackColor = color.RGBA{R: 90, G: 90, B: 200, A: 255}

// ChartOptions controls the chart size and labels.
type ChartOptions struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

// DefaultChartOptions returns a 25x12 cm chart.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Title:  "Score history",
		Width:  25 * vg.Centimeter,
		Height: 12 * vg.Centimeter,
	}
}

// WriteScoreChart draws one line per difficulty (game number vs. score)
// and writes it to w as PNG.
func WriteScoreChart(w io.Writer, entries []storage.ScoreEntry, opts ChartOptions) error {
	if len(entries) == 0 {
		return ErrNoScores
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Game"
	p.Y.Label.Text = "Score"
	p.X.Width = 2
	p.Y.Width = 2
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	series := groupByDifficulty(entries)
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return difficultyRank(names[i]) < difficultyRank(names[j]) })

	for _, name := range names {
		l, pts, err := plotter.NewLinePoints(series[name])
		if err != nil {
			return fmt.Errorf("report: cannot build %s series: %w", name, err)
		}
		c, ok := difficultyColors[name]
		if !ok {
			c = fallbackColor
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = c
		pts.Shape = draw.CircleGlyph{}
		pts.Color = c
		p.Add(l, pts)
		p.Legend.Add(name, l, pts)
	}
	p.Legend.Top = true

	c := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(opts.Width, opts.Height),
		vgimg.UseBackgroundColor(color.White),
	)}
	p.Draw(draw.New(c))

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("report: cannot write chart: %w", err)
	}
	return nil
}

// SaveScoreChart writes the chart to a PNG file, creating parent
// directories as needed.
func SaveScoreChart(path string, entries []storage.ScoreEntry, opts ChartOptions) error {
	if len(entries) == 0 {
		return ErrNoScores
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("report: cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: cannot create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteScoreChart(f, entries, opts); err != nil {
		return err
	}
	return f.Close()
}

// groupByDifficulty numbers games per difficulty in play order.
func groupByDifficulty(entries []storage.ScoreEntry) map[string]plotter.XYs {
	series := make(map[string]plotter.XYs)
	for _, e := range entries {
		xys := series[e.Difficulty]
		xys = append(xys, plotter.XY{X: float64(len(xys) + 1), Y: float64(e.Score)})
		series[e.Difficulty] = xys
	}
	return series
}

func difficultyRank(name string) int {
	switch name {
	case "easy":
		return 0
	case "medium":
		return 1
	case "hard":
		return 2
	default:
		return 3
	}
}
