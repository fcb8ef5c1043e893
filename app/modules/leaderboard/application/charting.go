package leaderboardservice

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	leaderboarddomain "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// chartTopN caps the bar chart at the top ten entries so labels stay legible.
const chartTopN = 10

// RenderChart produces a PNG bar chart of the leaderboard's top entries.
func (s *LeaderboardService) RenderChart(ctx context.Context, query Query) ([]byte, error) {
	classification, err := s.GetLeaderboard(ctx, query)
	if err != nil {
		if errors.Is(err, leaderboarddomain.ErrEmptyLeaderboard) {
			return renderNoDataPlaceholder()
		}
		return nil, err
	}

	entries := classification.Entries
	if len(entries) > chartTopN {
		entries = entries[:chartTopN]
	}

	bars := make([]chart.Value, len(entries))
	for i, entry := range entries {
		bars[i] = chart.Value{
			Value: float64(entry.FuelPoints),
			Label: fmt.Sprintf("#%d %s", entry.Rank, entry.UserID),
			Style: chart.Style{
				FillColor:   barColor(entry.Status),
				StrokeColor: barColor(entry.Status),
			},
		}
	}

	graph := chart.BarChart{
		Title:    "Fuel Points",
		Width:    800,
		Height:   400,
		BarWidth: 50,
		Bars:     bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render leaderboard chart: %w", err)
	}

	s.metrics.RecordChartRendered(string(query.Scope))
	return buffer.Bytes(), nil
}

func barColor(status string) drawing.Color {
	switch status {
	case leaderboarddomain.StatusLegend:
		return drawing.ColorFromHex("d4af37")
	case leaderboarddomain.StatusHero:
		return drawing.ColorFromHex("4a90d9")
	default:
		return drawing.ColorFromHex("6b7280")
	}
}

func renderNoDataPlaceholder() ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No leaderboard entries yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
