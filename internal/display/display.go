package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"StockPulse/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
)

// Render draws a report for the terminal.
func Render(r *model.Report) string {
	title := titleStyle.Render(fmt.Sprintf("%s  %s  (%d bars)", r.Symbol, r.Resolved, r.Series.Len()))
	left := sectionStyle.Render(metricsBlock(r.Result.Metrics))
	right := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render(summaryBlock(r.Result.Summary)),
		sectionStyle.Render(projectionBlock(r.Result.Projection, r.Config.WindowSize)),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right),
	) + "\n"
}

func metricsBlock(b model.MetricsBundle) string {
	lines := []string{headingStyle.Render("Metrics")}
	for _, m := range b.Metrics {
		lines = append(lines, row(m.Title(), styleMetric(m)))
	}
	return strings.Join(lines, "\n")
}

func styleMetric(m model.Metric) string {
	text := m.Text()
	switch {
	case !m.Defined():
		return mutedStyle.Render(text)
	case m.Label == model.TrendBullish:
		return positiveStyle.Render(text)
	case m.Label == model.TrendBearish:
		return negativeStyle.Render(text)
	case m.Name == model.MetricVolatility30D || m.Name == model.MetricAvgVolume30D ||
		m.Name == model.MetricShares || m.Name == model.MetricFinalValue:
		return text
	case m.Value.Valid && m.Value.Float64 > 0:
		return positiveStyle.Render(text)
	case m.Value.Valid && m.Value.Float64 < 0:
		return negativeStyle.Render(text)
	}
	return text
}

func summaryBlock(s model.PriceSummary) string {
	return strings.Join([]string{
		headingStyle.Render("Close prices"),
		row("Max", fmt.Sprintf("%.2f", s.Max)),
		row("Min", fmt.Sprintf("%.2f", s.Min)),
		row("Mean", fmt.Sprintf("%.2f", s.Mean)),
		row("Median", fmt.Sprintf("%.2f", s.Median)),
	}, "\n")
}

func projectionBlock(p model.ProjectionTable, window int) string {
	lines := []string{headingStyle.Render(fmt.Sprintf("%s(%d) projection", p.MAType, window))}
	switch {
	case p.Err != nil:
		lines = append(lines, mutedStyle.Render("unavailable: "+p.Err.Error()))
	case len(p.Rows) == 0:
		lines = append(lines, mutedStyle.Render("none requested"))
	}
	for _, r := range p.Rows {
		lines = append(lines, row(r.Date.Format(model.DateFormat), fmt.Sprintf("%.2f", r.Price)))
	}
	return strings.Join(lines, "\n")
}

func row(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-18s", label)) + " " + value
}
