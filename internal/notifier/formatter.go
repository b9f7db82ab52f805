package notifier

import (
	"fmt"
	"html"
	"strings"

	"StockPulse/internal/model"
)

// FormatReport formats an analysis report into a Telegram HTML message.
func FormatReport(r *model.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n", html.EscapeString(r.Symbol), r.GeneratedAt.Format(model.DateFormat)))
	b.WriteString(fmt.Sprintf("Range: %s (%d bars)\n", r.Resolved, r.Series.Len()))
	if !r.Resolved.End.Equal(r.Requested.End) {
		b.WriteString(fmt.Sprintf("<i>requested %s, no data at the end</i>\n", r.Requested))
	}
	b.WriteString(fmt.Sprintf("Last close: %.2f\n\n", r.Series.Last().Close))

	b.WriteString("📈 <b>Metrics</b>\n")
	for _, m := range r.Result.Metrics.Metrics {
		if m.Name == model.MetricShares {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s: %s\n", m.Title(), m.Text()))
	}

	s := r.Result.Summary
	b.WriteString("\n📋 <b>Prices</b>\n")
	b.WriteString(fmt.Sprintf("  Max %.2f | Min %.2f\n", s.Max, s.Min))
	b.WriteString(fmt.Sprintf("  Mean %.2f | Median %.2f\n", s.Mean, s.Median))

	p := r.Result.Projection
	b.WriteString(fmt.Sprintf("\n🔮 <b>%s(%d) projection</b>\n", p.MAType, r.Config.WindowSize))
	switch {
	case p.Err != nil:
		b.WriteString(fmt.Sprintf("  unavailable: %s\n", html.EscapeString(p.Err.Error())))
	case len(p.Rows) == 0:
		b.WriteString("  none requested\n")
	default:
		for _, row := range p.Rows {
			b.WriteString(fmt.Sprintf("  %s  %.2f\n", row.Date.Format(model.DateFormat), row.Price))
		}
	}

	return b.String()
}

// FormatError formats a failed analysis for a chat reply.
func FormatError(symbol string, err error) string {
	return fmt.Sprintf("❌ <b>%s</b> analysis failed: %s", html.EscapeString(symbol), html.EscapeString(err.Error()))
}

// HelpText lists the bot commands.
func HelpText() string {
	return "Available commands:\n" +
		"• /analyze SYMBOL [preset] [sma|ema] [window]\n" +
		"• /watchlist\n" +
		"• /run\n" +
		"• /help\n\n" +
		"Presets: last_day, last_week, last_month, last_year"
}
