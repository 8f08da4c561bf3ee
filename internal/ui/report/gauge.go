package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tbscreen/internal/ui/theme"
)

// Gauge displays a score out of 100 as a horizontal bar.
type Gauge struct {
	Label string
	Score float64 // 0–100
	Level string  // theme.Risk level for the fill
	Width int
}

// View renders the gauge.
func (g Gauge) View() string {
	var result string

	if g.Label != "" {
		result += theme.Label.Render(g.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	scoreWidth := 7 // "  100.0"

	barWidth := g.Width - labelWidth - scoreWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * g.Score / 100)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	result += theme.RiskFill(g.Level).Render(strings.Repeat(" ", filled))
	result += theme.GaugeEmpty.Render(strings.Repeat(" ", empty))
	result += theme.Risk(g.Level).Render(fmt.Sprintf("%7.1f", g.Score))

	return result
}
