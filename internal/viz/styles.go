package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/chemsim/internal/kinetics"
	"github.com/san-kum/chemsim/internal/reaction"
)

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Primary).MarginBottom(1)
}

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Text)
}

func warnStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Warning)
}

func panelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Muted).
		Padding(0, 1)
}

// RenderSystem lists compounds with initial concentration and molar mass,
// followed by the reactions with their rate constants.
func RenderSystem(sys *reaction.System) string {
	var s strings.Builder
	s.WriteString(headerStyle().Render("Chemical System") + "\n")

	s.WriteString(labelStyle().Render("Compounds") + "\n")
	for _, c := range sys.Compounds() {
		line := fmt.Sprintf("  %-8s %-20s %10.4g mol/L  %8.3f g/mol",
			c.Formula, c.Name, c.Concentration, reaction.MolarMass(c.Formula))
		s.WriteString(valueStyle().Render(line) + "\n")
	}

	s.WriteString("\n" + labelStyle().Render("Reactions") + "\n")
	if sys.NumReactions() == 0 {
		s.WriteString(labelStyle().Render("  (none)") + "\n")
	}
	for i, r := range sys.Reactions() {
		line := fmt.Sprintf("  %d. %s  (k = %g)", i+1, r, r.RateConstant)
		s.WriteString(valueStyle().Render(line) + "\n")
	}

	return panelStyle().Render(strings.TrimRight(s.String(), "\n"))
}

// RenderFinal shows the concentrations at the end of the run. Negative
// values are highlighted but left as computed.
func RenderFinal(tr *kinetics.Trajectory) string {
	var s strings.Builder
	s.WriteString(headerStyle().Render(fmt.Sprintf("Final concentrations (t = %g)", tr.TimePoints[len(tr.TimePoints)-1])) + "\n")

	final := tr.Final()
	for i, f := range tr.Formulas {
		label := labelStyle().Render(fmt.Sprintf("  %-8s", f))
		value := fmt.Sprintf("%.6g mol/L", final[i])
		if final[i] < 0 || math.IsNaN(final[i]) || math.IsInf(final[i], 0) {
			s.WriteString(label + warnStyle().Render(value) + "\n")
		} else {
			s.WriteString(label + valueStyle().Render(value) + "\n")
		}
	}

	return panelStyle().Render(strings.TrimRight(s.String(), "\n"))
}

// RenderMetrics prints metric values sorted by name.
func RenderMetrics(metrics map[string]float64) string {
	if len(metrics) == 0 {
		return ""
	}

	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	var s strings.Builder
	s.WriteString(headerStyle().Render("Metrics") + "\n")
	for _, name := range names {
		s.WriteString(labelStyle().Render(fmt.Sprintf("  %-24s", name)))
		s.WriteString(valueStyle().Render(fmt.Sprintf("%.6g", metrics[name])) + "\n")
	}

	return panelStyle().Render(strings.TrimRight(s.String(), "\n"))
}
