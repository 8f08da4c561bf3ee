// Package report renders evaluation results and run-log summaries for the
// terminal.
package report

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tbscreen/internal/diagnostic"
	"github.com/abhisek/tbscreen/internal/features"
	"github.com/abhisek/tbscreen/internal/model"
	"github.com/abhisek/tbscreen/internal/store"
	"github.com/abhisek/tbscreen/internal/ui/theme"
)

// DefaultWidth is the report width when the caller has no terminal size.
const DefaultWidth = 72

func row(label, value string) string {
	return theme.Label.Render(fmt.Sprintf("%-22s", label)) + theme.Body.Render(value)
}

// Result renders one evaluation. A heuristic-only result shows the score
// and a notice in place of the classification.
func Result(res *diagnostic.Result, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	lines := []string{
		theme.Title.Render("Évaluation du risque TB"),
		theme.Hint.Render(res.ID + "  " + res.GeneratedAt.Format("2006-01-02 15:04")),
		"",
		Gauge{Label: "Score", Score: res.Score, Level: string(res.Band), Width: width - 6}.View(),
		theme.Risk(string(res.Band)).Render(res.Insights.Alert),
		"",
	}

	if res.Classified() {
		lines = append(lines,
			row("Niveau de risque", theme.Risk(string(res.Level)).Render(res.Label)),
			row("Modèle", res.ModelID),
			"",
			theme.Label.Render("Recommandations"),
		)
		for i, action := range res.ActionList() {
			lines = append(lines, theme.Body.Render(fmt.Sprintf("  %d. %s", i+1, action)))
		}
	} else {
		lines = append(lines, theme.Hint.Render("Classification indisponible, score heuristique seul"))
	}

	lines = append(lines,
		"",
		row("IMC", fmt.Sprintf("%.1f (%s)", res.Insights.BMI, res.Insights.BMIBand)),
		row("Symptômes actifs", fmt.Sprintf("%d/3", res.Insights.ActiveSymptoms)),
		row("Symptômes dominants", dominant(res.Insights.DominantSymptoms)),
		row("Facteurs de risque", riskFactors(res.Insights.RiskFactors)),
	)
	if detail := breakdown(res.FeatureVector()); len(detail) > 0 {
		lines = append(lines, "", theme.Label.Render("Détail des variables"))
		lines = append(lines, detail...)
	}

	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// breakdown lists the non-zero positions of v under their display names.
func breakdown(v features.Vector) []string {
	names := features.DisplayNames()
	var out []string
	for i, x := range v {
		if i >= len(names) || x == 0 {
			continue
		}
		out = append(out, row("  "+names[i], fmt.Sprintf("%g", x)))
	}
	return out
}

func dominant(symptoms []features.Symptom) string {
	var parts []string
	for _, s := range symptoms {
		if s.Intensity <= 0 || len(parts) == 3 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %.0f", s.Name, s.Intensity))
	}
	if len(parts) == 0 {
		return "aucun"
	}
	return strings.Join(parts, ", ")
}

func riskFactors(factors []features.RiskFactor) string {
	var parts []string
	for _, f := range factors {
		if f.Level > 1 {
			parts = append(parts, fmt.Sprintf("%s (%d)", f.Name, f.Level))
		}
	}
	if len(parts) == 0 {
		return "aucun"
	}
	return strings.Join(parts, ", ")
}

// Batch renders one summary line per batch outcome.
func Batch(outcomes []diagnostic.Outcome) string {
	lines := []string{theme.Title.Render(fmt.Sprintf("%d évaluations", len(outcomes)))}
	for _, o := range outcomes {
		prefix := fmt.Sprintf("#%-3d ", o.Index+1)
		switch {
		case o.Result == nil:
			lines = append(lines, prefix+theme.Risk("critical").Render("erreur: "+o.Err.Error()))
		case o.Result.Classified():
			lines = append(lines, prefix+fmt.Sprintf("%5.1f  %s", o.Result.Score,
				theme.Risk(string(o.Result.Level)).Render(o.Result.Label)))
		default:
			lines = append(lines, prefix+fmt.Sprintf("%5.1f  %s", o.Result.Score,
				theme.Hint.Render("non classé")))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// History renders run-log entries, newest first.
func History(runs []store.Run) string {
	if len(runs) == 0 {
		return theme.Hint.Render("Aucune évaluation enregistrée")
	}
	lines := []string{theme.Label.Render(fmt.Sprintf("%-16s  %-36s  %6s  %-9s  %s", "DATE", "ID", "SCORE", "BANDE", "NIVEAU"))}
	for _, r := range runs {
		label := r.Label
		if label == "" {
			label = string(r.Outcome)
		}
		lines = append(lines, fmt.Sprintf("%-16s  %-36s  %6.1f  %s  %s",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.ID,
			r.Score,
			theme.Risk(r.Band).Render(fmt.Sprintf("%-9s", r.Band)),
			label,
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Stats renders run-log aggregates.
func Stats(s *store.Stats) string {
	lines := []string{
		row("Évaluations", fmt.Sprintf("%d", s.Total)),
		row("Score moyen", fmt.Sprintf("%.1f", s.MeanScore)),
	}

	outcomes := make([]string, 0, len(s.ByOutcome))
	for o := range s.ByOutcome {
		outcomes = append(outcomes, string(o))
	}
	sort.Strings(outcomes)
	for _, o := range outcomes {
		lines = append(lines, row("  "+o, fmt.Sprintf("%d", s.ByOutcome[store.Outcome(o)])))
	}

	classes := make([]int, 0, len(s.ByClass))
	for c := range s.ByClass {
		classes = append(classes, c)
	}
	sort.Ints(classes)
	for _, c := range classes {
		lines = append(lines, row(fmt.Sprintf("  classe %d", c), fmt.Sprintf("%d", s.ByClass[c])))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// ModelInfo renders the integrity check of an artifact.
func ModelInfo(info *model.Info) string {
	lines := []string{
		theme.Risk("low").Render("Modèle intègre"),
		row("Fichier", info.Path),
		row("Nom", info.Name+"@"+info.Version),
		row("Type", info.Kind),
		row("Encodage", info.EncodingVersion),
		row("Dimension", fmt.Sprintf("%d", info.Dimension)),
		row("Classes", fmt.Sprintf("%d", info.Classes)),
		row("SHA-256", info.SHA256),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Labels renders the accepted labels of one field with their codes.
func Labels(name string, labels []string) string {
	lines := []string{theme.Title.Render(name)}
	for code, l := range labels {
		lines = append(lines, fmt.Sprintf("  %d  %s", code, theme.Body.Render(l)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
