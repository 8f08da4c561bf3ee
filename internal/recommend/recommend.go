// Package recommend maps a classifier's risk class to a clinical label and
// an ordered action plan.
package recommend

import (
	"errors"
	"fmt"
)

// Level is the severity of a risk class.
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Plan is the recommendation for one risk class.
type Plan struct {
	Class   int      `json:"class"`
	Label   string   `json:"label"`
	Level   Level    `json:"level"`
	Actions []string `json:"actions"`
}

var table = [...]Plan{
	{
		Class: 0, Label: "Faible", Level: LevelLow,
		Actions: []string{
			"Surveillance standard en ambulatoire",
			"Contrôle dans 3 mois",
			"Mesures d'hygiène générale",
		},
	},
	{
		Class: 1, Label: "Modéré", Level: LevelMedium,
		Actions: []string{
			"Consultation spécialisée sous 15 jours",
			"Examens complémentaires recommandés",
			"Surveillance rapprochée",
		},
	},
	{
		Class: 2, Label: "Élevé", Level: LevelHigh,
		Actions: []string{
			"Consultation urgente sous 48h",
			"Bilan complet immédiat",
			"Isolement préventif recommandé",
		},
	},
	{
		Class: 3, Label: "Critique", Level: LevelCritical,
		Actions: []string{
			"Hospitalisation immédiate",
			"Traitement d'urgence requis",
			"Isolement strict nécessaire",
		},
	},
}

// Classes is the number of risk classes the table covers.
const Classes = len(table)

// ErrIntegrity is matched by errors that indicate the classifier and the
// recommendation table disagree.
var ErrIntegrity = errors.New("data integrity fault")

// UnknownClassError reports a class with no recommendation entry. The
// classifier and this table are out of sync; the result must not be shown.
type UnknownClassError struct {
	Class int
}

func (e *UnknownClassError) Error() string {
	return fmt.Sprintf("%s: risk class %d has no recommendation (want 0-%d)", ErrIntegrity, e.Class, Classes-1)
}

func (e *UnknownClassError) Unwrap() error { return ErrIntegrity }

// IsIntegrityFault reports whether err is an *UnknownClassError.
func IsIntegrityFault(err error) bool {
	var uc *UnknownClassError
	return errors.As(err, &uc)
}

// Map returns the plan for class. The returned Actions slice is a copy.
func Map(class int) (Plan, error) {
	if class < 0 || class >= Classes {
		return Plan{}, &UnknownClassError{Class: class}
	}
	p := table[class]
	p.Actions = append([]string(nil), p.Actions...)
	return p, nil
}

// All returns every plan in class order.
func All() []Plan {
	out := make([]Plan, 0, Classes)
	for i := range table {
		p, _ := Map(i)
		out = append(out, p)
	}
	return out
}
