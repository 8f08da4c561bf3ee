package features

import (
	"sort"

	"github.com/abhisek/tbscreen/internal/codec"
)

// ActiveSymptoms counts how many of cough, breathlessness and fatigue are
// above zero. The result is out of 3.
func (f Features) ActiveSymptoms() int {
	n := 0
	for _, v := range []float64{f.Cough, f.Breathlessness, f.Fatigue} {
		if v > 0 {
			n++
		}
	}
	return n
}

// Symptom is a named symptom intensity.
type Symptom struct {
	Name      string  `json:"name"`
	Intensity float64 `json:"intensity"`
}

// DominantSymptoms returns the headline symptoms ordered by intensity,
// strongest first. Equal intensities keep their listing order.
func (f Features) DominantSymptoms() []Symptom {
	out := []Symptom{
		{Name: "Toux", Intensity: f.Cough},
		{Name: "Essoufflement", Intensity: f.Breathlessness},
		{Name: "Fatigue", Intensity: f.Fatigue},
		{Name: "Douleur Thoracique", Intensity: f.ChestPain},
		{Name: "Fièvre", Intensity: f.Fever},
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Intensity > out[j].Intensity
	})
	return out
}

// RiskFactor is a coarse risk level (1 = baseline) for one background factor.
type RiskFactor struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Thresholds used by RiskFactors.
const (
	ElderlyAge          = 60
	WeightLossThreshold = 5
)

// RiskFactors grades the background factors shown next to the score.
func RiskFactors(p Profile, a Assessment) []RiskFactor {
	level := func(cond bool, high int) int {
		if cond {
			return high
		}
		return 1
	}
	return []RiskFactor{
		{Name: "Tabagisme", Level: level(a.Smoking != codec.SmokingNever, 3)},
		{Name: "Antécédents TB", Level: level(a.PreviousTB != codec.PreviousTBNone, 3)},
		{Name: "Âge", Level: level(p.Age > ElderlyAge, 2)},
		{Name: "Perte de poids", Level: level(a.WeightLossKg > WeightLossThreshold, 3)},
		{Name: "Sang crachats", Level: level(a.BloodInSputum != codec.BloodNone, 3)},
	}
}
