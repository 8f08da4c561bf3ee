package features

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/abhisek/tbscreen/internal/codec"
)

// Profile describes the patient being evaluated. Built fresh per evaluation
// and never mutated afterwards.
type Profile struct {
	ID       string // Optional opaque identifier
	Age      int    // Years, 0–120
	Gender   codec.Gender
	WeightKg float64 // 30–200
	HeightCm float64 // 100–220
}

// BMI returns weight / (height in metres)². Zero when height is unset.
func (p Profile) BMI() float64 {
	if p.HeightCm <= 0 {
		return 0
	}
	m := p.HeightCm / 100
	return p.WeightKg / (m * m)
}

// BMI band bounds (inclusive) for a "Normal" reading.
const (
	BMINormalMin = 18.5
	BMINormalMax = 25.0
)

// BMIBand returns "Normal" when the BMI lies in [18.5, 25], "Attention"
// otherwise.
func (p Profile) BMIBand() string {
	bmi := p.BMI()
	if bmi >= BMINormalMin && bmi <= BMINormalMax {
		return "Normal"
	}
	return "Attention"
}

// Assessment holds the symptom observations. Sliders are passed through
// unchanged; range checks belong to the input collection layer.
type Assessment struct {
	Category       codec.Category
	Cough          float64 // 0–10
	Breathlessness float64 // 0–10
	ChestPain      codec.ChestPain
	Sputum         codec.Sputum
	BloodInSputum  codec.BloodInSputum
	Fatigue        float64 // 0–10
	WeightLossKg   float64 // 0–20
	Fever          codec.Fever
	NightSweats    codec.NightSweats
	Smoking        codec.Smoking
	PreviousTB     codec.PreviousTB
}

// RawProfile is a Profile as supplied by a form, with Gender as a label.
type RawProfile struct {
	ID       string  `json:"id,omitempty"`
	Age      int     `json:"age"`
	Gender   string  `json:"gender"`
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
}

// UnmarshalJSON accepts an age with a zero fraction, such as 35.0, and
// rejects any other non-integral age.
func (p *RawProfile) UnmarshalJSON(data []byte) error {
	type plain RawProfile
	aux := struct {
		*plain
		Age json.Number `json:"age"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Age == "" {
		return nil
	}
	age, err := aux.Age.Float64()
	if err != nil || age != math.Trunc(age) || math.Abs(age) > math.MaxInt32 {
		return fmt.Errorf("age must be a whole number of years, got %s", aux.Age)
	}
	p.Age = int(age)
	return nil
}

// RawAssessment is an Assessment as supplied by a form, with every
// categorical answer as a label.
type RawAssessment struct {
	Category       string  `json:"category"`
	Cough          float64 `json:"cough"`
	Breathlessness float64 `json:"breathlessness"`
	ChestPain      string  `json:"chest_pain"`
	Sputum         string  `json:"sputum"`
	BloodInSputum  string  `json:"blood_in_sputum"`
	Fatigue        float64 `json:"fatigue"`
	WeightLossKg   float64 `json:"weight_loss_kg"`
	Fever          string  `json:"fever"`
	NightSweats    string  `json:"night_sweats"`
	Smoking        string  `json:"smoking"`
	PreviousTB     string  `json:"previous_tb"`
}
