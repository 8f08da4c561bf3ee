// Package features assembles the fixed-order numeric vector consumed by the
// risk scorer and the classifier.
package features

import (
	"errors"
	"fmt"
	"math"
)

// Dimension is the length of every feature vector. The classifier was
// trained on exactly this many inputs.
const Dimension = 14

// Vector is a feature vector in canonical order.
type Vector []float64

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Features is the named form of a feature vector. Field order here matches
// the canonical vector order; Vector is the only projection to positions.
type Features struct {
	Category       float64 `json:"category"`
	Age            float64 `json:"age"`
	Gender         float64 `json:"gender"`
	ChestPain      float64 `json:"chest_pain"`
	Cough          float64 `json:"cough"`
	Breathlessness float64 `json:"breathlessness"`
	Fatigue        float64 `json:"fatigue"`
	WeightLoss     float64 `json:"weight_loss"`
	Fever          float64 `json:"fever"`
	NightSweats    float64 `json:"night_sweats"`
	Sputum         float64 `json:"sputum"`
	BloodInSputum  float64 `json:"blood_in_sputum"`
	Smoking        float64 `json:"smoking"`
	PreviousTB     float64 `json:"previous_tb"`
}

// Vector projects f onto the canonical 14-element order.
func (f Features) Vector() Vector {
	return Vector{
		f.Category,
		f.Age,
		f.Gender,
		f.ChestPain,
		f.Cough,
		f.Breathlessness,
		f.Fatigue,
		f.WeightLoss,
		f.Fever,
		f.NightSweats,
		f.Sputum,
		f.BloodInSputum,
		f.Smoking,
		f.PreviousTB,
	}
}

var names = [Dimension]string{
	"category",
	"age",
	"gender",
	"chest_pain",
	"cough",
	"breathlessness",
	"fatigue",
	"weight_loss",
	"fever",
	"night_sweats",
	"sputum",
	"blood_in_sputum",
	"smoking",
	"previous_tb",
}

var displayNames = [Dimension]string{
	"Catégorie",
	"Âge",
	"Genre",
	"Douleur",
	"Toux",
	"Respiration",
	"Fatigue",
	"Perte Poids",
	"Fièvre",
	"Sueurs",
	"Expectorations",
	"Sang",
	"Tabac",
	"Antécédents",
}

// Names returns the canonical machine names of each vector position.
func Names() []string {
	out := make([]string, Dimension)
	copy(out, names[:])
	return out
}

// DisplayNames returns the chart axis names of each vector position.
func DisplayNames() []string {
	out := make([]string, Dimension)
	copy(out, displayNames[:])
	return out
}

// ErrDimensionMismatch is matched by every *DimensionMismatchError.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// DimensionMismatchError reports a vector whose length is not Dimension.
type DimensionMismatchError struct {
	Got  int
	Want int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: feature vector has %d elements, want %d", ErrDimensionMismatch, e.Got, e.Want)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

// CheckDimension returns a *DimensionMismatchError unless len(v) == Dimension.
func CheckDimension(v Vector) error {
	if len(v) != Dimension {
		return &DimensionMismatchError{Got: len(v), Want: Dimension}
	}
	return nil
}

// ErrNonFinite is matched by every *NonFiniteError.
var ErrNonFinite = errors.New("non-finite value")

// NonFiniteError reports a NaN or infinite numeric input.
type NonFiniteError struct {
	Name  string
	Value float64
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("%s: %s is %v", ErrNonFinite, e.Name, e.Value)
}

func (e *NonFiniteError) Unwrap() error { return ErrNonFinite }

func checkFinite(name string, x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return &NonFiniteError{Name: name, Value: x}
	}
	return nil
}
