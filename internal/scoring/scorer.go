// Package scoring computes the bounded heuristic risk score from a feature
// vector. It is independent of the trained classifier.
package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/tbscreen/internal/features"
)

// MaxScore is the upper bound of every score.
const MaxScore = 100.0

// scale maps the weighted feature average onto the 0–100 range.
const scale = 10.0

// DefaultWeights is the clinical-importance profile, one weight per
// canonical feature position. Weight loss, night sweats, blood in sputum
// and previous TB sit above baseline.
var DefaultWeights = [features.Dimension]float64{
	1,   // category
	0.5, // age
	0.8, // gender
	0.8, // chest_pain
	1,   // cough
	1.2, // breathlessness
	0.7, // fatigue
	1,   // weight_loss
	1.1, // fever
	1.3, // night_sweats
	1,   // sputum
	1.5, // blood_in_sputum
	0.9, // smoking
	1.4, // previous_tb
}

// ErrInvalidWeights is returned by NewScorer for an unusable profile.
var ErrInvalidWeights = errors.New("invalid weight profile")

// Scorer computes weighted scores against a fixed weight profile. The zero
// value scores with DefaultWeights.
type Scorer struct {
	weights []float64
	total   float64
	lenient bool
}

// Default returns a Scorer using DefaultWeights.
func Default() Scorer {
	s, _ := NewScorer(DefaultWeights[:])
	return s
}

// NewScorer builds a Scorer. The profile must have one non-negative weight
// per feature position and a positive sum.
func NewScorer(weights []float64) (Scorer, error) {
	if len(weights) != features.Dimension {
		return Scorer{}, fmt.Errorf("%w: %d weights, want %d", ErrInvalidWeights, len(weights), features.Dimension)
	}
	total := 0.0
	for i, w := range weights {
		if w < 0 {
			return Scorer{}, fmt.Errorf("%w: weight %d is negative (%g)", ErrInvalidWeights, i, w)
		}
		total += w
	}
	if total == 0 {
		return Scorer{}, fmt.Errorf("%w: weights sum to zero", ErrInvalidWeights)
	}
	ws := make([]float64, len(weights))
	copy(ws, weights)
	return Scorer{weights: ws, total: total}, nil
}

// Lenient returns a copy of s that pairs weights and features up to the
// shorter of the two lengths instead of rejecting a mismatched vector.
// The divisor remains the full weight sum.
func (s Scorer) Lenient() Scorer {
	s.lenient = true
	return s
}

// Weights returns a copy of the weight profile.
func (s Scorer) Weights() []float64 {
	if s.weights == nil {
		ws := DefaultWeights
		return ws[:]
	}
	out := make([]float64, len(s.weights))
	copy(out, s.weights)
	return out
}

// Score returns the weighted score of v clamped to [0, 100]. An empty vector
// scores 0. Any other length than features.Dimension is rejected with a
// *features.DimensionMismatchError unless the scorer is lenient.
func (s Scorer) Score(v features.Vector) (float64, error) {
	if len(v) == 0 {
		return 0, nil
	}
	if s.weights == nil {
		s.weights, s.total = DefaultWeights[:], sumOf(DefaultWeights[:])
	}
	if !s.lenient {
		if err := features.CheckDimension(v); err != nil {
			return 0, err
		}
	}

	n := min(len(v), len(s.weights))
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += v[i] * s.weights[i]
	}
	return clamp(sum/s.total*scale, 0, MaxScore), nil
}

// Score scores v with the default profile.
func Score(v features.Vector) (float64, error) {
	return Default().Score(v)
}

func sumOf(ws []float64) float64 {
	total := 0.0
	for _, w := range ws {
		total += w
	}
	return total
}

// clamp bounds x to [lo, hi]. NaN maps to lo.
func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
