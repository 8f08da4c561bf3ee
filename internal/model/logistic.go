package model

import (
	"context"
	"fmt"

	"github.com/abhisek/tbscreen/internal/features"
)

// LogisticModel is a multinomial logistic regression: one coefficient row
// and one intercept per class.
type LogisticModel struct {
	Coefficients [][]float64 `json:"coefficients"`
	Intercepts   []float64   `json:"intercepts"`
}

func (m *LogisticModel) check() error {
	if len(m.Coefficients) != len(m.Intercepts) {
		return fmt.Errorf("%w: %d coefficient rows for %d intercepts",
			ErrIncompatible, len(m.Coefficients), len(m.Intercepts))
	}
	for i, row := range m.Coefficients {
		if len(row) != features.Dimension {
			return fmt.Errorf("%w: coefficient row %d has %d values, want %d",
				ErrIncompatible, i, len(row), features.Dimension)
		}
	}
	return nil
}

// Decision returns the per-class linear scores for v.
func (m *LogisticModel) Decision(v features.Vector) []float64 {
	out := make([]float64, len(m.Intercepts))
	for k, row := range m.Coefficients {
		z := m.Intercepts[k]
		for i, w := range row {
			z += w * v[i]
		}
		out[k] = z
	}
	return out
}

type logisticClassifier struct {
	id    string
	model *LogisticModel
}

// Predict returns the class with the highest decision score. Ties resolve
// to the lower class.
func (c *logisticClassifier) Predict(ctx context.Context, v features.Vector) (Class, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := features.CheckDimension(v); err != nil {
		return 0, err
	}
	z := c.model.Decision(v)
	best := 0
	for k := 1; k < len(z); k++ {
		if z[k] > z[best] {
			best = k
		}
	}
	return Class(best), nil
}

func (c *logisticClassifier) ID() string { return c.id }
