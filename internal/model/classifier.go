// Package model is the boundary to the externally trained risk classifier.
// The core never trains or inspects a model; it only asks for a class.
package model

import (
	"context"

	"github.com/abhisek/tbscreen/internal/features"
)

// Class is the risk class returned by a classifier. Valid classes are 0–3;
// callers validate before interpreting.
type Class int

// Classifier predicts a risk class from a canonical feature vector.
// Implementations must be safe for concurrent use once constructed.
type Classifier interface {
	// Predict returns the risk class for v.
	Predict(ctx context.Context, v features.Vector) (Class, error)

	// ID identifies the model serving predictions (e.g. "tb-risk@2.1.4").
	ID() string
}

// guarded rejects vectors of the wrong shape before they reach the model.
type guarded struct {
	inner Classifier
}

// Guard wraps c so that any vector whose length is not features.Dimension
// fails with a *features.DimensionMismatchError without calling c. A nil c
// yields a classifier that always reports *UnavailableError.
func Guard(c Classifier) Classifier {
	if c == nil {
		c = Unavailable("none", ErrNotConfigured)
	}
	if g, ok := c.(*guarded); ok {
		return g
	}
	return &guarded{inner: c}
}

func (g *guarded) Predict(ctx context.Context, v features.Vector) (Class, error) {
	if err := features.CheckDimension(v); err != nil {
		return 0, err
	}
	return g.inner.Predict(ctx, v)
}

func (g *guarded) ID() string { return g.inner.ID() }

// unavailable always fails with the same *UnavailableError.
type unavailable struct {
	err *UnavailableError
}

// Unavailable returns a Classifier that always fails with an
// *UnavailableError for source.
func Unavailable(source string, err error) Classifier {
	return &unavailable{err: &UnavailableError{Source: source, Err: err}}
}

func (u *unavailable) Predict(context.Context, features.Vector) (Class, error) {
	return 0, u.err
}

func (u *unavailable) ID() string { return u.err.Source }
