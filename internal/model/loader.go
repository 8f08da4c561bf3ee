package model

import (
	"context"
	"sync"

	"github.com/abhisek/tbscreen/internal/features"
)

// Loader resolves a classifier at most once per process. The first outcome,
// success or failure, is kept; a failed load is not retried.
type Loader struct {
	source string
	load   func() (Classifier, error)

	once       sync.Once
	classifier Classifier
	err        error
}

// NewLoader returns a Loader that calls load on first use. source names the
// model origin in errors.
func NewLoader(source string, load func() (Classifier, error)) *Loader {
	return &Loader{source: source, load: load}
}

// FileLoader returns a Loader for the artifact at path.
func FileLoader(path string) *Loader {
	return NewLoader(path, func() (Classifier, error) { return LoadFile(path) })
}

// Load returns the loaded classifier, loading it on the first call. Any
// failure is an *UnavailableError.
func (l *Loader) Load() (Classifier, error) {
	l.once.Do(func() {
		if l.load == nil {
			l.err = &UnavailableError{Source: l.source, Err: ErrNotConfigured}
			return
		}
		c, err := l.load()
		switch {
		case err != nil && IsUnavailable(err):
			l.err = err
		case err != nil:
			l.err = &UnavailableError{Source: l.source, Err: err}
		case c == nil:
			l.err = &UnavailableError{Source: l.source, Err: ErrNotConfigured}
		default:
			l.classifier = Guard(c)
		}
	})
	return l.classifier, l.err
}

// Predict loads the classifier if needed and delegates to it.
func (l *Loader) Predict(ctx context.Context, v features.Vector) (Class, error) {
	c, err := l.Load()
	if err != nil {
		return 0, err
	}
	return c.Predict(ctx, v)
}

// ID returns the loaded model's ID, or the source if it is not loaded.
func (l *Loader) ID() string {
	if c, err := l.Load(); err == nil {
		return c.ID()
	}
	return l.source
}
