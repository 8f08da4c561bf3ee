package model

import (
	"context"
	"sync"

	"github.com/abhisek/tbscreen/internal/features"
)

// Static is a deterministic Classifier for testing. It always returns the
// same class or error and records every vector it is asked about.
type Static struct {
	mu    sync.Mutex
	class Class
	err   error
	Calls []features.Vector
}

// NewStatic returns a Static that answers class.
func NewStatic(class Class) *Static {
	return &Static{class: class}
}

// NewFailing returns a Static that fails every prediction with err.
func NewFailing(err error) *Static {
	return &Static{err: err}
}

// Predict records v and returns the canned answer.
func (s *Static) Predict(_ context.Context, v features.Vector) (Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, v.Clone())

	if s.err != nil {
		return 0, s.err
	}
	return s.class, nil
}

// ID returns "static".
func (s *Static) ID() string {
	return "static"
}

// CallCount returns the number of Predict calls made.
func (s *Static) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}
