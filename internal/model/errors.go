package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is matched by every *UnavailableError via errors.Is.
	ErrUnavailable = errors.New("model unavailable")

	// ErrNotConfigured indicates that no model source was configured.
	ErrNotConfigured = errors.New("no model configured")

	// ErrIncompatible indicates an artifact built for another feature
	// encoding or dimension.
	ErrIncompatible = errors.New("incompatible model artifact")
)

// UnavailableError indicates the classifier could not be loaded or reached.
// Classification is skipped; the heuristic score is still meaningful.
type UnavailableError struct {
	Source string
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", ErrUnavailable, e.Source, e.Err)
	}
	return fmt.Sprintf("%s (%s)", ErrUnavailable, e.Source)
}

func (e *UnavailableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnavailable}
	}
	return []error{ErrUnavailable, e.Err}
}

// IsUnavailable reports whether err carries an *UnavailableError.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}
