package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownLabel is matched by every *UnknownLabelError via errors.Is.
var ErrUnknownLabel = errors.New("unknown label")

// UnknownLabelError reports a categorical answer outside its field's
// declared enumeration.
type UnknownLabelError struct {
	Field Field
	Label string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("%s: unknown label %q for %s (allowed: %s)",
		ErrUnknownLabel, e.Label, e.Field, allowed(e.Field))
}

func (e *UnknownLabelError) Unwrap() error { return ErrUnknownLabel }

// UnknownFieldError reports a field that has no declared enumeration.
type UnknownFieldError struct {
	Field Field
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown categorical field %q", e.Field)
}

// UnknownCodeError reports a code outside a field's declared range.
type UnknownCodeError struct {
	Field Field
	Code  int
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("code %d is outside 0..%d for %s", e.Code, MaxCode(e.Field), e.Field)
}

func allowed(f Field) string {
	labels := seedTables[f]
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = strconv.Quote(l)
	}
	return strings.Join(quoted, ", ")
}
