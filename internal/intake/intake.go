// Package intake decodes evaluation requests from JSON.
//
// A document is either one request object or an array of them:
//
//	{"patient": {"age": 35, "gender": "Female"},
//	 "symptoms": {"category": "Standard", "cough": 4, ...}}
package intake

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/tbscreen/internal/diagnostic"
	"github.com/abhisek/tbscreen/internal/validate"
)

// ErrEmpty indicates a document with no requests.
var ErrEmpty = errors.New("no evaluation requests")

// RequestError locates a failing request inside an array document.
type RequestError struct {
	Index int
	Err   error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %d: %v", e.Index, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Decode parses raw as one request or an array of requests. Every request
// is validated against RequestSchema before decoding.
func Decode(raw []byte) ([]diagnostic.Input, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}

	if trimmed[0] != '[' {
		in, err := decodeOne(trimmed)
		if err != nil {
			return nil, err
		}
		return []diagnostic.Input{in}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &validate.ErrInvalidDocument{Schema: RequestSchema.Name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if len(items) == 0 {
		return nil, ErrEmpty
	}

	inputs := make([]diagnostic.Input, 0, len(items))
	for i, item := range items {
		in, err := decodeOne(item)
		if err != nil {
			return nil, &RequestError{Index: i, Err: err}
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func decodeOne(raw []byte) (diagnostic.Input, error) {
	if err := validate.Document(RequestSchema, raw); err != nil {
		return diagnostic.Input{}, err
	}
	var in diagnostic.Input
	if err := json.Unmarshal(raw, &in); err != nil {
		return diagnostic.Input{}, fmt.Errorf("decode request: %w", err)
	}
	return in, nil
}

// Read decodes every request in r.
func Read(r io.Reader) ([]diagnostic.Input, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}
	return Decode(raw)
}

// ReadFile decodes every request in the file at path. "-" reads stdin.
func ReadFile(path string) ([]diagnostic.Input, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open requests: %w", err)
	}
	defer f.Close()
	return Read(f)
}
