// Package validate checks JSON documents against compiled JSON Schemas.
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema definition. Compiled schemas are cached by
// Name, so two schemas must not share one.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// ErrInvalidDocument indicates a document that is not JSON or does not
// conform to its schema. Path is the JSON pointer of the offending value,
// empty when the document root is at fault.
type ErrInvalidDocument struct {
	Schema string
	Path   string
	Err    error
}

func (e *ErrInvalidDocument) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid %s document: %v", e.Schema, e.Err)
	}
	return fmt.Sprintf("invalid %s document at %s: %v", e.Schema, e.Path, e.Err)
}

func (e *ErrInvalidDocument) Unwrap() error { return e.Err }

var compiled sync.Map // name -> *jsonschema.Schema

// Document validates raw JSON against schema. A nil schema accepts anything.
func Document(schema *Schema, raw []byte) error {
	if schema == nil {
		return nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidDocument{Schema: schema.Name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := compile(schema)
	if err != nil {
		return &ErrInvalidDocument{Schema: schema.Name, Err: err}
	}

	err = sch.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ErrInvalidDocument{Schema: schema.Name, Err: err}
	}
	leaf := deepest(ve)
	return &ErrInvalidDocument{
		Schema: schema.Name,
		Path:   pointer(leaf.InstanceLocation),
		Err:    err,
	}
}

// deepest returns the first cause with the longest instance location.
func deepest(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	best := ve
	for _, c := range ve.Causes {
		if d := deepest(c); len(d.InstanceLocation) > len(best.InstanceLocation) {
			best = d
		}
	}
	return best
}

func pointer(loc []string) string {
	if len(loc) == 0 {
		return ""
	}
	escaped := make([]string, len(loc))
	for i, tok := range loc {
		escaped[i] = strings.NewReplacer("~", "~0", "/", "~1").Replace(tok)
	}
	return "/" + strings.Join(escaped, "/")
}

func compile(schema *Schema) (*jsonschema.Schema, error) {
	if sch, ok := compiled.Load(schema.Name); ok {
		return sch.(*jsonschema.Schema), nil
	}

	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("encode schema %s: %w", schema.Name, err)
	}
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("decode schema %s: %w", schema.Name, err)
	}

	url := "mem://" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("load schema %s: %w", schema.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", schema.Name, err)
	}

	actual, _ := compiled.LoadOrStore(schema.Name, sch)
	return actual.(*jsonschema.Schema), nil
}
