package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = &Schema{
	Name: "validate-test",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"age": map[string]any{"type": "integer", "minimum": 0, "maximum": 120},
			"contact": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"phone/fax": map[string]any{"type": "string"},
				},
			},
		},
		"required":             []any{"age"},
		"additionalProperties": false,
	},
}

func TestDocument_Valid(t *testing.T) {
	assert.NoError(t, Document(testSchema, []byte(`{"age": 35}`)))
}

func TestDocument_NilSchema(t *testing.T) {
	assert.NoError(t, Document(nil, []byte(`not json`)))
}

func TestDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		path string
	}{
		{"not json", `{age:`, ""},
		{"out of range", `{"age": 121}`, "/age"},
		{"missing", `{}`, ""},
		{"extra property", `{"age": 3, "name": "x"}`, ""},
		{"wrong type", `{"age": "35"}`, "/age"},
		{"fraction", `{"age": 35.5}`, "/age"},
		{"nested escaped", `{"age": 3, "contact": {"phone/fax": 5}}`, "/contact/phone~1fax"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Document(testSchema, []byte(tt.raw))
			require.Error(t, err)
			var inv *ErrInvalidDocument
			require.True(t, errors.As(err, &inv))
			assert.Equal(t, "validate-test", inv.Schema)
			assert.Equal(t, tt.path, inv.Path)
			if tt.path != "" {
				assert.Contains(t, err.Error(), "at "+tt.path)
			}
		})
	}
}

func TestDocument_WholeNumberIsInteger(t *testing.T) {
	assert.NoError(t, Document(testSchema, []byte(`{"age": 35.0}`)))
}

func TestDocument_CachesCompiledSchema(t *testing.T) {
	require.NoError(t, Document(testSchema, []byte(`{"age": 1}`)))
	_, ok := compiled.Load("validate-test")
	assert.True(t, ok)
}
