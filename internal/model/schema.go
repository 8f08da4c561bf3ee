package model

import (
	"github.com/abhisek/tbscreen/internal/features"
	"github.com/abhisek/tbscreen/internal/validate"
)

var vectorOfDimension = map[string]any{
	"type":     "array",
	"items":    map[string]any{"type": "number"},
	"minItems": features.Dimension,
	"maxItems": features.Dimension,
}

// ArtifactSchema describes a serialized classifier artifact.
var ArtifactSchema = &validate.Schema{
	Name:        "model-artifact",
	Description: "A pre-trained TB risk classifier over the 14-feature encoding",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":             map[string]any{"type": "string", "minLength": 1},
			"version":          map[string]any{"type": "string", "minLength": 1},
			"encoding_version": map[string]any{"type": "string", "minLength": 1},
			"dimension":        map[string]any{"type": "integer"},
			"kind":             map[string]any{"type": "string", "enum": []any{KindLogistic, KindTree}},
			"logistic": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"coefficients": map[string]any{
						"type":     "array",
						"items":    vectorOfDimension,
						"minItems": 2,
					},
					"intercepts": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "number"},
						"minItems": 2,
					},
				},
				"required":             []any{"coefficients", "intercepts"},
				"additionalProperties": false,
			},
			"tree": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"nodes": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"feature":   map[string]any{"type": "integer", "minimum": 0, "maximum": features.Dimension - 1},
								"threshold": map[string]any{"type": "number"},
								"left":      map[string]any{"type": "integer", "minimum": 0},
								"right":     map[string]any{"type": "integer", "minimum": 0},
								"class":     map[string]any{"type": "integer"},
							},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"nodes"},
				"additionalProperties": false,
			},
		},
		"required":             []any{"name", "version", "encoding_version", "dimension", "kind"},
		"additionalProperties": false,
	},
}
