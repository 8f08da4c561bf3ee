package intake

import "github.com/abhisek/tbscreen/internal/validate"

func number(lo, hi float64) map[string]any {
	return map[string]any{"type": "number", "minimum": lo, "maximum": hi}
}

func label() map[string]any {
	return map[string]any{"type": "string", "minLength": 1}
}

// RequestSchema bounds the numeric answers of one evaluation request.
// Categorical membership is checked by the codec, which reports the
// accepted labels.
var RequestSchema = &validate.Schema{
	Name:        "evaluation-request",
	Description: "One patient profile and symptom assessment, categorical answers as labels",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"patient": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":        map[string]any{"type": "string"},
					"age":       map[string]any{"type": "integer", "minimum": 0, "maximum": 120},
					"gender":    label(),
					"weight_kg": number(30, 200),
					"height_cm": number(100, 220),
				},
				"required":             []any{"age", "gender"},
				"additionalProperties": false,
			},
			"symptoms": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"category":        label(),
					"cough":           number(0, 10),
					"breathlessness":  number(0, 10),
					"chest_pain":      label(),
					"sputum":          label(),
					"blood_in_sputum": label(),
					"fatigue":         number(0, 10),
					"weight_loss_kg":  number(0, 20),
					"fever":           label(),
					"night_sweats":    label(),
					"smoking":         label(),
					"previous_tb":     label(),
				},
				"required": []any{
					"category", "chest_pain", "sputum", "blood_in_sputum",
					"fever", "night_sweats", "smoking", "previous_tb",
				},
				"additionalProperties": false,
			},
		},
		"required":             []any{"patient", "symptoms"},
		"additionalProperties": false,
	},
}
