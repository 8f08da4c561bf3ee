package codec

// Field names a categorical input whose answers are encoded as ordinal codes.
type Field string

const (
	FieldCategory      Field = "category"
	FieldGender        Field = "gender"
	FieldChestPain     Field = "chest_pain"
	FieldSputum        Field = "sputum"
	FieldBloodInSputum Field = "blood_in_sputum"
	FieldFever         Field = "fever"
	FieldNightSweats   Field = "night_sweats"
	FieldSmoking       Field = "smoking"
	FieldPreviousTB    Field = "previous_tb"
)

// Fields returns every categorical field in canonical feature order.
func Fields() []Field {
	return []Field{
		FieldCategory,
		FieldGender,
		FieldChestPain,
		FieldFever,
		FieldNightSweats,
		FieldSputum,
		FieldBloodInSputum,
		FieldSmoking,
		FieldPreviousTB,
	}
}

// FieldDisplayName returns the form label shown for a field.
func FieldDisplayName(f Field) string {
	switch f {
	case FieldCategory:
		return "Catégorie Patient"
	case FieldGender:
		return "Genre"
	case FieldChestPain:
		return "Douleur Thoracique"
	case FieldSputum:
		return "Expectorations"
	case FieldBloodInSputum:
		return "Sang dans Crachats"
	case FieldFever:
		return "Fièvre"
	case FieldNightSweats:
		return "Sueurs Nocturnes"
	case FieldSmoking:
		return "Tabagisme"
	case FieldPreviousTB:
		return "Antécédents TB"
	default:
		return string(f)
	}
}

// seedTables holds each field's labels indexed by ordinal code. The
// classifier was trained against exactly these codes; never reorder.
var seedTables = map[Field][]string{
	FieldCategory:      {"Standard", "Prioritaire", "Urgent"},
	FieldGender:        {"Female", "Male", "Other"},
	FieldChestPain:     {"Aucune", "Légère", "Modérée", "Sévère"},
	FieldSputum:        {"Aucune", "Faible", "Moyenne", "Importante"},
	FieldBloodInSputum: {"Non", "Oui", "Abondant"},
	FieldFever:         {"Absente", "<38°C", "38-39°C", ">39°C"},
	FieldNightSweats:   {"Non", "Occasionnelles", "Fréquentes", "Très fréquentes"},
	FieldSmoking:       {"Jamais", "Ancien fumeur", "<10/jour", ">10/jour"},
	FieldPreviousTB:    {"Non", "Oui, traité", "Oui, récurrent"},
}
