// Package codec maps categorical clinical answers to the ordinal codes the
// risk classifier was trained on, and back.
package codec

// index maps field -> label -> code.
var index map[Field]map[string]int

func init() {
	index = make(map[Field]map[string]int, len(seedTables))
	for f, labels := range seedTables {
		m := make(map[string]int, len(labels))
		for code, label := range labels {
			m[label] = code
		}
		index[f] = m
	}
}

// Encode returns the ordinal code for label within field. Matching is exact:
// no case folding and no whitespace trimming.
func Encode(field Field, label string) (int, error) {
	m, ok := index[field]
	if !ok {
		return 0, &UnknownFieldError{Field: field}
	}
	code, ok := m[label]
	if !ok {
		return 0, &UnknownLabelError{Field: field, Label: label}
	}
	return code, nil
}

// Decode returns the label for code within field.
func Decode(field Field, code int) (string, error) {
	labels, ok := seedTables[field]
	if !ok {
		return "", &UnknownFieldError{Field: field}
	}
	if code < 0 || code >= len(labels) {
		return "", &UnknownCodeError{Field: field, Code: code}
	}
	return labels[code], nil
}

// Labels returns the declared labels of field in code order.
func Labels(field Field) ([]string, error) {
	labels, ok := seedTables[field]
	if !ok {
		return nil, &UnknownFieldError{Field: field}
	}
	out := make([]string, len(labels))
	copy(out, labels)
	return out, nil
}

// MaxCode returns the highest code declared for field, or -1 if the field is
// unknown.
func MaxCode(field Field) int {
	return len(seedTables[field]) - 1
}
