package scoring

// Band is the alert level derived from a heuristic score alone.
type Band string

const (
	BandLow      Band = "low"
	BandModerate Band = "moderate"
	BandHigh     Band = "high"
)

// Band thresholds (exclusive lower bounds).
const (
	ModerateThreshold = 40.0
	HighThreshold     = 70.0
)

// BandFor returns the alert band for score.
func BandFor(score float64) Band {
	switch {
	case score > HighThreshold:
		return BandHigh
	case score > ModerateThreshold:
		return BandModerate
	default:
		return BandLow
	}
}

// Message returns the alert text shown for the band.
func (b Band) Message() string {
	switch b {
	case BandHigh:
		return "Risque Élevé Détecté - Consultation urgente recommandée"
	case BandModerate:
		return "Risque Modéré - Surveillance recommandée"
	default:
		return "Risque Faible - Situation stable"
	}
}
