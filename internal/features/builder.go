package features

import (
	"fmt"

	"github.com/abhisek/tbscreen/internal/codec"
)

// Build encodes a typed profile and assessment into Features. Every
// categorical value must belong to its enumeration. Numeric values pass
// through unchanged but must be finite.
func Build(p Profile, a Assessment) (Features, error) {
	if err := codec.Check(
		a.Category,
		p.Gender,
		a.ChestPain,
		a.Fever,
		a.NightSweats,
		a.Sputum,
		a.BloodInSputum,
		a.Smoking,
		a.PreviousTB,
	); err != nil {
		return Features{}, err
	}
	for _, n := range []struct {
		name  string
		value float64
	}{
		{"cough", a.Cough},
		{"breathlessness", a.Breathlessness},
		{"fatigue", a.Fatigue},
		{"weight_loss", a.WeightLossKg},
	} {
		if err := checkFinite(n.name, n.value); err != nil {
			return Features{}, fmt.Errorf("encode inputs: %w", err)
		}
	}

	return Features{
		Category:       float64(a.Category.Code()),
		Age:            float64(p.Age),
		Gender:         float64(p.Gender.Code()),
		ChestPain:      float64(a.ChestPain.Code()),
		Cough:          a.Cough,
		Breathlessness: a.Breathlessness,
		Fatigue:        a.Fatigue,
		WeightLoss:     a.WeightLossKg,
		Fever:          float64(a.Fever.Code()),
		NightSweats:    float64(a.NightSweats.Code()),
		Sputum:         float64(a.Sputum.Code()),
		BloodInSputum:  float64(a.BloodInSputum.Code()),
		Smoking:        float64(a.Smoking.Code()),
		PreviousTB:     float64(a.PreviousTB.Code()),
	}, nil
}

// Parse converts label-form inputs into typed ones. The first label outside
// its enumeration aborts with a *codec.UnknownLabelError.
func Parse(rp RawProfile, ra RawAssessment) (Profile, Assessment, error) {
	p := Profile{ID: rp.ID, Age: rp.Age, WeightKg: rp.WeightKg, HeightCm: rp.HeightCm}
	a := Assessment{
		Cough:          ra.Cough,
		Breathlessness: ra.Breathlessness,
		Fatigue:        ra.Fatigue,
		WeightLossKg:   ra.WeightLossKg,
	}

	var err error
	if a.Category, err = codec.ParseCategory(ra.Category); err != nil {
		return fail(err)
	}
	if p.Gender, err = codec.ParseGender(rp.Gender); err != nil {
		return fail(err)
	}
	if a.ChestPain, err = codec.ParseChestPain(ra.ChestPain); err != nil {
		return fail(err)
	}
	if a.Fever, err = codec.ParseFever(ra.Fever); err != nil {
		return fail(err)
	}
	if a.NightSweats, err = codec.ParseNightSweats(ra.NightSweats); err != nil {
		return fail(err)
	}
	if a.Sputum, err = codec.ParseSputum(ra.Sputum); err != nil {
		return fail(err)
	}
	if a.BloodInSputum, err = codec.ParseBloodInSputum(ra.BloodInSputum); err != nil {
		return fail(err)
	}
	if a.Smoking, err = codec.ParseSmoking(ra.Smoking); err != nil {
		return fail(err)
	}
	if a.PreviousTB, err = codec.ParsePreviousTB(ra.PreviousTB); err != nil {
		return fail(err)
	}
	return p, a, nil
}

func fail(err error) (Profile, Assessment, error) {
	return Profile{}, Assessment{}, fmt.Errorf("encode inputs: %w", err)
}

// BuildFromLabels is Parse followed by Build.
func BuildFromLabels(rp RawProfile, ra RawAssessment) (Features, error) {
	p, a, err := Parse(rp, ra)
	if err != nil {
		return Features{}, err
	}
	return Build(p, a)
}
