package features

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tbscreen/internal/codec"
)

func baselineRaw() (RawProfile, RawAssessment) {
	return RawProfile{ID: "PT-2024-001", Age: 35, Gender: "Female", WeightKg: 70, HeightCm: 170},
		RawAssessment{
			Category:      "Standard",
			ChestPain:     "Aucune",
			Sputum:        "Aucune",
			BloodInSputum: "Non",
			Fever:         "Absente",
			NightSweats:   "Non",
			Smoking:       "Jamais",
			PreviousTB:    "Non",
		}
}

func TestFeaturesVector_CanonicalOrder(t *testing.T) {
	f := Features{
		Category: 1, Age: 2, Gender: 3, ChestPain: 4, Cough: 5, Breathlessness: 6,
		Fatigue: 7, WeightLoss: 8, Fever: 9, NightSweats: 10, Sputum: 11,
		BloodInSputum: 12, Smoking: 13, PreviousTB: 14,
	}
	want := Vector{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}
	if diff := cmp.Diff(want, f.Vector()); diff != "" {
		t.Errorf("Vector() mismatch (-want +got):\n%s", diff)
	}
}

func TestFeaturesVector_AlwaysDimension(t *testing.T) {
	assert.Len(t, Features{}.Vector(), Dimension)
	assert.Len(t, Names(), Dimension)
	assert.Len(t, DisplayNames(), Dimension)
}

func TestBuildFromLabels_Encodes(t *testing.T) {
	rp, ra := baselineRaw()
	rp.Gender = "Male"
	ra.Category = "Urgent"
	ra.ChestPain = "Sévère"
	ra.Cough = 7
	ra.Breathlessness = 4
	ra.Fatigue = 2
	ra.WeightLossKg = 6
	ra.Fever = "38-39°C"
	ra.NightSweats = "Fréquentes"
	ra.Sputum = "Moyenne"
	ra.BloodInSputum = "Abondant"
	ra.Smoking = "Ancien fumeur"
	ra.PreviousTB = "Oui, traité"

	f, err := BuildFromLabels(rp, ra)
	require.NoError(t, err)

	want := Vector{2, 35, 1, 3, 7, 4, 2, 6, 2, 2, 2, 2, 1, 1}
	if diff := cmp.Diff(want, f.Vector()); diff != "" {
		t.Errorf("vector mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFromLabels_UnknownLabel(t *testing.T) {
	rp, ra := baselineRaw()
	ra.Fever = "40°C"

	_, err := BuildFromLabels(rp, ra)
	require.Error(t, err)

	var ule *codec.UnknownLabelError
	require.True(t, errors.As(err, &ule))
	assert.Equal(t, codec.FieldFever, ule.Field)
	assert.Equal(t, "40°C", ule.Label)
}

func TestBuildFromLabels_UnknownGender(t *testing.T) {
	rp, ra := baselineRaw()
	rp.Gender = "male"

	_, err := BuildFromLabels(rp, ra)
	assert.ErrorIs(t, err, codec.ErrUnknownLabel)
}

func TestBuild_RejectsInvalidTypedValue(t *testing.T) {
	_, err := Build(Profile{Age: 40}, Assessment{ChestPain: codec.ChestPain(9)})
	assert.ErrorIs(t, err, codec.ErrUnknownLabel)
}

func TestBuild_PassesSlidersThrough(t *testing.T) {
	// Out-of-range sliders are the input layer's concern.
	f, err := Build(Profile{Age: 150}, Assessment{Cough: 12.5, WeightLossKg: 30})
	require.NoError(t, err)
	assert.Equal(t, 150.0, f.Age)
	assert.Equal(t, 12.5, f.Cough)
	assert.Equal(t, 30.0, f.WeightLoss)
}

func TestBuild_RejectsNonFiniteSliders(t *testing.T) {
	tests := []struct {
		name string
		a    Assessment
		want string
	}{
		{"nan cough", Assessment{Cough: math.NaN()}, "cough"},
		{"inf fatigue", Assessment{Fatigue: math.Inf(1)}, "fatigue"},
		{"negative inf weight loss", Assessment{WeightLossKg: math.Inf(-1)}, "weight_loss"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(Profile{Age: 35}, tt.a)
			require.ErrorIs(t, err, ErrNonFinite)
			var nf *NonFiniteError
			require.True(t, errors.As(err, &nf))
			assert.Equal(t, tt.want, nf.Name)
		})
	}
}

func TestRawProfile_UnmarshalAge(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    int
		wantErr bool
	}{
		{"integer", `{"age": 35, "gender": "Male"}`, 35, false},
		{"zero fraction", `{"age": 35.0, "gender": "Male"}`, 35, false},
		{"exponent", `{"age": 4e1}`, 40, false},
		{"missing", `{"gender": "Male"}`, 0, false},
		{"fraction", `{"age": 35.5}`, 0, true},
		{"huge", `{"age": 1e20}`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p RawProfile
			err := json.Unmarshal([]byte(tt.doc), &p)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "whole number")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Age)
		})
	}

	var p RawProfile
	require.NoError(t, json.Unmarshal([]byte(`{"id": "PT-1", "age": 60.0, "gender": "Female", "weight_kg": 55.5, "height_cm": 160}`), &p))
	assert.Equal(t, RawProfile{ID: "PT-1", Age: 60, Gender: "Female", WeightKg: 55.5, HeightCm: 160}, p)
}

func TestCheckDimension(t *testing.T) {
	require.NoError(t, CheckDimension(make(Vector, Dimension)))

	for _, n := range []int{0, 13, 15} {
		err := CheckDimension(make(Vector, n))
		var dme *DimensionMismatchError
		require.True(t, errors.As(err, &dme), "len %d", n)
		assert.Equal(t, n, dme.Got)
		assert.Equal(t, Dimension, dme.Want)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	}
}

func TestVectorClone(t *testing.T) {
	v := Vector{1, 2, 3}
	c := v.Clone()
	c[0] = 9
	assert.Equal(t, 1.0, v[0])
	assert.Nil(t, Vector(nil).Clone())
}

func TestProfile_BMI(t *testing.T) {
	p := Profile{WeightKg: 70, HeightCm: 170}
	assert.InDelta(t, 24.22, p.BMI(), 0.01)
	assert.Equal(t, "Normal", p.BMIBand())

	assert.Equal(t, "Attention", Profile{WeightKg: 100, HeightCm: 170}.BMIBand())
	assert.Equal(t, "Attention", Profile{WeightKg: 45, HeightCm: 180}.BMIBand())
	assert.Equal(t, 0.0, Profile{WeightKg: 70}.BMI())
}

func TestActiveSymptoms(t *testing.T) {
	assert.Equal(t, 0, Features{}.ActiveSymptoms())
	assert.Equal(t, 2, Features{Cough: 3, Fatigue: 1}.ActiveSymptoms())
	assert.Equal(t, 3, Features{Cough: 1, Breathlessness: 1, Fatigue: 1, Fever: 3}.ActiveSymptoms())
}

func TestDominantSymptoms_Order(t *testing.T) {
	got := Features{Cough: 2, Breathlessness: 8, Fatigue: 2, ChestPain: 3, Fever: 0}.DominantSymptoms()
	names := make([]string, len(got))
	for i, s := range got {
		names[i] = s.Name
	}
	want := []string{"Essoufflement", "Douleur Thoracique", "Toux", "Fatigue", "Fièvre"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestRiskFactors(t *testing.T) {
	tests := []struct {
		name string
		p    Profile
		a    Assessment
		want []int
	}{
		{
			name: "baseline",
			p:    Profile{Age: 35},
			want: []int{1, 1, 1, 1, 1},
		},
		{
			name: "all elevated",
			p:    Profile{Age: 61},
			a: Assessment{
				Smoking:       codec.SmokingFormer,
				PreviousTB:    codec.PreviousTBRecurrent,
				WeightLossKg:  6,
				BloodInSputum: codec.BloodPresent,
			},
			want: []int{3, 3, 2, 3, 3},
		},
		{
			name: "at thresholds",
			p:    Profile{Age: 60},
			a:    Assessment{WeightLossKg: 5},
			want: []int{1, 1, 1, 1, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factors := RiskFactors(tt.p, tt.a)
			got := make([]int, len(factors))
			for i, f := range factors {
				got[i] = f.Level
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
