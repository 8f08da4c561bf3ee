package codec

import "strconv"

// Typed categorical answers. Each type is a closed enumeration over its
// field's table; Parse* is the only way to build one from a label.

type Category int

const (
	CategoryStandard Category = iota
	CategoryPriority
	CategoryUrgent
)

type Gender int

const (
	GenderFemale Gender = iota
	GenderMale
	GenderOther
)

type ChestPain int

const (
	ChestPainNone ChestPain = iota
	ChestPainMild
	ChestPainModerate
	ChestPainSevere
)

type Sputum int

const (
	SputumNone Sputum = iota
	SputumLow
	SputumMedium
	SputumHeavy
)

type BloodInSputum int

const (
	BloodNone BloodInSputum = iota
	BloodPresent
	BloodAbundant
)

type Fever int

const (
	FeverAbsent Fever = iota
	FeverBelow38
	Fever38To39
	FeverAbove39
)

type NightSweats int

const (
	NightSweatsNone NightSweats = iota
	NightSweatsOccasional
	NightSweatsFrequent
	NightSweatsVeryFrequent
)

type Smoking int

const (
	SmokingNever Smoking = iota
	SmokingFormer
	SmokingUnder10
	SmokingOver10
)

type PreviousTB int

const (
	PreviousTBNone PreviousTB = iota
	PreviousTBTreated
	PreviousTBRecurrent
)

func parse[E ~int](f Field, label string) (E, error) {
	code, err := Encode(f, label)
	if err != nil {
		return 0, err
	}
	return E(code), nil
}

func valid[E ~int](f Field, e E) bool {
	return int(e) >= 0 && int(e) <= MaxCode(f)
}

func label[E ~int](f Field, e E) string {
	l, err := Decode(f, int(e))
	if err != nil {
		return "invalid"
	}
	return l
}

func ParseCategory(s string) (Category, error) { return parse[Category](FieldCategory, s) }
func (c Category) Code() int { return int(c) }
func (c Category) Valid() bool { return valid(FieldCategory, c) }
func (c Category) String() string { return label(FieldCategory, c) }
func (c Category) Field() Field { return FieldCategory }

func ParseGender(s string) (Gender, error) { return parse[Gender](FieldGender, s) }
func (g Gender) Code() int { return int(g) }
func (g Gender) Valid() bool { return valid(FieldGender, g) }
func (g Gender) String() string { return label(FieldGender, g) }
func (g Gender) Field() Field { return FieldGender }

func ParseChestPain(s string) (ChestPain, error) { return parse[ChestPain](FieldChestPain, s) }
func (c ChestPain) Code() int { return int(c) }
func (c ChestPain) Valid() bool { return valid(FieldChestPain, c) }
func (c ChestPain) String() string { return label(FieldChestPain, c) }
func (c ChestPain) Field() Field { return FieldChestPain }

func ParseSputum(s string) (Sputum, error) { return parse[Sputum](FieldSputum, s) }
func (p Sputum) Code() int { return int(p) }
func (p Sputum) Valid() bool { return valid(FieldSputum, p) }
func (p Sputum) String() string { return label(FieldSputum, p) }
func (p Sputum) Field() Field { return FieldSputum }

func ParseBloodInSputum(s string) (BloodInSputum, error) {
	return parse[BloodInSputum](FieldBloodInSputum, s)
}
func (b BloodInSputum) Code() int { return int(b) }
func (b BloodInSputum) Valid() bool { return valid(FieldBloodInSputum, b) }
func (b BloodInSputum) String() string { return label(FieldBloodInSputum, b) }
func (b BloodInSputum) Field() Field { return FieldBloodInSputum }

func ParseFever(s string) (Fever, error) { return parse[Fever](FieldFever, s) }
func (f Fever) Code() int { return int(f) }
func (f Fever) Valid() bool { return valid(FieldFever, f) }
func (f Fever) String() string { return label(FieldFever, f) }
func (f Fever) Field() Field { return FieldFever }

func ParseNightSweats(s string) (NightSweats, error) { return parse[NightSweats](FieldNightSweats, s) }
func (n NightSweats) Code() int { return int(n) }
func (n NightSweats) Valid() bool { return valid(FieldNightSweats, n) }
func (n NightSweats) String() string { return label(FieldNightSweats, n) }
func (n NightSweats) Field() Field { return FieldNightSweats }

func ParseSmoking(s string) (Smoking, error) { return parse[Smoking](FieldSmoking, s) }
func (s Smoking) Code() int { return int(s) }
func (s Smoking) Valid() bool { return valid(FieldSmoking, s) }
func (s Smoking) String() string { return label(FieldSmoking, s) }
func (s Smoking) Field() Field { return FieldSmoking }

func ParsePreviousTB(s string) (PreviousTB, error) { return parse[PreviousTB](FieldPreviousTB, s) }
func (p PreviousTB) Code() int { return int(p) }
func (p PreviousTB) Valid() bool { return valid(FieldPreviousTB, p) }
func (p PreviousTB) String() string { return label(FieldPreviousTB, p) }
func (p PreviousTB) Field() Field { return FieldPreviousTB }

// Value is implemented by every typed categorical answer.
type Value interface {
	Code() int
	Valid() bool
	String() string
	Field() Field
}

// Check returns an *UnknownLabelError for the first invalid value.
func Check(values ...Value) error {
	for _, v := range values {
		if !v.Valid() {
			return &UnknownLabelError{Field: v.Field(), Label: "code " + strconv.Itoa(v.Code())}
		}
	}
	return nil
}
