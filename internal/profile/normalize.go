package profile

import "strings"

// Categorical questionnaire answers are normalized through typed enums so
// that every unrecognized value lands on a single default arm instead of an
// ad hoc map lookup. Code() returns the numeric encoding the models were
// trained on.

type Gender int

const (
	GenderFemale Gender = iota
	GenderMale
)

func ParseGender(s string) Gender {
	switch canon(s) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	default:
		return GenderFemale
	}
}

func (g Gender) Code() float64 {
	if g == GenderMale {
		return 1
	}
	return 0
}

func (g Gender) String() string {
	if g == GenderMale {
		return "male"
	}
	return "female"
}

type Smoking int

const (
	SmokingNever Smoking = iota
	SmokingFormer
	SmokingOccasional
	SmokingRegular
)

func ParseSmoking(s string) Smoking {
	switch canon(s) {
	case "former", "former-smoker":
		return SmokingFormer
	case "occasional":
		return SmokingOccasional
	case "regular", "current":
		return SmokingRegular
	case "never", "non-smoker":
		return SmokingNever
	default:
		return SmokingNever
	}
}

func (s Smoking) Code() float64 { return float64(s) }

func (s Smoking) String() string {
	switch s {
	case SmokingFormer:
		return "former"
	case SmokingOccasional:
		return "occasional"
	case SmokingRegular:
		return "regular"
	default:
		return "never"
	}
}

type Alcohol int

const (
	AlcoholNever Alcohol = iota
	AlcoholRarely
	AlcoholOccasionally
	AlcoholWeekly
	AlcoholDaily
)

func ParseAlcohol(s string) Alcohol {
	switch canon(s) {
	case "rarely":
		return AlcoholRarely
	case "occasionally", "occasional":
		return AlcoholOccasionally
	case "weekly", "moderate":
		return AlcoholWeekly
	case "daily", "heavy":
		return AlcoholDaily
	case "never", "none":
		return AlcoholNever
	default:
		return AlcoholNever
	}
}

func (a Alcohol) Code() float64 { return float64(a) }

func (a Alcohol) String() string {
	switch a {
	case AlcoholRarely:
		return "rarely"
	case AlcoholOccasionally:
		return "occasionally"
	case AlcoholWeekly:
		return "weekly"
	case AlcoholDaily:
		return "daily"
	default:
		return "never"
	}
}

type SleepQuality int

const (
	SleepVeryPoor SleepQuality = iota
	SleepPoor
	SleepFair
	SleepGood
	SleepExcellent
)

func ParseSleepQuality(s string) SleepQuality {
	switch canon(s) {
	case "very-poor":
		return SleepVeryPoor
	case "poor":
		return SleepPoor
	case "fair", "average":
		return SleepFair
	case "excellent":
		return SleepExcellent
	case "good":
		return SleepGood
	default:
		return SleepGood
	}
}

func (q SleepQuality) Code() float64 { return float64(q) }

// TenPoint maps the quality enum onto the 0-10 scale the deterministic
// formulas were calibrated against (very-poor 2 .. excellent 10).
func (q SleepQuality) TenPoint() float64 { return 2 + 2*float64(q) }

func (q SleepQuality) String() string {
	switch q {
	case SleepVeryPoor:
		return "very-poor"
	case SleepPoor:
		return "poor"
	case SleepFair:
		return "fair"
	case SleepExcellent:
		return "excellent"
	default:
		return "good"
	}
}

type BloodPressure int

const (
	BPNormal BloodPressure = iota
	BPElevated
	BPStage1
	BPStage2
)

func ParseBloodPressure(s string) BloodPressure {
	switch canon(s) {
	case "elevated":
		return BPElevated
	case "stage1", "high-stage1":
		return BPStage1
	case "stage2", "high-stage2":
		return BPStage2
	case "normal", "low":
		return BPNormal
	case "unknown":
		return BPElevated
	default:
		return BPNormal
	}
}

func (b BloodPressure) Code() float64 { return float64(b) }

func (b BloodPressure) String() string {
	switch b {
	case BPElevated:
		return "elevated"
	case BPStage1:
		return "stage1"
	case BPStage2:
		return "stage2"
	default:
		return "normal"
	}
}

type Cholesterol int

const (
	CholNormal Cholesterol = iota
	CholBorderline
	CholHigh
	CholVeryHigh
)

func ParseCholesterol(s string) Cholesterol {
	switch canon(s) {
	case "borderline":
		return CholBorderline
	case "high":
		return CholHigh
	case "very-high":
		return CholVeryHigh
	case "unknown":
		return CholBorderline
	case "normal":
		return CholNormal
	default:
		return CholNormal
	}
}

func (c Cholesterol) Code() float64 { return float64(c) }

func (c Cholesterol) String() string {
	switch c {
	case CholBorderline:
		return "borderline"
	case CholHigh:
		return "high"
	case CholVeryHigh:
		return "very-high"
	default:
		return "normal"
	}
}

type BloodSugar int

const (
	SugarNormal BloodSugar = iota
	SugarElevated
	SugarDiabetic
)

func ParseBloodSugar(s string) BloodSugar {
	switch canon(s) {
	case "101-125", "140-199":
		return SugarElevated
	case "126+", "200+":
		return SugarDiabetic
	case "dont-know", "unknown":
		return SugarElevated
	case "70-100", "less-than-140", "normal":
		return SugarNormal
	default:
		return SugarNormal
	}
}

func (b BloodSugar) Code() float64 { return float64(b) }

func (b BloodSugar) String() string {
	switch b {
	case SugarElevated:
		return "101-125"
	case SugarDiabetic:
		return "126+"
	default:
		return "70-100"
	}
}

// ParseExerciseFrequency accepts either a weekly session count or one of the
// questionnaire's categorical answers.
func ParseExerciseFrequency(v any) float64 {
	if f, ok := asFloat(v); ok {
		return clampFloat(f, 0, 7)
	}
	s, _ := v.(string)
	switch canon(s) {
	case "daily", "very-active":
		return 7
	case "4-6-times-week", "active":
		return 5
	case "2-3-times-week", "moderate":
		return 2.5
	case "once-week", "light":
		return 1
	case "rarely":
		return 0.5
	case "never", "sedentary":
		return 0
	default:
		return DefaultExercise
	}
}

// DietQualityFor maps a diet descriptor onto the 1-10 quality scale.
func DietQualityFor(dietType string) float64 {
	switch canon(dietType) {
	case "mediterranean":
		return 9
	case "vegetarian", "vegan":
		return 8
	case "balanced", "high-protein", "omnivore":
		return 6
	case "keto", "paleo", "other", "dont-know":
		return 5
	default:
		return DefaultDiet
	}
}

func canon(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
