package profile

import (
	"strconv"
	"strings"
)

// Defaults applied when a field is missing or unparsable. Normalization never
// fails: a bad value falls back to the documented default for that field.
const (
	DefaultAge        = 30
	DefaultWeight     = 70.0
	DefaultHeight     = 170.0
	DefaultBMI        = 25.0
	DefaultSleepHours = 7.0
	DefaultStress     = 5
	DefaultExercise   = 2.0
	DefaultDiet       = 5.0
)

// Profile is the canonical, fully defaulted form of a questionnaire
// submission. Every downstream component (both scorer strategies, the
// clinical adjustment layer and the recommendation engine) reads from this
// one struct, so BMI is derived exactly once, here.
type Profile struct {
	Age           int
	Gender        Gender
	Weight        float64
	Height        float64
	BMI           float64
	Exercise      float64 // sessions per week, 0..7
	SleepHours    float64
	SleepQuality  SleepQuality
	DietQuality   float64 // 1..10
	Stress        int     // 1..10
	Smoking       Smoking
	Alcohol       Alcohol
	BloodPressure BloodPressure
	Cholesterol   Cholesterol
	BloodSugar    BloodSugar
	FamilyHistory []string
	Conditions    []string
}

// Parse builds a Profile from an already decoded request body. Unknown keys
// are ignored and missing or malformed values take their defaults; the
// function cannot fail.
func Parse(data map[string]any) Profile {
	p := Profile{
		Age:           intOr(data["age"], DefaultAge),
		Gender:        ParseGender(stringOr(data["gender"], "")),
		Weight:        floatOr(data["weight"], DefaultWeight),
		Height:        floatOr(data["height"], DefaultHeight),
		Exercise:      ParseExerciseFrequency(data["exerciseFrequency"]),
		SleepHours:    floatOr(data["sleepHours"], DefaultSleepHours),
		SleepQuality:  ParseSleepQuality(stringOr(data["sleepQuality"], "")),
		DietQuality:   parseDiet(data),
		Stress:        intOr(data["stressLevel"], DefaultStress),
		Smoking:       ParseSmoking(stringOr(data["smokingStatus"], "")),
		Alcohol:       ParseAlcohol(stringOr(data["alcoholConsumption"], "")),
		BloodPressure: ParseBloodPressure(stringOr(data["bloodPressure"], "")),
		Cholesterol:   ParseCholesterol(stringOr(data["cholesterolLevels"], "")),
		BloodSugar:    ParseBloodSugar(stringOr(data["bloodSugarLevel"], "")),
		FamilyHistory: tagList(data["familyHistory"]),
		Conditions:    tagList(data["existingConditions"]),
	}

	p.BMI = floatOr(data["bmi"], 0)
	if p.BMI <= 0 {
		p.BMI = DeriveBMI(p.Weight, p.Height)
	}
	return p
}

// DeriveBMI computes weight / height_m². A non-positive height would divide
// by zero, so it yields the default instead.
func DeriveBMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return DefaultBMI
	}
	m := heightCm / 100
	return weightKg / (m * m)
}

// HasFamilyHistory reports whether the given condition tag appears in the
// profile's family history.
func (p Profile) HasFamilyHistory(tag string) bool {
	return containsTag(p.FamilyHistory, tag)
}

// HasCondition reports whether the given condition tag appears in the
// profile's existing conditions.
func (p Profile) HasCondition(tag string) bool {
	return containsTag(p.Conditions, tag)
}

// ConditionCount returns the number of existing conditions, ignoring the
// "none" placeholder the questionnaire emits.
func (p Profile) ConditionCount() int {
	n := 0
	for _, c := range p.Conditions {
		if c != "none" && c != "" {
			n++
		}
	}
	return n
}

func containsTag(tags []string, target string) bool {
	for _, t := range tags {
		if t == target {
			return true
		}
	}
	return false
}

// parseDiet prefers an explicit numeric dietQuality and falls back to the
// categorical dietType mapping.
func parseDiet(data map[string]any) float64 {
	if v, ok := asFloat(data["dietQuality"]); ok && v >= 1 && v <= 10 {
		return v
	}
	return DietQualityFor(stringOr(data["dietType"], ""))
}

func tagList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			out := make([]string, 0, len(ss))
			for _, s := range ss {
				out = append(out, canonTag(s))
			}
			return out
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, canonTag(s))
		}
	}
	return out
}

func canonTag(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "-")
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func floatOr(v any, fallback float64) float64 {
	if f, ok := asFloat(v); ok {
		return f
	}
	return fallback
}

func intOr(v any, fallback int) int {
	if f, ok := asFloat(v); ok {
		return int(f)
	}
	return fallback
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}
