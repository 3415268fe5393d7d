package profile

import (
	"fmt"
	"math"
)

// FamilyTags is the fixed set of family-history conditions the models know
// about, in feature order.
var FamilyTags = []string{
	"heart-disease", "diabetes", "cancer", "hypertension", "stroke", "mental-health",
}

// ConditionTags is the fixed set of existing-condition indicators, in
// feature order.
var ConditionTags = []string{
	"heart-disease", "diabetes", "hypertension", "mental-health",
}

// FeatureCount is the width of the feature vector: 15 scalar features plus
// one binary indicator per family-history and existing-condition tag.
const FeatureCount = 15 + 6 + 4

// FeatureVector is the fixed-order numeric encoding of a Profile. The order
// is part of the model contract and must match between training and
// inference.
type FeatureVector []float64

// Features encodes a profile into its feature vector. Each slot is produced
// by a fallible conversion; a slot whose conversion fails takes that
// feature's neutral default, so the vector is always complete.
func Features(p Profile) FeatureVector {
	convs := []func() (float64, error){
		func() (float64, error) { return boundedFloat(float64(p.Age), 0, 120, DefaultAge) },
		func() (float64, error) { return boundedFloat(p.Weight, 20, 300, DefaultWeight) },
		func() (float64, error) { return boundedFloat(p.Height, 100, 230, DefaultHeight) },
		func() (float64, error) { return boundedFloat(p.BMI, 10, 70, DefaultBMI) },
		func() (float64, error) { return boundedFloat(p.Exercise, 0, 7, DefaultExercise) },
		func() (float64, error) { return boundedFloat(p.SleepHours, 0, 24, DefaultSleepHours) },
		func() (float64, error) { return boundedFloat(p.DietQuality, 1, 10, DefaultDiet) },
		func() (float64, error) { return boundedFloat(float64(p.Stress), 1, 10, DefaultStress) },
		func() (float64, error) { return p.Gender.Code(), nil },
		func() (float64, error) { return p.Smoking.Code(), nil },
		func() (float64, error) { return p.Alcohol.Code(), nil },
		func() (float64, error) { return p.SleepQuality.Code(), nil },
		func() (float64, error) { return p.BloodPressure.Code(), nil },
		func() (float64, error) { return p.Cholesterol.Code(), nil },
		func() (float64, error) { return p.BloodSugar.Code(), nil },
	}

	defaults := []float64{
		DefaultAge, DefaultWeight, DefaultHeight, DefaultBMI, DefaultExercise,
		DefaultSleepHours, DefaultDiet, DefaultStress, 0, 0, 0,
		float64(SleepGood), 0, 0, 0,
	}

	fv := make(FeatureVector, 0, FeatureCount)
	for i, conv := range convs {
		v, err := conv()
		if err != nil {
			v = defaults[i]
		}
		fv = append(fv, v)
	}

	for _, tag := range FamilyTags {
		fv = append(fv, indicator(p.HasFamilyHistory(tag)))
	}
	for _, tag := range ConditionTags {
		fv = append(fv, indicator(p.HasCondition(tag)))
	}
	return fv
}

// boundedFloat rejects NaN, Inf and out-of-range values so a single corrupt
// field degrades to its default instead of poisoning the vector.
func boundedFloat(v, lo, hi, fallback float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback, fmt.Errorf("non-finite value")
	}
	if v < lo || v > hi {
		if v == 0 {
			return fallback, nil
		}
		return fallback, fmt.Errorf("value %v outside [%v, %v]", v, lo, hi)
	}
	return v, nil
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
