package cohort

import (
	"github.com/lifelens/lifelens/internal/profile"
	"github.com/lifelens/lifelens/internal/risk"
)

// HighRiskThreshold binarizes a labeler score into the supervised target:
// scores strictly above it are labeled high risk.
const HighRiskThreshold = 50

// Label computes the six clinically structured point-accumulation scores for
// one profile. These formulas are the ground truth the learned models
// approximate; they are deliberately more granular than the deterministic
// baseline scorer and the two must not be merged.
func Label(p profile.Profile) map[risk.Domain]int {
	return map[risk.Domain]int{
		risk.Cardiovascular: cardioPoints(p),
		risk.Metabolic:      metabolicPoints(p),
		risk.Sleep:          sleepPoints(p),
		risk.Mental:         mentalPoints(p),
		risk.Immune:         immunePoints(p),
		risk.Chronic:        chronicPoints(p),
	}
}

// LabelAll labels a whole cohort, returning per-domain binary targets in
// cohort order.
func LabelAll(cohort []profile.Profile) map[risk.Domain][]bool {
	out := make(map[risk.Domain][]bool, 6)
	for _, d := range risk.Domains() {
		out[d] = make([]bool, 0, len(cohort))
	}
	for _, p := range cohort {
		scores := Label(p)
		for _, d := range risk.Domains() {
			out[d] = append(out[d], scores[d] > HighRiskThreshold)
		}
	}
	return out
}

func cardioPoints(p profile.Profile) int {
	score := 0

	switch {
	case p.Age >= 65:
		score += 25
	case p.Age >= 55:
		score += 15
	case p.Age >= 45:
		score += 8
	case p.Age >= 35:
		score += 3
	}

	if p.Gender == profile.GenderMale && p.Age >= 45 {
		score += 8
	} else if p.Gender == profile.GenderFemale && p.Age >= 55 {
		score += 6
	}

	switch {
	case p.BMI >= 35:
		score += 15
	case p.BMI >= 30:
		score += 10
	case p.BMI >= 25:
		score += 5
	}

	score += []int{0, 5, 12, 20}[p.BloodPressure]
	score += []int{0, 8, 15, 15}[p.Cholesterol]
	score += []int{0, 5, 12, 20}[p.Smoking]

	if p.HasCondition("diabetes") || p.BloodSugar == profile.SugarDiabetic {
		score += 18
	} else if p.BloodSugar == profile.SugarElevated {
		score += 8
	}

	if p.HasFamilyHistory("heart-disease") {
		score += 10
	}
	if p.HasFamilyHistory("stroke") {
		score += 8
	}

	switch {
	case p.Exercise >= 5:
		score -= 8
	case p.Exercise >= 3:
		score -= 5
	case p.Exercise <= 1:
		score += 8
	}

	if p.Stress >= 8 {
		score += 6
	}

	return risk.LabelBounds[risk.Cardiovascular].Clamp(score)
}

func metabolicPoints(p profile.Profile) int {
	score := 0

	switch {
	case p.BMI >= 35:
		score += 20
	case p.BMI >= 30:
		score += 15
	case p.BMI >= 25:
		score += 8
	}

	switch p.BloodSugar {
	case profile.SugarDiabetic:
		score += 25
	case profile.SugarElevated:
		score += 15
	}

	score += []int{0, 5, 12, 18}[p.BloodPressure]

	switch p.Cholesterol {
	case profile.CholHigh, profile.CholVeryHigh:
		score += 12
	case profile.CholBorderline:
		score += 6
	}

	switch {
	case p.Age >= 60:
		score += 10
	case p.Age >= 45:
		score += 5
	}

	if p.HasFamilyHistory("diabetes") {
		score += 12
	}

	switch {
	case p.Exercise <= 1:
		score += 10
	case p.Exercise >= 5:
		score -= 8
	}

	if p.DietQuality <= 4 {
		score += 8
	} else if p.DietQuality >= 8 {
		score -= 5
	}

	if p.HasCondition("diabetes") {
		score += 20
	}
	if p.HasCondition("hypertension") {
		score += 10
	}

	return risk.LabelBounds[risk.Metabolic].Clamp(score)
}

func sleepPoints(p profile.Profile) int {
	score := 0

	switch {
	case p.SleepHours < 5:
		score += 25
	case p.SleepHours < 6:
		score += 15
	case p.SleepHours < 7:
		score += 8
	case p.SleepHours > 9:
		score += 10
	}

	switch p.SleepQuality {
	case profile.SleepVeryPoor, profile.SleepPoor:
		score += 20
	case profile.SleepFair:
		score += 12
	case profile.SleepExcellent:
		score -= 5
	}

	switch {
	case p.Age >= 65:
		score += 8
	case p.Age >= 50:
		score += 5
	}

	switch {
	case p.BMI >= 35:
		score += 15
	case p.BMI >= 30:
		score += 10
	}

	switch {
	case p.Stress >= 8:
		score += 12
	case p.Stress >= 6:
		score += 6
	}

	if p.Alcohol >= profile.AlcoholWeekly {
		score += 8
	}

	switch {
	case p.Exercise >= 4:
		score -= 8
	case p.Exercise <= 1:
		score += 6
	}

	if p.HasCondition("mental-health") {
		score += 12
	}

	return risk.LabelBounds[risk.Sleep].Clamp(score)
}

func mentalPoints(p profile.Profile) int {
	score := 0

	switch {
	case p.Stress >= 9:
		score += 25
	case p.Stress >= 7:
		score += 15
	case p.Stress >= 5:
		score += 8
	}

	switch p.SleepQuality {
	case profile.SleepVeryPoor, profile.SleepPoor:
		score += 15
	case profile.SleepFair:
		score += 10
	case profile.SleepExcellent:
		score -= 5
	}

	if p.SleepHours < 6 {
		score += 12
	} else if p.SleepHours > 9 {
		score += 8
	}

	if p.Age >= 18 && p.Age <= 25 {
		score += 8
	} else if p.Age >= 45 && p.Age <= 65 {
		score += 5
	}

	if p.Gender == profile.GenderFemale {
		score += 5
	}

	if p.HasFamilyHistory("mental-health") {
		score += 15
	}
	if p.HasCondition("mental-health") {
		score += 20
	}

	switch {
	case p.Exercise <= 1:
		score += 10
	case p.Exercise >= 5:
		score -= 8
	}

	if p.Smoking >= profile.SmokingOccasional {
		score += 8
	}
	if p.Alcohol == profile.AlcoholDaily {
		score += 10
	}

	if p.HasCondition("heart-disease") || p.HasCondition("diabetes") || p.HasCondition("hypertension") {
		score += 8
	}

	return risk.LabelBounds[risk.Mental].Clamp(score)
}

func immunePoints(p profile.Profile) int {
	score := 0

	switch {
	case p.Age >= 75:
		score += 20
	case p.Age >= 65:
		score += 12
	case p.Age >= 50:
		score += 6
	}

	if p.HasCondition("diabetes") {
		score += 10
	}
	if p.HasCondition("heart-disease") {
		score += 10
	}

	if p.Smoking >= profile.SmokingOccasional {
		score += 15
	}

	if p.Alcohol == profile.AlcoholDaily {
		score += 12
	}

	if p.SleepHours < 6 {
		score += 12
	} else if p.SleepQuality <= profile.SleepPoor {
		score += 8
	}

	switch {
	case p.Stress >= 8:
		score += 10
	case p.Stress >= 6:
		score += 5
	}

	switch {
	case p.Exercise >= 4:
		score -= 10
	case p.Exercise <= 1:
		score += 8
	}

	if p.DietQuality <= 4 {
		score += 10
	} else if p.DietQuality >= 8 {
		score -= 8
	}

	switch {
	case p.BMI >= 35:
		score += 12
	case p.BMI >= 30:
		score += 8
	}

	return risk.LabelBounds[risk.Immune].Clamp(score)
}

func chronicPoints(p profile.Profile) int {
	score := 0

	switch {
	case p.Age >= 70:
		score += 25
	case p.Age >= 60:
		score += 18
	case p.Age >= 50:
		score += 12
	case p.Age >= 40:
		score += 6
	}

	for _, tag := range []string{"heart-disease", "diabetes", "cancer"} {
		if p.HasFamilyHistory(tag) {
			score += 8
		}
	}

	score += p.ConditionCount() * 10

	if p.Smoking >= profile.SmokingOccasional {
		score += 15
	}
	if p.Alcohol == profile.AlcoholDaily {
		score += 10
	}

	switch {
	case p.Exercise <= 1:
		score += 15
	case p.Exercise >= 5:
		score -= 12
	}

	if p.DietQuality <= 4 {
		score += 12
	} else if p.DietQuality >= 8 {
		score -= 8
	}

	switch {
	case p.BMI >= 35:
		score += 15
	case p.BMI >= 30:
		score += 10
	case p.BMI < 18.5:
		score += 8
	}

	if p.BloodPressure >= profile.BPStage1 {
		score += 10
	}
	if p.Cholesterol >= profile.CholHigh {
		score += 8
	}
	if p.BloodSugar >= profile.SugarElevated {
		score += 12
	}

	if p.SleepHours < 6 || p.SleepQuality <= profile.SleepPoor {
		score += 8
	}
	if p.Stress >= 8 {
		score += 8
	}

	return risk.LabelBounds[risk.Chronic].Clamp(score)
}
