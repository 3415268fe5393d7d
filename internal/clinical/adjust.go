// Package clinical nudges model output toward established clinical
// guidance that a cohort-trained model can underweight.
package clinical

import (
	"math"

	"github.com/lifelens/lifelens/internal/profile"
	"github.com/lifelens/lifelens/internal/risk"
)

// Adjust applies guideline-based corrections on top of a model risk score.
// Each correction adds a bounded bump and caps the result so no single
// rule can saturate the scale.
func Adjust(d risk.Domain, baseRisk int, p profile.Profile) int {
	score := float64(baseRisk)

	switch {
	case p.Age >= 70:
		score = math.Min(score+5, 85)
	case p.Age >= 60:
		score = math.Min(score+3, 80)
	}

	if p.BMI >= 40 && (d == risk.Cardiovascular || d == risk.Metabolic || d == risk.Chronic) {
		score = math.Min(score+8, 85)
	}

	switch n := markerCount(p); {
	case n >= 3:
		score = math.Min(score+10, 85)
	case n == 2:
		score = math.Min(score+5, 80)
	}

	return int(math.Max(5, math.Min(score, 85)))
}

// markerCount tallies the independent high-risk clinical markers present
// on the profile.
func markerCount(p profile.Profile) int {
	n := 0
	if p.Smoking == profile.SmokingOccasional || p.Smoking == profile.SmokingRegular {
		n++
	}
	if p.BloodPressure == profile.BPStage1 || p.BloodPressure == profile.BPStage2 {
		n++
	}
	if p.Cholesterol == profile.CholHigh || p.Cholesterol == profile.CholVeryHigh {
		n++
	}
	if p.BloodSugar == profile.SugarDiabetic {
		n++
	}
	return n
}
