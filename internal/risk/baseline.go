package risk

import (
	"math"

	"github.com/lifelens/lifelens/internal/profile"
)

// Baseline is the deterministic scorer: one weighted linear combination of
// normalized factors per domain, scaled to a percentage and clamped to the
// domain's range. It needs no training and reports no model confidence.
type Baseline struct{}

func (Baseline) Name() string { return "rules" }

func (Baseline) Score(d Domain, p profile.Profile) (int, float64, error) {
	var score float64
	switch d {
	case Cardiovascular:
		score = cardioScore(p)
	case Metabolic:
		score = metabolicScore(p)
	case Sleep:
		score = sleepScore(p)
	case Mental:
		score = mentalScore(p)
	case Immune:
		score = immuneScore(p)
	case Chronic:
		score = chronicScore(p)
	}
	return BaselineBounds[d].Clamp(int(score * 100)), 0, nil
}

// Per-unit factor scales, shared across the domain formulas.

func smokingFactor(s profile.Smoking) float64 {
	switch s {
	case profile.SmokingFormer:
		return 0.3
	case profile.SmokingOccasional:
		return 0.5
	case profile.SmokingRegular:
		return 1.0
	default:
		return 0
	}
}

func alcoholFactor(a profile.Alcohol) float64 {
	switch a {
	case profile.AlcoholRarely:
		return 0.1
	case profile.AlcoholOccasionally:
		return 0.2
	case profile.AlcoholWeekly:
		return 0.5
	case profile.AlcoholDaily:
		return 1.0
	default:
		return 0
	}
}

func bpFactor(b profile.BloodPressure) float64 {
	switch b {
	case profile.BPElevated:
		return 0.3
	case profile.BPStage1:
		return 0.6
	case profile.BPStage2:
		return 1.0
	default:
		return 0
	}
}

func cholFactor(c profile.Cholesterol) float64 {
	switch c {
	case profile.CholBorderline:
		return 0.5
	case profile.CholHigh:
		return 1.0
	case profile.CholVeryHigh:
		return 1.0
	default:
		return 0
	}
}

func sugarFactor(b profile.BloodSugar) float64 {
	switch b {
	case profile.SugarElevated:
		return 0.5
	case profile.SugarDiabetic:
		return 1.0
	default:
		return 0
	}
}

// bmiFactor grows from 0 at BMI 18.5 to 1 at BMI 33.5 and saturates there.
func bmiFactor(bmi float64) float64 {
	return unit(math.Max(0, bmi-18.5) / 15)
}

func exerciseDeficit(freq float64) float64 { return unit((7 - freq) / 7) }

func unit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func cardioScore(p profile.Profile) float64 {
	return 0.15*unit(float64(p.Age)/80) +
		0.15*bmiFactor(p.BMI) +
		0.10*exerciseDeficit(p.Exercise) +
		0.10*smokingFactor(p.Smoking) +
		0.10*alcoholFactor(p.Alcohol) +
		0.15*bpFactor(p.BloodPressure) +
		0.10*cholFactor(p.Cholesterol) +
		0.05*ind(p.HasFamilyHistory("heart-disease")) +
		0.10*ind(p.HasCondition("heart-disease"))
}

func metabolicScore(p profile.Profile) float64 {
	return 0.20*bmiFactor(p.BMI) +
		0.15*unit((10-p.DietQuality)/10) +
		0.10*exerciseDeficit(p.Exercise) +
		0.15*cholFactor(p.Cholesterol) +
		0.15*sugarFactor(p.BloodSugar) +
		0.10*ind(p.HasFamilyHistory("diabetes")) +
		0.15*ind(p.HasCondition("diabetes"))
}

func sleepScore(p profile.Profile) float64 {
	return 0.20*unit(float64(p.Stress)/10) +
		0.25*unit((10-p.SleepQuality.TenPoint())/10) +
		0.15*unit(math.Abs(p.SleepHours-7.5)/3.5) +
		0.10*alcoholFactor(p.Alcohol) +
		0.10*bmiFactor(p.BMI) +
		0.10*unit(float64(p.Age)/80) +
		0.10*exerciseDeficit(p.Exercise)
}

func mentalScore(p profile.Profile) float64 {
	return 0.30*unit(float64(p.Stress)/10) +
		0.15*unit((10-p.SleepQuality.TenPoint())/10) +
		0.10*unit(math.Abs(p.SleepHours-7.5)/3.5) +
		0.15*exerciseDeficit(p.Exercise) +
		0.05*alcoholFactor(p.Alcohol) +
		0.10*ind(p.HasFamilyHistory("mental-health")) +
		0.15*ind(p.HasCondition("mental-health"))
}

func immuneScore(p profile.Profile) float64 {
	return 0.25*unit(float64(p.Age)/80) +
		0.15*smokingFactor(p.Smoking) +
		0.10*alcoholFactor(p.Alcohol) +
		0.15*unit((7-p.SleepHours)/3) +
		0.10*unit(float64(p.Stress)/10) +
		0.15*exerciseDeficit(p.Exercise) +
		0.10*bmiFactor(p.BMI)
}

func chronicScore(p profile.Profile) float64 {
	famCount := 0
	for _, tag := range []string{"heart-disease", "diabetes", "cancer"} {
		if p.HasFamilyHistory(tag) {
			famCount++
		}
	}
	return 0.25*unit(float64(p.Age)/80) +
		0.15*bmiFactor(p.BMI) +
		0.15*smokingFactor(p.Smoking) +
		0.10*alcoholFactor(p.Alcohol) +
		0.10*exerciseDeficit(p.Exercise) +
		0.10*unit(float64(famCount)/3) +
		0.15*unit(float64(p.ConditionCount())/2)
}

func ind(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
