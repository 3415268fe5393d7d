package cohort

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lifelens/lifelens/internal/profile"
)

// DefaultSize is the cohort size used for model training when the caller
// does not override it.
const DefaultSize = 5000

// Generate produces n synthetic profiles with realistic inter-feature
// correlation: weight tracks height and age, exercise is penalized by age
// and obesity, the categorical markers shift toward higher-risk values as a
// computed risk score rises, and conditions depend on age, family history,
// blood pressure and smoking. The same seed and n always yield the same
// cohort.
func Generate(n int, seed uint64) []profile.Profile {
	rng := rand.New(rand.NewPCG(seed, seed))
	heightDist := distuv.Normal{Mu: 170, Sigma: 10, Src: rng}
	weightNoise := distuv.Normal{Mu: 0, Sigma: 10, Src: rng}
	sleepDist := distuv.Normal{Mu: 7.5, Sigma: 1.2, Src: rng}

	out := make([]profile.Profile, 0, n)
	for i := 0; i < n; i++ {
		p := profile.Profile{}
		p.Age = 18 + rng.IntN(67)
		if rng.Float64() < 0.5 {
			p.Gender = profile.GenderMale
		}

		p.Height = clip(heightDist.Rand(), 140, 210)
		base := (p.Height - 100) * 0.9
		p.Weight = clip(base+weightNoise.Rand()+float64(p.Age-25)*0.2, 35, 200)
		p.BMI = profile.DeriveBMI(p.Weight, p.Height)

		exercise := float64(pick(rng, []float64{0.15, 0.1, 0.15, 0.2, 0.15, 0.1, 0.1, 0.05}))
		if p.Age > 60 {
			exercise += float64(rng.IntN(3) - 2)
		}
		if p.BMI > 30 {
			exercise += float64(rng.IntN(3) - 2)
		}
		p.Exercise = clip(exercise, 0, 7)

		p.SleepHours = clip(sleepDist.Rand(), 4, 12)
		p.Stress = 1 + rng.IntN(10)
		p.SleepQuality = []profile.SleepQuality{
			profile.SleepPoor, profile.SleepFair, profile.SleepGood, profile.SleepExcellent,
		}[pick(rng, []float64{0.1, 0.2, 0.65, 0.05})]
		p.DietQuality = float64(1 + rng.IntN(10))
		p.Smoking = profile.Smoking(pick(rng, []float64{0.6, 0.25, 0.1, 0.05}))
		p.Alcohol = profile.Alcohol(pick(rng, []float64{0.3, 0.2, 0.2, 0.25, 0.05}))

		p.BloodPressure = profile.BloodPressure(shiftedPick(rng,
			[]float64{0.6, 0.2, 0.15, 0.05},
			[]float64{0.1, 0.2, 0.4, 0.3},
			unitClip((float64(p.Age-20)*0.02+(p.BMI-25)*0.05+float64(p.Stress)*0.03)/10)))

		p.Cholesterol = profile.Cholesterol(shiftedPick(rng,
			[]float64{0.7, 0.2, 0.1},
			[]float64{0.2, 0.4, 0.4},
			unitClip((float64(p.Age-20)*0.015+(p.BMI-25)*0.03+poorDietBonus(p.DietQuality))/8)))

		bsIdx := shiftedPick(rng,
			[]float64{0.75, 0.15, 0.05, 0.05},
			[]float64{0.3, 0.4, 0.25, 0.05},
			unitClip((float64(p.Age-20)*0.01+(p.BMI-25)*0.04+lowExerciseBonus(p.Exercise))/6))
		// Slot 3 is the "dont-know" answer, which normalizes to elevated.
		if bsIdx == 3 {
			bsIdx = 1
		}
		p.BloodSugar = profile.BloodSugar(bsIdx)

		p.FamilyHistory = familyHistory(rng, p.Age)
		p.Conditions = conditions(rng, p)

		out = append(out, p)
	}
	return out
}

func familyHistory(rng *rand.Rand, age int) []string {
	count := int(distuv.Poisson{Lambda: 0.8 + float64(age)*0.01, Src: rng}.Rand())
	if count <= 0 {
		return []string{"none"}
	}
	if count > 3 {
		count = 3
	}
	perm := rng.Perm(len(profile.FamilyTags))
	tags := make([]string, 0, count)
	for _, idx := range perm[:count] {
		tags = append(tags, profile.FamilyTags[idx])
	}
	return tags
}

func conditions(rng *rand.Rand, p profile.Profile) []string {
	var conds []string

	heartRisk := boolBonus(p.Age > 60, 0.1) +
		boolBonus(containsStr(p.FamilyHistory, "heart-disease"), 0.15) +
		boolBonus(p.BloodPressure >= profile.BPStage1, 0.1) +
		boolBonus(p.Smoking == profile.SmokingRegular, 0.08)
	if rng.Float64() < heartRisk {
		conds = append(conds, "heart-disease")
	}

	diabetesRisk := boolBonus(p.Age > 50, 0.08) +
		boolBonus(containsStr(p.FamilyHistory, "diabetes"), 0.2) +
		boolBonus(p.BMI > 30, 0.12) +
		boolBonus(p.Exercise < 2, 0.06)
	if rng.Float64() < diabetesRisk {
		conds = append(conds, "diabetes")
	}

	if p.BloodPressure >= profile.BPStage1 {
		conds = append(conds, "hypertension")
	}

	mentalRisk := boolBonus(p.Stress > 7, 0.15) +
		boolBonus(containsStr(p.FamilyHistory, "mental-health"), 0.12) +
		boolBonus(p.SleepHours < 6, 0.08)
	if rng.Float64() < mentalRisk {
		conds = append(conds, "mental-health")
	}

	if len(conds) == 0 {
		return []string{"none"}
	}
	return conds
}

// pick draws an index from a discrete distribution.
func pick(rng *rand.Rand, probs []float64) int {
	r := rng.Float64()
	cum := 0.0
	for i, pr := range probs {
		cum += pr
		if r < cum {
			return i
		}
	}
	return len(probs) - 1
}

// shiftedPick interpolates between a baseline distribution and a high-risk
// distribution by the given risk fraction, renormalizes, and draws.
func shiftedPick(rng *rand.Rand, base, shifted []float64, risk float64) int {
	mixed := make([]float64, len(base))
	total := 0.0
	for i := range base {
		mixed[i] = base[i]*(1-risk) + shifted[i]*risk
		total += mixed[i]
	}
	for i := range mixed {
		mixed[i] /= total
	}
	return pick(rng, mixed)
}

func poorDietBonus(quality float64) float64 {
	if quality < 5 {
		return 0.2
	}
	return 0
}

func lowExerciseBonus(freq float64) float64 {
	if freq < 2 {
		return 0.15
	}
	return 0
}

func boolBonus(b bool, bonus float64) float64 {
	if b {
		return bonus
	}
	return 0
}

func containsStr(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}

func clip(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func unitClip(v float64) float64 { return clip(v, 0, 1) }
