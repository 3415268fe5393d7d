package risk

import (
	"encoding/json"
	"testing"

	"github.com/lifelens/lifelens/internal/profile"
)

func lowRiskProfile() profile.Profile {
	return profile.Parse(map[string]any{
		"age":                25,
		"weight":             65,
		"height":             175,
		"exerciseFrequency":  "daily",
		"sleepHours":         8,
		"sleepQuality":       "excellent",
		"dietType":           "mediterranean",
		"stressLevel":        2,
		"smokingStatus":      "never",
		"alcoholConsumption": "never",
		"bloodPressure":      "normal",
		"cholesterolLevels":  "normal",
		"bloodSugarLevel":    "70-100",
	})
}

func highRiskProfile() profile.Profile {
	return profile.Parse(map[string]any{
		"age":                72,
		"weight":             120,
		"height":             165,
		"exerciseFrequency":  "never",
		"sleepHours":         4.5,
		"sleepQuality":       "poor",
		"stressLevel":        9,
		"smokingStatus":      "regular",
		"alcoholConsumption": "daily",
		"bloodPressure":      "stage2",
		"cholesterolLevels":  "very-high",
		"bloodSugarLevel":    "126+",
		"familyHistory":      []any{"heart-disease", "diabetes", "cancer"},
		"existingConditions": []any{"hypertension", "diabetes"},
	})
}

func TestBaselineStaysInBounds(t *testing.T) {
	scorer := Baseline{}
	for _, p := range []profile.Profile{lowRiskProfile(), highRiskProfile(), profile.Parse(map[string]any{})} {
		for _, d := range Domains() {
			score, confidence, err := scorer.Score(d, p)
			if err != nil {
				t.Fatalf("baseline scorer must not fail: %v", err)
			}
			b := BaselineBounds[d]
			if score < b.Min || score > b.Max {
				t.Fatalf("%s score %d outside [%d, %d]", d, score, b.Min, b.Max)
			}
			if confidence != 0 {
				t.Fatalf("baseline must not report model confidence, got %v", confidence)
			}
		}
	}
}

func TestBaselineOrdersRisk(t *testing.T) {
	scorer := Baseline{}
	low := lowRiskProfile()
	high := highRiskProfile()
	for _, d := range Domains() {
		lowScore, _, _ := scorer.Score(d, low)
		highScore, _, _ := scorer.Score(d, high)
		if highScore <= lowScore {
			t.Fatalf("%s: high-risk profile scored %d, low-risk %d", d, highScore, lowScore)
		}
	}
}

func TestBaselineIsDeterministic(t *testing.T) {
	scorer := Baseline{}
	p := highRiskProfile()
	for _, d := range Domains() {
		a, _, _ := scorer.Score(d, p)
		b, _, _ := scorer.Score(d, p)
		if a != b {
			t.Fatalf("%s: same profile scored %d then %d", d, a, b)
		}
	}
}

func TestBoundsClamp(t *testing.T) {
	b := Bounds{10, 90}
	if b.Clamp(5) != 10 || b.Clamp(95) != 90 || b.Clamp(50) != 50 {
		t.Fatal("clamp arithmetic wrong")
	}
}

func TestImpactLabel(t *testing.T) {
	cases := []struct {
		impact Impact
		want   string
	}{
		{Impact{Level: ImpactHigh}, "High negative impact"},
		{Impact{Level: ImpactMedium, Positive: true}, "Medium positive impact"},
		{Impact{}, "Low impact"},
	}
	for _, c := range cases {
		if got := c.impact.Label(); got != c.want {
			t.Errorf("Label() = %q, want %q", got, c.want)
		}
	}
}

func TestImpactJSONRoundTrip(t *testing.T) {
	for _, impact := range []Impact{
		{Level: ImpactHigh},
		{Level: ImpactMedium, Positive: true},
		{Level: ImpactLow},
		{},
	} {
		data, err := json.Marshal(impact)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back Impact
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != impact {
			t.Fatalf("round trip changed %+v into %+v", impact, back)
		}
	}
}
