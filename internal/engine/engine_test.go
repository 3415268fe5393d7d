package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lifelens/lifelens/internal/profile"
	"github.com/lifelens/lifelens/internal/risk"
)

type stubScorer struct {
	score      int
	confidence float64
	err        error
	panics     bool
}

func (s stubScorer) Name() string { return "stub" }

func (s stubScorer) Score(d risk.Domain, p profile.Profile) (int, float64, error) {
	if s.panics {
		panic("model gone bad")
	}
	return s.score, s.confidence, s.err
}

func sampleProfile() profile.Profile {
	return profile.Parse(map[string]any{
		"age": 45, "weight": 85, "height": 175,
		"exerciseFrequency": "rarely", "stressLevel": 7,
	})
}

func TestAssessCoversAllDomains(t *testing.T) {
	eng := NewBaselineEngine(risk.Baseline{})
	result := eng.Assess(sampleProfile())
	if len(result) != len(risk.Domains()) {
		t.Fatalf("expected %d domains, got %d", len(risk.Domains()), len(result))
	}
	for _, d := range risk.Domains() {
		a, ok := result[d]
		if !ok {
			t.Fatalf("missing domain %s", d)
		}
		if a.Risk < 0 || a.Risk > 100 {
			t.Fatalf("%s risk out of range: %d", d, a.Risk)
		}
		if len(a.Factors) < 3 || len(a.Factors) > 5 {
			t.Fatalf("%s expected 3-5 factors, got %d", d, len(a.Factors))
		}
	}
}

func TestAssessIsIdempotent(t *testing.T) {
	eng := NewBaselineEngine(risk.Baseline{})
	p := sampleProfile()
	if !reflect.DeepEqual(eng.Assess(p), eng.Assess(p)) {
		t.Fatal("repeated assessment of the same profile must be identical")
	}
}

func TestModelEngineAppliesClinicalAdjustment(t *testing.T) {
	p := profile.Profile{Age: 72, BMI: 24}
	adjusted := NewModelEngine(stubScorer{score: 40, confidence: 0.9}).Assess(p)
	raw := NewBaselineEngine(stubScorer{score: 40}).Assess(p)

	if adjusted[risk.Cardiovascular].Risk != 45 {
		t.Fatalf("expected the age bump on the model path, got %d", adjusted[risk.Cardiovascular].Risk)
	}
	if raw[risk.Cardiovascular].Risk != 40 {
		t.Fatalf("the deterministic path must not be adjusted, got %d", raw[risk.Cardiovascular].Risk)
	}
	if adjusted[risk.Cardiovascular].Confidence != 0.9 {
		t.Fatalf("confidence should pass through, got %v", adjusted[risk.Cardiovascular].Confidence)
	}
}

func TestAssessFallsBackOnError(t *testing.T) {
	eng := NewModelEngine(stubScorer{err: errors.New("inference unavailable")})
	p := profile.Parse(map[string]any{"age": 50, "weight": 95, "height": 175})
	result := eng.Assess(p)

	// base = 20 + (50-30)*0.5 + (31.02-25)*2 ≈ 42.04
	wantCardio := fallbackRisk(risk.Cardiovascular, p)
	if result[risk.Cardiovascular].Risk != wantCardio {
		t.Fatalf("expected fallback score %d, got %d", wantCardio, result[risk.Cardiovascular].Risk)
	}
	if result[risk.Chronic].Risk <= result[risk.Immune].Risk {
		t.Fatal("chronic multiplier must exceed the immune multiplier")
	}
	for _, d := range risk.Domains() {
		a := result[d]
		if a.Risk < 5 || a.Risk > 85 {
			t.Fatalf("%s fallback risk %d outside [5, 85]", d, a.Risk)
		}
		if a.Confidence != 0 {
			t.Fatalf("%s fallback must report zero confidence, got %v", d, a.Confidence)
		}
		if len(a.Factors) < 3 {
			t.Fatalf("%s fallback must still carry recommendations, got %d", d, len(a.Factors))
		}
	}
}

func TestAssessSurvivesScorerPanic(t *testing.T) {
	eng := NewModelEngine(stubScorer{panics: true})
	result := eng.Assess(sampleProfile())
	for _, d := range risk.Domains() {
		if result[d].Risk < 5 || result[d].Risk > 85 {
			t.Fatalf("%s: panic recovery should produce a fallback score, got %d", d, result[d].Risk)
		}
	}
}

func TestFallbackClamps(t *testing.T) {
	young := profile.Profile{Age: 18, BMI: 18}
	if got := fallbackRisk(risk.Immune, young); got < 5 {
		t.Fatalf("fallback floor violated: %d", got)
	}
	old := profile.Profile{Age: 90, BMI: 50}
	if got := fallbackRisk(risk.Chronic, old); got != 85 {
		t.Fatalf("fallback ceiling violated: %d", got)
	}
}

func TestAssessEndToEndProfile(t *testing.T) {
	p := profile.Parse(map[string]any{
		"age":                45,
		"bmi":                27.8,
		"exerciseFrequency":  "2-3-times-week",
		"sleepHours":         6.5,
		"stressLevel":        7,
		"smokingStatus":      "former",
		"bloodPressure":      "elevated",
		"cholesterolLevels":  "borderline",
		"bloodSugarLevel":    "101-125",
		"familyHistory":      []any{"heart-disease", "diabetes"},
	})
	for _, eng := range []*Engine{
		NewBaselineEngine(risk.Baseline{}),
		NewModelEngine(stubScorer{score: 44, confidence: 0.8}),
	} {
		result := eng.Assess(p)
		cardio := result[risk.Cardiovascular]
		if cardio.Risk <= 5 || cardio.Risk >= 85 {
			t.Fatalf("%s: cardiovascular risk %d should sit strictly inside (5, 85)", eng.ScorerName(), cardio.Risk)
		}
		mentioned := false
		for _, f := range cardio.Factors {
			if f.Name == "Elevated Blood Pressure" || f.Name == "Blood Pressure Management" || f.Name == "Smoking Cessation" {
				mentioned = true
			}
		}
		if !mentioned {
			t.Fatalf("%s: expected a blood pressure or smoking factor, got %+v", eng.ScorerName(), cardio.Factors)
		}
	}
}

func TestMentalRiskTracksStress(t *testing.T) {
	eng := NewBaselineEngine(risk.Baseline{})
	calm := profile.Parse(map[string]any{"stressLevel": 2})
	tense := profile.Parse(map[string]any{"stressLevel": 9})
	if eng.Assess(tense)[risk.Mental].Risk < eng.Assess(calm)[risk.Mental].Risk {
		t.Fatal("raising stress must not lower mental risk")
	}
}

func TestCardioRiskTracksExercise(t *testing.T) {
	eng := NewBaselineEngine(risk.Baseline{})
	active := profile.Parse(map[string]any{"exerciseFrequency": "daily"})
	idle := profile.Parse(map[string]any{"exerciseFrequency": "never"})
	if eng.Assess(active)[risk.Cardiovascular].Risk > eng.Assess(idle)[risk.Cardiovascular].Risk {
		t.Fatal("more exercise must not raise cardiovascular risk")
	}
}
