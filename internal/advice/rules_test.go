package advice

import (
	"strings"
	"testing"

	"github.com/lifelens/lifelens/internal/profile"
	"github.com/lifelens/lifelens/internal/risk"
)

func names(recs []risk.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}

func hasName(recs []risk.Recommendation, name string) bool {
	for _, r := range recs {
		if r.Name == name {
			return true
		}
	}
	return false
}

func TestSynthesizeCountBounds(t *testing.T) {
	profiles := []profile.Profile{
		profile.Parse(map[string]any{}),
		profile.Parse(map[string]any{
			"age": 25, "exerciseFrequency": "daily", "sleepHours": 8,
			"sleepQuality": "excellent", "stressLevel": 1,
		}),
		profile.Parse(map[string]any{
			"age": 75, "weight": 130, "height": 160,
			"exerciseFrequency": "never", "sleepHours": 4, "sleepQuality": "poor",
			"stressLevel": 10, "smokingStatus": "regular",
			"bloodPressure": "stage2", "cholesterolLevels": "very-high",
			"bloodSugarLevel": "200+",
			"familyHistory":   []any{"heart-disease", "cancer"},
		}),
	}
	for _, p := range profiles {
		for _, d := range risk.Domains() {
			recs := Synthesize(d, 50, p)
			if len(recs) < MinRecommendations || len(recs) > MaxRecommendations {
				t.Fatalf("%s: got %d recommendations, want between %d and %d",
					d, len(recs), MinRecommendations, MaxRecommendations)
			}
		}
	}
}

func TestSynthesizePadsWithMaintenance(t *testing.T) {
	quiet := profile.Parse(map[string]any{
		"age": 25, "exerciseFrequency": "daily", "sleepHours": 8,
		"sleepQuality": "excellent", "stressLevel": 1,
	})
	recs := Synthesize(risk.Cardiovascular, 10, quiet)
	if len(recs) != MinRecommendations {
		t.Fatalf("expected exactly %d padded recommendations, got %v", MinRecommendations, names(recs))
	}
	if !hasName(recs, "General Health Maintenance") {
		t.Fatalf("expected maintenance filler, got %v", names(recs))
	}
}

func TestSynthesizeTruncatesAtFive(t *testing.T) {
	loaded := profile.Parse(map[string]any{
		"age": 60, "weight": 120, "height": 165,
		"exerciseFrequency": "never", "smokingStatus": "regular",
		"bloodPressure": "stage2", "cholesterolLevels": "very-high",
	})
	recs := Synthesize(risk.Cardiovascular, 80, loaded)
	if len(recs) != MaxRecommendations {
		t.Fatalf("expected truncation to %d, got %v", MaxRecommendations, names(recs))
	}
	// The exercise rule sits first in the table and must survive truncation.
	if recs[0].Name != "Cardiovascular Exercise" {
		t.Fatalf("expected table order preserved, got %v", names(recs))
	}
}

func TestCardiovascularRules(t *testing.T) {
	p := profile.Parse(map[string]any{
		"age": 45, "weight": 85, "height": 175,
		"exerciseFrequency": "rarely",
		"smokingStatus":     "former",
		"bloodPressure":     "elevated",
		"stressLevel":       7,
	})
	recs := Synthesize(risk.Cardiovascular, 40, p)

	if !hasName(recs, "Elevated Blood Pressure") {
		t.Fatalf("elevated blood pressure should surface a factor, got %v", names(recs))
	}
	if hasName(recs, "Smoking Cessation") {
		t.Fatalf("a former smoker should not be told to quit, got %v", names(recs))
	}
	if !hasName(recs, "Cardiovascular Exercise") {
		t.Fatalf("a sedentary profile should get an exercise factor, got %v", names(recs))
	}
}

func TestSleepDurationMentionsCurrentHours(t *testing.T) {
	p := profile.Parse(map[string]any{"sleepHours": 5.5})
	recs := Synthesize(risk.Sleep, 40, p)
	found := false
	for _, r := range recs {
		if r.Name == "Sleep Duration Optimization" {
			found = true
			if !strings.Contains(r.Suggestion, "5.5 hours") {
				t.Fatalf("suggestion should cite the current duration: %q", r.Suggestion)
			}
		}
	}
	if !found {
		t.Fatalf("short sleep should trigger the duration factor, got %v", names(recs))
	}
}

func TestMentalAlwaysIncludesSocialConnection(t *testing.T) {
	recs := Synthesize(risk.Mental, 30, profile.Parse(map[string]any{}))
	if !hasName(recs, "Social Connection") {
		t.Fatalf("social connection is unconditional, got %v", names(recs))
	}
}

func TestChronicFamilyHistoryRule(t *testing.T) {
	withHistory := profile.Parse(map[string]any{"familyHistory": []any{"cancer"}})
	if !hasName(Synthesize(risk.Chronic, 50, withHistory), "Family History Awareness") {
		t.Fatal("family history should trigger the awareness factor")
	}

	noneOnly := profile.Parse(map[string]any{"familyHistory": []any{"none"}})
	if hasName(Synthesize(risk.Chronic, 50, noneOnly), "Family History Awareness") {
		t.Fatal("the none placeholder must not count as family history")
	}
}

func TestRecommendationFieldsComplete(t *testing.T) {
	for _, d := range risk.Domains() {
		for _, r := range Synthesize(d, 60, profile.Parse(map[string]any{})) {
			if r.Name == "" || r.Suggestion == "" || r.Details == "" {
				t.Fatalf("%s: incomplete recommendation %+v", d, r)
			}
			if r.Timeframe == "" || r.Difficulty == "" || r.Evidence == "" {
				t.Fatalf("%s: missing grading on %q", d, r.Name)
			}
		}
	}
}
