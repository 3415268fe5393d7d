package ml

import (
	"errors"
	"testing"

	"github.com/lifelens/lifelens/internal/profile"
	"github.com/lifelens/lifelens/internal/risk"
)

// fast candidate set for tests; training the full ensemble on every test
// run is unnecessary.
func logisticOnly() []Candidate {
	return []Candidate{
		{Name: "LogisticRegression", New: func(seed uint64) Classifier {
			return NewLogisticRegression(100, 0.1, 1e-4)
		}},
	}
}

func smallOptions() TrainOptions {
	return TrainOptions{
		CohortSize: 600,
		Seed:       42,
		Candidates: logisticOnly(),
	}
}

func TestTrainBuildsAllDomains(t *testing.T) {
	reg, err := Train(smallOptions())
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	for _, d := range risk.Domains() {
		m, ok := reg.Model(d)
		if !ok {
			t.Fatalf("no model trained for %s", d)
		}
		perf := m.Performance()
		if perf.Algorithm != "LogisticRegression" {
			t.Fatalf("%s selected %q from a logistic-only candidate set", d, perf.Algorithm)
		}
		if perf.AUC < 0.5 {
			t.Fatalf("%s model no better than chance: auc=%v", d, perf.AUC)
		}
		if perf.CVScore <= 0 || perf.CVScore > 1 {
			t.Fatalf("%s cv score out of range: %v", d, perf.CVScore)
		}
	}
}

func TestTrainIsDeterministic(t *testing.T) {
	a, err := Train(smallOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Train(smallOptions())
	if err != nil {
		t.Fatal(err)
	}

	p := profile.Parse(map[string]any{
		"age": 45, "weight": 85, "height": 175,
		"smokingStatus": "regular", "bloodPressure": "stage1",
	})
	for _, d := range risk.Domains() {
		sa, ca, err := a.Score(d, p)
		if err != nil {
			t.Fatalf("score: %v", err)
		}
		sb, cb, _ := b.Score(d, p)
		if sa != sb || ca != cb {
			t.Fatalf("%s: same seed gave %d/%v then %d/%v", d, sa, ca, sb, cb)
		}
	}
}

func TestRegistryScoreRange(t *testing.T) {
	reg, err := Train(smallOptions())
	if err != nil {
		t.Fatal(err)
	}
	profiles := []profile.Profile{
		profile.Parse(map[string]any{}),
		profile.Parse(map[string]any{"age": 80, "weight": 130, "height": 160, "smokingStatus": "regular"}),
		profile.Parse(map[string]any{"age": 20, "exerciseFrequency": "daily"}),
	}
	for _, p := range profiles {
		for _, d := range risk.Domains() {
			score, confidence, err := reg.Score(d, p)
			if err != nil {
				t.Fatalf("score: %v", err)
			}
			if score < 0 || score > 100 {
				t.Fatalf("%s score out of range: %d", d, score)
			}
			if confidence < 0 || confidence > 1 {
				t.Fatalf("%s confidence out of range: %v", d, confidence)
			}
		}
	}
}

func TestRegistryUnknownDomain(t *testing.T) {
	reg := &Registry{models: map[risk.Domain]*DomainModel{}}
	if _, _, err := reg.Score(risk.Domain("astral"), profile.Profile{}); err == nil {
		t.Fatal("expected error for a domain with no model")
	}
}

type failingClassifier struct{}

func (failingClassifier) Name() string                  { return "Failing" }
func (failingClassifier) Fit([][]float64, []bool) error { return errors.New("boom") }
func (failingClassifier) Probability([]float64) float64 { return 0.5 }

func TestTrainPropagatesFitFailure(t *testing.T) {
	opts := smallOptions()
	opts.Candidates = []Candidate{
		{Name: "Failing", New: func(uint64) Classifier { return failingClassifier{} }},
	}
	if _, err := Train(opts); err == nil {
		t.Fatal("expected training to fail when every candidate fails to fit")
	}
}

func TestStratifiedSplitKeepsBalance(t *testing.T) {
	y := make([]bool, 100)
	for i := 60; i < 100; i++ {
		y[i] = true
	}
	train, test := stratifiedSplit(y, 0.2, 1)
	if len(train)+len(test) != 100 {
		t.Fatalf("split lost rows: %d + %d", len(train), len(test))
	}
	testPos := 0
	for _, i := range test {
		if y[i] {
			testPos++
		}
	}
	if testPos != 8 {
		t.Fatalf("expected 8 positives in the test slice, got %d", testPos)
	}
}
