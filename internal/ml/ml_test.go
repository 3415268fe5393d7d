package ml

import (
	"math"
	"math/rand/v2"
	"testing"
)

// blobs builds a linearly separable two-cluster dataset.
func blobs(n int, seed uint64) ([][]float64, []bool) {
	rng := rand.New(rand.NewPCG(seed, seed))
	X := make([][]float64, 0, n)
	y := make([]bool, 0, n)
	for i := 0; i < n; i++ {
		positive := i%2 == 0
		center := -2.0
		if positive {
			center = 2.0
		}
		X = append(X, []float64{
			center + rng.NormFloat64()*0.5,
			center + rng.NormFloat64()*0.5,
		})
		y = append(y, positive)
	}
	return X, y
}

func TestScaler(t *testing.T) {
	X := [][]float64{{1, 10}, {2, 10}, {3, 10}}
	s := FitScaler(X)

	if math.Abs(s.Mean[0]-2) > 1e-9 {
		t.Fatalf("expected column mean 2, got %v", s.Mean[0])
	}
	if s.Std[1] != 1 {
		t.Fatalf("constant column should get unit deviation, got %v", s.Std[1])
	}

	scaled := s.TransformAll(X)
	sum := 0.0
	for _, row := range scaled {
		sum += row[0]
	}
	if math.Abs(sum) > 1e-9 {
		t.Fatalf("standardized column should sum to zero, got %v", sum)
	}
	if scaled[0][1] != 0 {
		t.Fatalf("constant column should transform to zero, got %v", scaled[0][1])
	}
}

func TestAUC(t *testing.T) {
	perfect := AUC([]float64{0.1, 0.2, 0.8, 0.9}, []bool{false, false, true, true})
	if math.Abs(perfect-1) > 1e-9 {
		t.Fatalf("perfectly separated scores should give AUC 1, got %v", perfect)
	}

	inverted := AUC([]float64{0.9, 0.8, 0.2, 0.1}, []bool{false, false, true, true})
	if math.Abs(inverted) > 1e-9 {
		t.Fatalf("inverted scores should give AUC 0, got %v", inverted)
	}

	if got := AUC([]float64{0.5, 0.5}, []bool{true, true}); got != 0.5 {
		t.Fatalf("single-class labels should give chance AUC, got %v", got)
	}
}

func TestAccuracy(t *testing.T) {
	got := Accuracy([]float64{0.9, 0.1, 0.6, 0.4}, []bool{true, false, false, true})
	if got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
}

func TestClassifiersLearnSeparableData(t *testing.T) {
	X, y := blobs(200, 1)
	testX, testY := blobs(60, 2)

	for _, cand := range DefaultCandidates() {
		t.Run(cand.Name, func(t *testing.T) {
			clf := cand.New(1)
			if clf.Name() != cand.Name {
				t.Fatalf("candidate name %q does not match classifier name %q", cand.Name, clf.Name())
			}
			if err := clf.Fit(X, y); err != nil {
				t.Fatalf("fit: %v", err)
			}
			scores := make([]float64, len(testX))
			for i, row := range testX {
				scores[i] = clf.Probability(row)
				if scores[i] < 0 || scores[i] > 1 {
					t.Fatalf("probability out of range: %v", scores[i])
				}
			}
			if acc := Accuracy(scores, testY); acc < 0.9 {
				t.Fatalf("expected at least 0.9 accuracy on separable data, got %v", acc)
			}
		})
	}
}

func TestLogisticIsDeterministic(t *testing.T) {
	X, y := blobs(100, 3)
	a := NewLogisticRegression(100, 0.1, 1e-4)
	b := NewLogisticRegression(100, 0.1, 1e-4)
	if err := a.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	if err := b.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	probe := []float64{0.3, -0.7}
	if a.Probability(probe) != b.Probability(probe) {
		t.Fatal("identical fits must give identical probabilities")
	}
}

func TestForestSameSeedSameModel(t *testing.T) {
	X, y := blobs(120, 5)
	a := NewRandomForest(20, 6, 9)
	b := NewRandomForest(20, 6, 9)
	if err := a.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	if err := b.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	probe := []float64{1.5, 1.5}
	if a.Probability(probe) != b.Probability(probe) {
		t.Fatal("same seed must yield the same forest")
	}
}

func TestGradientBoostingSingleClass(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}}
	clf := NewGradientBoosting(10, 2, 0.1)
	if err := clf.Fit(X, []bool{true, true, true}); err != nil {
		t.Fatalf("single-class fit should degrade to the prior, got %v", err)
	}
	if p := clf.Probability([]float64{2}); p < 0.5 {
		t.Fatalf("all-positive prior should predict above 0.5, got %v", p)
	}
}
