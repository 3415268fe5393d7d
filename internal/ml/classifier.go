package ml

// Classifier is a binary probabilistic classifier over standardized feature
// rows.
type Classifier interface {
	Name() string
	Fit(X [][]float64, y []bool) error
	// Probability returns the positive-class probability for one row.
	Probability(row []float64) float64
}

// Candidate names a classifier and knows how to build a fresh, untrained
// instance for each cross-validation fold.
type Candidate struct {
	Name string
	New  func(seed uint64) Classifier
}

// DefaultCandidates is the fixed evaluation order. Selection keeps the
// first candidate whose mean cross-validation score is strictly greater
// than the best so far, so earlier entries win ties.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Name: "RandomForest", New: func(seed uint64) Classifier {
			return NewRandomForest(150, 10, seed)
		}},
		{Name: "GradientBoosting", New: func(seed uint64) Classifier {
			return NewGradientBoosting(120, 4, 0.1)
		}},
		{Name: "LogisticRegression", New: func(seed uint64) Classifier {
			return NewLogisticRegression(300, 0.1, 1e-4)
		}},
		{Name: "SVM", New: func(seed uint64) Classifier {
			return NewKernelSVM(300, 1e-3, seed)
		}},
	}
}
