package ml

import (
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/lifelens/lifelens/internal/cohort"
	"github.com/lifelens/lifelens/internal/profile"
	"github.com/lifelens/lifelens/internal/risk"
)

// TrainOptions control cohort synthesis and model selection.
type TrainOptions struct {
	CohortSize   int
	Seed         uint64
	Candidates   []Candidate
	TestFraction float64
	Folds        int
}

func (o TrainOptions) withDefaults() TrainOptions {
	if o.CohortSize <= 0 {
		o.CohortSize = cohort.DefaultSize
	}
	if o.Candidates == nil {
		o.Candidates = DefaultCandidates()
	}
	if o.TestFraction <= 0 || o.TestFraction >= 1 {
		o.TestFraction = 0.2
	}
	if o.Folds < 2 {
		o.Folds = 5
	}
	return o
}

// Performance records how the selected model did during training.
type Performance struct {
	Algorithm string  `json:"algorithm"`
	Accuracy  float64 `json:"accuracy"`
	AUC       float64 `json:"auc"`
	CVScore   float64 `json:"cvScore"`
}

// DomainModel is a fitted classifier plus the scaler it was trained under.
type DomainModel struct {
	clf    Classifier
	scaler *Scaler
	perf   Performance
}

func (m *DomainModel) Performance() Performance { return m.perf }

// Predict returns a risk percentage for an unscaled feature vector.
func (m *DomainModel) Predict(features []float64) int {
	p := m.clf.Probability(m.scaler.Transform(features))
	return int(math.Round(p * 100))
}

// Registry holds one fitted model per risk domain. It is immutable after
// Train returns and safe for concurrent use.
type Registry struct {
	models map[risk.Domain]*DomainModel
}

func (r *Registry) Name() string { return "model" }

func (r *Registry) Model(d risk.Domain) (*DomainModel, bool) {
	m, ok := r.models[d]
	return m, ok
}

// Score implements risk.Scorer. Confidence is the held-out AUC of the
// selected model.
func (r *Registry) Score(d risk.Domain, p profile.Profile) (int, float64, error) {
	m, ok := r.models[d]
	if !ok {
		return 0, 0, fmt.Errorf("no model for domain %q", d)
	}
	vec := profile.Features(p)
	return m.Predict(vec[:]), m.perf.AUC, nil
}

// Train synthesizes a cohort, rule-labels it, and fits the best candidate
// per domain. Domains train concurrently; any failure aborts the whole
// registry.
func Train(opts TrainOptions) (*Registry, error) {
	opts = opts.withDefaults()

	people := cohort.Generate(opts.CohortSize, opts.Seed)
	labels := cohort.LabelAll(people)

	X := make([][]float64, len(people))
	for i, p := range people {
		vec := profile.Features(p)
		X[i] = vec[:]
	}

	reg := &Registry{models: make(map[risk.Domain]*DomainModel)}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, d := range risk.Domains() {
		wg.Add(1)
		go func(d risk.Domain) {
			defer wg.Done()
			model, err := trainDomain(X, labels[d], opts)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("domain %s: %w", d, err))
				return
			}
			reg.models[d] = model
			log.Printf("trained %s: %s (auc=%.3f acc=%.3f cv=%.3f)",
				d, model.perf.Algorithm, model.perf.AUC, model.perf.Accuracy, model.perf.CVScore)
		}(d)
	}
	wg.Wait()
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return reg, nil
}

func trainDomain(X [][]float64, y []bool, opts TrainOptions) (*DomainModel, error) {
	trainIdx, testIdx := stratifiedSplit(y, opts.TestFraction, opts.Seed)
	if len(trainIdx) == 0 || len(testIdx) == 0 {
		return nil, fmt.Errorf("cohort too small to split (%d rows)", len(X))
	}

	trainX, trainY := gather(X, y, trainIdx)
	testX, testY := gather(X, y, testIdx)

	scaler := FitScaler(trainX)
	scaledTrain := scaler.TransformAll(trainX)
	scaledTest := scaler.TransformAll(testX)

	bestScore := math.Inf(-1)
	var bestCandidate Candidate
	for _, cand := range opts.Candidates {
		score, err := crossValidate(cand, scaledTrain, trainY, opts.Folds, opts.Seed)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cand.Name, err)
		}
		if score > bestScore {
			bestScore = score
			bestCandidate = cand
		}
	}

	clf := bestCandidate.New(opts.Seed)
	if err := clf.Fit(scaledTrain, trainY); err != nil {
		return nil, fmt.Errorf("%s: %w", bestCandidate.Name, err)
	}

	scores := make([]float64, len(scaledTest))
	for i, row := range scaledTest {
		scores[i] = clf.Probability(row)
	}
	return &DomainModel{
		clf:    clf,
		scaler: scaler,
		perf: Performance{
			Algorithm: bestCandidate.Name,
			Accuracy:  Accuracy(scores, testY),
			AUC:       AUC(scores, testY),
			CVScore:   bestScore,
		},
	}, nil
}

// crossValidate returns the mean AUC over k folds.
func crossValidate(cand Candidate, X [][]float64, y []bool, folds int, seed uint64) (float64, error) {
	n := len(X)
	if n < folds {
		folds = n
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(n)

	total := 0.0
	for f := 0; f < folds; f++ {
		lo := f * n / folds
		hi := (f + 1) * n / folds

		var trainIdx, valIdx []int
		for i, idx := range perm {
			if i >= lo && i < hi {
				valIdx = append(valIdx, idx)
			} else {
				trainIdx = append(trainIdx, idx)
			}
		}
		trainX, trainY := gather(X, y, trainIdx)
		valX, valY := gather(X, y, valIdx)

		clf := cand.New(seed)
		if err := clf.Fit(trainX, trainY); err != nil {
			return 0, err
		}
		scores := make([]float64, len(valX))
		for i, row := range valX {
			scores[i] = clf.Probability(row)
		}
		total += AUC(scores, valY)
	}
	return total / float64(folds), nil
}

// stratifiedSplit shuffles the positive and negative classes separately so
// the test slice keeps the class balance of the cohort.
func stratifiedSplit(y []bool, testFraction float64, seed uint64) (train, test []int) {
	rng := rand.New(rand.NewPCG(seed, seed))
	var pos, neg []int
	for i, b := range y {
		if b {
			pos = append(pos, i)
		} else {
			neg = append(neg, i)
		}
	}
	rng.Shuffle(len(pos), func(i, j int) { pos[i], pos[j] = pos[j], pos[i] })
	rng.Shuffle(len(neg), func(i, j int) { neg[i], neg[j] = neg[j], neg[i] })

	cutPos := int(float64(len(pos)) * testFraction)
	cutNeg := int(float64(len(neg)) * testFraction)
	test = append(test, pos[:cutPos]...)
	test = append(test, neg[:cutNeg]...)
	train = append(train, pos[cutPos:]...)
	train = append(train, neg[cutNeg:]...)
	return train, test
}

func gather(X [][]float64, y []bool, indices []int) ([][]float64, []bool) {
	outX := make([][]float64, len(indices))
	outY := make([]bool, len(indices))
	for k, i := range indices {
		outX[k] = X[i]
		outY[k] = y[i]
	}
	return outX, outY
}
