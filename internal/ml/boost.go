package ml

import (
	"errors"
	"math"
	"math/rand/v2"
)

// GradientBoosting fits shallow regression trees to the logistic-loss
// gradient, starting from the prior log-odds and shrinking each stage by
// the learning rate.
type GradientBoosting struct {
	initial float64
	stages  []*regressionTree

	rounds int
	depth  int
	rate   float64
}

func NewGradientBoosting(rounds, depth int, rate float64) *GradientBoosting {
	return &GradientBoosting{rounds: rounds, depth: depth, rate: rate}
}

func (*GradientBoosting) Name() string { return "GradientBoosting" }

func (gb *GradientBoosting) Fit(X [][]float64, y []bool) error {
	if len(X) == 0 {
		return errors.New("boost: empty training set")
	}
	pos := 0
	for _, b := range y {
		if b {
			pos++
		}
	}
	if pos == 0 || pos == len(y) {
		// Degenerate single-class fit; keep the prior only.
		gb.initial = logOdds(pos, len(y))
		gb.stages = nil
		return nil
	}
	gb.initial = logOdds(pos, len(y))

	targets := toFloats(y)
	scores := make([]float64, len(X))
	for i := range scores {
		scores[i] = gb.initial
	}

	indices := make([]int, len(X))
	for i := range indices {
		indices[i] = i
	}
	residuals := make([]float64, len(X))
	params := treeParams{maxDepth: gb.depth, minLeaf: 2}
	rng := rand.New(rand.NewPCG(1, 1))

	gb.stages = make([]*regressionTree, 0, gb.rounds)
	for r := 0; r < gb.rounds; r++ {
		for i := range X {
			residuals[i] = targets[i] - sigmoid(scores[i])
		}
		tree := fitTree(X, residuals, indices, params, rng)
		gb.stages = append(gb.stages, tree)
		for i := range X {
			scores[i] += gb.rate * tree.predict(X[i])
		}
	}
	return nil
}

func (gb *GradientBoosting) Probability(row []float64) float64 {
	score := gb.initial
	for _, t := range gb.stages {
		score += gb.rate * t.predict(row)
	}
	return sigmoid(score)
}

func logOdds(pos, n int) float64 {
	p := (float64(pos) + 0.5) / (float64(n) + 1)
	return math.Log(p / (1 - p))
}
