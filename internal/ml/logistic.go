package ml

import (
	"errors"
	"math"
)

// LogisticRegression is a dense binary logistic model trained with full-batch
// gradient descent and L2 regularization. Deterministic: no sampling is
// involved, so repeated fits on the same data give the same weights.
type LogisticRegression struct {
	weights []float64
	bias    float64

	epochs int
	rate   float64
	l2     float64
}

func NewLogisticRegression(epochs int, rate, l2 float64) *LogisticRegression {
	return &LogisticRegression{epochs: epochs, rate: rate, l2: l2}
}

func (*LogisticRegression) Name() string { return "LogisticRegression" }

func (lr *LogisticRegression) Fit(X [][]float64, y []bool) error {
	if len(X) == 0 {
		return errors.New("logistic: empty training set")
	}
	n := len(X)
	d := len(X[0])
	lr.weights = make([]float64, d)
	lr.bias = 0

	grad := make([]float64, d)
	for epoch := 0; epoch < lr.epochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}
		gradBias := 0.0
		for i, row := range X {
			err := sigmoid(dot(lr.weights, row)+lr.bias) - indicatorFloat(y[i])
			for j, v := range row {
				grad[j] += err * v
			}
			gradBias += err
		}
		scale := lr.rate / float64(n)
		for j := range lr.weights {
			lr.weights[j] -= scale*grad[j] + lr.rate*lr.l2*lr.weights[j]
		}
		lr.bias -= scale * gradBias
	}
	return nil
}

func (lr *LogisticRegression) Probability(row []float64) float64 {
	return sigmoid(dot(lr.weights, row) + lr.bias)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func indicatorFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
