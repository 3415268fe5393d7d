package ml

import (
	"errors"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// KernelSVM is a least-squares RBF machine: a subset of training rows
// serves as prototypes and the ridge system (KᵀK + λI)a = Kᵀy is solved
// for the prototype weights, with y in {-1, +1}. Probabilities come from
// a fixed logistic link on the margin.
type KernelSVM struct {
	prototypes [][]float64
	alpha      []float64
	gamma      float64

	maxPrototypes int
	lambda        float64
	seed          uint64
}

func NewKernelSVM(maxPrototypes int, lambda float64, seed uint64) *KernelSVM {
	return &KernelSVM{maxPrototypes: maxPrototypes, lambda: lambda, seed: seed}
}

func (*KernelSVM) Name() string { return "SVM" }

func (s *KernelSVM) Fit(X [][]float64, y []bool) error {
	n := len(X)
	if n == 0 {
		return errors.New("svm: empty training set")
	}
	d := len(X[0])
	s.gamma = 1 / float64(d)

	m := s.maxPrototypes
	if m > n {
		m = n
	}
	rng := rand.New(rand.NewPCG(s.seed, s.seed))
	perm := rng.Perm(n)[:m]
	s.prototypes = make([][]float64, m)
	for i, idx := range perm {
		row := make([]float64, d)
		copy(row, X[idx])
		s.prototypes[i] = row
	}

	K := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			K.Set(i, j, s.kernel(X[i], s.prototypes[j]))
		}
	}
	target := mat.NewVecDense(n, nil)
	for i, b := range y {
		if b {
			target.SetVec(i, 1)
		} else {
			target.SetVec(i, -1)
		}
	}

	var gram mat.SymDense
	gram.SymOuterK(1, K.T())
	for i := 0; i < m; i++ {
		gram.SetSym(i, i, gram.At(i, i)+s.lambda)
	}

	rhs := mat.NewVecDense(m, nil)
	rhs.MulVec(K.T(), target)

	var chol mat.Cholesky
	if !chol.Factorize(&gram) {
		return errors.New("svm: kernel system not positive definite")
	}
	sol := mat.NewVecDense(m, nil)
	if err := chol.SolveVecTo(sol, rhs); err != nil {
		return err
	}
	s.alpha = make([]float64, m)
	copy(s.alpha, sol.RawVector().Data)
	return nil
}

func (s *KernelSVM) Probability(row []float64) float64 {
	if len(s.alpha) == 0 {
		return 0.5
	}
	margin := 0.0
	for j, proto := range s.prototypes {
		margin += s.alpha[j] * s.kernel(row, proto)
	}
	// Fixed link; least-squares margins cluster near ±1.
	return sigmoid(2 * margin)
}

func (s *KernelSVM) kernel(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Exp(-s.gamma * sum)
}
