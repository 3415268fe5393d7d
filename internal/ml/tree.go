package ml

import (
	"errors"
	"math"
	"math/rand/v2"
	"sort"
)

// regressionTree is a CART-style tree fit to float targets with
// variance-reduction splits. For 0/1 targets a leaf mean is a class
// probability, so the same tree serves both the forest and the booster.
type regressionTree struct {
	feature   int
	threshold float64
	left      *regressionTree
	right     *regressionTree
	value     float64
	leaf      bool
}

type treeParams struct {
	maxDepth int
	minLeaf  int
	// mtry is the number of features considered per split; 0 means all.
	mtry int
}

func fitTree(X [][]float64, y []float64, indices []int, params treeParams, rng *rand.Rand) *regressionTree {
	return growTree(X, y, indices, params, rng, 0)
}

func growTree(X [][]float64, y []float64, indices []int, params treeParams, rng *rand.Rand, depth int) *regressionTree {
	if depth >= params.maxDepth || len(indices) < 2*params.minLeaf || pure(y, indices) {
		return &regressionTree{leaf: true, value: mean(y, indices)}
	}

	feature, threshold, ok := bestSplit(X, y, indices, params, rng)
	if !ok {
		return &regressionTree{leaf: true, value: mean(y, indices)}
	}

	var left, right []int
	for _, i := range indices {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < params.minLeaf || len(right) < params.minLeaf {
		return &regressionTree{leaf: true, value: mean(y, indices)}
	}

	return &regressionTree{
		feature:   feature,
		threshold: threshold,
		left:      growTree(X, y, left, params, rng, depth+1),
		right:     growTree(X, y, right, params, rng, depth+1),
	}
}

// bestSplit scans candidate features for the threshold with the largest
// reduction in squared error.
func bestSplit(X [][]float64, y []float64, indices []int, params treeParams, rng *rand.Rand) (int, float64, bool) {
	features := candidateFeatures(len(X[0]), params.mtry, rng)

	bestGain := 0.0
	bestFeature, bestThreshold := -1, 0.0

	total, totalSq := 0.0, 0.0
	for _, i := range indices {
		total += y[i]
		totalSq += y[i] * y[i]
	}
	n := float64(len(indices))
	baseErr := totalSq - total*total/n

	order := make([]int, len(indices))
	for _, f := range features {
		copy(order, indices)
		sort.Slice(order, func(a, b int) bool { return X[order[a]][f] < X[order[b]][f] })

		leftSum, leftSq := 0.0, 0.0
		for k := 0; k < len(order)-1; k++ {
			i := order[k]
			leftSum += y[i]
			leftSq += y[i] * y[i]

			if X[order[k]][f] == X[order[k+1]][f] {
				continue
			}
			nl := float64(k + 1)
			nr := n - nl
			leftErr := leftSq - leftSum*leftSum/nl
			rightSum := total - leftSum
			rightErr := (totalSq - leftSq) - rightSum*rightSum/nr
			gain := baseErr - leftErr - rightErr
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (X[order[k]][f] + X[order[k+1]][f]) / 2
			}
		}
	}
	if bestFeature < 0 || bestGain <= 1e-12 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func candidateFeatures(total, mtry int, rng *rand.Rand) []int {
	if mtry <= 0 || mtry >= total {
		all := make([]int, total)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return rng.Perm(total)[:mtry]
}

func (t *regressionTree) predict(row []float64) float64 {
	node := t
	for !node.leaf {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

func pure(y []float64, indices []int) bool {
	first := y[indices[0]]
	for _, i := range indices[1:] {
		if y[i] != first {
			return false
		}
	}
	return true
}

func mean(y []float64, indices []int) float64 {
	sum := 0.0
	for _, i := range indices {
		sum += y[i]
	}
	return sum / float64(len(indices))
}

// RandomForest bags regression trees over bootstrap samples with sqrt(d)
// feature subsampling; the averaged leaf means are the class probability.
type RandomForest struct {
	trees []*regressionTree

	nTrees   int
	maxDepth int
	seed     uint64
}

func NewRandomForest(nTrees, maxDepth int, seed uint64) *RandomForest {
	return &RandomForest{nTrees: nTrees, maxDepth: maxDepth, seed: seed}
}

func (*RandomForest) Name() string { return "RandomForest" }

func (rf *RandomForest) Fit(X [][]float64, y []bool) error {
	if len(X) == 0 {
		return errors.New("forest: empty training set")
	}
	rng := rand.New(rand.NewPCG(rf.seed, rf.seed))
	targets := toFloats(y)
	mtry := int(math.Sqrt(float64(len(X[0]))))
	if mtry < 1 {
		mtry = 1
	}
	params := treeParams{maxDepth: rf.maxDepth, minLeaf: 2, mtry: mtry}

	rf.trees = make([]*regressionTree, 0, rf.nTrees)
	for t := 0; t < rf.nTrees; t++ {
		sample := make([]int, len(X))
		for i := range sample {
			sample[i] = rng.IntN(len(X))
		}
		rf.trees = append(rf.trees, fitTree(X, targets, sample, params, rng))
	}
	return nil
}

func (rf *RandomForest) Probability(row []float64) float64 {
	if len(rf.trees) == 0 {
		return 0.5
	}
	sum := 0.0
	for _, t := range rf.trees {
		sum += t.predict(row)
	}
	p := sum / float64(len(rf.trees))
	return clampUnit(p)
}

func toFloats(y []bool) []float64 {
	out := make([]float64, len(y))
	for i, b := range y {
		if b {
			out[i] = 1
		}
	}
	return out
}

func clampUnit(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
