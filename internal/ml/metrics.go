package ml

import (
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// AUC computes the area under the ROC curve for predicted positive-class
// probabilities against binary labels. Returns 0.5 when the labels are
// single-class, which makes a degenerate fold score no better than chance.
func AUC(scores []float64, labels []bool) float64 {
	pos, neg := 0, 0
	for _, l := range labels {
		if l {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return 0.5
	}

	type pair struct {
		score float64
		label bool
	}
	pairs := make([]pair, len(scores))
	for i := range scores {
		pairs[i] = pair{scores[i], labels[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].score < pairs[j].score })

	ys := make([]float64, len(pairs))
	classes := make([]bool, len(pairs))
	for i, p := range pairs {
		ys[i] = p.score
		classes[i] = p.label
	}
	tpr, fpr, _ := stat.ROC(nil, ys, classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}

// Accuracy computes the fraction of probabilities on the correct side of
// the 0.5 decision threshold.
func Accuracy(scores []float64, labels []bool) float64 {
	if len(scores) == 0 {
		return 0
	}
	correct := 0
	for i, s := range scores {
		if (s >= 0.5) == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(scores))
}
