package model

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const probEpsilon = 1e-7

// SparseCategoricalCrossEntropy returns the mean negative log-likelihood of
// the integer labels under the probability rows.
func SparseCategoricalCrossEntropy(probs mat.Matrix, labels []int) float64 {
	if len(labels) == 0 {
		return 0
	}
	total := 0.0
	for i, label := range labels {
		total += -math.Log(math.Max(probs.At(i, label), probEpsilon))
	}
	return total / float64(len(labels))
}

// CorrectCount counts rows whose arg-max equals the label.
func CorrectCount(probs *mat.Dense, labels []int) int {
	correct := 0
	for i, label := range labels {
		if floats.MaxIdx(probs.RawRowView(i)) == label {
			correct++
		}
	}
	return correct
}

// crossEntropyGrad is the gradient of the mean cross-entropy w.r.t. the
// softmax logits: (p - onehot(y)) / n.
func crossEntropyGrad(probs *mat.Dense, labels []int) *mat.Dense {
	grad := mat.DenseCopyOf(probs)
	for i, label := range labels {
		grad.Set(i, label, grad.At(i, label)-1)
	}
	grad.Scale(1/float64(len(labels)), grad)
	return grad
}
