package model

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrEmptyBatch is returned when a batch carries no samples.
var ErrEmptyBatch = errors.New("model: empty batch")

// Network is a feed-forward stack of dense layers ending in softmax,
// trained with sparse categorical cross-entropy.
type Network struct {
	inputSize int
	layers    []*Dense
	opt       Optimizer
}

// NewNetwork constructs the stack with weights drawn from a seeded RNG.
func NewNetwork(inputSize int, specs []LayerSpec, opt Optimizer, seed int64) (*Network, error) {
	if inputSize <= 0 {
		return nil, fmt.Errorf("model: input size must be > 0 (got %d)", inputSize)
	}
	if len(specs) == 0 {
		return nil, errors.New("model: at least one layer is required")
	}
	if specs[len(specs)-1].Activation != Softmax {
		return nil, errors.New("model: output layer must use softmax")
	}
	if opt == nil {
		opt = NewRMSprop(0)
	}
	rng := rand.New(rand.NewSource(seed))
	net := &Network{inputSize: inputSize, opt: opt}
	prev := inputSize
	for i, spec := range specs {
		if spec.Units <= 0 {
			return nil, fmt.Errorf("model: layer %d units must be > 0 (got %d)", i, spec.Units)
		}
		if spec.Activation == Softmax && i != len(specs)-1 {
			return nil, fmt.Errorf("model: layer %d: softmax is only supported on the output layer", i)
		}
		net.layers = append(net.layers, newDense(prev, spec.Units, spec.Activation, rng))
		prev = spec.Units
	}
	return net, nil
}

// NumClasses returns the width of the output layer.
func (n *Network) NumClasses() int {
	_, out := n.layers[len(n.layers)-1].Dims()
	return out
}

// NumParams returns the count of trainable weights and biases.
func (n *Network) NumParams() int {
	total := 0
	for _, l := range n.layers {
		total += l.numParams()
	}
	return total
}

// String renders a one-line architecture summary such as "4-10(relu)-3(softmax)".
func (n *Network) String() string {
	parts := []string{fmt.Sprint(n.inputSize)}
	for _, l := range n.layers {
		_, out := l.Dims()
		parts = append(parts, fmt.Sprintf("%d(%s)", out, l.Act))
	}
	return strings.Join(parts, "-")
}

// Forward runs a batch (one sample per row) through every layer.
func (n *Network) Forward(x *mat.Dense) *mat.Dense {
	a := x
	for _, l := range n.layers {
		a = l.forward(a)
	}
	return a
}

// Predict returns class probabilities for each input row.
func (n *Network) Predict(inputs [][]float64) ([][]float64, error) {
	x, err := n.toMatrix(inputs)
	if err != nil {
		return nil, err
	}
	probs := n.Forward(x)
	out := make([][]float64, len(inputs))
	for i := range out {
		out[i] = append([]float64(nil), probs.RawRowView(i)...)
	}
	return out, nil
}

// TrainStep executes one optimizer update on the batch.
func (n *Network) TrainStep(batch Batch) (float64, int, error) {
	x, err := n.checkBatch(batch)
	if err != nil {
		return 0, 0, err
	}
	probs := n.Forward(x)
	loss := SparseCategoricalCrossEntropy(probs, batch.Labels)
	correct := CorrectCount(probs, batch.Labels)

	grad := crossEntropyGrad(probs, batch.Labels)
	for i := len(n.layers) - 1; i >= 0; i-- {
		grad = n.layers[i].backward(grad)
	}
	for _, l := range n.layers {
		n.opt.Update(l.W, l.dW)
		n.opt.Update(l.B, l.dB)
	}
	return loss, correct, nil
}

// Evaluate scores the batch without updating weights.
func (n *Network) Evaluate(batch Batch) (float64, int, error) {
	x, err := n.checkBatch(batch)
	if err != nil {
		return 0, 0, err
	}
	probs := n.Forward(x)
	return SparseCategoricalCrossEntropy(probs, batch.Labels), CorrectCount(probs, batch.Labels), nil
}

func (n *Network) checkBatch(batch Batch) (*mat.Dense, error) {
	if len(batch.Inputs) != len(batch.Labels) {
		return nil, fmt.Errorf("model: %d inputs but %d labels", len(batch.Inputs), len(batch.Labels))
	}
	classes := n.NumClasses()
	for i, label := range batch.Labels {
		if label < 0 || label >= classes {
			return nil, fmt.Errorf("model: label %d at row %d out of range [0,%d)", label, i, classes)
		}
	}
	return n.toMatrix(batch.Inputs)
}

func (n *Network) toMatrix(inputs [][]float64) (*mat.Dense, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}
	data := make([]float64, 0, len(inputs)*n.inputSize)
	for i, row := range inputs {
		if len(row) != n.inputSize {
			return nil, fmt.Errorf("model: row %d has %d features, want %d", i, len(row), n.inputSize)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(inputs), n.inputSize, data), nil
}
