package model

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Activation selects the non-linearity applied after a dense transform.
type Activation int

const (
	Linear Activation = iota
	ReLU
	Softmax
)

func (a Activation) String() string {
	switch a {
	case Linear:
		return "linear"
	case ReLU:
		return "relu"
	case Softmax:
		return "softmax"
	default:
		return fmt.Sprintf("activation(%d)", int(a))
	}
}

// ParseActivation maps a config name onto an Activation.
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return Linear, nil
	case "relu":
		return ReLU, nil
	case "softmax":
		return Softmax, nil
	default:
		return Linear, fmt.Errorf("unknown activation %q", name)
	}
}

// apply writes the activation of z into a new matrix.
func (a Activation) apply(z *mat.Dense) *mat.Dense {
	out := mat.DenseCopyOf(z)
	switch a {
	case ReLU:
		out.Apply(func(_, _ int, v float64) float64 {
			return math.Max(0, v)
		}, out)
	case Softmax:
		rows, _ := out.Dims()
		for i := 0; i < rows; i++ {
			softmaxInPlace(out.RawRowView(i))
		}
	}
	return out
}

// backward turns the gradient w.r.t. the activation output into the
// gradient w.r.t. the pre-activation. Softmax is handled together with the
// loss and passes dA through unchanged.
func (a Activation) backward(z, dA *mat.Dense) *mat.Dense {
	if a != ReLU {
		return dA
	}
	dZ := mat.DenseCopyOf(dA)
	dZ.Apply(func(i, j int, v float64) float64 {
		if z.At(i, j) <= 0 {
			return 0
		}
		return v
	}, dZ)
	return dZ
}

func softmaxInPlace(row []float64) {
	maxLogit := floats.Max(row)
	for i, v := range row {
		row[i] = math.Exp(v - maxLogit)
	}
	floats.Scale(1/floats.Sum(row), row)
}
