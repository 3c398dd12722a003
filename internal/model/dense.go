package model

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LayerSpec describes one fully-connected layer.
type LayerSpec struct {
	Units      int
	Activation Activation
}

// Dense is a fully-connected layer computing act(x·W + b).
type Dense struct {
	W   *mat.Dense // in × out
	B   *mat.Dense // 1 × out
	Act Activation

	x *mat.Dense
	z *mat.Dense

	dW *mat.Dense
	dB *mat.Dense
}

// newDense builds a layer with Glorot-uniform weights and zero bias.
func newDense(in, out int, act Activation, rng *rand.Rand) *Dense {
	limit := math.Sqrt(6 / float64(in+out))
	w := make([]float64, in*out)
	for i := range w {
		w[i] = (rng.Float64()*2 - 1) * limit
	}
	return &Dense{
		W:   mat.NewDense(in, out, w),
		B:   mat.NewDense(1, out, nil),
		Act: act,
	}
}

// Dims returns the input and output width.
func (d *Dense) Dims() (in, out int) {
	return d.W.Dims()
}

func (d *Dense) forward(x *mat.Dense) *mat.Dense {
	rows, _ := x.Dims()
	_, out := d.W.Dims()
	z := mat.NewDense(rows, out, nil)
	z.Mul(x, d.W)
	bias := d.B.RawRowView(0)
	for i := 0; i < rows; i++ {
		floats.Add(z.RawRowView(i), bias)
	}
	d.x = x
	d.z = z
	return d.Act.apply(z)
}

// backward consumes the gradient w.r.t. this layer's output, stores the
// parameter gradients and returns the gradient w.r.t. its input.
func (d *Dense) backward(dA *mat.Dense) *mat.Dense {
	dZ := d.Act.backward(d.z, dA)

	in, out := d.W.Dims()
	d.dW = mat.NewDense(in, out, nil)
	d.dW.Mul(d.x.T(), dZ)

	d.dB = mat.NewDense(1, out, nil)
	rows, _ := dZ.Dims()
	db := d.dB.RawRowView(0)
	for i := 0; i < rows; i++ {
		floats.Add(db, dZ.RawRowView(i))
	}

	dX := mat.NewDense(rows, in, nil)
	dX.Mul(dZ, d.W.T())
	return dX
}

func (d *Dense) numParams() int {
	in, out := d.W.Dims()
	return in*out + out
}
