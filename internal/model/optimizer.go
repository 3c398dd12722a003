package model

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Optimizer applies a gradient to a parameter in place.
type Optimizer interface {
	Update(param, grad *mat.Dense)
	Name() string
}

// NewOptimizer builds an optimizer by name. A non-positive learning rate
// selects the optimizer's default.
func NewOptimizer(name string, learningRate float64) (Optimizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rmsprop":
		return NewRMSprop(learningRate), nil
	case "sgd":
		return NewSGD(learningRate), nil
	default:
		return nil, fmt.Errorf("unknown optimizer %q", name)
	}
}

// SGD is plain gradient descent.
type SGD struct {
	LearningRate float64
}

// NewSGD returns SGD with lr, defaulting to 0.01.
func NewSGD(lr float64) *SGD {
	if lr <= 0 {
		lr = 0.01
	}
	return &SGD{LearningRate: lr}
}

func (o *SGD) Name() string { return "sgd" }

func (o *SGD) Update(param, grad *mat.Dense) {
	param.Apply(func(i, j int, v float64) float64 {
		return v - o.LearningRate*grad.At(i, j)
	}, param)
}

// RMSprop scales each step by a running average of squared gradients.
type RMSprop struct {
	LearningRate float64
	Rho          float64
	Epsilon      float64

	cache map[*mat.Dense]*mat.Dense
}

// NewRMSprop returns RMSprop with rho 0.9, epsilon 1e-7 and lr defaulting
// to 0.001.
func NewRMSprop(lr float64) *RMSprop {
	if lr <= 0 {
		lr = 0.001
	}
	return &RMSprop{
		LearningRate: lr,
		Rho:          0.9,
		Epsilon:      1e-7,
		cache:        make(map[*mat.Dense]*mat.Dense),
	}
}

func (o *RMSprop) Name() string { return "rmsprop" }

func (o *RMSprop) Update(param, grad *mat.Dense) {
	ms, ok := o.cache[param]
	if !ok {
		r, c := param.Dims()
		ms = mat.NewDense(r, c, nil)
		o.cache[param] = ms
	}
	ms.Apply(func(i, j int, v float64) float64 {
		g := grad.At(i, j)
		return o.Rho*v + (1-o.Rho)*g*g
	}, ms)
	param.Apply(func(i, j int, v float64) float64 {
		return v - o.LearningRate*grad.At(i, j)/(math.Sqrt(ms.At(i, j))+o.Epsilon)
	}, param)
}
