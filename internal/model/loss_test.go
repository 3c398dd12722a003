package model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestSparseCategoricalCrossEntropy(t *testing.T) {
	probs := mat.NewDense(2, 3, []float64{
		0.9, 0.05, 0.05,
		0.2, 0.2, 0.6,
	})
	got := SparseCategoricalCrossEntropy(probs, []int{0, 2})
	want := -(math.Log(0.9) + math.Log(0.6)) / 2
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %f, got %f", want, got)
	}
	if c := CorrectCount(probs, []int{0, 1}); c != 1 {
		t.Fatalf("expected 1 correct, got %d", c)
	}
}

func TestCrossEntropyClampsZeroProbability(t *testing.T) {
	probs := mat.NewDense(1, 3, []float64{1, 0, 0})
	got := SparseCategoricalCrossEntropy(probs, []int{1})
	if math.IsInf(got, 0) || math.Abs(got+math.Log(probEpsilon)) > 1e-12 {
		t.Fatalf("expected clamped loss, got %f", got)
	}
}

func TestSoftmaxStable(t *testing.T) {
	row := []float64{1000, 1000, 1000}
	softmaxInPlace(row)
	for _, v := range row {
		if math.Abs(v-1.0/3) > 1e-12 {
			t.Fatalf("unexpected softmax %v", row)
		}
	}
}

func TestParseActivationAndOptimizer(t *testing.T) {
	if a, err := ParseActivation("ReLU"); err != nil || a != ReLU {
		t.Fatalf("ParseActivation: %v %v", a, err)
	}
	if _, err := ParseActivation("tanh"); err == nil {
		t.Fatal("expected error for unknown activation")
	}
	opt, err := NewOptimizer("", 0)
	if err != nil || opt.Name() != "rmsprop" {
		t.Fatalf("expected default rmsprop, got %v %v", opt, err)
	}
	if _, err := NewOptimizer("adam", 0); err == nil {
		t.Fatal("expected error for unknown optimizer")
	}
}
