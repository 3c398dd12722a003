// Package report turns class-probability rows into the console summary
// printed after training.
package report

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
)

const (
	markCorrect = "✓"
	markWrong   = "✗"
)

// Prediction pairs the predicted class with the expected one.
type Prediction struct {
	Name        string
	Expected    string
	Probability float64
}

// Correct reports whether the predicted name matches the expected name.
func (p Prediction) Correct() bool { return p.Name == p.Expected }

// Argmax returns the index of the largest value, the first one on ties, or
// -1 for an empty slice.
func Argmax(v []float64) int {
	if len(v) == 0 {
		return -1
	}
	return floats.MaxIdx(v)
}

// Predictions maps each probability row to a class name and pairs it with
// the expected name at the same position.
func Predictions(probs [][]float64, classNames, expected []string) ([]Prediction, error) {
	if len(probs) != len(expected) {
		return nil, fmt.Errorf("report: %d predictions but %d expected names", len(probs), len(expected))
	}
	out := make([]Prediction, 0, len(probs))
	for i, row := range probs {
		idx := Argmax(row)
		if idx < 0 || idx >= len(classNames) {
			return nil, fmt.Errorf("report: row %d: class index %d has no name", i, idx)
		}
		out = append(out, Prediction{
			Name:        classNames[idx],
			Expected:    expected[i],
			Probability: row[idx],
		})
	}
	return out, nil
}

// FormatLine renders one prediction.
func FormatLine(p Prediction) string {
	mark := markWrong
	if p.Correct() {
		mark = markCorrect
	}
	return fmt.Sprintf("%s Prediction is '%s' (%.1f%%), expected '%s'", mark, p.Name, 100*p.Probability, p.Expected)
}

// Write prints one line per prediction.
func Write(w io.Writer, preds []Prediction) error {
	for _, p := range preds {
		if _, err := fmt.Fprintln(w, FormatLine(p)); err != nil {
			return err
		}
	}
	return nil
}
