package report

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

var classNames = []string{"setosa", "versicolor", "virginica"}

func TestArgmax(t *testing.T) {
	if got := Argmax([]float64{0.9, 0.05, 0.05}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := Argmax([]float64{0.2, 0.4, 0.4}); got != 1 {
		t.Fatalf("expected first max 1, got %d", got)
	}
	if got := Argmax(nil); got != -1 {
		t.Fatalf("expected -1 for empty, got %d", got)
	}
}

func TestFormatLine(t *testing.T) {
	got := FormatLine(Prediction{Name: "setosa", Expected: "setosa", Probability: 0.9123})
	if want := "✓ Prediction is 'setosa' (91.2%), expected 'setosa'"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	got = FormatLine(Prediction{Name: "virginica", Expected: "versicolor", Probability: 0.5})
	if want := "✗ Prediction is 'virginica' (50.0%), expected 'versicolor'"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWriteOneLinePerSample(t *testing.T) {
	probs := [][]float64{
		{0.9, 0.05, 0.05},
		{0.1, 0.7, 0.2},
		{0.3, 0.4, 0.3},
	}
	preds, err := Predictions(probs, classNames, []string{"setosa", "versicolor", "virginica"})
	if err != nil {
		t.Fatalf("Predictions: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, preds); err != nil {
		t.Fatalf("Write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	pct := regexp.MustCompile(`\((\d+\.\d)%\)`)
	for i, line := range lines {
		m := pct.FindStringSubmatch(line)
		if m == nil {
			t.Fatalf("line %d has no percentage: %q", i, line)
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || v < 0 || v > 100 {
			t.Fatalf("line %d: percentage out of range: %q", i, m[1])
		}
		known := false
		for _, name := range classNames {
			if strings.Contains(line, "'"+name+"'") {
				known = true
			}
		}
		if !known {
			t.Fatalf("line %d names no known class: %q", i, line)
		}
	}
	if !strings.HasPrefix(lines[2], "✗ Prediction is 'versicolor'") {
		t.Fatalf("unexpected third line %q", lines[2])
	}
}

func TestPredictionsRejectsMismatch(t *testing.T) {
	if _, err := Predictions([][]float64{{1, 0, 0}}, classNames, nil); err == nil {
		t.Fatal("expected length mismatch error")
	}
	if _, err := Predictions([][]float64{{0, 0, 0, 1}}, classNames, []string{"setosa"}); err == nil {
		t.Fatal("expected missing class name error")
	}
}
