package main

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"irisnet/internal/config"
	"irisnet/internal/dataset"
	"irisnet/internal/report"
)

func TestBuildNetworkFromDefaults(t *testing.T) {
	net, err := buildNetwork(config.Defaults())
	if err != nil {
		t.Fatalf("buildNetwork: %v", err)
	}
	if got := net.String(); got != "4-10(relu)-10(relu)-3(softmax)" {
		t.Fatalf("unexpected network %q", got)
	}
}

func TestBuildNetworkRejectsUnknownOptimizer(t *testing.T) {
	cfg := config.Defaults()
	cfg.Optimizer = "adagrad"
	if _, err := buildNetwork(cfg); err == nil {
		t.Fatal("expected error for unknown optimizer")
	}
}

func TestLiteralInputsPrintOneLineEach(t *testing.T) {
	table, err := dataset.LoadIris()
	if err != nil {
		t.Fatalf("LoadIris: %v", err)
	}
	net, err := buildNetwork(config.Defaults())
	if err != nil {
		t.Fatalf("buildNetwork: %v", err)
	}
	probs, err := net.Predict(predictInputs)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	preds, err := report.Predictions(probs, table.ClassNames, predictExpected)
	if err != nil {
		t.Fatalf("Predictions: %v", err)
	}
	var buf bytes.Buffer
	if err := report.Write(&buf, preds); err != nil {
		t.Fatalf("Write: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(predictInputs) {
		t.Fatalf("expected %d lines, got %d: %q", len(predictInputs), len(lines), buf.String())
	}
	line := regexp.MustCompile(`^[✓✗] Prediction is '(\w+)' \((\d+\.\d)%\), expected '(\w+)'$`)
	for i, l := range lines {
		m := line.FindStringSubmatch(l)
		if m == nil {
			t.Fatalf("line %d malformed: %q", i, l)
		}
		known := false
		for _, name := range table.ClassNames {
			if m[1] == name {
				known = true
			}
		}
		if !known {
			t.Fatalf("line %d: unknown class %q", i, m[1])
		}
		pct, err := strconv.ParseFloat(m[2], 64)
		if err != nil || pct < 0 || pct > 100 {
			t.Fatalf("line %d: percentage out of range %q", i, m[2])
		}
		if m[3] != predictExpected[i] {
			t.Fatalf("line %d: expected name %q, got %q", i, predictExpected[i], m[3])
		}
	}
}
