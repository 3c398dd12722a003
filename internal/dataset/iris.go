package dataset

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

//go:embed iris.csv
var irisCSV []byte

// NumFeatures is the width of every iris sample.
const NumFeatures = 4

// Sample represents one labeled row of the table.
type Sample struct {
	Features []float64
	Label    int
}

// Table is a labeled dataset together with its name tables.
type Table struct {
	Samples      []Sample
	FeatureNames []string
	ClassNames   []string
}

// ErrEmptyTable is returned when a table has no rows.
var ErrEmptyTable = errors.New("dataset: table has no samples")

var irisFeatureNames = []string{
	"sepal length (cm)",
	"sepal width (cm)",
	"petal length (cm)",
	"petal width (cm)",
}

var irisClassNames = []string{"setosa", "versicolor", "virginica"}

// LoadIris returns the bundled iris table: 150 samples, 4 features, 3 classes.
func LoadIris() (*Table, error) {
	samples, err := parseTable(bytes.NewReader(irisCSV), NumFeatures, len(irisClassNames))
	if err != nil {
		return nil, fmt.Errorf("load iris: %w", err)
	}
	return &Table{
		Samples:      samples,
		FeatureNames: append([]string(nil), irisFeatureNames...),
		ClassNames:   append([]string(nil), irisClassNames...),
	}, nil
}

// parseTable reads rows of numFeatures floats followed by an integer label.
func parseTable(r io.Reader, numFeatures, numClasses int) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFeatures + 1
	cr.ReuseRecord = true

	var samples []Sample
	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		features := make([]float64, numFeatures)
		for i := 0; i < numFeatures; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: feature %d: %w", line, i, err)
			}
			features[i] = v
		}
		label, err := strconv.Atoi(strings.TrimSpace(record[numFeatures]))
		if err != nil {
			return nil, fmt.Errorf("line %d: label: %w", line, err)
		}
		if label < 0 || label >= numClasses {
			return nil, fmt.Errorf("line %d: label %d out of range [0,%d)", line, label, numClasses)
		}
		samples = append(samples, Sample{Features: features, Label: label})
	}
	if len(samples) == 0 {
		return nil, ErrEmptyTable
	}
	return samples, nil
}
