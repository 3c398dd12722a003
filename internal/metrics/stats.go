package metrics

import "time"

// Window accumulates loss, accuracy and timing across steps.
type Window struct {
	samples int
	correct int
	lossSum float64
	compute time.Duration
	steps   int
}

// Record adds one batch measurement. loss is the batch mean and is weighted
// by batchSize so the snapshot reports a per-sample mean.
func (w *Window) Record(batchSize, correct int, loss float64, computeTime time.Duration) {
	w.samples += batchSize
	w.correct += correct
	w.lossSum += loss * float64(batchSize)
	w.compute += computeTime
	w.steps++
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{Steps: w.steps, Samples: w.samples}
	if w.samples > 0 {
		snap.Loss = w.lossSum / float64(w.samples)
		snap.Accuracy = float64(w.correct) / float64(w.samples)
	}
	if w.compute > 0 {
		snap.SamplesPerSec = float64(w.samples) / w.compute.Seconds()
	}

	*w = Window{}
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Steps         int
	Samples       int
	Loss          float64
	Accuracy      float64
	SamplesPerSec float64
}
