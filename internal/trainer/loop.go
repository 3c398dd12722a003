package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"irisnet/internal/dataset"
	"irisnet/internal/metrics"
	"irisnet/internal/model"
)

// errStreamDone signals that a stream closed with no pending samples.
var errStreamDone = errors.New("stream exhausted")

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	Epochs        int
	BatchSize     int
	EvalBatchSize int
	Repeat        int
	ShuffleBuffer int
	LogEvery      int
	Seed          int64
}

// EpochResult holds the metrics of one pass over the training stream.
type EpochResult struct {
	Epoch         int
	Steps         int
	Loss          float64
	Accuracy      float64
	ValLoss       float64
	ValAccuracy   float64
	SamplesPerSec float64
}

// History lists per-epoch results in order.
type History []EpochResult

// Last returns the final epoch, or the zero value for an empty history.
func (h History) Last() EpochResult {
	if len(h) == 0 {
		return EpochResult{}
	}
	return h[len(h)-1]
}

// Fit trains mdl for cfg.Epochs passes over the repeated, shuffled training
// stream, validating on test after each pass when test is non-empty.
func Fit(ctx context.Context, mdl model.Model, train, test []dataset.Sample, cfg RunConfig) (History, error) {
	if cfg.Epochs <= 0 {
		return nil, errors.New("trainer: epochs must be > 0")
	}
	if cfg.BatchSize <= 0 {
		return nil, errors.New("trainer: batch size must be > 0")
	}
	if cfg.EvalBatchSize <= 0 {
		cfg.EvalBatchSize = 1
	}
	if len(train) == 0 {
		return nil, errors.New("trainer: no training samples")
	}

	history := make(History, 0, cfg.Epochs)
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		res, err := runEpoch(ctx, mdl, train, cfg, epoch)
		if err != nil {
			return history, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		if len(test) > 0 {
			val, err := Evaluate(ctx, mdl, test, cfg.EvalBatchSize)
			if err != nil {
				return history, fmt.Errorf("epoch %d: validate: %w", epoch, err)
			}
			res.ValLoss = val.Loss
			res.ValAccuracy = val.Accuracy
		}
		history = append(history, res)
		log.Printf("epoch=%d/%d steps=%d loss=%.4f accuracy=%.4f val_loss=%.4f val_accuracy=%.4f samples_per_sec=%.1f",
			epoch, cfg.Epochs,
			res.Steps,
			res.Loss,
			res.Accuracy,
			res.ValLoss,
			res.ValAccuracy,
			res.SamplesPerSec,
		)
	}
	return history, nil
}

func runEpoch(ctx context.Context, mdl model.Model, train []dataset.Sample, cfg RunConfig, epoch int) (EpochResult, error) {
	epochCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := dataset.StartStream(epochCtx, train, dataset.StreamOptions{
		Repeat:        cfg.Repeat,
		ShuffleBuffer: cfg.ShuffleBuffer,
		Seed:          cfg.Seed + int64(epoch),
	})
	if err != nil {
		return EpochResult{}, err
	}

	var epochWindow, logWindow metrics.Window
	for step := 1; ; step++ {
		batch, err := nextBatch(epochCtx, stream, cfg.BatchSize)
		if errors.Is(err, errStreamDone) {
			break
		}
		if err != nil {
			return EpochResult{}, err
		}

		start := time.Now()
		loss, correct, err := mdl.TrainStep(batch)
		if err != nil {
			return EpochResult{}, fmt.Errorf("step %d: %w", step, err)
		}
		elapsed := time.Since(start)

		epochWindow.Record(batch.Len(), correct, loss, elapsed)
		logWindow.Record(batch.Len(), correct, loss, elapsed)

		if cfg.LogEvery > 0 && step%cfg.LogEvery == 0 {
			snap := logWindow.Snapshot()
			log.Printf("epoch=%d step=%d loss=%.4f accuracy=%.4f samples_per_sec=%.1f",
				epoch, step, snap.Loss, snap.Accuracy, snap.SamplesPerSec)
		}
	}

	snap := epochWindow.Snapshot()
	return EpochResult{
		Epoch:         epoch,
		Steps:         snap.Steps,
		Loss:          snap.Loss,
		Accuracy:      snap.Accuracy,
		SamplesPerSec: snap.SamplesPerSec,
	}, nil
}

// Evaluate scores mdl over samples in input order, batchSize at a time.
func Evaluate(ctx context.Context, mdl model.Model, samples []dataset.Sample, batchSize int) (metrics.Snapshot, error) {
	if batchSize <= 0 {
		batchSize = 1
	}
	evalCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := dataset.StartStream(evalCtx, samples, dataset.StreamOptions{Repeat: 1})
	if err != nil {
		return metrics.Snapshot{}, err
	}
	var window metrics.Window
	for {
		batch, err := nextBatch(evalCtx, stream, batchSize)
		if errors.Is(err, errStreamDone) {
			break
		}
		if err != nil {
			return metrics.Snapshot{}, err
		}
		start := time.Now()
		loss, correct, err := mdl.Evaluate(batch)
		if err != nil {
			return metrics.Snapshot{}, err
		}
		window.Record(batch.Len(), correct, loss, time.Since(start))
	}
	return window.Snapshot(), nil
}

// nextBatch groups up to batchSize samples. A closed stream yields the
// remaining partial batch first and errStreamDone afterwards.
func nextBatch(ctx context.Context, samples <-chan dataset.Sample, batchSize int) (model.Batch, error) {
	inputs := make([][]float64, 0, batchSize)
	labels := make([]int, 0, batchSize)
	for len(inputs) < batchSize {
		select {
		case <-ctx.Done():
			return model.Batch{}, ctx.Err()
		case sample, ok := <-samples:
			if !ok {
				if err := ctx.Err(); err != nil {
					return model.Batch{}, err
				}
				if len(inputs) == 0 {
					return model.Batch{}, errStreamDone
				}
				return model.Batch{Inputs: inputs, Labels: labels}, nil
			}
			inputs = append(inputs, sample.Features)
			labels = append(labels, sample.Label)
		}
	}
	return model.Batch{Inputs: inputs, Labels: labels}, nil
}
