package model

// Batch represents a minibatch of features and labels.
type Batch struct {
	Inputs [][]float64
	Labels []int
}

// Len returns the number of samples in the batch.
func (b Batch) Len() int { return len(b.Inputs) }

// Model defines the training and inference surface used by the trainer.
type Model interface {
	// TrainStep runs one optimizer update and returns the mean loss and the
	// number of correctly classified samples before the update.
	TrainStep(batch Batch) (loss float64, correct int, err error)
	// Evaluate scores a batch without touching the weights.
	Evaluate(batch Batch) (loss float64, correct int, err error)
	// Predict returns one class-probability row per input.
	Predict(inputs [][]float64) ([][]float64, error)
}
