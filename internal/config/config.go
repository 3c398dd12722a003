package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Layer describes one dense layer of the classifier.
type Layer struct {
	Units      int    `yaml:"units"`
	Activation string `yaml:"activation"`
}

// Config captures the runtime knobs for a training run.
type Config struct {
	Seed          int64   `yaml:"seed"`
	TestFraction  float64 `yaml:"test_fraction"`
	Repeat        int     `yaml:"repeat"`
	ShuffleBuffer int     `yaml:"shuffle_buffer"`
	BatchSize     int     `yaml:"batch_size"`
	EvalBatchSize int     `yaml:"eval_batch_size"`
	Epochs        int     `yaml:"epochs"`
	Optimizer     string  `yaml:"optimizer"`
	LearningRate  float64 `yaml:"learning_rate"`
	Layers        []Layer `yaml:"layers"`
	LogEvery      int     `yaml:"log_every"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Seed         int64
	Epochs       int
	BatchSize    int
	Optimizer    string
	LearningRate float64
	LogEvery     int
}

// Defaults returns the stock iris run: 80/20 split with seed 42, 20 repeats,
// shuffle window 1000, batches of 32, 10 epochs, 10-10-3 layers.
func Defaults() *Config {
	return &Config{
		Seed:          42,
		TestFraction:  0.2,
		Repeat:        20,
		ShuffleBuffer: 1000,
		BatchSize:     32,
		EvalBatchSize: 1,
		Epochs:        10,
		Optimizer:     "rmsprop",
		Layers: []Layer{
			{Units: 10, Activation: "relu"},
			{Units: 10, Activation: "relu"},
			{Units: 3, Activation: "softmax"},
		},
	}
}

// Load reads a Config from YAML layered over Defaults. An empty path
// returns the defaults without touching the filesystem.
func Load(path string) (*Config, error) {
	if path == "" {
		return Defaults(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := parseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.Optimizer != "" {
		c.Optimizer = o.Optimizer
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return fmt.Errorf("test_fraction must be in (0,1) (got %g)", c.TestFraction)
	}
	if c.Repeat <= 0 {
		return fmt.Errorf("repeat must be > 0 (got %d)", c.Repeat)
	}
	if c.ShuffleBuffer < 0 {
		return fmt.Errorf("shuffle_buffer must be >= 0 (got %d)", c.ShuffleBuffer)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if c.EvalBatchSize <= 0 {
		c.EvalBatchSize = 1
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.LearningRate < 0 {
		return fmt.Errorf("learning_rate must be >= 0 (got %g)", c.LearningRate)
	}
	if len(c.Layers) == 0 {
		return errors.New("at least one layer must be configured")
	}
	last := len(c.Layers) - 1
	for i, l := range c.Layers {
		if l.Units <= 0 {
			return fmt.Errorf("layers[%d].units must be > 0 (got %d)", i, l.Units)
		}
		isSoftmax := strings.EqualFold(strings.TrimSpace(l.Activation), "softmax")
		if i == last && !isSoftmax {
			return fmt.Errorf("output layer activation must be softmax (got %q)", l.Activation)
		}
		if i != last && isSoftmax {
			return fmt.Errorf("layers[%d]: softmax is only supported on the output layer", i)
		}
	}
	if c.LogEvery < 0 {
		c.LogEvery = 0
	}
	return nil
}

func parseYAML(r io.Reader) (*Config, error) {
	cfg := Defaults()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}
