package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/klauspost/cpuid/v2"

	"irisnet/internal/config"
	"irisnet/internal/dataset"
	"irisnet/internal/model"
	"irisnet/internal/report"
	"irisnet/internal/trainer"
)

var (
	predictInputs = [][]float64{
		{5.1, 3.3, 1.7, 0.5},
		{5.9, 3.0, 4.2, 1.5},
		{6.9, 3.1, 5.4, 2.1},
	}
	predictExpected = []string{"setosa", "versicolor", "virginica"}
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (defaults are built in)")
	epochs := flag.Int("epochs", 0, "Number of passes over the training stream")
	batchSize := flag.Int("batch-size", 0, "Training batch size")
	seed := flag.Int64("seed", 0, "Seed for the split, weight init and shuffling")
	optimizer := flag.String("optimizer", "", "Optimizer: rmsprop or sgd")
	learningRate := flag.Float64("learning-rate", 0, "Optimizer learning rate")
	logEvery := flag.Int("log-every", 0, "Log every N training steps")

	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cfg.ApplyOverrides(config.Overrides{
		Seed:         *seed,
		Epochs:       *epochs,
		BatchSize:    *batchSize,
		Optimizer:    *optimizer,
		LearningRate: *learningRate,
		LogEvery:     *logEvery,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	log.Printf("cpu=%q logical_cores=%d avx2=%t", cpuid.CPU.BrandName, cpuid.CPU.LogicalCores, cpuid.CPU.Supports(cpuid.AVX2))

	table, err := dataset.LoadIris()
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}
	train, test, err := dataset.Split(table.Samples, cfg.TestFraction, cfg.Seed)
	if err != nil {
		log.Fatalf("split dataset: %v", err)
	}
	log.Printf("samples=%d train=%d test=%d classes=%d", len(table.Samples), len(train), len(test), len(table.ClassNames))
	log.Printf("features=%q", table.FeatureNames)

	net, err := buildNetwork(cfg)
	if err != nil {
		log.Fatalf("build network: %v", err)
	}
	log.Printf("network=%s params=%d optimizer=%s", net, net.NumParams(), cfg.Optimizer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCfg := trainer.RunConfig{
		Epochs:        cfg.Epochs,
		BatchSize:     cfg.BatchSize,
		EvalBatchSize: cfg.EvalBatchSize,
		Repeat:        cfg.Repeat,
		ShuffleBuffer: cfg.ShuffleBuffer,
		LogEvery:      cfg.LogEvery,
		Seed:          cfg.Seed,
	}

	if _, err := trainer.Fit(ctx, net, train, test, runCfg); err != nil {
		log.Fatalf("training failed: %v", err)
	}

	probs, err := net.Predict(predictInputs)
	if err != nil {
		log.Fatalf("predict: %v", err)
	}
	preds, err := report.Predictions(probs, table.ClassNames, predictExpected)
	if err != nil {
		log.Fatalf("report: %v", err)
	}
	if err := report.Write(os.Stdout, preds); err != nil {
		log.Fatalf("write report: %v", err)
	}
}

func buildNetwork(cfg *config.Config) (*model.Network, error) {
	opt, err := model.NewOptimizer(cfg.Optimizer, cfg.LearningRate)
	if err != nil {
		return nil, err
	}
	specs := make([]model.LayerSpec, 0, len(cfg.Layers))
	for _, l := range cfg.Layers {
		act, err := model.ParseActivation(l.Activation)
		if err != nil {
			return nil, err
		}
		specs = append(specs, model.LayerSpec{Units: l.Units, Activation: act})
	}
	return model.NewNetwork(dataset.NumFeatures, specs, opt, cfg.Seed)
}
