// SPDX-License-Identifier: MIT
// Package: gnnlimit/classifier
//
// trainer.go - epoch/mini-batch SGD loop and accuracy evaluation.
//
// Determinism: batch order is a Fisher–Yates shuffle of the training set per
// epoch, driven by the trainer's RNG (WithSeed/WithRand).

package classifier

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/gnnlimit/core"
	"github.com/katalvlaran/gnnlimit/dataset"
	"github.com/katalvlaran/gnnlimit/logging"
)

const (
	methodFit      = "Fit"
	methodEvaluate = "Evaluate"
)

// Hyperparameters of the training loop.
type Hyperparameters struct {
	LearningRate float64 `yaml:"learning_rate" json:"learning_rate"`
	Epochs       int     `yaml:"epochs" json:"epochs"`
	BatchSize    int     `yaml:"batch_size" json:"batch_size"`
}

// Validate checks lr > 0 (finite), epochs ≥ 1, batch size ≥ 1.
func (h Hyperparameters) Validate() error {
	if !(h.LearningRate > 0) || math.IsInf(h.LearningRate, 0) {
		return fmt.Errorf("learning_rate=%g: %w", h.LearningRate, ErrBadHyperparameter)
	}
	if h.Epochs < 1 {
		return fmt.Errorf("epochs=%d: %w", h.Epochs, ErrBadHyperparameter)
	}
	if h.BatchSize < 1 {
		return fmt.Errorf("batch_size=%d: %w", h.BatchSize, ErrBadHyperparameter)
	}
	return nil
}

// EpochStats summarizes one epoch.
type EpochStats struct {
	Epoch    int
	Loss     float64 // mean of batch losses
	Accuracy float64 // training accuracy measured after the epoch
}

// History is the per-epoch record returned by Fit.
type History []EpochStats

// TrainerOption configures a Trainer.
type TrainerOption func(*Trainer)

// WithSeed seeds the shuffling RNG.
func WithSeed(seed int64) TrainerOption {
	return func(t *Trainer) { t.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand sets the shuffling RNG. Panics on nil.
func WithRand(r *rand.Rand) TrainerOption {
	if r == nil {
		panic("classifier: WithRand(nil)")
	}
	return func(t *Trainer) { t.rng = r }
}

// WithLogger sets the per-epoch logger. Panics on nil.
func WithLogger(l *slog.Logger) TrainerOption {
	if l == nil {
		panic("classifier: WithLogger(nil)")
	}
	return func(t *Trainer) { t.logger = l }
}

// Trainer runs mini-batch SGD on a Trainable model.
type Trainer struct {
	hp     Hyperparameters
	rng    *rand.Rand
	logger *slog.Logger
}

// NewTrainer validates hp and applies options. Without WithSeed/WithRand
// the shuffle uses seed 1.
func NewTrainer(hp Hyperparameters, opts ...TrainerOption) (*Trainer, error) {
	if err := hp.Validate(); err != nil {
		return nil, fmt.Errorf("NewTrainer: %w", err)
	}
	t := &Trainer{
		hp:     hp,
		rng:    rand.New(rand.NewSource(1)),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Fit trains model for hp.Epochs passes over train.
// The model is updated in place; on error it keeps the updates already applied.
func (t *Trainer) Fit(model Trainable, train []*core.Graph) (History, error) {
	if len(train) == 0 {
		return nil, fmt.Errorf("%s: %w", methodFit, ErrEmptyBatch)
	}

	history := make(History, 0, t.hp.Epochs)
	for epoch := 1; epoch <= t.hp.Epochs; epoch++ {
		batches, err := dataset.Batches(dataset.Shuffle(train, t.rng), t.hp.BatchSize)
		if err != nil {
			return history, fmt.Errorf("%s: %w", methodFit, err)
		}

		losses := make([]float64, 0, len(batches))
		for _, graphs := range batches {
			b, err := NewBatch(graphs)
			if err != nil {
				return history, fmt.Errorf("%s: epoch %d: %w", methodFit, epoch, err)
			}
			loss, err := model.Step(b, t.hp.LearningRate)
			if err != nil {
				return history, fmt.Errorf("%s: epoch %d: %w", methodFit, epoch, err)
			}
			losses = append(losses, loss)
		}

		acc, err := Evaluate(model, train, t.hp.BatchSize)
		if err != nil {
			return history, fmt.Errorf("%s: epoch %d: %w", methodFit, epoch, err)
		}
		stats := EpochStats{Epoch: epoch, Loss: floats.Sum(losses) / float64(len(losses)), Accuracy: acc}
		history = append(history, stats)
		t.logger.Info("epoch done", "epoch", epoch, "loss", stats.Loss, "train_acc", stats.Accuracy)
	}

	return history, nil
}

// Evaluate returns the fraction of graphs whose argmax prediction equals
// their label. Every graph must be labeled.
func Evaluate(clf Classifier, graphs []*core.Graph, batchSize int) (float64, error) {
	if len(graphs) == 0 {
		return 0, fmt.Errorf("%s: %w", methodEvaluate, ErrEmptyBatch)
	}
	batches, err := dataset.Batches(graphs, batchSize)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", methodEvaluate, err)
	}

	correct := 0
	for _, chunk := range batches {
		b, err := NewBatch(chunk)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", methodEvaluate, err)
		}
		probs, err := clf.Predict(b)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", methodEvaluate, err)
		}
		for g, y := range b.Labels {
			if y == Unlabeled {
				return 0, fmt.Errorf("%s: %w", methodEvaluate, ErrUnlabeled)
			}
			if floats.MaxIdx(probs[g]) == y {
				correct++
			}
		}
	}

	return float64(correct) / float64(len(graphs)), nil
}
