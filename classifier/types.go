// SPDX-License-Identifier: MIT
// Package: gnnlimit/classifier
//
// types.go - interfaces, sentinel errors, persisted parameters.

package classifier

import (
	"errors"

	"github.com/katalvlaran/gnnlimit/core"
)

// Classifier maps a batch of graphs to one class distribution per graph.
// Each returned vector has NumClasses() non-negative entries summing to 1.
// Predict must not mutate the model.
type Classifier interface {
	NumClasses() int
	Predict(b *Batch) ([][]float64, error)
}

// Trainable is a Classifier that can take one gradient step on a labeled batch.
type Trainable interface {
	Classifier
	// Step updates parameters with learning rate lr and returns the mean
	// cross-entropy loss of the batch before the update.
	Step(b *Batch, lr float64) (float64, error)
}

// Sentinel errors. Validation sentinels wrap core.ErrInvalidArgument.
var (
	ErrEmptyBatch         = core.NewInvalid("classifier: empty batch")
	ErrFeatureDimMismatch = core.NewInvalid("classifier: feature dimension mismatch")
	ErrUnlabeled          = core.NewInvalid("classifier: training graph without label")
	ErrLabelRange         = core.NewInvalid("classifier: label outside class range")
	ErrBadHyperparameter  = core.NewInvalid("classifier: bad hyperparameter")
	ErrBadParams          = core.NewInvalid("classifier: bad parameters")

	// ErrNonFinite indicates the loss or a probability became NaN/Inf
	// (learning rate too large).
	ErrNonFinite = errors.New("classifier: non-finite value")
)

// Params is the persisted form of a MeanPool head: W is NumClasses×(3·FeatureDim)
// row-major, B has NumClasses entries.
type Params struct {
	FeatureDim int       `msgpack:"feature_dim"`
	NumClasses int       `msgpack:"num_classes"`
	W          []float64 `msgpack:"w"`
	B          []float64 `msgpack:"b"`
}
