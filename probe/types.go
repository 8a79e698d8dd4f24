// SPDX-License-Identifier: MIT
// Package: gnnlimit/probe
//
// types.go - sweep request, result records and sentinel errors.

package probe

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gnnlimit/builder"
	"github.com/katalvlaran/gnnlimit/core"
	"github.com/katalvlaran/gnnlimit/dataset"
	"github.com/katalvlaran/gnnlimit/label"
)

// distTol is the allowed deviation of a probability vector's sum from 1.
const distTol = 1e-6

// Sentinel errors.
var (
	ErrBadSizes   = core.NewInvalid("probe: sizes must be non-empty and ≥ 1")
	ErrBadSamples = core.NewInvalid("probe: samples per size must be ≥ 1")
	ErrNilModel   = core.NewInvalid("probe: nil classifier")
	ErrClassCount = core.NewInvalid("probe: classifier class count does not match mode")

	// ErrMissingCacheEntry reports a size absent from the cache, or present
	// with fewer graphs than requested.
	ErrMissingCacheEntry = errors.New("probe: missing cache entry")
	// ErrBadDistribution reports a classifier output that is not a
	// probability vector.
	ErrBadDistribution = errors.New("probe: classifier output is not a distribution")
)

// SweepSpec describes one sweep.
type SweepSpec struct {
	// Sizes are probed in this order; duplicates are allowed.
	Sizes          []int
	SamplesPerSize int
	FeatureDim     int
	Prob           dataset.Policy
	// Mode, when set, labels every sampled graph so each point also carries
	// the empirical label frequencies. ModeUnset skips labeling.
	Mode  label.Mode
	Split *label.Split
	Model label.DegreeSumModel
}

// Validate checks the request before any graph is sampled.
func (s SweepSpec) Validate() error {
	if len(s.Sizes) == 0 {
		return ErrBadSizes
	}
	for _, n := range s.Sizes {
		if n < 1 {
			return fmt.Errorf("size %d: %w", n, ErrBadSizes)
		}
	}
	if s.SamplesPerSize < 1 {
		return fmt.Errorf("samples=%d: %w", s.SamplesPerSize, ErrBadSamples)
	}
	if s.FeatureDim < 1 {
		return fmt.Errorf("feature_dim=%d: %w", s.FeatureDim, builder.ErrBadFeatureDim)
	}
	if err := s.Prob.Validate(); err != nil {
		return err
	}
	if s.Mode != label.ModeUnset && !s.Mode.Valid() {
		return fmt.Errorf("mode %d: %w", int(s.Mode), label.ErrUnknownMode)
	}
	if s.Split != nil {
		if err := s.Split.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SizePoint is the aggregate for one probed size.
type SizePoint struct {
	N       int         `msgpack:"n" json:"n"`
	Prob    float64     `msgpack:"p" json:"p"`
	Samples [][]float64 `msgpack:"samples" json:"samples"`
	Mean    []float64   `msgpack:"mean" json:"mean"`
	Std     []float64   `msgpack:"std" json:"std"`

	// GiantFraction is the mean share of vertices in the largest connected
	// component of the sampled graphs.
	GiantFraction float64   `msgpack:"giant_fraction" json:"giant_fraction"`
	// LabelFreq is the fraction of sampled graphs per class; nil when the
	// sweep ran without a label mode.
	LabelFreq     []float64 `msgpack:"label_freq,omitempty" json:"label_freq,omitempty"`
}

// SizeSweepResult holds one point per requested size, in request order.
type SizeSweepResult struct {
	NumClasses int         `msgpack:"num_classes" json:"num_classes"`
	Points     []SizePoint `msgpack:"points" json:"points"`
}

// Sizes lists the probed sizes in order.
func (r *SizeSweepResult) Sizes() []int {
	out := make([]int, len(r.Points))
	for i, pt := range r.Points {
		out[i] = pt.N
	}
	return out
}

// Means returns the len(Points) × NumClasses matrix of mean vectors.
func (r *SizeSweepResult) Means() [][]float64 {
	out := make([][]float64, len(r.Points))
	for i, pt := range r.Points {
		out[i] = pt.Mean
	}
	return out
}
