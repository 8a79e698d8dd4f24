// SPDX-License-Identifier: MIT
// Package: gnnlimit/probe
//
// sweep.go - Sweep: sizes × samples → per-size probability aggregates.
//
// Determinism:
//   - Sizes are processed in request order; samples in generation order.
//   - With a Cache, sample i at size n is the cache's i-th graph for n.
//   - Without one, graphs come from a single generator seeded by
//     WithSeed/WithRand (default seed 1).
//
// Complexity: Σ_n SamplesPerSize·(O(n·d + |E_n|) + cost(Predict)).

package probe

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/gnnlimit/bfs"
	"github.com/katalvlaran/gnnlimit/builder"
	"github.com/katalvlaran/gnnlimit/classifier"
	"github.com/katalvlaran/gnnlimit/core"
	"github.com/katalvlaran/gnnlimit/dataset"
	"github.com/katalvlaran/gnnlimit/label"
	"github.com/katalvlaran/gnnlimit/logging"
)

const methodSweep = "Sweep"

// Option configures Sweep.
type Option func(*sweepConfig)

type sweepConfig struct {
	rng       *rand.Rand
	cache     *Cache
	batchSize int
	logger    *slog.Logger
}

// WithSeed seeds graph generation.
func WithSeed(seed int64) Option {
	return func(c *sweepConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand sets the generation RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("probe: WithRand(nil)")
	}
	return func(c *sweepConfig) { c.rng = r }
}

// WithCache makes Sweep read graphs from cache instead of generating them.
// Panics on nil.
func WithCache(cache *Cache) Option {
	if cache == nil {
		panic("probe: WithCache(nil)")
	}
	return func(c *sweepConfig) { c.cache = cache }
}

// WithBatchSize groups up to size samples into one Predict call (default 1).
// Panics on size < 1.
func WithBatchSize(size int) Option {
	if size < 1 {
		panic(fmt.Sprintf("probe: WithBatchSize(%d)", size))
	}
	return func(c *sweepConfig) { c.batchSize = size }
}

// WithLogger sets the per-size progress logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("probe: WithLogger(nil)")
	}
	return func(c *sweepConfig) { c.logger = l }
}

// Sweep probes clf over spec.Sizes. On error no partial result is returned.
func Sweep(clf classifier.Classifier, spec SweepSpec, opts ...Option) (*SizeSweepResult, error) {
	if clf == nil {
		return nil, fmt.Errorf("%s: %w", methodSweep, ErrNilModel)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodSweep, err)
	}
	k := clf.NumClasses()
	if spec.Mode != label.ModeUnset {
		want, err := label.NumClasses(spec.Mode, spec.Split)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", methodSweep, err)
		}
		if want != k {
			return nil, fmt.Errorf("%s: mode %v has %d classes, classifier %d: %w", methodSweep, spec.Mode, want, k, ErrClassCount)
		}
	}

	cfg := sweepConfig{batchSize: 1, logger: logging.Discard()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(1))
	}

	s := &sweeper{
		clf:      clf,
		spec:     spec,
		cfg:      cfg,
		k:        k,
		gen:      builder.NewGenerator(builder.WithRand(cfg.rng)),
		assigner: label.NewAssigner(),
	}

	res := &SizeSweepResult{NumClasses: k, Points: make([]SizePoint, 0, len(spec.Sizes))}
	for _, n := range spec.Sizes {
		pt, err := s.point(n)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", methodSweep, err)
		}
		cfg.logger.Debug("probe size done", "n", n, "p", pt.Prob, "mean", pt.Mean)
		res.Points = append(res.Points, pt)
	}

	return res, nil
}

type sweeper struct {
	clf      classifier.Classifier
	spec     SweepSpec
	cfg      sweepConfig
	k        int
	gen      *builder.Generator
	assigner *label.Assigner
}

// point probes one size.
func (s *sweeper) point(n int) (SizePoint, error) {
	graphs, err := s.graphs(n)
	if err != nil {
		return SizePoint{}, err
	}

	pt := SizePoint{N: n, Prob: s.spec.Prob.Prob(n), Samples: make([][]float64, 0, len(graphs))}
	batches, err := dataset.Batches(graphs, s.cfg.batchSize)
	if err != nil {
		return SizePoint{}, err
	}
	for _, chunk := range batches {
		b, err := classifier.NewBatch(chunk)
		if err != nil {
			return SizePoint{}, fmt.Errorf("n=%d: %w", n, err)
		}
		probs, err := s.clf.Predict(b)
		if err != nil {
			return SizePoint{}, fmt.Errorf("n=%d: %w", n, err)
		}
		if len(probs) != len(chunk) {
			return SizePoint{}, fmt.Errorf("n=%d: %d outputs for %d graphs: %w", n, len(probs), len(chunk), ErrBadDistribution)
		}
		for _, v := range probs {
			if err = checkDistribution(v, s.k); err != nil {
				return SizePoint{}, fmt.Errorf("n=%d: %w", n, err)
			}
			pt.Samples = append(pt.Samples, append([]float64(nil), v...))
		}
	}
	pt.Mean, pt.Std = aggregate(pt.Samples, s.k)
	for _, g := range graphs {
		pt.GiantFraction += float64(bfs.LargestComponent(g)) / float64(n)
	}
	pt.GiantFraction /= float64(len(graphs))

	if s.spec.Mode != label.ModeUnset {
		if pt.LabelFreq, err = s.labelFreq(graphs); err != nil {
			return SizePoint{}, fmt.Errorf("n=%d: %w", n, err)
		}
	}

	return pt, nil
}

// graphs returns SamplesPerSize graphs of size n, from the cache when one
// is configured.
func (s *sweeper) graphs(n int) ([]*core.Graph, error) {
	if s.cfg.cache != nil {
		return s.cfg.cache.Take(n, s.spec.SamplesPerSize)
	}
	p := s.spec.Prob.Prob(n)
	out := make([]*core.Graph, s.spec.SamplesPerSize)
	for i := range out {
		g, err := s.gen.Generate(n, p, s.spec.FeatureDim)
		if err != nil {
			return nil, fmt.Errorf("n=%d: %w", n, err)
		}
		out[i] = g
	}
	return out, nil
}

// labelFreq labels graphs without mutating them and returns class fractions.
func (s *sweeper) labelFreq(graphs []*core.Graph) ([]float64, error) {
	freq := make([]float64, s.k)
	for _, g := range graphs {
		ctx := label.Context{Prob: s.spec.Prob.Prob(g.N()), Split: s.spec.Split, Model: s.spec.Model}
		c, err := s.assigner.Assign(g, s.spec.Mode, ctx)
		if err != nil {
			return nil, err
		}
		freq[c]++
	}
	for c := range freq {
		freq[c] /= float64(len(graphs))
	}
	return freq, nil
}

// checkDistribution verifies v has k non-negative finite entries summing to 1.
func checkDistribution(v []float64, k int) error {
	if len(v) != k {
		return fmt.Errorf("len=%d, want %d: %w", len(v), k, ErrBadDistribution)
	}
	for i, x := range v {
		if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("entry %d = %g: %w", i, x, ErrBadDistribution)
		}
	}
	if sum := floats.Sum(v); math.Abs(sum-1) > distTol {
		return fmt.Errorf("sum=%g: %w", sum, ErrBadDistribution)
	}
	return nil
}

// aggregate returns the element-wise mean and population std of samples.
// A single sample has zero spread.
func aggregate(samples [][]float64, k int) (mean, std []float64) {
	mean = make([]float64, k)
	std = make([]float64, k)
	if len(samples) == 1 {
		copy(mean, samples[0])
		return mean, std
	}
	col := make([]float64, len(samples))
	for c := 0; c < k; c++ {
		for i, v := range samples {
			col[i] = v[c]
		}
		mean[c], std[c] = stat.PopMeanStdDev(col, nil)
	}
	return mean, std
}
