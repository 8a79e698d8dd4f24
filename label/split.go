// SPDX-License-Identifier: MIT
// Package: gnnlimit/label
//
// split.go - quantile cut points on the degree-sum distribution.
//
// Search contract:
//   - Candidates are scanned upward; the first k with CDF(k) ≥ target is
//     compared against k-1 and the numerically closer one is kept.
//   - Ties (|CDF(k-1)-t| == |CDF(k)-t|) keep k, the larger candidate.
//   - The scan may start several standard deviations below the mean, but only
//     when CDF(start) < target, so the result equals a scan from 0.
//
// Complexity: O(width of the scanned range) CDF evaluations, i.e. roughly
// O(σ) = O(sqrt(N·p·(1-p))) after the jump-start.

package label

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/gnnlimit/core"
)

const (
	methodBinomialSplit = "BinomialSplit"
	// scanStartSigmas is how far below the mean the upward scan may begin.
	scanStartSigmas = 12.0
)

// Sentinel errors for split configuration.
var (
	// ErrBadSplit indicates thresholds outside 0 < q1 < q2 < 1.
	ErrBadSplit = core.NewInvalid("label: split thresholds must satisfy 0<q1<q2<1")
	// ErrMissingProbability indicates average-degree labeling without p.
	ErrMissingProbability = core.NewInvalid("label: edge probability required")
	// ErrBadProbability indicates p outside (0,1].
	ErrBadProbability = core.NewInvalid("label: edge probability out of range")
	// ErrBadSize indicates n < 1.
	ErrBadSize = core.NewInvalid("label: graph size must be positive")
	// ErrUnknownModel indicates an unrecognized degree-sum model name.
	ErrUnknownModel = core.NewInvalid("label: unknown degree-sum model")
)

// Split holds the two cumulative-probability targets of the 3-class rule.
type Split struct {
	Q1 float64 `yaml:"q1" json:"q1" msgpack:"q1"`
	Q2 float64 `yaml:"q2" json:"q2" msgpack:"q2"`
}

// Validate checks 0 < Q1 < Q2 < 1.
func (s Split) Validate() error {
	if !(s.Q1 > 0 && s.Q1 < s.Q2 && s.Q2 < 1) {
		return fmt.Errorf("split (%g,%g): %w", s.Q1, s.Q2, ErrBadSplit)
	}
	return nil
}

// DegreeSumModel selects the distribution the cut points are computed on.
type DegreeSumModel int

const (
	// SumOfPairs: DegreeSum = 2·Binomial(n(n-1)/2, p), the exact G(n,p) law.
	SumOfPairs DegreeSumModel = iota
	// OrderedPairs: DegreeSum ~ Binomial(n(n-1), p), one trial per ordered pair.
	OrderedPairs
)

const (
	sumOfPairsName   = "sum_of_pairs"
	orderedPairsName = "ordered_pairs"
)

// String names the model for logs and configuration.
func (m DegreeSumModel) String() string {
	if m == OrderedPairs {
		return orderedPairsName
	}
	return sumOfPairsName
}

// ParseDegreeSumModel maps "sum_of_pairs" (or "") and "ordered_pairs" to a model.
func ParseDegreeSumModel(s string) (DegreeSumModel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", sumOfPairsName:
		return SumOfPairs, nil
	case orderedPairsName:
		return OrderedPairs, nil
	default:
		return SumOfPairs, fmt.Errorf("ParseDegreeSumModel: %q: %w", s, ErrUnknownModel)
	}
}

// Cuts are the degree-sum cut points (c1 ≤ c2) of the 3-class rule.
type Cuts struct {
	C1 int
	C2 int
}

// AverageDegree converts the cut points to the average-degree scale (c/n).
func (c Cuts) AverageDegree(n int) (float64, float64) {
	return float64(c.C1) / float64(n), float64(c.C2) / float64(n)
}

// Class returns 0, 1 or 2 for an observed degree sum.
func (c Cuts) Class(degreeSum int) int {
	switch {
	case degreeSum <= c.C1:
		return 0
	case degreeSum <= c.C2:
		return 1
	default:
		return 2
	}
}

// BinomialSplit computes the degree-sum cut points for graphs of size n
// sampled with edge probability p.
//
// Errors: ErrBadSize, ErrBadProbability, ErrBadSplit (all wrap
// core.ErrInvalidArgument).
func BinomialSplit(n int, p float64, split Split, model DegreeSumModel) (Cuts, error) {
	if n < 1 {
		return Cuts{}, fmt.Errorf("%s: n=%d: %w", methodBinomialSplit, n, ErrBadSize)
	}
	if err := validateProb(p); err != nil {
		return Cuts{}, fmt.Errorf("%s: %w", methodBinomialSplit, err)
	}
	if err := split.Validate(); err != nil {
		return Cuts{}, fmt.Errorf("%s: %w", methodBinomialSplit, err)
	}

	// trials and scale map the binomial variable k to a degree sum (scale·k).
	trials, scale := core.MaxEdges(n), 2
	if model == OrderedPairs {
		trials, scale = 2*core.MaxEdges(n), 1
	}
	if trials == 0 {
		return Cuts{}, nil // n=1: the degree sum is always 0
	}
	if p == 1 {
		return Cuts{C1: scale * trials, C2: scale * trials}, nil
	}

	dist := distuv.Binomial{N: float64(trials), P: p}
	cdf := func(k int) float64 { return dist.CDF(float64(k)) }

	sigma := math.Sqrt(float64(trials) * p * (1 - p))
	lo := int(math.Floor(float64(trials)*p - scanStartSigmas*sigma))

	k1 := nearestCandidate(cdf, split.Q1, scanStart(cdf, split.Q1, lo), trials)
	k2 := nearestCandidate(cdf, split.Q2, scanStart(cdf, split.Q2, k1), trials)

	return Cuts{C1: scale * k1, C2: scale * k2}, nil
}

// scanStart returns lo when it is a safe starting point (CDF(lo) < target),
// otherwise 0.
func scanStart(cdf func(int) float64, target float64, lo int) int {
	if lo > 0 && cdf(lo) < target {
		return lo
	}
	return 0
}

// nearestCandidate scans k = start, start+1, … up to max and returns the
// candidate whose CDF is closest to target, ties toward the larger one.
func nearestCandidate(cdf func(int) float64, target float64, start, max int) int {
	k := start
	hi := cdf(k)
	for hi < target && k < max {
		k++
		hi = cdf(k)
	}
	if k == 0 {
		return 0
	}
	below := cdf(k - 1)
	if target-below < hi-target {
		return k - 1
	}
	return k
}

func validateProb(p float64) error {
	if p == 0 {
		return ErrMissingProbability
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("p=%g: %w", p, ErrBadProbability)
	}
	return nil
}
