// SPDX-License-Identifier: MIT
// Package: gnnlimit/dataset
//
// types.go - Range, Policy, Spec and sentinel errors.

package dataset

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/gnnlimit/builder"
	"github.com/katalvlaran/gnnlimit/core"
	"github.com/katalvlaran/gnnlimit/label"
)

// Sentinel errors (all wrap core.ErrInvalidArgument).
var (
	// ErrBadRange indicates Min < 1 or Min > Max.
	ErrBadRange = core.NewInvalid("dataset: bad size range")
	// ErrBadCount indicates a non-positive per-size count.
	ErrBadCount = core.NewInvalid("dataset: graphs per size must be positive")
	// ErrBadPolicy indicates an unset policy, or a fixed policy without a
	// valid probability.
	ErrBadPolicy = core.NewInvalid("dataset: bad probability policy")
	// ErrBadBatchSize indicates a non-positive batch size.
	ErrBadBatchSize = core.NewInvalid("dataset: batch size must be positive")
	// ErrBadFraction indicates a test fraction outside [0,1).
	ErrBadFraction = core.NewInvalid("dataset: test fraction must be in [0,1)")
)

// Range is an inclusive size range [Min, Max].
type Range struct {
	Min int `yaml:"min_n" json:"min_n"`
	Max int `yaml:"max_n" json:"max_n"`
}

// Validate checks 1 ≤ Min ≤ Max.
func (r Range) Validate() error {
	if r.Min < 1 || r.Min > r.Max {
		return fmt.Errorf("range [%d,%d]: %w", r.Min, r.Max, ErrBadRange)
	}
	return nil
}

// Len returns the number of sizes in the range.
func (r Range) Len() int { return r.Max - r.Min + 1 }

// PolicyKind enumerates probability policies.
type PolicyKind int

const (
	// PolicyUnset is the invalid zero value.
	PolicyUnset PolicyKind = iota
	// PolicyFixed uses one probability for every size.
	PolicyFixed
	// PolicyInverse uses p = 1/n.
	PolicyInverse
)

const (
	policyFixedName   = "fixed"
	policyInverseName = "inverse"
)

// Policy decides the edge probability for each graph size.
type Policy struct {
	Kind  PolicyKind
	Value float64 // used by PolicyFixed only
}

// Fixed returns a policy with constant probability p.
func Fixed(p float64) Policy { return Policy{Kind: PolicyFixed, Value: p} }

// Inverse returns the p = 1/n policy.
func Inverse() Policy { return Policy{Kind: PolicyInverse} }

// ParsePolicy builds a Policy from its configuration name and value.
// A "fixed" policy needs a value in (0,1].
func ParsePolicy(name string, value float64) (Policy, error) {
	var pol Policy
	switch strings.ToLower(strings.TrimSpace(name)) {
	case policyFixedName:
		pol = Fixed(value)
	case policyInverseName:
		pol = Inverse()
	default:
		return Policy{}, fmt.Errorf("ParsePolicy: %q: %w", name, ErrBadPolicy)
	}
	if err := pol.Validate(); err != nil {
		return Policy{}, err
	}
	return pol, nil
}

// Validate checks that the policy is usable.
func (pol Policy) Validate() error {
	switch pol.Kind {
	case PolicyInverse:
		return nil
	case PolicyFixed:
		if math.IsNaN(pol.Value) || pol.Value <= 0 || pol.Value > 1 {
			return fmt.Errorf("fixed p=%g not in (0,1]: %w", pol.Value, ErrBadPolicy)
		}
		return nil
	default:
		return fmt.Errorf("policy kind %d: %w", pol.Kind, ErrBadPolicy)
	}
}

// Prob returns the edge probability for graphs of size n (n ≥ 1).
func (pol Policy) Prob(n int) float64 {
	if pol.Kind == PolicyInverse {
		return builder.InverseProb(n)
	}
	return pol.Value
}

// String renders the policy for logs.
func (pol Policy) String() string {
	switch pol.Kind {
	case PolicyInverse:
		return policyInverseName
	case PolicyFixed:
		return fmt.Sprintf("%s(%g)", policyFixedName, pol.Value)
	default:
		return "unset"
	}
}

// Spec describes one dataset.
type Spec struct {
	Sizes         Range
	GraphsPerSize int
	FeatureDim    int
	Mode          label.Mode
	Prob          Policy
	// Split enables the 3-class average-degree rule.
	Split *label.Split
	// Model selects the degree-sum law of the 3-class rule.
	Model label.DegreeSumModel
}

// Validate checks every field up front.
func (s Spec) Validate() error {
	if err := s.Sizes.Validate(); err != nil {
		return err
	}
	if s.GraphsPerSize < 1 {
		return fmt.Errorf("graphs_per_size=%d: %w", s.GraphsPerSize, ErrBadCount)
	}
	if s.FeatureDim < 1 {
		return fmt.Errorf("feature_dim=%d: %w", s.FeatureDim, builder.ErrBadFeatureDim)
	}
	if !s.Mode.Valid() {
		return fmt.Errorf("mode %v: %w", s.Mode, label.ErrUnknownMode)
	}
	if err := s.Prob.Validate(); err != nil {
		return err
	}
	if s.Split != nil {
		if err := s.Split.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// LabelContext returns the labeling context for graphs of size n.
func (s Spec) LabelContext(n int) label.Context {
	return label.Context{Prob: s.Prob.Prob(n), Split: s.Split, Model: s.Model}
}
