// SPDX-License-Identifier: MIT
// Package: gnnlimit/builder
//
// errors.go — sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Every sentinel unwraps to core.ErrInvalidArgument.
//   • Implementations attach context with %w; callers branch with errors.Is.
//   • Generators never panic at runtime; panics are confined to WithX option
//     constructors.
//
// Priority when several validations fail:
//   ErrTooFewVertices → ErrBadFeatureDim → ErrInvalidProbability → ErrNeedRandSource.

package builder

import "github.com/katalvlaran/gnnlimit/core"

// ErrTooFewVertices indicates n < 1.
var ErrTooFewVertices = core.NewInvalid("builder: too few vertices")

// ErrBadFeatureDim indicates featureDim < 1.
var ErrBadFeatureDim = core.NewInvalid("builder: feature dimension must be positive")

// ErrInvalidProbability indicates that a probability value is outside the
// closed interval [0,1] or NaN.
var ErrInvalidProbability = core.NewInvalid("builder: probability out of range")

// ErrNeedRandSource indicates that the Generator has no *rand.Rand
// (WithSeed or WithRand must be set). Feature sampling always needs one.
var ErrNeedRandSource = core.NewInvalid("builder: rng is required")
