// Package builder samples the random graphs studied by gnnlimit: Erdős–Rényi
// G(n,p) graphs with uniform node features.
//
// The package follows a functional-options design:
//
//   - BuilderOption:  a function that mutates builderConfig before use.
//   - builderConfig:  holds the RNG and the per-feature sampler.
//   - Generator:      a resolved, reusable configuration; repeated calls draw
//     from one RNG stream, so a seeded Generator reproduces a whole dataset.
//
// Entry points:
//
//	gen := builder.NewGenerator(builder.WithSeed(42))
//	g, err := gen.Generate(n, p, featureDim)      // G(n,p)
//	g, err := gen.GenerateInverse(n, featureDim)  // G(n,1/n), E[avg degree] = (n-1)/n
//
// Guarantees:
//
//   - Every unordered pair {i,j}, i<j, is an edge independently with probability p.
//   - Edges come out in canonical (i asc, j asc) order; no loops, no duplicates.
//   - Features are independent draws of the feature sampler (default U[0,1)).
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Runtime validation returns sentinels that wrap core.ErrInvalidArgument.
//   - Deterministic for a fixed seed and call order.
//
// Complexity: O(n·d + |E|) per graph. Edge sampling skips over absent pairs
// with geometric jumps instead of running n(n-1)/2 Bernoulli trials, which is
// what makes sweeps over tens of thousands of vertices practical.
package builder
