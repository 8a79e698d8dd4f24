// Package dataset produces labeled collections of random graphs over a size
// range and partitions them for a training loop.
//
// Build iterates every size in [Sizes.Min, Sizes.Max] (ascending), samples
// GraphsPerSize graphs per size with a shared builder.Generator and labels
// each one with a shared label.Assigner. The unbatched slice is returned;
// Batches, Shuffle and TrainTestSplit are delivery helpers that never affect
// which graphs are produced.
//
// Edge probability per size comes from a Policy: Fixed(p) or Inverse()
// (p = 1/n). The same policy supplies the reference probability of the
// average-degree labeling rule.
package dataset
