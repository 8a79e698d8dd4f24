// SPDX-License-Identifier: MIT

// Package probe drives a trained (or untrained) classifier over graphs of
// growing size and aggregates its class-probability outputs per size.
//
// For every requested size n the probe samples SamplesPerSize graphs from
// G(n, p(n)), runs inference, and records
//
//   - every raw probability vector,
//   - their element-wise mean (the estimate of the limiting output),
//   - their element-wise population standard deviation.
//
// Graphs come either from a fresh generator or from a precomputed Cache.
// A cache never falls back to regeneration: a missing size is reported as
// ErrMissingCacheEntry so repeated sweeps over persisted graphs see the same
// inputs.
//
// The probe only calls Classifier.Predict; model parameters are never touched.
package probe
