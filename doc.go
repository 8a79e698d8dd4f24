// Package gnnlimit studies the asymptotic behaviour of graph neural network
// classifiers on Erdős–Rényi random graphs.
//
// The question: when a classifier trained on small graphs is applied to much
// larger ones, do its class probabilities converge, and to what? The module
// answers it empirically.
//
//	core/        Graph: vertex count, canonical edges, node features, label
//	builder/     G(n,p) sampling with node features, p = 1/n helper
//	label/       parity and average-degree labels, binomial quantile cuts
//	dataset/     sizes × graphs-per-size datasets, batching, splits
//	classifier/  Classifier contract, mean-pool reference model, SGD trainer
//	probe/       size sweeps: per-size mean/std of predicted distributions
//	bfs/         components and giant-component size
//	store/       versioned artifact persistence (SQLite, badger, memory)
//	config/      YAML experiment configuration
//	logging/     slog setup
//	cmd/gnnlimit the CLI: generate, train, precompute, sweep, show
//
// Quick start:
//
//	g, _ := builder.GenerateInverse(1000, 4, builder.WithSeed(1))
//	lbl, _ := label.Assign(g, label.ModeAverageDegree, label.Context{Prob: g.Prob()})
//
// Determinism: every random draw flows from an explicit seed or *rand.Rand.
package gnnlimit
