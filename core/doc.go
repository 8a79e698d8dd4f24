// Package core defines the immutable random-graph record shared by every stage
// of the gnnlimit pipeline: generation, labeling, batching, inference and
// persistence.
//
// A Graph G = (V,E,X) carries:
//
//   - n ≥ 1 vertices, identified by their index 0..n-1;
//   - an undirected simple edge set E (unordered pairs {u,v}, u<v, no loops,
//     no duplicates), stored in canonical (u asc, v asc) order;
//   - the edge probability p it was sampled with (G(n,p) parameter);
//   - an n×d node-feature matrix X (gonum mat.Dense);
//   - derived statistics DegreeSum = 2|E| and AverageDegree = DegreeSum/n;
//   - a class label, assigned exactly once after construction.
//
// Construction:
//
//	g, err := core.NewGraph(n, p, edges, features)
//	// edges must be canonical; use Canonicalize on arbitrary input first.
//
// Everything except the label is frozen at construction time. SetLabel may be
// called once; a second call returns ErrAlreadyLabeled.
//
// Errors:
//
//	ErrInvalidArgument - umbrella sentinel for every validation failure.
//	ErrTooFewVertices  - n < 1.
//	ErrBadProbability  - p outside [0,1] or NaN.
//	ErrBadEdge         - endpoint out of range, self-loop, duplicate, or non-canonical order.
//	ErrBadFeatures     - feature matrix missing, wrong row count, or zero columns.
//	ErrAlreadyLabeled  - SetLabel called twice.
//	ErrBadLabel        - negative label.
//
// Concurrency: a Graph is read-only after labeling and may be shared freely
// between readers. SetLabel is not synchronized; label graphs before sharing.
package core
