// SPDX-License-Identifier: MIT
// Package: gnnlimit/classifier
//
// meanpool.go - reference model: fixed self/mean/sum message passing, mean
// readout, softmax head.
//
// Shapes (G graphs, N stacked nodes, d features, k classes, m = 3d):
//   - node embeddings H: N × m (never materialized; folded into the readout)
//   - readout R:         G × m
//   - head W:            k × m, b: k
//   - logits:            G × k = R Wᵀ + b
//
// Complexity per forward pass: O(N·d + |E|·d + G·m·k).

package classifier

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	methodNewMeanPool = "NewMeanPool"
	methodPredict     = "Predict"
	methodStep        = "Step"
	// channels is the number of d-wide blocks in a node embedding (self, mean, sum).
	channels = 3
)

// MeanPool is the reference trainable classifier. Not safe for concurrent
// Step calls; concurrent Predict calls are safe.
type MeanPool struct {
	d, k int
	w    *mat.Dense // k × 3d
	b    []float64  // k
}

// NewMeanPool initializes a head for featureDim inputs and numClasses outputs
// with weights drawn from U(-1/√m, 1/√m) using rng, and zero bias.
func NewMeanPool(featureDim, numClasses int, rng *rand.Rand) (*MeanPool, error) {
	if featureDim < 1 || numClasses < 2 {
		return nil, fmt.Errorf("%s: d=%d k=%d: %w", methodNewMeanPool, featureDim, numClasses, ErrBadHyperparameter)
	}
	if rng == nil {
		return nil, fmt.Errorf("%s: nil rng: %w", methodNewMeanPool, ErrBadHyperparameter)
	}

	m := channels * featureDim
	scale := 1 / math.Sqrt(float64(m))
	data := make([]float64, numClasses*m)
	for i := range data {
		data[i] = (2*rng.Float64() - 1) * scale
	}

	return &MeanPool{
		d: featureDim,
		k: numClasses,
		w: mat.NewDense(numClasses, m, data),
		b: make([]float64, numClasses),
	}, nil
}

// FromParams rebuilds a MeanPool from persisted parameters.
func FromParams(p Params) (*MeanPool, error) {
	m := channels * p.FeatureDim
	if p.FeatureDim < 1 || p.NumClasses < 2 || len(p.W) != p.NumClasses*m || len(p.B) != p.NumClasses {
		return nil, fmt.Errorf("FromParams: d=%d k=%d |W|=%d |B|=%d: %w",
			p.FeatureDim, p.NumClasses, len(p.W), len(p.B), ErrBadParams)
	}
	w := make([]float64, len(p.W))
	copy(w, p.W)
	b := make([]float64, len(p.B))
	copy(b, p.B)

	return &MeanPool{d: p.FeatureDim, k: p.NumClasses, w: mat.NewDense(p.NumClasses, m, w), b: b}, nil
}

// Params returns a deep copy of the model parameters.
func (mp *MeanPool) Params() Params {
	raw := mp.w.RawMatrix().Data
	w := make([]float64, len(raw))
	copy(w, raw)
	b := make([]float64, len(mp.b))
	copy(b, mp.b)

	return Params{FeatureDim: mp.d, NumClasses: mp.k, W: w, B: b}
}

// NumClasses implements Classifier.
func (mp *MeanPool) NumClasses() int { return mp.k }

// FeatureDim returns the expected input dimension.
func (mp *MeanPool) FeatureDim() int { return mp.d }

// Predict implements Classifier.
func (mp *MeanPool) Predict(b *Batch) ([][]float64, error) {
	r, err := mp.readout(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodPredict, err)
	}
	probs := mp.softmax(r)

	out := make([][]float64, b.NumGraphs())
	for g := range out {
		row := probs.RawRowView(g)
		out[g] = append(make([]float64, 0, mp.k), row...)
	}
	return out, nil
}

// Step implements Trainable: one SGD step on mean cross-entropy.
//
// Gradient of the head: with P the G×k probabilities and Y the one-hot labels,
// dL/dlogits = (P - Y)/G, dW = (dL/dlogits)ᵀ R, db = column sums.
func (mp *MeanPool) Step(b *Batch, lr float64) (float64, error) {
	if lr <= 0 || math.IsNaN(lr) || math.IsInf(lr, 0) {
		return 0, fmt.Errorf("%s: lr=%g: %w", methodStep, lr, ErrBadHyperparameter)
	}
	for g, y := range b.Labels {
		if y == Unlabeled {
			return 0, fmt.Errorf("%s: graph %d: %w", methodStep, g, ErrUnlabeled)
		}
		if y < 0 || y >= mp.k {
			return 0, fmt.Errorf("%s: graph %d label %d, k=%d: %w", methodStep, g, y, mp.k, ErrLabelRange)
		}
	}

	r, err := mp.readout(b)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", methodStep, err)
	}
	probs := mp.softmax(r)

	nGraphs := b.NumGraphs()
	inv := 1 / float64(nGraphs)
	var loss float64
	for g, y := range b.Labels {
		row := probs.RawRowView(g)
		loss -= math.Log(math.Max(row[y], math.SmallestNonzeroFloat64))
		row[y] -= 1 // probs becomes P - Y in place
		floats.Scale(inv, row)
	}
	loss *= inv
	if math.IsNaN(loss) || math.IsInf(loss, 0) {
		return 0, fmt.Errorf("%s: loss=%g: %w", methodStep, loss, ErrNonFinite)
	}

	var dw mat.Dense
	dw.Mul(probs.T(), r) // k × m
	floats.AddScaled(mp.w.RawMatrix().Data, -lr, dw.RawMatrix().Data)
	for g := 0; g < nGraphs; g++ {
		floats.AddScaled(mp.b, -lr, probs.RawRowView(g))
	}

	return loss, nil
}

// readout computes R (G × 3d): per-graph mean of [x_v ‖ mean N(v) ‖ Σ N(v)].
func (mp *MeanPool) readout(b *Batch) (*mat.Dense, error) {
	if b == nil || b.NumGraphs() < 1 {
		return nil, ErrEmptyBatch
	}
	d := b.FeatureDim()
	if d != mp.d {
		return nil, fmt.Errorf("batch d=%d, model d=%d: %w", d, mp.d, ErrFeatureDimMismatch)
	}

	nodes := b.NumNodes()
	nbrSum := mat.NewDense(nodes, d, nil)
	deg := make([]int, nodes)
	for _, e := range b.Edges {
		floats.Add(nbrSum.RawRowView(e.U), b.X.RawRowView(e.V))
		floats.Add(nbrSum.RawRowView(e.V), b.X.RawRowView(e.U))
		deg[e.U]++
		deg[e.V]++
	}

	r := mat.NewDense(b.NumGraphs(), channels*d, nil)
	for g := 0; g < b.NumGraphs(); g++ {
		row := r.RawRowView(g)
		self, mean, sum := row[:d], row[d:2*d], row[2*d:]
		lo, hi := b.Offsets[g], b.Offsets[g+1]
		for v := lo; v < hi; v++ {
			floats.Add(self, b.X.RawRowView(v))
			s := nbrSum.RawRowView(v)
			floats.Add(sum, s)
			if deg[v] > 0 {
				floats.AddScaled(mean, 1/float64(deg[v]), s)
			}
		}
		floats.Scale(1/float64(hi-lo), row)
	}

	return r, nil
}

// softmax returns the G × k probability matrix for readout r.
func (mp *MeanPool) softmax(r *mat.Dense) *mat.Dense {
	var logits mat.Dense
	logits.Mul(r, mp.w.T())

	rows, _ := logits.Dims()
	for g := 0; g < rows; g++ {
		row := logits.RawRowView(g)
		floats.Add(row, mp.b)
		lse := floats.LogSumExp(row)
		for c := range row {
			row[c] = math.Exp(row[c] - lse)
		}
	}
	return &logits
}
