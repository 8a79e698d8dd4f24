// SPDX-License-Identifier: MIT
// Package: gnnlimit/label
//
// assign.go - label rules and the memoizing Assigner.
//
// Contract:
//   - Assign is pure: it never mutates the graph.
//   - Apply = Assign + core.Graph.SetLabel (exactly once per graph).
//   - ModeAverageDegree requires ctx.Prob; the 3-class rule additionally
//     requires ctx.Split. Missing or invalid parameters wrap
//     core.ErrInvalidArgument.

package label

import (
	"fmt"

	"github.com/katalvlaran/gnnlimit/core"
)

const (
	methodAssign = "Assign"
	methodApply  = "Apply"
)

// Context carries the parameters a labeling rule may need.
type Context struct {
	// Prob is the reference edge probability p of the average-degree rule.
	// Zero means "not provided".
	Prob float64
	// Split switches ModeAverageDegree to the 3-class quantile rule.
	Split *Split
	// Model selects the degree-sum distribution of the quantile rule.
	Model DegreeSumModel
}

type cutsKey struct {
	n     int
	p     float64
	split Split
	model DegreeSumModel
}

// Assigner labels graphs and memoizes quantile cut points per
// (n, p, split, model). Not safe for concurrent use.
type Assigner struct {
	cuts map[cutsKey]Cuts
}

// NewAssigner returns an Assigner with an empty cut-point cache.
func NewAssigner() *Assigner {
	return &Assigner{cuts: make(map[cutsKey]Cuts)}
}

// Assign computes g's label under mode and ctx without mutating g.
func (a *Assigner) Assign(g *core.Graph, mode Mode, ctx Context) (int, error) {
	if g == nil {
		return 0, fmt.Errorf("%s: nil graph: %w", methodAssign, core.ErrInvalidArgument)
	}

	switch mode {
	case ModeParity:
		if g.N()%2 == 0 {
			return 1, nil
		}
		return 0, nil

	case ModeAverageDegree:
		if err := validateProb(ctx.Prob); err != nil {
			return 0, fmt.Errorf("%s: %v: %w", methodAssign, mode, err)
		}
		if ctx.Split == nil {
			// 2-class: observed vs. expected average degree (n-1)p.
			if g.AverageDegree() >= float64(g.N()-1)*ctx.Prob {
				return 1, nil
			}
			return 0, nil
		}
		cuts, err := a.Cuts(g.N(), ctx.Prob, *ctx.Split, ctx.Model)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", methodAssign, err)
		}
		return cuts.Class(g.DegreeSum()), nil

	default:
		return 0, fmt.Errorf("%s: %v: %w", methodAssign, mode, ErrUnknownMode)
	}
}

// Apply assigns the label and stores it on g.
func (a *Assigner) Apply(g *core.Graph, mode Mode, ctx Context) error {
	lbl, err := a.Assign(g, mode, ctx)
	if err != nil {
		return err
	}
	if err = g.SetLabel(lbl); err != nil {
		return fmt.Errorf("%s: %w", methodApply, err)
	}
	return nil
}

// Cuts returns (and caches) the quantile cut points for (n, p, split, model).
func (a *Assigner) Cuts(n int, p float64, split Split, model DegreeSumModel) (Cuts, error) {
	key := cutsKey{n: n, p: p, split: split, model: model}
	if c, ok := a.cuts[key]; ok {
		return c, nil
	}
	c, err := BinomialSplit(n, p, split, model)
	if err != nil {
		return Cuts{}, err
	}
	a.cuts[key] = c

	return c, nil
}

// Assign is the cache-free form of (*Assigner).Assign.
func Assign(g *core.Graph, mode Mode, ctx Context) (int, error) {
	return NewAssigner().Assign(g, mode, ctx)
}
