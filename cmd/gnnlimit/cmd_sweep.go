package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gnnlimit/classifier"
	"github.com/katalvlaran/gnnlimit/probe"
	"github.com/katalvlaran/gnnlimit/store"
)

const (
	keySweep     = "sweep"
	runUntrained = "untrained"
	runTrained   = "trained"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Probe untrained and trained models over the sweep sizes",
		Long: `Sweep runs the asymptotic probe twice: on the model initialization and on
the trained model stored by "train" (skipped with a warning if absent).
Both results are stored and their per-size mean class probabilities printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			cached, _ := cmd.Flags().GetBool("cached")
			return runSweep(env, cached)
		},
	}
	cmd.Flags().Bool("cached", false, "Read graphs from the precomputed cache")
	return cmd
}

type namedSweep struct {
	Name   string                 `json:"name"`
	Key    string                 `json:"key"`
	Result *probe.SizeSweepResult `json:"result"`
}

func runSweep(env *runEnv, cached bool) error {
	spec, err := env.cfg.SweepSpec()
	if err != nil {
		return err
	}

	var cache *probe.Cache
	if cached {
		if cache, err = env.store.LoadCache(env.key(keyCache)); err != nil {
			return fmt.Errorf("loading cache (run precompute first): %w", err)
		}
	}

	models := map[string]classifier.Classifier{}
	untrained, err := newModel(env)
	if err != nil {
		return err
	}
	models[runUntrained] = untrained

	params, err := env.store.LoadModel(env.key(keyModel))
	switch {
	case errors.Is(err, store.ErrNotFound):
		env.logger.Warn("no trained model stored, skipping trained sweep", "key", env.key(keyModel))
	case err != nil:
		return err
	default:
		trained, err := classifier.FromParams(params)
		if err != nil {
			return err
		}
		models[runTrained] = trained
	}

	var results []namedSweep
	for _, name := range []string{runUntrained, runTrained} {
		clf, ok := models[name]
		if !ok {
			continue
		}
		opts := []probe.Option{
			probe.WithSeed(env.seed(seedSweep)),
			probe.WithBatchSize(env.cfg.Sweep.BatchSize),
			probe.WithLogger(env.logger),
		}
		if cache != nil {
			opts = append(opts, probe.WithCache(cache))
		}
		res, err := probe.Sweep(clf, spec, opts...)
		if err != nil {
			return fmt.Errorf("%s sweep: %w", name, err)
		}
		key := env.key(keySweep, name)
		if err = env.store.SaveSweep(key, res); err != nil {
			return err
		}
		env.logger.Info("sweep stored", "key", key, "sizes", len(res.Points))
		results = append(results, namedSweep{Name: name, Key: key, Result: res})
	}

	if env.jsonOut {
		return writeJSON(env.out, results)
	}
	for _, r := range results {
		fmt.Fprintf(env.out, "%s (%s)\n", r.Name, r.Key)
		if err = printSweep(env.out, r.Result); err != nil {
			return err
		}
	}
	return nil
}

// printSweep writes one row per size: n, p, giant-component share, then
// mean±std per class.
func printSweep(w io.Writer, res *probe.SizeSweepResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"n", "p", "giant"}
	for c := 0; c < res.NumClasses; c++ {
		header = append(header, fmt.Sprintf("class %d", c))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, pt := range res.Points {
		row := []string{fmt.Sprint(pt.N), fmt.Sprintf("%.4g", pt.Prob), fmt.Sprintf("%.3f", pt.GiantFraction)}
		for c := range pt.Mean {
			row = append(row, fmt.Sprintf("%.4f±%.4f", pt.Mean[c], pt.Std[c]))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
