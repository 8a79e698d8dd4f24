package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gnnlimit/builder"
	"github.com/katalvlaran/gnnlimit/probe"
)

const keyCache = "cache"

func newPrecomputeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "precompute",
		Short: "Sample and store the sweep graphs once",
		Long: `Precompute samples samples_per_size graphs for every sweep size and stores
them, so that "sweep --cached" probes every model on identical graphs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			spec, err := env.cfg.SweepSpec()
			if err != nil {
				return err
			}
			cache, err := probe.Precompute(spec.Sizes, spec.SamplesPerSize, spec.FeatureDim, spec.Prob,
				builder.WithSeed(env.seed(seedSweep)))
			if err != nil {
				return err
			}
			key := env.key(keyCache)
			if err = env.store.SaveCache(key, cache); err != nil {
				return err
			}
			env.logger.Info("cache stored", "key", key, "sizes", cache.Len())

			if env.jsonOut {
				return writeJSON(env.out, map[string]any{"key": key, "sizes": cache.Sizes()})
			}
			fmt.Fprintf(env.out, "%s: %d sizes × %d graphs\n", key, cache.Len(), spec.SamplesPerSize)
			return nil
		},
	}
}
