package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gnnlimit/store"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [key]",
		Short: "List stored artifacts or print one of them",
		Long: `Without arguments, show lists the keys stored for the experiment
(--all lists every key). With a key, it prints the artifact: a sweep as a
table of mean class probabilities, a dataset as class counts, a model or a
cache as a short summary.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			if len(args) == 0 {
				all, _ := cmd.Flags().GetBool("all")
				prefix := env.cfg.Name + "/"
				if all {
					prefix = ""
				}
				return listKeys(env, prefix)
			}
			return showKey(env, args[0])
		},
	}
	cmd.Flags().Bool("all", false, "List keys of every experiment")
	return cmd
}

func listKeys(env *runEnv, prefix string) error {
	keys, err := env.store.Keys(prefix)
	if err != nil {
		return err
	}
	if env.jsonOut {
		if keys == nil {
			keys = []string{}
		}
		return writeJSON(env.out, keys)
	}
	for _, k := range keys {
		fmt.Fprintln(env.out, k)
	}
	return nil
}

// showKey tries each artifact kind in turn; a kind mismatch moves on to the
// next one.
func showKey(env *runEnv, key string) error {
	res, err := env.store.LoadSweep(key)
	if err == nil {
		if env.jsonOut {
			return writeJSON(env.out, res)
		}
		return printSweep(env.out, res)
	}
	if !errors.Is(err, store.ErrSchemaMismatch) {
		return err
	}

	graphs, err := env.store.LoadGraphs(key)
	if err == nil {
		return reportDataset(env, key, graphs)
	}
	if !errors.Is(err, store.ErrSchemaMismatch) {
		return err
	}

	params, err := env.store.LoadModel(key)
	if err == nil {
		if env.jsonOut {
			return writeJSON(env.out, params)
		}
		fmt.Fprintf(env.out, "%s: mean-pool model, d=%d, k=%d\n", key, params.FeatureDim, params.NumClasses)
		return nil
	}
	if !errors.Is(err, store.ErrSchemaMismatch) {
		return err
	}

	cache, err := env.store.LoadCache(key)
	if err != nil {
		return err
	}
	if env.jsonOut {
		return writeJSON(env.out, map[string]any{"key": key, "sizes": cache.Sizes()})
	}
	fmt.Fprintf(env.out, "%s: graph cache, sizes %v\n", key, cache.Sizes())
	return nil
}
