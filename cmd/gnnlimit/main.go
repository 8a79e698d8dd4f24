// Command gnnlimit runs the asymptotic-behaviour study of graph classifiers
// on Erdős–Rényi graphs: generate a labeled dataset, train the reference
// model, and probe untrained and trained models over growing graph sizes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gnnlimit",
		Short: "Asymptotic behaviour of GNN classifiers on random graphs",
		Long: `gnnlimit studies how graph classifiers behave as input graphs grow.

It samples Erdős–Rényi graphs, labels them (parity or average degree),
trains a message-passing classifier, and records the mean class
probabilities the classifier outputs on ever larger graphs.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Experiment YAML file")
	rootCmd.PersistentFlags().String("experiment", "", "Experiment name (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newGenerateCmd(),
		newTrainCmd(),
		newPrecomputeCmd(),
		newSweepCmd(),
		newShowCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "gnnlimit version %s\n", version)
			return nil
		},
	}
}
