// Package cli implements the wrangler command line.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd returns the root command for the wrangler CLI.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "wrangler",
		Short:         "Quote corpus data-wrangling utilities",
		Long:          "wrangler chunks a Quotebank dump, extracts per-speaker quotes, filters and enriches them, and plots organization mentions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is configs/wrangler.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&a.output, "output", "text", "output format: json|text")
	rootCmd.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "corpus directory (overrides data.dir)")
	rootCmd.PersistentFlags().BoolVar(&a.timing, "timing", false, "log elapsed wall-clock time")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(withApp(a, newChunkCmd(a)))
	rootCmd.AddCommand(withApp(a, newSpeakerCmd(a)))
	rootCmd.AddCommand(withApp(a, newCombineCmd(a)))
	rootCmd.AddCommand(withApp(a, newConfidenceCmd(a)))
	rootCmd.AddCommand(withApp(a, newOrgsCmd(a)))
	rootCmd.AddCommand(withApp(a, newSentimentCmd(a)))
	rootCmd.AddCommand(withApp(a, newCategorizeCmd(a)))
	rootCmd.AddCommand(withApp(a, newPlotCmd(a)))
	rootCmd.AddCommand(withApp(a, newJobsCmd(a)))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// withApp opens the shared state before cmd (or any subcommand) runs and
// releases it afterwards.
func withApp(a *app, cmd *cobra.Command) *cobra.Command {
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup(cmd)
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		a.close()
	}
	return cmd
}
