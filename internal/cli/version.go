package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build information, set with -ldflags "-X go-quote-pipeline/internal/cli.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "wrangler %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), " - git: %s\n", GitCommit)
			fmt.Fprintf(cmd.OutOrStdout(), " - go: %s\n", runtime.Version())
			return nil
		},
	}
}
