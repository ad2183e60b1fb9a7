package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newJobsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect recorded jobs",
	}
	cmd.AddCommand(newJobsListCmd(a))
	cmd.AddCommand(newJobsShowCmd(a))
	return cmd
}

func newJobsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List jobs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := a.store.ListJobs(cmd.Context())
			if err != nil {
				return err
			}
			if a.output == "json" {
				return writeJSON(cmd.OutOrStdout(), jobs)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tOPERATION\tSTATUS\tCREATED")
			for _, j := range jobs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", j.ID, j.Spec.Operation, j.Status, j.CreatedAt.Local().Format(time.DateTime))
			}
			return w.Flush()
		},
	}
}

// jobDetail is the JSON shape of jobs show.
type jobDetail struct {
	Job     any `json:"job"`
	Errors  any `json:"errors"`
	Outputs any `json:"outputs"`
}

func newJobsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show a job with its errors and outputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			job, err := a.store.GetJob(ctx, args[0])
			if err != nil {
				return err
			}
			jobErrors, err := a.store.GetJobErrors(ctx, job.ID)
			if err != nil {
				return err
			}
			outputs, err := a.store.GetJobOutputs(ctx, job.ID)
			if err != nil {
				return err
			}
			if a.output == "json" {
				return writeJSON(cmd.OutOrStdout(), jobDetail{Job: job, Errors: jobErrors, Outputs: outputs})
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID:\t%s\n", job.ID)
			fmt.Fprintf(w, "Operation:\t%s\n", job.Spec.Operation)
			fmt.Fprintf(w, "Status:\t%s\n", job.Status)
			fmt.Fprintf(w, "Updated:\t%s\n", job.UpdatedAt.Local().Format(time.DateTime))
			for _, e := range jobErrors {
				fmt.Fprintf(w, "Error:\t%s\n", e.Message)
			}
			for _, o := range outputs {
				fmt.Fprintf(w, "Output:\t%s (%d rows)\n", o.Path, o.Rows)
			}
			return w.Flush()
		},
	}
}
