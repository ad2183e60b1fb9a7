package cli

import (
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"go-quote-pipeline/internal/model"
)

func newChunkCmd(a *app) *cobra.Command {
	var (
		chunkSize int
		quiet     bool
	)
	cmd := &cobra.Command{
		Use:   "chunk <source.json.bz2> <output-name>",
		Short: "Split a compressed JSON-lines dump into bz2 CSV chunks",
		Long:  "Writes <data-dir>/<output-name>-<n>.csv.bz2 for n = 1, 2, ... with at most --chunk-size rows each.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !quiet {
				bar := progressbar.NewOptions(-1,
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("chunking "+args[0]),
					progressbar.OptionSetItsString("rows"),
					progressbar.OptionShowCount(),
					progressbar.OptionShowIts(),
					progressbar.OptionClearOnFinish(),
				)
				a.runner.Progress = func(_, rows int) { _ = bar.Add(rows) }
				defer func() { _ = bar.Finish() }()
			}
			return a.runJob(cmd, model.JobSpec{
				Operation: model.OpChunk,
				Params:    model.JobParams{Source: args[0], OutputName: args[1], ChunkSize: chunkSize},
			})
		},
	}
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "rows per chunk (default chunk.size)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")
	return cmd
}

func newSpeakerCmd(a *app) *cobra.Command {
	var compression string
	cmd := &cobra.Command{
		Use:   "speaker <speaker> <year>",
		Short: "Extract one speaker's quotes for a year from the chunk files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runJob(cmd, model.JobSpec{
				Operation: model.OpSpeaker,
				Params:    model.JobParams{Speaker: args[0], Year: args[1], Compression: compression},
			})
		},
	}
	cmd.Flags().StringVar(&compression, "compression", "", "output compression: bz2|gz|zst|xz|lz4 (default data.compression)")
	return cmd
}

func newCombineCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "combine <speaker>",
		Short: "Concatenate a speaker's per-year files into all-<speaker>-quotes.csv.bz2",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runJob(cmd, model.JobSpec{
				Operation: model.OpCombine,
				Params:    model.JobParams{Speaker: args[0]},
			})
		},
	}
}

func newConfidenceCmd(a *app) *cobra.Command {
	var (
		cutoff float64
		output string
	)
	cmd := &cobra.Command{
		Use:   "confidence <input.csv.bz2>",
		Short: "Keep quotes whose leading attribution probability is at least --cutoff",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runJob(cmd, model.JobSpec{
				Operation: model.OpConfidence,
				Params:    model.JobParams{Input: args[0], Output: output, Cutoff: &cutoff},
			})
		},
	}
	cmd.Flags().Float64Var(&cutoff, "cutoff", 0, "minimum leading probability")
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (default <data-dir>/<job>-confidence.csv.bz2)")
	_ = cmd.MarkFlagRequired("cutoff")
	return cmd
}

func newOrgsCmd(a *app) *cobra.Command {
	var modelID, output string
	cmd := &cobra.Command{
		Use:   "orgs <input.csv.bz2>",
		Short: "Extract organization mentions from quotations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runJob(cmd, model.JobSpec{
				Operation: model.OpOrgs,
				Params:    model.JobParams{Input: args[0], Output: output, Model: modelID},
			})
		},
	}
	cmd.Flags().StringVar(&modelID, "model", "", "entity model: default or a model directory (default nlp.model)")
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (default <data-dir>/<job>-orgs.csv.bz2)")
	return cmd
}

func newSentimentCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "sentiment <input.csv.bz2>",
		Short: "Add a VADER compound sentiment score to each quotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runJob(cmd, model.JobSpec{
				Operation: model.OpSentiment,
				Params:    model.JobParams{Input: args[0], Output: output},
			})
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (default <data-dir>/<job>-sentiment.csv.bz2)")
	return cmd
}

func newCategorizeCmd(a *app) *cobra.Command {
	var (
		negative, positive float64
		output             string
	)
	cmd := &cobra.Command{
		Use:   "categorize <input.csv.bz2>",
		Short: "Map sentiment scores onto -1, 0 and 1",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := model.JobParams{Input: args[0], Output: output}
			if cmd.Flags().Changed("negative") {
				params.Negative = &negative
			}
			if cmd.Flags().Changed("positive") {
				params.Positive = &positive
			}
			return a.runJob(cmd, model.JobSpec{Operation: model.OpCategorize, Params: params})
		},
	}
	cmd.Flags().Float64Var(&negative, "negative", 0, "scores at or below this are negative (default sentiment.negative)")
	cmd.Flags().Float64Var(&positive, "positive", 0, "scores at or above this are positive (default sentiment.positive)")
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (default <data-dir>/<job>-categorized.csv.bz2)")
	return cmd
}

func newPlotCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "plot <orgs.csv.bz2> <organization>",
		Short: "Chart how often an organization is mentioned per year",
		Long:  "Renders a bar chart to --out; the format follows the extension (.png, .svg, .pdf).",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runJob(cmd, model.JobSpec{
				Operation: model.OpPlot,
				Params:    model.JobParams{Input: args[0], Org: args[1], Output: output},
			})
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "chart file (default <data-dir>/<job>-<org>-by-year.png)")
	return cmd
}
