package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"go-quote-pipeline/internal/model"
	"go-quote-pipeline/internal/pipeline"
	"go-quote-pipeline/internal/platform/config"
	"go-quote-pipeline/internal/platform/logging"
	"go-quote-pipeline/internal/store"
)

// app holds the state shared by the subcommands of one invocation.
type app struct {
	cfgFile string
	output  string
	dataDir string
	timing  bool
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
	runner *pipeline.Runner
}

// setup loads configuration and opens the job store. Flags override config.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.dataDir != "" {
		cfg.Data.Dir = a.dataDir
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = logging.NewWithWriter(&logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}, cmd.ErrOrStderr())

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	a.store = st

	corpus := pipeline.NewCorpus(cfg.Data.Dir, a.logger, nil)
	a.runner = pipeline.NewRunner(corpus, st, a.logger, pipeline.Defaults{
		ChunkSize:   cfg.Chunk.Size,
		Compression: cfg.Data.Compression,
		Model:       cfg.NLP.Model,
		Negative:    cfg.Sentiment.Negative,
		Positive:    cfg.Sentiment.Positive,
		Timeout:     cfg.Jobs.Timeout,
	})
	return nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("failed to close job store", slog.Any("error", err))
		}
		a.store = nil
	}
}

// runJob records spec as a new job, runs it and prints the outputs.
func (a *app) runJob(cmd *cobra.Command, spec model.JobSpec) error {
	spec.Params.Timing = spec.Params.Timing || a.timing
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	jobID := uuid.New().String()
	if err := a.store.SaveJob(ctx, jobID, spec); err != nil {
		return err
	}

	res, err := a.runner.Run(ctx, jobID, spec)
	if err != nil {
		return fmt.Errorf("job %s: %w", jobID, err)
	}
	return a.printResult(cmd.OutOrStdout(), res)
}

func (a *app) printResult(w io.Writer, res *model.JobResult) error {
	if a.output == "json" {
		return writeJSON(w, res)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "job %s (%s) finished in %s\n", res.JobID, res.Operation, res.Duration.Round(1e6))
	fmt.Fprintln(tw, "OUTPUT\tROWS")
	for _, o := range res.Outputs {
		fmt.Fprintf(tw, "%s\t%d\n", o.Path, o.Rows)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
