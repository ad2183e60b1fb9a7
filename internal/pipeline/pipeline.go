package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"go-quote-pipeline/internal/codec"
	"go-quote-pipeline/internal/domain"
	"go-quote-pipeline/internal/metrics"
	"go-quote-pipeline/internal/model"
	"go-quote-pipeline/internal/nlp"
	"go-quote-pipeline/internal/plot"
	"go-quote-pipeline/pkg/utils"
)

// JobRecorder persists job progress. *store.Store satisfies it.
type JobRecorder interface {
	UpdateJobStatus(ctx context.Context, jobID, status string) error
	SaveJobError(ctx context.Context, jobID string, jobErr error) error
	SaveJobOutputs(ctx context.Context, jobID string, outputs []model.JobOutput) error
}

// RecognizerFactory builds an entity recognizer for a model id.
type RecognizerFactory func(modelID string) (nlp.EntityRecognizer, error)

// PlotFunc renders a bar chart to a file.
type PlotFunc func(path, title, xLabel, yLabel string, bars []plot.Bar) error

// Defaults fill in parameters a job spec leaves empty.
type Defaults struct {
	ChunkSize   int
	Compression string
	Model       string
	Negative    float64
	Positive    float64
	Timeout     time.Duration
}

// Runner executes job specs against a corpus.
type Runner struct {
	Corpus      *Corpus
	Recorder    JobRecorder
	Outputs     *utils.OutputManager
	Analyzer    nlp.SentimentAnalyzer
	Recognizers RecognizerFactory
	Plot        PlotFunc
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
	Defaults    Defaults

	// Progress, when set, is called after each chunk of a chunk job.
	Progress func(batchNo, rows int)
}

// NewRunner creates a runner with the production NLP and plotting backends.
// Fields may be overridden before the first Run.
func NewRunner(corpus *Corpus, recorder JobRecorder, logger *slog.Logger, defaults Defaults) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		Corpus:   corpus,
		Recorder: recorder,
		Analyzer: nlp.NewVaderAnalyzer(),
		Recognizers: func(modelID string) (nlp.EntityRecognizer, error) {
			return nlp.NewProseRecognizer(modelID)
		},
		Plot:     plot.SaveBarChart,
		Logger:   logger,
		Defaults: defaults,
	}
}

// ------------------- Pipeline Runner -------------------

// Run executes one job, recording status transitions, errors and outputs
// through the recorder when one is configured.
func (r *Runner) Run(ctx context.Context, jobID string, spec model.JobSpec) (result *model.JobResult, err error) {
	sw := StartStopwatch(r.Corpus.Clock)
	logger := r.Logger.With(slog.String("job_id", jobID), slog.String("operation", string(spec.Operation)))

	defer func() {
		status := model.StatusCompleted
		rows := 0
		if err != nil {
			status = model.StatusFailed
			logger.Error("job failed", slog.Any("error", err), slog.Duration("elapsed", sw.Elapsed()))
			r.record(ctx, logger, func(c context.Context) error { return r.Recorder.SaveJobError(c, jobID, err) })
		} else {
			rows = result.Rows
			logger.Info("job completed", slog.Int("rows", rows), slog.Duration("elapsed", sw.Elapsed()))
		}
		r.record(ctx, logger, func(c context.Context) error { return r.Recorder.UpdateJobStatus(c, jobID, status) })
		r.Metrics.ObserveJob(string(spec.Operation), status, sw.Elapsed().Seconds(), rows)
	}()
	defer func() {
		if p := recover(); p != nil {
			result, err = nil, fmt.Errorf("job panicked: %v", p)
		}
	}()

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := r.confine(spec.Params); err != nil {
		return nil, err
	}

	logger.Info("job started")
	r.record(ctx, logger, func(c context.Context) error { return r.Recorder.UpdateJobStatus(c, jobID, model.StatusRunning) })

	timeout := utils.ParseDuration(spec.Timeout, r.Defaults.Timeout)
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	outputs, err := r.execute(runCtx, jobID, spec)
	if err != nil {
		return nil, err
	}

	result = &model.JobResult{
		JobID:     jobID,
		Operation: spec.Operation,
		Outputs:   outputs,
		Duration:  sw.Elapsed(),
	}
	for i := range outputs {
		outputs[i].JobID = jobID
		result.Rows += outputs[i].Rows
	}
	r.record(ctx, logger, func(c context.Context) error { return r.Recorder.SaveJobOutputs(c, jobID, outputs) })
	return result, nil
}

// record runs a recorder call, logging rather than failing the job on error.
// It uses a context detached from cancellation so a timed-out job is still recorded.
func (r *Runner) record(ctx context.Context, logger *slog.Logger, fn func(context.Context) error) {
	if r.Recorder == nil {
		return
	}
	if err := fn(context.WithoutCancel(ctx)); err != nil {
		logger.Warn("failed to record job state", slog.Any("error", err))
	}
}

func (r *Runner) execute(ctx context.Context, jobID string, spec model.JobSpec) ([]model.JobOutput, error) {
	p := spec.Params
	var opts []Option
	if p.Timing {
		opts = append(opts, WithTiming())
	}

	switch spec.Operation {
	case model.OpChunk:
		return r.runChunk(ctx, p, opts)

	case model.OpSpeaker:
		t, err := r.Corpus.SpeakerQuotes(ctx, p.Speaker, p.Year, opts...)
		if err != nil {
			return nil, err
		}
		compression := p.Compression
		if compression == "" {
			compression = r.Defaults.Compression
		}
		path, err := r.Corpus.WriteSpeakerYear(t, p.Speaker, p.Year, compression)
		if err != nil {
			return nil, err
		}
		return []model.JobOutput{{Path: path, Rows: t.Len()}}, nil

	case model.OpCombine:
		t, path, err := r.Corpus.CombineYearly(ctx, p.Speaker)
		if err != nil {
			return nil, err
		}
		return []model.JobOutput{{Path: path, Rows: t.Len()}}, nil

	case model.OpConfidence:
		return r.transformTable(jobID, p, "confidence.csv.bz2", func(t *model.Table) (*model.Table, error) {
			return FilterByConfidence(t, *p.Cutoff), nil
		})

	case model.OpOrgs:
		modelID := p.Model
		if modelID == "" {
			modelID = r.Defaults.Model
		}
		recognizer, err := r.Recognizers(modelID)
		if err != nil {
			return nil, fmt.Errorf("loading entity model: %w", err)
		}
		return r.transformTable(jobID, p, "orgs.csv.bz2", func(t *model.Table) (*model.Table, error) {
			return r.Corpus.ExtractOrganizations(ctx, recognizer, t, opts...)
		})

	case model.OpSentiment:
		return r.transformTable(jobID, p, "sentiment.csv.bz2", func(t *model.Table) (*model.Table, error) {
			return ScoreSentiment(r.Analyzer, t), nil
		})

	case model.OpCategorize:
		neg, pos := r.Defaults.Negative, r.Defaults.Positive
		if p.Negative != nil {
			neg = *p.Negative
		}
		if p.Positive != nil {
			pos = *p.Positive
		}
		return r.transformTable(jobID, p, "categorized.csv.bz2", func(t *model.Table) (*model.Table, error) {
			return CategorizeSentiment(t, neg, pos)
		})

	case model.OpPlot:
		return r.runPlot(jobID, p)
	}

	return nil, domain.NewValidationErrorWithValue("operation", "unsupported", spec.Operation)
}

func (r *Runner) runChunk(ctx context.Context, p model.JobParams, opts []Option) ([]model.JobOutput, error) {
	size := p.ChunkSize
	if size == 0 {
		size = r.Defaults.ChunkSize
	}
	if r.Progress != nil {
		opts = append(opts, WithProgress(r.Progress))
	}

	res, err := r.Corpus.Chunkify(ctx, p.Source, size, p.OutputName, opts...)
	if err != nil {
		return nil, err
	}

	outputs := make([]model.JobOutput, len(res.Files))
	for i, f := range res.Files {
		outputs[i] = model.JobOutput{Path: f.Path, Rows: f.Rows}
	}
	return outputs, nil
}

// transformTable reads the job input, applies fn and writes the result.
func (r *Runner) transformTable(jobID string, p model.JobParams, defaultName string, fn func(*model.Table) (*model.Table, error)) ([]model.JobOutput, error) {
	output, err := r.outputPath(jobID, p.Output, defaultName)
	if err != nil {
		return nil, err
	}

	in, err := ReadTable(p.Input)
	if err != nil {
		return nil, err
	}
	out, err := fn(in)
	if err != nil {
		return nil, err
	}
	if err := WriteTable(output, out, codec.FromPath(output)); err != nil {
		return nil, err
	}
	return []model.JobOutput{{Path: output, Rows: out.Len()}}, nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func (r *Runner) runPlot(jobID string, p model.JobParams) ([]model.JobOutput, error) {
	name := unsafeFileChars.ReplaceAllString(p.Org, "_") + "-by-year.png"
	output, err := r.outputPath(jobID, p.Output, name)
	if err != nil {
		return nil, err
	}

	in, err := ReadTable(p.Input)
	if err != nil {
		return nil, err
	}

	counts := CountByYear(in, p.Org)
	bars := make([]plot.Bar, len(counts))
	for i, c := range counts {
		bars[i] = plot.Bar{Label: c.Year, Value: float64(c.Count)}
	}
	if err := r.Plot(output, p.Org, "Years", plot.YLabel(p.Org), bars); err != nil {
		return nil, err
	}
	return []model.JobOutput{{Path: output, Rows: len(counts)}}, nil
}

// outputPath resolves where a job writes. With an output manager every file
// lands in the job's directory under its base name. Otherwise the explicit
// path is used as given, falling back to the corpus directory.
func (r *Runner) outputPath(jobID, explicit, defaultName string) (string, error) {
	if r.Outputs != nil {
		name := defaultName
		if explicit != "" {
			name = explicit
		}
		return r.Outputs.GetOutputFilePath(jobID, name)
	}
	if explicit != "" {
		return explicit, nil
	}
	if r.Corpus.Dir == "" {
		return "", domain.NewValidationError("output", "is required")
	}
	return filepath.Join(r.Corpus.Dir, jobID+"-"+defaultName), nil
}

// confine keeps a job that writes through an output manager inside the
// corpus and job output directories. Inputs must resolve beneath one of them
// and names that become part of a file name must be single path elements.
func (r *Runner) confine(p model.JobParams) error {
	if r.Outputs == nil {
		return nil
	}

	paths := []struct{ field, path string }{
		{"source", p.Source},
		{"input", p.Input},
	}
	for _, in := range paths {
		if in.path == "" {
			continue
		}
		if !utils.WithinDir(r.Corpus.Dir, in.path) && !utils.WithinDir(r.Outputs.BaseOutputDir, in.path) {
			return domain.NewValidationErrorWithValue(in.field, "must be inside the data or job output directory", in.path)
		}
	}

	names := []struct{ field, name string }{
		{"speaker", p.Speaker},
		{"year", p.Year},
		{"outputName", p.OutputName},
	}
	for _, n := range names {
		if n.name != "" && !utils.IsPlainName(n.name) {
			return domain.NewValidationErrorWithValue(n.field, "must not contain path separators", n.name)
		}
	}
	return nil
}

// formatScore renders a float the way derived columns store it.
func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
