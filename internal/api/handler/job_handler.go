// Package handler serves the job API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-quote-pipeline/internal/domain"
	"go-quote-pipeline/internal/model"
	"go-quote-pipeline/pkg/router"
)

// jobIDSegment is the index of {id} in /api/v1/jobs/{id}[/...].
const jobIDSegment = 3

// JobStore is the persistence the handlers read and write. *store.Store satisfies it.
type JobStore interface {
	SaveJob(ctx context.Context, jobID string, spec model.JobSpec) error
	ListJobs(ctx context.Context) ([]model.Job, error)
	GetJob(ctx context.Context, jobID string) (model.Job, error)
	GetJobErrors(ctx context.Context, jobID string) ([]model.JobError, error)
	GetJobOutputs(ctx context.Context, jobID string) ([]model.JobOutput, error)
}

// JobRunner executes a stored job. *pipeline.Runner satisfies it.
type JobRunner interface {
	Run(ctx context.Context, jobID string, spec model.JobSpec) (*model.JobResult, error)
}

// Handler serves the job endpoints. Jobs run in background goroutines bound
// to the handler's base context.
type Handler struct {
	store  JobStore
	runner JobRunner
	logger *slog.Logger
	ctx    context.Context
	newID  func() string
	now    func() time.Time
	wg     sync.WaitGroup
}

// New creates a handler. Cancelling ctx cancels running jobs.
func New(ctx context.Context, store JobStore, runner JobRunner, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		store:  store,
		runner: runner,
		logger: logger,
		ctx:    ctx,
		newID:  func() string { return uuid.New().String() },
		now:    time.Now,
	}
}

// Wait blocks until every job started by the handler has finished.
func (h *Handler) Wait() {
	h.wg.Wait()
}

// CreateJobResponse is returned when a job is accepted.
type CreateJobResponse struct {
	Message   string    `json:"message"`
	JobID     string    `json:"jobID"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JobErrorsResponse lists the errors of one job.
type JobErrorsResponse struct {
	JobID  string           `json:"job_id"`
	Errors []model.JobError `json:"errors"`
	Count  int              `json:"count"`
}

// JobOutputsResponse lists the files of one job.
type JobOutputsResponse struct {
	JobID   string            `json:"job_id"`
	Outputs []model.JobOutput `json:"outputs"`
	Count   int               `json:"count"`
}

// CreateJob stores a job spec and starts it in the background
// @Summary Create a job
// @Description Validate a job spec, store it and run the operation asynchronously
// @Tags jobs
// @Accept json
// @Produce json
// @Param job body model.JobSpec true "Job specification"
// @Success 202 {object} CreateJobResponse "Job accepted"
// @Failure 400 {object} ErrorResponse "Invalid job spec"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /jobs [post]
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var spec model.JobSpec
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload: "+err.Error())
		return
	}
	if err := spec.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	jobID := h.newID()
	if err := h.store.SaveJob(r.Context(), jobID, spec); err != nil {
		h.logger.Error("failed to save job", slog.String("job_id", jobID), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to save job")
		return
	}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		// Run records failures itself.
		_, _ = h.runner.Run(h.ctx, jobID, spec)
	}()

	writeJSON(w, http.StatusAccepted, CreateJobResponse{
		Message:   "Job created successfully",
		JobID:     jobID,
		Status:    model.StatusPending,
		CreatedAt: h.now().UTC(),
	})
}

// ListJobs returns all jobs
// @Summary List jobs
// @Description Get all jobs with their current status, newest first
// @Tags jobs
// @Produce json
// @Success 200 {array} model.Job "List of jobs"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /jobs [get]
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.store.ListJobs(r.Context())
	if err != nil {
		h.logger.Error("failed to list jobs", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to fetch jobs")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// GetJob returns one job
// @Summary Get job
// @Description Retrieve a job's spec and status
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} model.Job "Job details"
// @Failure 404 {object} ErrorResponse "Job not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /jobs/{id} [get]
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := router.PathParam(r, jobIDSegment)

	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		h.storeError(w, jobID, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// GetJobErrors returns the errors recorded for a job
// @Summary Get job errors
// @Description Retrieve the errors recorded while a job ran
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} JobErrorsResponse "Job errors"
// @Failure 404 {object} ErrorResponse "Job not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /jobs/{id}/errors [get]
func (h *Handler) GetJobErrors(w http.ResponseWriter, r *http.Request) {
	jobID := router.PathParam(r, jobIDSegment)
	if _, err := h.store.GetJob(r.Context(), jobID); err != nil {
		h.storeError(w, jobID, err)
		return
	}

	jobErrors, err := h.store.GetJobErrors(r.Context(), jobID)
	if err != nil {
		h.storeError(w, jobID, err)
		return
	}
	writeJSON(w, http.StatusOK, JobErrorsResponse{JobID: jobID, Errors: jobErrors, Count: len(jobErrors)})
}

// GetJobOutputs returns the files a job wrote
// @Summary Get job outputs
// @Description Retrieve the files a job produced with their row counts
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} JobOutputsResponse "Job outputs"
// @Failure 404 {object} ErrorResponse "Job not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /jobs/{id}/outputs [get]
func (h *Handler) GetJobOutputs(w http.ResponseWriter, r *http.Request) {
	jobID := router.PathParam(r, jobIDSegment)
	if _, err := h.store.GetJob(r.Context(), jobID); err != nil {
		h.storeError(w, jobID, err)
		return
	}

	outputs, err := h.store.GetJobOutputs(r.Context(), jobID)
	if err != nil {
		h.storeError(w, jobID, err)
		return
	}
	writeJSON(w, http.StatusOK, JobOutputsResponse{JobID: jobID, Outputs: outputs, Count: len(outputs)})
}

func (h *Handler) storeError(w http.ResponseWriter, jobID string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	h.logger.Error("job store error", slog.String("job_id", jobID), slog.Any("error", err))
	writeError(w, http.StatusInternalServerError, "failed to read job")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
