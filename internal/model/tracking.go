package model

import "time"

// Job statuses.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Job is a stored job with its current status.
type Job struct {
	ID        string    `json:"id"`
	Spec      JobSpec   `json:"spec"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JobError is an error recorded against a job.
type JobError struct {
	ID        int64     `json:"id"`
	JobID     string    `json:"job_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// JobOutput is a file produced by a job.
type JobOutput struct {
	JobID     string    `json:"job_id"`
	Path      string    `json:"path"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}

// JobResult summarizes a finished run.
type JobResult struct {
	JobID     string        `json:"job_id"`
	Operation Operation     `json:"operation"`
	Outputs   []JobOutput   `json:"outputs"`
	Rows      int           `json:"rows"`
	Duration  time.Duration `json:"duration"`
}
