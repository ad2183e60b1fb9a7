// Package store persists jobs, their errors and their output files in sqlite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-quote-pipeline/internal/domain"
	"go-quote-pipeline/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id TEXT PRIMARY KEY,
	operation TEXT,
	spec TEXT,
	status TEXT,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS job_errors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id TEXT,
	error_message TEXT,
	created_at DATETIME
);
CREATE TABLE IF NOT EXISTS job_outputs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id TEXT,
	path TEXT,
	rows INTEGER,
	created_at DATETIME
);
`

// Store is the job repository.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the sqlite database at dbPath and applies the schema.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening job store: %w", err)
	}

	s := New(db)
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing connection without touching the schema.
func New(db *sql.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating job tables: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveJob stores a new job as pending.
func (s *Store) SaveJob(ctx context.Context, jobID string, spec model.JobSpec) error {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("encoding job spec: %w", err)
	}

	now := s.now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, operation, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		jobID, string(spec.Operation), string(specJSON), model.StatusPending, now, now)
	if err != nil {
		return fmt.Errorf("saving job %s: %w", jobID, err)
	}
	return nil
}

// UpdateJobStatus sets a job's status.
func (s *Store) UpdateJobStatus(ctx context.Context, jobID, status string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE jobs SET status = ?, updated_at = ? WHERE id = ?`, status, s.now(), jobID)
	if err != nil {
		return fmt.Errorf("updating job %s: %w", jobID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFoundError("job", jobID)
	}
	return nil
}

// SaveJobError records an error against a job. A nil error is a no-op.
func (s *Store) SaveJobError(ctx context.Context, jobID string, jobErr error) error {
	if jobErr == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO job_errors (job_id, error_message, created_at) VALUES (?, ?, ?)`,
		jobID, jobErr.Error(), s.now())
	if err != nil {
		return fmt.Errorf("saving error for job %s: %w", jobID, err)
	}
	return nil
}

// SaveJobOutputs records the files a job produced.
func (s *Store) SaveJobOutputs(ctx context.Context, jobID string, outputs []model.JobOutput) error {
	if len(outputs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting output transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	now := s.now()
	for _, out := range outputs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO job_outputs (job_id, path, rows, created_at) VALUES (?, ?, ?, ?)`,
			jobID, out.Path, out.Rows, now); err != nil {
			return fmt.Errorf("saving output %s for job %s: %w", out.Path, jobID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing outputs for job %s: %w", jobID, err)
	}
	return nil
}

// ListJobs returns all jobs, newest first.
func (s *Store) ListJobs(ctx context.Context) ([]model.Job, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, spec, status, created_at, updated_at FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// GetJob fetches one job with its spec and status.
func (s *Store) GetJob(ctx context.Context, jobID string) (model.Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, spec, status, created_at, updated_at FROM jobs WHERE id = ?`, jobID)

	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Job{}, domain.NewNotFoundError("job", jobID)
	}
	return job, err
}

// GetJobErrors returns the errors recorded for a job in insertion order.
func (s *Store) GetJobErrors(ctx context.Context, jobID string) ([]model.JobError, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, job_id, error_message, created_at FROM job_errors WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing errors for job %s: %w", jobID, err)
	}
	defer rows.Close()

	out := []model.JobError{}
	for rows.Next() {
		var e model.JobError
		if err := rows.Scan(&e.ID, &e.JobID, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning job error: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetJobOutputs returns the files recorded for a job in insertion order.
func (s *Store) GetJobOutputs(ctx context.Context, jobID string) ([]model.JobOutput, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT job_id, path, rows, created_at FROM job_outputs WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing outputs for job %s: %w", jobID, err)
	}
	defer rows.Close()

	out := []model.JobOutput{}
	for rows.Next() {
		var o model.JobOutput
		if err := rows.Scan(&o.JobID, &o.Path, &o.Rows, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning job output: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (model.Job, error) {
	var (
		job      model.Job
		specJSON string
	)
	if err := row.Scan(&job.ID, &specJSON, &job.Status, &job.CreatedAt, &job.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return job, err
		}
		return job, fmt.Errorf("scanning job: %w", err)
	}
	if err := json.Unmarshal([]byte(specJSON), &job.Spec); err != nil {
		return job, fmt.Errorf("decoding spec of job %s: %w", job.ID, err)
	}
	return job, nil
}
