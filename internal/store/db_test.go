package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-quote-pipeline/internal/domain"
	"go-quote-pipeline/internal/model"
)

var fixedNow = time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := New(db)
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

func TestSaveJob(t *testing.T) {
	s, mock := newMockStore(t)
	spec := model.JobSpec{Operation: model.OpSpeaker, Params: model.JobParams{Speaker: "Elon Musk", Year: "2020"}}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO jobs`)).
		WithArgs("job-1", "speaker", sqlmock.AnyArg(), model.StatusPending, fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.SaveJob(context.Background(), "job-1", spec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateJobStatus_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE jobs SET status = ?`)).
		WithArgs(model.StatusRunning, fixedNow, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateJobStatus(context.Background(), "missing", model.StatusRunning)
	assert.True(t, domain.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveJobError_NilIsNoop(t *testing.T) {
	s, mock := newMockStore(t)
	require.NoError(t, s.SaveJobError(context.Background(), "job-1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveJobError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO job_errors`)).
		WithArgs("job-1", "boom", fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.SaveJobError(context.Background(), "job-1", errors.New("boom")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveJobOutputs(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO job_outputs`)).
		WithArgs("job-1", "Data/a-1.csv.bz2", 10, fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO job_outputs`)).
		WithArgs("job-1", "Data/a-2.csv.bz2", 3, fixedNow).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := s.SaveJobOutputs(context.Background(), "job-1", []model.JobOutput{
		{Path: "Data/a-1.csv.bz2", Rows: 10},
		{Path: "Data/a-2.csv.bz2", Rows: 3},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveJobOutputs_RollsBackOnError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO job_outputs`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := s.SaveJobOutputs(context.Background(), "job-1", []model.JobOutput{{Path: "x"}})
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetJob(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "spec", "status", "created_at", "updated_at"}).
		AddRow("job-1", `{"operation":"combine","params":{"speaker":"Elon Musk"}}`, model.StatusCompleted, fixedNow, fixedNow)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, spec, status, created_at, updated_at FROM jobs WHERE id = ?`)).
		WithArgs("job-1").
		WillReturnRows(rows)

	job, err := s.GetJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, model.OpCombine, job.Spec.Operation)
	assert.Equal(t, "Elon Musk", job.Spec.Params.Speaker)
	assert.Equal(t, model.StatusCompleted, job.Status)
}

func TestGetJob_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM jobs WHERE id = ?`)).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetJob(context.Background(), "nope")
	assert.True(t, domain.IsNotFound(err))
}

func TestListJobs(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "spec", "status", "created_at", "updated_at"}).
		AddRow("b", `{"operation":"orgs","params":{}}`, model.StatusRunning, fixedNow, fixedNow).
		AddRow("a", `{"operation":"chunk","params":{"chunkSize":5}}`, model.StatusCompleted, fixedNow, fixedNow)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM jobs ORDER BY created_at DESC`)).WillReturnRows(rows)

	jobs, err := s.ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "b", jobs[0].ID)
	assert.Equal(t, 5, jobs[1].Spec.Params.ChunkSize)
}

func TestGetJobErrorsAndOutputs(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM job_errors WHERE job_id = ?`)).
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "error_message", "created_at"}).
			AddRow(1, "job-1", "boom", fixedNow))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM job_outputs WHERE job_id = ?`)).
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "path", "rows", "created_at"}).
			AddRow("job-1", "Data/out.csv.bz2", 42, fixedNow))

	errs, err := s.GetJobErrors(context.Background(), "job-1")
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "boom", errs[0].Message)

	outs, err := s.GetJobOutputs(context.Background(), "job-1")
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, 42, outs[0].Rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
