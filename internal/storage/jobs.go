package storage

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// AuthorizeJob is the capability check every job-scoped operation goes
// through. A missing job and an owner mismatch both report ErrNotFound to
// readers so authorization does not leak existence; mutating handlers may
// distinguish via ErrNotOwner.
func (db *DB) AuthorizeJob(ctx context.Context, jobID, ownerID string) error {
	var createdBy string
	query := `SELECT created_by FROM jobs WHERE id = $1`
	err := db.connection.QueryRowContext(ctx, query, jobID).Scan(&createdBy)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if createdBy != ownerID {
		return ErrNotOwner
	}
	return nil
}

func (db *DB) CreateJob(ctx context.Context, job *Job) (string, error) {
	job.ID = uuid.NewString()
	job.CreatedAt = nowMillis()
	job.GenerationState = GenerationPending

	query := `INSERT INTO jobs (id, title, company, description, skills, experience, ideal_profile, created_by, created_at, generation_status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := db.connection.ExecContext(ctx, query,
		job.ID,
		job.Title,
		job.Company,
		job.Description,
		job.Skills,
		job.Experience,
		job.IdealProfile,
		job.CreatedBy,
		job.CreatedAt,
		job.GenerationState,
	)
	if err != nil {
		return "", err
	}
	return job.ID, nil
}

// UpdateJob rewrites the descriptive fields. It does not re-trigger question
// generation.
func (db *DB) UpdateJob(ctx context.Context, job *Job, ownerID string) error {
	if err := db.AuthorizeJob(ctx, job.ID, ownerID); err != nil {
		return err
	}
	query := `UPDATE jobs
	          SET title = $1, company = $2, description = $3, skills = $4, experience = $5, ideal_profile = $6
	          WHERE id = $7`
	_, err := db.connection.ExecContext(ctx, query,
		job.Title,
		job.Company,
		job.Description,
		job.Skills,
		job.Experience,
		job.IdealProfile,
		job.ID,
	)
	return err
}

// DeleteJob removes the job and its questions in one transaction. Candidates,
// answers, and chat messages referencing the job are deliberately left in
// place: they are the recruiting record.
func (db *DB) DeleteJob(ctx context.Context, jobID, ownerID string) error {
	if err := db.AuthorizeJob(ctx, jobID, ownerID); err != nil {
		return err
	}
	tx, err := db.connection.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE job_id = $1`, jobID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, jobID); err != nil {
		return err
	}
	return tx.Commit()
}

const jobColumns = `id, title, company, description, skills, experience, ideal_profile, created_by, created_at, generation_status, COALESCE(generation_error, '')`

func scanJob(row interface{ Scan(...interface{}) error }) (*Job, error) {
	job := &Job{}
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&job.Description,
		&job.Skills,
		&job.Experience,
		&job.IdealProfile,
		&job.CreatedBy,
		&job.CreatedAt,
		&job.GenerationState,
		&job.GenerationError,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// GetJob returns the job only when ownerID matches; a mismatch reads the same
// as an absent job.
func (db *DB) GetJob(ctx context.Context, jobID, ownerID string) (*Job, error) {
	job, err := db.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatedBy != ownerID {
		return nil, ErrNotFound
	}
	return job, nil
}

// GetJobByID bypasses the owner gate. For pipeline internals only; handlers
// go through GetJob.
func (db *DB) GetJobByID(ctx context.Context, jobID string) (*Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return scanJob(db.connection.QueryRowContext(ctx, query, jobID))
}

func (db *DB) ListJobs(ctx context.Context, ownerID string) ([]*Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE created_by = $1 ORDER BY created_at DESC, id`
	rows, err := db.connection.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, job)
	}
	return res, rows.Err()
}

// SetGenerationStatus is written by the generation pipeline itself, so the
// UI never has to infer progress from the absence of questions.
func (db *DB) SetGenerationStatus(ctx context.Context, jobID, status, errMsg string) error {
	var msg interface{}
	if errMsg != "" {
		msg = errMsg
	}
	query := `UPDATE jobs SET generation_status = $1, generation_error = $2 WHERE id = $3`
	res, err := db.connection.ExecContext(ctx, query, status, msg, jobID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
