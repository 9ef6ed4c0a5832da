package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
)

func (db *DB) CreateCandidate(ctx context.Context, candidate *Candidate) (string, error) {
	// A candidate must point at an existing job.
	if _, err := db.GetJobByID(ctx, candidate.JobID); err != nil {
		return "", err
	}

	candidate.ID = uuid.NewString()
	candidate.CreatedAt = nowMillis()

	query := `INSERT INTO candidates (id, job_id, name, whatsapp, email, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := db.connection.ExecContext(ctx, query,
		candidate.ID,
		candidate.JobID,
		candidate.Name,
		candidate.Whatsapp,
		candidate.Email,
		candidate.CreatedAt,
	)
	if err != nil {
		return "", err
	}
	return candidate.ID, nil
}

const candidateColumns = `id, job_id, name, whatsapp, email, created_at, score, strengths, weaknesses, COALESCE(recommendation, '')`

func scanCandidate(row interface{ Scan(...interface{}) error }) (*Candidate, error) {
	c := &Candidate{}
	var score sql.NullInt64
	var strengths, weaknesses sql.NullString
	err := row.Scan(
		&c.ID,
		&c.JobID,
		&c.Name,
		&c.Whatsapp,
		&c.Email,
		&c.CreatedAt,
		&score,
		&strengths,
		&weaknesses,
		&c.Recommendation,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if score.Valid {
		v := int(score.Int64)
		c.Score = &v
	}
	if strengths.Valid {
		_ = json.Unmarshal([]byte(strengths.String), &c.Strengths)
	}
	if weaknesses.Valid {
		_ = json.Unmarshal([]byte(weaknesses.String), &c.Weaknesses)
	}
	return c, nil
}

func (db *DB) GetCandidate(ctx context.Context, candidateID string) (*Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return scanCandidate(db.connection.QueryRowContext(ctx, query, candidateID))
}

func (db *DB) ListCandidatesForJob(ctx context.Context, jobID string) ([]*Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE job_id = $1 ORDER BY created_at DESC, id`
	return db.queryCandidates(ctx, query, jobID)
}

// ListCandidatesForOwner returns candidates across all of the owner's jobs.
func (db *DB) ListCandidatesForOwner(ctx context.Context, ownerID string) ([]*Candidate, error) {
	query := `SELECT c.id, c.job_id, c.name, c.whatsapp, c.email, c.created_at, c.score, c.strengths, c.weaknesses, COALESCE(c.recommendation, '')
	          FROM candidates c
	          JOIN jobs j ON j.id = c.job_id
	          WHERE j.created_by = $1
	          ORDER BY c.created_at DESC, c.id`
	return db.queryCandidates(ctx, query, ownerID)
}

func (db *DB) queryCandidates(ctx context.Context, query string, args ...interface{}) ([]*Candidate, error) {
	rows, err := db.connection.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// UpdateCandidateAnalysis persists all four analysis fields in one update so
// a candidate is never left with a partial analysis.
func (db *DB) UpdateCandidateAnalysis(ctx context.Context, candidateID string, score int, strengths, weaknesses []string, recommendation string) error {
	if strengths == nil {
		strengths = []string{}
	}
	if weaknesses == nil {
		weaknesses = []string{}
	}
	strengthsJSON, err := json.Marshal(strengths)
	if err != nil {
		return err
	}
	weaknessesJSON, err := json.Marshal(weaknesses)
	if err != nil {
		return err
	}

	query := `UPDATE candidates
	          SET score = $1, strengths = $2, weaknesses = $3, recommendation = $4
	          WHERE id = $5`
	res, err := db.connection.ExecContext(ctx, query,
		score, string(strengthsJSON), string(weaknessesJSON), recommendation, candidateID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
