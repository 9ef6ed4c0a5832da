package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// SubmitAnswer upserts on (candidate, question): re-submitting revises the
// previous answer in place, so the analysis transcript always reflects the
// latest one. The question must belong to the candidate's job.
func (db *DB) SubmitAnswer(ctx context.Context, candidateID, questionID, answer string) (string, error) {
	candidate, err := db.GetCandidate(ctx, candidateID)
	if err != nil {
		return "", err
	}

	var questionJobID string
	err = db.connection.QueryRowContext(ctx,
		`SELECT job_id FROM questions WHERE id = $1`, questionID).Scan(&questionJobID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if questionJobID != candidate.JobID {
		return "", fmt.Errorf("question %s does not belong to job %s: %w", questionID, candidate.JobID, ErrNotFound)
	}

	query := `INSERT INTO answers (id, candidate_id, question_id, answer)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (candidate_id, question_id) DO UPDATE
	            SET answer = EXCLUDED.answer`
	if _, err := db.connection.ExecContext(ctx, query, uuid.NewString(), candidateID, questionID, answer); err != nil {
		return "", err
	}

	var id string
	err = db.connection.QueryRowContext(ctx,
		`SELECT id FROM answers WHERE candidate_id = $1 AND question_id = $2`,
		candidateID, questionID).Scan(&id)
	return id, err
}

func (db *DB) ListAnswersForCandidate(ctx context.Context, candidateID string) ([]*Answer, error) {
	query := `SELECT id, candidate_id, question_id, answer, score FROM answers WHERE candidate_id = $1`
	rows, err := db.connection.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Answer
	for rows.Next() {
		a := &Answer{}
		var score sql.NullInt64
		if err := rows.Scan(&a.ID, &a.CandidateID, &a.QuestionID, &a.Answer, &score); err != nil {
			return nil, err
		}
		if score.Valid {
			v := int(score.Int64)
			a.Score = &v
		}
		res = append(res, a)
	}
	return res, rows.Err()
}
