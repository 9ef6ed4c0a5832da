package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
)

func (db *DB) CreateQuestion(ctx context.Context, question *Question) (string, error) {
	if _, err := db.GetJobByID(ctx, question.JobID); err != nil {
		return "", err
	}
	question.ID = uuid.NewString()
	question.CreatedAt = nowMillis()
	if question.Type == "" {
		question.Type = QuestionTypeText
	}
	return question.ID, db.insertQuestion(ctx, question)
}

// InsertQuestions bulk-inserts generated questions. Timestamps are spaced by
// one millisecond so the presented order matches the generated order.
func (db *DB) InsertQuestions(ctx context.Context, jobID string, questions []*Question) error {
	base := nowMillis()
	for i, q := range questions {
		q.ID = uuid.NewString()
		q.JobID = jobID
		q.CreatedAt = base + int64(i)
		if q.Type == "" {
			q.Type = QuestionTypeText
		}
		if err := db.insertQuestion(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) insertQuestion(ctx context.Context, q *Question) error {
	var options interface{}
	if len(q.Options) > 0 {
		encoded, err := json.Marshal(q.Options)
		if err != nil {
			return err
		}
		options = string(encoded)
	}
	query := `INSERT INTO questions (id, job_id, question, type, options, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := db.connection.ExecContext(ctx, query, q.ID, q.JobID, q.Question, q.Type, options, q.CreatedAt)
	return err
}

func (db *DB) ListQuestionsForJob(ctx context.Context, jobID string) ([]*Question, error) {
	query := `SELECT id, job_id, question, type, options, created_at
	          FROM questions WHERE job_id = $1 ORDER BY created_at, id`
	rows, err := db.connection.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Question
	for rows.Next() {
		q := &Question{}
		var options sql.NullString
		if err := rows.Scan(&q.ID, &q.JobID, &q.Question, &q.Type, &options, &q.CreatedAt); err != nil {
			return nil, err
		}
		if options.Valid {
			_ = json.Unmarshal([]byte(options.String), &q.Options)
		}
		res = append(res, q)
	}
	return res, rows.Err()
}

func (db *DB) CountQuestionsForJob(ctx context.Context, jobID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM questions WHERE job_id = $1`
	err := db.connection.QueryRowContext(ctx, query, jobID).Scan(&count)
	return count, err
}

// JobIDForQuestion resolves the owning job, so question-scoped operations can
// run the same capability check as job-scoped ones.
func (db *DB) JobIDForQuestion(ctx context.Context, questionID string) (string, error) {
	var jobID string
	err := db.connection.QueryRowContext(ctx,
		`SELECT job_id FROM questions WHERE id = $1`, questionID).Scan(&jobID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return jobID, err
}

// DeleteQuestionsForJob clears a job's question set so regeneration replaces
// the previous questions instead of appending to them.
func (db *DB) DeleteQuestionsForJob(ctx context.Context, jobID string) error {
	_, err := db.connection.ExecContext(ctx, `DELETE FROM questions WHERE job_id = $1`, jobID)
	return err
}

func (db *DB) UpdateQuestion(ctx context.Context, questionID, text string) error {
	query := `UPDATE questions SET question = $1 WHERE id = $2`
	res, err := db.connection.ExecContext(ctx, query, text, questionID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteQuestion(ctx context.Context, questionID string) error {
	res, err := db.connection.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, questionID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
