package storage

import (
	"context"

	"github.com/google/uuid"
)

// AppendChatMessage appends one turn to the (job, user) log. The timestamp is
// bumped past the thread's newest message when two turns land within the same
// millisecond, so replay order stays stable.
func (db *DB) AppendChatMessage(ctx context.Context, msg *ChatMessage) (string, error) {
	msg.ID = uuid.NewString()
	msg.CreatedAt = nowMillis()

	var last int64
	err := db.connection.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(created_at), 0) FROM chat_messages WHERE job_id = $1 AND user_id = $2`,
		msg.JobID, msg.UserID).Scan(&last)
	if err != nil {
		return "", err
	}
	if msg.CreatedAt <= last {
		msg.CreatedAt = last + 1
	}

	query := `INSERT INTO chat_messages (id, job_id, user_id, role, content, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = db.connection.ExecContext(ctx, query,
		msg.ID, msg.JobID, msg.UserID, msg.Role, msg.Content, msg.CreatedAt)
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

// ListChatMessages returns the (job, user) log oldest-first for replay.
func (db *DB) ListChatMessages(ctx context.Context, jobID, userID string) ([]*ChatMessage, error) {
	query := `SELECT id, job_id, user_id, role, content, created_at
	          FROM chat_messages WHERE job_id = $1 AND user_id = $2
	          ORDER BY created_at, id`
	rows, err := db.connection.QueryContext(ctx, query, jobID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*ChatMessage
	for rows.Next() {
		m := &ChatMessage{}
		if err := rows.Scan(&m.ID, &m.JobID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}
