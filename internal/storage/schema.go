package storage

import "context"

// Schema uses a portable SQL subset: TEXT ids, epoch-millisecond BIGINT
// timestamps, JSON-encoded string arrays. It runs unchanged on PostgreSQL
// and on the SQLite engine the tests use.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id        TEXT PRIMARY KEY,
		name      TEXT NOT NULL,
		email     TEXT NOT NULL,
		clerk_id  TEXT NOT NULL UNIQUE,
		image_url TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id                TEXT PRIMARY KEY,
		title             TEXT NOT NULL,
		company           TEXT NOT NULL,
		description       TEXT NOT NULL,
		skills            TEXT NOT NULL,
		experience        TEXT NOT NULL,
		ideal_profile     TEXT NOT NULL,
		created_by        TEXT NOT NULL,
		created_at        BIGINT NOT NULL,
		generation_status TEXT NOT NULL DEFAULT 'pending',
		generation_error  TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_created_by ON jobs (created_by)`,
	`CREATE TABLE IF NOT EXISTS candidates (
		id             TEXT PRIMARY KEY,
		job_id         TEXT NOT NULL,
		name           TEXT NOT NULL,
		whatsapp       TEXT NOT NULL,
		email          TEXT NOT NULL,
		created_at     BIGINT NOT NULL,
		score          INTEGER,
		strengths      TEXT,
		weaknesses     TEXT,
		recommendation TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_job_id ON candidates (job_id)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id         TEXT PRIMARY KEY,
		job_id     TEXT NOT NULL,
		question   TEXT NOT NULL,
		type       TEXT NOT NULL DEFAULT 'text',
		options    TEXT,
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_job_id ON questions (job_id)`,
	`CREATE TABLE IF NOT EXISTS answers (
		id           TEXT PRIMARY KEY,
		candidate_id TEXT NOT NULL,
		question_id  TEXT NOT NULL,
		answer       TEXT NOT NULL,
		score        INTEGER,
		UNIQUE (candidate_id, question_id)
	)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id         TEXT PRIMARY KEY,
		job_id     TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		role       TEXT NOT NULL,
		content    TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_job_user ON chat_messages (job_id, user_id)`,
}

// EnsureSchema creates the tables on first boot.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.connection.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
