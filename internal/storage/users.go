package storage

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// SyncUser upserts a user record keyed by the external auth id. Called on
// every sign-in; the profile fields follow whatever the identity provider
// currently reports.
func (db *DB) SyncUser(ctx context.Context, name, email, clerkID, imageURL string) (string, error) {
	query := `INSERT INTO users (id, name, email, clerk_id, image_url)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (clerk_id) DO UPDATE
	            SET name = EXCLUDED.name,
	                email = EXCLUDED.email,
	                image_url = EXCLUDED.image_url`
	id := uuid.NewString()
	var image interface{}
	if imageURL != "" {
		image = imageURL
	}
	if _, err := db.connection.ExecContext(ctx, query, id, name, email, clerkID, image); err != nil {
		return "", err
	}

	// The insert id is discarded on conflict; read back the canonical one.
	user, err := db.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func (db *DB) GetUserByClerkID(ctx context.Context, clerkID string) (*User, error) {
	user := &User{}
	query := `SELECT id, name, email, clerk_id, COALESCE(image_url, '') FROM users WHERE clerk_id = $1`
	row := db.connection.QueryRowContext(ctx, query, clerkID)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.ClerkID, &user.ImageURL)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
