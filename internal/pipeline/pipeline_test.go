package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"superhire/internal/storage"
)

// fakeModel returns a canned reply (or error) and records the prompts it saw.
type fakeModel struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeModel) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func openTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.NewDBWithDriver("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.EnsureSchema(context.Background()))
	return db
}

func createTestJob(t *testing.T, db *storage.DB, owner string) *storage.Job {
	t.Helper()
	job := &storage.Job{
		Title:        "Backend Engineer",
		Company:      "Acme",
		Description:  "Build APIs",
		Skills:       "Go, SQL",
		Experience:   "3+ years",
		IdealProfile: "Pragmatic",
		CreatedBy:    owner,
	}
	_, err := db.CreateJob(context.Background(), job)
	require.NoError(t, err)
	return job
}

var errProviderDown = errors.New("provider unreachable")
