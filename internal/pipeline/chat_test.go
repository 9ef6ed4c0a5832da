package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superhire/internal/storage"
)

func TestChatRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	job := createTestJob(t, db, "owner-1")

	model := &fakeModel{reply: "Here is what I know."}
	p := New(db, model)

	const turns = 3
	for i := 0; i < turns; i++ {
		reply, err := p.Chat(ctx, job.ID, "owner-1", fmt.Sprintf("question %d", i))
		require.NoError(t, err)
		assert.Equal(t, "Here is what I know.", reply)
	}

	messages, err := db.ListChatMessages(ctx, job.ID, "owner-1")
	require.NoError(t, err)
	require.Len(t, messages, 2*turns, "one user + one assistant message per turn")
	for i, msg := range messages {
		if i%2 == 0 {
			assert.Equal(t, storage.RoleUser, msg.Role)
			assert.Equal(t, fmt.Sprintf("question %d", i/2), msg.Content)
		} else {
			assert.Equal(t, storage.RoleAssistant, msg.Role)
		}
		if i > 0 {
			assert.Greater(t, msg.CreatedAt, messages[i-1].CreatedAt, "strict chronological order")
		}
	}
}

func TestChatPromptGrounding(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	job := createTestJob(t, db, "owner-1")

	candidateID, err := db.CreateCandidate(ctx, &storage.Candidate{
		JobID: job.ID, Name: "Ana", Whatsapp: "+55 11 9999", Email: "ana@x.io",
	})
	require.NoError(t, err)
	require.NoError(t, db.UpdateCandidateAnalysis(ctx, candidateID, 91,
		[]string{"systems thinking"}, []string{"terse writing"}, "strong hire"))

	model := &fakeModel{reply: "Ana is the strongest candidate."}
	p := New(db, model)
	_, err = p.Chat(ctx, job.ID, "owner-1", "who should I hire?")
	require.NoError(t, err)

	require.Len(t, model.prompts, 1)
	prompt := model.prompts[0]
	// Job, candidate roster with inlined analysis, and the question all appear.
	assert.Contains(t, prompt, "Backend Engineer")
	assert.Contains(t, prompt, "Ana")
	assert.Contains(t, prompt, "91/100")
	assert.Contains(t, prompt, "systems thinking")
	assert.Contains(t, prompt, "terse writing")
	assert.Contains(t, prompt, "strong hire")
	assert.Contains(t, prompt, "who should I hire?")
	// The just-persisted user turn is part of the replayed history.
	assert.Contains(t, prompt, "User: who should I hire?")
}

func TestChatWithoutCandidates(t *testing.T) {
	db := openTestDB(t)
	job := createTestJob(t, db, "owner-1")

	model := &fakeModel{reply: "No candidates yet."}
	p := New(db, model)
	_, err := p.Chat(context.Background(), job.ID, "owner-1", "any applicants?")
	require.NoError(t, err)
	assert.Contains(t, model.prompts[0], "There are no candidates for this opening yet.")
}

func TestChatFailureKeepsUserMessage(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	job := createTestJob(t, db, "owner-1")

	p := New(db, &fakeModel{err: errProviderDown})
	_, err := p.Chat(ctx, job.ID, "owner-1", "hello?")
	assert.ErrorIs(t, err, errProviderDown)

	// The user turn persists as an audit record; no assistant reply follows.
	messages, listErr := db.ListChatMessages(ctx, job.ID, "owner-1")
	require.NoError(t, listErr)
	require.Len(t, messages, 1)
	assert.Equal(t, storage.RoleUser, messages[0].Role)
	assert.Equal(t, "hello?", messages[0].Content)
}

func TestChatMissingJob(t *testing.T) {
	db := openTestDB(t)
	p := New(db, &fakeModel{reply: "hi"})
	_, err := p.Chat(context.Background(), "no-such-job", "owner-1", "hello")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// No orphan message for a job that never existed.
	messages, listErr := db.ListChatMessages(context.Background(), "no-such-job", "owner-1")
	require.NoError(t, listErr)
	assert.Empty(t, messages)
}
