package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDBWithDriver("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.EnsureSchema(context.Background()))
	return db
}

func createTestJob(t *testing.T, db *DB, owner string) *Job {
	t.Helper()
	job := &Job{
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

func TestJobOwnerGate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	job := createTestJob(t, db, "owner-1")

	got, err := db.GetJob(ctx, job.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, job.Title, got.Title)
	assert.Equal(t, GenerationPending, got.GenerationState)

	// A mismatched owner must read exactly like an absent job.
	_, err = db.GetJob(ctx, job.ID, "owner-2")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.GetJob(ctx, "no-such-job", "owner-1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, db.AuthorizeJob(ctx, job.ID, "owner-1"))
	assert.ErrorIs(t, db.AuthorizeJob(ctx, job.ID, "owner-2"), ErrNotOwner)
	assert.ErrorIs(t, db.AuthorizeJob(ctx, "no-such-job", "owner-1"), ErrNotFound)
}

func TestListJobsNewestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first := createTestJob(t, db, "owner-1")
	time.Sleep(2 * time.Millisecond)
	second := createTestJob(t, db, "owner-1")
	createTestJob(t, db, "someone-else")

	jobs, err := db.ListJobs(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, second.ID, jobs[0].ID)
	assert.Equal(t, first.ID, jobs[1].ID)
}

func TestDeleteJobCascadesQuestionsOnly(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	job := createTestJob(t, db, "owner-1")

	require.NoError(t, db.InsertQuestions(ctx, job.ID, []*Question{
		{Question: "Q1"},
		{Question: "Q2"},
	}))
	candidate := &Candidate{JobID: job.ID, Name: "Ana", Whatsapp: "+55", Email: "ana@x.io"}
	candidateID, err := db.CreateCandidate(ctx, candidate)
	require.NoError(t, err)

	questions, err := db.ListQuestionsForJob(ctx, job.ID)
	require.NoError(t, err)
	_, err = db.SubmitAnswer(ctx, candidateID, questions[0].ID, "my answer")
	require.NoError(t, err)
	_, err = db.AppendChatMessage(ctx, &ChatMessage{JobID: job.ID, UserID: "owner-1", Role: RoleUser, Content: "hi"})
	require.NoError(t, err)

	// Wrong owner cannot delete.
	assert.ErrorIs(t, db.DeleteJob(ctx, job.ID, "intruder"), ErrNotOwner)

	require.NoError(t, db.DeleteJob(ctx, job.ID, "owner-1"))

	_, err = db.GetJobByID(ctx, job.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	count, err := db.CountQuestionsForJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Zero(t, count, "questions must cascade")

	// Candidates, answers, and chat history survive the job.
	_, err = db.GetCandidate(ctx, candidateID)
	assert.NoError(t, err, "candidates must not cascade")
	answers, err := db.ListAnswersForCandidate(ctx, candidateID)
	require.NoError(t, err)
	assert.Len(t, answers, 1, "answers must not cascade")
	messages, err := db.ListChatMessages(ctx, job.ID, "owner-1")
	require.NoError(t, err)
	assert.Len(t, messages, 1, "chat messages must not cascade")
}

func TestSubmitAnswerUpsertsByPair(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	job := createTestJob(t, db, "owner-1")
	require.NoError(t, db.InsertQuestions(ctx, job.ID, []*Question{{Question: "Q1"}}))
	questions, err := db.ListQuestionsForJob(ctx, job.ID)
	require.NoError(t, err)
	candidateID, err := db.CreateCandidate(ctx, &Candidate{JobID: job.ID, Name: "Ana"})
	require.NoError(t, err)

	firstID, err := db.SubmitAnswer(ctx, candidateID, questions[0].ID, "draft")
	require.NoError(t, err)
	secondID, err := db.SubmitAnswer(ctx, candidateID, questions[0].ID, "final")
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID, "re-submission revises in place")

	answers, err := db.ListAnswersForCandidate(ctx, candidateID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "final", answers[0].Answer)
}

func TestSubmitAnswerCrossJobRejected(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	jobA := createTestJob(t, db, "owner-1")
	jobB := createTestJob(t, db, "owner-1")
	require.NoError(t, db.InsertQuestions(ctx, jobB.ID, []*Question{{Question: "Q1"}}))
	otherQuestions, err := db.ListQuestionsForJob(ctx, jobB.ID)
	require.NoError(t, err)

	candidateID, err := db.CreateCandidate(ctx, &Candidate{JobID: jobA.ID, Name: "Ana"})
	require.NoError(t, err)

	// The question belongs to a different job than the candidate.
	_, err = db.SubmitAnswer(ctx, candidateID, otherQuestions[0].ID, "answer")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuestionTypeDefaultsAndOptions(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	job := createTestJob(t, db, "owner-1")

	_, err := db.CreateQuestion(ctx, &Question{JobID: job.ID, Question: "free text"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = db.CreateQuestion(ctx, &Question{
		JobID:    job.ID,
		Question: "pick one",
		Type:     "multiple_choice",
		Options:  []string{"a", "b"},
	})
	require.NoError(t, err)

	questions, err := db.ListQuestionsForJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, QuestionTypeText, questions[0].Type)
	assert.Empty(t, questions[0].Options)
	assert.Equal(t, "multiple_choice", questions[1].Type)
	assert.Equal(t, []string{"a", "b"}, questions[1].Options)
}

func TestCandidateAnalysisAllOrNothing(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	job := createTestJob(t, db, "owner-1")
	candidateID, err := db.CreateCandidate(ctx, &Candidate{JobID: job.ID, Name: "Ana"})
	require.NoError(t, err)

	before, err := db.GetCandidate(ctx, candidateID)
	require.NoError(t, err)
	assert.False(t, before.Analyzed())
	assert.Nil(t, before.Score)
	assert.Nil(t, before.Strengths)
	assert.Empty(t, before.Recommendation)

	err = db.UpdateCandidateAnalysis(ctx, candidateID, 85,
		[]string{"clear thinker"}, nil, "hire")
	require.NoError(t, err)

	after, err := db.GetCandidate(ctx, candidateID)
	require.NoError(t, err)
	require.True(t, after.Analyzed())
	assert.Equal(t, 85, *after.Score)
	assert.Equal(t, []string{"clear thinker"}, after.Strengths)
	assert.Equal(t, []string{}, after.Weaknesses, "nil input persists as empty list, not absent")
	assert.Equal(t, "hire", after.Recommendation)

	assert.ErrorIs(t, db.UpdateCandidateAnalysis(ctx, "no-such-candidate", 1, nil, nil, ""), ErrNotFound)
}

func TestListCandidatesForOwnerSpansJobs(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	jobA := createTestJob(t, db, "owner-1")
	jobB := createTestJob(t, db, "owner-1")
	jobOther := createTestJob(t, db, "owner-2")

	_, err := db.CreateCandidate(ctx, &Candidate{JobID: jobA.ID, Name: "Ana"})
	require.NoError(t, err)
	_, err = db.CreateCandidate(ctx, &Candidate{JobID: jobB.ID, Name: "Bruno"})
	require.NoError(t, err)
	_, err = db.CreateCandidate(ctx, &Candidate{JobID: jobOther.ID, Name: "Carla"})
	require.NoError(t, err)

	candidates, err := db.ListCandidatesForOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestCreateCandidateRequiresJob(t *testing.T) {
	db := openTestDB(t)
	_, err := db.CreateCandidate(context.Background(), &Candidate{JobID: "no-such-job", Name: "Ana"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChatMessagesStayInReplayOrder(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	job := createTestJob(t, db, "owner-1")

	// Append quickly so timestamps collide within one millisecond.
	for i := 0; i < 5; i++ {
		_, err := db.AppendChatMessage(ctx, &ChatMessage{JobID: job.ID, UserID: "owner-1", Role: RoleUser, Content: "q"})
		require.NoError(t, err)
		_, err = db.AppendChatMessage(ctx, &ChatMessage{JobID: job.ID, UserID: "owner-1", Role: RoleAssistant, Content: "a"})
		require.NoError(t, err)
	}

	messages, err := db.ListChatMessages(ctx, job.ID, "owner-1")
	require.NoError(t, err)
	require.Len(t, messages, 10)
	for i, msg := range messages {
		wantRole := RoleUser
		if i%2 == 1 {
			wantRole = RoleAssistant
		}
		assert.Equal(t, wantRole, msg.Role, "message %d out of order", i)
		if i > 0 {
			assert.Greater(t, msg.CreatedAt, messages[i-1].CreatedAt)
		}
	}
}

func TestSyncUserUpserts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id1, err := db.SyncUser(ctx, "Ana", "ana@x.io", "clerk-1", "")
	require.NoError(t, err)
	id2, err := db.SyncUser(ctx, "Ana Maria", "ana@x.io", "clerk-1", "https://img")
	require.NoError(t, err)
	assert.Equal(t, id1, id2, "same external id keeps the same record")

	user, err := db.GetUserByClerkID(ctx, "clerk-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", user.Name)
	assert.Equal(t, "https://img", user.ImageURL)

	_, err = db.GetUserByClerkID(ctx, "clerk-unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetGenerationStatus(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	job := createTestJob(t, db, "owner-1")

	require.NoError(t, db.SetGenerationStatus(ctx, job.ID, GenerationFailed, "model exploded"))
	got, err := db.GetJobByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, GenerationFailed, got.GenerationState)
	assert.Equal(t, "model exploded", got.GenerationError)

	// Re-triggering clears the recorded error.
	require.NoError(t, db.SetGenerationStatus(ctx, job.ID, GenerationPending, ""))
	got, err = db.GetJobByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, GenerationPending, got.GenerationState)
	assert.Empty(t, got.GenerationError)

	assert.ErrorIs(t, db.SetGenerationStatus(ctx, "no-such-job", GenerationFailed, "x"), ErrNotFound)
}
