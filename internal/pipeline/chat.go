package pipeline

import (
	"context"

	"superhire/internal/storage"
)

// Chat answers a recruiter's question about a job's candidates. The incoming
// message is persisted before the model call: the history is an audit log, so
// a failed turn leaves the user message in place with no assistant reply, and
// the caller surfaces the error for a manual re-send.
func (p *Pipelines) Chat(ctx context.Context, jobID, userID, message string) (string, error) {
	// The job is loaded first so a bad job id never leaves an orphan turn.
	job, err := p.store.GetJobByID(ctx, jobID)
	if err != nil {
		return "", err
	}

	_, err = p.store.AppendChatMessage(ctx, &storage.ChatMessage{
		JobID:   jobID,
		UserID:  userID,
		Role:    storage.RoleUser,
		Content: message,
	})
	if err != nil {
		return "", err
	}
	candidates, err := p.store.ListCandidatesForJob(ctx, jobID)
	if err != nil {
		return "", err
	}
	history, err := p.store.ListChatMessages(ctx, jobID, userID)
	if err != nil {
		return "", err
	}

	reply, err := p.model.Generate(ctx, chatPrompt(job, candidates, history, message))
	if err != nil {
		return "", err
	}

	_, err = p.store.AppendChatMessage(ctx, &storage.ChatMessage{
		JobID:   jobID,
		UserID:  userID,
		Role:    storage.RoleAssistant,
		Content: reply,
	})
	if err != nil {
		return "", err
	}
	return reply, nil
}
