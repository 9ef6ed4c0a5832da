package pipeline

import (
	"context"
	"errors"
	"log"

	"superhire/internal/llm"
	"superhire/internal/storage"
)

type generatedQuestion struct {
	Question string `json:"question"`
	Type     string `json:"type"`
}

// GenerateQuestions runs the generation pipeline for a job: build the prompt,
// call the model, parse the strict-JSON question array, persist it. The
// pipeline records its own outcome on the job, so a caller that fires and
// forgets still leaves an accurate status behind.
func (p *Pipelines) GenerateQuestions(ctx context.Context, jobID string) ([]*storage.Question, error) {
	job, err := p.store.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	raw, err := p.model.Generate(ctx, generationPrompt(job))
	if err != nil {
		return nil, p.failGeneration(ctx, jobID, err)
	}

	var parsed []generatedQuestion
	if err := llm.ExtractArray(raw, &parsed); err != nil {
		var malformed *llm.MalformedOutputError
		if errors.As(err, &malformed) {
			log.Printf("[Generation] job %s: unparsable model output: %s", jobID, malformed.Raw)
		}
		return nil, p.failGeneration(ctx, jobID, err)
	}

	questions := make([]*storage.Question, 0, len(parsed))
	for _, q := range parsed {
		questions = append(questions, &storage.Question{
			Question: q.Question,
			Type:     q.Type, // storage defaults "" to "text"
		})
	}
	if err := p.store.InsertQuestions(ctx, jobID, questions); err != nil {
		return nil, p.failGeneration(ctx, jobID, err)
	}

	if err := p.store.SetGenerationStatus(ctx, jobID, storage.GenerationSucceeded, ""); err != nil {
		log.Printf("[Generation] job %s: failed to record success: %v", jobID, err)
	}
	log.Printf("[Generation] job %s: %d questions generated", jobID, len(questions))
	return questions, nil
}

// failGeneration records the failure on the job and passes the cause through.
func (p *Pipelines) failGeneration(ctx context.Context, jobID string, cause error) error {
	if err := p.store.SetGenerationStatus(ctx, jobID, storage.GenerationFailed, cause.Error()); err != nil {
		log.Printf("[Generation] job %s: failed to record error: %v", jobID, err)
	}
	log.Printf("[Generation] job %s failed: %v", jobID, cause)
	return cause
}

// GenerationStatus is the derived status the UI polls. Existing questions win
// over a stale error; a recorded failure only reports when no questions exist.
type GenerationStatus struct {
	Status  string `json:"status"` // "success", "error", or "pending"
	Count   int    `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

func (p *Pipelines) CheckGenerationStatus(ctx context.Context, jobID string) (*GenerationStatus, error) {
	count, err := p.store.CountQuestionsForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return &GenerationStatus{Status: "success", Count: count}, nil
	}

	job, err := p.store.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.GenerationState == storage.GenerationFailed {
		return &GenerationStatus{Status: "error", Message: job.GenerationError}, nil
	}
	return &GenerationStatus{Status: "pending"}, nil
}
