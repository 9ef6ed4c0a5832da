// Package pipeline implements the three AI pipelines: question generation
// for a job, candidate analysis, and recruiter chat.
package pipeline

import (
	"context"

	"superhire/internal/storage"
)

// TextGenerator is the model boundary: prompt in, completion out. Satisfied
// by llm.Client; tests substitute a fake.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Pipelines struct {
	store *storage.DB
	model TextGenerator
}

func New(store *storage.DB, model TextGenerator) *Pipelines {
	return &Pipelines{store: store, model: model}
}
