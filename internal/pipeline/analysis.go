package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"superhire/internal/llm"
)

type questionAnswer struct {
	Question string
	Answer   string
}

// Analysis is the normalized result persisted onto the candidate.
type Analysis struct {
	Score          int      `json:"score"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Recommendation string   `json:"recommendation"`
}

// rawAnalysis defers shape decisions: models sometimes return a bare string
// where an array was asked for, or a number as the recommendation.
type rawAnalysis struct {
	Score          float64         `json:"score"`
	Strengths      json.RawMessage `json:"strengths"`
	Weaknesses     json.RawMessage `json:"weaknesses"`
	Recommendation json.RawMessage `json:"recommendation"`
}

// AnalyzeCandidate loads the candidate with its job, questions, and answers,
// asks the model for a score/strengths/weaknesses/recommendation object,
// normalizes its shape, and persists all four fields in one update.
func (p *Pipelines) AnalyzeCandidate(ctx context.Context, candidateID string) (*Analysis, error) {
	candidate, err := p.store.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	job, err := p.store.GetJobByID(ctx, candidate.JobID)
	if err != nil {
		return nil, err
	}
	questions, err := p.store.ListQuestionsForJob(ctx, candidate.JobID)
	if err != nil {
		return nil, err
	}
	answers, err := p.store.ListAnswersForCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[string]string, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a.Answer
	}
	transcript := make([]questionAnswer, 0, len(questions))
	for _, q := range questions {
		answer, ok := byQuestion[q.ID]
		if !ok {
			answer = "No answer"
		}
		transcript = append(transcript, questionAnswer{Question: q.Question, Answer: answer})
	}

	raw, err := p.model.Generate(ctx, analysisPrompt(job, candidate, transcript))
	if err != nil {
		return nil, err
	}

	var parsed rawAnalysis
	if err := llm.ExtractObject(raw, &parsed); err != nil {
		var malformed *llm.MalformedOutputError
		if errors.As(err, &malformed) {
			log.Printf("[Analysis] candidate %s: unparsable model output: %s", candidateID, malformed.Raw)
		}
		return nil, err
	}

	analysis := &Analysis{
		Score:          int(parsed.Score),
		Strengths:      coerceStringList(parsed.Strengths),
		Weaknesses:     coerceStringList(parsed.Weaknesses),
		Recommendation: coerceString(parsed.Recommendation),
	}

	err = p.store.UpdateCandidateAnalysis(ctx, candidateID,
		analysis.Score, analysis.Strengths, analysis.Weaknesses, analysis.Recommendation)
	if err != nil {
		return nil, err
	}
	log.Printf("[Analysis] candidate %s scored %d", candidateID, analysis.Score)
	return analysis, nil
}

// coerceStringList accepts an array of strings, wraps a bare string into a
// one-element list, and defaults anything else to empty.
func coerceStringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && list != nil {
		return list
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}
	return []string{}
}

// coerceString renders non-string scalars (a numeric recommendation, say)
// as their literal text.
func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return ""
	}
	return text
}
