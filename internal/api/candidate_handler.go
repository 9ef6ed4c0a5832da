package api

import (
	"net/http"

	"superhire/internal/storage"
)

type candidateRequest struct {
	Name     string `json:"name"`
	Whatsapp string `json:"whatsapp"`
	Email    string `json:"email"`
	JobID    string `json:"jobId"`
}

// CreateCandidateHandler registers an applicant from the public intake link
// @Summary Create candidate
// @Tags candidates
// @Accept json
// @Produce json
// @Param candidate body candidateRequest true "Candidate fields"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /candidates [post]
func (a *API) CreateCandidateHandler(w http.ResponseWriter, r *http.Request) {
	var req candidateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.JobID == "" {
		respondError(w, http.StatusBadRequest, "name and jobId are required")
		return
	}
	candidate := &storage.Candidate{
		JobID:    req.JobID,
		Name:     req.Name,
		Whatsapp: req.Whatsapp,
		Email:    req.Email,
	}
	id, err := a.db.CreateCandidate(r.Context(), candidate)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"candidateId": id})
}

// GetCandidateHandler returns one candidate with any analysis result
// @Summary Get candidate
// @Tags candidates
// @Produce json
// @Param id path string true "Candidate id"
// @Success 200 {object} storage.Candidate
// @Failure 404 {object} map[string]string
// @Router /candidates/{id} [get]
func (a *API) GetCandidateHandler(w http.ResponseWriter, r *http.Request) {
	candidate, err := a.db.GetCandidate(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, candidate)
}

// ListCandidatesForJobHandler lists a job's candidates newest-first
// @Summary List candidates for a job
// @Tags candidates
// @Produce json
// @Param id path string true "Job id"
// @Success 200 {array} storage.Candidate
// @Router /jobs/{id}/candidates [get]
func (a *API) ListCandidatesForJobHandler(w http.ResponseWriter, r *http.Request) {
	candidates, err := a.db.ListCandidatesForJob(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if candidates == nil {
		candidates = []*storage.Candidate{}
	}
	respondJSON(w, http.StatusOK, candidates)
}

// ListCandidatesForOwnerHandler lists candidates across all of the owner's jobs
// @Summary List all candidates for an owner
// @Tags candidates
// @Produce json
// @Param ownerId query string true "Owner external id"
// @Success 200 {array} storage.Candidate
// @Router /candidates [get]
func (a *API) ListCandidatesForOwnerHandler(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("ownerId")
	if ownerID == "" {
		respondError(w, http.StatusBadRequest, "ownerId is required")
		return
	}
	candidates, err := a.db.ListCandidatesForOwner(r.Context(), ownerID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if candidates == nil {
		candidates = []*storage.Candidate{}
	}
	respondJSON(w, http.StatusOK, candidates)
}

// AnalyzeCandidateHandler schedules AI analysis and returns immediately
// @Summary Analyze candidate
// @Tags candidates
// @Produce json
// @Param id path string true "Candidate id"
// @Success 202 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /candidates/{id}/analyze [post]
func (a *API) AnalyzeCandidateHandler(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")
	if _, err := a.db.GetCandidate(r.Context(), candidateID); err != nil {
		respondStoreError(w, err)
		return
	}
	a.dispatcher.EnqueueAnalysis(candidateID)
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

type answerRequest struct {
	CandidateID string `json:"candidateId"`
	QuestionID  string `json:"questionId"`
	Answer      string `json:"answer"`
}

// SubmitAnswerHandler records (or revises) one answer
// @Summary Submit answer
// @Tags candidates
// @Accept json
// @Produce json
// @Param answer body answerRequest true "Answer fields"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /answers [post]
func (a *API) SubmitAnswerHandler(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	id, err := a.db.SubmitAnswer(r.Context(), req.CandidateID, req.QuestionID, req.Answer)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"answerId": id})
}
