package api

import (
	"net/http"

	"superhire/internal/storage"
)

// ListQuestionsHandler lists a job's questions. Left ungated: the public
// candidate intake page reads it.
// @Summary List questions for a job
// @Tags questions
// @Produce json
// @Param id path string true "Job id"
// @Success 200 {array} storage.Question
// @Router /jobs/{id}/questions [get]
func (a *API) ListQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	questions, err := a.db.ListQuestionsForJob(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if questions == nil {
		questions = []*storage.Question{}
	}
	respondJSON(w, http.StatusOK, questions)
}

type questionRequest struct {
	OwnerID  string   `json:"ownerId"`
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
}

// CreateQuestionHandler adds a manually authored question
// @Summary Create question
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Job id"
// @Param question body questionRequest true "Question fields"
// @Success 201 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /jobs/{id}/questions [post]
func (a *API) CreateQuestionHandler(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Question == "" {
		respondError(w, http.StatusBadRequest, "question is required")
		return
	}
	jobID := r.PathValue("id")
	if err := a.db.AuthorizeJob(r.Context(), jobID, req.OwnerID); err != nil {
		respondStoreError(w, err)
		return
	}
	question := &storage.Question{
		JobID:    jobID,
		Question: req.Question,
		Type:     req.Type,
		Options:  req.Options,
	}
	id, err := a.db.CreateQuestion(r.Context(), question)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"questionId": id})
}

type updateQuestionRequest struct {
	OwnerID  string `json:"ownerId"`
	Question string `json:"question"`
}

// UpdateQuestionHandler edits one question's text
// @Summary Update question
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Question id"
// @Param question body updateQuestionRequest true "New text"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /questions/{id} [put]
func (a *API) UpdateQuestionHandler(w http.ResponseWriter, r *http.Request) {
	var req updateQuestionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	questionID := r.PathValue("id")
	if err := a.authorizeQuestion(r, questionID, req.OwnerID); err != nil {
		respondStoreError(w, err)
		return
	}
	if err := a.db.UpdateQuestion(r.Context(), questionID, req.Question); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteQuestionHandler removes one question
// @Summary Delete question
// @Tags questions
// @Produce json
// @Param id path string true "Question id"
// @Param ownerId query string true "Owner external id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /questions/{id} [delete]
func (a *API) DeleteQuestionHandler(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if err := a.authorizeQuestion(r, questionID, r.URL.Query().Get("ownerId")); err != nil {
		respondStoreError(w, err)
		return
	}
	if err := a.db.DeleteQuestion(r.Context(), questionID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (a *API) authorizeQuestion(r *http.Request, questionID, ownerID string) error {
	jobID, err := a.db.JobIDForQuestion(r.Context(), questionID)
	if err != nil {
		return err
	}
	return a.db.AuthorizeJob(r.Context(), jobID, ownerID)
}
