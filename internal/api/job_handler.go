package api

import (
	"net/http"

	"superhire/internal/storage"
)

type jobRequest struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Description  string `json:"description"`
	Skills       string `json:"skills"`
	Experience   string `json:"experience"`
	IdealProfile string `json:"idealProfile"`
	OwnerID      string `json:"ownerId"`
}

// CreateJobHandler creates a job and schedules question generation
// @Summary Create job posting
// @Description Creates the job and fires AI question generation in the background
// @Tags jobs
// @Accept json
// @Produce json
// @Param job body jobRequest true "Job fields"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /jobs [post]
func (a *API) CreateJobHandler(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" || req.OwnerID == "" {
		respondError(w, http.StatusBadRequest, "title and ownerId are required")
		return
	}

	job := &storage.Job{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Skills:       req.Skills,
		Experience:   req.Experience,
		IdealProfile: req.IdealProfile,
		CreatedBy:    req.OwnerID,
	}
	id, err := a.db.CreateJob(r.Context(), job)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	// Fire-and-forget: the pipeline records its outcome on the job and the
	// UI polls the status endpoint.
	a.dispatcher.EnqueueGeneration(id)

	respondJSON(w, http.StatusCreated, map[string]string{"jobId": id})
}

// ListJobsHandler lists the caller's jobs newest-first
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Param ownerId query string true "Owner external id"
// @Success 200 {array} storage.Job
// @Router /jobs [get]
func (a *API) ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("ownerId")
	if ownerID == "" {
		respondError(w, http.StatusBadRequest, "ownerId is required")
		return
	}
	jobs, err := a.db.ListJobs(r.Context(), ownerID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if jobs == nil {
		jobs = []*storage.Job{}
	}
	respondJSON(w, http.StatusOK, jobs)
}

// GetJobHandler returns one job; an owner mismatch reads as not found
// @Summary Get job
// @Tags jobs
// @Produce json
// @Param id path string true "Job id"
// @Param ownerId query string true "Owner external id"
// @Success 200 {object} storage.Job
// @Failure 404 {object} map[string]string
// @Router /jobs/{id} [get]
func (a *API) GetJobHandler(w http.ResponseWriter, r *http.Request) {
	job, err := a.db.GetJob(r.Context(), r.PathValue("id"), r.URL.Query().Get("ownerId"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, job)
}

// UpdateJobHandler rewrites the descriptive fields without re-generation
// @Summary Update job
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job id"
// @Param job body jobRequest true "Job fields"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /jobs/{id} [put]
func (a *API) UpdateJobHandler(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if !decodeBody(w, r, &req) {
		return
	}
	job := &storage.Job{
		ID:           r.PathValue("id"),
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Skills:       req.Skills,
		Experience:   req.Experience,
		IdealProfile: req.IdealProfile,
	}
	if err := a.db.UpdateJob(r.Context(), job, req.OwnerID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteJobHandler deletes the job and cascades to its questions only
// @Summary Delete job
// @Description Removes the job and its questions; candidates, answers, and chat history remain
// @Tags jobs
// @Produce json
// @Param id path string true "Job id"
// @Param ownerId query string true "Owner external id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /jobs/{id} [delete]
func (a *API) DeleteJobHandler(w http.ResponseWriter, r *http.Request) {
	err := a.db.DeleteJob(r.Context(), r.PathValue("id"), r.URL.Query().Get("ownerId"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GenerationStatusHandler reports the derived generation status
// @Summary Check question generation status
// @Tags jobs
// @Produce json
// @Param id path string true "Job id"
// @Success 200 {object} pipeline.GenerationStatus
// @Router /jobs/{id}/status [get]
func (a *API) GenerationStatusHandler(w http.ResponseWriter, r *http.Request) {
	status, err := a.pipelines.CheckGenerationStatus(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

type regenerateRequest struct {
	OwnerID string `json:"ownerId"`
}

// RegenerateQuestionsHandler re-runs generation for an existing job. The
// previous question set is cleared first, so regeneration replaces it.
// @Summary Regenerate questions
// @Description Clears the existing questions and fires AI question generation again
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job id"
// @Param owner body regenerateRequest true "Owner external id"
// @Success 202 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /jobs/{id}/regenerate [post]
func (a *API) RegenerateQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	var req regenerateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	jobID := r.PathValue("id")
	if err := a.db.AuthorizeJob(r.Context(), jobID, req.OwnerID); err != nil {
		respondStoreError(w, err)
		return
	}
	if err := a.db.DeleteQuestionsForJob(r.Context(), jobID); err != nil {
		respondStoreError(w, err)
		return
	}
	if err := a.db.SetGenerationStatus(r.Context(), jobID, storage.GenerationPending, ""); err != nil {
		respondStoreError(w, err)
		return
	}
	a.dispatcher.EnqueueGeneration(jobID)
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}
