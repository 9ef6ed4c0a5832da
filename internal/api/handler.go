package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"superhire/internal/llm"
	"superhire/internal/pipeline"
	"superhire/internal/storage"
)

type API struct {
	db         *storage.DB
	pipelines  *pipeline.Pipelines
	dispatcher *pipeline.Dispatcher
}

func NewAPI(db *storage.DB, model pipeline.TextGenerator) *API {
	pipelines := pipeline.New(db, model)
	dispatcher := pipeline.NewDispatcher(pipelines, 50) // buffer for 50 AI tasks

	a := &API{
		db:         db,
		pipelines:  pipelines,
		dispatcher: dispatcher,
	}

	// Start background workers
	dispatcher.Start(3)

	return a
}

// Shutdown drains in-flight AI tasks.
func (a *API) Shutdown() {
	a.dispatcher.Stop()
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] failed to write response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondStoreError maps the error taxonomy onto HTTP statuses. Each pipeline
// failure surfaces as a single user-facing category.
func respondStoreError(w http.ResponseWriter, err error) {
	var malformed *llm.MalformedOutputError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrNotOwner):
		respondError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, llm.ErrNoCredential):
		respondError(w, http.StatusServiceUnavailable, "AI provider not configured")
	case errors.As(err, &malformed):
		respondError(w, http.StatusBadGateway, "AI reply could not be processed, please try again")
	case errors.Is(err, llm.ErrEmptyResponse):
		respondError(w, http.StatusBadGateway, "AI returned no reply, please try again")
	default:
		log.Printf("[API] internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}
