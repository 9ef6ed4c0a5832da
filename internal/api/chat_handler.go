package api

import (
	"net/http"

	"superhire/internal/storage"
)

type chatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// SendChatMessageHandler runs the chat pipeline synchronously
// @Summary Ask about a job's candidates
// @Description Persists the user turn, generates a grounded reply, persists it, and returns it
// @Tags chat
// @Accept json
// @Produce json
// @Param id path string true "Job id"
// @Param message body chatRequest true "User message"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /jobs/{id}/chat [post]
func (a *API) SendChatMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}
	jobID := r.PathValue("id")
	if err := a.db.AuthorizeJob(r.Context(), jobID, req.UserID); err != nil {
		respondStoreError(w, err)
		return
	}
	reply, err := a.pipelines.Chat(r.Context(), jobID, req.UserID, req.Message)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// ListChatMessagesHandler replays the (job, user) chat log oldest-first
// @Summary List chat messages
// @Tags chat
// @Produce json
// @Param id path string true "Job id"
// @Param userId query string true "Requesting user id"
// @Success 200 {array} storage.ChatMessage
// @Failure 403 {object} map[string]string
// @Router /jobs/{id}/chat [get]
func (a *API) ListChatMessagesHandler(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	userID := r.URL.Query().Get("userId")
	if err := a.db.AuthorizeJob(r.Context(), jobID, userID); err != nil {
		respondStoreError(w, err)
		return
	}
	messages, err := a.db.ListChatMessages(r.Context(), jobID, userID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if messages == nil {
		messages = []*storage.ChatMessage{}
	}
	respondJSON(w, http.StatusOK, messages)
}
