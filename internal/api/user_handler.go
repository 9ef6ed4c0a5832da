package api

import "net/http"

type syncUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	ClerkID  string `json:"clerkId"`
	ImageURL string `json:"imageUrl"`
}

// SyncUserHandler upserts a user on sign-in
// @Summary Sync user from identity provider
// @Tags users
// @Accept json
// @Produce json
// @Param user body syncUserRequest true "User profile"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /users/sync [post]
func (a *API) SyncUserHandler(w http.ResponseWriter, r *http.Request) {
	var req syncUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ClerkID == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "clerkId and email are required")
		return
	}
	id, err := a.db.SyncUser(r.Context(), req.Name, req.Email, req.ClerkID, req.ImageURL)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"userId": id})
}
