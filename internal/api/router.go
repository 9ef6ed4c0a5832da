package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(a *API) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation - must be registered first
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Health check (for Railway, k8s, etc.)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Users
	mux.HandleFunc("POST /api/users/sync", a.SyncUserHandler)

	// Jobs
	mux.HandleFunc("POST /api/jobs", a.CreateJobHandler)
	mux.HandleFunc("GET /api/jobs", a.ListJobsHandler)
	mux.HandleFunc("GET /api/jobs/{id}", a.GetJobHandler)
	mux.HandleFunc("PUT /api/jobs/{id}", a.UpdateJobHandler)
	mux.HandleFunc("DELETE /api/jobs/{id}", a.DeleteJobHandler)
	mux.HandleFunc("GET /api/jobs/{id}/status", a.GenerationStatusHandler)
	mux.HandleFunc("POST /api/jobs/{id}/regenerate", a.RegenerateQuestionsHandler)

	// Questions
	mux.HandleFunc("GET /api/jobs/{id}/questions", a.ListQuestionsHandler)
	mux.HandleFunc("POST /api/jobs/{id}/questions", a.CreateQuestionHandler)
	mux.HandleFunc("PUT /api/questions/{id}", a.UpdateQuestionHandler)
	mux.HandleFunc("DELETE /api/questions/{id}", a.DeleteQuestionHandler)

	// Candidates & answers
	mux.HandleFunc("POST /api/candidates", a.CreateCandidateHandler)
	mux.HandleFunc("GET /api/candidates", a.ListCandidatesForOwnerHandler)
	mux.HandleFunc("GET /api/candidates/{id}", a.GetCandidateHandler)
	mux.HandleFunc("POST /api/candidates/{id}/analyze", a.AnalyzeCandidateHandler)
	mux.HandleFunc("GET /api/jobs/{id}/candidates", a.ListCandidatesForJobHandler)
	mux.HandleFunc("POST /api/answers", a.SubmitAnswerHandler)

	// Chat
	mux.HandleFunc("POST /api/jobs/{id}/chat", a.SendChatMessageHandler)
	mux.HandleFunc("GET /api/jobs/{id}/chat", a.ListChatMessagesHandler)

	return mux
}
