package api

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Timestamp time.Time `json:"timestamp"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: s.now().UTC(),
	})
}

// RootRedirectHandler sends browsers that hit the API root to the front end.
func (s *Server) RootRedirectHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.config.Server.FrontendURL, http.StatusFound)
}
