package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"photo-gallery/internal/gallery"
)

type ErrorResponse struct {
	Error string `json:"error" example:"Unauthorized"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("ERROR: Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError writes the client-facing form of a gallery error.
// Unexpected errors are logged and surface as 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch gallery.KindOf(err) {
	case gallery.KindValidation, gallery.KindConflict:
		status = http.StatusBadRequest
	case gallery.KindUnauthenticated:
		status = http.StatusUnauthorized
	case gallery.KindForbidden:
		status = http.StatusForbidden
	case gallery.KindNotFound:
		status = http.StatusNotFound
	default:
		log.Printf("ERROR: %s %s failed: %v", r.Method, r.URL.Path, err)
		respondError(w, status, err.Error())
		return
	}

	var gErr *gallery.Error
	if errors.As(err, &gErr) {
		respondError(w, status, gErr.Message)
		return
	}
	respondError(w, status, err.Error())
}
