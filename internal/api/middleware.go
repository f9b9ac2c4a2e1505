package api

import (
	"errors"
	"log"
	"net/http"

	"photo-gallery/internal/session"
)

// identityHandler is a handler that runs only for an authenticated caller.
type identityHandler func(w http.ResponseWriter, r *http.Request, id session.Identity)

// withIdentity resolves the session cookie once and hands the identity to h.
// Requests without a valid session get 401 before h runs.
func (s *Server) withIdentity(h identityHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := s.sessions.Resolve(r)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				log.Printf("ERROR: Failed to resolve session: %v", err)
			}
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		h(w, r, id)
	}
}
