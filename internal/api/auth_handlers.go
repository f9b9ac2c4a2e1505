package api

import (
	"encoding/json"
	"log"
	"net/http"

	"photo-gallery/internal/gallery"
	"photo-gallery/internal/session"
)

type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret"`
}

type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret"`
}

// @Summary      Register a new user
// @Description  Creates an account. Username and email must both be unused.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registerRequest  body      RegisterRequest  true  "New account"
// @Success      201              {object}  models.User
// @Failure      400              {object}  ErrorResponse  "Missing required fields or username/email already exists"
// @Failure      500              {object}  ErrorResponse
// @Router       /auth/register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondServiceError(w, r, gallery.ErrMissingFields)
		return
	}

	user, err := s.gallery.Register(r.Context(), gallery.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// @Summary      Log in
// @Description  Checks the credentials and starts a session. The session cookie is set on the response.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body      LoginRequest  true  "Credentials"
// @Success      200           {object}  models.User
// @Failure      400           {object}  ErrorResponse  "Missing required fields"
// @Failure      401           {object}  ErrorResponse  "Invalid credentials"
// @Failure      500           {object}  ErrorResponse
// @Router       /auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondServiceError(w, r, gallery.ErrMissingFields)
		return
	}

	user, err := s.gallery.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if _, err := s.sessions.Start(r.Context(), w, r, user); err != nil {
		log.Printf("ERROR: Failed to create session for user %d: %v", user.ID, err)
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// @Summary      Log out
// @Description  Ends the current session and clears the cookie.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /auth/logout [get]
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request, id session.Identity) {
	if err := s.sessions.End(r.Context(), w, id); err != nil {
		log.Printf("ERROR: Failed to end session for user %d: %v", id.UserID, err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /auth/me [get]
func (s *Server) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request, id session.Identity) {
	user, err := s.gallery.User(r.Context(), id.UserID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
