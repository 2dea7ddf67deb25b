package server

import (
	"errors"
	"net/http"

	"github.com/stackit-team/stackit-server/internal/auth"
	"github.com/stackit-team/stackit-server/internal/domain"
	"github.com/stackit-team/stackit-server/internal/storage"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse carries the full "Bearer <jwt>" string; clients store and
// send it back verbatim as the Authorization header value.
type tokenResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decode(r, &req); err != nil {
		s.error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		s.error(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}
	if err := auth.ValidateCredentials(req.Username, req.Email, req.Password); err != nil {
		s.error(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}

	user, err := s.store.CreateUser(r.Context(), &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	})
	if err != nil {
		s.storageError(w, err, "User not found", "User already exists")
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}
	s.respond(w, http.StatusCreated, tokenResponse{Token: "Bearer " + token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		s.error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		s.error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.storageError(w, err, "", "")
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		s.error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}
	s.respond(w, http.StatusOK, tokenResponse{Token: "Bearer " + token})
}

// handleLogout is a stateless no-op; the token stays valid until expiry and
// the client simply discards it.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
