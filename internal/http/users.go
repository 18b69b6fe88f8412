package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cinescore/cinescore/internal/domain"
	"github.com/cinescore/cinescore/internal/repository"
)

const minPasswordLength = 8

type userCreateRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Login string `json:"login"`
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req userCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	login := strings.TrimSpace(req.Login)
	if login == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "login is required")
		return
	}
	if len(req.Password) < minPasswordLength {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "password must be at least 8 characters long")
		return
	}

	user, err := s.repo.Users.Create(r.Context(), repository.UserCreateParams{
		Login:    login,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, repository.ErrLoginExists) {
			s.respondError(w, http.StatusConflict, "LOGIN_EXISTS", "Login already registered")
			return
		}
		s.logger.WithError(err).Error("register user")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register user")
		return
	}

	s.respondJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		s.respondUnauthorized(w)
		return
	}
	s.respondJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")

	user, err := s.repo.Users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		s.logger.WithError(err).Error("fetch user")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch user")
		return
	}

	s.respondJSON(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(user domain.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Login: user.Login,
	}
}
