package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/cinescore/cinescore/internal/domain"
	"github.com/cinescore/cinescore/internal/repository"
)

type contextKey string

const userContextKey = contextKey("user")

// requireUser authenticates the request with HTTP Basic credentials against
// the users table and stores the account on the request context.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		login, password, ok := r.BasicAuth()
		if !ok {
			s.respondUnauthorized(w)
			return
		}

		user, err := s.repo.Users.Authenticate(r.Context(), login, password)
		if err != nil {
			if errors.Is(err, repository.ErrInvalidCredentials) {
				s.respondUnauthorized(w)
				return
			}
			s.logger.WithError(err).Error("authenticate request")
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to authenticate request")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) respondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="cinescore"`)
	s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Incorrect login or password")
}

// userFromContext retrieves the authenticated account placed by requireUser.
func userFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(domain.User)
	return user, ok
}
