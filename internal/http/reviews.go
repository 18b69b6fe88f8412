package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cinescore/cinescore/internal/domain"
	"github.com/cinescore/cinescore/internal/repository"
)

type reviewCreateRequest struct {
	MovieID    string  `json:"movieId"`
	Score      *int    `json:"score"`
	ReviewText *string `json:"reviewText"`
}

type reviewResponse struct {
	ID         string  `json:"id"`
	MovieID    string  `json:"movieId"`
	UserID     string  `json:"userId"`
	Score      int     `json:"score"`
	ReviewText *string `json:"reviewText,omitempty"`
}

func (s *Server) handleAddReview(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		s.respondUnauthorized(w)
		return
	}

	var req reviewCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	if strings.TrimSpace(req.MovieID) == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "movieId is required")
		return
	}
	if req.Score == nil || *req.Score < domain.MinScore || *req.Score > domain.MaxScore {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "score must be an integer in [0,10]")
		return
	}

	review, err := s.repo.Reviews.Admit(r.Context(), repository.ReviewAdmitParams{
		MovieID:    req.MovieID,
		UserID:     user.ID,
		Score:      *req.Score,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found")
		case errors.Is(err, repository.ErrReviewExists):
			s.respondError(w, http.StatusConflict, "REVIEW_EXISTS", "You have already reviewed this movie")
		case errors.Is(err, repository.ErrScoreOutOfRange):
			s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "score must be an integer in [0,10]")
		default:
			s.logger.WithError(err).Error("admit review")
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process review")
		}
		return
	}

	s.respondJSON(w, http.StatusCreated, toReviewResponse(review))
}

func (s *Server) handleListMovieReviews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "movieID")

	if _, err := s.repo.Movies.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found")
			return
		}
		s.logger.WithError(err).Error("fetch movie for reviews")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reviews")
		return
	}

	reviews, err := s.repo.Reviews.ListByMovie(r.Context(), id)
	if err != nil {
		s.logger.WithError(err).Error("list reviews")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reviews")
		return
	}

	items := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, toReviewResponse(review))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func toReviewResponse(review domain.Review) reviewResponse {
	return reviewResponse{
		ID:         review.ID,
		MovieID:    review.MovieID,
		UserID:     review.UserID,
		Score:      review.Score,
		ReviewText: review.ReviewText,
	}
}
