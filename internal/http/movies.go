package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cinescore/cinescore/internal/domain"
	"github.com/cinescore/cinescore/internal/repository"
)

type movieCreateRequest struct {
	Title       string `json:"title"`
	ReleaseYear int    `json:"releaseYear"`
}

type movieResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	ReleaseYear  int     `json:"releaseYear"`
	AvgScore     float64 `json:"avgScore"`
	ScoreNumber  int     `json:"scoreNumber"`
	ReviewNumber int     `json:"reviewNumber"`
}

type movieListResponse struct {
	Items      []movieResponse `json:"items"`
	NextCursor *string         `json:"nextCursor,omitempty"`
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	var req movieCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title is required")
		return
	}
	if req.ReleaseYear < domain.EarliestReleaseYear || req.ReleaseYear > time.Now().Year() {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			fmt.Sprintf("releaseYear must be between %d and the current year", domain.EarliestReleaseYear))
		return
	}

	movie, err := s.repo.Movies.Create(r.Context(), repository.MovieCreateParams{
		Title:       title,
		ReleaseYear: req.ReleaseYear,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMovieExists):
			s.respondError(w, http.StatusConflict, "MOVIE_EXISTS", "Movie already registered")
		case errors.Is(err, repository.ErrYearOutOfRange):
			s.respondError(w, http.StatusConflict, "WRONG_YEAR", "You entered the wrong year")
		default:
			s.logger.WithError(err).Error("create movie")
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create movie")
		}
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/movies/%s", url.PathEscape(movie.ID)))
	s.respondJSON(w, http.StatusCreated, toMovieResponse(movie))
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	filters, err := buildMovieFilters(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	result, err := s.repo.Movies.List(r.Context(), filters)
	if err != nil {
		s.logger.WithError(err).Error("list movies")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list movies")
		return
	}

	items := make([]movieResponse, 0, len(result.Items))
	for _, movie := range result.Items {
		items = append(items, toMovieResponse(movie))
	}

	s.respondJSON(w, http.StatusOK, movieListResponse{
		Items:      items,
		NextCursor: result.NextCursor,
	})
}

// buildMovieFilters parses the query string into a filter specification.
// Cursor pagination only holds under the default insertion order, so a cursor
// combined with the sort flag is rejected.
func buildMovieFilters(query url.Values) (repository.MovieListFilters, error) {
	var filters repository.MovieListFilters

	if q := strings.TrimSpace(query.Get("q")); q != "" {
		filters.TitleContains = &q
	}
	if val := strings.TrimSpace(query.Get("year")); val != "" {
		year, err := strconv.Atoi(val)
		if err != nil {
			return filters, fmt.Errorf("invalid year value")
		}
		filters.Year = &year
	}
	if val := strings.TrimSpace(query.Get("sortByAvgScore")); val != "" {
		sortByAvg, err := strconv.ParseBool(val)
		if err != nil {
			return filters, fmt.Errorf("invalid sortByAvgScore value")
		}
		filters.SortByAvgScore = sortByAvg
	}
	if val := strings.TrimSpace(query.Get("limit")); val != "" {
		limit, err := strconv.Atoi(val)
		if err != nil {
			return filters, fmt.Errorf("invalid limit value")
		}
		filters.Limit = limit
	}
	if val := strings.TrimSpace(query.Get("cursor")); val != "" {
		if filters.SortByAvgScore {
			return filters, fmt.Errorf("cursor cannot be combined with sortByAvgScore")
		}
		cursor, err := repository.DecodeCursor(val)
		if err != nil {
			return filters, fmt.Errorf("invalid cursor")
		}
		filters.Cursor = cursor
	}
	return filters, nil
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "movieID")

	movie, err := s.repo.Movies.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found")
			return
		}
		s.logger.WithError(err).Error("fetch movie")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch movie")
		return
	}

	s.respondJSON(w, http.StatusOK, toMovieResponse(movie))
}

func toMovieResponse(movie domain.Movie) movieResponse {
	return movieResponse{
		ID:           movie.ID,
		Title:        movie.Title,
		ReleaseYear:  movie.ReleaseYear,
		AvgScore:     movie.Stats.AvgScore,
		ScoreNumber:  movie.Stats.ScoreNumber,
		ReviewNumber: movie.Stats.ReviewNumber,
	}
}
