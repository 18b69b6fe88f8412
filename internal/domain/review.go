package domain

import "time"

// Review represents a single user's review of a movie. At most one review
// exists per (user, movie) pair; the storage layer enforces this.
type Review struct {
	ID         string
	UserID     string
	MovieID    string
	Score      int
	ReviewText *string
	CreatedAt  time.Time
}

// Score bounds accepted for a review.
const (
	MinScore = 0
	MaxScore = 10
)
