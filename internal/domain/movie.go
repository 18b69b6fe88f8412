package domain

import "time"

// MovieStats holds the derived review aggregates carried on each movie row.
// They are never set directly by a client; admission recomputes them.
type MovieStats struct {
	AvgScore     float64
	ScoreNumber  int
	ReviewNumber int
}

// Movie represents the canonical movie entity in the database/service.
type Movie struct {
	ID          string
	Title       string
	ReleaseYear int
	Stats       MovieStats
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EarliestReleaseYear is the lower bound for a movie's release year: the year
// of the first publicly documented film screening.
const EarliestReleaseYear = 1895
