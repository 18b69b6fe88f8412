// Package stats recomputes movie review aggregates incrementally. All
// functions are pure: no I/O, no knowledge of persistence.
package stats

import "github.com/cinescore/cinescore/internal/domain"

// UpdateAvgScore folds one more score into a running average without
// rescanning prior reviews. Under exact arithmetic the result equals the
// batch mean of all scores seen so far.
func UpdateAvgScore(currentAvg float64, currentCount int, newScore int) (float64, int) {
	newCount := currentCount + 1
	newAvg := (currentAvg*float64(currentCount) + float64(newScore)) / float64(newCount)
	return newAvg, newCount
}

// UpdateReviewNumber increments the free-text review counter when the review
// carries text. Any non-nil text counts, the empty string included.
func UpdateReviewNumber(currentCount int, reviewText *string) int {
	if reviewText != nil {
		return currentCount + 1
	}
	return currentCount
}

// Apply returns the aggregate state after admitting one review.
func Apply(current domain.MovieStats, score int, reviewText *string) domain.MovieStats {
	next := current
	next.AvgScore, next.ScoreNumber = UpdateAvgScore(current.AvgScore, current.ScoreNumber, score)
	next.ReviewNumber = UpdateReviewNumber(current.ReviewNumber, reviewText)
	return next
}
