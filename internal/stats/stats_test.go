package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cinescore/cinescore/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestUpdateAvgScore(t *testing.T) {
	tests := []struct {
		name      string
		avg       float64
		count     int
		score     int
		wantAvg   float64
		wantCount int
	}{
		{"first score", 0, 0, 10, 10.0, 1},
		{"second score", 10, 1, 6, 8.0, 2},
		{"two reviews then third", 5.5, 2, 4, 5.0, 3},
		{"seven reviews then eighth", 6.0, 7, 8, 6.25, 8},
		{"zero score", 4.0, 3, 0, 3.0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAvg, gotCount := UpdateAvgScore(tt.avg, tt.count, tt.score)
			if gotCount != tt.wantCount {
				t.Fatalf("count = %d, want %d", gotCount, tt.wantCount)
			}
			if math.Abs(gotAvg-tt.wantAvg) > 1e-9 {
				t.Fatalf("avg = %v, want %v", gotAvg, tt.wantAvg)
			}
		})
	}
}

func TestUpdateAvgScore_MatchesBatchMean(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for trial := 0; trial < 100; trial++ {
		n := 1 + rnd.Intn(200)
		var avg float64
		var count int
		var sum int
		for i := 0; i < n; i++ {
			score := rnd.Intn(domain.MaxScore + 1)
			sum += score
			avg, count = UpdateAvgScore(avg, count, score)
		}
		if count != n {
			t.Fatalf("count = %d, want %d", count, n)
		}
		batch := float64(sum) / float64(n)
		if math.Abs(avg-batch) > 1e-9 {
			t.Fatalf("incremental avg = %v, batch mean = %v (n=%d)", avg, batch, n)
		}
	}
}

func TestUpdateReviewNumber(t *testing.T) {
	tests := []struct {
		name  string
		count int
		text  *string
		want  int
	}{
		{"nil text", 3, nil, 3},
		{"non-empty text", 3, strPtr("Nice movie!"), 4},
		{"empty string still counts", 0, strPtr(""), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UpdateReviewNumber(tt.count, tt.text); got != tt.want {
				t.Fatalf("UpdateReviewNumber = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		start domain.MovieStats
		score int
		text  *string
		want  domain.MovieStats
	}{
		{
			name:  "fresh movie no text",
			start: domain.MovieStats{},
			score: 10,
			want:  domain.MovieStats{AvgScore: 10.0, ScoreNumber: 1, ReviewNumber: 0},
		},
		{
			name:  "fresh movie with text",
			start: domain.MovieStats{},
			score: 8,
			text:  strPtr("Nice movie!"),
			want:  domain.MovieStats{AvgScore: 8.0, ScoreNumber: 1, ReviewNumber: 1},
		},
		{
			name:  "existing aggregate with text",
			start: domain.MovieStats{AvgScore: 5.5, ScoreNumber: 2, ReviewNumber: 1},
			score: 4,
			text:  strPtr("Do not like it!"),
			want:  domain.MovieStats{AvgScore: 5.0, ScoreNumber: 3, ReviewNumber: 2},
		},
		{
			name:  "large aggregate no text",
			start: domain.MovieStats{AvgScore: 6.0, ScoreNumber: 7, ReviewNumber: 7},
			score: 8,
			want:  domain.MovieStats{AvgScore: 6.25, ScoreNumber: 8, ReviewNumber: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.start, tt.score, tt.text)
			if got.ScoreNumber != tt.want.ScoreNumber || got.ReviewNumber != tt.want.ReviewNumber {
				t.Fatalf("Apply = %+v, want %+v", got, tt.want)
			}
			if math.Abs(got.AvgScore-tt.want.AvgScore) > 1e-9 {
				t.Fatalf("AvgScore = %v, want %v", got.AvgScore, tt.want.AvgScore)
			}
		})
	}
}
