package repository

import (
	"strings"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestBuildListQuery_NoFilters(t *testing.T) {
	query, args := buildListQuery(MovieListFilters{Limit: 20})

	if strings.Contains(query, "WHERE") {
		t.Fatalf("unset filters must add no WHERE clause: %s", query)
	}
	if !strings.Contains(query, "ORDER BY created_at, id") {
		t.Fatalf("default order must be insertion order: %s", query)
	}
	if strings.Contains(query, "avg_score DESC") {
		t.Fatalf("sort must not apply without the flag: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v, want none", args)
	}
}

func TestBuildListQuery_TitleAndYearCombineWithAnd(t *testing.T) {
	query, args := buildListQuery(MovieListFilters{
		TitleContains: strPtr("Te"),
		Year:          intPtr(2015),
		Limit:         20,
	})

	if !strings.Contains(query, "title LIKE $1") {
		t.Fatalf("missing title filter: %s", query)
	}
	if !strings.Contains(query, "release_year = $2") {
		t.Fatalf("missing year filter: %s", query)
	}
	if !strings.Contains(query, " AND ") {
		t.Fatalf("filters must combine with AND: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("args = %v, want 2", args)
	}
	if args[0] != "%Te%" {
		t.Fatalf("title arg = %v, want %%Te%%", args[0])
	}
	if args[1] != 2015 {
		t.Fatalf("year arg = %v, want 2015", args[1])
	}
}

func TestBuildListQuery_SortByAvgScore(t *testing.T) {
	query, _ := buildListQuery(MovieListFilters{SortByAvgScore: true, Limit: 20})

	if !strings.Contains(query, "ORDER BY avg_score DESC") {
		t.Fatalf("sort flag must order by avg_score descending: %s", query)
	}
}

func TestBuildListQuery_CursorIgnoredWhenSorting(t *testing.T) {
	cursor := &MovieCursor{CreatedAt: time.Now(), ID: "abc"}

	query, args := buildListQuery(MovieListFilters{Cursor: cursor, SortByAvgScore: true, Limit: 20})
	if strings.Contains(query, "created_at, id) >") || len(args) != 0 {
		t.Fatalf("cursor must not apply under avg-score order: %s %v", query, args)
	}

	query, args = buildListQuery(MovieListFilters{Cursor: cursor, Limit: 20})
	if !strings.Contains(query, "(created_at, id) > ($1, $2)") || len(args) != 2 {
		t.Fatalf("cursor must apply under default order: %s %v", query, args)
	}
}

func TestDecodeCursor_RoundTrip(t *testing.T) {
	cursor := MovieCursor{CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), ID: "movie-1"}
	token, err := encodeCursor(cursor)
	if err != nil {
		t.Fatalf("encode cursor: %v", err)
	}

	decoded, err := DecodeCursor(token)
	if err != nil {
		t.Fatalf("decode cursor: %v", err)
	}
	if decoded.ID != cursor.ID || !decoded.CreatedAt.Equal(cursor.CreatedAt) {
		t.Fatalf("decoded = %+v, want %+v", decoded, cursor)
	}
}

func TestDecodeCursor_Invalid(t *testing.T) {
	if _, err := DecodeCursor("not-base64!"); err == nil {
		t.Fatalf("expected error for invalid cursor token")
	}

	decoded, err := DecodeCursor("")
	if err != nil || decoded != nil {
		t.Fatalf("empty token should decode to nil cursor, got %v, %v", decoded, err)
	}
}
