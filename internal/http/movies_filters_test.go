package httpserver

import (
	"net/url"
	"testing"
)

func TestBuildMovieFilters(t *testing.T) {
	values, _ := url.ParseQuery("q= Te &year=2015&sortByAvgScore=false&limit=50")

	filters, err := buildMovieFilters(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.TitleContains == nil || *filters.TitleContains != "Te" {
		t.Fatalf("title filter not trimmed: %+v", filters.TitleContains)
	}
	if filters.Year == nil || *filters.Year != 2015 {
		t.Fatalf("year parse failed: %+v", filters.Year)
	}
	if filters.SortByAvgScore {
		t.Fatalf("sort flag should be false")
	}
	if filters.Limit != 50 {
		t.Fatalf("limit not parsed: %d", filters.Limit)
	}
}

func TestBuildMovieFilters_SortFlag(t *testing.T) {
	values, _ := url.ParseQuery("sortByAvgScore=true")
	filters, err := buildMovieFilters(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filters.SortByAvgScore {
		t.Fatalf("sort flag not parsed")
	}
}

func TestBuildMovieFilters_Unset(t *testing.T) {
	filters, err := buildMovieFilters(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.TitleContains != nil || filters.Year != nil || filters.SortByAvgScore || filters.Cursor != nil {
		t.Fatalf("unset query must produce empty filters: %+v", filters)
	}
}

func TestBuildMovieFilters_InvalidYear(t *testing.T) {
	values, _ := url.ParseQuery("year=abc")
	if _, err := buildMovieFilters(values); err == nil {
		t.Fatalf("expected error for invalid year")
	}
}

func TestBuildMovieFilters_CursorWithSortRejected(t *testing.T) {
	values, _ := url.ParseQuery("sortByAvgScore=true&cursor=eyJpZCI6ImEifQ==")
	if _, err := buildMovieFilters(values); err == nil {
		t.Fatalf("expected error for cursor combined with sort flag")
	}
}

func FuzzBuildMovieFilters(f *testing.F) {
	seeds := []string{
		"q=Inception&year=2010",
		"year=abc",
		"sortByAvgScore=yes",
		"limit=200",
		"cursor=%%%",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		values, err := url.ParseQuery(raw)
		if err != nil {
			return
		}
		_, _ = buildMovieFilters(values)
	})
}
