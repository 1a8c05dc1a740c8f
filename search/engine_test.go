package search

import (
	"fmt"
	"testing"

	"github.com/rushteam/bookrec/catalog"
	"github.com/rushteam/bookrec/core"
)

func buildTestEngine(t *testing.T, records []core.RawBook) *Engine {
	t.Helper()
	idx := catalog.Build(records, 0)
	if idx.Len() == 0 {
		t.Fatal("empty catalog index")
	}
	return BuildEngine(idx)
}

func testRecords() []core.RawBook {
	return []core.RawBook{
		{ID: "1", Title: "The Lord of the Rings", RatingsCount: "5000", URL: "u1"},
		{ID: "2", Title: "The Hobbit", RatingsCount: "4000", URL: "u2"},
		{ID: "3", Title: "A Game of Thrones", RatingsCount: "3000", URL: "u3"},
		{ID: "4", Title: "Dune", RatingsCount: "2000", URL: "u4"},
		{ID: "5", Title: "Foundation", RatingsCount: "1000", URL: "u5"},
	}
}

func ids(cands []core.Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.ID
	}
	return out
}

func TestSearchNormalizationInsensitive(t *testing.T) {
	e := buildTestEngine(t, testRecords())

	// identical queries up to case and punctuation must return identical
	// ordered results
	queries := []string{
		"the hobbit",
		"The Hobbit",
		"THE HOBBIT!!!",
		"the, hobbit?",
	}
	base := ids(e.Search(queries[0]))
	if len(base) == 0 {
		t.Fatal("no results for baseline query")
	}
	if base[0] != "2" {
		t.Fatalf("top result = %s, want 2 (The Hobbit)", base[0])
	}
	for _, q := range queries[1:] {
		got := ids(e.Search(q))
		if fmt.Sprint(got) != fmt.Sprint(base) {
			t.Fatalf("query %q results %v differ from baseline %v", q, got, base)
		}
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	e := buildTestEngine(t, testRecords())

	// empty query is a documented degenerate case, not an error
	got := e.Search("")
	if len(got) == 0 || len(got) > DefaultTopN {
		t.Fatalf("empty query returned %d results, want 1..%d", len(got), DefaultTopN)
	}
}

func TestSearchRespectsSignificanceThreshold(t *testing.T) {
	records := append(testRecords(),
		core.RawBook{ID: "6", Title: "The Hobbit", RatingsCount: "10", URL: "u6"},
	)
	e := buildTestEngine(t, records)

	// book 6 matches the query exactly but sits under the catalog
	// significance threshold, so it never appears
	for _, c := range e.Search("the hobbit") {
		if c.ID == "6" {
			t.Fatal("result contains a book below the significance threshold")
		}
	}
}

func TestSearchPrefersPopularDuplicate(t *testing.T) {
	records := []core.RawBook{
		{ID: "10", Title: "War and Peace", RatingsCount: "100", URL: "a"},
		{ID: "11", Title: "War and Peace", RatingsCount: "9000", URL: "b"},
		{ID: "12", Title: "Anna Karenina", RatingsCount: "500", URL: "c"},
	}
	e := buildTestEngine(t, records)

	got := e.Search("war and peace")
	if len(got) < 2 {
		t.Fatalf("got %d results, want at least 2", len(got))
	}
	if got[0].ID != "11" {
		t.Fatalf("top result = %s, want 11 (most rated edition first)", got[0].ID)
	}
}

func TestSearchIgnoresUnknownTokens(t *testing.T) {
	e := buildTestEngine(t, testRecords())

	with := ids(e.Search("dune"))
	without := ids(e.Search("dune zzzzunknownzzzz"))
	if with[0] != "4" || without[0] != "4" {
		t.Fatalf("top results = %s / %s, want 4 for both", with[0], without[0])
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"the hobbit", []string{"the", "hobbit"}},
		{"a b cd", []string{"cd"}}, // single-char tokens dropped
		{"", nil},
		{"   ", nil},
	}
	for _, tt := range tests {
		got := Tokenize(tt.in)
		if fmt.Sprint(got) != fmt.Sprint(tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
