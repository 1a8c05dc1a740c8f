package recommender

import (
	"context"
	"testing"

	"github.com/rushteam/bookrec/config"
	"github.com/rushteam/bookrec/core"
)

// fixture: book 1 is a bestseller, book 2 a niche title loved by the
// same neighborhood
func testRecommender(t *testing.T) *Recommender {
	t.Helper()
	cfg := config.Default()
	cfg.Thresholds.MinNeighborCount = 2 // test-scale significance cut
	return buildRecommender(t, cfg)
}

func buildRecommender(t *testing.T, cfg *config.Config) *Recommender {
	t.Helper()

	books := []core.RawBook{
		{ID: "1", Title: "The Bestseller", RatingsCount: "1000", URL: "http://books/1"},
		{ID: "2", Title: "The Hidden Gem", RatingsCount: "50", URL: "http://books/2"},
		{ID: "3", Title: "Unrelated", RatingsCount: "500", URL: "http://books/3"},
	}
	pairs := []core.IDPair{
		{InteractionID: "101", CatalogID: "1"},
		{InteractionID: "102", CatalogID: "2"},
		{InteractionID: "103", CatalogID: "3"},
	}
	interactions := []core.Interaction{
		{UserID: "n1", ItemID: "101", Rating: 5},
		{UserID: "n2", ItemID: "101", Rating: 5},
		{UserID: "n3", ItemID: "101", Rating: 4},
		{UserID: "n1", ItemID: "102", Rating: 5},
		{UserID: "n2", ItemID: "102", Rating: 4},
		{UserID: "n3", ItemID: "102", Rating: 3},
		{UserID: "stranger", ItemID: "103", Rating: 5},
	}

	r, err := New(cfg, books, interactions, pairs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestSearchFacade(t *testing.T) {
	r := testRecommender(t)

	got := r.Search("hidden gem")
	if len(got) == 0 || got[0].ID != "2" {
		t.Fatalf("Search = %v, want book 2 first", got)
	}
	if got[0].Title != "The Hidden Gem" || got[0].URL != "http://books/2" {
		t.Fatalf("candidate metadata = %+v", got[0])
	}
}

func TestRecommendEndToEnd(t *testing.T) {
	r := testRecommender(t)
	ctx := context.Background()
	s := core.NewSession()

	// no liked books yet
	if _, err := r.FindSimilarUsers(ctx, s); !core.IsEmptySelection(err) {
		t.Fatalf("FindSimilarUsers error = %v, want EMPTY_SELECTION", err)
	}
	// no neighbors yet
	if _, err := r.Recommend(ctx, s); !core.IsEmptyNeighborhood(err) {
		t.Fatalf("Recommend error = %v, want EMPTY_NEIGHBORHOOD", err)
	}

	if err := r.AddLikedBook(s, "1"); err != nil {
		t.Fatalf("AddLikedBook: %v", err)
	}
	added, err := r.FindSimilarUsers(ctx, s)
	if err != nil {
		t.Fatalf("FindSimilarUsers: %v", err)
	}
	if added != 3 {
		t.Fatalf("added = %d, want 3 neighbors", added)
	}

	got, err := r.Recommend(ctx, s)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(got))
	}
	// the liked bestseller never comes back; the niche title its
	// neighborhood loves does
	if got[0].ID != "2" {
		t.Fatalf("recommendation = %s, want 2", got[0].ID)
	}
	if got[0].Title != "The Hidden Gem" || got[0].URL != "http://books/2" {
		t.Fatalf("candidate metadata = %+v", got[0])
	}
	// score = neighbor_count² / ratings = 9/50
	if got[0].Score != 0.18 {
		t.Fatalf("score = %v, want 0.18", got[0].Score)
	}
}

func TestRecommendHotFallback(t *testing.T) {
	cfg := config.Default()
	cfg.Thresholds.MinNeighborCount = 2
	cfg.Recommend.Fallback = true

	r := buildRecommender(t, cfg)
	defer r.Close()

	ctx := context.Background()
	s := core.NewSession()

	// sparse session: no liked books, no neighbors; the hot source fills
	// in with the catalog popularity list instead of EMPTY_NEIGHBORHOOD
	got, err := r.Recommend(ctx, s)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 3 || got[0].ID != "1" || got[1].ID != "3" || got[2].ID != "2" {
		t.Fatalf("fallback recommendations = %v, want [1 3 2] by ratings", got)
	}
	if got[0].Title != "The Bestseller" {
		t.Fatalf("fallback candidate missing catalog metadata: %+v", got[0])
	}

	// once the neighborhood exists, neighbor candidates outrank the
	// zero-scored hot ones and the liked book is still excluded
	_ = r.AddLikedBook(s, "1")
	if _, err := r.FindSimilarUsers(ctx, s); err != nil {
		t.Fatalf("FindSimilarUsers: %v", err)
	}
	got, err = r.Recommend(ctx, s)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "3" {
		t.Fatalf("recommendations = %v, want [2 3]", got)
	}
	if got[0].Score != 0.18 {
		t.Fatalf("neighbor candidate score = %v, want 0.18", got[0].Score)
	}
	if got[1].Score != 0 {
		t.Fatalf("hot candidate score = %v, want 0", got[1].Score)
	}
}

func TestRecommendDefaultThresholds(t *testing.T) {
	// same shape at production scale: 26 neighbors clear the default
	// strictly-greater-than-25 significance cut
	books := []core.RawBook{
		{ID: "1", Title: "The Bestseller", RatingsCount: "1000", URL: "u1"},
		{ID: "2", Title: "The Hidden Gem", RatingsCount: "50", URL: "u2"},
	}
	pairs := []core.IDPair{
		{InteractionID: "101", CatalogID: "1"},
		{InteractionID: "102", CatalogID: "2"},
	}
	var interactions []core.Interaction
	for i := 0; i < 26; i++ {
		user := "n" + string(rune('a'+i))
		interactions = append(interactions,
			core.Interaction{UserID: user, ItemID: "101", Rating: 5},
			core.Interaction{UserID: user, ItemID: "102", Rating: 4},
		)
	}

	r, err := New(nil, books, interactions, pairs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	s := core.NewSession()
	_ = r.AddLikedBook(s, "1")
	if added, err := r.FindSimilarUsers(ctx, s); err != nil || added != 26 {
		t.Fatalf("FindSimilarUsers = %d, %v, want 26", added, err)
	}

	got, err := r.Recommend(ctx, s)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("Recommend = %v, want only book 2", got)
	}
}

func TestRecommendRoundReset(t *testing.T) {
	r := testRecommender(t)
	ctx := context.Background()
	s := core.NewSession()

	_ = r.AddLikedBook(s, "1")
	if _, err := r.FindSimilarUsers(ctx, s); err != nil {
		t.Fatalf("FindSimilarUsers: %v", err)
	}
	if _, err := r.Recommend(ctx, s); err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	// clearing only the liked list keeps accumulated neighbors usable
	s.ResetLiked()
	if _, err := r.Recommend(ctx, s); err != nil {
		t.Fatalf("Recommend after ResetLiked: %v", err)
	}

	// ending the round drops both
	s.ResetRound()
	if _, err := r.Recommend(ctx, s); !core.IsEmptyNeighborhood(err) {
		t.Fatalf("Recommend after ResetRound error = %v, want EMPTY_NEIGHBORHOOD", err)
	}
}

func TestRecommendRules(t *testing.T) {
	books := []core.RawBook{
		{ID: "1", Title: "Liked", RatingsCount: "100", URL: "u1"},
		{ID: "2", Title: "Small", RatingsCount: "50", URL: "u2"},
		{ID: "3", Title: "Huge", RatingsCount: "900000", URL: "u3"},
	}
	pairs := []core.IDPair{
		{InteractionID: "101", CatalogID: "1"},
		{InteractionID: "102", CatalogID: "2"},
		{InteractionID: "103", CatalogID: "3"},
	}
	interactions := []core.Interaction{
		{UserID: "n1", ItemID: "101", Rating: 5},
		{UserID: "n2", ItemID: "101", Rating: 5},
		{UserID: "n3", ItemID: "101", Rating: 5},
		{UserID: "n1", ItemID: "102", Rating: 5},
		{UserID: "n2", ItemID: "102", Rating: 5},
		{UserID: "n3", ItemID: "102", Rating: 5},
		{UserID: "n1", ItemID: "103", Rating: 5},
		{UserID: "n2", ItemID: "103", Rating: 5},
		{UserID: "n3", ItemID: "103", Rating: 5},
	}

	cfg := config.Default()
	cfg.Thresholds.MinNeighborCount = 2
	cfg.Recommend.Rules = []string{`item.meta.ratings < 100000`}

	r, err := New(cfg, books, interactions, pairs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	s := core.NewSession()
	_ = r.AddLikedBook(s, "1")
	if _, err := r.FindSimilarUsers(ctx, s); err != nil {
		t.Fatalf("FindSimilarUsers: %v", err)
	}
	got, err := r.Recommend(ctx, s)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// the configured rule blocks the 900k-ratings title
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("Recommend = %v, want only book 2", got)
	}
}

func TestNewRejectsBadRule(t *testing.T) {
	cfg := config.Default()
	cfg.Recommend.Rules = []string{`item.meta.ratings <`}
	if _, err := New(cfg, nil, nil, nil); err == nil {
		t.Fatal("expected error for malformed rule")
	}
}

func TestNewRejectsConflictingPairs(t *testing.T) {
	pairs := []core.IDPair{
		{InteractionID: "101", CatalogID: "1"},
		{InteractionID: "101", CatalogID: "2"},
	}
	if _, err := New(nil, nil, nil, pairs); err == nil {
		t.Fatal("expected error for conflicting id pairs")
	}
}
