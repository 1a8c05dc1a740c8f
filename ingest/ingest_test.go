package ingest

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseBooks(t *testing.T) {
	lines := strings.Join([]string{
		`{"book_id":"1","title_without_series":"The Hobbit","ratings_count":"5000","url":"u1"}`,
		`{"book_id":"2","title_without_series":"Dune","ratings_count":2000,"url":"u2"}`, // numeric ratings_count
		`not json at all`,
		`{"title_without_series":"No ID","ratings_count":"10","url":"u3"}`,
		`{"book_id":"3","title_without_series":"Sparse"}`,
	}, "\n")

	books, err := ParseBooks(strings.NewReader(lines))
	if err != nil {
		t.Fatalf("ParseBooks: %v", err)
	}
	if len(books) != 3 {
		t.Fatalf("got %d books, want 3", len(books))
	}
	if books[0].ID != "1" || books[0].Title != "The Hobbit" || books[0].RatingsCount != "5000" {
		t.Fatalf("books[0] = %+v", books[0])
	}
	if books[1].RatingsCount != "2000" {
		t.Fatalf("numeric ratings_count parsed as %q, want 2000", books[1].RatingsCount)
	}
	if books[2].ID != "3" || books[2].RatingsCount != "" {
		t.Fatalf("books[2] = %+v", books[2])
	}
}

func TestReadBooksGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gz := gzip.NewWriter(f)
	_, _ = gz.Write([]byte(`{"book_id":"1","title_without_series":"A","ratings_count":"30","url":"u"}` + "\n"))
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	books, err := ReadBooks(path)
	if err != nil {
		t.Fatalf("ReadBooks: %v", err)
	}
	if len(books) != 1 || books[0].ID != "1" {
		t.Fatalf("books = %+v", books)
	}
}

func TestReadBooksNotGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json.gz")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadBooks(path); err == nil {
		t.Fatal("expected error for non-gzip input")
	}
}

func TestParseInteractions(t *testing.T) {
	// column order differs from the struct order on purpose
	body := strings.Join([]string{
		"rating,user_id,book_id,extra",
		"5,u1,101,x",
		"bad,u2,102,x",
		"3,u3,103,x",
	}, "\n")

	recs, err := ParseInteractions(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ParseInteractions: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].UserID != "u1" || recs[0].ItemID != "101" || recs[0].Rating != 5 {
		t.Fatalf("recs[0] = %+v", recs[0])
	}
	if recs[1].UserID != "u3" || recs[1].Rating != 3 {
		t.Fatalf("recs[1] = %+v", recs[1])
	}
}

func TestParseInteractionsMissingColumns(t *testing.T) {
	body := "user_id,score\nu1,5\n"
	if _, err := ParseInteractions(strings.NewReader(body)); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestParseIDPairs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{
			name: "with header",
			in:   "book_id_csv,book_id\n101,1\n102,2\n",
			want: 2,
		},
		{
			name: "without header",
			in:   "101,1\n102,2\n",
			want: 2,
		},
		{
			name: "skips short lines",
			in:   "101,1\nbroken\n,\n102,2\n",
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, err := ParseIDPairs(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("ParseIDPairs: %v", err)
			}
			if len(pairs) != tt.want {
				t.Fatalf("got %d pairs, want %d", len(pairs), tt.want)
			}
			if pairs[0].InteractionID != "101" || pairs[0].CatalogID != "1" {
				t.Fatalf("pairs[0] = %+v", pairs[0])
			}
		})
	}
}
