package dataset

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"booksim/internal/config"
	"booksim/internal/logging"
	"booksim/internal/models"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, content, 0o644); err != nil {
		t.Fatalf("could not write %s: %v", p, err)
	}
	return p
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	books := writeFile(t, dir, "Books.csv", []byte(
		"\"ISBN\";\"Book-Title\";\"Book-Author\";\"Year-Of-Publication\";\"Publisher\"\n"+
			"\"0001\";\"Caf\xe9 Society\";\"A. Writer\";\"1999\";\"Pub\"\n"+
			"\"0002\";\"Second\";\"B. Writer\";\"2001\"\n"+
			"\"0003\";\"Broken\"\n"+
			"\n"))
	ratings := writeFile(t, dir, "Book-Ratings.csv", []byte(
		"\"User-ID\";\"ISBN\";\"Book-Rating\"\n"+
			"\"u1\";\"0001\";\"5\"\n"+
			"\"u2\";\"0001\";\"3\"\n"+
			"\"u1\";\"0002\";\"4\"\n"+
			"\"u3\";\"0009\";\"7\"\n"+
			"\"u4\";\"0002\";\"great\"\n"+
			"\"u5\";\"0002\"\n"))

	s, stats, err := LoadCSV(books, ratings, CSVOptions{Encoding: "iso-8859-1", Header: true})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	b, ok := s.Books.Get("0001")
	if !ok {
		t.Fatal("book 0001 missing")
	}
	if b.Title != "Café Society" {
		t.Errorf("expected decoded title, got %q", b.Title)
	}
	if b.Year != "1999" {
		t.Errorf("expected year 1999, got %q", b.Year)
	}
	if len(b.Ratings) != 2 {
		t.Errorf("expected 2 ratings, got %d", len(b.Ratings))
	}
	if v, _ := b.Ratings["u1"].Float(); v != 5 || !b.Ratings["u1"].IsNumeric() {
		t.Errorf("expected numeric 5, got %v", b.Ratings["u1"])
	}

	orphan, ok := s.Books.Get("0009")
	if !ok || orphan.Title != "" || len(orphan.Ratings) != 1 {
		t.Errorf("orphan rating should create a placeholder book, got %+v", orphan)
	}

	want := Stats{Books: 3, Users: 3, Ratings: 4, SkippedBooks: 1, SkippedRatings: 2, OrphanRatings: 1}
	if stats != want {
		t.Errorf("expected stats %+v, got %+v", want, stats)
	}
}

func TestLoadCSVWithoutHeader(t *testing.T) {
	dir := t.TempDir()
	books := writeFile(t, dir, "b.csv", []byte("1;One;X;2000\n"))
	ratings := writeFile(t, dir, "r.csv", []byte("u1;1;8\n"))

	s, _, err := LoadCSV(books, ratings, CSVOptions{Encoding: "utf-8"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if s.Books.Len() != 1 || s.Users.Len() != 1 {
		t.Errorf("expected 1 book and 1 user, got %d and %d", s.Books.Len(), s.Users.Len())
	}
}

func TestLoadCSVErrors(t *testing.T) {
	dir := t.TempDir()
	books := writeFile(t, dir, "b.csv", []byte("1;One;X;2000\n"))

	if _, _, err := LoadCSV(filepath.Join(dir, "missing.csv"), books, CSVOptions{}); err == nil {
		t.Error("expected an error for a missing books file")
	}
	if _, _, err := LoadCSV(books, filepath.Join(dir, "missing.csv"), CSVOptions{}); err == nil {
		t.Error("expected an error for a missing ratings file")
	}
	if _, _, err := LoadCSV(books, books, CSVOptions{Encoding: "ebcdic"}); err == nil {
		t.Error("expected an error for an unknown encoding")
	}
}

func TestSplitFields(t *testing.T) {
	got := splitFields(` "a" ; b ;""c""`)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

type fakeBooks []models.BookDoc

func (f fakeBooks) EachBook(_ context.Context, fn func(models.BookDoc) error) error {
	for _, d := range f {
		if err := fn(d); err != nil {
			return err
		}
	}
	return nil
}

type fakeRatings struct {
	docs []models.RatingDoc
	err  error
}

func (f fakeRatings) EachRating(_ context.Context, fn func(models.RatingDoc) error) error {
	for _, d := range f.docs {
		if err := fn(d); err != nil {
			return err
		}
	}
	return f.err
}

func TestLoadMongo(t *testing.T) {
	books := fakeBooks{{ISBN: "1", Title: "One"}, {ISBN: ""}}
	ratings := fakeRatings{docs: []models.RatingDoc{
		{UserID: "u1", ISBN: "1", Rating: models.NumericRating(5)},
		{UserID: "u2", ISBN: "1", Rating: models.RawRating(`"4"`)},
		{UserID: "u3", ISBN: "2", Rating: models.NumericRating(1)},
		{UserID: "", ISBN: "1", Rating: models.NumericRating(1)},
	}}

	s, stats, err := LoadMongo(context.Background(), books, ratings)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want := Stats{Books: 2, Users: 3, Ratings: 3, SkippedBooks: 1, SkippedRatings: 1, OrphanRatings: 1}
	if stats != want {
		t.Errorf("expected stats %+v, got %+v", want, stats)
	}
	r, _ := s.Books.Ratings("1")
	if r["u2"].IsNumeric() {
		t.Error("text ratings from mongo should stay raw")
	}
	if v, err := r["u2"].Float(); err != nil || v != 4 {
		t.Errorf("expected raw rating to normalize to 4, got %v (%v)", v, err)
	}
}

func TestLoadMongoPropagatesErrors(t *testing.T) {
	boom := errors.New("cursor died")
	_, _, err := LoadMongo(context.Background(), fakeBooks{}, fakeRatings{err: boom})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped cursor error, got %v", err)
	}
}

func TestFromConfig(t *testing.T) {
	dir := t.TempDir()
	books := writeFile(t, dir, "b.csv", []byte("isbn;title;author;year\n1;One;X;2000\n"))
	ratings := writeFile(t, dir, "r.csv", []byte("user;isbn;rating\nu1;1;8\nu2;1;6\n"))

	var buf bytes.Buffer
	logging.Init(logging.Config{Format: "json", Output: &buf})
	defer logging.Init(logging.Config{Output: &bytes.Buffer{}})

	cfg := &config.Config{DataSource: SourceCSV, BooksCSV: books, RatingsCSV: ratings, CSVEncoding: "utf-8", CSVHeader: true}
	s, stats, err := FromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if s.Books.Len() != 1 || stats.Ratings != 2 {
		t.Errorf("unexpected load: %d books, stats %+v", s.Books.Len(), stats)
	}
	if n := strings.Count(buf.String(), `"message":"dataset loaded"`); n != 1 {
		t.Errorf("expected one load summary, got %d in %s", n, buf.String())
	}

	cfg.DataSource = "sqlite"
	if _, _, err := FromConfig(context.Background(), cfg); err == nil {
		t.Error("expected an error for an unknown source")
	}
}
