// Package dataset builds the rating store from the Book-Crossing style
// files (Books.csv, Book-Ratings.csv) or from the Mongo collections.
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"booksim/internal/logging"
	"booksim/internal/models"
	"booksim/internal/store"
)

const separator = ";"

type CSVOptions struct {
	// Encoding is "iso-8859-1" (the Book-Crossing dump) or "utf-8".
	Encoding string
	// Header skips the first line of each file.
	Header bool
}

// Stats counts what a load kept and skipped.
type Stats struct {
	Books          int `json:"books"`
	Users          int `json:"users"`
	Ratings        int `json:"ratings"`
	SkippedBooks   int `json:"skippedBooks"`
	SkippedRatings int `json:"skippedRatings"`
	// OrphanRatings reference an ISBN without a metadata row.
	OrphanRatings int `json:"orphanRatings"`
}

// LoadCSV reads both files and returns the frozen store. Malformed rows are
// skipped and logged; only I/O failures abort the load.
func LoadCSV(booksPath, ratingsPath string, opts CSVOptions) (*store.Store, Stats, error) {
	logger := logging.Component("dataset")
	var stats Stats
	b := store.NewBuilder()
	known := make(map[string]struct{})

	err := readLines(booksPath, opts, func(line int, fields []string) {
		if len(fields) < 4 {
			stats.SkippedBooks++
			logger.Warn().Str("file", booksPath).Int("line", line).Int("fields", len(fields)).Msg("invalid book row, skipping")
			return
		}
		doc := models.BookDoc{ISBN: fields[0], Title: fields[1], Author: fields[2], Year: fields[3]}
		if doc.ISBN == "" {
			stats.SkippedBooks++
			logger.Warn().Str("file", booksPath).Int("line", line).Msg("book row without ISBN, skipping")
			return
		}
		b.AddBook(doc)
		known[doc.ISBN] = struct{}{}
	})
	if err != nil {
		return nil, stats, err
	}

	err = readLines(ratingsPath, opts, func(line int, fields []string) {
		if len(fields) != 3 {
			stats.SkippedRatings++
			logger.Warn().Str("file", ratingsPath).Int("line", line).Int("fields", len(fields)).Msg("invalid rating row, skipping")
			return
		}
		userID, isbn := fields[0], fields[1]
		r, err := models.ParseRating(fields[2])
		if err != nil || userID == "" || isbn == "" {
			stats.SkippedRatings++
			logger.Warn().Str("file", ratingsPath).Int("line", line).Str("value", fields[2]).Msg("unparseable rating row, skipping")
			return
		}
		if _, ok := known[isbn]; !ok {
			stats.OrphanRatings++
		}
		b.AddRating(userID, isbn, r)
	})
	if err != nil {
		return nil, stats, err
	}

	s := b.Build()
	stats.Books = s.Books.Len()
	stats.Users = s.Users.Len()
	stats.Ratings = s.Ratings()
	return s, stats, nil
}

func readLines(path string, opts CSVOptions, fn func(line int, fields []string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r, err := decoder(f, opts.Encoding)
	if err != nil {
		return err
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if line == 1 && opts.Header {
			continue
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fn(line, splitFields(text))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "iso-8859-1", "latin1", "latin-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "utf-8", "utf8":
		return r, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// splitFields splits on ';' and cleans every field: whitespace and wrapping
// quotes removed, text in NFC.
func splitFields(line string) []string {
	parts := strings.Split(line, separator)
	for i, p := range parts {
		parts[i] = norm.NFC.String(models.TrimQuotes(strings.TrimSpace(p)))
	}
	return parts
}
