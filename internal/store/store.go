// Package store holds the two read-only indexes built from the ratings
// dataset: books by ISBN and users by id. Both indexes are views over the
// same (user, book, rating) facts and are never modified after Build.
package store

import (
	"sort"

	"booksim/internal/models"
)

// Index is the read side shared by the book and user indexes.
type Index interface {
	// Kind names the entities, plural ("books", "users").
	Kind() string
	Ratings(id string) (map[string]models.Rating, bool)
	// IDs returns every identifier in ascending order.
	IDs() []string
	Len() int
}

type Store struct {
	Books *BookIndex
	Users *UserIndex
}

// BookIndex maps ISBN -> book record.
type BookIndex struct {
	books map[string]*models.Book
	ids   []string
}

func (i *BookIndex) Kind() string { return "books" }

func (i *BookIndex) Len() int { return len(i.books) }

func (i *BookIndex) IDs() []string {
	out := make([]string, len(i.ids))
	copy(out, i.ids)
	return out
}

func (i *BookIndex) Ratings(isbn string) (map[string]models.Rating, bool) {
	b, ok := i.books[isbn]
	if !ok {
		return nil, false
	}
	return b.Ratings, true
}

// Get returns the book record. Callers must treat it as read-only.
func (i *BookIndex) Get(isbn string) (*models.Book, bool) {
	b, ok := i.books[isbn]
	return b, ok
}

// All returns every book in ISBN order.
func (i *BookIndex) All() []*models.Book {
	out := make([]*models.Book, 0, len(i.ids))
	for _, id := range i.ids {
		out = append(out, i.books[id])
	}
	return out
}

// UserIndex maps user id -> user record.
type UserIndex struct {
	users map[string]*models.User
	ids   []string
}

func (i *UserIndex) Kind() string { return "users" }

func (i *UserIndex) Len() int { return len(i.users) }

func (i *UserIndex) IDs() []string {
	out := make([]string, len(i.ids))
	copy(out, i.ids)
	return out
}

func (i *UserIndex) Ratings(id string) (map[string]models.Rating, bool) {
	u, ok := i.users[id]
	if !ok {
		return nil, false
	}
	return u.Ratings, true
}

func (i *UserIndex) Get(id string) (*models.User, bool) {
	u, ok := i.users[id]
	return u, ok
}

func (i *UserIndex) All() []*models.User {
	out := make([]*models.User, 0, len(i.ids))
	for _, id := range i.ids {
		out = append(out, i.users[id])
	}
	return out
}

// Ratings counts the facts in the store (same number from either side).
func (s *Store) Ratings() int {
	n := 0
	for _, b := range s.Books.books {
		n += len(b.Ratings)
	}
	return n
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
