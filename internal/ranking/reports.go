package ranking

import (
	"sort"

	"booksim/internal/models"
	"booksim/internal/store"
)

type BookEntry struct {
	ISBN string       `json:"isbn"`
	Book *models.Book `json:"book"`
}

type UserEntry struct {
	ID   string       `json:"userId"`
	User *models.User `json:"user"`
}

// TopBooksByTitle returns the first n books ordered by title (byte-wise
// ascending, ties by ISBN). n <= 0 gives an empty list.
func TopBooksByTitle(idx *store.BookIndex, n int) []BookEntry {
	if n <= 0 {
		return []BookEntry{}
	}
	books := idx.All()
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].Title < books[j].Title
	})
	if len(books) > n {
		books = books[:n]
	}
	out := make([]BookEntry, len(books))
	for i, b := range books {
		out[i] = BookEntry{ISBN: b.ISBN, Book: b}
	}
	return out
}

// TopUsersByRatingCount returns the n users with the most ratings, ties by id.
func TopUsersByRatingCount(idx *store.UserIndex, n int) []UserEntry {
	if n <= 0 {
		return []UserEntry{}
	}
	users := idx.All()
	sort.SliceStable(users, func(i, j int) bool {
		return len(users[i].Ratings) > len(users[j].Ratings)
	})
	if len(users) > n {
		users = users[:n]
	}
	out := make([]UserEntry, len(users))
	for i, u := range users {
		out[i] = UserEntry{ID: u.ID, User: u}
	}
	return out
}
