package store

import "booksim/internal/models"

// Builder accumulates metadata and ratings before the indexes are frozen.
// A Builder is not safe for concurrent use and must not be used after Build.
type Builder struct {
	books map[string]*models.Book
	users map[string]*models.User
}

func NewBuilder() *Builder {
	return &Builder{
		books: make(map[string]*models.Book),
		users: make(map[string]*models.User),
	}
}

// AddBook records metadata. Ratings already attached to the ISBN are kept.
func (b *Builder) AddBook(doc models.BookDoc) {
	if book, ok := b.books[doc.ISBN]; ok {
		book.Title = doc.Title
		book.Author = doc.Author
		book.Year = doc.Year
		return
	}
	b.books[doc.ISBN] = &models.Book{
		ISBN:    doc.ISBN,
		Title:   doc.Title,
		Author:  doc.Author,
		Year:    doc.Year,
		Ratings: make(map[string]models.Rating),
	}
}

// AddRating writes the fact into both indexes. A book without metadata is
// created with empty title, author and year. A repeated (user, book) pair
// replaces the previous rating on both sides.
func (b *Builder) AddRating(userID, isbn string, r models.Rating) {
	book, ok := b.books[isbn]
	if !ok {
		book = &models.Book{ISBN: isbn, Ratings: make(map[string]models.Rating)}
		b.books[isbn] = book
	}
	book.Ratings[userID] = r

	user, ok := b.users[userID]
	if !ok {
		user = &models.User{ID: userID, Ratings: make(map[string]models.Rating)}
		b.users[userID] = user
	}
	user.Ratings[isbn] = r
}

func (b *Builder) Build() *Store {
	s := &Store{
		Books: &BookIndex{books: b.books, ids: sortedKeys(b.books)},
		Users: &UserIndex{users: b.users, ids: sortedKeys(b.users)},
	}
	b.books, b.users = nil, nil
	return s
}
