package models

// Book metadata plus its rating map (user id -> rating).
// Books that only appear in the ratings source keep empty metadata fields.
type Book struct {
	ISBN    string            `json:"isbn" bson:"isbn"`
	Title   string            `json:"title" bson:"title"`
	Author  string            `json:"author" bson:"author"`
	Year    string            `json:"year" bson:"year"`
	Ratings map[string]Rating `json:"ratings,omitempty" bson:"-"`
}

// BookDoc is the metadata row as it comes from Books.csv or the books collection.
type BookDoc struct {
	ISBN   string `json:"isbn" bson:"isbn"`
	Title  string `json:"title" bson:"title"`
	Author string `json:"author" bson:"author"`
	Year   string `json:"year" bson:"year"`
}

// BookSummary is what listings return, without the full rating map.
type BookSummary struct {
	ISBN        string `json:"isbn"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Year        string `json:"year"`
	RatingCount int    `json:"ratingCount"`
}

func (b *Book) Summary() BookSummary {
	return BookSummary{
		ISBN:        b.ISBN,
		Title:       b.Title,
		Author:      b.Author,
		Year:        b.Year,
		RatingCount: len(b.Ratings),
	}
}
