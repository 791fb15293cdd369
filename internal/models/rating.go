package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrNotFinite = errors.New("rating is not a finite number")

// Rating is a single rating value as stored in a rating map.
// Values read from typed sources are numeric; values read as text are kept
// raw and normalized on demand.
type Rating struct {
	value   float64
	raw     string
	numeric bool
}

func NumericRating(v float64) Rating {
	return Rating{value: v, numeric: true}
}

func RawRating(s string) Rating {
	return Rating{raw: s}
}

// ParseRating normalizes s right away. The returned rating is numeric.
func ParseRating(s string) (Rating, error) {
	v, err := parseRaw(s)
	if err != nil {
		return Rating{}, err
	}
	return NumericRating(v), nil
}

// IsNumeric reports whether the rating was already normalized when stored.
func (r Rating) IsNumeric() bool { return r.numeric }

// Float returns the rating as float64, stripping wrapping quotes from raw values.
func (r Rating) Float() (float64, error) {
	if r.numeric {
		return r.value, nil
	}
	return parseRaw(r.raw)
}

func (r Rating) String() string {
	if r.numeric {
		return strconv.FormatFloat(r.value, 'g', -1, 64)
	}
	return r.raw
}

// MarshalJSON writes numeric ratings as numbers and raw ones as strings.
func (r Rating) MarshalJSON() ([]byte, error) {
	if r.numeric {
		return []byte(strconv.FormatFloat(r.value, 'g', -1, 64)), nil
	}
	return []byte(strconv.Quote(r.raw)), nil
}

func parseRaw(s string) (float64, error) {
	v, err := strconv.ParseFloat(TrimQuotes(s), 64)
	if err != nil {
		return 0, fmt.Errorf("rating %q: %w", s, err)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("rating %q: %w", s, ErrNotFinite)
	}
	return v, nil
}

// TrimQuotes drops every leading and trailing double quote.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// RatingDoc is a (user, book, rating) fact as read from a source.
type RatingDoc struct {
	UserID string `json:"userId" bson:"userId"`
	ISBN   string `json:"isbn" bson:"isbn"`
	Rating Rating `json:"rating" bson:"-"`
}
