// Package similarity computes distance and similarity scores between two
// entities of a rating index. Every metric works on the common ratings of
// the pair: the ratings both entities share by key.
//
// Degenerate inputs (unknown ids, no overlap, zero magnitude, zero variance)
// are ordinary results carrying a Reason and an explanation, not errors.
package similarity

import (
	"sort"

	"booksim/internal/models"
)

// RatingSource is the part of an index the metrics need.
type RatingSource interface {
	Kind() string
	Ratings(id string) (map[string]models.Rating, bool)
}

// Pair holds the two ratings given to one shared counterpart.
type Pair struct {
	Key string
	A   float64
	B   float64
}

// CommonRatings intersects two rating maps by key. Keys are compared with
// wrapping quotes removed and values are normalized to float64. Pairs come
// back in key order so sums are reproducible.
func CommonRatings(a, b map[string]models.Rating) ([]Pair, error) {
	na := normalizeKeys(a)
	nb := normalizeKeys(b)

	small, large := na, nb
	if len(large) < len(small) {
		small, large = large, small
	}
	keys := make([]string, 0, len(small))
	for k := range small {
		if _, ok := large[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		va, err := na[k].Float()
		if err != nil {
			return nil, err
		}
		vb, err := nb[k].Float()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Key: k, A: va, B: vb})
	}
	return pairs, nil
}

func normalizeKeys(m map[string]models.Rating) map[string]models.Rating {
	clean := true
	for k := range m {
		if models.TrimQuotes(k) != k {
			clean = false
			break
		}
	}
	if clean {
		return m
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]models.Rating, len(m))
	for _, k := range keys {
		out[models.TrimQuotes(k)] = m[k]
	}
	return out
}

// split returns the A and B columns of pairs.
func split(pairs []Pair) (xs, ys []float64) {
	xs = make([]float64, len(pairs))
	ys = make([]float64, len(pairs))
	for i, p := range pairs {
		xs[i] = p.A
		ys[i] = p.B
	}
	return xs, ys
}
