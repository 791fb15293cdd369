// Package ranking orders the entities of an index: nearest neighbors of a
// reference entity under a similarity metric, and the top-N reports.
package ranking

import (
	"errors"
	"fmt"
	"sort"

	"booksim/internal/similarity"
	"booksim/internal/store"
)

var (
	ErrInvalidCount  = errors.New("count must be a positive integer")
	ErrUnknownEntity = errors.New("entity not found")
)

// Neighbor is one ranked candidate.
type Neighbor struct {
	ID     string            `json:"id"`
	Score  float64           `json:"score"`
	Reason similarity.Reason `json:"reason"`
}

type Options struct {
	// OverlapOnly drops candidates that could not be scored (no common
	// ratings and the other degenerate reasons). By default they stay in
	// the ranking with score 0.
	OverlapOnly bool
}

// Nearest ranks every eligible entity of idx against ref and returns the
// closest n. An entity is eligible when it is not ref and all of its ratings
// are already numeric. Candidates are visited in id order and sorted stably,
// so equal scores keep id order. Fewer than n results come back when there
// are fewer candidates.
func Nearest(ref string, n int, idx store.Index, m similarity.Metric, opts Options) ([]Neighbor, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}
	if _, ok := idx.Ratings(ref); !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrUnknownEntity, idx.Kind(), ref)
	}
	if m.Score == nil {
		m = similarity.EuclideanMetric
	}

	var candidates []Neighbor
	for _, id := range idx.IDs() {
		if id == ref || !eligible(idx, id) {
			continue
		}
		res := m.Score(ref, id, idx)
		if opts.OverlapOnly && !res.OK() {
			continue
		}
		candidates = append(candidates, Neighbor{ID: id, Score: res.Score, Reason: res.Reason})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return m.Closer(candidates[i].Score, candidates[j].Score)
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	if candidates == nil {
		candidates = []Neighbor{}
	}
	return candidates, nil
}

func eligible(idx store.Index, id string) bool {
	ratings, _ := idx.Ratings(id)
	for _, r := range ratings {
		if !r.IsNumeric() {
			return false
		}
	}
	return true
}
