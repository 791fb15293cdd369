package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"booksim/internal/cache"
	"booksim/internal/dataset"
	"booksim/internal/logging"
	"booksim/internal/metrics"
	"booksim/internal/models"
	"booksim/internal/ranking"
	"booksim/internal/similarity"
	"booksim/internal/store"
	"booksim/internal/validation"
)

const (
	DefaultN = 10
	MaxN     = 1000
)

// SnapshotStore persists neighbor results across restarts.
type SnapshotStore interface {
	// FindSimilar returns nil, nil when nothing is stored under key.
	FindSimilar(ctx context.Context, key string) (*models.SimilarityDoc, error)
	SaveSimilar(ctx context.Context, key string, doc *models.SimilarityDoc) error
}

type QueryService struct {
	store     *store.Store
	summary   models.DatasetSummary
	cacheTTL  int
	snapshots SnapshotStore
}

func NewQueryService(s *store.Store, stats dataset.Stats, source string, cacheTTL int) *QueryService {
	metrics.SetDataset(s.Books.Len(), s.Users.Len(), s.Ratings())
	return &QueryService{
		store: s,
		summary: models.DatasetSummary{
			Source:         source,
			Books:          s.Books.Len(),
			Users:          s.Users.Len(),
			Ratings:        s.Ratings(),
			SkippedBooks:   stats.SkippedBooks,
			SkippedRatings: stats.SkippedRatings,
			OrphanRatings:  stats.OrphanRatings,
			LoadedAt:       time.Now().UTC(),
		},
		cacheTTL: cacheTTL,
	}
}

// WithSnapshots makes neighbor queries read and write st after the Redis cache.
func (s *QueryService) WithSnapshots(st SnapshotStore) *QueryService {
	s.snapshots = st
	return s
}

type CompareRequest struct {
	A      string  `validate:"required"`
	B      string  `validate:"required"`
	Metric string  `validate:"omitempty,oneof=euclidean manhattan minkowski cosine pearson"`
	P      float64 `validate:"omitempty,gt=0,max=100"`
}

type SimilarRequest struct {
	ID          string  `validate:"required"`
	N           int     `validate:"min=1,max=1000"`
	Metric      string  `validate:"omitempty,oneof=euclidean manhattan minkowski cosine pearson"`
	P           float64 `validate:"omitempty,gt=0,max=100"`
	OverlapOnly bool
	Refresh     bool
}

// CompareBooks scores two books with the named metric. Degenerate pairs come
// back as a Result with a non-ok Reason, not as an error.
func (s *QueryService) CompareBooks(ctx context.Context, req CompareRequest) (similarity.Result, error) {
	return s.compare(ctx, "compare_books", s.store.Books, req)
}

func (s *QueryService) CompareUsers(ctx context.Context, req CompareRequest) (similarity.Result, error) {
	return s.compare(ctx, "compare_users", s.store.Users, req)
}

func (s *QueryService) compare(_ context.Context, op string, idx store.Index, req CompareRequest) (similarity.Result, error) {
	start := time.Now()
	req.Metric = strings.ToLower(req.Metric)
	if err := validation.Struct(req); err != nil {
		return similarity.Result{}, err
	}
	m, err := similarity.Lookup(req.Metric, req.P)
	if err != nil {
		return similarity.Result{}, err
	}

	res := m.Score(req.A, req.B, idx)
	metrics.RecordQuery(op, m.Name, string(res.Reason), time.Since(start))
	return res, nil
}

func similarCacheKey(kind string, req SimilarRequest, metric string) string {
	return fmt.Sprintf("sim:%s:%s:%s:%d:%t", kind, req.ID, metric, req.N, req.OverlapOnly)
}

// SimilarBooks ranks every eligible book against req.ID. Results are cached
// in Redis unless req.Refresh is set.
func (s *QueryService) SimilarBooks(ctx context.Context, req SimilarRequest) (*models.SimilarityDoc, error) {
	return s.similar(ctx, "similar_books", s.store.Books, req)
}

func (s *QueryService) SimilarUsers(ctx context.Context, req SimilarRequest) (*models.SimilarityDoc, error) {
	return s.similar(ctx, "similar_users", s.store.Users, req)
}

func (s *QueryService) similar(ctx context.Context, op string, idx store.Index, req SimilarRequest) (*models.SimilarityDoc, error) {
	start := time.Now()
	logger := logging.Component("query")

	req.Metric = strings.ToLower(req.Metric)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	m, err := similarity.Lookup(req.Metric, req.P)
	if err != nil {
		return nil, err
	}
	metricName := m.Name
	if m.Name == similarity.MetricMinkowski {
		p := req.P
		if p == 0 {
			p = similarity.DefaultMinkowskiOrder
		}
		metricName = fmt.Sprintf("%s(p=%g)", m.Name, p)
	}

	key := similarCacheKey(idx.Kind(), req, metricName)
	if !req.Refresh && cache.Enabled() {
		var cached models.SimilarityDoc
		ok, err := cache.GetJSON(ctx, key, &cached)
		switch {
		case err != nil:
			metrics.RecordCache("error")
			logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		case ok:
			metrics.RecordCache("hit")
			cached.Cached = true
			metrics.RecordQuery(op, m.Name, "cache_hit", time.Since(start))
			return &cached, nil
		default:
			metrics.RecordCache("miss")
		}
	}

	if !req.Refresh && s.snapshots != nil {
		snap, err := s.snapshots.FindSimilar(ctx, key)
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("snapshot read failed")
		} else if snap != nil {
			snap.Cached = true
			metrics.RecordQuery(op, m.Name, "snapshot_hit", time.Since(start))
			return snap, nil
		}
	}

	found, err := ranking.Nearest(req.ID, req.N, idx, m, ranking.Options{OverlapOnly: req.OverlapOnly})
	if err != nil {
		reason := "error"
		if errors.Is(err, ranking.ErrUnknownEntity) {
			reason = string(similarity.ReasonNotFound)
		}
		metrics.RecordQuery(op, m.Name, reason, time.Since(start))
		return nil, err
	}

	doc := &models.SimilarityDoc{
		Key:         key,
		Kind:        idx.Kind(),
		ID:          req.ID,
		Metric:      metricName,
		N:           req.N,
		OverlapOnly: req.OverlapOnly,
		Neighbors:   make([]models.Neighbor, len(found)),
		GeneratedAt: time.Now().UTC(),
	}
	for i, nb := range found {
		doc.Neighbors[i] = models.Neighbor{ID: nb.ID, Score: nb.Score, Reason: string(nb.Reason)}
	}

	if cache.Enabled() {
		if err := cache.SetJSON(ctx, key, doc, s.cacheTTL); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}

	if s.snapshots != nil {
		if err := s.snapshots.SaveSimilar(ctx, key, doc); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("snapshot write failed")
		}
	}

	metrics.RecordQuery(op, m.Name, string(similarity.ReasonOK), time.Since(start))
	return doc, nil
}

// TopBooks lists the first n books by title.
func (s *QueryService) TopBooks(_ context.Context, n int) []models.BookSummary {
	start := time.Now()
	entries := ranking.TopBooksByTitle(s.store.Books, n)
	out := make([]models.BookSummary, len(entries))
	for i, e := range entries {
		out[i] = e.Book.Summary()
	}
	metrics.RecordQuery("top_books", "", string(similarity.ReasonOK), time.Since(start))
	return out
}

// TopUsers lists the n users with the most ratings.
func (s *QueryService) TopUsers(_ context.Context, n int) []models.UserSummary {
	start := time.Now()
	entries := ranking.TopUsersByRatingCount(s.store.Users, n)
	out := make([]models.UserSummary, len(entries))
	for i, e := range entries {
		out[i] = e.User.Summary()
	}
	metrics.RecordQuery("top_users", "", string(similarity.ReasonOK), time.Since(start))
	return out
}

// Book returns nil when the ISBN is unknown.
func (s *QueryService) Book(_ context.Context, isbn string) *models.Book {
	b, ok := s.store.Books.Get(isbn)
	if !ok {
		return nil
	}
	return b
}

// User returns nil when the id is unknown.
func (s *QueryService) User(_ context.Context, id string) *models.User {
	u, ok := s.store.Users.Get(id)
	if !ok {
		return nil
	}
	return u
}

func (s *QueryService) Summary() models.DatasetSummary {
	return s.summary
}
