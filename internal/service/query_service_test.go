package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"booksim/internal/cache"
	"booksim/internal/dataset"
	"booksim/internal/metrics"
	"booksim/internal/models"
	"booksim/internal/ranking"
	"booksim/internal/similarity"
	"booksim/internal/store"
	"booksim/internal/validation"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
)

func newTestService() *QueryService {
	b := store.NewBuilder()
	b.AddBook(models.BookDoc{ISBN: "X", Title: "Middlemarch", Author: "Eliot", Year: "1871"})
	b.AddBook(models.BookDoc{ISBN: "Y", Title: "Beloved", Author: "Morrison", Year: "1987"})
	b.AddBook(models.BookDoc{ISBN: "Z", Title: "Candide", Author: "Voltaire", Year: "1759"})
	add := func(user, isbn string, v float64) {
		b.AddRating(user, isbn, models.NumericRating(v))
	}
	add("u1", "X", 5)
	add("u2", "X", 3)
	add("u3", "X", 4)
	add("u1", "Y", 4)
	add("u2", "Y", 3)
	add("u4", "Y", 2)
	add("u1", "Z", 1)
	add("u2", "Z", 1)
	return NewQueryService(b.Build(), dataset.Stats{SkippedRatings: 2}, "csv", 60)
}

func TestCompareBooks(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name   string
		req    CompareRequest
		score  float64
		reason similarity.Reason
	}{
		{name: "default metric is euclidean", req: CompareRequest{A: "X", B: "Y"}, score: 1, reason: similarity.ReasonOK},
		{name: "cosine", req: CompareRequest{A: "X", B: "Y", Metric: "COSINE"}, score: 29 / (math.Sqrt(34) * 5), reason: similarity.ReasonOK},
		{name: "minkowski default order", req: CompareRequest{A: "X", B: "Y", Metric: "minkowski"}, score: 1, reason: similarity.ReasonOK},
		{name: "minkowski order 2", req: CompareRequest{A: "X", B: "Z", Metric: "minkowski", P: 2}, score: math.Sqrt(20), reason: similarity.ReasonOK},
		{name: "unknown book", req: CompareRequest{A: "X", B: "nope"}, score: 0, reason: similarity.ReasonNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.CompareBooks(ctx, tt.req)
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if res.Reason != tt.reason {
				t.Errorf("expected reason %s, got %s", tt.reason, res.Reason)
			}
			if math.Abs(res.Score-tt.score) > 1e-9 {
				t.Errorf("expected %f, got %f", tt.score, res.Score)
			}
		})
	}
}

func TestCompareRejectsBadRequests(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  CompareRequest
	}{
		{name: "missing id", req: CompareRequest{A: "X"}},
		{name: "unknown metric", req: CompareRequest{A: "X", B: "Y", Metric: "jaccard"}},
		{name: "negative order", req: CompareRequest{A: "X", B: "Y", Metric: "minkowski", P: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CompareBooks(ctx, tt.req)
			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCompareUsersRecordsMetrics(t *testing.T) {
	svc := newTestService()
	counter := metrics.QueriesTotal.WithLabelValues("compare_users", similarity.MetricPearson, string(similarity.ReasonOK))
	before := testutil.ToFloat64(counter)

	res, err := svc.CompareUsers(context.Background(), CompareRequest{A: "u1", B: "u2", Metric: "pearson"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	// u1 rated X,Y,Z = 5,4,1 and u2 rated 3,3,1
	if !res.OK() || res.Score <= 0 || res.Score > 1 {
		t.Errorf("expected a positive correlation, got %+v", res)
	}
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("expected counter %f, got %f", before+1, got)
	}
}

func TestSimilarBooks(t *testing.T) {
	svc := newTestService()

	doc, err := svc.SimilarBooks(context.Background(), SimilarRequest{ID: "X", N: DefaultN})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if doc.N != DefaultN || doc.Metric != similarity.MetricEuclidean || doc.Kind != "books" {
		t.Errorf("unexpected header %+v", doc)
	}
	if len(doc.Neighbors) != 2 || doc.Neighbors[0].ID != "Y" || doc.Neighbors[1].ID != "Z" {
		t.Errorf("expected [Y Z], got %+v", doc.Neighbors)
	}
	if doc.Cached {
		t.Error("no cache configured, result cannot be cached")
	}

	mink, err := svc.SimilarBooks(context.Background(), SimilarRequest{ID: "X", N: 1, Metric: "minkowski", P: 3})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if mink.Metric != "minkowski(p=3)" || len(mink.Neighbors) != 1 {
		t.Errorf("unexpected minkowski result %+v", mink)
	}
}

func TestSimilarUsers(t *testing.T) {
	svc := newTestService()
	doc, err := svc.SimilarUsers(context.Background(), SimilarRequest{ID: "u1", N: 2, Metric: "manhattan", OverlapOnly: true})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(doc.Neighbors) != 2 || doc.Neighbors[0].ID != "u3" {
		t.Errorf("expected u3 first, got %+v", doc.Neighbors)
	}
}

func TestSimilarErrors(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.SimilarBooks(ctx, SimilarRequest{ID: "nope", N: DefaultN}); !errors.Is(err, ranking.ErrUnknownEntity) {
		t.Errorf("expected ErrUnknownEntity, got %v", err)
	}
	var verr *validation.Error
	if _, err := svc.SimilarBooks(ctx, SimilarRequest{ID: "X"}); !errors.As(err, &verr) {
		t.Errorf("expected validation error for n=0, got %v", err)
	}
	if _, err := svc.SimilarBooks(ctx, SimilarRequest{ID: "X", N: -1}); !errors.As(err, &verr) {
		t.Errorf("expected validation error for n=-1, got %v", err)
	}
	if _, err := svc.SimilarBooks(ctx, SimilarRequest{ID: "X", N: MaxN + 1}); !errors.As(err, &verr) {
		t.Errorf("expected validation error for n above max, got %v", err)
	}
}

func TestTopAndLookups(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	books := svc.TopBooks(ctx, 2)
	if len(books) != 2 || books[0].Title != "Beloved" || books[1].Title != "Candide" {
		t.Errorf("unexpected top books %+v", books)
	}
	if books[0].RatingCount != 3 {
		t.Errorf("expected 3 ratings for Beloved, got %d", books[0].RatingCount)
	}

	users := svc.TopUsers(ctx, 1)
	if len(users) != 1 || users[0].ID != "u1" || users[0].RatingCount != 3 {
		t.Errorf("unexpected top users %+v", users)
	}

	if b := svc.Book(ctx, "X"); b == nil || b.Author != "Eliot" {
		t.Errorf("expected book X, got %+v", b)
	}
	if b := svc.Book(ctx, "nope"); b != nil {
		t.Errorf("expected nil, got %+v", b)
	}
	if u := svc.User(ctx, "u4"); u == nil || len(u.Ratings) != 1 {
		t.Errorf("expected user u4, got %+v", u)
	}
	if u := svc.User(ctx, "nope"); u != nil {
		t.Errorf("expected nil, got %+v", u)
	}
}

func TestSummary(t *testing.T) {
	sum := newTestService().Summary()
	if sum.Books != 3 || sum.Users != 4 || sum.Ratings != 8 || sum.SkippedRatings != 2 || sum.Source != "csv" {
		t.Errorf("unexpected summary %+v", sum)
	}
	if got := testutil.ToFloat64(metrics.DatasetRecords.WithLabelValues("ratings")); got != 8 {
		t.Errorf("expected ratings gauge 8, got %f", got)
	}
}

type memSnapshots struct {
	docs  map[string]*models.SimilarityDoc
	saves int
}

func (m *memSnapshots) FindSimilar(_ context.Context, key string) (*models.SimilarityDoc, error) {
	doc, ok := m.docs[key]
	if !ok {
		return nil, nil
	}
	cp := *doc
	return &cp, nil
}

func (m *memSnapshots) SaveSimilar(_ context.Context, key string, doc *models.SimilarityDoc) error {
	m.saves++
	m.docs[key] = doc
	return nil
}

func TestSimilarUsesSnapshots(t *testing.T) {
	snaps := &memSnapshots{docs: map[string]*models.SimilarityDoc{}}
	svc := newTestService().WithSnapshots(snaps)
	ctx := context.Background()
	req := SimilarRequest{ID: "X", N: 2}

	first, err := svc.SimilarBooks(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if first.Cached || snaps.saves != 1 {
		t.Fatalf("expected a fresh result and one save, got cached=%t saves=%d", first.Cached, snaps.saves)
	}
	if first.Key != "sim:books:X:euclidean:2:false" {
		t.Errorf("unexpected key %q", first.Key)
	}

	second, err := svc.SimilarBooks(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !second.Cached || len(second.Neighbors) != 2 || snaps.saves != 1 {
		t.Errorf("expected snapshot hit, got cached=%t saves=%d", second.Cached, snaps.saves)
	}

	req.Refresh = true
	third, err := svc.SimilarBooks(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if third.Cached || snaps.saves != 2 {
		t.Errorf("refresh must recompute, got cached=%t saves=%d", third.Cached, snaps.saves)
	}
}

func TestSimilarUsesRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.Use(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.Use(nil) })

	svc := newTestService()
	ctx := context.Background()
	req := SimilarRequest{ID: "X", N: 2}
	key := "sim:books:X:euclidean:2:false"

	hits := metrics.CacheRequests.WithLabelValues("hit")
	misses := metrics.CacheRequests.WithLabelValues("miss")
	cacheHits := metrics.QueriesTotal.WithLabelValues("similar_books", "euclidean", "cache_hit")
	hitsBefore := testutil.ToFloat64(hits)
	missesBefore := testutil.ToFloat64(misses)
	cacheHitsBefore := testutil.ToFloat64(cacheHits)

	first, err := svc.SimilarBooks(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if first.Cached {
		t.Error("first query should be computed")
	}
	if !mr.Exists(key) {
		t.Fatalf("expected %s to be written", key)
	}
	if ttl := mr.TTL(key); ttl != 60*time.Second {
		t.Errorf("expected 60s TTL, got %v", ttl)
	}
	if got := testutil.ToFloat64(misses); got != missesBefore+1 {
		t.Errorf("expected one cache miss, got %v", got-missesBefore)
	}

	second, err := svc.SimilarBooks(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !second.Cached {
		t.Error("second query should come from the cache")
	}
	if len(second.Neighbors) != len(first.Neighbors) || second.Neighbors[0] != first.Neighbors[0] {
		t.Errorf("cached neighbors differ: %+v vs %+v", second.Neighbors, first.Neighbors)
	}
	if got := testutil.ToFloat64(hits); got != hitsBefore+1 {
		t.Errorf("expected one cache hit, got %v", got-hitsBefore)
	}
	if got := testutil.ToFloat64(cacheHits); got != cacheHitsBefore+1 {
		t.Errorf("expected one cache_hit query, got %v", got-cacheHitsBefore)
	}

	req.Refresh = true
	fresh, err := svc.SimilarBooks(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if fresh.Cached {
		t.Error("refresh should bypass the cache")
	}
	if got := testutil.ToFloat64(hits); got != hitsBefore+1 {
		t.Errorf("refresh should not read the cache, hits moved to %v", got-hitsBefore)
	}
}
