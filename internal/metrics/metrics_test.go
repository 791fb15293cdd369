package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordQuery(t *testing.T) {
	c := QueriesTotal.WithLabelValues("compare_books", "cosine", "ok")
	before := testutil.ToFloat64(c)

	RecordQuery("compare_books", "cosine", "ok", 2*time.Millisecond)
	RecordQuery("compare_books", "cosine", "ok", time.Millisecond)

	if got := testutil.ToFloat64(c); got != before+2 {
		t.Errorf("expected %f, got %f", before+2, got)
	}
}

func TestSetDataset(t *testing.T) {
	SetDataset(10, 4, 25)
	if got := testutil.ToFloat64(DatasetRecords.WithLabelValues("ratings")); got != 25 {
		t.Errorf("expected 25 ratings, got %f", got)
	}
	if got := testutil.ToFloat64(DatasetRecords.WithLabelValues("books")); got != 10 {
		t.Errorf("expected 10 books, got %f", got)
	}
}

func TestRecordCache(t *testing.T) {
	before := testutil.ToFloat64(CacheRequests.WithLabelValues("miss"))
	RecordCache("miss")
	if got := testutil.ToFloat64(CacheRequests.WithLabelValues("miss")); got != before+1 {
		t.Errorf("expected %f, got %f", before+1, got)
	}
}
