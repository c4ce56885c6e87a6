//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"mutt/internal/bloodline"
	"mutt/internal/store"
)

// Requires MUTT_TEST_POSTGRES_DSN pointing at a disposable database.
func newTestClient(t *testing.T) *Client {
	t.Helper()
	dsn := os.Getenv("MUTT_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("MUTT_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	c, err := New(ctx, dsn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { c.Close(ctx) })

	if err := c.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if _, err := c.pool.Exec(ctx, `TRUNCATE activities, ratings, mutts RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncating: %v", err)
	}
	return c
}

func TestRatingAndPromotion(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	for _, m := range []store.MuttInput{
		{TokenID: 1},
		{TokenID: 2, ParentA: 1},
	} {
		if err := c.InsertMutt(ctx, m); err != nil {
			t.Fatalf("InsertMutt: %v", err)
		}
	}
	if err := c.InsertMutt(ctx, store.MuttInput{TokenID: 1}); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	stats, err := c.RecordRating(ctx, store.RatingInput{TokenID: 2, Voter: "0xA", Score: 5})
	if err != nil {
		t.Fatalf("RecordRating: %v", err)
	}
	if stats.TotalReviews != 1 || stats.AvgRating != 5 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if _, err := c.RecordRating(ctx, store.RatingInput{TokenID: 2, Voter: "0xa", Score: 4}); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate vote, got %v", err)
	}

	route := bloodline.Route{Path: []int64{2, 1}, AvgRating: 4.9, TotalReviews: 12, Qualified: true}
	if err := c.ApplyPromotion(ctx, route); err != nil {
		t.Fatalf("ApplyPromotion: %v", err)
	}
	records, err := c.ListRouteRecords(ctx)
	if err != nil {
		t.Fatalf("ListRouteRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	sync, err := c.SyncSacred(ctx, []int64{1, 2})
	if err != nil {
		t.Fatalf("SyncSacred: %v", err)
	}
	if sync.Promoted != 2 {
		t.Fatalf("unexpected sync %+v", sync)
	}

	refs, err := c.ListDanglingParents(ctx)
	if err != nil {
		t.Fatalf("ListDanglingParents: %v", err)
	}
	if len(refs) != 0 {
		t.Fatalf("expected no dangling parents, got %+v", refs)
	}
}

func TestRecordRating_ConcurrentVotesKeepAggregates(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	if err := c.InsertMutt(ctx, store.MuttInput{TokenID: 7}); err != nil {
		t.Fatalf("InsertMutt: %v", err)
	}

	const voters = 40
	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			score := 4 + i%2
			_, err := c.RecordRating(ctx, store.RatingInput{TokenID: 7, Voter: fmt.Sprintf("0xv%d", i), Score: score})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("RecordRating: %v", err)
		}
	}

	m, err := c.GetMutt(ctx, 7)
	if err != nil {
		t.Fatalf("GetMutt: %v", err)
	}
	if m.TotalReviews != voters || m.AvgRating != 4.5 {
		t.Fatalf("aggregates drifted: total_reviews=%d avg_rating=%v", m.TotalReviews, m.AvgRating)
	}

	if _, err := c.RecordRating(ctx, store.RatingInput{TokenID: 404, Voter: "0xv", Score: 5}); err == nil {
		t.Fatalf("expected error rating a missing mutt")
	}
}
