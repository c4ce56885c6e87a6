package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mutt/internal/bloodline"
	"mutt/internal/graph"
	"mutt/internal/lineage"
	"mutt/internal/logger"
	"mutt/internal/store"
	"mutt/internal/store/sqlite"
)

func newTestServer(t *testing.T, ancestry Ancestry) http.Handler {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.New(ctx, "sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(ctx) })
	require.NoError(t, db.EnsureSchema(ctx))

	svc := lineage.NewService(db, nil, logger.Nop())
	return NewServer(Config{Service: svc, Ancestry: ancestry, Logger: logger.Nop()}).Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, nil)
	rec := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHatchBreedAndGet(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/hatch", lineage.HatchInput{TokenID: 1, Breeder: "0xa", Personality: "Stoic"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(t, h, http.MethodPost, "/api/hatch", lineage.HatchInput{TokenID: 2, Breeder: "0xa"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/breed", lineage.BreedInput{TokenID: 3, Breeder: "0xb", ParentA: 1, ParentB: 2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	child := decode[store.Mutt](t, rec)
	assert.Equal(t, bloodline.GradeHalfblood, child.Bloodline)

	rec = do(t, h, http.MethodGet, "/api/mutts/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[store.Mutt](t, rec)
	assert.Equal(t, int64(1), got.ParentA)

	rec = do(t, h, http.MethodGet, "/api/mutts?bloodline=mutt", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]store.MuttSummary](t, rec), 2)

	rec = do(t, h, http.MethodGet, "/api/mutts/3/lineage", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[lineage.View](t, rec)
	assert.Equal(t, []int64{3, 1}, view.RouteA.Path)
	assert.Equal(t, []int64{3, 2}, view.RouteB.Path)
}

func TestErrorMapping(t *testing.T) {
	h := newTestServer(t, nil)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/hatch", lineage.HatchInput{TokenID: 1, Breeder: "0xa"}).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/rate", lineage.RateInput{TokenID: 1, Voter: "0xb", Score: 4}).Code)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{name: "bad score", method: http.MethodPost, path: "/api/rate", body: lineage.RateInput{TokenID: 1, Voter: "0xc", Score: 9}, want: http.StatusBadRequest},
		{name: "self rating", method: http.MethodPost, path: "/api/rate", body: lineage.RateInput{TokenID: 1, Voter: "0xA", Score: 5}, want: http.StatusForbidden},
		{name: "unknown mutt", method: http.MethodPost, path: "/api/rate", body: lineage.RateInput{TokenID: 5, Voter: "0xc", Score: 5}, want: http.StatusNotFound},
		{name: "duplicate vote", method: http.MethodPost, path: "/api/rate", body: lineage.RateInput{TokenID: 1, Voter: "0xb", Score: 5}, want: http.StatusConflict},
		{name: "duplicate hatch", method: http.MethodPost, path: "/api/hatch", body: lineage.HatchInput{TokenID: 1}, want: http.StatusConflict},
		{name: "unknown field", method: http.MethodPost, path: "/api/rate", body: map[string]any{"tokenId": 1, "stars": 5}, want: http.StatusBadRequest},
		{name: "bad id", method: http.MethodGet, path: "/api/mutts/abc", want: http.StatusBadRequest},
		{name: "missing mutt", method: http.MethodGet, path: "/api/mutts/42", want: http.StatusNotFound},
		{name: "bad grade filter", method: http.MethodGet, path: "/api/mutts?bloodline=royal", want: http.StatusBadRequest},
		{name: "bad limit", method: http.MethodGet, path: "/api/leaderboard?limit=-1", want: http.StatusBadRequest},
		{name: "no graph", method: http.MethodGet, path: "/api/mutts/1/ancestors", want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestRatePromotesAndLeaderboard(t *testing.T) {
	h := newTestServer(t, nil)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/hatch", lineage.HatchInput{TokenID: 1, Breeder: "0xa"}).Code)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/hatch", lineage.HatchInput{TokenID: 2, Breeder: "0xa"}).Code)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/breed", lineage.BreedInput{TokenID: 3, Breeder: "0xa", ParentA: 1, ParentB: 2}).Code)

	var last lineage.RateResult
	for _, id := range []int64{1, 3} {
		for i := 0; i < 5; i++ {
			rec := do(t, h, http.MethodPost, "/api/rate", lineage.RateInput{TokenID: id, Voter: fmt.Sprintf("0xv%d", i), Score: 5})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			last = decode[lineage.RateResult](t, rec)
		}
	}
	require.True(t, last.Evaluated)
	require.True(t, last.Decision.IsPureblood)
	assert.Equal(t, []int64{3, 1}, last.Decision.Route.Path)

	rec := do(t, h, http.MethodPost, "/api/mutts/3/evaluate", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decision := decode[bloodline.Decision](t, rec)
	require.True(t, decision.IsPureblood)
	assert.Equal(t, []int64{3, 1}, decision.Route.Path)

	rec = do(t, h, http.MethodPost, "/api/mutts/1/evaluate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[bloodline.Decision](t, rec).IsPureblood)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/mutts/42/evaluate", nil).Code)

	rec = do(t, h, http.MethodGet, "/api/leaderboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	houses := decode[[]bloodline.House](t, rec)
	require.Len(t, houses, 1)
	assert.Equal(t, int64(3), houses[0].Head)
	assert.True(t, houses[0].Sacred)

	rec = do(t, h, http.MethodPost, "/api/leaderboard/sync", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sync := decode[store.SacredSync](t, rec)
	assert.Equal(t, int64(2), sync.Promoted)
}

type fakeAncestry struct{ depth int }

func (f *fakeAncestry) GetAncestors(_ context.Context, tokenID int64, depth int) ([]graph.Ancestor, error) {
	f.depth = depth
	return []graph.Ancestor{{TokenID: tokenID - 1, Bloodline: "mutt", Depth: 1}}, nil
}

func TestAncestors(t *testing.T) {
	ancestry := &fakeAncestry{}
	h := newTestServer(t, ancestry)

	rec := do(t, h, http.MethodGet, "/api/mutts/5/ancestors?depth=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, ancestry.depth)
	got := decode[[]graph.Ancestor](t, rec)
	assert.Equal(t, []graph.Ancestor{{TokenID: 4, Bloodline: "mutt", Depth: 1}}, got)
}
