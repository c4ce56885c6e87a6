package mcp

import (
	"context"
	"testing"

	"mutt/internal/bloodline"
	"mutt/internal/lineage"
	"mutt/internal/store"
)

type mockKennel struct {
	mutt        *store.Mutt
	muttErr     error
	summaries   []store.MuttSummary
	view        *lineage.View
	rateResult  *lineage.RateResult
	rateErr     error
	houses      []bloodline.House
	getMuttCall int

	lastGetMuttID    int64
	lastFilter       store.ListFilter
	lastLineageID    int64
	lastRate         lineage.RateInput
	lastLeaderboardN int
}

func (m *mockKennel) GetMutt(ctx context.Context, tokenID int64) (*store.Mutt, error) {
	m.getMuttCall++
	m.lastGetMuttID = tokenID
	return m.mutt, m.muttErr
}

func (m *mockKennel) ListMutts(ctx context.Context, filter store.ListFilter) ([]store.MuttSummary, error) {
	m.lastFilter = filter
	return m.summaries, nil
}

func (m *mockKennel) Lineage(ctx context.Context, tokenID int64) (*lineage.View, error) {
	m.lastLineageID = tokenID
	return m.view, nil
}

func (m *mockKennel) Rate(ctx context.Context, in lineage.RateInput) (*lineage.RateResult, error) {
	m.lastRate = in
	return m.rateResult, m.rateErr
}

func (m *mockKennel) Leaderboard(ctx context.Context, limit int) ([]bloodline.House, error) {
	m.lastLeaderboardN = limit
	return m.houses, nil
}

func TestGetMutt(t *testing.T) {
	route := &bloodline.Route{Path: []int64{7, 3}, AvgRating: 4.8, TotalReviews: 12, Qualified: true}
	kennel := &mockKennel{mutt: &store.Mutt{TokenID: 7, Bloodline: bloodline.GradePureblood, PurebloodRoute: route}}
	server := NewServer(kennel, 0, "test")

	_, output, err := server.handleGetMutt(context.Background(), nil, GetMuttInput{TokenID: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.TokenID != 7 || output.Bloodline != "pureblood" {
		t.Fatalf("unexpected output: %+v", output)
	}
	if output.PurebloodRoute == nil || len(output.PurebloodRoute.Path) != 2 {
		t.Fatalf("expected route in output: %+v", output.PurebloodRoute)
	}
	if kennel.lastGetMuttID != 7 {
		t.Fatalf("unexpected token id %d", kennel.lastGetMuttID)
	}
}

func TestGetMutt_Errors(t *testing.T) {
	kennel := &mockKennel{muttErr: lineage.ErrNotFound}
	server := NewServer(kennel, 0, "test")

	if _, _, err := server.handleGetMutt(context.Background(), nil, GetMuttInput{}); err == nil {
		t.Fatalf("expected error for missing token id")
	}
	if kennel.getMuttCall != 0 {
		t.Fatalf("kennel should not be called without a token id")
	}
	if _, _, err := server.handleGetMutt(context.Background(), nil, GetMuttInput{TokenID: 9}); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestListMutts(t *testing.T) {
	kennel := &mockKennel{summaries: []store.MuttSummary{{TokenID: 1, Bloodline: bloodline.GradeMutt}}}
	server := NewServer(kennel, 0, "test")

	_, output, err := server.handleListMutts(context.Background(), nil, ListMuttsInput{Bloodline: "mutt", Breeder: "0xa", Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Mutts) != 1 || output.Mutts[0].Bloodline != "mutt" {
		t.Fatalf("unexpected list output: %+v", output)
	}
	want := store.ListFilter{Bloodline: "mutt", Breeder: "0xa", Limit: 5}
	if kennel.lastFilter != want {
		t.Fatalf("unexpected filter %+v", kennel.lastFilter)
	}
}

func TestGetLineage(t *testing.T) {
	route := bloodline.Route{Path: []int64{4, 2}, AvgRating: 4.9, TotalReviews: 10, Qualified: true}
	kennel := &mockKennel{view: &lineage.View{
		Mutt:     store.Mutt{TokenID: 4},
		RouteA:   route,
		RouteB:   bloodline.Route{Path: []int64{4}},
		Decision: bloodline.Decision{IsPureblood: true, Route: &route},
	}}
	server := NewServer(kennel, 0, "test")

	_, output, err := server.handleGetLineage(context.Background(), nil, GetMuttInput{TokenID: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.IsPureblood || output.Route == nil || output.Route.Path[1] != 2 {
		t.Fatalf("unexpected lineage output: %+v", output)
	}
	if len(output.RouteB.Path) != 1 {
		t.Fatalf("unexpected route b: %+v", output.RouteB)
	}
}

func TestRateMutt(t *testing.T) {
	kennel := &mockKennel{rateResult: &lineage.RateResult{TokenID: 3, AvgRating: 4.5, TotalReviews: 2, Evaluated: true}}
	server := NewServer(kennel, 0, "test")

	_, output, err := server.handleRateMutt(context.Background(), nil, RateMuttInput{TokenID: 3, Voter: "0xb", Score: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.TotalReviews != 2 || !output.Evaluated || output.IsPureblood || output.Route != nil {
		t.Fatalf("unexpected rate output: %+v", output)
	}
	if kennel.lastRate != (lineage.RateInput{TokenID: 3, Voter: "0xb", Score: 4}) {
		t.Fatalf("unexpected rate input %+v", kennel.lastRate)
	}

	kennel.rateErr = lineage.ErrSelfRating
	if _, _, err := server.handleRateMutt(context.Background(), nil, RateMuttInput{TokenID: 3, Voter: "0xa", Score: 4}); err == nil {
		t.Fatalf("expected self rating error")
	}
}

func TestGetLeaderboard(t *testing.T) {
	kennel := &mockKennel{houses: []bloodline.House{{Rank: 1, Head: 9, Route: []int64{9, 4}, Members: []int64{9}, Sacred: true}}}
	server := NewServer(kennel, 10, "test")

	_, output, err := server.handleGetLeaderboard(context.Background(), nil, GetLeaderboardInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kennel.lastLeaderboardN != 10 {
		t.Fatalf("expected configured limit, got %d", kennel.lastLeaderboardN)
	}
	if len(output.Houses) != 1 || !output.Houses[0].Sacred || output.Houses[0].Head != 9 {
		t.Fatalf("unexpected leaderboard output: %+v", output)
	}

	if _, _, err := server.handleGetLeaderboard(context.Background(), nil, GetLeaderboardInput{Limit: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kennel.lastLeaderboardN != 3 {
		t.Fatalf("expected explicit limit, got %d", kennel.lastLeaderboardN)
	}
}
