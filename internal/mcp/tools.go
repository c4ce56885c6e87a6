package mcp

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"mutt/internal/bloodline"
	"mutt/internal/lineage"
	"mutt/internal/store"
)

type GetMuttInput struct {
	TokenID int64 `json:"token_id" jsonschema:"token id of the mutt"`
}

type ListMuttsInput struct {
	Bloodline string `json:"bloodline,omitempty" jsonschema:"mutt, halfblood, pureblood or sacred28"`
	Breeder   string `json:"breeder,omitempty" jsonschema:"breeder address"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of mutts"`
}

type RateMuttInput struct {
	TokenID int64  `json:"token_id" jsonschema:"token id of the mutt"`
	Voter   string `json:"voter" jsonschema:"voter address"`
	Score   int    `json:"score" jsonschema:"integer score from 1 to 5"`
}

type GetLeaderboardInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"number of houses marked sacred, default 28"`
}

type RouteOutput struct {
	Path         []int64 `json:"path"`
	AvgRating    float64 `json:"avg_rating"`
	TotalReviews int     `json:"total_reviews"`
	Qualified    bool    `json:"qualified"`
}

type MuttOutput struct {
	TokenID         int64        `json:"token_id"`
	Personality     string       `json:"personality"`
	PersonalityDesc string       `json:"personality_desc"`
	Breeder         string       `json:"breeder"`
	ParentA         int64        `json:"parent_a"`
	ParentB         int64        `json:"parent_b"`
	Bloodline       string       `json:"bloodline"`
	AvgRating       float64      `json:"avg_rating"`
	TotalReviews    int          `json:"total_reviews"`
	PurebloodRoute  *RouteOutput `json:"pureblood_route,omitempty"`
	CreatedAt       string       `json:"created_at"`
}

type MuttSummaryOutput struct {
	TokenID      int64   `json:"token_id"`
	Personality  string  `json:"personality"`
	Breeder      string  `json:"breeder"`
	Bloodline    string  `json:"bloodline"`
	AvgRating    float64 `json:"avg_rating"`
	TotalReviews int     `json:"total_reviews"`
}

type ListMuttsOutput struct {
	Mutts []MuttSummaryOutput `json:"mutts"`
}

type LineageOutput struct {
	Mutt        MuttOutput   `json:"mutt"`
	RouteA      RouteOutput  `json:"route_a"`
	RouteB      RouteOutput  `json:"route_b"`
	IsPureblood bool         `json:"is_pureblood"`
	Route       *RouteOutput `json:"route,omitempty"`
}

type RateMuttOutput struct {
	TokenID      int64        `json:"token_id"`
	AvgRating    float64      `json:"avg_rating"`
	TotalReviews int          `json:"total_reviews"`
	Evaluated    bool         `json:"evaluated"`
	IsPureblood  bool         `json:"is_pureblood"`
	Route        *RouteOutput `json:"route,omitempty"`
}

type HouseOutput struct {
	Rank         int     `json:"rank"`
	Head         int64   `json:"head"`
	Route        []int64 `json:"route"`
	AvgRating    float64 `json:"avg_rating"`
	TotalReviews int     `json:"total_reviews"`
	Members      []int64 `json:"members"`
	Sacred       bool    `json:"sacred"`
}

type GetLeaderboardOutput struct {
	Houses []HouseOutput `json:"houses"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_mutt",
		Description: "Retrieve a mutt with its ratings and stored bloodline",
	}, s.handleGetMutt)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_mutts",
		Description: "List mutts with optional bloodline and breeder filters",
	}, s.handleListMutts)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_lineage",
		Description: "Evaluate both ancestry routes of a mutt without promoting it",
	}, s.handleGetLineage)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "rate_mutt",
		Description: "Rate a mutt from 1 to 5 and re-evaluate its bloodline",
	}, s.handleRateMutt)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_leaderboard",
		Description: "Rank pureblood houses and mark the sacred ones",
	}, s.handleGetLeaderboard)
}

func (s *Server) handleGetMutt(ctx context.Context, req *sdk.CallToolRequest, input GetMuttInput) (*sdk.CallToolResult, MuttOutput, error) {
	if input.TokenID <= 0 {
		return nil, MuttOutput{}, fmt.Errorf("token_id is required")
	}
	m, err := s.kennel.GetMutt(ctx, input.TokenID)
	if err != nil {
		return nil, MuttOutput{}, err
	}
	return nil, muttOutputFromStore(m), nil
}

func (s *Server) handleListMutts(ctx context.Context, req *sdk.CallToolRequest, input ListMuttsInput) (*sdk.CallToolResult, ListMuttsOutput, error) {
	items, err := s.kennel.ListMutts(ctx, store.ListFilter{
		Bloodline: input.Bloodline,
		Breeder:   input.Breeder,
		Limit:     input.Limit,
	})
	if err != nil {
		return nil, ListMuttsOutput{}, err
	}

	output := make([]MuttSummaryOutput, 0, len(items))
	for _, item := range items {
		output = append(output, MuttSummaryOutput{
			TokenID:      item.TokenID,
			Personality:  item.Personality,
			Breeder:      item.Breeder,
			Bloodline:    string(item.Bloodline),
			AvgRating:    item.AvgRating,
			TotalReviews: item.TotalReviews,
		})
	}
	return nil, ListMuttsOutput{Mutts: output}, nil
}

func (s *Server) handleGetLineage(ctx context.Context, req *sdk.CallToolRequest, input GetMuttInput) (*sdk.CallToolResult, LineageOutput, error) {
	if input.TokenID <= 0 {
		return nil, LineageOutput{}, fmt.Errorf("token_id is required")
	}
	view, err := s.kennel.Lineage(ctx, input.TokenID)
	if err != nil {
		return nil, LineageOutput{}, err
	}
	return nil, LineageOutput{
		Mutt:        muttOutputFromStore(&view.Mutt),
		RouteA:      routeOutput(view.RouteA),
		RouteB:      routeOutput(view.RouteB),
		IsPureblood: view.Decision.IsPureblood,
		Route:       routeOutputPtr(view.Decision.Route),
	}, nil
}

func (s *Server) handleRateMutt(ctx context.Context, req *sdk.CallToolRequest, input RateMuttInput) (*sdk.CallToolResult, RateMuttOutput, error) {
	result, err := s.kennel.Rate(ctx, lineage.RateInput{
		TokenID: input.TokenID,
		Voter:   input.Voter,
		Score:   input.Score,
	})
	if err != nil {
		return nil, RateMuttOutput{}, err
	}
	return nil, RateMuttOutput{
		TokenID:      result.TokenID,
		AvgRating:    result.AvgRating,
		TotalReviews: result.TotalReviews,
		Evaluated:    result.Evaluated,
		IsPureblood:  result.Decision.IsPureblood,
		Route:        routeOutputPtr(result.Decision.Route),
	}, nil
}

func (s *Server) handleGetLeaderboard(ctx context.Context, req *sdk.CallToolRequest, input GetLeaderboardInput) (*sdk.CallToolResult, GetLeaderboardOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = s.limit
	}
	houses, err := s.kennel.Leaderboard(ctx, limit)
	if err != nil {
		return nil, GetLeaderboardOutput{}, err
	}

	output := make([]HouseOutput, 0, len(houses))
	for _, h := range houses {
		output = append(output, HouseOutput{
			Rank:         h.Rank,
			Head:         h.Head,
			Route:        append([]int64{}, h.Route...),
			AvgRating:    h.AvgRating,
			TotalReviews: h.TotalReviews,
			Members:      append([]int64{}, h.Members...),
			Sacred:       h.Sacred,
		})
	}
	return nil, GetLeaderboardOutput{Houses: output}, nil
}

func muttOutputFromStore(m *store.Mutt) MuttOutput {
	if m == nil {
		return MuttOutput{}
	}
	out := MuttOutput{
		TokenID:         m.TokenID,
		Personality:     m.Personality,
		PersonalityDesc: m.PersonalityDesc,
		Breeder:         m.Breeder,
		ParentA:         m.ParentA,
		ParentB:         m.ParentB,
		Bloodline:       string(m.Bloodline),
		AvgRating:       m.AvgRating,
		TotalReviews:    m.TotalReviews,
		PurebloodRoute:  routeOutputPtr(m.PurebloodRoute),
	}
	if !m.CreatedAt.IsZero() {
		out.CreatedAt = m.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func routeOutput(r bloodline.Route) RouteOutput {
	return RouteOutput{
		Path:         append([]int64{}, r.Path...),
		AvgRating:    r.AvgRating,
		TotalReviews: r.TotalReviews,
		Qualified:    r.Qualified,
	}
}

func routeOutputPtr(r *bloodline.Route) *RouteOutput {
	if r == nil {
		return nil
	}
	out := routeOutput(*r)
	return &out
}
