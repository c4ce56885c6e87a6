package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"mutt/internal/bloodline"
	"mutt/internal/lineage"
	"mutt/internal/store"
)

// Kennel is the lineage surface exposed as tools.
type Kennel interface {
	GetMutt(ctx context.Context, tokenID int64) (*store.Mutt, error)
	ListMutts(ctx context.Context, filter store.ListFilter) ([]store.MuttSummary, error)
	Lineage(ctx context.Context, tokenID int64) (*lineage.View, error)
	Rate(ctx context.Context, in lineage.RateInput) (*lineage.RateResult, error)
	Leaderboard(ctx context.Context, limit int) ([]bloodline.House, error)
}

type Server struct {
	kennel Kennel
	limit  int
	mcp    *sdk.Server
}

func NewServer(kennel Kennel, leaderboardLimit int, version string) *Server {
	if leaderboardLimit <= 0 {
		leaderboardLimit = bloodline.SacredCount
	}
	s := &Server{
		kennel: kennel,
		limit:  leaderboardLimit,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "mutt",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
