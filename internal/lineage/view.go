package lineage

import (
	"context"
	"fmt"

	"mutt/internal/bloodline"
	"mutt/internal/store"
)

type View struct {
	Mutt       store.Mutt         `json:"mutt"`
	RouteA     bloodline.Route    `json:"routeA"`
	RouteB     bloodline.Route    `json:"routeB"`
	Decision   bloodline.Decision `json:"decision"`
	Activities []store.Activity   `json:"activities"`
}

const viewActivityLimit = 20

// Lineage reports both candidate routes for tokenID as they stand now,
// alongside the stored grade and recent activity. It does not promote.
func (s *Service) Lineage(ctx context.Context, tokenID int64) (*View, error) {
	subject, nodes, err := s.snapshot(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("loading lineage of %d: %w", tokenID, err)
	}

	routeA, routeB := bloodline.Routes(subject.Node(), nodes)
	activities, err := s.store.ListActivities(ctx, tokenID, viewActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("loading lineage of %d: %w", tokenID, err)
	}

	return &View{
		Mutt:       *subject,
		RouteA:     routeA,
		RouteB:     routeB,
		Decision:   bloodline.Check(subject.Node(), nodes),
		Activities: activities,
	}, nil
}
