package lineage

import (
	"context"
	"fmt"

	"mutt/internal/bloodline"
	"mutt/internal/store"
)

// Leaderboard ranks every stored house. A limit <= 0 uses SacredCount.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]bloodline.House, error) {
	if limit <= 0 {
		limit = bloodline.SacredCount
	}
	records, err := s.store.ListRouteRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("building leaderboard: %w", err)
	}
	return bloodline.BuildLeaderboard(records, limit), nil
}

// SyncSacred grades members of the top limit houses sacred28 and returns
// members of houses that fell out of it to pureblood.
func (s *Service) SyncSacred(ctx context.Context, limit int) (store.SacredSync, error) {
	houses, err := s.Leaderboard(ctx, limit)
	if err != nil {
		return store.SacredSync{}, err
	}

	var sacredIDs []int64
	for _, house := range houses {
		if house.Sacred {
			sacredIDs = append(sacredIDs, house.Members...)
		}
	}

	result, err := s.store.SyncSacred(ctx, sacredIDs)
	if err != nil {
		return store.SacredSync{}, fmt.Errorf("syncing sacred houses: %w", err)
	}
	if err := s.mirror.SyncSacred(ctx, sacredIDs); err != nil {
		s.log.Warn("mirroring sacred sync failed", "error", err)
	}

	s.log.Info("sacred houses synced",
		"houses", len(houses),
		"members", len(sacredIDs),
		"promoted", result.Promoted,
		"restored", result.Restored,
	)
	return result, nil
}
