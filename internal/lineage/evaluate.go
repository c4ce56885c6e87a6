package lineage

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"mutt/internal/bloodline"
	"mutt/internal/store"
)

// Evaluate runs the pureblood check for tokenID and, when a route qualifies,
// promotes every mutt on it. Promotion is never undone here.
func (s *Service) Evaluate(ctx context.Context, tokenID int64) (bloodline.Decision, error) {
	subject, nodes, err := s.snapshot(ctx, tokenID)
	if err != nil {
		return bloodline.Decision{}, fmt.Errorf("evaluating mutt %d: %w", tokenID, err)
	}

	decision := bloodline.Check(subject.Node(), nodes)
	if !decision.IsPureblood {
		return decision, nil
	}

	route := *decision.Route
	if err := s.store.ApplyPromotion(ctx, route); err != nil {
		return bloodline.Decision{}, fmt.Errorf("evaluating mutt %d: %w", tokenID, err)
	}
	if err := s.mirror.SetBloodline(ctx, route); err != nil {
		s.log.Warn("mirroring promotion failed", "token_id", tokenID, "error", err)
	}

	if subject.Bloodline != bloodline.GradePureblood && subject.Bloodline != bloodline.GradeSacred {
		s.logActivity(ctx, store.ActivityInput{
			Type:    ActivityPromo,
			TokenID: tokenID,
			Detail: map[string]any{
				"path":         route.Path,
				"avgRating":    route.AvgRating,
				"totalReviews": route.TotalReviews,
			},
		})
	}
	s.log.Info("route promoted",
		"token_id", tokenID,
		"path", route.Path,
		"avg_rating", route.AvgRating,
		"total_reviews", route.TotalReviews,
	)
	return decision, nil
}

// snapshot loads the subject, both parents and every grandparent reachable
// through them. Missing ancestors are left out of the snapshot.
func (s *Service) snapshot(ctx context.Context, tokenID int64) (*store.Mutt, bloodline.Nodes, error) {
	subject, err := s.store.GetMutt(ctx, tokenID)
	if err != nil {
		return nil, nil, err
	}
	if subject == nil {
		return nil, nil, ErrNotFound
	}

	nodes := bloodline.Nodes{}
	nodes.Add(subject.Node())

	parents, err := s.fetchAll(ctx, []int64{subject.ParentA, subject.ParentB})
	if err != nil {
		return nil, nil, err
	}

	var grandparentIDs []int64
	for _, p := range parents {
		nodes.Add(p.Node())
		grandparentIDs = append(grandparentIDs, p.ParentA, p.ParentB)
	}

	grandparents, err := s.fetchAll(ctx, grandparentIDs)
	if err != nil {
		return nil, nil, err
	}
	for _, gp := range grandparents {
		nodes.Add(gp.Node())
	}

	return subject, nodes, nil
}

// fetchAll loads ids concurrently, skipping ids <= 0 and ids with no row.
func (s *Service) fetchAll(ctx context.Context, ids []int64) ([]store.Mutt, error) {
	results := make([]*store.Mutt, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		if id <= 0 {
			continue
		}
		g.Go(func() error {
			m, err := s.store.GetMutt(gctx, id)
			if err != nil {
				return fmt.Errorf("fetching ancestor %d: %w", id, err)
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]store.Mutt, 0, len(ids))
	for _, m := range results {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out, nil
}
