// Package seed replays a YAML roster through the lineage service so hatch,
// breed and rating rules run exactly as they do for live traffic.
package seed

import (
	"context"
	"errors"
	"fmt"

	"mutt/internal/lineage"
	"mutt/internal/store"
)

type Service interface {
	Hatch(ctx context.Context, in lineage.HatchInput) (*store.Mutt, error)
	Breed(ctx context.Context, in lineage.BreedInput) (*store.Mutt, error)
	Rate(ctx context.Context, in lineage.RateInput) (*lineage.RateResult, error)
}

type Result struct {
	Hatched  int
	Bred     int
	Rated    int
	Promoted int
	Skipped  int
	Errors   []error
}

// Run applies roster in order. Mutts and votes that already exist are
// counted as skipped so a roster can be replayed onto a seeded store.
func Run(ctx context.Context, svc Service, roster *Roster) (*Result, error) {
	if svc == nil {
		return nil, fmt.Errorf("service is required")
	}
	if roster == nil {
		return nil, fmt.Errorf("roster is required")
	}

	result := &Result{}

	for _, m := range roster.Mutts {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		var err error
		if m.origin() {
			_, err = svc.Hatch(ctx, lineage.HatchInput{
				TokenID:         m.TokenID,
				Breeder:         m.Breeder,
				Personality:     m.Personality,
				PersonalityDesc: m.PersonalityDesc,
			})
		} else {
			_, err = svc.Breed(ctx, lineage.BreedInput{
				TokenID:         m.TokenID,
				Breeder:         m.Breeder,
				ParentA:         m.ParentA,
				ParentB:         m.ParentB,
				Personality:     m.Personality,
				PersonalityDesc: m.PersonalityDesc,
			})
		}

		switch {
		case errors.Is(err, lineage.ErrAlreadyExists):
			result.Skipped++
		case err != nil:
			result.Errors = append(result.Errors, fmt.Errorf("mutt %d: %w", m.TokenID, err))
		case m.origin():
			result.Hatched++
		default:
			result.Bred++
		}
	}

	for _, r := range roster.Ratings {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rated, err := svc.Rate(ctx, lineage.RateInput{TokenID: r.TokenID, Voter: r.Voter, Score: r.Score})
		switch {
		case errors.Is(err, lineage.ErrAlreadyRated):
			result.Skipped++
		case err != nil:
			result.Errors = append(result.Errors, fmt.Errorf("rating %d by %s: %w", r.TokenID, r.Voter, err))
		default:
			result.Rated++
			if rated.Decision.IsPureblood {
				result.Promoted++
			}
		}
	}

	return result, nil
}
