package lineage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mutt/internal/bloodline"
	"mutt/internal/store"
)

type RateInput struct {
	TokenID int64  `json:"tokenId"`
	Voter   string `json:"voter"`
	Score   int    `json:"score"`
}

type RateResult struct {
	TokenID      int64              `json:"tokenId"`
	AvgRating    float64            `json:"avgRating"`
	TotalReviews int                `json:"totalReviews"`
	Decision     bloodline.Decision `json:"decision"`

	// Evaluated is false when the rating was stored but the bloodline check
	// failed. Evaluate can be run again for the token.
	Evaluated bool `json:"evaluated"`
}

// Rate records one vote, refreshes the mutt's aggregates and re-evaluates its
// bloodline. A voter may rate a mutt once and never one they bred. A stored
// rating is never reported as failed; see RateResult.Evaluated.
func (s *Service) Rate(ctx context.Context, in RateInput) (*RateResult, error) {
	if in.Score < 1 || in.Score > 5 {
		return nil, ErrInvalidScore
	}
	voter := strings.ToLower(strings.TrimSpace(in.Voter))
	if voter == "" {
		return nil, fmt.Errorf("%w: voter is required", ErrInvalidInput)
	}

	m, err := s.store.GetMutt(ctx, in.TokenID)
	if err != nil {
		return nil, fmt.Errorf("rating mutt %d: %w", in.TokenID, err)
	}
	if m == nil {
		return nil, fmt.Errorf("rating mutt %d: %w", in.TokenID, ErrNotFound)
	}
	if strings.ToLower(m.Breeder) == voter {
		return nil, ErrSelfRating
	}

	rated, err := s.store.HasRated(ctx, in.TokenID, voter)
	if err != nil {
		return nil, fmt.Errorf("rating mutt %d: %w", in.TokenID, err)
	}
	if rated {
		return nil, ErrAlreadyRated
	}

	stats, err := s.store.RecordRating(ctx, store.RatingInput{TokenID: in.TokenID, Voter: voter, Score: in.Score})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrAlreadyRated
		}
		return nil, fmt.Errorf("rating mutt %d: %w", in.TokenID, err)
	}

	result := &RateResult{
		TokenID:      in.TokenID,
		AvgRating:    stats.AvgRating,
		TotalReviews: stats.TotalReviews,
	}
	decision, err := s.Evaluate(ctx, in.TokenID)
	if err != nil {
		s.log.Error("evaluating after rating failed", "token_id", in.TokenID, "voter", voter, "error", err)
	} else {
		result.Decision = decision
		result.Evaluated = true
	}

	s.logActivity(ctx, store.ActivityInput{
		Type:    ActivityRating,
		Actor:   voter,
		TokenID: in.TokenID,
		Detail:  map[string]any{"score": in.Score},
	})

	return result, nil
}
