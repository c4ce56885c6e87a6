// Package lineage drives the bloodline evaluator against the store: it
// creates mutts, records ratings, promotes qualifying routes and ranks
// houses.
package lineage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mutt/internal/bloodline"
	"mutt/internal/logger"
	"mutt/internal/store"
)

const (
	ActivityHatch  = "hatch"
	ActivityBreed  = "breed"
	ActivityRating = "rating"
	ActivityPromo  = "pureblood"
)

type Service struct {
	store  store.Store
	mirror Mirror
	log    *logger.Logger
}

func NewService(s store.Store, mirror Mirror, log *logger.Logger) *Service {
	if mirror == nil {
		mirror = noopMirror{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{store: s, mirror: mirror, log: log}
}

type HatchInput struct {
	TokenID         int64  `json:"tokenId"`
	Breeder         string `json:"breeder"`
	Personality     string `json:"personality"`
	PersonalityDesc string `json:"personalityDesc,omitempty"`
}

type BreedInput struct {
	TokenID         int64  `json:"tokenId"`
	Breeder         string `json:"breeder"`
	ParentA         int64  `json:"parentA"`
	ParentB         int64  `json:"parentB"`
	Personality     string `json:"personality"`
	PersonalityDesc string `json:"personalityDesc,omitempty"`
}

// Hatch creates an origin mutt.
func (s *Service) Hatch(ctx context.Context, in HatchInput) (*store.Mutt, error) {
	if in.TokenID <= 0 {
		return nil, fmt.Errorf("%w: token id must be positive", ErrInvalidInput)
	}

	m := store.MuttInput{
		TokenID:         in.TokenID,
		Personality:     in.Personality,
		PersonalityDesc: in.PersonalityDesc,
		Breeder:         in.Breeder,
		Bloodline:       bloodline.GradeMutt,
	}
	created, err := s.create(ctx, m, ActivityHatch, nil)
	if err != nil {
		return nil, fmt.Errorf("hatching mutt %d: %w", in.TokenID, err)
	}
	return created, nil
}

// Breed creates a mutt from two stored parents.
func (s *Service) Breed(ctx context.Context, in BreedInput) (*store.Mutt, error) {
	switch {
	case in.TokenID <= 0:
		return nil, fmt.Errorf("%w: token id must be positive", ErrInvalidInput)
	case in.ParentA <= 0 || in.ParentB <= 0:
		return nil, fmt.Errorf("%w: both parents are required", ErrInvalidInput)
	case in.ParentA == in.ParentB:
		return nil, fmt.Errorf("%w: parents must differ", ErrInvalidInput)
	case in.TokenID == in.ParentA || in.TokenID == in.ParentB:
		return nil, fmt.Errorf("%w: a mutt cannot parent itself", ErrInvalidInput)
	}

	parents, err := s.store.GetMutts(ctx, []int64{in.ParentA, in.ParentB})
	if err != nil {
		return nil, fmt.Errorf("breeding mutt %d: %w", in.TokenID, err)
	}
	if len(parents) != 2 {
		return nil, fmt.Errorf("breeding mutt %d: parent: %w", in.TokenID, ErrNotFound)
	}

	m := store.MuttInput{
		TokenID:         in.TokenID,
		Personality:     in.Personality,
		PersonalityDesc: in.PersonalityDesc,
		Breeder:         in.Breeder,
		ParentA:         in.ParentA,
		ParentB:         in.ParentB,
		Bloodline:       bloodline.InitialGrade(in.ParentA, in.ParentB),
	}
	detail := map[string]any{"parent_a": in.ParentA, "parent_b": in.ParentB}
	created, err := s.create(ctx, m, ActivityBreed, detail)
	if err != nil {
		return nil, fmt.Errorf("breeding mutt %d: %w", in.TokenID, err)
	}
	return created, nil
}

func (s *Service) create(ctx context.Context, m store.MuttInput, activity string, detail map[string]any) (*store.Mutt, error) {
	if err := s.store.InsertMutt(ctx, m); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	created, err := s.store.GetMutt(ctx, m.TokenID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, ErrNotFound
	}

	s.logActivity(ctx, store.ActivityInput{
		Type:    activity,
		Actor:   strings.ToLower(m.Breeder),
		TokenID: m.TokenID,
		Detail:  detail,
	})
	if err := s.mirror.UpsertMutt(ctx, *created); err != nil {
		s.log.Warn("mirroring mutt failed", "token_id", m.TokenID, "error", err)
	}

	s.log.Info("mutt created", "token_id", m.TokenID, "bloodline", string(created.Bloodline))
	return created, nil
}

// GetMutt returns ErrNotFound when no mutt has tokenID.
func (s *Service) GetMutt(ctx context.Context, tokenID int64) (*store.Mutt, error) {
	m, err := s.store.GetMutt(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("getting mutt %d: %w", tokenID, err)
	}
	if m == nil {
		return nil, fmt.Errorf("getting mutt %d: %w", tokenID, ErrNotFound)
	}
	return m, nil
}

func (s *Service) ListMutts(ctx context.Context, filter store.ListFilter) ([]store.MuttSummary, error) {
	if filter.Bloodline != "" {
		if _, err := bloodline.ParseGrade(filter.Bloodline); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	summaries, err := s.store.ListMutts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing mutts: %w", err)
	}
	return summaries, nil
}

// logActivity records a feed entry. The feed is advisory; failures are logged.
func (s *Service) logActivity(ctx context.Context, a store.ActivityInput) {
	if err := s.store.LogActivity(ctx, a); err != nil {
		s.log.Warn("logging activity failed", "type", a.Type, "token_id", a.TokenID, "error", err)
	}
}
