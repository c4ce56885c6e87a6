package store

import (
	"context"
	"errors"
	"math"

	"mutt/internal/bloodline"
)

// ErrConflict is returned when an insert collides with an existing row.
var ErrConflict = errors.New("conflict")

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	InsertMutt(ctx context.Context, m MuttInput) error
	GetMutt(ctx context.Context, tokenID int64) (*Mutt, error)
	GetMutts(ctx context.Context, tokenIDs []int64) ([]Mutt, error)
	ListMutts(ctx context.Context, filter ListFilter) ([]MuttSummary, error)
	ListAllMutts(ctx context.Context) ([]Mutt, error)

	HasRated(ctx context.Context, tokenID int64, voter string) (bool, error)
	RecordRating(ctx context.Context, r RatingInput) (RatingStats, error)

	ApplyPromotion(ctx context.Context, route bloodline.Route) error
	ListRouteRecords(ctx context.Context) ([]bloodline.RouteRecord, error)
	SyncSacred(ctx context.Context, sacredIDs []int64) (SacredSync, error)

	LogActivity(ctx context.Context, a ActivityInput) error
	ListActivities(ctx context.Context, tokenID int64, limit int) ([]Activity, error)

	ListDanglingParents(ctx context.Context) ([]ParentRef, error)

	RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

// RoundRating rounds an average to two decimals, the precision ratings are
// stored at.
func RoundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}
