package lineage

import (
	"context"

	"mutt/internal/bloodline"
	"mutt/internal/store"
)

// Mirror receives lineage changes after they are committed to the store.
// Mirror failures are logged and never fail the originating call.
type Mirror interface {
	UpsertMutt(ctx context.Context, m store.Mutt) error
	SetBloodline(ctx context.Context, route bloodline.Route) error
	SyncSacred(ctx context.Context, sacredIDs []int64) error
}

type noopMirror struct{}

func (noopMirror) UpsertMutt(context.Context, store.Mutt) error { return nil }
func (noopMirror) SetBloodline(context.Context, bloodline.Route) error { return nil }
func (noopMirror) SyncSacred(context.Context, []int64) error { return nil }
