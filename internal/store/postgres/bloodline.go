package postgres

import (
	"context"
	"fmt"

	"mutt/internal/bloodline"
	"mutt/internal/store"
)

func (c *Client) ApplyPromotion(ctx context.Context, route bloodline.Route) error {
	if len(route.Path) == 0 {
		return nil
	}

	routeJSON, err := store.EncodeRoute(route)
	if err != nil {
		return err
	}

	query := `
UPDATE mutts SET
    bloodline = CASE WHEN bloodline = 'sacred28' THEN 'sacred28' ELSE 'pureblood' END,
    pureblood_route = $1::jsonb
WHERE token_id = ANY($2)
`
	if _, err := c.pool.Exec(ctx, query, string(routeJSON), route.Path); err != nil {
		return fmt.Errorf("promoting route: %w", err)
	}
	return nil
}

func (c *Client) ListRouteRecords(ctx context.Context) ([]bloodline.RouteRecord, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT token_id, pureblood_route FROM mutts WHERE pureblood_route IS NOT NULL ORDER BY token_id`)
	if err != nil {
		return nil, fmt.Errorf("listing route records: %w", err)
	}
	defer rows.Close()

	records := []bloodline.RouteRecord{}
	for rows.Next() {
		var tokenID int64
		var routeBytes []byte
		if err := rows.Scan(&tokenID, &routeBytes); err != nil {
			return nil, fmt.Errorf("scanning route record: %w", err)
		}
		records = append(records, store.RouteRecordFrom(tokenID, routeBytes))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating route records: %w", err)
	}
	return records, nil
}

func (c *Client) SyncSacred(ctx context.Context, sacredIDs []int64) (store.SacredSync, error) {
	if sacredIDs == nil {
		sacredIDs = []int64{}
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return store.SacredSync{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	promoted, err := tx.Exec(ctx,
		`UPDATE mutts SET bloodline = 'sacred28' WHERE bloodline <> 'sacred28' AND token_id = ANY($1)`,
		sacredIDs)
	if err != nil {
		return store.SacredSync{}, fmt.Errorf("promoting sacred mutts: %w", err)
	}

	restored, err := tx.Exec(ctx,
		`UPDATE mutts SET bloodline = 'pureblood' WHERE bloodline = 'sacred28' AND NOT (token_id = ANY($1))`,
		sacredIDs)
	if err != nil {
		return store.SacredSync{}, fmt.Errorf("restoring fallen sacred mutts: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return store.SacredSync{}, fmt.Errorf("committing sacred sync: %w", err)
	}
	return store.SacredSync{Promoted: promoted.RowsAffected(), Restored: restored.RowsAffected()}, nil
}
