package sqlite

import (
	"context"
	"fmt"
	"strings"

	"mutt/internal/bloodline"
	"mutt/internal/store"
)

// ApplyPromotion marks every member of route pureblood and stores the route
// on each of them. Sacred members keep their grade.
func (c *Client) ApplyPromotion(ctx context.Context, route bloodline.Route) error {
	if len(route.Path) == 0 {
		return nil
	}

	routeJSON, err := store.EncodeRoute(route)
	if err != nil {
		return err
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	UPDATE mutts SET
		bloodline = CASE WHEN bloodline = 'sacred28' THEN 'sacred28' ELSE 'pureblood' END,
		pureblood_route = ?
	WHERE token_id = ?
	`
	for _, id := range route.Path {
		if _, err := tx.ExecContext(ctx, query, string(routeJSON), id); err != nil {
			return fmt.Errorf("promoting mutt %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing promotion: %w", err)
	}
	return nil
}

func (c *Client) ListRouteRecords(ctx context.Context) ([]bloodline.RouteRecord, error) {
	rows, err := c.db.QueryContext(ctx,
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

// SyncSacred grades sacredIDs sacred28 and returns every other sacred28 mutt
// to pureblood.
func (c *Client) SyncSacred(ctx context.Context, sacredIDs []int64) (store.SacredSync, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return store.SacredSync{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var result store.SacredSync

	restore := `UPDATE mutts SET bloodline = 'pureblood' WHERE bloodline = 'sacred28'`
	args := make([]any, 0, len(sacredIDs))
	if len(sacredIDs) > 0 {
		placeholders := make([]string, len(sacredIDs))
		for i, id := range sacredIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		in := strings.Join(placeholders, ", ")
		restore += ` AND token_id NOT IN (` + in + `)`

		res, err := tx.ExecContext(ctx,
			`UPDATE mutts SET bloodline = 'sacred28' WHERE bloodline <> 'sacred28' AND token_id IN (`+in+`)`,
			args...)
		if err != nil {
			return store.SacredSync{}, fmt.Errorf("promoting sacred mutts: %w", err)
		}
		result.Promoted, _ = res.RowsAffected()
	}

	res, err := tx.ExecContext(ctx, restore, args...)
	if err != nil {
		return store.SacredSync{}, fmt.Errorf("restoring fallen sacred mutts: %w", err)
	}
	result.Restored, _ = res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return store.SacredSync{}, fmt.Errorf("committing sacred sync: %w", err)
	}
	return result, nil
}
