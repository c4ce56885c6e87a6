package sqlite

import (
	"context"
	"fmt"

	"mutt/internal/bloodline"
	"mutt/internal/store"
)

func (c *Client) ListDanglingParents(ctx context.Context) ([]store.ParentRef, error) {
	query := `
	SELECT m.token_id, 'A', m.parent_a FROM mutts m
	WHERE m.parent_a > 0 AND NOT EXISTS (SELECT 1 FROM mutts p WHERE p.token_id = m.parent_a)
	UNION ALL
	SELECT m.token_id, 'B', m.parent_b FROM mutts m
	WHERE m.parent_b > 0 AND NOT EXISTS (SELECT 1 FROM mutts p WHERE p.token_id = m.parent_b)
	ORDER BY 1, 2
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing dangling parents: %w", err)
	}
	defer rows.Close()

	refs := []store.ParentRef{}
	for rows.Next() {
		var ref store.ParentRef
		var side string
		if err := rows.Scan(&ref.TokenID, &side, &ref.ParentID); err != nil {
			return nil, fmt.Errorf("scanning parent ref: %w", err)
		}
		ref.Side = bloodline.Side(side)
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating parent refs: %w", err)
	}
	return refs, nil
}
