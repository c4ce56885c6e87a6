package postgres

import (
	"context"
	"fmt"

	"mutt/internal/bloodline"
	"mutt/internal/store"
)

func (c *Client) ListDanglingParents(ctx context.Context) ([]store.ParentRef, error) {
	query := `
SELECT m.token_id, s.side, s.parent_id
FROM mutts m
CROSS JOIN LATERAL (VALUES ('A', m.parent_a), ('B', m.parent_b)) AS s(side, parent_id)
WHERE s.parent_id > 0
  AND NOT EXISTS (SELECT 1 FROM mutts p WHERE p.token_id = s.parent_id)
ORDER BY m.token_id, s.side
`

	rows, err := c.pool.Query(ctx, query)
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
