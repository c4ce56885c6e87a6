package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"mutt/internal/store"
)

func (c *Client) LogActivity(ctx context.Context, a store.ActivityInput) error {
	detail := a.Detail
	if detail == nil {
		detail = map[string]any{}
	}
	detailJSON, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("marshaling activity detail: %w", err)
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO activities (type, actor, token_id, detail) VALUES (?, ?, ?, ?)`,
		a.Type, a.Actor, a.TokenID, string(detailJSON),
	)
	if err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// ListActivities returns the newest activities first. A tokenID of 0 lists
// activities for every mutt.
func (c *Client) ListActivities(ctx context.Context, tokenID int64, limit int) ([]store.Activity, error) {
	query := `
	SELECT id, type, actor, token_id, detail, created_at
	FROM activities
	WHERE (? = 0 OR token_id = ?)
	ORDER BY id DESC
	`
	args := []any{tokenID, tokenID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	activities := []store.Activity{}
	for rows.Next() {
		var a store.Activity
		var detailBytes []byte
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Type, &a.Actor, &a.TokenID, &detailBytes, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		if len(detailBytes) > 0 {
			if err := json.Unmarshal(detailBytes, &a.Detail); err != nil {
				return nil, fmt.Errorf("unmarshaling activity detail: %w", err)
			}
		}
		if a.Detail == nil {
			a.Detail = map[string]any{}
		}
		a.CreatedAt = parseTimestamp(createdAt)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return activities, nil
}
