package sqlite

import (
	"context"
	"fmt"
	"strings"

	"mutt/internal/store"
)

func (c *Client) HasRated(ctx context.Context, tokenID int64, voter string) (bool, error) {
	var exists int
	query := `SELECT EXISTS (SELECT 1 FROM ratings WHERE token_id = ? AND voter = ?)`
	if err := c.db.QueryRowContext(ctx, query, tokenID, strings.ToLower(voter)).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking rating: %w", err)
	}
	return exists == 1, nil
}

// RecordRating inserts the rating and refreshes the mutt's aggregates in one
// transaction.
func (c *Client) RecordRating(ctx context.Context, r store.RatingInput) (store.RatingStats, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return store.RatingStats{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ratings (token_id, voter, score) VALUES (?, ?, ?)`,
		r.TokenID, strings.ToLower(r.Voter), r.Score,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.RatingStats{}, fmt.Errorf("recording rating: %w", store.ErrConflict)
		}
		return store.RatingStats{}, fmt.Errorf("recording rating: %w", err)
	}

	var count int
	var avg float64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(score), 0) FROM ratings WHERE token_id = ?`,
		r.TokenID,
	).Scan(&count, &avg)
	if err != nil {
		return store.RatingStats{}, fmt.Errorf("aggregating ratings: %w", err)
	}

	stats := store.RatingStats{AvgRating: store.RoundRating(avg), TotalReviews: count}
	_, err = tx.ExecContext(ctx,
		`UPDATE mutts SET avg_rating = ?, total_reviews = ? WHERE token_id = ?`,
		stats.AvgRating, int64(stats.TotalReviews), r.TokenID,
	)
	if err != nil {
		return store.RatingStats{}, fmt.Errorf("updating mutt rating: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return store.RatingStats{}, fmt.Errorf("committing rating: %w", err)
	}
	return stats, nil
}
