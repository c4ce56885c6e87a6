package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"mutt/internal/store"
)

func (c *Client) HasRated(ctx context.Context, tokenID int64, voter string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM ratings WHERE token_id = $1 AND voter = $2)`
	if err := c.pool.QueryRow(ctx, query, tokenID, strings.ToLower(voter)).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking rating: %w", err)
	}
	return exists, nil
}

// RecordRating inserts the rating and refreshes the mutt's aggregates in one
// transaction.
func (c *Client) RecordRating(ctx context.Context, r store.RatingInput) (store.RatingStats, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return store.RatingStats{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Ratings on one mutt serialize on its row so each aggregate sees every
	// committed vote.
	var locked int
	err = tx.QueryRow(ctx, `SELECT 1 FROM mutts WHERE token_id = $1 FOR UPDATE`, r.TokenID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.RatingStats{}, fmt.Errorf("recording rating: mutt %d does not exist", r.TokenID)
		}
		return store.RatingStats{}, fmt.Errorf("locking mutt: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO ratings (token_id, voter, score) VALUES ($1, $2, $3)`,
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
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(score), 0)::float8 FROM ratings WHERE token_id = $1`,
		r.TokenID,
	).Scan(&count, &avg)
	if err != nil {
		return store.RatingStats{}, fmt.Errorf("aggregating ratings: %w", err)
	}

	stats := store.RatingStats{AvgRating: store.RoundRating(avg), TotalReviews: count}
	_, err = tx.Exec(ctx,
		`UPDATE mutts SET avg_rating = $1, total_reviews = $2 WHERE token_id = $3`,
		stats.AvgRating, stats.TotalReviews, r.TokenID,
	)
	if err != nil {
		return store.RatingStats{}, fmt.Errorf("updating mutt rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return store.RatingStats{}, fmt.Errorf("committing rating: %w", err)
	}
	return stats, nil
}
