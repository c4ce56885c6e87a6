package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"mutt/internal/bloodline"
	"mutt/internal/store"
)

const muttColumns = `token_id, personality, personality_desc, breeder, parent_a, parent_b,
    bloodline, avg_rating, total_reviews, pureblood_route, created_at`

func (c *Client) InsertMutt(ctx context.Context, m store.MuttInput) error {
	grade := m.Bloodline
	if grade == "" {
		grade = bloodline.InitialGrade(m.ParentA, m.ParentB)
	}

	query := `
INSERT INTO mutts (token_id, personality, personality_desc, breeder, parent_a, parent_b, bloodline)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := c.pool.Exec(ctx, query,
		m.TokenID,
		m.Personality,
		m.PersonalityDesc,
		strings.ToLower(m.Breeder),
		m.ParentA,
		m.ParentB,
		string(grade),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("inserting mutt %d: %w", m.TokenID, store.ErrConflict)
		}
		return fmt.Errorf("inserting mutt: %w", err)
	}
	return nil
}

func (c *Client) GetMutt(ctx context.Context, tokenID int64) (*store.Mutt, error) {
	query := `SELECT ` + muttColumns + ` FROM mutts WHERE token_id = $1`

	m, err := scanMutt(c.pool.QueryRow(ctx, query, tokenID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting mutt: %w", err)
	}
	return m, nil
}

func (c *Client) GetMutts(ctx context.Context, tokenIDs []int64) ([]store.Mutt, error) {
	if len(tokenIDs) == 0 {
		return []store.Mutt{}, nil
	}
	query := `SELECT ` + muttColumns + ` FROM mutts WHERE token_id = ANY($1) ORDER BY token_id`
	return c.queryMutts(ctx, query, tokenIDs)
}

func (c *Client) ListAllMutts(ctx context.Context) ([]store.Mutt, error) {
	return c.queryMutts(ctx, `SELECT `+muttColumns+` FROM mutts ORDER BY token_id`)
}

func (c *Client) ListMutts(ctx context.Context, filter store.ListFilter) ([]store.MuttSummary, error) {
	query := `
SELECT token_id, personality, breeder, bloodline, avg_rating, total_reviews
FROM mutts
WHERE ($1 = '' OR bloodline = $1)
  AND ($2 = '' OR breeder = $2)
ORDER BY token_id
`
	args := []any{filter.Bloodline, strings.ToLower(filter.Breeder)}
	if filter.Limit > 0 {
		query += ` LIMIT $3`
		args = append(args, filter.Limit)
	}

	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing mutts: %w", err)
	}
	defer rows.Close()

	summaries := []store.MuttSummary{}
	for rows.Next() {
		var s store.MuttSummary
		var grade string
		if err := rows.Scan(&s.TokenID, &s.Personality, &s.Breeder, &grade, &s.AvgRating, &s.TotalReviews); err != nil {
			return nil, fmt.Errorf("scanning mutt summary: %w", err)
		}
		s.Bloodline = bloodline.Grade(grade)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mutt summaries: %w", err)
	}
	return summaries, nil
}

func (c *Client) queryMutts(ctx context.Context, query string, args ...any) ([]store.Mutt, error) {
	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying mutts: %w", err)
	}
	defer rows.Close()

	mutts := []store.Mutt{}
	for rows.Next() {
		m, err := scanMutt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning mutt: %w", err)
		}
		mutts = append(mutts, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mutts: %w", err)
	}
	return mutts, nil
}

func scanMutt(row pgx.Row) (*store.Mutt, error) {
	var m store.Mutt
	var grade string
	var routeBytes []byte

	err := row.Scan(
		&m.TokenID,
		&m.Personality,
		&m.PersonalityDesc,
		&m.Breeder,
		&m.ParentA,
		&m.ParentB,
		&grade,
		&m.AvgRating,
		&m.TotalReviews,
		&routeBytes,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Bloodline = bloodline.Grade(grade)
	m.PurebloodRoute, err = store.DecodeRoute(routeBytes)
	if err != nil {
		return nil, fmt.Errorf("mutt %d: %w", m.TokenID, err)
	}
	return &m, nil
}
