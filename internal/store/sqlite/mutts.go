package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"mutt/internal/bloodline"
	"mutt/internal/store"
)

const muttColumns = `token_id, personality, personality_desc, breeder, parent_a, parent_b,
	bloodline, avg_rating, total_reviews, pureblood_route, created_at`

const timestampLayout = "2006-01-02 15:04:05"

func (c *Client) InsertMutt(ctx context.Context, m store.MuttInput) error {
	grade := m.Bloodline
	if grade == "" {
		grade = bloodline.InitialGrade(m.ParentA, m.ParentB)
	}

	query := `
	INSERT INTO mutts (token_id, personality, personality_desc, breeder, parent_a, parent_b, bloodline)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := c.db.ExecContext(ctx, query,
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
	query := `SELECT ` + muttColumns + ` FROM mutts WHERE token_id = ?`

	m, err := scanMutt(c.db.QueryRowContext(ctx, query, tokenID))
	if errors.Is(err, sql.ErrNoRows) {
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

	placeholders := make([]string, len(tokenIDs))
	args := make([]any, len(tokenIDs))
	for i, id := range tokenIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `SELECT ` + muttColumns + ` FROM mutts WHERE token_id IN (` +
		strings.Join(placeholders, ", ") + `) ORDER BY token_id`
	return c.queryMutts(ctx, query, args...)
}

func (c *Client) ListAllMutts(ctx context.Context) ([]store.Mutt, error) {
	return c.queryMutts(ctx, `SELECT `+muttColumns+` FROM mutts ORDER BY token_id`)
}

func (c *Client) ListMutts(ctx context.Context, filter store.ListFilter) ([]store.MuttSummary, error) {
	query := `
	SELECT token_id, personality, breeder, bloodline, avg_rating, total_reviews
	FROM mutts
	WHERE (? = '' OR bloodline = ?)
	  AND (? = '' OR breeder = ?)
	ORDER BY token_id
	`
	args := []any{filter.Bloodline, filter.Bloodline, strings.ToLower(filter.Breeder), strings.ToLower(filter.Breeder)}
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
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
	rows, err := c.db.QueryContext(ctx, query, args...)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMutt(row rowScanner) (*store.Mutt, error) {
	var m store.Mutt
	var grade string
	var routeBytes []byte
	var createdAt string

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
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	m.Bloodline = bloodline.Grade(grade)
	m.PurebloodRoute, err = store.DecodeRoute(routeBytes)
	if err != nil {
		return nil, fmt.Errorf("mutt %d: %w", m.TokenID, err)
	}
	m.CreatedAt = parseTimestamp(createdAt)
	return &m, nil
}

func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
