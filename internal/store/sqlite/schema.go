package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS mutts (
		token_id         INTEGER PRIMARY KEY,
		personality      TEXT NOT NULL DEFAULT '',
		personality_desc TEXT NOT NULL DEFAULT '',
		breeder          TEXT NOT NULL DEFAULT '',
		parent_a         INTEGER NOT NULL DEFAULT 0,
		parent_b         INTEGER NOT NULL DEFAULT 0,
		bloodline        TEXT NOT NULL DEFAULT 'mutt',
		avg_rating       REAL NOT NULL DEFAULT 0,
		total_reviews    INTEGER NOT NULL DEFAULT 0,
		pureblood_route  TEXT,
		created_at       TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS ratings (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		token_id   INTEGER NOT NULL REFERENCES mutts(token_id) ON DELETE CASCADE,
		voter      TEXT NOT NULL,
		score      INTEGER NOT NULL CHECK (score BETWEEN 1 AND 5),
		created_at TEXT NOT NULL DEFAULT (datetime('now')),
		CONSTRAINT uq_rating_voter UNIQUE (token_id, voter)
	);

	CREATE TABLE IF NOT EXISTS activities (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		type       TEXT NOT NULL,
		actor      TEXT NOT NULL DEFAULT '',
		token_id   INTEGER NOT NULL DEFAULT 0,
		detail     TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_mutts_parent_a ON mutts (parent_a);
	CREATE INDEX IF NOT EXISTS idx_mutts_parent_b ON mutts (parent_b);
	CREATE INDEX IF NOT EXISTS idx_mutts_bloodline ON mutts (bloodline);
	CREATE INDEX IF NOT EXISTS idx_mutts_breeder ON mutts (breeder);
	CREATE INDEX IF NOT EXISTS idx_mutts_rating ON mutts (avg_rating DESC, total_reviews DESC);
	CREATE INDEX IF NOT EXISTS idx_mutts_route ON mutts (token_id) WHERE pureblood_route IS NOT NULL;
	CREATE INDEX IF NOT EXISTS idx_ratings_token ON ratings (token_id);
	CREATE INDEX IF NOT EXISTS idx_activities_token ON activities (token_id, created_at);
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		statements = append(statements, current.String())
	}

	return statements
}
