package postgres

import (
	"context"
	"fmt"
)

// EnsureSchema runs the DDL as a single implicit transaction. Every statement
// is IF NOT EXISTS so repeated runs are no-ops.
func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS mutts (
    token_id         BIGINT PRIMARY KEY,
    personality      TEXT NOT NULL DEFAULT '',
    personality_desc TEXT NOT NULL DEFAULT '',
    breeder          TEXT NOT NULL DEFAULT '',
    parent_a         BIGINT NOT NULL DEFAULT 0,
    parent_b         BIGINT NOT NULL DEFAULT 0,
    bloodline        TEXT NOT NULL DEFAULT 'mutt',
    avg_rating       DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_reviews    INTEGER NOT NULL DEFAULT 0,
    pureblood_route  JSONB,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ratings (
    id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    token_id   BIGINT NOT NULL REFERENCES mutts(token_id) ON DELETE CASCADE,
    voter      TEXT NOT NULL,
    score      SMALLINT NOT NULL CHECK (score BETWEEN 1 AND 5),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT uq_rating_voter UNIQUE (token_id, voter)
);

CREATE TABLE IF NOT EXISTS activities (
    id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    type       TEXT NOT NULL,
    actor      TEXT NOT NULL DEFAULT '',
    token_id   BIGINT NOT NULL DEFAULT 0,
    detail     JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_mutts_parent_a ON mutts (parent_a);
CREATE INDEX IF NOT EXISTS idx_mutts_parent_b ON mutts (parent_b);
CREATE INDEX IF NOT EXISTS idx_mutts_bloodline ON mutts (bloodline);
CREATE INDEX IF NOT EXISTS idx_mutts_breeder ON mutts (breeder);
CREATE INDEX IF NOT EXISTS idx_mutts_rating ON mutts (avg_rating DESC, total_reviews DESC);
CREATE INDEX IF NOT EXISTS idx_mutts_route ON mutts (token_id) WHERE pureblood_route IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_ratings_token ON ratings (token_id);
CREATE INDEX IF NOT EXISTS idx_activities_token ON activities (token_id, created_at DESC);
`

	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
