package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const maxAncestorDepth = 10

type Ancestor struct {
	TokenID   int64  `json:"tokenId"`
	Bloodline string `json:"bloodline"`
	Depth     int    `json:"depth"`
}

// GetAncestors walks PARENT_OF edges up to depth generations above tokenID.
// Each ancestor is reported once at its shortest distance.
func (c *Client) GetAncestors(ctx context.Context, tokenID int64, depth int) ([]Ancestor, error) {
	if depth < 1 {
		depth = 1
	}
	if depth > maxAncestorDepth {
		depth = maxAncestorDepth
	}

	session := c.session(ctx)
	defer session.Close(ctx)

	// Variable-length bounds cannot be parameters.
	query := fmt.Sprintf(`
MATCH path = (a:Mutt)-[:PARENT_OF*1..%d]->(:Mutt {token_id: $token_id})
RETURN a.token_id AS token_id, coalesce(a.bloodline, '') AS bloodline, min(length(path)) AS depth
ORDER BY depth, token_id
`, depth)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"token_id": tokenID})
		if err != nil {
			return nil, err
		}

		ancestors := make([]Ancestor, 0)
		for res.Next(ctx) {
			record := res.Record()
			id, _, err := neo4j.GetRecordValue[int64](record, "token_id")
			if err != nil {
				return nil, err
			}
			grade, _, err := neo4j.GetRecordValue[string](record, "bloodline")
			if err != nil {
				return nil, err
			}
			d, _, err := neo4j.GetRecordValue[int64](record, "depth")
			if err != nil {
				return nil, err
			}
			ancestors = append(ancestors, Ancestor{TokenID: id, Bloodline: grade, Depth: int(d)})
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return ancestors, nil
	})
	if err != nil {
		return nil, fmt.Errorf("getting ancestors of %d: %w", tokenID, err)
	}

	return result.([]Ancestor), nil
}
