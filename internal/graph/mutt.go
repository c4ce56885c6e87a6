package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"mutt/internal/bloodline"
	"mutt/internal/store"
)

// UpsertMutt merges the node and an edge from each stored parent. Parents
// not yet mirrored are created as bare nodes.
func (c *Client) UpsertMutt(ctx context.Context, m store.Mutt) error {
	parents := make([]map[string]any, 0, 2)
	if m.ParentA > 0 {
		parents = append(parents, map[string]any{"id": m.ParentA, "side": string(bloodline.SideA)})
	}
	if m.ParentB > 0 {
		parents = append(parents, map[string]any{"id": m.ParentB, "side": string(bloodline.SideB)})
	}

	query := `
MERGE (m:Mutt {token_id: $token_id})
SET m.personality = $personality,
    m.breeder = $breeder,
    m.bloodline = $bloodline,
    m.avg_rating = $avg_rating,
    m.total_reviews = $total_reviews
WITH m
UNWIND $parents AS parent
MERGE (p:Mutt {token_id: parent.id})
MERGE (p)-[:PARENT_OF {side: parent.side}]->(m)
`
	params := map[string]any{
		"token_id":      m.TokenID,
		"personality":   m.Personality,
		"breeder":       m.Breeder,
		"bloodline":     string(m.Bloodline),
		"avg_rating":    m.AvgRating,
		"total_reviews": int64(m.TotalReviews),
		"parents":       parents,
	}

	if err := c.write(ctx, query, params); err != nil {
		return fmt.Errorf("upserting mutt %d: %w", m.TokenID, err)
	}
	return nil
}

// SetBloodline marks every node on route pureblood, leaving sacred28 nodes
// as they are.
func (c *Client) SetBloodline(ctx context.Context, route bloodline.Route) error {
	if len(route.Path) == 0 {
		return nil
	}

	query := `
UNWIND $path AS id
MATCH (m:Mutt {token_id: id})
SET m.bloodline = CASE WHEN m.bloodline = 'sacred28' THEN 'sacred28' ELSE 'pureblood' END,
    m.route = $path,
    m.route_avg_rating = $avg_rating,
    m.route_total_reviews = $total_reviews
`
	params := map[string]any{
		"path":          route.Path,
		"avg_rating":    route.AvgRating,
		"total_reviews": int64(route.TotalReviews),
	}

	if err := c.write(ctx, query, params); err != nil {
		return fmt.Errorf("setting bloodline: %w", err)
	}
	return nil
}

func (c *Client) SyncSacred(ctx context.Context, sacredIDs []int64) error {
	if sacredIDs == nil {
		sacredIDs = []int64{}
	}

	session := c.session(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		params := map[string]any{"ids": sacredIDs}
		if _, err := tx.Run(ctx, `
MATCH (m:Mutt) WHERE m.bloodline = 'sacred28' AND NOT m.token_id IN $ids
SET m.bloodline = 'pureblood'`, params); err != nil {
			return nil, err
		}
		_, err := tx.Run(ctx, `
MATCH (m:Mutt) WHERE m.token_id IN $ids
SET m.bloodline = 'sacred28'`, params)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("syncing sacred nodes: %w", err)
	}
	return nil
}
