package store

import (
	"encoding/json"
	"fmt"

	"mutt/internal/bloodline"
)

func EncodeRoute(route bloodline.Route) ([]byte, error) {
	if route.Path == nil {
		route.Path = []int64{}
	}
	data, err := json.Marshal(route)
	if err != nil {
		return nil, fmt.Errorf("marshaling route: %w", err)
	}
	return data, nil
}

// DecodeRoute parses a stored route. An empty column yields nil.
func DecodeRoute(data []byte) (*bloodline.Route, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var route bloodline.Route
	if err := json.Unmarshal(data, &route); err != nil {
		return nil, fmt.Errorf("unmarshaling route: %w", err)
	}
	return &route, nil
}

// RouteRecordFrom builds a leaderboard record from a stored column. A
// column that cannot be parsed becomes an empty route, which the leaderboard
// skips.
func RouteRecordFrom(tokenID int64, data []byte) bloodline.RouteRecord {
	route, err := DecodeRoute(data)
	if err != nil || route == nil {
		return bloodline.RouteRecord{TokenID: tokenID}
	}
	return bloodline.RouteRecord{TokenID: tokenID, Route: *route}
}
