package bloodline

import "sort"

// RouteRecord is a stored mutt together with the route persisted on it.
type RouteRecord struct {
	TokenID int64 `json:"tokenId"`
	Route   Route `json:"route"`
}

type House struct {
	Rank         int     `json:"rank"`
	Head         int64   `json:"head"`
	Route        []int64 `json:"route"`
	AvgRating    float64 `json:"avgRating"`
	TotalReviews int     `json:"totalReviews"`
	Members      []int64 `json:"members"`
	Sacred       bool    `json:"sacred"`
}

// BuildLeaderboard groups stored routes into houses keyed by the route head
// and ranks them by rating, then review count, then head id. Houses ranked
// within limit are marked Sacred. Records with an empty path are skipped.
func BuildLeaderboard(records []RouteRecord, limit int) []House {
	index := make(map[int64]int)
	var houses []House

	for _, record := range records {
		if len(record.Route.Path) == 0 {
			continue
		}
		head := record.Route.Head()
		i, ok := index[head]
		if !ok {
			houses = append(houses, House{
				Head:         head,
				Route:        append([]int64(nil), record.Route.Path...),
				AvgRating:    record.Route.AvgRating,
				TotalReviews: record.Route.TotalReviews,
				Members:      []int64{},
			})
			i = len(houses) - 1
			index[head] = i
		}

		house := &houses[i]
		if record.Route.Contains(record.TokenID) && !containsID(house.Members, record.TokenID) {
			house.Members = append(house.Members, record.TokenID)
		}
	}

	sort.SliceStable(houses, func(i, j int) bool {
		a, b := houses[i], houses[j]
		if a.AvgRating != b.AvgRating {
			return a.AvgRating > b.AvgRating
		}
		if a.TotalReviews != b.TotalReviews {
			return a.TotalReviews > b.TotalReviews
		}
		return a.Head < b.Head
	})

	for i := range houses {
		houses[i].Rank = i + 1
		houses[i].Sacred = limit > 0 && i < limit
	}

	if houses == nil {
		houses = []House{}
	}
	return houses
}

func containsID(ids []int64, id int64) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
