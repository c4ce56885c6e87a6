package bloodline

// NewRoute aggregates members into a route. The rating is the plain mean of
// each member's own average, so an unrated member counts as 0.
func NewRoute(members ...Mutt) Route {
	route := Route{Path: make([]int64, 0, len(members))}
	if len(members) == 0 {
		return route
	}

	var sum float64
	for _, m := range members {
		route.Path = append(route.Path, m.TokenID)
		sum += m.AvgRating
		route.TotalReviews += m.TotalReviews
	}
	route.AvgRating = sum / float64(len(members))
	route.Qualified = Qualifies(route.AvgRating, route.TotalReviews)
	return route
}

func Qualifies(avgRating float64, totalReviews int) bool {
	return avgRating >= MinRating && totalReviews >= MinReviews
}

// BuildRoute walks one parent side of child up to the grandparent. The third
// hop may come from either of the parent's sides; the better candidate wins.
// An origin has no line, so its trivial route never qualifies. A bred mutt
// whose parent on side is missing keeps the trivial route on its own merits.
func BuildRoute(child Mutt, side Side, lookup Lookup) Route {
	if child.IsOrigin() {
		route := NewRoute(child)
		route.Qualified = false
		return route
	}

	parentID := child.parent(side)
	if parentID <= 0 {
		return NewRoute(child)
	}
	parent, ok := resolve(lookup, parentID)
	if !ok {
		return NewRoute(child)
	}

	var candidates []Route
	for _, gpID := range []int64{parent.ParentA, parent.ParentB} {
		if gp, ok := resolve(lookup, gpID); ok {
			candidates = append(candidates, NewRoute(child, parent, gp))
			continue
		}
		if len(candidates) == 0 {
			candidates = append(candidates, NewRoute(child, parent))
		}
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if better(candidate, best) {
			best = candidate
		}
	}
	return best
}

// better reports whether a strictly outranks b: qualified first, then the
// higher rating. Equal routes keep the earlier candidate.
func better(a, b Route) bool {
	if a.Qualified != b.Qualified {
		return a.Qualified
	}
	return a.AvgRating > b.AvgRating
}

func resolve(lookup Lookup, id int64) (Mutt, bool) {
	if id <= 0 || lookup == nil {
		return Mutt{}, false
	}
	return lookup.GetMutt(id)
}
