// Package bloodline decides whether a mutt carries a pureblood line and ranks
// pureblood houses. Everything here is pure: callers fetch ancestors, hand
// them in through a Lookup, and persist whatever comes back.
package bloodline

// Check builds the side A and side B routes for child and returns the best
// qualifying one. When both qualify with the same rating, side A wins.
func Check(child Mutt, lookup Lookup) Decision {
	routeA := BuildRoute(child, SideA, lookup)
	routeB := BuildRoute(child, SideB, lookup)
	return decide(routeA, routeB)
}

func decide(routeA, routeB Route) Decision {
	switch {
	case routeA.Qualified && routeB.Qualified:
		if routeB.AvgRating > routeA.AvgRating {
			return Decision{IsPureblood: true, Route: &routeB}
		}
		return Decision{IsPureblood: true, Route: &routeA}
	case routeA.Qualified:
		return Decision{IsPureblood: true, Route: &routeA}
	case routeB.Qualified:
		return Decision{IsPureblood: true, Route: &routeB}
	default:
		return Decision{}
	}
}

// Routes returns both computed routes without picking a winner. Read paths
// use it to show why a mutt is or is not pureblood.
func Routes(child Mutt, lookup Lookup) (Route, Route) {
	return BuildRoute(child, SideA, lookup), BuildRoute(child, SideB, lookup)
}
