package bloodline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Origin(t *testing.T) {
	origin := Mutt{TokenID: 1, AvgRating: 5, TotalReviews: 40}
	nodes := Nodes{}
	nodes.Add(origin)

	decision := Check(origin, nodes)
	assert.False(t, decision.IsPureblood)
	assert.Nil(t, decision.Route)

	routeA, routeB := Routes(origin, nodes)
	assert.Equal(t, []int64{1}, routeA.Path)
	assert.Equal(t, []int64{1}, routeB.Path)
	assert.False(t, routeA.Qualified)
	assert.False(t, routeB.Qualified)
}

func TestCheck_UnratedParentSuppressesSideA(t *testing.T) {
	parent := Mutt{TokenID: 1}
	child := Mutt{TokenID: 2, ParentA: 1, AvgRating: 4.9, TotalReviews: 10}
	nodes := Nodes{}
	nodes.Add(parent, child)

	routeA := BuildRoute(child, SideA, nodes)
	assert.Equal(t, []int64{2, 1}, routeA.Path)
	assert.InDelta(t, 2.45, routeA.AvgRating, 1e-9)
	assert.Equal(t, 10, routeA.TotalReviews)
	assert.False(t, routeA.Qualified)

	// Side B has no parent, so the trivial route stands on the child alone.
	routeB := BuildRoute(child, SideB, nodes)
	assert.Equal(t, []int64{2}, routeB.Path)
	assert.True(t, routeB.Qualified)

	decision := Check(child, nodes)
	require.True(t, decision.IsPureblood)
	assert.Equal(t, []int64{2}, decision.Route.Path)
}

func TestCheck_UnratedParentAndThinChild(t *testing.T) {
	parent := Mutt{TokenID: 1}
	child := Mutt{TokenID: 2, ParentA: 1, AvgRating: 4.9, TotalReviews: 9}
	nodes := Nodes{}
	nodes.Add(parent, child)

	decision := Check(child, nodes)
	assert.False(t, decision.IsPureblood)
	assert.Nil(t, decision.Route)
}

func TestCheck_ThreeGenerationRoute(t *testing.T) {
	grandparent := Mutt{TokenID: 1, AvgRating: 4.9, TotalReviews: 20}
	parentA := Mutt{TokenID: 2, ParentA: 1, AvgRating: 4.8, TotalReviews: 15}
	parentB := Mutt{TokenID: 3, AvgRating: 3.0, TotalReviews: 2}
	child := Mutt{TokenID: 4, ParentA: 2, ParentB: 3, AvgRating: 4.6, TotalReviews: 12}
	nodes := Nodes{}
	nodes.Add(grandparent, parentA, parentB, child)

	decision := Check(child, nodes)
	require.True(t, decision.IsPureblood)
	require.NotNil(t, decision.Route)
	assert.Equal(t, []int64{4, 2, 1}, decision.Route.Path)
	assert.InDelta(t, 14.3/3, decision.Route.AvgRating, 1e-9)
	assert.Equal(t, 47, decision.Route.TotalReviews)
	assert.True(t, decision.Route.Qualified)
}

func TestCheck_BothQualifyPicksHigherRating(t *testing.T) {
	parentA := Mutt{TokenID: 1, AvgRating: 4.7, TotalReviews: 5}
	parentB := Mutt{TokenID: 2, AvgRating: 5.0, TotalReviews: 5}
	child := Mutt{TokenID: 3, ParentA: 1, ParentB: 2, AvgRating: 4.8, TotalReviews: 10}
	nodes := Nodes{}
	nodes.Add(parentA, parentB, child)

	routeA, routeB := Routes(child, nodes)
	require.True(t, routeA.Qualified)
	require.True(t, routeB.Qualified)
	assert.InDelta(t, 4.75, routeA.AvgRating, 1e-9)
	assert.InDelta(t, 4.9, routeB.AvgRating, 1e-9)

	decision := Check(child, nodes)
	require.True(t, decision.IsPureblood)
	assert.Equal(t, []int64{3, 2}, decision.Route.Path)
}

func TestCheck_EqualRatingsPreferSideA(t *testing.T) {
	parentA := Mutt{TokenID: 1, AvgRating: 4.8, TotalReviews: 6}
	parentB := Mutt{TokenID: 2, AvgRating: 4.8, TotalReviews: 6}
	child := Mutt{TokenID: 3, ParentA: 1, ParentB: 2, AvgRating: 4.8, TotalReviews: 6}
	nodes := Nodes{}
	nodes.Add(parentA, parentB, child)

	for i := 0; i < 5; i++ {
		decision := Check(child, nodes)
		require.True(t, decision.IsPureblood)
		assert.Equal(t, []int64{3, 1}, decision.Route.Path)
	}
}

func TestCheck_OneSideQualifies(t *testing.T) {
	parentA := Mutt{TokenID: 1, AvgRating: 2.0, TotalReviews: 30}
	parentB := Mutt{TokenID: 2, AvgRating: 4.9, TotalReviews: 30}
	child := Mutt{TokenID: 3, ParentA: 1, ParentB: 2, AvgRating: 4.9, TotalReviews: 1}
	nodes := Nodes{}
	nodes.Add(parentA, parentB, child)

	decision := Check(child, nodes)
	require.True(t, decision.IsPureblood)
	assert.Equal(t, []int64{3, 2}, decision.Route.Path)
}

func TestCheck_MissingRecordsFallBack(t *testing.T) {
	t.Run("missing parent", func(t *testing.T) {
		child := Mutt{TokenID: 5, ParentA: 99, ParentB: 98, AvgRating: 5, TotalReviews: 50}
		nodes := Nodes{}
		nodes.Add(child)

		routeA, routeB := Routes(child, nodes)
		assert.Equal(t, []int64{5}, routeA.Path)
		assert.Equal(t, []int64{5}, routeB.Path)

		decision := Check(child, nodes)
		require.True(t, decision.IsPureblood)
		assert.Equal(t, []int64{5}, decision.Route.Path)
	})

	t.Run("missing parent below the bar", func(t *testing.T) {
		child := Mutt{TokenID: 5, ParentA: 99, AvgRating: 4.6, TotalReviews: 50}
		nodes := Nodes{}
		nodes.Add(child)

		assert.False(t, Check(child, nodes).IsPureblood)
	})

	t.Run("missing grandparent", func(t *testing.T) {
		parent := Mutt{TokenID: 2, ParentA: 77, AvgRating: 4.9, TotalReviews: 10}
		child := Mutt{TokenID: 3, ParentA: 2, AvgRating: 4.9, TotalReviews: 10}
		nodes := Nodes{}
		nodes.Add(parent, child)

		route := BuildRoute(child, SideA, nodes)
		assert.Equal(t, []int64{3, 2}, route.Path)
		assert.True(t, route.Qualified)
	})

	t.Run("nil lookup", func(t *testing.T) {
		child := Mutt{TokenID: 3, ParentA: 2}
		route := BuildRoute(child, SideA, nil)
		assert.Equal(t, []int64{3}, route.Path)
	})
}

func TestBuildRoute_GrandparentFromEitherSide(t *testing.T) {
	weak := Mutt{TokenID: 1, AvgRating: 1.0, TotalReviews: 10}
	strong := Mutt{TokenID: 2, AvgRating: 5.0, TotalReviews: 10}
	parent := Mutt{TokenID: 3, ParentA: 1, ParentB: 2, AvgRating: 4.8, TotalReviews: 5}
	child := Mutt{TokenID: 4, ParentB: 3, AvgRating: 4.8, TotalReviews: 5}
	nodes := Nodes{}
	nodes.Add(weak, strong, parent, child)

	route := BuildRoute(child, SideB, nodes)
	assert.Equal(t, []int64{4, 3, 2}, route.Path)
	assert.True(t, route.Qualified)
}

func TestBuildRoute_QualifiedBeatsHigherUnqualified(t *testing.T) {
	// Higher mean but too few reviews against a qualifying, lower mean.
	thin := Mutt{TokenID: 1, AvgRating: 5.0, TotalReviews: 0}
	solid := Mutt{TokenID: 2, AvgRating: 4.7, TotalReviews: 10}
	parent := Mutt{TokenID: 3, ParentA: 1, ParentB: 2, AvgRating: 4.8, TotalReviews: 0}
	child := Mutt{TokenID: 4, ParentA: 3, AvgRating: 4.8, TotalReviews: 0}
	nodes := Nodes{}
	nodes.Add(thin, solid, parent, child)

	route := BuildRoute(child, SideA, nodes)
	assert.Equal(t, []int64{4, 3, 2}, route.Path)
	assert.True(t, route.Qualified)
}

func TestBuildRoute_UsesLookupFunc(t *testing.T) {
	calls := 0
	lookup := LookupFunc(func(id int64) (Mutt, bool) {
		calls++
		if id == 2 {
			return Mutt{TokenID: 2, AvgRating: 5, TotalReviews: 10}, true
		}
		return Mutt{}, false
	})

	route := BuildRoute(Mutt{TokenID: 1, ParentA: 2, AvgRating: 5}, SideA, lookup)
	assert.Equal(t, []int64{1, 2}, route.Path)
	assert.Equal(t, 1, calls)
}
