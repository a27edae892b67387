package locate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-adjacency/attr"
	"github.com/ttpr0/go-adjacency/comps"
	"github.com/ttpr0/go-adjacency/geo"
	"github.com/ttpr0/go-adjacency/graph"
	"github.com/ttpr0/go-adjacency/structs"
	. "github.com/ttpr0/go-adjacency/util"
)

// Two way street from (0,0) to (10,0) and a one way street from (10,0) to (10,10).
func _BuildTestGraph(t *testing.T) graph.IGraph {
	nodes := Array[structs.Node]{{Loc: geo.Coord{0, 0}}, {Loc: geo.Coord{10, 0}}, {Loc: geo.Coord{10, 10}}}
	edges := Array[structs.Edge]{{NodeA: 0, NodeB: 1}, {NodeA: 1, NodeB: 0}, {NodeA: 1, NodeB: 2}}
	base := comps.NewGraphBase(nodes, edges)
	costs := comps.NewCostAttributes(3)
	require.NoError(t, costs.AddAttribute("length", Array[float64]{10, 10, 10}))
	g, err := graph.BuildGraph(base, costs, "length", None[attr.IAttributes]())
	require.NoError(t, err)
	return g
}

func TestLocate(t *testing.T) {
	g := _BuildTestGraph(t)
	resolver := NewLocationResolver(g, 3)

	loc := resolver.Locate(geo.Coord{4, 1})
	require.True(t, loc.Valid)
	assert.Equal(t, int32(0), loc.EdgeID)
	assert.InDelta(t, 0.4, loc.Pos, 1e-9)
	assert.Equal(t, geo.Coord{4, 0}, loc.Snap)
	assert.InDelta(t, 1, loc.Offset, 1e-9)

	loc = resolver.Locate(geo.Coord{11, 7})
	require.True(t, loc.Valid)
	assert.Equal(t, int32(2), loc.EdgeID)
	assert.InDelta(t, 0.7, loc.Pos, 1e-9)

	loc = resolver.Locate(geo.Coord{5, 5})
	assert.False(t, loc.Valid)
}

func TestLocateAllKeepsValidLocations(t *testing.T) {
	g := _BuildTestGraph(t)
	resolver := NewLocationResolver(g, 3)

	points := []geo.Coord{{2, 0}, {5, 5}, {8, 0}}
	locations := make([]NetworkLocation, len(points))
	locations[2] = NetworkLocation{EdgeID: 1, Pos: 0.2, Snap: geo.Coord{8, 0}, Valid: true}

	count := resolver.LocateAll(points, locations)
	assert.Equal(t, 1, count)
	assert.Equal(t, int32(0), locations[0].EdgeID)
	assert.False(t, locations[1].Valid)
	assert.Equal(t, int32(1), locations[2].EdgeID)

	// repeated calls do not change anything
	count = resolver.LocateAll(points, locations)
	assert.Equal(t, 0, count)
	assert.Equal(t, int32(0), locations[0].EdgeID)
}

func TestProjectOnEdge(t *testing.T) {
	geom := geo.CoordArray{{0, 0}, {10, 0}, {10, 10}}
	snap, pos, dist := ProjectOnEdge(geom, geo.Coord{12, 5})
	assert.Equal(t, geo.Coord{10, 5}, snap)
	assert.InDelta(t, 0.75, pos, 1e-9)
	assert.InDelta(t, 2, dist, 1e-9)
}
