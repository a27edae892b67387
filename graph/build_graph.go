package graph

import (
	"github.com/ttpr0/go-adjacency/attr"
	"github.com/ttpr0/go-adjacency/comps"
	. "github.com/ttpr0/go-adjacency/util"
)

//*******************************************
// build graphs
//*******************************************

// Builds a graph using the named cost attribute as default weighting.
func BuildGraph(base comps.IGraphBase, costs *comps.CostAttributes, default_cost string, att Optional[attr.IAttributes]) (*Graph, error) {
	weight, err := costs.GetWeighting(default_cost)
	if err != nil {
		return nil, err
	}
	g := &Graph{
		base:    base,
		costs:   costs,
		weight:  weight,
		att:     att,
		reverse: NewArray[int32](base.EdgeCount()),
	}
	g.reverse = _BuildReverseEdges(g)
	return g, nil
}

// Builds a graph with unit edge weights, only topology is used.
func BuildTopologyGraph(base comps.IGraphBase) *Graph {
	g := &Graph{
		base:    base,
		costs:   comps.NewCostAttributes(base.EdgeCount()),
		weight:  comps.NewEqualWeighting(),
		att:     None[attr.IAttributes](),
		reverse: NewArray[int32](base.EdgeCount()),
	}
	g.reverse = _BuildReverseEdges(g)
	return g
}

//*******************************************
// build graph components
//*******************************************

// Pairs every edge (a->b) with an edge (b->a) sharing the reversed geometry.
//
// Parallel edges are paired at most once.
func _BuildReverseEdges(g *Graph) Array[int32] {
	reverse := NewArray[int32](g.EdgeCount())
	for i := range reverse {
		reverse[i] = -1
	}
	explorer := g.GetGraphExplorer()
	for i := 0; i < g.EdgeCount(); i++ {
		if reverse[i] != -1 {
			continue
		}
		edge := g.GetEdge(int32(i))
		geom := g.GetEdgeGeom(int32(i))
		explorer.ForAdjacentEdges(edge.NodeB, FORWARD, ADJACENT_EDGES, func(ref EdgeRef) {
			if reverse[i] != -1 || ref.OtherID != edge.NodeA || ref.EdgeID == int32(i) {
				return
			}
			if reverse[ref.EdgeID] != -1 {
				return
			}
			other := g.GetEdgeGeom(ref.EdgeID)
			if len(other) != len(geom) || other[0] != geom[len(geom)-1] || other[len(other)-1] != geom[0] {
				return
			}
			reverse[i] = ref.EdgeID
			reverse[ref.EdgeID] = int32(i)
		})
	}
	return reverse
}
