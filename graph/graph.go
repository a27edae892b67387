package graph

import (
	"sync"

	"github.com/ttpr0/go-adjacency/attr"
	"github.com/ttpr0/go-adjacency/comps"
	"github.com/ttpr0/go-adjacency/geo"
	"github.com/ttpr0/go-adjacency/structs"
	. "github.com/ttpr0/go-adjacency/util"
)

//*******************************************
// graph interfaces
//******************************************

type IGraph interface {
	GetGraphExplorer() IGraphExplorer
	NodeCount() int
	EdgeCount() int
	IsNode(node int32) bool
	GetNode(node int32) structs.Node
	GetEdge(edge int32) structs.Edge
	GetNodeGeom(node int32) geo.Coord
	GetEdgeGeom(edge int32) geo.CoordArray
	GetClosestNode(point geo.Coord, max_dist float64) (int32, bool)

	// Returns the edge running between the same nodes in opposite direction.
	GetReverseEdge(edge int32) (int32, bool)

	// Returns the weighting of a named cost attribute.
	GetWeighting(attribute string) (comps.IWeighting, error)
}

// not thread safe, use only one instance per thread
type IGraphExplorer interface {
	// Iterates through the adjacency of a node calling the callback for every edge.
	//
	// direction tells the traversel direction (FORWARD meand outgoing edges, BACKWARD ingoing edges)
	//
	// typ is basically a hint to tell which edges/sub-graph will be traversed
	ForAdjacentEdges(node int32, dir Direction, typ Adjacency, callback func(EdgeRef))
	GetEdgeWeight(edge EdgeRef) float64
}

//*******************************************
// base-graph
//******************************************

type Graph struct {
	base    comps.IGraphBase
	costs   *comps.CostAttributes
	weight  comps.IWeighting
	att     Optional[attr.IAttributes]
	reverse Array[int32]

	index      comps.INodeIndex
	index_once sync.Once
}

func (self *Graph) GetGraphExplorer() IGraphExplorer {
	return &BaseGraphExplorer{
		graph:    self,
		accessor: self.base.GetAccessor(),
		weight:   self.weight,
	}
}
func (self *Graph) NodeCount() int {
	return self.base.NodeCount()
}
func (self *Graph) EdgeCount() int {
	return self.base.EdgeCount()
}
func (self *Graph) IsNode(node int32) bool {
	return self.base.IsNode(node)
}
func (self *Graph) GetNode(node int32) structs.Node {
	return self.base.GetNode(node)
}
func (self *Graph) GetEdge(edge int32) structs.Edge {
	return self.base.GetEdge(edge)
}
func (self *Graph) GetNodeGeom(node int32) geo.Coord {
	return self.base.GetNode(node).Loc
}
func (self *Graph) GetEdgeGeom(edge int32) geo.CoordArray {
	if self.att.HasValue() {
		geom := self.att.Value.GetEdgeGeom(edge)
		if len(geom) >= 2 {
			return geom
		}
	}
	e := self.base.GetEdge(edge)
	return geo.CoordArray{self.GetNodeGeom(e.NodeA), self.GetNodeGeom(e.NodeB)}
}

// The node index is built on first use.
func (self *Graph) GetClosestNode(point geo.Coord, max_dist float64) (int32, bool) {
	self.index_once.Do(func() {
		self.index = comps.NewNodeIndex(self.base)
	})
	return self.index.GetClosestNode(point, max_dist)
}
func (self *Graph) GetReverseEdge(edge int32) (int32, bool) {
	rev := self.reverse[edge]
	return rev, rev != -1
}
func (self *Graph) GetWeighting(attribute string) (comps.IWeighting, error) {
	return self.costs.GetWeighting(attribute)
}

//*******************************************
// base-graph explorer
//******************************************

type BaseGraphExplorer struct {
	graph    *Graph
	accessor structs.IAdjAccessor
	weight   comps.IWeighting
}

func (self *BaseGraphExplorer) ForAdjacentEdges(node int32, direction Direction, typ Adjacency, callback func(EdgeRef)) {
	if typ == ADJACENT_ALL || typ == ADJACENT_EDGES {
		self.accessor.SetBaseNode(node, direction == FORWARD)
		for self.accessor.Next() {
			edge_id := self.accessor.GetEdgeID()
			other_id := self.accessor.GetOtherID()
			callback(EdgeRef{
				EdgeID:  edge_id,
				OtherID: other_id,
			})
		}
	} else {
		panic("Adjacency-type not implemented for this graph.")
	}
}
func (self *BaseGraphExplorer) GetEdgeWeight(edge EdgeRef) float64 {
	return self.weight.GetEdgeWeight(edge.EdgeID)
}
