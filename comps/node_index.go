package comps

import (
	"github.com/ttpr0/go-adjacency/geo"
	. "github.com/ttpr0/go-adjacency/util"
)

//*******************************************
// node index
//*******************************************

type INodeIndex interface {
	// Returns the node closest to point, false if none lies within max_dist.
	GetClosestNode(point geo.Coord, max_dist float64) (int32, bool)
}

// KD-tree over the junction coordinates.
type NodeIndex struct {
	tree KDTree[int32]
}

func NewNodeIndex(base IGraphBase) *NodeIndex {
	tree := NewKDTree[int32](2)
	for i := int32(0); i < int32(base.NodeCount()); i++ {
		loc := base.GetNode(i).Loc
		tree.Insert(loc[:], i)
	}
	return &NodeIndex{tree: tree}
}

func (self *NodeIndex) GetClosestNode(point geo.Coord, max_dist float64) (int32, bool) {
	return self.tree.GetClosest(point[:], max_dist)
}
