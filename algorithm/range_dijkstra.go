package algorithm

import (
	"math"

	"github.com/ttpr0/go-adjacency/comps"
	"github.com/ttpr0/go-adjacency/graph"
	. "github.com/ttpr0/go-adjacency/util"
)

type DistFlag struct {
	Dist     float64
	PrevEdge int32
}

func (self *DistFlag) GetDist() float64 {
	return self.Dist
}

// Flag value of unvisited nodes.
var UNVISITED = DistFlag{Dist: math.Inf(1), PrevEdge: -1}

type PQItem struct {
	item int32
	dist float64
}

// Computes shortest distances from the start nodes using the given weighting.
//
// starts holds (node, initial distance) tuples. Nodes farther than max_range keep an infinite
// distance. PrevEdge of every reached node is the last edge of its shortest path (-1 at starts).
func CalcRangeDijkstra(g graph.IGraph, weight comps.IWeighting, starts Array[Tuple[int32, float64]], node_flags *Flags[DistFlag], max_range float64) {
	heap := NewPriorityQueue[PQItem, float64](100)
	explorer := g.GetGraphExplorer()

	for _, item := range starts {
		start := item.A
		dist := item.B
		if dist > max_range {
			continue
		}
		start_flag := node_flags.Get(start)
		if start_flag.Dist <= dist {
			continue
		}
		start_flag.Dist = dist
		start_flag.PrevEdge = -1
		heap.Enqueue(PQItem{start, dist}, dist)
	}

	for {
		curr_item, ok := heap.Dequeue()
		if !ok {
			break
		}
		curr_id := curr_item.item
		curr_dist := curr_item.dist
		curr_flag := node_flags.Get(curr_id)
		if curr_flag.Dist < curr_dist {
			continue
		}
		explorer.ForAdjacentEdges(curr_id, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			other_flag := node_flags.Get(other_id)
			new_length := curr_flag.Dist + weight.GetEdgeWeight(ref.EdgeID)
			if new_length > max_range {
				return
			}
			if other_flag.Dist > new_length {
				other_flag.Dist = new_length
				other_flag.PrevEdge = ref.EdgeID
				heap.Enqueue(PQItem{other_id, new_length}, new_length)
			}
		})
	}
}

// Walks the shortest path tree back from node calling callback for every edge on the way.
//
// Returns the start node the path begins at.
func ForPathEdges(g graph.IGraph, node_flags *Flags[DistFlag], node int32, callback func(edge int32)) int32 {
	curr := node
	for {
		flag := node_flags.Peek(curr)
		if flag.PrevEdge == -1 {
			return curr
		}
		callback(flag.PrevEdge)
		curr = g.GetEdge(flag.PrevEdge).NodeA
	}
}
