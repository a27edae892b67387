package algorithm

import (
	"github.com/ttpr0/go-adjacency/graph"
	. "github.com/ttpr0/go-adjacency/util"
)

// Computes weakly connected components, edges are traversed in both directions.
//
// Returns the component id of every node.
func ConnectedComponents(g graph.IGraph) Array[int32] {
	groups := NewArray[int32](g.NodeCount())
	for i := range groups {
		groups[i] = -1
	}
	explorer := g.GetGraphExplorer()
	stack := NewList[int32](100)
	group := int32(0)
	for i := 0; i < g.NodeCount(); i++ {
		if groups[i] != -1 {
			continue
		}
		groups[i] = group
		stack.Add(int32(i))
		for {
			curr, ok := stack.Pop()
			if !ok {
				break
			}
			visit := func(ref graph.EdgeRef) {
				if groups[ref.OtherID] != -1 {
					return
				}
				groups[ref.OtherID] = group
				stack.Add(ref.OtherID)
			}
			explorer.ForAdjacentEdges(curr, graph.FORWARD, graph.ADJACENT_EDGES, visit)
			explorer.ForAdjacentEdges(curr, graph.BACKWARD, graph.ADJACENT_EDGES, visit)
		}
		group += 1
	}
	return groups
}

// Returns the nodes not part of the largest connected component.
func GetDisconnectedNodes(g graph.IGraph) List[int32] {
	groups := ConnectedComponents(g)
	counts := NewArray[int](0)
	for _, group := range groups {
		for int(group) >= counts.Length() {
			counts = append(counts, 0)
		}
		counts[group] += 1
	}
	max_group := int32(0)
	for i, c := range counts {
		if c > counts[max_group] {
			max_group = int32(i)
		}
	}
	remove := NewList[int32](100)
	for i := 0; i < g.NodeCount(); i++ {
		if groups[i] != max_group {
			remove.Add(int32(i))
		}
	}
	return remove
}
