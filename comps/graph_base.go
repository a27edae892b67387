package comps

import (
	"fmt"

	"github.com/ttpr0/go-adjacency/structs"
	. "github.com/ttpr0/go-adjacency/util"
)

//*******************************************
// graph base interface
//*******************************************

type IGraphBase interface {
	NodeCount() int
	EdgeCount() int
	GetNode(node int32) structs.Node
	IsNode(node int32) bool
	GetEdge(edge int32) structs.Edge
	IsEdge(edge int32) bool
	GetAccessor() structs.IAdjAccessor
}

//*******************************************
// graph base
//*******************************************

var _ IGraphBase = &GraphBase{}

type GraphBase struct {
	nodes    Array[structs.Node]
	edges    Array[structs.Edge]
	topology structs.AdjacencyArray
}

func NewGraphBase(nodes Array[structs.Node], edges Array[structs.Edge]) *GraphBase {
	topology := _BuildTopology(nodes, edges)
	return &GraphBase{
		nodes:    nodes,
		edges:    edges,
		topology: topology,
	}
}

func (self *GraphBase) NodeCount() int {
	return len(self.nodes)
}
func (self *GraphBase) EdgeCount() int {
	return len(self.edges)
}
func (self *GraphBase) IsNode(node int32) bool {
	return node >= 0 && node < int32(len(self.nodes))
}
func (self *GraphBase) GetNode(node int32) structs.Node {
	return self.nodes[node]
}
func (self *GraphBase) IsEdge(edge int32) bool {
	return edge >= 0 && edge < int32(len(self.edges))
}
func (self *GraphBase) GetEdge(edge int32) structs.Edge {
	return self.edges[edge]
}
func (self *GraphBase) GetAccessor() structs.IAdjAccessor {
	accessor := self.topology.GetAccessor()
	return &accessor
}

//*******************************************
// modification methods
//*******************************************

// Removes nodes keeping the order of the remaining nodes intact.
//
// Edges adjacent to removed nodes are removed too, their old ids are returned.
func (self *GraphBase) RemoveNodes(nodes List[int32]) (*GraphBase, List[int32]) {
	remove := NewArray[bool](self.NodeCount())
	for _, n := range nodes {
		remove[n] = true
	}

	new_nodes := NewList[structs.Node](self.NodeCount())
	mapping := NewArray[int32](self.NodeCount())
	id := int32(0)
	for i := 0; i < self.NodeCount(); i++ {
		if remove[i] {
			mapping[i] = -1
			continue
		}
		new_nodes.Add(self.GetNode(int32(i)))
		mapping[i] = id
		id += 1
	}
	new_edges := NewList[structs.Edge](self.EdgeCount())
	removed_edges := NewList[int32](100)
	for i := 0; i < self.EdgeCount(); i++ {
		edge := self.GetEdge(int32(i))
		if remove[edge.NodeA] || remove[edge.NodeB] {
			removed_edges.Add(int32(i))
			continue
		}
		new_edges.Add(structs.Edge{
			NodeA: mapping[edge.NodeA],
			NodeB: mapping[edge.NodeB],
		})
	}

	return NewGraphBase(Array[structs.Node](new_nodes), Array[structs.Edge](new_edges)), removed_edges
}

//*******************************************
// load and store methods
//*******************************************

func (self *GraphBase) _Store(path string) error {
	writer := NewBufferWriter()
	Write(writer, int32(self.nodes.Length()))
	for _, node := range self.nodes {
		Write(writer, node.Loc)
	}
	Write(writer, int32(self.edges.Length()))
	for _, edge := range self.edges {
		Write(writer, edge.NodeA)
		Write(writer, edge.NodeB)
	}
	return WriteBufferToFile(writer, path+"-graph")
}

func LoadGraphBase(path string) (*GraphBase, error) {
	reader, err := ReadBufferFromFile(path + "-graph")
	if err != nil {
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}
	nodecount := int(Read[int32](reader))
	nodes := NewArray[structs.Node](nodecount)
	for i := 0; i < nodecount; i++ {
		nodes[i] = structs.Node{Loc: Read[[2]float64](reader)}
	}
	edgecount := int(Read[int32](reader))
	edges := NewArray[structs.Edge](edgecount)
	for i := 0; i < edgecount; i++ {
		a := Read[int32](reader)
		b := Read[int32](reader)
		if a < 0 || b < 0 || int(a) >= nodecount || int(b) >= nodecount {
			return nil, fmt.Errorf("failed to load graph: edge %d references unknown node", i)
		}
		edges[i] = structs.Edge{NodeA: a, NodeB: b}
	}
	return NewGraphBase(nodes, edges), nil
}

func _BuildTopology(nodes Array[structs.Node], edges Array[structs.Edge]) structs.AdjacencyArray {
	dyn := structs.NewAdjacencyList(nodes.Length())
	for id, edge := range edges {
		dyn.AddFWDEntry(edge.NodeA, edge.NodeB, int32(id))
		dyn.AddBWDEntry(edge.NodeA, edge.NodeB, int32(id))
	}
	return *structs.AdjacencyListToArray(&dyn)
}
