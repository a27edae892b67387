package attr

import (
	"fmt"

	"github.com/ttpr0/go-adjacency/geo"
	. "github.com/ttpr0/go-adjacency/util"
)

type IAttributes interface {
	GetNodeAttribs(node int32) NodeAttribs
	GetEdgeAttribs(edge int32) EdgeAttribs
	GetNodeGeom(node int32) geo.Coord
	GetEdgeGeom(edge int32) geo.CoordArray
}

type GraphAttributes struct {
	node_attribs Array[NodeAttribs]
	edge_attribs Array[EdgeAttribs]
	node_geoms   Array[geo.Coord]
	edge_geoms   Array[geo.CoordArray]
}

func New(nodes Array[NodeAttribs], edges Array[EdgeAttribs], node_geoms Array[geo.Coord], edge_geoms Array[geo.CoordArray]) *GraphAttributes {
	return &GraphAttributes{
		node_attribs: nodes,
		edge_attribs: edges,
		node_geoms:   node_geoms,
		edge_geoms:   edge_geoms,
	}
}

func (self *GraphAttributes) NodeCount() int {
	return self.node_attribs.Length()
}
func (self *GraphAttributes) EdgeCount() int {
	return self.edge_attribs.Length()
}
func (self *GraphAttributes) GetNodeAttribs(node int32) NodeAttribs {
	return self.node_attribs[node]
}
func (self *GraphAttributes) GetEdgeAttribs(edge int32) EdgeAttribs {
	return self.edge_attribs[edge]
}
func (self *GraphAttributes) GetNodeGeom(node int32) geo.Coord {
	return self.node_geoms[node]
}
func (self *GraphAttributes) GetEdgeGeom(edge int32) geo.CoordArray {
	return self.edge_geoms[edge]
}

//*******************************************
// modification methods
//*******************************************

func (self *GraphAttributes) RemoveNodes(nodes List[int32]) {
	remove := NewArray[bool](len(self.node_attribs))
	for _, n := range nodes {
		remove[n] = true
	}

	new_nodes := NewList[NodeAttribs](100)
	new_node_geoms := NewList[geo.Coord](100)
	for i := 0; i < len(self.node_attribs); i++ {
		if remove[i] {
			continue
		}
		new_nodes.Add(self.node_attribs[i])
		new_node_geoms.Add(self.node_geoms[i])
	}

	self.node_attribs = Array[NodeAttribs](new_nodes)
	self.node_geoms = Array[geo.Coord](new_node_geoms)
}
func (self *GraphAttributes) RemoveEdges(edges List[int32]) {
	remove := NewArray[bool](len(self.edge_attribs))
	for _, n := range edges {
		remove[n] = true
	}

	new_edges := NewList[EdgeAttribs](100)
	new_edge_geoms := NewList[geo.CoordArray](100)
	for i := 0; i < len(self.edge_attribs); i++ {
		if remove[i] {
			continue
		}
		new_edges.Add(self.edge_attribs[i])
		new_edge_geoms.Add(self.GetEdgeGeom(int32(i)))
	}

	self.edge_attribs = Array[EdgeAttribs](new_edges)
	self.edge_geoms = Array[geo.CoordArray](new_edge_geoms)
}

//*******************************************
// load and store methods
//*******************************************

func Store(attr *GraphAttributes, path string) error {
	attrib_writer := NewBufferWriter()
	nodecount := attr.node_attribs.Length()
	edgecount := attr.edge_attribs.Length()
	Write[int32](attrib_writer, int32(nodecount))
	Write[int32](attrib_writer, int32(edgecount))
	for i := 0; i < nodecount; i++ {
		node := attr.node_attribs[i]
		Write[int8](attrib_writer, node.Type)
		Write(attrib_writer, attr.node_geoms[i])
	}
	for i := 0; i < edgecount; i++ {
		edge := attr.edge_attribs[i]
		Write(attrib_writer, byte(edge.Type))
		Write(attrib_writer, edge.Length)
		Write(attrib_writer, uint8(edge.Maxspeed))
		Write(attrib_writer, edge.Oneway)
		geom := attr.edge_geoms[i]
		Write(attrib_writer, int32(len(geom)))
		for _, c := range geom {
			Write(attrib_writer, c)
		}
	}
	return WriteBufferToFile(attrib_writer, path+"-attrib")
}

func Load(path string) (*GraphAttributes, error) {
	attr_reader, err := ReadBufferFromFile(path + "-attrib")
	if err != nil {
		return nil, fmt.Errorf("failed to load attributes: %w", err)
	}

	nodecount := int(Read[int32](attr_reader))
	edgecount := int(Read[int32](attr_reader))

	nodes := NewArray[NodeAttribs](nodecount)
	node_geoms := NewArray[geo.Coord](nodecount)
	edges := NewArray[EdgeAttribs](edgecount)
	edge_geoms := NewArray[geo.CoordArray](edgecount)
	for i := 0; i < nodecount; i++ {
		typ := Read[int8](attr_reader)
		nodes[i] = NodeAttribs{Type: typ}
		node_geoms[i] = Read[geo.Coord](attr_reader)
	}
	for i := 0; i < edgecount; i++ {
		typ := Read[byte](attr_reader)
		length := Read[float64](attr_reader)
		maxspeed := Read[uint8](attr_reader)
		oneway := Read[bool](attr_reader)
		edges[i] = EdgeAttribs{
			Type:     RoadType(typ),
			Length:   length,
			Maxspeed: maxspeed,
			Oneway:   oneway,
		}
		nc := int(Read[int32](attr_reader))
		geom := make(geo.CoordArray, nc)
		for j := 0; j < nc; j++ {
			geom[j] = Read[geo.Coord](attr_reader)
		}
		edge_geoms[i] = geom
	}

	return &GraphAttributes{
		node_attribs: nodes,
		edge_attribs: edges,
		node_geoms:   node_geoms,
		edge_geoms:   edge_geoms,
	}, nil
}
