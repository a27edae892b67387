package parser

import (
	"github.com/ttpr0/go-adjacency/attr"
	"github.com/ttpr0/go-adjacency/geo"
	. "github.com/ttpr0/go-adjacency/util"
)

//*******************************************
// parser structs
//*******************************************

type TempNode struct {
	Point geo.Coord
	Count int32
}
type OSMNode struct {
	Point geo.Coord
	Attr  attr.NodeAttribs
}
type OSMEdge struct {
	NodeA int
	NodeB int
	Attr  attr.EdgeAttribs
	Nodes List[geo.Coord]
}
