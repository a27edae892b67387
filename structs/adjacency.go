package structs

import (
	. "github.com/ttpr0/go-adjacency/util"
)

//*******************************************
// adjacency list (dynamic)
//*******************************************

type _AdjEntry struct {
	EdgeID  int32
	OtherID int32
}

type AdjacencyList struct {
	fwd Array[List[_AdjEntry]]
	bwd Array[List[_AdjEntry]]
}

func NewAdjacencyList(node_count int) AdjacencyList {
	return AdjacencyList{
		fwd: NewArray[List[_AdjEntry]](node_count),
		bwd: NewArray[List[_AdjEntry]](node_count),
	}
}

// Adds edge (node_a -> node_b) to the outgoing edges of node_a.
func (self *AdjacencyList) AddFWDEntry(node_a, node_b, edge_id int32) {
	self.fwd[node_a].Add(_AdjEntry{EdgeID: edge_id, OtherID: node_b})
}

// Adds edge (node_a -> node_b) to the ingoing edges of node_b.
func (self *AdjacencyList) AddBWDEntry(node_a, node_b, edge_id int32) {
	self.bwd[node_b].Add(_AdjEntry{EdgeID: edge_id, OtherID: node_a})
}

//*******************************************
// adjacency array (static)
//*******************************************

type _NodeRef struct {
	FWDStart int32
	FWDCount int16
	BWDStart int32
	BWDCount int16
}

type AdjacencyArray struct {
	node_refs Array[_NodeRef]
	fwd_refs  Array[_AdjEntry]
	bwd_refs  Array[_AdjEntry]
}

func AdjacencyListToArray(dyn *AdjacencyList) *AdjacencyArray {
	node_refs := NewArray[_NodeRef](dyn.fwd.Length())
	fwd_refs := NewList[_AdjEntry](dyn.fwd.Length() * 2)
	bwd_refs := NewList[_AdjEntry](dyn.bwd.Length() * 2)
	for i := 0; i < dyn.fwd.Length(); i++ {
		fwd := dyn.fwd[i]
		bwd := dyn.bwd[i]
		node_refs[i] = _NodeRef{
			FWDStart: int32(fwd_refs.Length()),
			FWDCount: int16(fwd.Length()),
			BWDStart: int32(bwd_refs.Length()),
			BWDCount: int16(bwd.Length()),
		}
		for _, entry := range fwd {
			fwd_refs.Add(entry)
		}
		for _, entry := range bwd {
			bwd_refs.Add(entry)
		}
	}
	return &AdjacencyArray{
		node_refs: node_refs,
		fwd_refs:  Array[_AdjEntry](fwd_refs),
		bwd_refs:  Array[_AdjEntry](bwd_refs),
	}
}

func (self *AdjacencyArray) GetAccessor() AdjArrayAccessor {
	return AdjArrayAccessor{topology: self}
}

//*******************************************
// accessor
//*******************************************

type IAdjAccessor interface {
	SetBaseNode(node int32, forward bool)
	Next() bool
	GetEdgeID() int32
	GetOtherID() int32
}

// Iterates the adjacency of a node, not thread safe.
type AdjArrayAccessor struct {
	topology *AdjacencyArray
	refs     Array[_AdjEntry]
	offset   int32
	end      int32
	curr     _AdjEntry
}

func (self *AdjArrayAccessor) SetBaseNode(node int32, forward bool) {
	ref := self.topology.node_refs[node]
	if forward {
		self.refs = self.topology.fwd_refs
		self.offset = ref.FWDStart
		self.end = ref.FWDStart + int32(ref.FWDCount)
	} else {
		self.refs = self.topology.bwd_refs
		self.offset = ref.BWDStart
		self.end = ref.BWDStart + int32(ref.BWDCount)
	}
}
func (self *AdjArrayAccessor) Next() bool {
	if self.offset >= self.end {
		return false
	}
	self.curr = self.refs[self.offset]
	self.offset += 1
	return true
}
func (self *AdjArrayAccessor) GetEdgeID() int32 {
	return self.curr.EdgeID
}
func (self *AdjArrayAccessor) GetOtherID() int32 {
	return self.curr.OtherID
}
