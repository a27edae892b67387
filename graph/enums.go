package graph

//*******************************************
// enums
//*******************************************

type Direction byte

const (
	BACKWARD Direction = 0
	FORWARD  Direction = 1
)

// Kind of adjacency visited by a graph explorer.
type Adjacency byte

const (
	// only real network edges
	ADJACENT_EDGES Adjacency = 0
	ADJACENT_ALL   Adjacency = 1
)
