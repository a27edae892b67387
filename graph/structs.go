package graph

//*******************************************
// edgeref struct
//*******************************************

// Edge visited by a graph explorer, OtherID is the node reached through it.
type EdgeRef struct {
	EdgeID  int32
	OtherID int32
}
