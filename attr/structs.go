package attr

//*******************************************
// graph attributes
//*******************************************

type EdgeAttribs struct {
	Type     RoadType
	Length   float64
	Maxspeed byte
	Oneway   bool
}

type NodeAttribs struct {
	Type int8
}
