package parser

import (
	"fmt"

	"github.com/ttpr0/go-adjacency/attr"
	. "github.com/ttpr0/go-adjacency/util"
)

//*******************************************
// osm decoder
//*******************************************

// Decides which osm ways form the network and derives their attributes.
type IOSMDecoder interface {
	IsValidHighway(tags Dict[string, string]) bool
	DecodeNode(tags Dict[string, string]) attr.NodeAttribs
	DecodeEdge(tags Dict[string, string]) attr.EdgeAttribs
}

// Returns the decoder of a travel mode ("driving" or "walking").
func GetDecoder(mode string) (IOSMDecoder, error) {
	switch mode {
	case "driving":
		return &DrivingDecoder{}, nil
	case "walking":
		return &WalkingDecoder{}, nil
	default:
		return nil, fmt.Errorf("unknown travel mode %q", mode)
	}
}

//*******************************************
// driving
//*******************************************

type DrivingDecoder struct{}

func (self *DrivingDecoder) IsValidHighway(tags Dict[string, string]) bool {
	highway, ok := tags["highway"]
	if !ok {
		return false
	}
	return attr.RoadTypeFromString(highway).IsDrivable()
}
func (self *DrivingDecoder) DecodeNode(tags Dict[string, string]) attr.NodeAttribs {
	return attr.NodeAttribs{Type: 0}
}
func (self *DrivingDecoder) DecodeEdge(tags Dict[string, string]) attr.EdgeAttribs {
	typ := attr.RoadTypeFromString(tags.Get("highway"))
	speed := _GetTravelSpeed(typ, tags.Get("maxspeed"), tags.Get("tracktype"), tags.Get("surface"))
	return attr.EdgeAttribs{
		Type:     typ,
		Maxspeed: byte(speed),
		Oneway:   _IsOneway(tags.Get("oneway"), typ),
	}
}

//*******************************************
// walking
//*******************************************

// Walking speed in km/h.
const WALKING_SPEED = 5

type WalkingDecoder struct{}

func (self *WalkingDecoder) IsValidHighway(tags Dict[string, string]) bool {
	highway, ok := tags["highway"]
	if !ok {
		return false
	}
	if tags.Get("foot") == "no" || tags.Get("access") == "private" {
		return false
	}
	return attr.RoadTypeFromString(highway).IsWalkable()
}
func (self *WalkingDecoder) DecodeNode(tags Dict[string, string]) attr.NodeAttribs {
	return attr.NodeAttribs{Type: 0}
}

// Pedestrians may walk every way in both directions.
func (self *WalkingDecoder) DecodeEdge(tags Dict[string, string]) attr.EdgeAttribs {
	return attr.EdgeAttribs{
		Type:     attr.RoadTypeFromString(tags.Get("highway")),
		Maxspeed: WALKING_SPEED,
		Oneway:   false,
	}
}
