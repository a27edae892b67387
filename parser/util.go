package parser

import (
	"strconv"

	"github.com/ttpr0/go-adjacency/attr"
	. "github.com/ttpr0/go-adjacency/util"
)

//*******************************************
// speed tables (km/h)
//*******************************************

var default_speeds = Dict[attr.RoadType, int32]{
	attr.MOTORWAY:       100,
	attr.TRUNK:          85,
	attr.MOTORWAY_LINK:  60,
	attr.TRUNK_LINK:     60,
	attr.PRIMARY:        65,
	attr.SECONDARY:      60,
	attr.TERTIARY:       50,
	attr.PRIMARY_LINK:   50,
	attr.SECONDARY_LINK: 50,
	attr.TERTIARY_LINK:  40,
	attr.UNCLASSIFIED:   30,
	attr.RESIDENTIAL:    30,
	attr.LIVING_STREET:  10,
	attr.ROAD:           20,
}

var track_speeds = Dict[string, int32]{
	"grade1": 40,
	"grade2": 30,
	"grade3": 20,
	"grade4": 15,
	"grade5": 10,
}

// upper speed limit per surface
var surface_limits = Dict[string, int32]{
	"cement": 80, "compacted": 80,
	"fine_gravel":   60,
	"paving_stones": 40, "metal": 40, "bricks": 40,
	"grass": 30, "wood": 30, "sett": 30, "grass_paver": 30, "gravel": 30, "unpaved": 30,
	"ground": 30, "dirt": 30, "pebblestone": 30, "tartan": 30,
	"cobblestone": 20, "clay": 20,
	"earth": 15, "stone": 15, "rocky": 15, "sand": 15,
	"mud": 10,
}

const (
	FALLBACK_SPEED = 20
	MIN_SPEED      = 10
)

//*******************************************
// utility methods
//*******************************************

// Motorways and trunks are always oneway.
func _IsOneway(oneway string, typ attr.RoadType) bool {
	switch typ {
	case attr.MOTORWAY, attr.TRUNK, attr.MOTORWAY_LINK, attr.TRUNK_LINK:
		return true
	}
	return oneway == "yes"
}

// Tagged maxspeeds count with 90 percent, untagged ways get the default of their road type.
func _GetTravelSpeed(typ attr.RoadType, maxspeed string, tracktype string, surface string) int32 {
	var speed int32
	switch {
	case maxspeed == "walk":
		speed = _Reduce(10)
	case maxspeed == "none":
		speed = _Reduce(110)
	case maxspeed != "":
		value, err := strconv.Atoi(maxspeed)
		if err != nil {
			value = FALLBACK_SPEED
		}
		speed = _Reduce(int32(value))
	case typ == attr.TRACK:
		speed = 15
		if s, ok := track_speeds[tracktype]; ok {
			speed = s
		}
	default:
		speed = FALLBACK_SPEED
		if s, ok := default_speeds[typ]; ok {
			speed = s
		}
	}

	if limit, ok := surface_limits[surface]; ok && speed > limit {
		speed = limit
	}
	if speed == 0 {
		speed = MIN_SPEED
	}
	return speed
}

func _Reduce(speed int32) int32 {
	return int32(0.9 * float32(speed))
}
