package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-adjacency/attr"
	"github.com/ttpr0/go-adjacency/geo"
	. "github.com/ttpr0/go-adjacency/util"
)

func TestDrivingDecoder(t *testing.T) {
	decoder := &DrivingDecoder{}
	assert.True(t, decoder.IsValidHighway(Dict[string, string]{"highway": "residential"}))
	assert.False(t, decoder.IsValidHighway(Dict[string, string]{"highway": "footway"}))
	assert.False(t, decoder.IsValidHighway(Dict[string, string]{"name": "Hauptstrasse"}))

	e := decoder.DecodeEdge(Dict[string, string]{"highway": "motorway"})
	assert.Equal(t, attr.MOTORWAY, e.Type)
	assert.True(t, e.Oneway)
	e = decoder.DecodeEdge(Dict[string, string]{"highway": "residential", "maxspeed": "30"})
	assert.False(t, e.Oneway)
	// tagged speeds are reduced to 90 percent
	assert.Equal(t, byte(27), e.Maxspeed)
}

func TestWalkingDecoder(t *testing.T) {
	decoder := &WalkingDecoder{}
	assert.True(t, decoder.IsValidHighway(Dict[string, string]{"highway": "footway"}))
	assert.False(t, decoder.IsValidHighway(Dict[string, string]{"highway": "footway", "foot": "no"}))

	e := decoder.DecodeEdge(Dict[string, string]{"highway": "residential", "oneway": "yes"})
	assert.False(t, e.Oneway)
	assert.Equal(t, byte(WALKING_SPEED), e.Maxspeed)
}

func TestGetDecoder(t *testing.T) {
	_, err := GetDecoder("walking")
	assert.NoError(t, err)
	_, err = GetDecoder("flying")
	assert.Error(t, err)
}

func TestCreateNetwork(t *testing.T) {
	nodes := List[OSMNode]{
		{Point: geo.Coord{8.0, 49.0}},
		{Point: geo.Coord{8.001, 49.0}},
		{Point: geo.Coord{8.002, 49.0}},
	}
	edges := List[OSMEdge]{
		{NodeA: 0, NodeB: 1, Attr: attr.EdgeAttribs{Maxspeed: 36}, Nodes: List[geo.Coord]{{8.0, 49.0}, {8.001, 49.0}}},
		{NodeA: 1, NodeB: 2, Attr: attr.EdgeAttribs{Maxspeed: 36, Oneway: true}, Nodes: List[geo.Coord]{{8.001, 49.0}, {8.002, 49.0}}},
	}
	network, err := _CreateNetwork(&nodes, &edges, &geo.NullProjection{})
	require.NoError(t, err)

	assert.Equal(t, 3, network.Base.NodeCount())
	assert.Equal(t, 3, network.Base.EdgeCount())
	assert.Len(t, network.Sources, 2)

	// reverse twin carries the reversed geometry
	fwd := network.Attributes.GetEdgeGeom(0)
	bwd := network.Attributes.GetEdgeGeom(1)
	assert.Equal(t, fwd[0], bwd[1])
	assert.Equal(t, fwd[1], bwd[0])

	length, err := network.Costs.GetWeighting("length")
	require.NoError(t, err)
	assert.InDelta(t, 73, length.GetEdgeWeight(0), 1)
	time, err := network.Costs.GetWeighting("time")
	require.NoError(t, err)
	// 36 km/h equals 10 m/s
	assert.InDelta(t, length.GetEdgeWeight(2)/10, time.GetEdgeWeight(2), 1e-9)
}

func TestTravelSpeed(t *testing.T) {
	assert.Equal(t, int32(100), _GetTravelSpeed(attr.MOTORWAY, "", "", ""))
	assert.Equal(t, int32(99), _GetTravelSpeed(attr.MOTORWAY, "none", "", ""))
	assert.Equal(t, int32(30), _GetTravelSpeed(attr.TRACK, "", "grade2", ""))
	assert.Equal(t, int32(15), _GetTravelSpeed(attr.TRACK, "", "", ""))
	// surfaces only cap the speed
	assert.Equal(t, int32(10), _GetTravelSpeed(attr.PRIMARY, "", "", "mud"))
	assert.Equal(t, int32(30), _GetTravelSpeed(attr.RESIDENTIAL, "", "", "asphalt"))
	assert.Equal(t, int32(18), _GetTravelSpeed(attr.RESIDENTIAL, "fast", "", ""))
	assert.Equal(t, int32(20), _GetTravelSpeed(attr.SERVICE, "", "", ""))
}

func TestRoadTypes(t *testing.T) {
	assert.Equal(t, attr.CYCLEWAY, attr.RoadTypeFromString("cycleway"))
	assert.Equal(t, "living_street", attr.LIVING_STREET.String())
	assert.Equal(t, attr.RoadType(0), attr.RoadTypeFromString("bridleway"))
	assert.True(t, attr.SERVICE.IsDrivable())
	assert.False(t, attr.FOOTWAY.IsDrivable())
	assert.True(t, attr.FOOTWAY.IsWalkable())
	assert.False(t, attr.TRUNK_LINK.IsWalkable())
	assert.False(t, attr.RoadType(0).IsWalkable())
}
