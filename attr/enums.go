package attr

import (
	"encoding/json"
	"errors"
)

//*******************************************
// road types
//*******************************************

// Osm highway class of an edge, 0 marks an unknown class.
type RoadType int8

const (
	MOTORWAY       RoadType = 1
	MOTORWAY_LINK  RoadType = 2
	TRUNK          RoadType = 3
	TRUNK_LINK     RoadType = 4
	PRIMARY        RoadType = 5
	PRIMARY_LINK   RoadType = 6
	SECONDARY      RoadType = 7
	SECONDARY_LINK RoadType = 8
	TERTIARY       RoadType = 9
	TERTIARY_LINK  RoadType = 10
	RESIDENTIAL    RoadType = 11
	LIVING_STREET  RoadType = 12
	UNCLASSIFIED   RoadType = 13
	ROAD           RoadType = 14
	TRACK          RoadType = 15
	SERVICE        RoadType = 16
	FOOTWAY        RoadType = 17
	PATH           RoadType = 18
	PEDESTRIAN     RoadType = 19
	STEPS          RoadType = 20
	CYCLEWAY       RoadType = 21
)

// osm tag values indexed by road type
var road_type_names = [...]string{
	"", "motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link",
	"secondary", "secondary_link", "tertiary", "tertiary_link", "residential", "living_street",
	"unclassified", "road", "track", "service", "footway", "path", "pedestrian", "steps", "cycleway",
}

var road_types = func() map[string]RoadType {
	types := make(map[string]RoadType, len(road_type_names))
	for i, name := range road_type_names {
		if name != "" {
			types[name] = RoadType(i)
		}
	}
	return types
}()

func (self RoadType) String() string {
	if self < 0 || int(self) >= len(road_type_names) {
		return ""
	}
	return road_type_names[self]
}

// Returns 0 for unknown highway values.
func RoadTypeFromString(typ string) RoadType {
	return road_types[typ]
}

// Road types open to motorized traffic.
func (self RoadType) IsDrivable() bool {
	return self >= MOTORWAY && self <= SERVICE
}

// Road types a pedestrian can use without restrictions.
func (self RoadType) IsWalkable() bool {
	return self > TRUNK_LINK && self <= CYCLEWAY
}

func (self RoadType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *RoadType) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	road_typ := RoadTypeFromString(typ)
	if road_typ == 0 {
		return errors.New("invalid road type")
	}
	*self = road_typ
	return nil
}
