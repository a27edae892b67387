package geo

import (
	"errors"
	"math"

	orbgeo "github.com/paulmach/orb/geo"
	"gopkg.in/yaml.v3"
)

//*******************************************
// projections
//*******************************************

type IProjection interface {
	Proj(Coord) Coord
	ReProj(Coord) Coord
}

type WebMercatorProjection struct{}

func (self *WebMercatorProjection) Proj(point Coord) Coord {
	a := 6378137.0
	c := Coord{}
	c[0] = a * point[0] * math.Pi / 180
	c[1] = a * math.Log(math.Tan(math.Pi/4+point[1]*math.Pi/360))
	return c
}
func (self *WebMercatorProjection) ReProj(point Coord) Coord {
	a := 6378137.0
	c := Coord{}
	c[0] = point[0] * 180 / (a * math.Pi)
	c[1] = 360 * (math.Atan(math.Exp(point[1]/a)) - math.Pi/4) / math.Pi
	return c
}

type NullProjection struct{}

func (self *NullProjection) Proj(point Coord) Coord {
	return point
}
func (self *NullProjection) ReProj(point Coord) Coord {
	return point
}

// Geodesic length in meters of a lon/lat polyline.
func GeodesicLength(coords CoordArray) float64 {
	return orbgeo.Length(coords.LineString())
}

//*******************************************
// projection enum
//*******************************************

type ProjectionType byte

const (
	WEB_MERCATOR  ProjectionType = 0
	NO_PROJECTION ProjectionType = 1
)

func (self ProjectionType) String() string {
	switch self {
	case WEB_MERCATOR:
		return "web-mercator"
	case NO_PROJECTION:
		return "none"
	default:
		panic("unknown projection type")
	}
}
func (self ProjectionType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *ProjectionType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := ProjectionTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func ProjectionTypeFromString(s string) (ProjectionType, error) {
	switch s {
	case "web-mercator":
		return WEB_MERCATOR, nil
	case "none":
		return NO_PROJECTION, nil
	default:
		return WEB_MERCATOR, errors.New("unknown projection type")
	}
}

func GetProjection(typ ProjectionType) IProjection {
	switch typ {
	case NO_PROJECTION:
		return &NullProjection{}
	default:
		return &WebMercatorProjection{}
	}
}
