package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

//*******************************************
// coordinates
//*******************************************

// Planar coordinate (x, y) in the unit of the network projection.
type Coord [2]float64

func (self Coord) Point() orb.Point {
	return orb.Point(self)
}

type CoordArray []Coord

func (self CoordArray) LineString() orb.LineString {
	line := make(orb.LineString, len(self))
	for i, c := range self {
		line[i] = orb.Point(c)
	}
	return line
}

// Planar length of the polyline.
func (self CoordArray) Length() float64 {
	return planar.Length(self.LineString())
}

func Distance(a, b Coord) float64 {
	return planar.Distance(orb.Point(a), orb.Point(b))
}

// Projects point onto the segment a-b.
//
// Returns the closest point, its fraction along the segment and the distance to it.
func ProjectOnSegment(a, b, point Coord) (Coord, float64, float64) {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return a, 0, Distance(a, point)
	}
	t := ((point[0]-a[0])*dx + (point[1]-a[1])*dy) / l2
	t = math.Max(0, math.Min(1, t))
	c := Coord{a[0] + t*dx, a[1] + t*dy}
	return c, t, planar.DistanceFromSegment(orb.Point(a), orb.Point(b), orb.Point(point))
}
