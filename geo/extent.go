package geo

import (
	"math"

	"github.com/paulmach/orb"
)

//*******************************************
// extent
//*******************************************

// Axis aligned rectangle.
type Extent struct {
	bound orb.Bound
	empty bool
}

func NewExtent(min, max Coord) Extent {
	return Extent{bound: orb.Bound{Min: orb.Point(min), Max: orb.Point(max)}}
}

func EmptyExtent() Extent {
	return Extent{empty: true}
}

// Extent covering all coords.
func ExtentOf(coords []Coord) Extent {
	ext := EmptyExtent()
	for _, c := range coords {
		ext = ext.Extend(c)
	}
	return ext
}

func (self Extent) IsEmpty() bool {
	return self.empty
}
func (self Extent) Min() Coord {
	return Coord(self.bound.Min)
}
func (self Extent) Max() Coord {
	return Coord(self.bound.Max)
}
func (self Extent) Width() float64 {
	if self.empty {
		return 0
	}
	return self.bound.Max[0] - self.bound.Min[0]
}
func (self Extent) Height() float64 {
	if self.empty {
		return 0
	}
	return self.bound.Max[1] - self.bound.Min[1]
}

func (self Extent) Extend(c Coord) Extent {
	if self.empty {
		return Extent{bound: orb.Bound{Min: orb.Point(c), Max: orb.Point(c)}}
	}
	return Extent{bound: self.bound.Extend(orb.Point(c))}
}

// Grows the extent by d on every side.
func (self Extent) Buffer(d float64) Extent {
	if self.empty {
		return self
	}
	return Extent{bound: self.bound.Pad(d)}
}

func (self Extent) Contains(c Coord) bool {
	if self.empty {
		return false
	}
	return self.bound.Contains(orb.Point(c))
}

func (self Extent) Intersects(other Extent) bool {
	if self.empty || other.empty {
		return false
	}
	return self.bound.Intersects(other.bound)
}

// Euclidean distance from c to the rectangle, 0 if c lies inside.
func (self Extent) DistanceTo(c Coord) float64 {
	if self.empty {
		return math.Inf(1)
	}
	dx := math.Max(0, math.Max(self.bound.Min[0]-c[0], c[0]-self.bound.Max[0]))
	dy := math.Max(0, math.Max(self.bound.Min[1]-c[1], c[1]-self.bound.Max[1]))
	return math.Hypot(dx, dy)
}
