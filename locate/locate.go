package locate

import (
	"math"

	"github.com/ttpr0/go-adjacency/comps"
	"github.com/ttpr0/go-adjacency/geo"
	"github.com/ttpr0/go-adjacency/graph"
)

// Default maximum distance between a point and the edge it is snapped to.
const SEARCH_TOLERANCE = 5000.0

//*******************************************
// network location
//*******************************************

// Position of a point on the network.
type NetworkLocation struct {
	// Edge the point was snapped to.
	EdgeID int32
	// Fraction along the edge geometry, 0 at NodeA and 1 at NodeB.
	Pos float64
	// Closest point on the edge geometry.
	Snap geo.Coord
	// Distance between the input point and Snap.
	Offset float64
	Valid  bool
}

func InvalidLocation() NetworkLocation {
	return NetworkLocation{EdgeID: -1, Valid: false}
}

//*******************************************
// location resolver
//*******************************************

// Snaps points onto the closest edge of a graph.
//
// Safe for concurrent use after creation.
type LocationResolver struct {
	g         graph.IGraph
	index     *comps.EdgeIndex
	tolerance float64
}

func NewLocationResolver(g graph.IGraph, tolerance float64) *LocationResolver {
	if tolerance <= 0 {
		tolerance = SEARCH_TOLERANCE
	}
	cell_size := math.Max(tolerance/4, 1)
	index := comps.NewEdgeIndex(g.EdgeCount(), g.GetEdgeGeom, cell_size)
	return &LocationResolver{
		g:         g,
		index:     index,
		tolerance: tolerance,
	}
}

func (self *LocationResolver) Tolerance() float64 {
	return self.tolerance
}

// Returns the location on the closest edge within the search tolerance.
//
// Ties are resolved to the lower edge id, points without an edge in range get an invalid location.
func (self *LocationResolver) Locate(point geo.Coord) NetworkLocation {
	best := InvalidLocation()
	best_dist := math.Inf(1)
	self.index.ForCandidateEdges(point, self.tolerance, func(edge int32) {
		snap, pos, dist := ProjectOnEdge(self.g.GetEdgeGeom(edge), point)
		if dist > self.tolerance {
			return
		}
		if dist < best_dist || (dist == best_dist && edge < best.EdgeID) {
			best_dist = dist
			best = NetworkLocation{
				EdgeID: edge,
				Pos:    pos,
				Snap:   snap,
				Offset: dist,
				Valid:  true,
			}
		}
	})
	return best
}

// Locates all points, already valid locations are kept.
//
// Returns the number of points that have been located in this call.
func (self *LocationResolver) LocateAll(points []geo.Coord, locations []NetworkLocation) int {
	count := 0
	for i, point := range points {
		if locations[i].Valid {
			continue
		}
		locations[i] = self.Locate(point)
		if locations[i].Valid {
			count += 1
		}
	}
	return count
}

// Projects point onto a polyline.
//
// Returns the closest point, its fraction along the polyline (by length) and the distance to it.
func ProjectOnEdge(geom geo.CoordArray, point geo.Coord) (geo.Coord, float64, float64) {
	if len(geom) == 0 {
		return point, 0, math.Inf(1)
	}
	if len(geom) == 1 {
		return geom[0], 0, geo.Distance(geom[0], point)
	}
	total := geom.Length()
	best_snap := geom[0]
	best_along := 0.0
	best_dist := math.Inf(1)
	along := 0.0
	for i := 0; i < len(geom)-1; i++ {
		a := geom[i]
		b := geom[i+1]
		seg_len := geo.Distance(a, b)
		snap, frac, dist := geo.ProjectOnSegment(a, b, point)
		if dist < best_dist {
			best_dist = dist
			best_snap = snap
			best_along = along + frac*seg_len
		}
		along += seg_len
	}
	if total == 0 {
		return best_snap, 0, best_dist
	}
	return best_snap, math.Min(1, best_along/total), best_dist
}
