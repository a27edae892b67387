package engine

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/ttpr0/go-adjacency/algorithm"
	"github.com/ttpr0/go-adjacency/comps"
	"github.com/ttpr0/go-adjacency/geo"
	"github.com/ttpr0/go-adjacency/graph"
	"github.com/ttpr0/go-adjacency/locate"
	. "github.com/ttpr0/go-adjacency/util"
)

//*******************************************
// od cost matrix
//*******************************************

var _ IODCostMatrix = &ODCostMatrix{}

type ODCostMatrix struct {
	engine       *NetworkEngine
	name         string
	options      ODCostMatrixOptions
	impedance    comps.IWeighting
	accumulators []comps.IWeighting

	origins      List[Location]
	destinations List[Location]
	barriers     List[Location]
	deleted      atomic.Bool
}

func (self *ODCostMatrix) Name() string {
	return self.name
}

func (self *ODCostMatrix) AddLocations(layer SubLayer, locations []Location) error {
	if self.deleted.Load() {
		return fmt.Errorf("%w: %s", ErrLayerDeleted, self.name)
	}
	if err := _CheckSubLayer(layer); err != nil {
		return err
	}
	switch layer {
	case ORIGINS:
		self.origins = append(self.origins, locations...)
	case DESTINATIONS:
		self.destinations = append(self.destinations, locations...)
	case POINT_BARRIERS:
		self.barriers = append(self.barriers, locations...)
	}
	return nil
}

func (self *ODCostMatrix) Delete() {
	self.engine._RemoveLayer(self)
}

// Position on a directed edge.
type _EdgePos struct {
	edge int32
	pos  float64
}

// Locations closer than this fraction to an edge end sit on the junction.
const JUNCTION_TOLERANCE = 1e-9

// Node a search starts from.
type _Start struct {
	from _EdgePos
	// fraction the origin edge is left at, 1 at NodeB and 0 at NodeA
	leave float64
}

// Best way a destination has been reached from the current origin.
type _Arrival struct {
	dist float64
	// node the path leaves the graph at, -1 if it stays on the origin edge
	node int32
	// fraction the destination edge is entered at, 0 at NodeA and 1 at NodeB
	enter float64
	from  _EdgePos
	to    _EdgePos
}

func (self *ODCostMatrix) Solve(ctx context.Context, skip_invalids bool) (List[ODLine], error) {
	if self.deleted.Load() {
		return nil, fmt.Errorf("%w: %s", ErrLayerDeleted, self.name)
	}
	g := self.engine.g

	origins, err := self._ValidLocations(self.origins, ORIGINS, skip_invalids)
	if err != nil {
		return nil, err
	}
	destinations, err := self._ValidLocations(self.destinations, DESTINATIONS, skip_invalids)
	if err != nil {
		return nil, err
	}

	// added costs per distinct barrier position
	barrier_costs := NewDict[geo.Coord, float64](self.barriers.Length())
	for _, barrier := range self.barriers {
		if !_IsValidLocation(g, barrier.Loc) {
			continue
		}
		barrier_costs[barrier.Loc.Snap] += barrier.AddedCost
	}

	cutoff := self.options.Cutoff
	if cutoff <= 0 {
		cutoff = math.Inf(1)
	}
	min_dest_cost := math.Inf(1)
	dest_positions := NewArray[List[_EdgePos]](destinations.Length())
	for i, d := range destinations {
		dest := self.destinations[d]
		dest_positions[i] = _GetEdgePositions(g, dest.Loc)
		min_dest_cost = math.Min(min_dest_cost, barrier_costs[dest.Loc.Snap])
	}

	lines := NewList[ODLine](origins.Length() * destinations.Length())
	flags := NewFlags[algorithm.DistFlag](int32(g.NodeCount()), algorithm.UNVISITED)
	for _, o := range origins {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		orig := self.origins[o]
		origin_cost := barrier_costs[orig.Loc.Snap]
		max_range := cutoff - origin_cost - min_dest_cost
		if max_range < 0 {
			continue
		}

		// leave the origin edge at its end node, locations on a junction also start at the junction
		orig_positions := _GetEdgePositions(g, orig.Loc)
		starts := NewList[Tuple[int32, float64]](4)
		start_positions := NewDict[int32, _Start](4)
		add_start := func(node int32, start _Start) {
			dist := _StartCost(self.impedance, start)
			if prev, ok := start_positions[node]; ok && _StartCost(self.impedance, prev) <= dist {
				return
			}
			start_positions[node] = start
			starts.Add(MakeTuple(node, dist))
		}
		for _, p := range orig_positions {
			e := g.GetEdge(p.edge)
			add_start(e.NodeB, _Start{from: p, leave: 1})
			if p.pos <= JUNCTION_TOLERANCE {
				add_start(e.NodeA, _Start{from: p, leave: 0})
			}
		}
		flags.Reset()
		algorithm.CalcRangeDijkstra(g, self.impedance, Array[Tuple[int32, float64]](starts), &flags, max_range)

		for i, d := range destinations {
			dest := self.destinations[d]
			arrival := self._GetArrival(g, &flags, orig_positions, dest_positions[i])
			if math.IsInf(arrival.dist, 1) {
				continue
			}
			total := arrival.dist + origin_cost
			if dest.Loc.Snap != orig.Loc.Snap {
				total += barrier_costs[dest.Loc.Snap]
			}
			if total > cutoff {
				continue
			}
			lines.Add(ODLine{
				Name:        FormatLineName(orig.Name, dest.Name),
				Origin:      int32(o),
				Destination: int32(d),
				Total:       total,
				Accumulated: self._Accumulate(g, &flags, start_positions, arrival),
			})
		}
	}
	return lines, nil
}

// Returns the indices of the usable locations.
func (self *ODCostMatrix) _ValidLocations(locations List[Location], layer SubLayer, skip_invalids bool) (List[int], error) {
	valid := NewList[int](locations.Length())
	for i, loc := range locations {
		if _IsValidLocation(self.engine.g, loc.Loc) {
			valid.Add(i)
			continue
		}
		if !skip_invalids {
			return nil, fmt.Errorf("%w: %s %s", ErrInvalidLocation, layer, loc.Name)
		}
	}
	return valid, nil
}

func (self *ODCostMatrix) _GetArrival(g graph.IGraph, flags *Flags[algorithm.DistFlag], orig_positions List[_EdgePos], dest_positions List[_EdgePos]) _Arrival {
	best := _Arrival{dist: math.Inf(1), node: -1}
	for _, to := range dest_positions {
		// both on the same directed edge
		for _, from := range orig_positions {
			if from.edge != to.edge || to.pos < from.pos {
				continue
			}
			dist := self.impedance.GetEdgeWeight(to.edge) * (to.pos - from.pos)
			if dist < best.dist {
				best = _Arrival{dist: dist, node: -1, from: from, to: to}
			}
		}
		// enter the destination edge at its start node, locations on the end junction also at the end node
		e := g.GetEdge(to.edge)
		entries := []Tuple[int32, float64]{MakeTuple(e.NodeA, 0.0)}
		if to.pos >= 1-JUNCTION_TOLERANCE {
			entries = append(entries, MakeTuple(e.NodeB, 1.0))
		}
		for _, entry := range entries {
			flag := flags.Peek(entry.A)
			if math.IsInf(flag.Dist, 1) {
				continue
			}
			dist := flag.Dist + math.Abs(_OffsetTo(self.impedance, _EdgePos{to.edge, entry.B}, to.pos))
			if dist < best.dist {
				best = _Arrival{dist: dist, node: entry.A, enter: entry.B, to: to}
			}
		}
	}
	return best
}

func (self *ODCostMatrix) _Accumulate(g graph.IGraph, flags *Flags[algorithm.DistFlag], start_positions Dict[int32, _Start], arrival _Arrival) []float64 {
	values := make([]float64, len(self.accumulators))
	if len(values) == 0 {
		return values
	}
	if arrival.node == -1 {
		for i, acc := range self.accumulators {
			values[i] = _OffsetTo(acc, arrival.from, arrival.to.pos)
		}
		return values
	}
	path := NewList[int32](10)
	start := algorithm.ForPathEdges(g, flags, arrival.node, func(edge int32) {
		path.Add(edge)
	})
	from := start_positions[start]
	for i, acc := range self.accumulators {
		sum := _StartCost(acc, from)
		for _, edge := range path {
			sum += acc.GetEdgeWeight(edge)
		}
		sum += math.Abs(_OffsetTo(acc, _EdgePos{arrival.to.edge, arrival.enter}, arrival.to.pos))
		values[i] = sum
	}
	return values
}

//*******************************************
// utility methods
//*******************************************

func _IsValidLocation(g graph.IGraph, loc locate.NetworkLocation) bool {
	return loc.Valid && loc.EdgeID >= 0 && int(loc.EdgeID) < g.EdgeCount()
}

// Positions of the location on its edge and on the reverse twin edge.
func _GetEdgePositions(g graph.IGraph, loc locate.NetworkLocation) List[_EdgePos] {
	positions := NewList[_EdgePos](2)
	positions.Add(_EdgePos{loc.EdgeID, loc.Pos})
	if rev, ok := g.GetReverseEdge(loc.EdgeID); ok {
		positions.Add(_EdgePos{rev, 1 - loc.Pos})
	}
	return positions
}

// Weight of the edge part between p and the fraction to.
func _OffsetTo(weight comps.IWeighting, p _EdgePos, to float64) float64 {
	return weight.GetEdgeWeight(p.edge) * (to - p.pos)
}

// Weight of the origin edge part between the location and the node the search starts at.
func _StartCost(weight comps.IWeighting, start _Start) float64 {
	return math.Abs(_OffsetTo(weight, start.from, start.leave))
}
