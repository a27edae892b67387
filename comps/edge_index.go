package comps

import (
	"math"

	"github.com/ttpr0/go-adjacency/geo"
	. "github.com/ttpr0/go-adjacency/util"
)

//*******************************************
// edge index
//*******************************************

// Uniform grid over edge bounding boxes.
//
// Used to find edges close to a point when snapping locations onto the network.
type EdgeIndex struct {
	origin    geo.Coord
	cell_size float64
	cells     Dict[[2]int32, List[int32]]
}

// Builds the index, geoms returns the polyline of an edge.
func NewEdgeIndex(edge_count int, geoms func(int32) geo.CoordArray, cell_size float64) *EdgeIndex {
	extent := geo.EmptyExtent()
	for i := 0; i < edge_count; i++ {
		for _, c := range geoms(int32(i)) {
			extent = extent.Extend(c)
		}
	}
	if cell_size <= 0 {
		cell_size = math.Max(math.Max(extent.Width(), extent.Height())/64, 1)
	}
	index := &EdgeIndex{
		origin:    extent.Min(),
		cell_size: cell_size,
		cells:     NewDict[[2]int32, List[int32]](edge_count),
	}
	for i := 0; i < edge_count; i++ {
		bounds := geo.ExtentOf(geoms(int32(i)))
		if bounds.IsEmpty() {
			continue
		}
		x0, y0 := index._CellOf(bounds.Min())
		x1, y1 := index._CellOf(bounds.Max())
		for x := x0; x <= x1; x++ {
			for y := y0; y <= y1; y++ {
				key := [2]int32{x, y}
				cell := index.cells[key]
				cell.Add(int32(i))
				index.cells[key] = cell
			}
		}
	}
	return index
}

// Calls callback for every edge whose bounding box may lie within max_dist of point.
//
// An edge can be reported more than once.
func (self *EdgeIndex) ForCandidateEdges(point geo.Coord, max_dist float64, callback func(int32)) {
	x0, y0 := self._CellOf(geo.Coord{point[0] - max_dist, point[1] - max_dist})
	x1, y1 := self._CellOf(geo.Coord{point[0] + max_dist, point[1] + max_dist})
	if float64(x1-x0+1)*float64(y1-y0+1) > float64(len(self.cells)) {
		for key, cell := range self.cells {
			if key[0] < x0 || key[0] > x1 || key[1] < y0 || key[1] > y1 {
				continue
			}
			for _, edge := range cell {
				callback(edge)
			}
		}
		return
	}
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for _, edge := range self.cells[[2]int32{x, y}] {
				callback(edge)
			}
		}
	}
}

func (self *EdgeIndex) _CellOf(c geo.Coord) (int32, int32) {
	x := math.Floor((c[0] - self.origin[0]) / self.cell_size)
	y := math.Floor((c[1] - self.origin[1]) / self.cell_size)
	return int32(x), int32(y)
}
