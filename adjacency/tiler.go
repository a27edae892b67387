package adjacency

import (
	"math"
	"slices"

	"github.com/ttpr0/go-adjacency/geo"
	. "github.com/ttpr0/go-adjacency/util"
)

// Default number of entities per raster cell.
const POINTS_PER_RASTER_CELL = 100

//*******************************************
// tiles
//*******************************************

type Tile struct {
	ID     int32
	Column int32
	Row    int32
	Extent geo.Extent
	// indices into the entity list
	Members List[int32]
	// most frequent entity id in the cell
	Value string
}

// Raster the tiles have been cut from.
type Raster struct {
	Extent    geo.Extent
	CellCount int
	CellSize  float64
	Columns   int32
	Rows      int32
	Tiles     List[Tile]
}

// Partitions the entities into raster cells holding roughly points_per_cell entities each.
//
// Every entity is member of exactly one tile, empty cells produce no tile.
func ComputeTiles(entities List[PointEntity], points_per_cell int) Raster {
	if points_per_cell <= 0 {
		points_per_cell = POINTS_PER_RASTER_CELL
	}
	extent := geo.EmptyExtent()
	for i := range entities {
		extent = extent.Extend(entities[i].Position())
	}
	cell_count := max(1, entities.Length()/points_per_cell)
	raster := Raster{
		Extent:    extent,
		CellCount: cell_count,
		Tiles:     NewList[Tile](cell_count),
	}
	if entities.Length() == 0 {
		return raster
	}

	width := extent.Width()
	height := extent.Height()
	cell_size := math.Sqrt(width * height / float64(cell_count))
	if cell_size == 0 {
		cell_size = math.Max(width, height) / float64(cell_count)
	}
	if cell_size == 0 || math.IsNaN(cell_size) {
		// all entities share one position
		members := NewList[int32](entities.Length())
		for i := range entities {
			members.Add(int32(i))
		}
		raster.Columns = 1
		raster.Rows = 1
		raster.Tiles.Add(_NewTile(0, 0, 0, extent, members, entities))
		return raster
	}
	// points on the far border are clamped into the last cell
	columns := int32(max(1, math.Ceil(width/cell_size*(1-1e-12))))
	rows := int32(max(1, math.Ceil(height/cell_size*(1-1e-12))))
	raster.CellSize = cell_size
	raster.Columns = columns
	raster.Rows = rows

	cells := NewDict[int64, List[int32]](cell_count)
	origin := extent.Min()
	for i := range entities {
		pos := entities[i].Position()
		col := _ClampCell(math.Floor((pos[0]-origin[0])/cell_size), columns)
		row := _ClampCell(math.Floor((pos[1]-origin[1])/cell_size), rows)
		cell := int64(row)*int64(columns) + int64(col)
		members := cells[cell]
		members.Add(int32(i))
		cells[cell] = members
	}
	keys := cells.Keys()
	slices.Sort(keys)
	for _, cell := range keys {
		members := cells[cell]
		col := int32(cell % int64(columns))
		row := int32(cell / int64(columns))
		cell_extent := geo.NewExtent(
			geo.Coord{origin[0] + float64(col)*cell_size, origin[1] + float64(row)*cell_size},
			geo.Coord{origin[0] + float64(col+1)*cell_size, origin[1] + float64(row+1)*cell_size},
		)
		raster.Tiles.Add(_NewTile(int32(raster.Tiles.Length()), col, row, cell_extent, members, entities))
	}
	return raster
}

func _NewTile(id, col, row int32, extent geo.Extent, members List[int32], entities List[PointEntity]) Tile {
	ids := make([]string, members.Length())
	for i, m := range members {
		ids[i] = entities[m].ID
	}
	return Tile{
		ID:      id,
		Column:  col,
		Row:     row,
		Extent:  extent,
		Members: members,
		Value:   GetMostCommon(ids),
	}
}

func _ClampCell(v float64, count int32) int32 {
	if v < 0 {
		return 0
	}
	if v >= float64(count) {
		return count - 1
	}
	return int32(v)
}
