package adjacency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-adjacency/geo"
	. "github.com/ttpr0/go-adjacency/util"
)

func _AssertPartition(t *testing.T, raster Raster, count int) {
	seen := NewArray[int](count)
	for _, tile := range raster.Tiles {
		assert.NotZero(t, tile.Members.Length())
		for _, m := range tile.Members {
			seen[m] += 1
		}
	}
	for i, s := range seen {
		assert.Equal(t, 1, s, "entity %d", i)
	}
}

func TestComputeTilesBalanced(t *testing.T) {
	entities := _RandomEntities(1000, 1000, 7)
	raster := ComputeTiles(entities, 100)

	assert.Equal(t, 10, raster.CellCount)
	assert.Greater(t, raster.CellSize, 0.0)
	_AssertPartition(t, raster, 1000)

	total := 0
	for _, tile := range raster.Tiles {
		total += tile.Members.Length()
		assert.LessOrEqual(t, tile.Members.Length(), 200)
		// members lie inside the cell
		for _, m := range tile.Members {
			assert.True(t, tile.Extent.Buffer(1e-6).Contains(entities[m].Position()))
		}
	}
	assert.Equal(t, 1000, total)
	assert.LessOrEqual(t, raster.Tiles.Length(), int(raster.Columns*raster.Rows))

	// tiles are ordered by cell
	for i := 1; i < raster.Tiles.Length(); i++ {
		prev := raster.Tiles[i-1]
		curr := raster.Tiles[i]
		assert.Less(t, prev.Row*raster.Columns+prev.Column, curr.Row*raster.Columns+curr.Column)
		assert.Equal(t, int32(i), curr.ID)
	}
}

func TestComputeTilesDegenerate(t *testing.T) {
	// points on a line have an extent without area
	entities := NewList[PointEntity](300)
	for i := 0; i < 300; i++ {
		entities.Add(_Entity(_EntityName(i), float64(i), 3))
	}
	raster := ComputeTiles(entities, 100)
	assert.Equal(t, 3, raster.CellCount)
	assert.Equal(t, 3, raster.Tiles.Length())
	_AssertPartition(t, raster, 300)

	// identical points end up in a single tile
	entities = NewList[PointEntity](300)
	for i := 0; i < 300; i++ {
		entities.Add(_Entity(_EntityName(i), 1, 1))
	}
	raster = ComputeTiles(entities, 100)
	require.Equal(t, 1, raster.Tiles.Length())
	_AssertPartition(t, raster, 300)

	raster = ComputeTiles(NewList[PointEntity](0), 100)
	assert.Equal(t, 0, raster.Tiles.Length())
}

func TestComputeTilesValue(t *testing.T) {
	entities := List[PointEntity]{
		_Entity("b", 0, 0),
		_Entity("a", 0.5, 0.5),
		_Entity("a", 1, 1),
	}
	raster := ComputeTiles(entities, 100)
	require.Equal(t, 1, raster.Tiles.Length())
	assert.Equal(t, "a", raster.Tiles[0].Value)
}

func TestBuildLocalBatch(t *testing.T) {
	entities := List[PointEntity]{
		_Entity("in", 1, 1),
		_Entity("near", 3, 1),
		_Entity("far", 10, 1),
	}
	tile := Tile{
		Extent:  geo.NewExtent(geo.Coord{0, 0}, geo.Coord{2, 2}),
		Members: List[int32]{0},
	}
	batch := BuildLocalBatch(tile, entities, 1)
	assert.Equal(t, List[int32]{0}, batch.Origins)
	assert.Equal(t, List[int32]{0, 1}, batch.Destinations)
	assert.Equal(t, List[int32]{0, 1, 2}, batch.Barriers)

	assert.Equal(t, 2*BARRIER_COST+250, Cutoff(250))
	assert.Equal(t, 2.5*BARRIER_COST, Cutoff(10*BARRIER_COST))
}
