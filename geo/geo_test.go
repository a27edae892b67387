package geo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtentDistance(t *testing.T) {
	ext := ExtentOf([]Coord{{0, 0}, {10, 5}})
	assert.Equal(t, 10.0, ext.Width())
	assert.Equal(t, 5.0, ext.Height())

	assert.Equal(t, 0.0, ext.DistanceTo(Coord{3, 3}))
	assert.Equal(t, 0.0, ext.DistanceTo(Coord{10, 5}))
	assert.InDelta(t, 2.0, ext.DistanceTo(Coord{12, 3}), 1e-12)
	assert.InDelta(t, 5.0, ext.DistanceTo(Coord{-3, -4}), 1e-12)

	buffered := ext.Buffer(2)
	assert.True(t, buffered.Contains(Coord{12, 3}))
	assert.False(t, buffered.Contains(Coord{12.5, 3}))

	assert.True(t, EmptyExtent().IsEmpty())
	assert.False(t, EmptyExtent().Contains(Coord{0, 0}))
}

func TestProjectOnSegment(t *testing.T) {
	c, pos, d := ProjectOnSegment(Coord{0, 0}, Coord{10, 0}, Coord{4, 3})
	assert.Equal(t, Coord{4, 0}, c)
	assert.InDelta(t, 0.4, pos, 1e-12)
	assert.InDelta(t, 3.0, d, 1e-12)

	c, pos, d = ProjectOnSegment(Coord{0, 0}, Coord{10, 0}, Coord{-3, 4})
	assert.Equal(t, Coord{0, 0}, c)
	assert.Equal(t, 0.0, pos)
	assert.InDelta(t, 5.0, d, 1e-12)
}

func TestWebMercatorRoundTrip(t *testing.T) {
	proj := GetProjection(WEB_MERCATOR)
	c := Coord{7.1, 49.3}
	back := proj.ReProj(proj.Proj(c))
	assert.InDelta(t, c[0], back[0], 1e-9)
	assert.InDelta(t, c[1], back[1], 1e-9)
}

func TestGeoJSONPoints(t *testing.T) {
	file := filepath.Join(t.TempDir(), "points.geojson")
	points := []PointFeature{
		{Coord: Coord{1, 2}, Properties: map[string]any{"bid": 7}},
		{Coord: Coord{3, 4}, Properties: map[string]any{"bid": "b-8"}},
	}
	require.NoError(t, WriteGeoJSONPoints(file, points))

	read, err := ReadGeoJSONPoints(file, "bid")
	require.NoError(t, err)
	require.Len(t, read, 2)
	assert.Equal(t, "7", read[0].ID)
	assert.Equal(t, Coord{1, 2}, read[0].Coord)
	assert.Equal(t, "b-8", read[1].ID)

	_, err = ReadGeoJSONPoints(file, "missing")
	assert.Error(t, err)
}
