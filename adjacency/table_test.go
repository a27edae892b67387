package adjacency

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/ttpr0/go-adjacency/util"
)

func _TestTable() *AdjacencyTable {
	return &AdjacencyTable{
		Accumulators: []string{"time"},
		Edges: List[AdjacencyEdge]{
			{OriginID: "a", DestinationID: "b", Distance: 1.5, Accumulated: []float64{3}},
			{OriginID: "b", DestinationID: "a", Distance: 2, Accumulated: []float64{4}},
		},
	}
}

func TestWriteCSVTable(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteTable(_TestTable(), dir, "adjacency.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "adjacency.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "origin_id,destination_id,distance,time\na,b,1.5,3\nb,a,2,4\n", string(data))
	_, err = os.Stat(path + "~")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteJSONTable(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteTable(_TestTable(), dir, "adjacency.json")
	require.NoError(t, err)

	table, err := ReadJSONFromFile[_JSONTable](path)
	require.NoError(t, err)
	assert.Equal(t, []string{"time"}, table.Accumulators)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "a", table.Rows[0].OriginID)
	assert.Equal(t, 3.0, table.Rows[0].Accumulated["time"])

	_, err = WriteTable(_TestTable(), dir, "adjacency.xlsx")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemoveStaleOutputs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "adjacency.csv")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))
	require.NoError(t, os.WriteFile(path+"~", []byte("old"), 0644))

	require.NoError(t, RemoveStaleOutputs(dir, "adjacency.csv"))
	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Stat(path + "~")
	assert.ErrorIs(t, err, os.ErrNotExist)

	// nothing to remove
	assert.NoError(t, RemoveStaleOutputs(dir, "adjacency.csv"))
}

func TestMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	entities := _RandomEntities(40, 10, 3)
	_, err := Compute(context.Background(), entities, _NewFakeEngine(true), Options{
		ImpedanceAttribute:    "length",
		SearchRadius:          2,
		MaxNeighborSeparation: 2,
		PointsPerCell:         10,
	}, metrics)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsTotal))
	assert.Greater(t, testutil.ToFloat64(metrics.TilesTotal.WithLabelValues("success")), 0.0)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.TilesTotal.WithLabelValues("error")))

	// a nil collector is allowed
	var empty *Metrics
	empty.ObserveRun(0)
}
