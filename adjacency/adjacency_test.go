package adjacency

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-adjacency/attr"
	"github.com/ttpr0/go-adjacency/comps"
	"github.com/ttpr0/go-adjacency/engine"
	"github.com/ttpr0/go-adjacency/geo"
	"github.com/ttpr0/go-adjacency/graph"
	"github.com/ttpr0/go-adjacency/locate"
	"github.com/ttpr0/go-adjacency/structs"
	. "github.com/ttpr0/go-adjacency/util"
)

//*******************************************
// test network
//*******************************************

// Two way street along the x-axis with nodes at 0, 1, ..., 10 and unit edge lengths.
func _BuildLineNetwork(t *testing.T) Network {
	nodes := NewArray[structs.Node](11)
	for i := range nodes {
		nodes[i] = structs.Node{Loc: geo.Coord{float64(i), 0}}
	}
	edges := NewList[structs.Edge](20)
	for i := int32(0); i < 10; i++ {
		edges.Add(structs.Edge{NodeA: i, NodeB: i + 1})
		edges.Add(structs.Edge{NodeA: i + 1, NodeB: i})
	}
	base := comps.NewGraphBase(nodes, Array[structs.Edge](edges))
	lengths := NewArray[float64](edges.Length())
	times := NewArray[float64](edges.Length())
	for i := range lengths {
		lengths[i] = 1
		times[i] = 2
	}
	costs := comps.NewCostAttributes(edges.Length())
	require.NoError(t, costs.AddAttribute("length", lengths))
	require.NoError(t, costs.AddAttribute("time", times))
	g, err := graph.BuildGraph(base, costs, "length", None[attr.IAttributes]())
	require.NoError(t, err)

	return Network{
		Meta: &comps.NetworkMeta{
			Name: "line",
			Sources: []comps.NetworkSource{
				{Name: "streets", Type: comps.EDGE_SOURCE},
				{Name: "junctions", Type: comps.JUNCTION_SOURCE},
			},
		},
		Resolver: locate.NewLocationResolver(g, 1),
		Engine:   engine.NewNetworkEngine(g, engine.Options{}),
	}
}

func _EdgeSet(table *AdjacencyTable) Dict[Tuple[string, string], float64] {
	set := NewDict[Tuple[string, string], float64](table.Length())
	for _, edge := range table.Edges {
		set[MakeTuple(edge.OriginID, edge.DestinationID)] = edge.Distance
	}
	return set
}

//*******************************************
// scenarios
//*******************************************

func TestLineScenario(t *testing.T) {
	network := _BuildLineNetwork(t)
	entities := List[PointEntity]{
		_Entity("0", 0, 0),
		_Entity("1", 1, 0),
		_Entity("2", 2, 0),
		_Entity("3", 3, 0),
		_Entity("10", 10, 0),
	}
	options := Options{
		ImpedanceAttribute:    "length",
		AccumulatorAttributes: []string{"time"},
		SearchRadius:          3,
		MaxNeighborSeparation: 3,
		PointsPerCell:         2,
	}
	table, err := Run(context.Background(), entities, network, options, nil)
	require.NoError(t, err)

	expected := []Triple[string, string, float64]{
		{A: "0", B: "1", C: 1}, {A: "0", B: "2", C: 2}, {A: "0", B: "3", C: 3},
		{A: "1", B: "2", C: 1}, {A: "1", B: "3", C: 2}, {A: "2", B: "3", C: 1},
	}
	set := _EdgeSet(table)
	assert.Equal(t, 2*len(expected), set.Length())
	for _, e := range expected {
		dist, ok := set[MakeTuple(e.A, e.B)]
		assert.True(t, ok, "missing %s-%s", e.A, e.B)
		assert.InDelta(t, e.C, dist, 1e-9)
		dist, ok = set[MakeTuple(e.B, e.A)]
		assert.True(t, ok, "missing %s-%s", e.B, e.A)
		assert.InDelta(t, e.C, dist, 1e-9)
	}
	for _, edge := range table.Edges {
		assert.NotEqual(t, "10", edge.OriginID)
		assert.NotEqual(t, "10", edge.DestinationID)
		require.Len(t, edge.Accumulated, 1)
		assert.InDelta(t, 2*edge.Distance, edge.Accumulated[0], 1e-9)
	}

	// all per tile layers are gone
	assert.Equal(t, 0, network.Engine.(*engine.NetworkEngine).LayerCount())
}

func TestColocatedScenario(t *testing.T) {
	network := _BuildLineNetwork(t)
	entities := List[PointEntity]{
		_Entity("a", 1, 0),
		_Entity("b", 1, 0),
		_Entity("c", 3, 0),
	}
	options := Options{
		ImpedanceAttribute:    "length",
		SearchRadius:          5,
		MaxNeighborSeparation: 5,
	}
	table, err := Run(context.Background(), entities, network, options, nil)
	require.NoError(t, err)

	assert.Equal(t, BARRIER_COST/2, entities[0].BarrierCost)
	assert.Equal(t, BARRIER_COST/2, entities[1].BarrierCost)
	assert.Equal(t, BARRIER_COST, entities[2].BarrierCost)

	set := _EdgeSet(table)
	assert.False(t, set.ContainsKey(MakeTuple("a", "b")))
	assert.False(t, set.ContainsKey(MakeTuple("b", "a")))
	assert.InDelta(t, 2, set[MakeTuple("a", "c")], 1e-9)
	assert.InDelta(t, 2, set[MakeTuple("c", "b")], 1e-9)
	assert.Equal(t, 4, set.Length())
}

func TestRunRecomputesStaleBarrierCosts(t *testing.T) {
	network := _BuildLineNetwork(t)
	// a was located in an earlier run, b is new at the same place
	a := _Entity("a", 1, 0)
	a.Location = network.Resolver.Locate(a.Point)
	a.BarrierCost = BARRIER_COST
	b := _Entity("b", 1, 0)
	b.BarrierCost = BARRIER_COST
	c := _Entity("c", 3, 0)
	c.BarrierCost = BARRIER_COST
	entities := List[PointEntity]{a, b, c}
	options := Options{
		ImpedanceAttribute:    "length",
		SearchRadius:          3,
		MaxNeighborSeparation: 3,
		PointsPerCell:         2,
	}
	table, err := Run(context.Background(), entities, network, options, nil)
	require.NoError(t, err)

	assert.Equal(t, BARRIER_COST/2, entities[0].BarrierCost)
	assert.Equal(t, BARRIER_COST/2, entities[1].BarrierCost)
	assert.Equal(t, BARRIER_COST, entities[2].BarrierCost)

	set := _EdgeSet(table)
	assert.False(t, set.ContainsKey(MakeTuple("a", "b")))
	assert.InDelta(t, 2, set[MakeTuple("a", "c")], 1e-9)
	assert.InDelta(t, 2, set[MakeTuple("b", "c")], 1e-9)
	assert.Equal(t, 4, set.Length())

	// nothing new to locate keeps the assigned costs
	entities[2].BarrierCost = BARRIER_COST / 4
	_, err = Run(context.Background(), entities, network, options, nil)
	require.NoError(t, err)
	assert.Equal(t, BARRIER_COST/4, entities[2].BarrierCost)
}

func TestDistanceCorrectionOnNetwork(t *testing.T) {
	// entities between nodes, true distances are known from the positions
	network := _BuildLineNetwork(t)
	entities := List[PointEntity]{
		_Entity("a", 0.5, 0.2),
		_Entity("b", 2.25, -0.1),
		_Entity("c", 4.75, 0),
	}
	options := Options{
		ImpedanceAttribute:    "length",
		SearchRadius:          10,
		MaxNeighborSeparation: 10,
	}
	table, err := Run(context.Background(), entities, network, options, nil)
	require.NoError(t, err)

	set := _EdgeSet(table)
	assert.InDelta(t, 1.75, set[MakeTuple("a", "b")], 1e-9)
	assert.InDelta(t, 4.25, set[MakeTuple("a", "c")], 1e-9)
	assert.InDelta(t, 2.5, set[MakeTuple("c", "b")], 1e-9)
}

func TestRunRejectsNetworkWithoutSources(t *testing.T) {
	network := _BuildLineNetwork(t)
	network.Meta.Sources = network.Meta.Sources[:1]
	entities := List[PointEntity]{_Entity("a", 1, 0)}
	_, err := Run(context.Background(), entities, network, Options{ImpedanceAttribute: "length", SearchRadius: 1}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, "line")
	// nothing has been computed
	assert.False(t, entities[0].Location.Valid)
}

func TestRunRejectsSeparatorInIDs(t *testing.T) {
	network := _BuildLineNetwork(t)
	entities := List[PointEntity]{_Entity("a - b", 1, 0)}
	_, err := Run(context.Background(), entities, network, Options{ImpedanceAttribute: "length", SearchRadius: 1}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

//*******************************************
// computation properties
//*******************************************

func _RandomEntities(count int, size float64, seed int64) List[PointEntity] {
	rnd := rand.New(rand.NewSource(seed))
	entities := NewList[PointEntity](count)
	for i := 0; i < count; i++ {
		entities.Add(_Entity(_EntityName(i), rnd.Float64()*size, rnd.Float64()*size))
	}
	_LocateAll(entities)
	AssignBarrierCosts(entities)
	return entities
}

func TestTilingCompleteness(t *testing.T) {
	entities := _RandomEntities(300, 100, 42)
	radius := 12.0

	expected := NewDict[Tuple[string, string], float64](1000)
	for i := range entities {
		for j := range entities {
			if i == j {
				continue
			}
			d := geo.Distance(entities[i].Point, entities[j].Point)
			if d <= radius {
				expected[MakeTuple(entities[i].ID, entities[j].ID)] = d
			}
		}
	}
	require.NotZero(t, expected.Length())

	options := Options{
		ImpedanceAttribute:    "length",
		AccumulatorAttributes: []string{"time"},
		SearchRadius:          radius,
		MaxNeighborSeparation: radius,
		PointsPerCell:         20,
		Workers:               4,
	}
	eng := _NewFakeEngine(true)
	table, err := Compute(context.Background(), entities, eng, options, nil)
	require.NoError(t, err)

	set := _EdgeSet(table)
	assert.Equal(t, expected.Length(), set.Length())
	for key, d := range expected {
		dist, ok := set[key]
		if assert.True(t, ok, "missing %v", key) {
			assert.InDelta(t, d, dist, 1e-6)
		}
	}
	for _, edge := range table.Edges {
		assert.NotEqual(t, edge.OriginID, edge.DestinationID)
		assert.GreaterOrEqual(t, edge.Distance, 0.0)
		assert.LessOrEqual(t, edge.Distance, radius+1e-6)
	}
	assert.Equal(t, eng.created, eng.deleted)

	// shrinking the separation below the search radius drops true neighbors
	options.MaxNeighborSeparation = 0
	table, err = Compute(context.Background(), entities, eng, options, nil)
	require.NoError(t, err)
	assert.Less(t, _EdgeSet(table).Length(), expected.Length())
}

func TestComputeWithDuplicateIDs(t *testing.T) {
	entities := List[PointEntity]{
		_Entity("a", 0, 0),
		_Entity("a", 1, 0),
		_Entity("b", 1, 0),
		_Entity("c", 1, 0),
	}
	_LocateAll(entities)
	AssignBarrierCosts(entities)
	assert.InDelta(t, BARRIER_COST, entities[1].BarrierCost+entities[2].BarrierCost+entities[3].BarrierCost, 1e-6)

	table, err := Compute(context.Background(), entities, _NewFakeEngine(false), Options{
		ImpedanceAttribute:    "length",
		SearchRadius:          5,
		MaxNeighborSeparation: 5,
	}, nil)
	require.NoError(t, err)
	for _, edge := range table.Edges {
		assert.NotEqual(t, edge.OriginID, edge.DestinationID)
		assert.GreaterOrEqual(t, edge.Distance, 0.0)
	}
	set := _EdgeSet(table)
	// only the pairs between the two positions remain
	assert.Equal(t, 4, set.Length())
	assert.InDelta(t, 1, set[MakeTuple("a", "b")], 1e-9)
	assert.InDelta(t, 1, set[MakeTuple("c", "a")], 1e-9)
	assert.False(t, set.ContainsKey(MakeTuple("b", "c")))
}

func TestComputeTileFailure(t *testing.T) {
	entities := _RandomEntities(50, 10, 1)
	eng := _NewFakeEngine(true)
	eng.fail_layer = "adjacency-run-1"
	_, err := Compute(context.Background(), entities, eng, Options{
		ImpedanceAttribute:    "length",
		SearchRadius:          1,
		MaxNeighborSeparation: 1,
		PointsPerCell:         10,
		RunID:                 "run",
	}, nil)
	assert.ErrorContains(t, err, "failed to solve tile 1")
	assert.Equal(t, eng.created, eng.deleted)
}

func TestComputeRejectsInvalidOptions(t *testing.T) {
	entities := _RandomEntities(5, 10, 1)
	_, err := Compute(context.Background(), entities, _NewFakeEngine(true), Options{SearchRadius: 1}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Compute(context.Background(), entities, _NewFakeEngine(true), Options{ImpedanceAttribute: "length"}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
