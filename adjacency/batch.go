package adjacency

import (
	"context"
	"fmt"
	"math"

	"github.com/ttpr0/go-adjacency/engine"
	. "github.com/ttpr0/go-adjacency/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// local batch
//*******************************************

// Working set of one tile, indices refer to the entity list.
type LocalBatch struct {
	Origins      List[int32]
	Destinations List[int32]
	Barriers     List[int32]
}

// Selects the entities of the tile as origins and all entities within
// max_neighbor_separation of the tile as destinations, every entity is a barrier.
func BuildLocalBatch(tile Tile, entities List[PointEntity], max_neighbor_separation float64) LocalBatch {
	batch := LocalBatch{
		Origins:      tile.Members,
		Destinations: NewList[int32](tile.Members.Length() * 2),
		Barriers:     NewList[int32](entities.Length()),
	}
	for i := range entities {
		batch.Barriers.Add(int32(i))
		if tile.Extent.DistanceTo(entities[i].Position()) <= max_neighbor_separation {
			batch.Destinations.Add(int32(i))
		}
	}
	return batch
}

// Maximum raw cost of a pair within the search radius.
func Cutoff(search_radius float64) float64 {
	return 2*BARRIER_COST + math.Min(search_radius, BARRIER_COST/2)
}

//*******************************************
// solve tile
//*******************************************

// Computes the adjacency fragment of a single tile.
//
// The od layer created for the tile is deleted before returning.
func SolveTile(ctx context.Context, tile Tile, entities List[PointEntity], options Options, eng engine.INetworkAnalysisEngine) (List[AdjacencyEdge], error) {
	batch := BuildLocalBatch(tile, entities, options.MaxNeighborSeparation)
	slog.Debug(fmt.Sprintf("solving tile %v: %v origins, %v destinations", tile.ID, batch.Origins.Length(), batch.Destinations.Length()))

	name := fmt.Sprintf("adjacency-%s-%d", options.RunID, tile.ID)
	matrix, err := eng.MakeODCostMatrix(name, engine.ODCostMatrixOptions{
		Impedance:    options.ImpedanceAttribute,
		Accumulators: options.AccumulatorAttributes,
		Cutoff:       Cutoff(options.SearchRadius),
	})
	if err != nil {
		return nil, err
	}
	defer matrix.Delete()

	if err := matrix.AddLocations(engine.ORIGINS, _ToLocations(batch.Origins, entities, false)); err != nil {
		return nil, err
	}
	if err := matrix.AddLocations(engine.DESTINATIONS, _ToLocations(batch.Destinations, entities, false)); err != nil {
		return nil, err
	}
	if err := matrix.AddLocations(engine.POINT_BARRIERS, _ToLocations(batch.Barriers, entities, true)); err != nil {
		return nil, err
	}
	lines, err := matrix.Solve(ctx, true)
	if err != nil {
		return nil, err
	}
	return AssembleFragment(lines)
}

func _ToLocations(indices List[int32], entities List[PointEntity], barrier bool) []engine.Location {
	locations := make([]engine.Location, indices.Length())
	for i, index := range indices {
		entity := &entities[index]
		locations[i] = engine.Location{
			Name: entity.ID,
			Loc:  entity.Location,
		}
		if barrier {
			locations[i].AddedCost = entity.BarrierCost
		}
	}
	return locations
}
