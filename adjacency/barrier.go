package adjacency

import (
	"github.com/ttpr0/go-adjacency/geo"
	. "github.com/ttpr0/go-adjacency/util"
	"golang.org/x/exp/slog"
)

// Cost charged for leaving or entering an entity location, shared among co-located entities.
//
// Has to exceed every distance of interest by far.
const BARRIER_COST = 1000000.0

// Distributes BARRIER_COST among entities sharing one snapped location.
//
// Skipped if all entities already carry a positive barrier cost. Returns false if the step was skipped.
func AssignBarrierCosts(entities List[PointEntity]) bool {
	assigned := true
	for _, entity := range entities {
		if entity.BarrierCost <= 0 {
			assigned = false
			break
		}
	}
	if assigned {
		slog.Info("barrier costs already assigned, skipping")
		return false
	}

	slog.Info("computing barrier costs")
	counts := NewDict[geo.Coord, int](entities.Length())
	for _, entity := range entities {
		counts[entity.Position()] += 1
	}
	for i := range entities {
		entity := &entities[i]
		entity.BarrierCost = BARRIER_COST / float64(counts[entity.Position()])
	}
	slog.Info("finished computing barrier costs")
	return true
}

// Clears the barrier costs so the next AssignBarrierCosts recomputes all shares.
func ResetBarrierCosts(entities List[PointEntity]) {
	for i := range entities {
		entities[i].BarrierCost = 0
	}
}
