package adjacency

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ttpr0/go-adjacency/engine"
	"github.com/ttpr0/go-adjacency/geo"
	. "github.com/ttpr0/go-adjacency/util"
)

// Engine using euclidean distances between snapped locations as network distance.
type _FakeEngine struct {
	mu         sync.Mutex
	concurrent bool
	fail_layer string
	created    int
	deleted    int
	active     Dict[string, bool]
}

func _NewFakeEngine(concurrent bool) *_FakeEngine {
	return &_FakeEngine{
		concurrent: concurrent,
		active:     NewDict[string, bool](10),
	}
}

func (self *_FakeEngine) Concurrent() bool {
	return self.concurrent
}

func (self *_FakeEngine) MakeODCostMatrix(name string, options engine.ODCostMatrixOptions) (engine.IODCostMatrix, error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.active.ContainsKey(name) {
		return nil, engine.ErrLayerExists
	}
	self.active[name] = true
	self.created += 1
	return &_FakeMatrix{engine: self, name: name, options: options}, nil
}

type _FakeMatrix struct {
	engine       *_FakeEngine
	name         string
	options      engine.ODCostMatrixOptions
	origins      []engine.Location
	destinations []engine.Location
	barriers     []engine.Location
}

func (self *_FakeMatrix) Name() string {
	return self.name
}

func (self *_FakeMatrix) AddLocations(layer engine.SubLayer, locations []engine.Location) error {
	switch layer {
	case engine.ORIGINS:
		self.origins = append(self.origins, locations...)
	case engine.DESTINATIONS:
		self.destinations = append(self.destinations, locations...)
	case engine.POINT_BARRIERS:
		self.barriers = append(self.barriers, locations...)
	}
	return nil
}

func (self *_FakeMatrix) Solve(ctx context.Context, skip_invalids bool) (List[engine.ODLine], error) {
	if self.engine.fail_layer != "" && self.engine.fail_layer == self.name {
		return nil, errors.New("solver failure")
	}
	costs := NewDict[geo.Coord, float64](len(self.barriers))
	for _, b := range self.barriers {
		costs[b.Loc.Snap] += b.AddedCost
	}
	lines := NewList[engine.ODLine](10)
	for i, o := range self.origins {
		if !o.Loc.Valid {
			continue
		}
		for j, d := range self.destinations {
			if !d.Loc.Valid {
				continue
			}
			dist := geo.Distance(o.Loc.Snap, d.Loc.Snap)
			total := dist + costs[o.Loc.Snap]
			if o.Loc.Snap != d.Loc.Snap {
				total += costs[d.Loc.Snap]
			}
			if self.options.Cutoff > 0 && total > self.options.Cutoff {
				continue
			}
			accumulated := make([]float64, len(self.options.Accumulators))
			for k := range accumulated {
				accumulated[k] = dist * float64(k+2)
			}
			lines.Add(engine.ODLine{
				Name:        engine.FormatLineName(o.Name, d.Name),
				Origin:      int32(i),
				Destination: int32(j),
				Total:       total,
				Accumulated: accumulated,
			})
		}
	}
	return lines, nil
}

func (self *_FakeMatrix) Delete() {
	self.engine.mu.Lock()
	defer self.engine.mu.Unlock()
	self.engine.active.Delete(self.name)
	self.engine.deleted += 1
}

// Entity located exactly at its point.
func _Entity(id string, x, y float64) PointEntity {
	return PointEntity{
		ID:    id,
		Point: geo.Coord{x, y},
	}
}

func _LocateAll(entities List[PointEntity]) {
	for i := range entities {
		entities[i].Location.Valid = true
		entities[i].Location.Snap = entities[i].Point
	}
}

func _EntityName(i int) string {
	return fmt.Sprintf("p%d", i)
}
