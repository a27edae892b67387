package engine

import (
	"fmt"
	"sync"

	"github.com/ttpr0/go-adjacency/comps"
	"github.com/ttpr0/go-adjacency/graph"
	. "github.com/ttpr0/go-adjacency/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// in-process network engine
//*******************************************

var _ INetworkAnalysisEngine = &NetworkEngine{}

// Solves OD cost matrices on an in-memory graph.
type NetworkEngine struct {
	g       graph.IGraph
	options Options

	mu     sync.Mutex
	layers Dict[string, *ODCostMatrix]
}

func NewNetworkEngine(g graph.IGraph, options Options) *NetworkEngine {
	return &NetworkEngine{
		g:       g,
		options: options,
		layers:  NewDict[string, *ODCostMatrix](10),
	}
}

func (self *NetworkEngine) Concurrent() bool {
	return true
}

func (self *NetworkEngine) GetGraph() graph.IGraph {
	return self.g
}

// Number of layers not yet deleted.
func (self *NetworkEngine) LayerCount() int {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.layers.Length()
}

func (self *NetworkEngine) MakeODCostMatrix(name string, options ODCostMatrixOptions) (IODCostMatrix, error) {
	impedance, err := self.g.GetWeighting(options.Impedance)
	if err != nil {
		return nil, err
	}
	accumulators := make([]comps.IWeighting, len(options.Accumulators))
	for i, attribute := range options.Accumulators {
		weight, err := self.g.GetWeighting(attribute)
		if err != nil {
			return nil, err
		}
		accumulators[i] = weight
	}

	self.mu.Lock()
	defer self.mu.Unlock()
	if old, ok := self.layers[name]; ok {
		if !self.options.Overwrite {
			return nil, fmt.Errorf("%w: %s", ErrLayerExists, name)
		}
		slog.Debug(fmt.Sprintf("overwriting layer %s", name))
		old.deleted.Store(true)
	}
	matrix := &ODCostMatrix{
		engine:       self,
		name:         name,
		options:      options,
		impedance:    impedance,
		accumulators: accumulators,
		origins:      NewList[Location](100),
		destinations: NewList[Location](100),
		barriers:     NewList[Location](100),
	}
	self.layers[name] = matrix
	return matrix, nil
}

func (self *NetworkEngine) _RemoveLayer(matrix *ODCostMatrix) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if curr, ok := self.layers[matrix.name]; ok && curr == matrix {
		self.layers.Delete(matrix.name)
	}
	matrix.deleted.Store(true)
}
