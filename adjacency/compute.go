package adjacency

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/ttpr0/go-adjacency/comps"
	"github.com/ttpr0/go-adjacency/engine"
	. "github.com/ttpr0/go-adjacency/util"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

//*******************************************
// options
//*******************************************

type Options struct {
	ImpedanceAttribute    string      `yaml:"impedance-attribute"`
	AccumulatorAttributes []string    `yaml:"accumulator-attributes"`
	SearchRadius          float64     `yaml:"search-radius"`
	MaxNeighborSeparation float64     `yaml:"max-neighbor-separation"`
	PointsPerCell         int         `yaml:"points-per-cell"`
	Workers               int         `yaml:"workers"`
	MergePolicy           MergePolicy `yaml:"merge-policy"`
	// Prefix of the od layer names, a random id is used if empty.
	RunID string `yaml:"-"`
}

func (self *Options) _Validate() error {
	if self.ImpedanceAttribute == "" {
		return fmt.Errorf("%w: no impedance attribute given", ErrInvalidInput)
	}
	if self.SearchRadius <= 0 {
		return fmt.Errorf("%w: search radius has to be positive", ErrInvalidInput)
	}
	if self.MaxNeighborSeparation < 0 {
		return fmt.Errorf("%w: max neighbor separation has to be non-negative", ErrInvalidInput)
	}
	return nil
}

//*******************************************
// network
//*******************************************

// Network the adjacency is computed on.
type Network struct {
	Meta     *comps.NetworkMeta
	Resolver ILocationResolver
	Engine   engine.INetworkAnalysisEngine
}

// Checks that the network has been built from edge and junction sources.
func CheckNetworkSources(meta *comps.NetworkMeta) error {
	edge_source, junction_source := meta.GetSources()
	if !edge_source.HasValue() || !junction_source.HasValue() {
		slog.Warn(fmt.Sprintf("network %s needs at least one edge and one junction source", meta.Name))
		return fmt.Errorf("%w: network %s has no edge or junction source", ErrInvalidInput, meta.Name)
	}
	return nil
}

//*******************************************
// adjacency computation
//*******************************************

// Computes the adjacency list of the entities.
//
// Entities are located on the network and get barrier costs assigned unless already present.
// Barrier costs are recomputed whenever an entity had to be located.
func Run(ctx context.Context, entities List[PointEntity], network Network, options Options, metrics *Metrics) (*AdjacencyTable, error) {
	if err := CheckNetworkSources(network.Meta); err != nil {
		return nil, err
	}
	if err := _ValidateEntities(entities); err != nil {
		return nil, err
	}
	if CalculateLocations(entities, network.Resolver) {
		// new locations can change which entities share a position
		ResetBarrierCosts(entities)
	}
	AssignBarrierCosts(entities)
	return Compute(ctx, entities, network.Engine, options, metrics)
}

// Tiles the located entities and solves all tiles.
//
// Fragments are merged in tile order after every tile has been solved, the first failing tile
// aborts the computation.
func Compute(ctx context.Context, entities List[PointEntity], eng engine.INetworkAnalysisEngine, options Options, metrics *Metrics) (*AdjacencyTable, error) {
	if err := options._Validate(); err != nil {
		return nil, err
	}
	if options.MaxNeighborSeparation < options.SearchRadius {
		slog.Warn(fmt.Sprintf("max neighbor separation %v is below the search radius %v, neighbors may be missed", options.MaxNeighborSeparation, options.SearchRadius))
	}
	if options.RunID == "" {
		options.RunID = uuid.NewString()
	}
	start := time.Now()

	raster := ComputeTiles(entities, options.PointsPerCell)
	slog.Info(fmt.Sprintf("computing adjacency of %v entities in %v tiles", entities.Length(), raster.Tiles.Length()))

	workers := options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if !eng.Concurrent() {
		workers = 1
	}
	fragments := make([]List[AdjacencyEdge], raster.Tiles.Length())
	group, group_ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, tile := range raster.Tiles {
		i, tile := i, tile
		group.Go(func() error {
			if err := group_ctx.Err(); err != nil {
				return err
			}
			tile_start := time.Now()
			fragment, err := SolveTile(group_ctx, tile, entities, options, eng)
			if err != nil {
				metrics.ObserveTileFailed()
				return fmt.Errorf("failed to solve tile %d: %w", tile.ID, err)
			}
			fragments[i] = fragment
			metrics.ObserveTile(time.Since(tile_start), fragment.Length())
			slog.Debug(fmt.Sprintf("finished tile %v with %v edges", tile.ID, fragment.Length()))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	table := &AdjacencyTable{
		Accumulators: options.AccumulatorAttributes,
		Edges:        MergeFragments(fragments, options.MergePolicy),
	}
	metrics.ObserveRun(time.Since(start))
	slog.Info(fmt.Sprintf("computed %v adjacency edges in %v", table.Edges.Length(), time.Since(start)))
	return table, nil
}
