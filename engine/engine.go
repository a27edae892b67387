package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/ttpr0/go-adjacency/comps"
	"github.com/ttpr0/go-adjacency/locate"
	. "github.com/ttpr0/go-adjacency/util"
)

var (
	ErrLayerExists      = errors.New("layer already exists")
	ErrLayerDeleted     = errors.New("layer has been deleted")
	ErrInvalidLocation  = errors.New("invalid network location")
	ErrUnknownAttribute = comps.ErrUnknownAttribute
)

//*******************************************
// network analysis interfaces
//*******************************************

// Shortest path capability used by the adjacency computation.
type INetworkAnalysisEngine interface {
	// Creates a named OD cost matrix layer.
	//
	// Fails with ErrLayerExists if the name is in use and overwriting is disabled.
	MakeODCostMatrix(name string, options ODCostMatrixOptions) (IODCostMatrix, error)

	// Reports whether layers may be solved from multiple goroutines at once.
	Concurrent() bool
}

type IODCostMatrix interface {
	Name() string
	AddLocations(layer SubLayer, locations []Location) error

	// Computes the cost of every origin-destination pair within the cutoff.
	//
	// Origins and destinations without a valid location fail the solve unless skip_invalids is set.
	Solve(ctx context.Context, skip_invalids bool) (List[ODLine], error)

	// Releases the layer, its name can be reused afterwards.
	Delete()
}

//*******************************************
// engine structs
//*******************************************

// Engine wide settings.
type Options struct {
	// Replace existing layers of the same name instead of failing.
	Overwrite bool
}

type ODCostMatrixOptions struct {
	// Cost attribute minimized by the solver.
	Impedance string
	// Cost attributes summed up along the solved paths.
	Accumulators []string
	// Maximum impedance of reported lines, no limit if <= 0.
	Cutoff float64
}

type SubLayer byte

const (
	ORIGINS        SubLayer = 0
	DESTINATIONS   SubLayer = 1
	POINT_BARRIERS SubLayer = 2
)

func (self SubLayer) String() string {
	switch self {
	case ORIGINS:
		return "Origins"
	case DESTINATIONS:
		return "Destinations"
	case POINT_BARRIERS:
		return "Point Barriers"
	default:
		panic("unknown sub layer")
	}
}

type Location struct {
	Name string
	Loc  locate.NetworkLocation
	// Impedance added to paths touching the location, only used by point barriers.
	AddedCost float64
}

// A solved origin-destination pair.
type ODLine struct {
	// "<origin> - <destination>"
	Name        string
	Origin      int32
	Destination int32
	// Impedance including added barrier costs.
	Total float64
	// Accumulated attribute values aligned with the layers accumulators.
	Accumulated []float64
}

const LINE_NAME_SEPARATOR = " - "

func FormatLineName(origin string, destination string) string {
	return origin + LINE_NAME_SEPARATOR + destination
}

func _CheckSubLayer(layer SubLayer) error {
	switch layer {
	case ORIGINS, DESTINATIONS, POINT_BARRIERS:
		return nil
	default:
		return fmt.Errorf("unknown sub layer %d", layer)
	}
}
