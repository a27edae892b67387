package main

import (
	"context"
	"fmt"

	"github.com/ttpr0/go-adjacency/adjacency"
	"github.com/ttpr0/go-adjacency/attr"
	"github.com/ttpr0/go-adjacency/comps"
	"github.com/ttpr0/go-adjacency/engine"
	"github.com/ttpr0/go-adjacency/geo"
	"github.com/ttpr0/go-adjacency/graph"
	"github.com/ttpr0/go-adjacency/locate"
	. "github.com/ttpr0/go-adjacency/util"
	"golang.org/x/exp/slog"
)

// Loads or prepares the configured network and runs adjacency computations on it.
func NewNetworkManager(config Config, metrics *adjacency.Metrics) (*NetworkManager, error) {
	options := config.Network
	build := options.Rebuild
	if IsDirectoryEmpty(options.Path) || !FileExists(options.Path+"/"+options.Name+"-meta") {
		build = true
	}

	var network *PreparedNetwork
	var err error
	if build {
		slog.Info(fmt.Sprintf("preparing network %s from %s", options.Name, options.OSM))
		network, err = PrepareNetwork(options)
		if err != nil {
			return nil, err
		}
		if err := StoreNetwork(network, options.Path, options.Name); err != nil {
			return nil, err
		}
	} else {
		slog.Info(fmt.Sprintf("loading network %s from %s", options.Name, options.Path))
		network, err = LoadNetwork(options.Path, options.Name)
		if err != nil {
			return nil, err
		}
	}
	return _NewManager(network, config, metrics)
}

func _NewManager(network *PreparedNetwork, config Config, metrics *adjacency.Metrics) (*NetworkManager, error) {
	if len(network.Meta.CostAttributes) == 0 {
		return nil, fmt.Errorf("network %s has no cost attributes", network.Meta.Name)
	}
	default_cost := config.Compute.ImpedanceAttribute
	if !network.Costs.HasAttribute(default_cost) {
		default_cost = network.Meta.CostAttributes[0]
	}
	g, err := graph.BuildGraph(network.Base, network.Costs, default_cost, Some[attr.IAttributes](network.Attributes))
	if err != nil {
		return nil, err
	}
	proj_type, err := geo.ProjectionTypeFromString(network.Meta.Projection)
	if err != nil {
		return nil, err
	}
	resolver := locate.NewLocationResolver(g, config.Network.SearchTolerance)
	eng := engine.NewNetworkEngine(g, engine.Options{Overwrite: config.Compute.Overwrite})
	slog.Info(fmt.Sprintf("network %s ready with %v nodes and %v edges", network.Meta.Name, g.NodeCount(), g.EdgeCount()))
	return &NetworkManager{
		config:     config,
		meta:       network.Meta,
		graph:      g,
		resolver:   resolver,
		engine:     eng,
		projection: geo.GetProjection(proj_type),
		metrics:    metrics,
	}, nil
}

type NetworkManager struct {
	config     Config
	meta       *comps.NetworkMeta
	graph      *graph.Graph
	resolver   *locate.LocationResolver
	engine     *engine.NetworkEngine
	projection geo.IProjection
	metrics    *adjacency.Metrics
}

func (self *NetworkManager) GetMeta() *comps.NetworkMeta {
	return self.meta
}
func (self *NetworkManager) GetProjection() geo.IProjection {
	return self.projection
}
func (self *NetworkManager) GetConfig() Config {
	return self.config
}

func (self *NetworkManager) GetNetwork() adjacency.Network {
	return adjacency.Network{
		Meta:     self.meta,
		Resolver: self.resolver,
		Engine:   self.engine,
	}
}

func (self *NetworkManager) Compute(ctx context.Context, entities List[adjacency.PointEntity], options adjacency.Options) (*adjacency.AdjacencyTable, error) {
	return adjacency.Run(ctx, entities, self.GetNetwork(), options, self.metrics)
}

// Returns the network location of point and the closest junction, -1 if none is in range.
func (self *NetworkManager) Locate(point geo.Coord) (locate.NetworkLocation, int32) {
	location := self.resolver.Locate(point)
	node, ok := self.graph.GetClosestNode(point, self.resolver.Tolerance())
	if !ok {
		node = -1
	}
	return location, node
}
