package main

import (
	"fmt"
	"os"

	"github.com/ttpr0/go-adjacency/algorithm"
	"github.com/ttpr0/go-adjacency/attr"
	"github.com/ttpr0/go-adjacency/comps"
	"github.com/ttpr0/go-adjacency/geo"
	"github.com/ttpr0/go-adjacency/graph"
	"github.com/ttpr0/go-adjacency/parser"
	"golang.org/x/exp/slog"
)

//*******************************************
// prepared network
//*******************************************

type PreparedNetwork struct {
	Base       *comps.GraphBase
	Attributes *attr.GraphAttributes
	Costs      *comps.CostAttributes
	Meta       *comps.NetworkMeta
}

// Parses the osm file and keeps only the largest connected component.
func PrepareNetwork(options NetworkOptions) (*PreparedNetwork, error) {
	if options.OSM == "" {
		return nil, fmt.Errorf("no osm file configured for network %s", options.Name)
	}
	decoder, err := parser.GetDecoder(options.Vehicle.Mode())
	if err != nil {
		return nil, err
	}
	network, err := parser.ParseGraph(options.OSM, decoder, geo.GetProjection(options.Projection))
	if err != nil {
		return nil, err
	}
	base, removed := RemoveDisconnected(network)
	if removed > 0 {
		slog.Info(fmt.Sprintf("removed %v nodes not part of the largest component", removed))
	}
	meta := &comps.NetworkMeta{
		Name:           options.Name,
		Sources:        network.Sources,
		CostAttributes: network.Costs.Names(),
		Projection:     options.Projection.String(),
		NodeCount:      base.NodeCount(),
		EdgeCount:      base.EdgeCount(),
	}
	return &PreparedNetwork{
		Base:       base,
		Attributes: network.Attributes,
		Costs:      network.Costs,
		Meta:       meta,
	}, nil
}

// Removes all nodes outside of the largest connected component together with their edges.
//
// Attributes and costs of the network are updated in place, returns the new graph base and the number of removed nodes.
func RemoveDisconnected(network *parser.OSMNetwork) (*comps.GraphBase, int) {
	g := graph.BuildTopologyGraph(network.Base)
	remove := algorithm.GetDisconnectedNodes(g)
	if remove.Length() == 0 {
		return network.Base, 0
	}
	base, removed_edges := network.Base.RemoveNodes(remove)
	network.Attributes.RemoveNodes(remove)
	network.Attributes.RemoveEdges(removed_edges)
	network.Costs.RemoveEdges(removed_edges)
	network.Base = base
	return base, remove.Length()
}

//*******************************************
// load and store methods
//*******************************************

func StoreNetwork(network *PreparedNetwork, path string, name string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create network directory: %w", err)
	}
	prefix := path + "/" + name
	if err := comps.Store(network.Base, prefix); err != nil {
		return err
	}
	if err := attr.Store(network.Attributes, prefix); err != nil {
		return err
	}
	if err := comps.Store(network.Costs, prefix); err != nil {
		return err
	}
	return comps.Store(network.Meta, prefix)
}

func LoadNetwork(path string, name string) (*PreparedNetwork, error) {
	prefix := path + "/" + name
	meta, err := comps.LoadNetworkMeta(prefix)
	if err != nil {
		return nil, err
	}
	base, err := comps.LoadGraphBase(prefix)
	if err != nil {
		return nil, err
	}
	att, err := attr.Load(prefix)
	if err != nil {
		return nil, err
	}
	costs, err := comps.LoadCostAttributes(prefix, meta.CostAttributes, base.EdgeCount())
	if err != nil {
		return nil, err
	}
	return &PreparedNetwork{
		Base:       base,
		Attributes: att,
		Costs:      costs,
		Meta:       meta,
	}, nil
}
