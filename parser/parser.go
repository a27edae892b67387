package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/ttpr0/go-adjacency/attr"
	"github.com/ttpr0/go-adjacency/comps"
	"github.com/ttpr0/go-adjacency/geo"
	"github.com/ttpr0/go-adjacency/structs"
	. "github.com/ttpr0/go-adjacency/util"
	"golang.org/x/exp/slog"
)

// Components of a network parsed from an osm extract.
type OSMNetwork struct {
	Base       *comps.GraphBase
	Attributes *attr.GraphAttributes
	Costs      *comps.CostAttributes
	Sources    []comps.NetworkSource
}

// Parses the ways accepted by the decoder into a routable network.
//
// Coordinates are projected with proj, edge lengths are geodesic meters.
func ParseGraph(pbf_file string, decoder IOSMDecoder, proj geo.IProjection) (*OSMNetwork, error) {
	nodes := NewList[OSMNode](10000)
	edges := NewList[OSMEdge](10000)
	index_mapping := NewDict[int64, int](10000)
	err := _ParseOsm(pbf_file, decoder, &nodes, &edges, &index_mapping)
	if err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("parsed %v edges, %v nodes", edges.Length(), nodes.Length()))
	return _CreateNetwork(&nodes, &edges, proj)
}

func _ParseOsm(filename string, decoder IOSMDecoder, nodes *List[OSMNode], edges *List[OSMEdge], index_mapping *Dict[int64, int]) error {
	osm_nodes := NewDict[int64, TempNode](1000)

	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	_InitWayHandler(scanner, decoder, &osm_nodes)
	if err := _CloseScanner(scanner); err != nil {
		return err
	}
	file.Seek(0, io.SeekStart)
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	_NodeHandler(scanner, decoder, &osm_nodes, nodes, index_mapping)
	if err := _CloseScanner(scanner); err != nil {
		return err
	}
	file.Seek(0, io.SeekStart)
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	_WayHandler(scanner, decoder, edges, &osm_nodes, index_mapping)
	return _CloseScanner(scanner)
}

func _CloseScanner(scanner *osmpbf.Scanner) error {
	err := scanner.Err()
	scanner.Close()
	if err != nil {
		return fmt.Errorf("failed to read osm file: %w", err)
	}
	return nil
}

func _CreateNetwork(osmnodes *List[OSMNode], osmedges *List[OSMEdge], proj geo.IProjection) (*OSMNetwork, error) {
	nodes := NewList[structs.Node](osmnodes.Length())
	edges := NewList[structs.Edge](osmedges.Length() * 2)
	node_attrs := NewList[attr.NodeAttribs](osmnodes.Length())
	edge_attrs := NewList[attr.EdgeAttribs](osmedges.Length() * 2)
	node_geoms := NewList[geo.Coord](osmnodes.Length())
	edge_geoms := NewList[geo.CoordArray](osmedges.Length() * 2)

	for _, osmedge := range *osmedges {
		edge_attr := osmedge.Attr
		edge_attr.Length = geo.GeodesicLength(geo.CoordArray(osmedge.Nodes))
		geom := NewArray[geo.Coord](osmedge.Nodes.Length())
		for i, c := range osmedge.Nodes {
			geom[i] = proj.Proj(c)
		}
		edges.Add(structs.Edge{
			NodeA: int32(osmedge.NodeA),
			NodeB: int32(osmedge.NodeB),
		})
		edge_attrs.Add(edge_attr)
		edge_geoms.Add(geo.CoordArray(geom))
		if !osmedge.Attr.Oneway {
			rev_geom := NewArray[geo.Coord](geom.Length())
			for i, c := range geom {
				rev_geom[geom.Length()-1-i] = c
			}
			edges.Add(structs.Edge{
				NodeA: int32(osmedge.NodeB),
				NodeB: int32(osmedge.NodeA),
			})
			edge_attrs.Add(edge_attr)
			edge_geoms.Add(geo.CoordArray(rev_geom))
		}
	}

	for _, osmnode := range *osmnodes {
		point := proj.Proj(osmnode.Point)
		nodes.Add(structs.Node{
			Loc: point,
		})
		node_attrs.Add(osmnode.Attr)
		node_geoms.Add(point)
	}

	base := comps.NewGraphBase(Array[structs.Node](nodes), Array[structs.Edge](edges))
	att := attr.New(Array[attr.NodeAttribs](node_attrs), Array[attr.EdgeAttribs](edge_attrs), Array[geo.Coord](node_geoms), Array[geo.CoordArray](edge_geoms))
	costs, err := BuildCostAttributes(att)
	if err != nil {
		return nil, err
	}

	sources := make([]comps.NetworkSource, 0, 2)
	if edges.Length() > 0 {
		sources = append(sources, comps.NetworkSource{Name: "osm-ways", Type: comps.EDGE_SOURCE})
	}
	if nodes.Length() > 0 {
		sources = append(sources, comps.NetworkSource{Name: "osm-junctions", Type: comps.JUNCTION_SOURCE})
	}
	return &OSMNetwork{
		Base:       base,
		Attributes: att,
		Costs:      costs,
		Sources:    sources,
	}, nil
}

// Derives the "length" (meters) and "time" (seconds) cost attributes from the edge attributes.
func BuildCostAttributes(att *attr.GraphAttributes) (*comps.CostAttributes, error) {
	edge_count := att.EdgeCount()
	lengths := NewArray[float64](edge_count)
	times := NewArray[float64](edge_count)
	for i := 0; i < edge_count; i++ {
		e := att.GetEdgeAttribs(int32(i))
		lengths[i] = e.Length
		speed := float64(e.Maxspeed)
		if speed <= 0 {
			speed = WALKING_SPEED
		}
		times[i] = e.Length * 3.6 / speed
	}
	costs := comps.NewCostAttributes(edge_count)
	if err := costs.AddAttribute("length", lengths); err != nil {
		return nil, err
	}
	if err := costs.AddAttribute("time", times); err != nil {
		return nil, err
	}
	return costs, nil
}

//*******************************************
// osm handler methods
//*******************************************

func _InitWayHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, osm_nodes *Dict[int64, TempNode]) {
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			nodes := object.Nodes.NodeIDs()
			l := len(nodes)
			if l < 2 {
				continue
			}
			for i := 0; i < l; i++ {
				ndref := nodes[i].FeatureID().Ref()
				if !osm_nodes.ContainsKey(ndref) {
					(*osm_nodes)[ndref] = TempNode{geo.Coord{0, 0}, 1}
				} else {
					node := (*osm_nodes)[ndref]
					node.Count += 1
					(*osm_nodes)[ndref] = node
				}
			}
			node_a := (*osm_nodes)[nodes[0].FeatureID().Ref()]
			node_b := (*osm_nodes)[nodes[l-1].FeatureID().Ref()]
			node_a.Count += 1
			node_b.Count += 1
			(*osm_nodes)[nodes[0].FeatureID().Ref()] = node_a
			(*osm_nodes)[nodes[l-1].FeatureID().Ref()] = node_b
		default:
			continue
		}
	}
}

func _NodeHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, osm_nodes *Dict[int64, TempNode], nodes *List[OSMNode], index_mapping *Dict[int64, int]) {
	i := 0
	c := 0

	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			id := object.FeatureID().Ref()
			if !osm_nodes.ContainsKey(id) {
				continue
			}
			tags := Dict[string, string](object.TagMap())
			c += 1
			if c%100000 == 0 {
				slog.Debug(fmt.Sprintf("%v nodes read", c))
			}
			on := osm_nodes.Get(id)
			point := geo.Coord{object.Lon, object.Lat}
			if on.Count > 1 {
				node_attr := decoder.DecodeNode(tags)
				nodes.Add(OSMNode{point, node_attr})
				index_mapping.Set(id, i)
				i += 1
			}
			on.Point = point
			osm_nodes.Set(id, on)
		default:
			continue
		}
	}
}

func _WayHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, edges *List[OSMEdge], osm_nodes *Dict[int64, TempNode], index_mapping *Dict[int64, int]) {
	c := 0
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			nodes := object.Nodes.NodeIDs()
			l := len(nodes)
			if l < 2 {
				continue
			}
			c += 1
			if c%10000 == 0 {
				slog.Debug(fmt.Sprintf("%v ways read", c))
			}

			edge_att := decoder.DecodeEdge(tags)
			start := nodes[0].FeatureID().Ref()
			e := OSMEdge{}
			for i := 0; i < l; i++ {
				curr := nodes[i].FeatureID().Ref()
				on := osm_nodes.Get(curr)
				e.Nodes.Add(on.Point)
				if on.Count > 1 && curr != start {
					e.NodeA = index_mapping.Get(start)
					e.NodeB = index_mapping.Get(curr)
					e.Attr = edge_att
					edges.Add(e)
					start = curr
					e = OSMEdge{}
					e.Nodes.Add(on.Point)
				}
			}
		default:
			continue
		}
	}
}
