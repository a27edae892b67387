package comps

import (
	"errors"
	"fmt"
	"sort"

	. "github.com/ttpr0/go-adjacency/util"
)

var ErrUnknownAttribute = errors.New("unknown cost attribute")

//*******************************************
// weighting interface
//*******************************************

type IWeighting interface {
	GetEdgeWeight(edge int32) float64
}

//*******************************************
// named edge cost attributes
//*******************************************

// Per edge cost values by attribute name (e.g. "length", "time").
type CostAttributes struct {
	edge_count int
	attributes Dict[string, Array[float64]]
}

func NewCostAttributes(edge_count int) *CostAttributes {
	return &CostAttributes{
		edge_count: edge_count,
		attributes: NewDict[string, Array[float64]](4),
	}
}

func (self *CostAttributes) EdgeCount() int {
	return self.edge_count
}

func (self *CostAttributes) AddAttribute(name string, values Array[float64]) error {
	if values.Length() != self.edge_count {
		return fmt.Errorf("attribute %s has %d values for %d edges", name, values.Length(), self.edge_count)
	}
	self.attributes[name] = values
	return nil
}

func (self *CostAttributes) HasAttribute(name string) bool {
	return self.attributes.ContainsKey(name)
}

// Sorted attribute names.
func (self *CostAttributes) Names() List[string] {
	names := self.attributes.Keys()
	sort.Strings(names)
	return names
}

func (self *CostAttributes) GetWeighting(name string) (*AttributeWeighting, error) {
	values, ok := self.attributes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAttribute, name)
	}
	return &AttributeWeighting{name: name, edge_weights: values}, nil
}

func (self *CostAttributes) RemoveEdges(edges List[int32]) {
	remove := NewArray[bool](self.edge_count)
	for _, e := range edges {
		remove[e] = true
	}
	for name, values := range self.attributes {
		new_values := NewList[float64](self.edge_count)
		for i, v := range values {
			if remove[i] {
				continue
			}
			new_values.Add(v)
		}
		self.attributes[name] = Array[float64](new_values)
	}
	self.edge_count -= edges.Length()
}

func (self *CostAttributes) _Store(path string) error {
	for name, values := range self.attributes {
		if err := WriteArrayToFile(values, path+"-cost-"+name); err != nil {
			return err
		}
	}
	return nil
}

func LoadCostAttributes(path string, names []string, edge_count int) (*CostAttributes, error) {
	costs := NewCostAttributes(edge_count)
	for _, name := range names {
		values, err := ReadArrayFromFile[float64](path + "-cost-" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to load cost attribute %s: %w", name, err)
		}
		if err := costs.AddAttribute(name, values); err != nil {
			return nil, err
		}
	}
	return costs, nil
}

//*******************************************
// attribute weighting
//*******************************************

type AttributeWeighting struct {
	name         string
	edge_weights Array[float64]
}

func (self *AttributeWeighting) Name() string {
	return self.name
}
func (self *AttributeWeighting) GetEdgeWeight(edge int32) float64 {
	return self.edge_weights[edge]
}

//*******************************************
// equal weighting
//*******************************************

type EqualWeighting struct{}

func NewEqualWeighting() *EqualWeighting {
	return &EqualWeighting{}
}

func (self *EqualWeighting) GetEdgeWeight(edge int32) float64 {
	return 1
}
