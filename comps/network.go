package comps

import (
	"encoding/json"
	"errors"
	"fmt"

	. "github.com/ttpr0/go-adjacency/util"
)

//*******************************************
// network sources
//*******************************************

type SourceType byte

const (
	EDGE_SOURCE     SourceType = 0
	JUNCTION_SOURCE SourceType = 1
	TURN_SOURCE     SourceType = 2
)

func (self SourceType) String() string {
	switch self {
	case EDGE_SOURCE:
		return "edge"
	case JUNCTION_SOURCE:
		return "junction"
	case TURN_SOURCE:
		return "turn"
	default:
		panic("unknown source type")
	}
}
func (self SourceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *SourceType) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	switch typ {
	case "edge":
		*self = EDGE_SOURCE
	case "junction":
		*self = JUNCTION_SOURCE
	case "turn":
		*self = TURN_SOURCE
	default:
		return errors.New("unknown source type")
	}
	return nil
}

// A feature source the network was built from.
type NetworkSource struct {
	Name string     `json:"name"`
	Type SourceType `json:"type"`
}

// Description of a prepared network stored next to its components.
type NetworkMeta struct {
	Name           string          `json:"name"`
	Sources        []NetworkSource `json:"sources"`
	CostAttributes []string        `json:"cost_attributes"`
	Projection     string          `json:"projection"`
	NodeCount      int             `json:"node_count"`
	EdgeCount      int             `json:"edge_count"`
}

// Returns the names of the first edge and junction sources.
func (self *NetworkMeta) GetSources() (Optional[string], Optional[string]) {
	edge_source := None[string]()
	junction_source := None[string]()
	for _, source := range self.Sources {
		if source.Type == EDGE_SOURCE && !edge_source.HasValue() {
			edge_source = Some(source.Name)
		} else if source.Type == JUNCTION_SOURCE && !junction_source.HasValue() {
			junction_source = Some(source.Name)
		}
	}
	return edge_source, junction_source
}

func (self *NetworkMeta) _Store(path string) error {
	return WriteJSONToFile(self, path+"-meta")
}

func LoadNetworkMeta(path string) (*NetworkMeta, error) {
	meta, err := ReadJSONFromFile[NetworkMeta](path + "-meta")
	if err != nil {
		return nil, fmt.Errorf("failed to load network meta: %w", err)
	}
	return &meta, nil
}
