package adjacency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ttpr0/go-adjacency/engine"
	. "github.com/ttpr0/go-adjacency/util"
	"gopkg.in/yaml.v3"
)

var ErrMalformedName = errors.New("malformed od line name")

// Relative tolerance for negative corrected distances caused by rounding of barrier shares.
const DISTANCE_TOLERANCE = 1e-9

//*******************************************
// adjacency edges
//*******************************************

type AdjacencyEdge struct {
	OriginID      string
	DestinationID string
	// network distance without barrier costs
	Distance float64
	// accumulated attributes aligned with the tables accumulator names
	Accumulated []float64
}

func FormatODName(origin_id string, destination_id string) string {
	return engine.FormatLineName(origin_id, destination_id)
}

// Splits "<origin_id> - <destination_id>" at the first separator.
func ParseODName(name string) (string, string, error) {
	origin, destination, ok := strings.Cut(name, engine.LINE_NAME_SEPARATOR)
	if !ok || origin == "" || destination == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedName, name)
	}
	return origin, destination, nil
}

// Converts the solved lines of one tile into adjacency edges.
//
// Barrier costs are removed from the distances, self-loops and co-located pairs are dropped.
func AssembleFragment(lines List[engine.ODLine]) (List[AdjacencyEdge], error) {
	fragment := NewList[AdjacencyEdge](lines.Length())
	for _, line := range lines {
		origin, destination, err := ParseODName(line.Name)
		if err != nil {
			return nil, err
		}
		if origin == destination {
			continue
		}
		distance, ok := CorrectDistance(line.Total)
		if !ok {
			continue
		}
		fragment.Add(AdjacencyEdge{
			OriginID:      origin,
			DestinationID: destination,
			Distance:      distance,
			Accumulated:   line.Accumulated,
		})
	}
	return fragment, nil
}

// Removes the origin and destination barrier costs from a raw distance.
//
// Returns false for distances that did not pass two distinct barriers.
func CorrectDistance(raw float64) (float64, bool) {
	corrected := raw - 2*BARRIER_COST
	if corrected >= 0 {
		return corrected, true
	}
	if corrected >= -BARRIER_COST*DISTANCE_TOLERANCE {
		return 0, true
	}
	return 0, false
}

//*******************************************
// merge fragments
//*******************************************

// Handling of pairs reported by more than one tile.
type MergePolicy byte

const (
	KEEP_ALL   MergePolicy = 0
	KEEP_FIRST MergePolicy = 1
	KEEP_MIN   MergePolicy = 2
)

func (self MergePolicy) String() string {
	switch self {
	case KEEP_ALL:
		return "keep-all"
	case KEEP_FIRST:
		return "keep-first"
	case KEEP_MIN:
		return "keep-min"
	default:
		panic("unknown merge policy")
	}
}
func MergePolicyFromString(policy string) (MergePolicy, error) {
	switch policy {
	case "keep-all", "":
		return KEEP_ALL, nil
	case "keep-first":
		return KEEP_FIRST, nil
	case "keep-min":
		return KEEP_MIN, nil
	default:
		return KEEP_ALL, fmt.Errorf("unknown merge policy: %s", policy)
	}
}
func (self MergePolicy) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *MergePolicy) UnmarshalYAML(value *yaml.Node) error {
	policy, err := MergePolicyFromString(value.Value)
	if err != nil {
		return err
	}
	*self = policy
	return nil
}

// Concatenates the fragments in order applying the merge policy to duplicate pairs.
func MergeFragments(fragments []List[AdjacencyEdge], policy MergePolicy) List[AdjacencyEdge] {
	count := 0
	for _, fragment := range fragments {
		count += fragment.Length()
	}
	edges := NewList[AdjacencyEdge](count)
	if policy == KEEP_ALL {
		for _, fragment := range fragments {
			edges = append(edges, fragment...)
		}
		return edges
	}
	index := NewDict[Tuple[string, string], int](count)
	for _, fragment := range fragments {
		for _, edge := range fragment {
			key := MakeTuple(edge.OriginID, edge.DestinationID)
			i, ok := index[key]
			if !ok {
				index[key] = edges.Length()
				edges.Add(edge)
				continue
			}
			if policy == KEEP_MIN && edge.Distance < edges[i].Distance {
				edges[i] = edge
			}
		}
	}
	return edges
}
