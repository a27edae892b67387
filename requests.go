package main

import (
	"github.com/ttpr0/go-adjacency/geo"
)

type AdjacencyRequest struct {
	// *************************************
	// points
	// *************************************
	Points []PointParams `json:"points"`

	// Coordinates are given in network coordinates instead of lon/lat.
	Projected bool `json:"projected"`

	// *************************************
	// solver params
	// *************************************
	ImpedanceAttribute string `json:"impedance_attribute"`

	AccumulatorAttributes []string `json:"accumulator_attributes"`

	SearchRadius float64 `json:"search_radius"`

	MaxNeighborSeparation float64 `json:"max_neighbor_separation"`

	MergePolicy string `json:"merge_policy"`
}

type PointParams struct {
	ID    string    `json:"id"`
	Coord geo.Coord `json:"coord"`
}

type LocateRequest struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Projected bool    `json:"projected"`
}
