package main

import (
	"github.com/ttpr0/go-adjacency/adjacency"
	"github.com/ttpr0/go-adjacency/comps"
	"github.com/ttpr0/go-adjacency/locate"
)

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}

type AdjacencyResponse struct {
	RunID     string                    `json:"run_id"`
	Located   int                       `json:"located"`
	Unlocated []string                  `json:"unlocated"`
	Table     *adjacency.AdjacencyTable `json:"table"`
}

func NewAdjacencyResponse(run_id string, entities []adjacency.PointEntity, table *adjacency.AdjacencyTable) AdjacencyResponse {
	located := 0
	unlocated := make([]string, 0)
	for _, entity := range entities {
		if entity.Location.Valid {
			located += 1
		} else {
			unlocated = append(unlocated, entity.ID)
		}
	}
	return AdjacencyResponse{
		RunID:     run_id,
		Located:   located,
		Unlocated: unlocated,
		Table:     table,
	}
}

type NetworkResponse struct {
	Meta *comps.NetworkMeta `json:"meta"`
}

type LocateResponse struct {
	Location    locate.NetworkLocation `json:"location"`
	ClosestNode int32                  `json:"closest_node"`
}
