package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ttpr0/go-adjacency/adjacency"
	"github.com/ttpr0/go-adjacency/engine"
	"github.com/ttpr0/go-adjacency/geo"
	"github.com/ttpr0/go-adjacency/locate"
	. "github.com/ttpr0/go-adjacency/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// http handlers
//*******************************************

func MapHandlers(app *http.ServeMux, manager *NetworkManager, registry *prometheus.Registry) {
	MapPost(app, "/v0/adjacency", func(ctx context.Context, req AdjacencyRequest) Result {
		return HandleAdjacencyRequest(ctx, manager, req)
	})
	MapGet(app, "/v0/network", func(none) Result {
		return OK(NetworkResponse{Meta: manager.GetMeta()})
	})
	MapGet(app, "/v0/locate", func(req LocateRequest) Result {
		return HandleLocateRequest(manager, req)
	})
	app.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
}

func HandleAdjacencyRequest(ctx context.Context, manager *NetworkManager, req AdjacencyRequest) Result {
	if len(req.Points) == 0 {
		return BadRequest("no points given")
	}
	options, err := _RequestOptions(manager.GetConfig().Compute.Options, req)
	if err != nil {
		return BadRequest(err.Error())
	}
	proj := manager.GetProjection()
	entities := NewList[adjacency.PointEntity](len(req.Points))
	for _, point := range req.Points {
		coord := point.Coord
		if !req.Projected {
			coord = proj.Proj(coord)
		}
		// barrier costs are always assigned from the co-located points
		entities.Add(adjacency.PointEntity{
			ID:       point.ID,
			Point:    coord,
			Location: locate.InvalidLocation(),
		})
	}

	table, err := manager.Compute(ctx, entities, options)
	if err != nil {
		slog.Error(fmt.Sprintf("adjacency run %s failed: %v", options.RunID, err))
		if errors.Is(err, adjacency.ErrInvalidInput) || errors.Is(err, engine.ErrUnknownAttribute) {
			return BadRequest(err.Error())
		}
		return InternalError(err.Error())
	}
	return OK(NewAdjacencyResponse(options.RunID, entities, table))
}

// Request params override the configured options.
func _RequestOptions(options adjacency.Options, req AdjacencyRequest) (adjacency.Options, error) {
	if req.ImpedanceAttribute != "" {
		options.ImpedanceAttribute = req.ImpedanceAttribute
	}
	if req.AccumulatorAttributes != nil {
		options.AccumulatorAttributes = req.AccumulatorAttributes
	}
	if req.SearchRadius != 0 {
		options.SearchRadius = req.SearchRadius
	}
	if req.MaxNeighborSeparation != 0 {
		options.MaxNeighborSeparation = req.MaxNeighborSeparation
	}
	if req.MergePolicy != "" {
		policy, err := adjacency.MergePolicyFromString(req.MergePolicy)
		if err != nil {
			return options, err
		}
		options.MergePolicy = policy
	}
	options.RunID = uuid.NewString()
	return options, nil
}

func HandleLocateRequest(manager *NetworkManager, req LocateRequest) Result {
	point := geo.Coord{req.X, req.Y}
	if !req.Projected {
		point = manager.GetProjection().Proj(point)
	}
	location, node := manager.Locate(point)
	return OK(LocateResponse{
		Location:    location,
		ClosestNode: node,
	})
}
