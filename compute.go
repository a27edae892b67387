package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ttpr0/go-adjacency/adjacency"
	"golang.org/x/exp/slog"
)

// Computes the adjacency table of the configured point file and writes it to the output location.
//
// Returns the path of the written table.
func RunCompute(ctx context.Context, manager *NetworkManager, options ComputeOptions) (string, error) {
	if options.Points == "" {
		return "", errors.New("no point file configured")
	}
	if options.TableName == "" {
		return "", errors.New("no table name configured")
	}
	table_path := filepath.Join(options.OutputLocation, options.TableName)
	if options.Overwrite {
		if err := adjacency.RemoveStaleOutputs(options.OutputLocation, options.TableName); err != nil {
			return "", err
		}
	} else if FileExists(table_path) {
		return "", fmt.Errorf("output table %s already exists", table_path)
	}

	start := time.Now()
	entities, err := adjacency.LoadPoints(options.Points, options.IDAttribute, manager.GetProjection())
	if err != nil {
		return "", err
	}
	slog.Info(fmt.Sprintf("loaded %v points from %s", entities.Length(), options.Points))

	table, err := manager.Compute(ctx, entities, options.Options)
	if err != nil {
		return "", err
	}
	path, err := adjacency.WriteTable(table, options.OutputLocation, options.TableName)
	if err != nil {
		return "", err
	}
	if options.PersistLocations {
		located := LocatedPointsFile(options.Points)
		if err := adjacency.StorePoints(located, entities); err != nil {
			return "", fmt.Errorf("failed to persist locations: %w", err)
		}
		slog.Info(fmt.Sprintf("persisted network locations to %s", located))
	}
	slog.Info(fmt.Sprintf("adjacency computed in %v", time.Since(start)))
	return path, nil
}
