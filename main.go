package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/ttpr0/go-adjacency/adjacency"
	"golang.org/x/exp/slog"
)

var (
	config_file string
	log_level   string
	points_file string
	output_file string

	rootCmd = &cobra.Command{
		Use:   "go-adjacency",
		Short: "Computes network adjacency lists of point sets",
		Long: `go-adjacency builds a road network from an osm extract and computes which
points are network neighbors of each other, together with the network distance
between them.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := slog.New(NewLogHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLogLevel(log_level)}))
			slog.SetDefault(logger)
		},
	}

	prepareCmd = &cobra.Command{
		Use:   "prepare",
		Short: "Builds the network from the configured osm file",
		RunE:  runPrepare,
	}

	computeCmd = &cobra.Command{
		Use:   "compute",
		Short: "Computes the adjacency table of a point file",
		RunE:  runCompute,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serves adjacency requests over http",
		RunE:  runServe,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&config_file, "config", "./config.yaml", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&log_level, "log-level", "info", "log level (debug, info, warn, error)")

	computeCmd.Flags().StringVar(&points_file, "points", "", "point file, overrides the configured one")
	computeCmd.Flags().StringVar(&output_file, "table", "", "table name, overrides the configured one")

	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPrepare(cmd *cobra.Command, args []string) error {
	config, err := ReadConfig(config_file)
	if err != nil {
		return err
	}
	network, err := PrepareNetwork(config.Network)
	if err != nil {
		return err
	}
	if err := StoreNetwork(network, config.Network.Path, config.Network.Name); err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("stored network %s with %v nodes and %v edges", network.Meta.Name, network.Meta.NodeCount, network.Meta.EdgeCount))
	return nil
}

func runCompute(cmd *cobra.Command, args []string) error {
	config, err := ReadConfig(config_file)
	if err != nil {
		return err
	}
	if points_file != "" {
		config.Compute.Points = points_file
	}
	if output_file != "" {
		config.Compute.TableName = output_file
	}
	manager, err := NewNetworkManager(config, nil)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	path, err := RunCompute(ctx, manager, config.Compute)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	config, err := ReadConfig(config_file)
	if err != nil {
		return err
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := adjacency.NewMetrics(registry)
	manager, err := NewNetworkManager(config, metrics)
	if err != nil {
		return err
	}

	app := http.NewServeMux()
	MapHandlers(app, manager, registry)
	server := &http.Server{Addr: config.Server.Address, Handler: app}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()
	slog.Info("listening on " + config.Server.Address)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
