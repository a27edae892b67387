package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/ttpr0/go-adjacency/adjacency"
	"github.com/ttpr0/go-adjacency/geo"
	"github.com/ttpr0/go-adjacency/locate"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) (Config, error) {
	slog.Info("Reading config file " + file)
	config := DefaultConfig()
	data, err := os.ReadFile(file)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

func DefaultConfig() Config {
	config := Config{}
	config.Network.Name = "network"
	config.Network.Path = "./graphs/network"
	config.Network.Vehicle = CAR
	config.Network.Projection = geo.WEB_MERCATOR
	config.Network.SearchTolerance = locate.SEARCH_TOLERANCE
	config.Compute.IDAttribute = "id"
	config.Compute.OutputLocation = "."
	config.Compute.TableName = "adjacency.csv"
	config.Compute.ImpedanceAttribute = "length"
	config.Compute.PointsPerCell = adjacency.POINTS_PER_RASTER_CELL
	config.Compute.Workers = runtime.NumCPU()
	config.Compute.MergePolicy = adjacency.KEEP_ALL
	config.Compute.Overwrite = true
	config.Server.Address = ":5002"
	return config
}

type Config struct {
	Network NetworkOptions `yaml:"network"`
	Compute ComputeOptions `yaml:"compute"`
	Server  struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
}

type NetworkOptions struct {
	// osm extract the network is built from
	OSM string `yaml:"osm"`
	// directory of the prepared network
	Path            string             `yaml:"path"`
	Name            string             `yaml:"name"`
	Vehicle         VehicleType        `yaml:"vehicle"`
	Projection      geo.ProjectionType `yaml:"projection"`
	SearchTolerance float64            `yaml:"search-tolerance"`
	Rebuild         bool               `yaml:"rebuild"`
}

type ComputeOptions struct {
	Points           string `yaml:"points"`
	IDAttribute      string `yaml:"id-attribute"`
	OutputLocation   string `yaml:"output-location"`
	TableName        string `yaml:"table-name"`
	Overwrite        bool   `yaml:"overwrite"`
	PersistLocations bool   `yaml:"persist-locations"`

	adjacency.Options `yaml:",inline"`
}

//**********************************************************
// enums
//**********************************************************

type VehicleType byte

const (
	CAR  VehicleType = 0
	FOOT VehicleType = 1
)

func (self VehicleType) String() string {
	switch self {
	case CAR:
		return "car"
	case FOOT:
		return "foot"
	default:
		panic("unknown vehicle type")
	}
}

// Travel mode of the osm decoder.
func (self VehicleType) Mode() string {
	switch self {
	case FOOT:
		return "walking"
	default:
		return "driving"
	}
}
func (self VehicleType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *VehicleType) UnmarshalJSON(data []byte) error {
	var typ string
	err := json.Unmarshal(data, &typ)
	if err != nil {
		return err
	}
	*self, err = VehicleTypeFromString(typ)
	return err
}
func (self VehicleType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *VehicleType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := VehicleTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func VehicleTypeFromString(s string) (VehicleType, error) {
	switch s {
	case "car":
		return CAR, nil
	case "foot":
		return FOOT, nil
	default:
		return CAR, errors.New("unknown vehicle type")
	}
}
