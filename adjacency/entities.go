package adjacency

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ttpr0/go-adjacency/engine"
	"github.com/ttpr0/go-adjacency/geo"
	"github.com/ttpr0/go-adjacency/locate"
	. "github.com/ttpr0/go-adjacency/util"
	"golang.org/x/exp/slog"
)

var ErrInvalidInput = errors.New("invalid input")

//*******************************************
// point entities
//*******************************************

type PointEntity struct {
	// Caller supplied identifier, co-located entities may share it.
	ID          string
	Point       geo.Coord
	Location    locate.NetworkLocation
	BarrierCost float64
}

// Snapped location if the entity has been located, its input point otherwise.
func (self *PointEntity) Position() geo.Coord {
	if self.Location.Valid {
		return self.Location.Snap
	}
	return self.Point
}

func _ValidateEntities(entities List[PointEntity]) error {
	for _, entity := range entities {
		if entity.ID == "" {
			return fmt.Errorf("%w: entity without id", ErrInvalidInput)
		}
		if strings.Contains(entity.ID, engine.LINE_NAME_SEPARATOR) {
			return fmt.Errorf("%w: id %q contains the separator %q", ErrInvalidInput, entity.ID, engine.LINE_NAME_SEPARATOR)
		}
	}
	return nil
}

//*******************************************
// network locations
//*******************************************

type ILocationResolver interface {
	Locate(point geo.Coord) locate.NetworkLocation
}

// Snaps every entity onto the network.
//
// Skipped if all entities already carry a location. Returns false if the step was skipped.
func CalculateLocations(entities List[PointEntity], resolver ILocationResolver) bool {
	located := 0
	for _, entity := range entities {
		if entity.Location.Valid {
			located += 1
		}
	}
	if located == entities.Length() {
		slog.Info("network locations already calculated, skipping")
		return false
	}
	slog.Info("calculating network locations")
	invalid := 0
	for i := range entities {
		entity := &entities[i]
		if entity.Location.Valid {
			continue
		}
		entity.Location = resolver.Locate(entity.Point)
		if !entity.Location.Valid {
			invalid += 1
		}
	}
	if invalid > 0 {
		slog.Warn(fmt.Sprintf("%v entities could not be located on the network", invalid))
	}
	slog.Info("finished calculating network locations")
	return true
}

//*******************************************
// load and store points
//*******************************************

type _PointRow struct {
	ID          string  `csv:"id"`
	X           float64 `csv:"x"`
	Y           float64 `csv:"y"`
	Located     bool    `csv:"located"`
	EdgeID      int32   `csv:"edge_id"`
	PosAlong    float64 `csv:"pos_along"`
	SnapX       float64 `csv:"snap_x"`
	SnapY       float64 `csv:"snap_y"`
	BarrierCost float64 `csv:"barrier_cost"`
}

const CSV_DELIMITER = ';'

// Loads point entities from a csv or geojson file.
//
// Csv coordinates are expected in network coordinates, geojson points are projected with proj.
func LoadPoints(file string, id_attribute string, proj geo.IProjection) (List[PointEntity], error) {
	if id_attribute == "" {
		id_attribute = "id"
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".csv":
		return _LoadCSVPoints(file, id_attribute)
	case ".geojson", ".json":
		features, err := geo.ReadGeoJSONPoints(file, id_attribute)
		if err != nil {
			return nil, err
		}
		entities := NewList[PointEntity](len(features))
		for _, feature := range features {
			entities.Add(PointEntity{
				ID:       feature.ID,
				Point:    proj.Proj(feature.Coord),
				Location: locate.InvalidLocation(),
			})
		}
		return entities, nil
	default:
		return nil, fmt.Errorf("%w: unsupported point file %s", ErrInvalidInput, file)
	}
}

func _LoadCSVPoints(file string, id_attribute string) (List[PointEntity], error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := ReadCSVAs[_PointRow](f, CSV_DELIMITER, Dict[string, string]{"id": id_attribute})
	if err != nil {
		return nil, fmt.Errorf("failed to read points %s: %w", file, err)
	}
	entities := NewList[PointEntity](rows.Length())
	for _, row := range rows {
		entity := PointEntity{
			ID:          row.ID,
			Point:       geo.Coord{row.X, row.Y},
			Location:    locate.InvalidLocation(),
			BarrierCost: row.BarrierCost,
		}
		if row.Located {
			entity.Location = locate.NetworkLocation{
				EdgeID: row.EdgeID,
				Pos:    row.PosAlong,
				Snap:   geo.Coord{row.SnapX, row.SnapY},
				Offset: geo.Distance(entity.Point, geo.Coord{row.SnapX, row.SnapY}),
				Valid:  true,
			}
		}
		entities.Add(entity)
	}
	return entities, nil
}

// Writes the entities including their network locations and barrier costs.
func StorePoints(file string, entities List[PointEntity]) error {
	rows := NewList[_PointRow](entities.Length())
	for _, entity := range entities {
		row := _PointRow{
			ID:          entity.ID,
			X:           entity.Point[0],
			Y:           entity.Point[1],
			Located:     entity.Location.Valid,
			EdgeID:      -1,
			BarrierCost: entity.BarrierCost,
		}
		if entity.Location.Valid {
			row.EdgeID = entity.Location.EdgeID
			row.PosAlong = entity.Location.Pos
			row.SnapX = entity.Location.Snap[0]
			row.SnapY = entity.Location.Snap[1]
		}
		rows.Add(row)
	}
	return WriteCSVToFile(file, rows, CSV_DELIMITER)
}
