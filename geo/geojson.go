package geo

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

//*******************************************
// geojson points
//*******************************************

type PointFeature struct {
	ID         string
	Coord      Coord
	Properties map[string]any
}

// Reads all point features of a FeatureCollection.
//
// id_attribute names the property used as identifier, features lacking it or not being
// points are returned as error.
func ReadGeoJSONPoints(file string, id_attribute string) ([]PointFeature, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	points := make([]PointFeature, 0, len(fc.Features))
	for i, feature := range fc.Features {
		point, ok := feature.Geometry.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("feature %d of %s is not a point", i, file)
		}
		value, ok := feature.Properties[id_attribute]
		if !ok {
			return nil, fmt.Errorf("feature %d of %s has no attribute %q", i, file, id_attribute)
		}
		points = append(points, PointFeature{
			ID:         _FormatID(value),
			Coord:      Coord(point),
			Properties: feature.Properties,
		})
	}
	return points, nil
}

// Writes the points as FeatureCollection, properties are copied as they are.
func WriteGeoJSONPoints(file string, points []PointFeature) error {
	fc := geojson.NewFeatureCollection()
	for _, p := range points {
		feature := geojson.NewFeature(orb.Point(p.Coord))
		for k, v := range p.Properties {
			feature.Properties[k] = v
		}
		fc.Append(feature)
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

func _FormatID(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprint(v)
	}
}
