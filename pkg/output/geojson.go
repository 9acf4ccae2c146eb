// Package output writes analysis results as GeoJSON feature collections and
// reads them back for the map.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/travigo/railaccess/pkg/accessibility"
	"github.com/travigo/railaccess/pkg/ctdf"
	"github.com/travigo/railaccess/pkg/gridid"
)

const (
	PropertyGridID         = "grid_id"
	PropertyPopulation     = "population"
	PropertyDistanceKm     = "distance_km"
	PropertyStopFrequency  = "stop_frequency"
	PropertyAccessibility  = "accessibility"
	PropertyNearestStation = "nearest_station"

	PropertyStopID        = "stop_id"
	PropertyStopName      = "stop_name"
	PropertyFeed          = "feed"
	PropertyAvgDailyStops = "avg_daily_stops"
)

func CellsFeatureCollection(cells []*ctdf.PopulationCell) *geojson.FeatureCollection {
	collection := geojson.NewFeatureCollection()

	for _, cell := range cells {
		feature := geojson.NewFeature(cell.Location.Point())
		feature.Properties[PropertyGridID] = cell.GridID
		feature.Properties[PropertyPopulation] = cell.Population
		feature.Properties[PropertyDistanceKm] = cell.DistanceKm
		feature.Properties[PropertyStopFrequency] = cell.StopFrequency
		feature.Properties[PropertyAccessibility] = cell.Accessibility.String()
		feature.Properties[PropertyNearestStation] = cell.NearestStationRef

		collection.Append(feature)
	}

	return collection
}

func StationsFeatureCollection(stations []*ctdf.Station) *geojson.FeatureCollection {
	collection := geojson.NewFeatureCollection()

	for _, station := range stations {
		feature := geojson.NewFeature(station.Location.Point())
		feature.Properties[PropertyStopID] = station.PrimaryIdentifier
		feature.Properties[PropertyStopName] = station.PrimaryName
		feature.Properties[PropertyAvgDailyStops] = station.AvgDailyStops
		if station.DataSource != nil {
			feature.Properties[PropertyFeed] = station.DataSource.Dataset
		}

		collection.Append(feature)
	}

	return collection
}

// Write replaces path with the encoded collection, going through a temporary
// file in the same directory so readers never see a partial file.
func Write(path string, collection *geojson.FeatureCollection) error {
	encoded, err := collection.MarshalJSON()
	if err != nil {
		return err
	}

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return err
	}

	tempFile, err := os.CreateTemp(directory, ".railaccess-*.geojson")
	if err != nil {
		return err
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(encoded); err != nil {
		tempFile.Close()
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}

	return os.Rename(tempFile.Name(), path)
}

func Read(path string) (*geojson.FeatureCollection, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return geojson.UnmarshalFeatureCollection(contents)
}

// ReadCells decodes a collection written by CellsFeatureCollection.
func ReadCells(path string) ([]*ctdf.PopulationCell, error) {
	collection, err := Read(path)
	if err != nil {
		return nil, err
	}

	cells := make([]*ctdf.PopulationCell, 0, len(collection.Features))
	for i, feature := range collection.Features {
		point, ok := feature.Geometry.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("feature %d: geometry is %s, expected Point", i, feature.Geometry.GeoJSONType())
		}

		tier, err := accessibility.ParseTier(feature.Properties.MustString(PropertyAccessibility, ""))
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}

		cell := &ctdf.PopulationCell{
			GridID:            feature.Properties.MustString(PropertyGridID, ""),
			Population:        feature.Properties.MustInt(PropertyPopulation, 0),
			Location:          ctdf.NewLocation(point),
			DistanceKm:        feature.Properties.MustFloat64(PropertyDistanceKm, 0),
			StopFrequency:     feature.Properties.MustFloat64(PropertyStopFrequency, 0),
			NearestStationRef: feature.Properties.MustString(PropertyNearestStation, ""),
			Accessibility:     tier,
		}
		if coordinate, err := gridid.Decode(cell.GridID); err == nil {
			cell.Easting = coordinate.Easting
			cell.Northing = coordinate.Northing
		}

		cells = append(cells, cell)
	}

	return cells, nil
}
