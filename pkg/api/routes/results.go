package routes

import (
	"context"
	"errors"
	"io/fs"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railaccess/pkg/ctdf"
	"github.com/travigo/railaccess/pkg/database"
	"github.com/travigo/railaccess/pkg/output"
)

// Results is the scored dataset served by the map.
type Results struct {
	Cells []*ctdf.PopulationCell

	// Stations is nil when no station layer was written.
	Stations *geojson.FeatureCollection

	cellsByID map[string]*ctdf.PopulationCell
}

func NewResults(cells []*ctdf.PopulationCell, stations *geojson.FeatureCollection) *Results {
	results := &Results{
		Cells:     cells,
		Stations:  stations,
		cellsByID: make(map[string]*ctdf.PopulationCell, len(cells)),
	}

	for _, cell := range cells {
		results.cellsByID[cell.GridID] = cell
	}

	return results
}

// LoadResults reads the GeoJSON files written by the analyse command. A
// missing stations file is not an error.
func LoadResults(cellsPath string, stationsPath string) (*Results, error) {
	cells, err := output.ReadCells(cellsPath)
	if err != nil {
		return nil, err
	}

	var stations *geojson.FeatureCollection
	if stationsPath != "" {
		stations, err = output.Read(stationsPath)
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("path", stationsPath).Msg("No station layer")
		} else if err != nil {
			return nil, err
		}
	}

	log.Info().Int("cells", len(cells)).Str("path", cellsPath).Msg("Loaded results")

	return NewResults(cells, stations), nil
}

// LoadResultsFromDatabase reads the cells stored by a previous run instead of
// the GeoJSON file.
func LoadResultsFromDatabase(ctx context.Context) (*Results, error) {
	cells, err := database.LoadCells(ctx, nil)
	if err != nil {
		return nil, err
	}

	log.Info().Int("cells", len(cells)).Msg("Loaded results from database")

	return NewResults(cells, nil), nil
}

func (r *Results) Cell(gridID string) *ctdf.PopulationCell {
	return r.cellsByID[gridID]
}
