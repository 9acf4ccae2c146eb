// Package analysis scores every populated grid cell by how well it connects to
// the rail network and writes the result for the map.
package analysis

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/railaccess/pkg/accessibility"
	"github.com/travigo/railaccess/pkg/ctdf"
	"github.com/travigo/railaccess/pkg/frequency"
	"github.com/travigo/railaccess/pkg/gridid"
	"github.com/travigo/railaccess/pkg/gtfs"
	"github.com/travigo/railaccess/pkg/output"
	"github.com/travigo/railaccess/pkg/population"
	"github.com/travigo/railaccess/pkg/projection"
	"github.com/travigo/railaccess/pkg/spatial"
	"github.com/travigo/railaccess/pkg/util"
	"golang.org/x/exp/slices"
)

const scoreBatchSize = 1024

type Result struct {
	Cells    []*ctdf.PopulationCell
	Stations []*ctdf.Station

	Diagnostics Diagnostics
}

type Pipeline struct {
	Config Config

	// FrequencyCache is optional, without it the frequency table is always recomputed.
	FrequencyCache *frequency.Cache
}

// Run loads the configured inputs, scores every cell and writes the output files.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()

	transformer, err := projection.NewTransformer(p.Config.GridEPSG)
	if err != nil {
		return nil, err
	}

	records, populationRowErrors, err := population.Load(p.Config.PopulationPath)
	if err != nil {
		return nil, err
	}

	schedules := make([]*gtfs.Schedule, 0, len(p.Config.Feeds))
	for _, feed := range p.Config.Feeds {
		schedule, err := gtfs.Load(feed.Name, feed.Path)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}

	table := p.FrequencyCache.AggregateCached(ctx, gtfs.Fingerprint(schedules), func() frequency.Tables {
		return frequency.TablesFromSchedules(schedules)
	})

	result, err := Analyse(records, schedules, table, transformer, p.Config.Workers)
	if err != nil {
		return nil, err
	}
	result.Diagnostics.PopulationRowErrors = populationRowErrors
	result.Diagnostics.Log(result.Cells)

	if err := output.Write(p.Config.OutputPath, output.CellsFeatureCollection(result.Cells)); err != nil {
		return nil, fmt.Errorf("writing %s: %w", p.Config.OutputPath, err)
	}
	log.Info().Str("path", p.Config.OutputPath).Int("cells", len(result.Cells)).Msg("Wrote population cells")

	if p.Config.StationsOutputPath != "" {
		if err := output.Write(p.Config.StationsOutputPath, output.StationsFeatureCollection(result.Stations)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", p.Config.StationsOutputPath, err)
		}
		log.Info().Str("path", p.Config.StationsOutputPath).Int("stations", len(result.Stations)).Msg("Wrote stations")
	}

	log.Info().Msgf("Analysis took %s", time.Since(startTime).String())

	return result, nil
}

// Analyse is the in-memory part of the pipeline: it builds stations and cells,
// applies the frequency table, indexes the served stations and classifies
// every cell.
func Analyse(records []population.Record, schedules []*gtfs.Schedule, table frequency.Table, transformer projection.Transformer, workers int) (*Result, error) {
	result := &Result{}

	cells, cellRowErrors, err := BuildCells(records, transformer)
	if err != nil {
		return nil, err
	}
	result.Cells = cells
	result.Diagnostics.CellRowErrors = cellRowErrors

	stations, stationRowErrors := BuildStations(schedules)
	result.Stations = stations
	result.Diagnostics.StationRowErrors = stationRowErrors

	result.Diagnostics.StopsWithoutStopTimes, result.Diagnostics.MissingJoinKeys = compareStopIDs(stations, schedules)

	table.Apply(stations)

	frequencies := make([]float64, 0, len(stations))
	for _, station := range stations {
		frequencies = append(frequencies, station.AvgDailyStops)
		if !station.Served() {
			result.Diagnostics.UnservedStations += 1
		}
	}
	result.Diagnostics.Frequency = Describe(frequencies)

	index, err := spatial.NewIndex(stations)
	if err != nil {
		return nil, err
	}
	log.Info().Int("stations", index.Len()).Msg("Indexed served stations")

	ScoreCells(cells, index, workers)
	result.Diagnostics.Tiers = summariseTiers(cells)

	return result, nil
}

// BuildCells decodes and reprojects every population record. A malformed grid
// id aborts the whole build, a coordinate that cannot be reprojected only
// drops its row.
func BuildCells(records []population.Record, transformer projection.Transformer) ([]*ctdf.PopulationCell, []*CellRowError, error) {
	cells := make([]*ctdf.PopulationCell, 0, len(records))
	var rowErrors []*CellRowError

	for _, record := range records {
		coordinate, err := gridid.Decode(record.GridID)
		if err != nil {
			return nil, nil, err
		}

		point, err := transformer.ToWGS84(float64(coordinate.Easting), float64(coordinate.Northing))
		if err != nil {
			rowErrors = append(rowErrors, &CellRowError{GridID: record.GridID, Err: err})
			continue
		}

		cells = append(cells, &ctdf.PopulationCell{
			GridID:     record.GridID,
			Population: record.Population,
			Easting:    coordinate.Easting,
			Northing:   coordinate.Northing,
			Location:   ctdf.NewLocation(point),
		})
	}

	return cells, rowErrors, nil
}

// BuildStations turns every stop of every feed into a station. Stop ids are
// not merged across feeds.
func BuildStations(schedules []*gtfs.Schedule) ([]*ctdf.Station, []*StationRowError) {
	var stations []*ctdf.Station
	var rowErrors []*StationRowError

	for _, schedule := range schedules {
		datasource := &ctdf.DataSource{
			OriginalFormat: "gtfs-schedule",
			Dataset:        schedule.Name,
			Path:           schedule.Path,
		}

		for i := range schedule.Stops {
			stop := &schedule.Stops[i]

			point, err := stop.Coordinates()
			if err != nil {
				rowErrors = append(rowErrors, &StationRowError{Feed: schedule.Name, StopID: stop.NormalisedID(), Err: err})
				continue
			}

			stations = append(stations, &ctdf.Station{
				PrimaryIdentifier: stop.NormalisedID(),
				PrimaryName:       stop.Name,
				DataSource:        datasource,
				Location:          ctdf.NewLocation(point),
			})
		}
	}

	return stations, rowErrors
}

func compareStopIDs(stations []*ctdf.Station, schedules []*gtfs.Schedule) ([]string, []*MissingJoinKeyError) {
	stopIDs := map[string]bool{}
	for _, station := range stations {
		stopIDs[station.PrimaryIdentifier] = true
	}

	stopTimeIDs := map[string]bool{}
	for _, schedule := range schedules {
		for i := range schedule.StopTimes {
			stopTimeIDs[schedule.StopTimes[i].NormalisedStopID()] = true
		}
	}

	withoutStopTimes := []string{}
	for stopID := range stopIDs {
		if !stopTimeIDs[stopID] {
			withoutStopTimes = append(withoutStopTimes, stopID)
		}
	}
	slices.Sort(withoutStopTimes)

	missingIDs := []string{}
	for stopID := range stopTimeIDs {
		if !stopIDs[stopID] {
			missingIDs = append(missingIDs, stopID)
		}
	}
	slices.Sort(missingIDs)

	missing := make([]*MissingJoinKeyError, 0, len(missingIDs))
	for _, stopID := range missingIDs {
		missing = append(missing, &MissingJoinKeyError{StopID: stopID})
	}

	return withoutStopTimes, missing
}

// ScoreCells finds the nearest served station for each cell and classifies it.
// Cells are processed in batches across workers goroutines (0 = GOMAXPROCS),
// the index is only read.
func ScoreCells(cells []*ctdf.PopulationCell, index *spatial.Index, workers int) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := pool.New().WithMaxGoroutines(workers)

	for _, batch := range util.Chunk(cells, scoreBatchSize) {
		batch := batch
		p.Go(func() {
			for _, cell := range batch {
				ScoreCell(cell, index)
			}
		})
	}

	p.Wait()
}

func ScoreCell(cell *ctdf.PopulationCell, index *spatial.Index) {
	match := index.Nearest(cell.Location.Point())

	cell.DistanceKm = match.DistanceKm
	cell.StopFrequency = match.Station.AvgDailyStops
	cell.NearestStationRef = match.Station.PrimaryIdentifier
	cell.Accessibility = accessibility.Classify(cell.DistanceKm, cell.StopFrequency)
}
