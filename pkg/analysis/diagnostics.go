package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railaccess/pkg/accessibility"
	"github.com/travigo/railaccess/pkg/ctdf"
	"github.com/travigo/railaccess/pkg/population"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const sampleSize = 20

// MissingJoinKeyError marks a stop id that has stop events but no entry in
// any stops table. Those events cannot be placed on the map.
type MissingJoinKeyError struct {
	StopID string
}

func (e *MissingJoinKeyError) Error() string {
	return fmt.Sprintf("stop %s appears in stop_times but not in stops", e.StopID)
}

type StationRowError struct {
	Feed   string
	StopID string
	Err    error
}

func (e *StationRowError) Error() string {
	return fmt.Sprintf("feed %s stop %s: %s", e.Feed, e.StopID, e.Err)
}

func (e *StationRowError) Unwrap() error {
	return e.Err
}

type CellRowError struct {
	GridID string
	Err    error
}

func (e *CellRowError) Error() string {
	return fmt.Sprintf("cell %s: %s", e.GridID, e.Err)
}

func (e *CellRowError) Unwrap() error {
	return e.Err
}

// FrequencySummary mirrors a pandas describe() of the station frequencies.
type FrequencySummary struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

type TierSummary struct {
	Cells      int
	Population int
}

type Diagnostics struct {
	PopulationRowErrors []*population.RowError
	CellRowErrors       []*CellRowError
	StationRowErrors    []*StationRowError

	// Stop ids listed in stops but never visited by a stop event.
	StopsWithoutStopTimes []string
	MissingJoinKeys       []*MissingJoinKeyError

	Frequency        FrequencySummary
	UnservedStations int

	Tiers map[accessibility.Tier]TierSummary
}

func (d *Diagnostics) RejectedRows() int {
	return len(d.PopulationRowErrors) + len(d.CellRowErrors) + len(d.StationRowErrors)
}

func Describe(values []float64) FrequencySummary {
	if len(values) == 0 {
		return FrequencySummary{}
	}

	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)

	summary := FrequencySummary{
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Min:    floats.Min(sorted),
		Q25:    quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q75:    quantile(sorted, 0.75),
		Max:    floats.Max(sorted),
	}
	if len(sorted) > 1 {
		summary.Std = stat.StdDev(sorted, nil)
	}

	return summary
}

// quantile interpolates linearly between closest ranks, sorted must be ascending.
func quantile(sorted []float64, p float64) float64 {
	position := p * float64(len(sorted)-1)
	lower := int(math.Floor(position))
	upper := int(math.Ceil(position))

	fraction := position - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*fraction
}

func summariseTiers(cells []*ctdf.PopulationCell) map[accessibility.Tier]TierSummary {
	tiers := map[accessibility.Tier]TierSummary{}
	for _, tier := range accessibility.Tiers() {
		tiers[tier] = TierSummary{}
	}

	for _, cell := range cells {
		summary := tiers[cell.Accessibility]
		summary.Cells += 1
		summary.Population += cell.Population
		tiers[cell.Accessibility] = summary
	}

	return tiers
}

func (d *Diagnostics) Log(cells []*ctdf.PopulationCell) {
	if len(d.StopsWithoutStopTimes) > 0 {
		log.Warn().
			Int("count", len(d.StopsWithoutStopTimes)).
			Strs("stop_ids", d.StopsWithoutStopTimes).
			Msg("Stops missing from stop_times")
	}

	for _, missing := range d.MissingJoinKeys {
		log.Debug().Str("stop_id", missing.StopID).Msg(missing.Error())
	}
	if len(d.MissingJoinKeys) > 0 {
		log.Warn().Int("count", len(d.MissingJoinKeys)).Msg("Stop times reference unknown stops")
	}

	for _, rowError := range d.PopulationRowErrors {
		log.Debug().Err(rowError).Msg("Rejected population row")
	}
	for _, rowError := range d.CellRowErrors {
		log.Debug().Err(rowError).Msg("Rejected population cell")
	}
	for _, rowError := range d.StationRowErrors {
		log.Debug().Err(rowError).Msg("Rejected station")
	}
	if d.RejectedRows() > 0 {
		log.Warn().
			Int("population", len(d.PopulationRowErrors)).
			Int("cells", len(d.CellRowErrors)).
			Int("stations", len(d.StationRowErrors)).
			Msg("Rejected malformed rows")
	}

	log.Info().
		Int("count", d.Frequency.Count).
		Float64("mean", d.Frequency.Mean).
		Float64("std", d.Frequency.Std).
		Float64("min", d.Frequency.Min).
		Float64("25%", d.Frequency.Q25).
		Float64("50%", d.Frequency.Median).
		Float64("75%", d.Frequency.Q75).
		Float64("max", d.Frequency.Max).
		Int("unserved", d.UnservedStations).
		Msg("Station stop frequency distribution")

	sample := cells
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	log.Debug().Msgf("Sample cells %s", pretty.Sprint(sample))

	for _, tier := range accessibility.Tiers() {
		log.Info().
			Str("tier", tier.String()).
			Int("cells", d.Tiers[tier].Cells).
			Int("population", d.Tiers[tier].Population).
			Msg("Accessibility")
	}
}
