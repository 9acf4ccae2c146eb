// Package frequency derives how often trains call at each stop from the
// calendars, trips and stop times of one or more schedule feeds.
package frequency

import (
	"math"

	"github.com/travigo/railaccess/pkg/ctdf"
	"github.com/travigo/railaccess/pkg/gtfs"
)

const daysPerWeek = 7

// Tables is the union of the schedule tables of every feed, in feed order.
type Tables struct {
	StopTimes []gtfs.StopTime
	Trips     []gtfs.Trip
	Calendars []gtfs.Calendar
}

func TablesFromSchedules(schedules []*gtfs.Schedule) Tables {
	tables := Tables{}

	for _, schedule := range schedules {
		tables.StopTimes = append(tables.StopTimes, schedule.StopTimes...)
		tables.Trips = append(tables.Trips, schedule.Trips...)
		tables.Calendars = append(tables.Calendars, schedule.Calendars...)
	}

	return tables
}

// Table maps a stop id to its average number of stop events per day.
type Table map[string]float64

// AvgDailyStops returns 0 for stops with no stop events.
func (t Table) AvgDailyStops(stopID string) float64 {
	return t[stopID]
}

// Apply sets AvgDailyStops on every station, stations missing from the table get 0.
func (t Table) Apply(stations []*ctdf.Station) {
	for _, station := range stations {
		station.AvgDailyStops = t.AvgDailyStops(station.PrimaryIdentifier)
	}
}

type stopEventKey struct {
	tripID      string
	stopID      string
	arrivalTime string
}

// Aggregate weights every distinct stop event by the number of weekdays its
// trip's service runs and averages the weekly total over seven days.
//
// Trips without a calendar and stop events without a trip contribute 0.
// When a service or trip id is repeated across feeds the first row wins.
func Aggregate(tables Tables) Table {
	serviceActiveDays := map[string]int{}
	for i := range tables.Calendars {
		calendar := &tables.Calendars[i]
		if _, exists := serviceActiveDays[calendar.ServiceID]; exists {
			continue
		}
		serviceActiveDays[calendar.ServiceID] = calendar.ActiveDaysPerWeek()
	}

	tripActiveDays := map[string]int{}
	for _, trip := range tables.Trips {
		if _, exists := tripActiveDays[trip.ID]; exists {
			continue
		}
		tripActiveDays[trip.ID] = serviceActiveDays[trip.ServiceID]
	}

	weeklyStops := map[string]int{}
	seen := make(map[stopEventKey]struct{}, len(tables.StopTimes))

	for i := range tables.StopTimes {
		stopTime := &tables.StopTimes[i]
		stopID := stopTime.NormalisedStopID()

		key := stopEventKey{
			tripID:      stopTime.TripID,
			stopID:      stopID,
			arrivalTime: stopTime.ArrivalTime,
		}
		if _, duplicate := seen[key]; duplicate {
			continue
		}
		seen[key] = struct{}{}

		weeklyStops[stopID] += tripActiveDays[stopTime.TripID]
	}

	table := make(Table, len(weeklyStops))
	for stopID, weekly := range weeklyStops {
		table[stopID] = roundTo(float64(weekly)/daysPerWeek, 2)
	}

	return table
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
