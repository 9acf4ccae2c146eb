package gtfs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type Stop struct {
	ID           string `csv:"stop_id"`
	Code         string `csv:"stop_code"`
	Name         string `csv:"stop_name"`
	Latitude     string `csv:"stop_lat"`
	Longitude    string `csv:"stop_lon"`
	Type         string `csv:"location_type"`
	Parent       string `csv:"parent_station"`
	PlatformCode string `csv:"platform_code"`
}

// NormalisedID is the stop id with surrounding whitespace removed, stop ids
// are compared in this form across every table.
func (s *Stop) NormalisedID() string {
	return strings.TrimSpace(s.ID)
}

func (s *Stop) Coordinates() (orb.Point, error) {
	latitude, err := strconv.ParseFloat(strings.TrimSpace(s.Latitude), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("stop_lat %q: %w", s.Latitude, err)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(s.Longitude), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("stop_lon %q: %w", s.Longitude, err)
	}

	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return orb.Point{}, fmt.Errorf("coordinates %f,%f out of range", latitude, longitude)
	}

	return orb.Point{longitude, latitude}, nil
}

type Trip struct {
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	ID        string `csv:"trip_id"`
	Headsign  string `csv:"trip_headsign"`
}

type StopTime struct {
	TripID        string `csv:"trip_id"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	StopID        string `csv:"stop_id"`
	StopSequence  string `csv:"stop_sequence"`
}

func (s *StopTime) NormalisedStopID() string {
	return strings.TrimSpace(s.StopID)
}

type Calendar struct {
	ServiceID string `csv:"service_id"`
	Monday    int    `csv:"monday"`
	Tuesday   int    `csv:"tuesday"`
	Wednesday int    `csv:"wednesday"`
	Thursday  int    `csv:"thursday"`
	Friday    int    `csv:"friday"`
	Saturday  int    `csv:"saturday"`
	Sunday    int    `csv:"sunday"`
	Start     string `csv:"start_date"`
	End       string `csv:"end_date"`
}

func (c *Calendar) flags() []int {
	return []int{c.Monday, c.Tuesday, c.Wednesday, c.Thursday, c.Friday, c.Saturday, c.Sunday}
}

func (c *Calendar) GetRunningDays() []string {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	days := []string{}

	for i, flag := range c.flags() {
		if flag == 1 {
			days = append(days, names[i])
		}
	}

	return days
}

// ActiveDaysPerWeek counts the weekdays the service runs on (0-7).
func (c *Calendar) ActiveDaysPerWeek() int {
	return len(c.GetRunningDays())
}
