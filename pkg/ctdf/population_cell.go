package ctdf

import "github.com/travigo/railaccess/pkg/accessibility"

type PopulationCell struct {
	GridID     string `groups:"basic"`
	Population int    `groups:"basic"`

	Easting  int `groups:"detailed"`
	Northing int `groups:"detailed"`

	Location *Location `groups:"basic"`

	DistanceKm        float64            `groups:"basic"`
	StopFrequency     float64            `groups:"basic"`
	NearestStationRef string             `groups:"detailed"`
	Accessibility     accessibility.Tier `groups:"basic"`
}
