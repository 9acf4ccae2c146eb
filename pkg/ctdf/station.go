package ctdf

type Station struct {
	PrimaryIdentifier string `groups:"basic"`
	PrimaryName       string `groups:"basic"`

	DataSource *DataSource `groups:"internal"`

	Location *Location `groups:"basic"`

	AvgDailyStops float64 `groups:"basic"`
}

// Served stations have at least some scheduled stops, only those are
// candidates for the nearest station lookup.
func (s *Station) Served() bool {
	return s.AvgDailyStops > 0
}
