package ctdf

import "github.com/paulmach/orb"

// Location is a GeoJSON style point, coordinates are [longitude, latitude].
type Location struct {
	Type        string    `json:"-" groups:"basic"`
	Coordinates []float64 `json:"coordinates" groups:"basic"`
}

func NewLocation(point orb.Point) *Location {
	return &Location{
		Type:        "Point",
		Coordinates: []float64{point.Lon(), point.Lat()},
	}
}

func (l *Location) Point() orb.Point {
	if l == nil || len(l.Coordinates) < 2 {
		return orb.Point{}
	}
	return orb.Point{l.Coordinates[0], l.Coordinates[1]}
}
