package spatial

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/railaccess/pkg/ctdf"
)

func station(id string, lon float64, lat float64, avgDailyStops float64) *ctdf.Station {
	return &ctdf.Station{
		PrimaryIdentifier: id,
		Location:          ctdf.NewLocation(orb.Point{lon, lat}),
		AvgDailyStops:     avgDailyStops,
	}
}

func TestNewIndexEmpty(t *testing.T) {
	_, err := NewIndex(nil)
	assert.ErrorIs(t, err, ErrEmptyIndex)

	_, err = NewIndex([]*ctdf.Station{station("A", 13, 51, 0)})
	assert.ErrorIs(t, err, ErrEmptyIndex)
}

func TestNewIndexLayout(t *testing.T) {
	index, err := NewIndex([]*ctdf.Station{
		station("A", 13.73, 51.04, 10),
		station("B", 12.37, 51.34, 10),
		station("C", 13.40, 52.52, 10),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, index.root)
	assert.Equal(t, []node{
		{station: 2, axis: 0, left: 1, right: 2},
		{station: 1, axis: 1, left: -1, right: -1},
		{station: 0, axis: 1, left: -1, right: -1},
	}, index.nodes)
}

func TestNearestCoincident(t *testing.T) {
	index, err := NewIndex([]*ctdf.Station{
		station("A", 13.73, 51.04, 10),
		station("B", 12.37, 51.34, 10),
		station("C", 13.40, 52.52, 10),
	})
	require.NoError(t, err)

	match := index.Nearest(orb.Point{12.37, 51.34})
	assert.Equal(t, "B", match.Station.PrimaryIdentifier)
	assert.Equal(t, match.Station, index.Station(match.Index))
	assert.InDelta(t, 0.0, match.DistanceKm, 1e-9)
}

func TestNearestSkipsUnservedStations(t *testing.T) {
	index, err := NewIndex([]*ctdf.Station{
		station("unserved", 10.0, 50.0, 0),
		station("served", 10.5, 50.0, 4),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, index.Len())

	match := index.Nearest(orb.Point{10.0, 50.0})
	assert.Equal(t, "served", match.Station.PrimaryIdentifier)
	assert.InDelta(t, 0.5*KilometresPerDegree, match.DistanceKm, 1e-9)
}

func TestNearestTieBreaksOnInputOrder(t *testing.T) {
	index, err := NewIndex([]*ctdf.Station{
		station("east", 11, 50, 1),
		station("west", 9, 50, 1),
		station("north", 10, 51, 1),
	})
	require.NoError(t, err)

	match := index.Nearest(orb.Point{10, 50})
	assert.Equal(t, "east", match.Station.PrimaryIdentifier)
	assert.Equal(t, 0, match.Index)
}

func TestNearestDuplicateLocations(t *testing.T) {
	index, err := NewIndex([]*ctdf.Station{
		station("first", 10, 50, 1),
		station("second", 10, 50, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, "first", index.Nearest(orb.Point{10.1, 50.1}).Station.PrimaryIdentifier)
}

func TestNearestMatchesBruteForce(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	stations := []*ctdf.Station{}
	for i := 0; i < 500; i++ {
		stations = append(stations, station(
			fmt.Sprintf("S%d", i),
			5.8+random.Float64()*9.3,
			47.2+random.Float64()*7.9,
			float64(random.Intn(3)),
		))
	}

	index, err := NewIndex(stations)
	require.NoError(t, err)

	for q := 0; q < 200; q++ {
		point := orb.Point{5.8 + random.Float64()*9.3, 47.2 + random.Float64()*7.9}

		expected := ""
		expectedDistance := math.Inf(1)
		for _, s := range stations {
			if !s.Served() {
				continue
			}
			dx := s.Location.Coordinates[0] - point[0]
			dy := s.Location.Coordinates[1] - point[1]
			distance := math.Sqrt(dx*dx + dy*dy)
			if distance < expectedDistance {
				expected = s.PrimaryIdentifier
				expectedDistance = distance
			}
		}

		match := index.Nearest(point)
		assert.Equal(t, expected, match.Station.PrimaryIdentifier)
		assert.InDelta(t, expectedDistance*KilometresPerDegree, match.DistanceKm, 1e-9)
	}
}
