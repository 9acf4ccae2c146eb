package indexer

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/railaccess/pkg/accessibility"
	"github.com/travigo/railaccess/pkg/ctdf"
)

func TestNewCellDocument(t *testing.T) {
	cell := &ctdf.PopulationCell{
		GridID:            "CRS3035RES1000mN2684000E4334000",
		Population:        120,
		Easting:           4334000,
		Northing:          2684000,
		Location:          ctdf.NewLocation(orb.Point{13.73, 51.05}),
		DistanceKm:        6.5,
		StopFrequency:     40,
		NearestStationRef: "8010085",
		Accessibility:     accessibility.TierGood,
	}

	document, err := newCellDocument(cell)
	require.NoError(t, err)

	assert.Equal(t, &cellDocument{
		GridID:            "CRS3035RES1000mN2684000E4334000",
		Population:        120,
		Easting:           4334000,
		Northing:          2684000,
		DistanceKm:        6.5,
		StopFrequency:     40,
		NearestStationRef: "8010085",
		Accessibility:     "Good",
		Colour:            "lightgreen",
		Location:          geoPoint{Lat: 51.05, Lon: 13.73},
	}, document)

	encoded, err := json.Marshal(document)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"Location":{"lat":51.05,"lon":13.73}`)
}

func TestNewCellDocumentVeryGood(t *testing.T) {
	document, err := newCellDocument(&ctdf.PopulationCell{
		GridID:        "CRS3035RES1000mN1E1",
		Accessibility: accessibility.TierVeryGood,
	})
	require.NoError(t, err)

	assert.Equal(t, "VeryGood", document.Accessibility)
	assert.Equal(t, "green", document.Colour)
}

func TestEncodeCellDocument(t *testing.T) {
	encoded, err := encodeCellDocument(&ctdf.PopulationCell{
		GridID:        "CRS3035RES1000mN1E1",
		DistanceKm:    2,
		Accessibility: accessibility.TierGood,
	})
	require.NoError(t, err)
	assert.True(t, json.Valid(encoded))

	_, err = encodeCellDocument(&ctdf.PopulationCell{
		GridID:     "CRS3035RES1000mN1E1",
		DistanceKm: math.Inf(1),
	})
	var unsupported *json.UnsupportedValueError
	assert.ErrorAs(t, err, &unsupported)
}

func TestStaleIndexes(t *testing.T) {
	assert.Equal(t,
		[]string{"railaccess-cells-1", "railaccess-cells-3"},
		staleIndexes([]string{"railaccess-cells-1", "railaccess-cells-2", "railaccess-cells-3"}, "railaccess-cells-2"),
	)
	assert.Nil(t, staleIndexes([]string{"railaccess-cells-2"}, "railaccess-cells-2"))
}
