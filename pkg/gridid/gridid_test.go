package gridid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	coord, err := Decode("CRS3035RES1000mN2684000E4334000")
	require.NoError(t, err)

	assert.Equal(t, 4334000, coord.Easting)
	assert.Equal(t, 2684000, coord.Northing)
	assert.Equal(t, 3035, coord.CRS)
	assert.Equal(t, "1000m", coord.Resolution)
}

func TestDecodeRoundTrip(t *testing.T) {
	ids := []string{
		"CRS3035RES1000mN2684000E4334000",
		"CRS3035RES1000mN3551000E4159000",
		"CRS3035RES1000mN0E0",
		"CRS3035RES100mN2684100E4334200",
	}

	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			coord, err := Decode(id)
			require.NoError(t, err)
			assert.Equal(t, id, coord.String())
		})
	}
}

func TestDecodeTrimsWhitespace(t *testing.T) {
	coord, err := Decode("  CRS3035RES1000mN2684000E4334000\n")
	require.NoError(t, err)
	assert.Equal(t, 4334000, coord.Easting)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		reason string
	}{
		{"empty", "", "empty id"},
		{"no crs", "N2684000E4334000", "missing CRS marker"},
		{"no resolution", "CRS3035N2684000E4334000", "missing resolution marker"},
		{"no easting", "CRS3035RES1000mN2684000", "missing northing/easting markers"},
		{"non numeric", "CRS3035RES1000mN26840x0E4334000", "northing/easting are not numeric"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.id)
			require.Error(t, err)

			var malformed *MalformedIDError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.reason, malformed.Reason)
			assert.Equal(t, tt.id, malformed.ID)
		})
	}
}
