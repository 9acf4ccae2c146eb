// Package gridid decodes the INSPIRE style identifiers used by the national
// population grid, e.g. CRS3035RES1000mN2684000E4334000.
package gridid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultPrefix is the CRS and resolution marker carried by every 1km cell id.
const DefaultPrefix = "CRS3035RES1000m"

var gridIDPattern = regexp.MustCompile(`^CRS(\d+)RES(\d+(?:m|km))N(\d+)E(\d+)$`)

type GridCoordinate struct {
	CRS        int
	Resolution string

	Easting  int
	Northing int
}

func (g GridCoordinate) String() string {
	return fmt.Sprintf("CRS%dRES%sN%dE%d", g.CRS, g.Resolution, g.Northing, g.Easting)
}

type MalformedIDError struct {
	ID     string
	Reason string
}

func (e *MalformedIDError) Error() string {
	return fmt.Sprintf("malformed grid id %q: %s", e.ID, e.Reason)
}

// Decode returns the projected easting/northing embedded in a grid cell id.
func Decode(id string) (GridCoordinate, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return GridCoordinate{}, &MalformedIDError{ID: id, Reason: "empty id"}
	}

	match := gridIDPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return GridCoordinate{}, &MalformedIDError{ID: id, Reason: describeMismatch(trimmed)}
	}

	crs, err := strconv.Atoi(match[1])
	if err != nil {
		return GridCoordinate{}, &MalformedIDError{ID: id, Reason: "crs is not numeric"}
	}
	northing, err := strconv.Atoi(match[3])
	if err != nil {
		return GridCoordinate{}, &MalformedIDError{ID: id, Reason: "northing is not numeric"}
	}
	easting, err := strconv.Atoi(match[4])
	if err != nil {
		return GridCoordinate{}, &MalformedIDError{ID: id, Reason: "easting is not numeric"}
	}

	return GridCoordinate{
		CRS:        crs,
		Resolution: match[2],
		Easting:    easting,
		Northing:   northing,
	}, nil
}

func describeMismatch(id string) string {
	if !strings.HasPrefix(id, "CRS") {
		return "missing CRS marker"
	}
	if !strings.Contains(id, "RES") {
		return "missing resolution marker"
	}

	northingIndex := strings.LastIndex(id, "N")
	eastingIndex := strings.LastIndex(id, "E")
	if northingIndex < 0 || eastingIndex < 0 || eastingIndex < northingIndex {
		return "missing northing/easting markers"
	}

	return "northing/easting are not numeric"
}
