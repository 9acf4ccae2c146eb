// Package population reads the semicolon separated census grid, one row per
// populated 1km cell.
package population

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railaccess/pkg/util"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	GridIDColumn     = "Gitter_ID_1km"
	PopulationColumn = "Einwohner"
)

type row struct {
	GridID     string `csv:"Gitter_ID_1km"`
	Population string `csv:"Einwohner"`
}

type Record struct {
	GridID     string
	Population int
}

type RowError struct {
	Line   int
	GridID string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d (%s): %s", e.Line, e.GridID, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

func Load(path string) ([]Record, []*RowError, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, rowErrors, err := Parse(file)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Info().
		Str("path", path).
		Int("cells", len(records)).
		Int("rejected", len(rowErrors)).
		Msg("Loaded population grid")

	return records, rowErrors, nil
}

// Parse returns every well formed row. Rows with a missing id or a population
// that is not a non-negative integer are reported as RowErrors and skipped.
// A file without both required columns is an error.
func Parse(reader io.Reader) ([]Record, []*RowError, error) {
	csvReader := csv.NewReader(transform.NewReader(reader, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	csvReader.Comma = ';'
	csvReader.FieldsPerRecord = -1

	var rows []row
	if err := gocsv.UnmarshalCSV(util.NewColumnCheckedReader(csvReader, GridIDColumn, PopulationColumn), &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil, &util.MissingColumnsError{Columns: []string{GridIDColumn, PopulationColumn}}
		}
		return nil, nil, err
	}

	records := make([]Record, 0, len(rows))
	var rowErrors []*RowError

	for i, r := range rows {
		line := i + 2
		gridID := strings.TrimSpace(r.GridID)

		if gridID == "" {
			rowErrors = append(rowErrors, &RowError{Line: line, Err: errors.New("missing grid id")})
			continue
		}

		population, err := strconv.Atoi(strings.TrimSpace(r.Population))
		if err != nil {
			rowErrors = append(rowErrors, &RowError{Line: line, GridID: gridID, Err: fmt.Errorf("population %q is not an integer", r.Population)})
			continue
		}
		if population < 0 {
			rowErrors = append(rowErrors, &RowError{Line: line, GridID: gridID, Err: fmt.Errorf("population %d is negative", population)})
			continue
		}

		records = append(records, Record{
			GridID:     gridID,
			Population: population,
		})
	}

	return records, rowErrors, nil
}
