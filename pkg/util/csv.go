package util

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns %s", strings.Join(e.Columns, ", "))
}

// ColumnCheckedReader fails on the header row if any required column is absent.
// gocsv silently skips struct fields it cannot match to a header.
type ColumnCheckedReader struct {
	*csv.Reader

	required []string
	checked  bool
}

func NewColumnCheckedReader(reader *csv.Reader, required ...string) *ColumnCheckedReader {
	return &ColumnCheckedReader{
		Reader:   reader,
		required: required,
	}
}

func (r *ColumnCheckedReader) Read() ([]string, error) {
	record, err := r.Reader.Read()
	if err != nil || r.checked {
		return record, err
	}
	r.checked = true

	header := map[string]bool{}
	for _, column := range record {
		header[column] = true
	}

	var missing []string
	for _, column := range r.required {
		if !header[column] {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	return record, nil
}

func (r *ColumnCheckedReader) ReadAll() ([][]string, error) {
	var records [][]string

	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}
