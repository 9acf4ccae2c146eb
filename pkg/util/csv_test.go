package util

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnCheckedReader(t *testing.T) {
	reader := NewColumnCheckedReader(csv.NewReader(strings.NewReader("trip_id,stop_id,arrival_time\nt1,A,08:00:00\n")), "trip_id", "stop_id")

	records, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"trip_id", "stop_id", "arrival_time"}, {"t1", "A", "08:00:00"}}, records)
}

func TestColumnCheckedReaderMissing(t *testing.T) {
	reader := NewColumnCheckedReader(csv.NewReader(strings.NewReader("trip_id,arrival_time\nt1,08:00:00\n")), "trip_id", "stop_id", "service_id")

	_, err := reader.ReadAll()

	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"stop_id", "service_id"}, missing.Columns)
	assert.Equal(t, "missing required columns stop_id, service_id", err.Error())
}

func TestColumnCheckedReaderEmpty(t *testing.T) {
	records, err := NewColumnCheckedReader(csv.NewReader(strings.NewReader("")), "trip_id").ReadAll()
	require.NoError(t, err)
	assert.Empty(t, records)
}
