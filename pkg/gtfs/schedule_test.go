package gtfs

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/railaccess/pkg/util"
)

var fixtureFiles = map[string]string{
	"stops.txt": "\ufeffstop_id,stop_name,stop_lat,stop_lon\n" +
		" 8000001 ,Aachen Hbf,50.7678,6.0914\n" +
		"8000002,Dresden Hbf,51.0403,13.7320\n",
	"trips.txt": "route_id,service_id,trip_id\n" +
		"r1,weekday,t1\n" +
		"r1,daily,t2\n",
	"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
		"weekday,1,1,1,1,1,0,0,20240101,20241231\n" +
		"daily,1,1,1,1,1,1,1,20240101,20241231\n" +
		"sparse,,1,,,,,,20240101,20241231\n",
	"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
		"t1,08:00:00,08:01:00,8000001,1\n" +
		"t1,10:00:00,10:01:00,8000002 ,2\n" +
		"t2,09:00:00,09:01:00,8000002,1\n",
}

func writeFixtureDirectory(t *testing.T) string {
	directory := t.TempDir()
	for name, contents := range fixtureFiles {
		require.NoError(t, os.WriteFile(filepath.Join(directory, name), []byte(contents), 0o644))
	}
	return directory
}

func writeFixtureZip(t *testing.T, skip string) string {
	path := filepath.Join(t.TempDir(), "feed.zip")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	archive := zip.NewWriter(file)
	for name, contents := range fixtureFiles {
		if name == skip {
			continue
		}
		writer, err := archive.Create(name)
		require.NoError(t, err)
		_, err = writer.Write([]byte(contents))
		require.NoError(t, err)
	}
	require.NoError(t, archive.Close())

	return path
}

func assertFixtureLoaded(t *testing.T, schedule *Schedule) {
	require.Len(t, schedule.Stops, 2)
	require.Len(t, schedule.Trips, 2)
	require.Len(t, schedule.StopTimes, 3)
	require.Len(t, schedule.Calendars, 3)

	assert.Equal(t, "8000001", schedule.Stops[0].NormalisedID())
	assert.Equal(t, "Aachen Hbf", schedule.Stops[0].Name)
	assert.Equal(t, "8000002", schedule.StopTimes[1].NormalisedStopID())
	assert.Equal(t, "weekday", schedule.Trips[0].ServiceID)

	assert.Equal(t, 5, schedule.Calendars[0].ActiveDaysPerWeek())
	assert.Equal(t, 7, schedule.Calendars[1].ActiveDaysPerWeek())
	assert.Equal(t, 1, schedule.Calendars[2].ActiveDaysPerWeek())
}

func TestLoadDirectory(t *testing.T) {
	schedule, err := Load("fernverkehr", writeFixtureDirectory(t))
	require.NoError(t, err)

	assert.Equal(t, "fernverkehr", schedule.Name)
	assertFixtureLoaded(t, schedule)
	assert.NotEmpty(t, schedule.Fingerprint())
}

func TestLoadZip(t *testing.T) {
	schedule, err := Load("regionalverkehr", writeFixtureZip(t, ""))
	require.NoError(t, err)

	assertFixtureLoaded(t, schedule)
}

func TestLoadZipMissingTable(t *testing.T) {
	_, err := Load("broken", writeFixtureZip(t, "calendar.txt"))
	assert.ErrorContains(t, err, "calendar.txt")
}

func TestLoadMissingDirectory(t *testing.T) {
	_, err := Load("missing", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestFingerprintStable(t *testing.T) {
	directory := writeFixtureDirectory(t)

	first, err := Load("a", directory)
	require.NoError(t, err)
	second, err := Load("a", directory)
	require.NoError(t, err)

	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
	assert.Equal(t, Fingerprint([]*Schedule{first}), Fingerprint([]*Schedule{second}))

	renamed, err := Load("b", directory)
	require.NoError(t, err)
	assert.NotEqual(t, Fingerprint([]*Schedule{first}), Fingerprint([]*Schedule{renamed}))
}

func TestStopCoordinates(t *testing.T) {
	stop := Stop{Latitude: " 51.0403", Longitude: "13.7320 "}
	point, err := stop.Coordinates()
	require.NoError(t, err)
	assert.InDelta(t, 13.7320, point.Lon(), 1e-9)
	assert.InDelta(t, 51.0403, point.Lat(), 1e-9)

	_, err = (&Stop{Latitude: "north", Longitude: "13"}).Coordinates()
	assert.Error(t, err)

	_, err = (&Stop{Latitude: "95", Longitude: "13"}).Coordinates()
	assert.Error(t, err)
}

func TestCalendarRunningDays(t *testing.T) {
	calendar := Calendar{Monday: 1, Saturday: 1, Sunday: 1}
	assert.Equal(t, []string{"Monday", "Saturday", "Sunday"}, calendar.GetRunningDays())
	assert.Equal(t, 3, calendar.ActiveDaysPerWeek())
}

func TestLoadMissingColumns(t *testing.T) {
	directory := writeFixtureDirectory(t)
	require.NoError(t, os.WriteFile(filepath.Join(directory, "stop_times.txt"), []byte(
		"trip_id,arrival_time,departure_time,stop_sequence\n"+
			"t1,08:00:00,08:01:00,1\n",
	), 0o644))

	_, err := Load("broken", directory)
	require.ErrorContains(t, err, "stop_times.txt")

	var missing *util.MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"stop_id"}, missing.Columns)
}
