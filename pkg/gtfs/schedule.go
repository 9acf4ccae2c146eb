// Package gtfs loads the subset of a GTFS schedule feed needed to work out
// how often trains call at each stop.
package gtfs

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railaccess/pkg/util"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var requiredFiles = []string{"stops.txt", "trips.txt", "calendar.txt", "stop_times.txt"}

// Columns the frequency join and station placement cannot do without.
var requiredColumns = map[string][]string{
	"stops.txt":      {"stop_id", "stop_lat", "stop_lon"},
	"trips.txt":      {"trip_id", "service_id"},
	"calendar.txt":   {"service_id", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
	"stop_times.txt": {"trip_id", "stop_id", "arrival_time"},
}

type Schedule struct {
	Name string
	Path string

	Stops     []Stop
	Trips     []Trip
	StopTimes []StopTime
	Calendars []Calendar

	fingerprint hash.Hash
}

// Load reads a feed from either an unpacked directory or a zip archive.
func Load(name string, path string) (*Schedule, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", name, err)
	}

	schedule := &Schedule{
		Name: name,
		Path: path,
	}

	if info.IsDir() {
		err = schedule.ParseDirectory(path)
	} else {
		var file *os.File
		file, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", name, err)
		}
		defer file.Close()

		err = schedule.ParseFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", name, err)
	}

	log.Info().
		Str("feed", name).
		Int("stops", len(schedule.Stops)).
		Int("trips", len(schedule.Trips)).
		Int("stop_times", len(schedule.StopTimes)).
		Int("calendars", len(schedule.Calendars)).
		Msg("Loaded feed")

	return schedule, nil
}

func (s *Schedule) destinations() map[string]interface{} {
	return map[string]interface{}{
		"stops.txt":      &s.Stops,
		"trips.txt":      &s.Trips,
		"stop_times.txt": &s.StopTimes,
		"calendar.txt":   &s.Calendars,
	}
}

func (s *Schedule) ParseDirectory(directory string) error {
	s.fingerprint = sha256.New()

	for _, fileName := range requiredFiles {
		file, err := os.Open(filepath.Join(directory, fileName))
		if err != nil {
			return fmt.Errorf("missing %s: %w", fileName, err)
		}

		err = s.parseTable(fileName, file)
		file.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

// ParseFile reads a zipped feed. Files in the archive that are not needed are skipped.
func (s *Schedule) ParseFile(reader io.Reader) error {
	s.fingerprint = sha256.New()

	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return err
	}

	archiveFiles := map[string]*zip.File{}
	for _, zipFile := range archive.File {
		archiveFiles[filepath.Base(zipFile.Name)] = zipFile
	}

	for _, fileName := range requiredFiles {
		zipFile, exists := archiveFiles[fileName]
		if !exists {
			return fmt.Errorf("missing %s in archive", fileName)
		}

		fileReader, err := zipFile.Open()
		if err != nil {
			return err
		}

		err = s.parseTable(fileName, fileReader)
		fileReader.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Schedule) parseTable(fileName string, reader io.Reader) error {
	destination := s.destinations()[fileName]

	log.Debug().Str("feed", s.Name).Str("file", fileName).Msg("Loading file")

	io.WriteString(s.fingerprint, fileName)
	decoded := transform.NewReader(io.TeeReader(reader, s.fingerprint), unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	csvReader := csv.NewReader(decoded)
	// Allow us to ignore those naughty records that have missing columns
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	if err := gocsv.UnmarshalCSV(util.NewColumnCheckedReader(csvReader, requiredColumns[fileName]...), destination); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil
		}
		log.Error().Str("feed", s.Name).Str("file", fileName).Err(err).Msg("Failed to parse csv file")
		return fmt.Errorf("%s: %w", fileName, err)
	}

	return nil
}

// Fingerprint identifies the exact table contents that were loaded.
func (s *Schedule) Fingerprint() string {
	if s.fingerprint == nil {
		return ""
	}
	return hex.EncodeToString(s.fingerprint.Sum(nil))
}

// Fingerprint combines the fingerprints of several feeds in order.
func Fingerprint(schedules []*Schedule) string {
	parts := make([]string, 0, len(schedules))
	for _, schedule := range schedules {
		parts = append(parts, schedule.Name+":"+schedule.Fingerprint())
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, ",")))
	return hex.EncodeToString(sum[:])
}
