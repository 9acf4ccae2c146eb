package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "railaccess.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), config)
	assert.Equal(t, "data/Georeferenzierte_BevDaten_2021.csv", config.PopulationPath)
	assert.Len(t, config.Feeds, 2)
	assert.Equal(t, "data/analyse_ergebnis_combined.geojson", config.OutputPath)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "railaccess.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
population: grid.csv
feeds:
  - name: sbahn
    path: feeds/sbahn.zip
workers: 4
`), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "grid.csv", config.PopulationPath)
	assert.Equal(t, []FeedConfig{{Name: "sbahn", Path: "feeds/sbahn.zip"}}, config.Feeds)
	assert.Equal(t, 4, config.Workers)
	assert.Equal(t, DefaultConfig().OutputPath, config.OutputPath)
}

func TestLoadConfigValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "railaccess.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
feeds:
  - name: nameless-path
workers: -1
`), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

type testFlags struct {
	strings map[string]string
	slices  map[string][]string
	ints    map[string]int
}

func (f testFlags) IsSet(name string) bool {
	_, isString := f.strings[name]
	_, isSlice := f.slices[name]
	_, isInt := f.ints[name]
	return isString || isSlice || isInt
}

func (f testFlags) String(name string) string        { return f.strings[name] }
func (f testFlags) StringSlice(name string) []string { return f.slices[name] }
func (f testFlags) Int(name string) int              { return f.ints[name] }

func TestApplyFlags(t *testing.T) {
	config := DefaultConfig()

	err := config.ApplyFlags(testFlags{
		strings: map[string]string{"output": "out.geojson", "stations": "stations.geojson"},
		slices:  map[string][]string{"feed": {"fv=feeds/fv.zip", "feeds/Regionalverkehr.zip"}},
		ints:    map[string]int{"workers": 2},
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().PopulationPath, config.PopulationPath)
	assert.Equal(t, "out.geojson", config.OutputPath)
	assert.Equal(t, "stations.geojson", config.StationsOutputPath)
	assert.Equal(t, 2, config.Workers)
	assert.Equal(t, []FeedConfig{
		{Name: "fv", Path: "feeds/fv.zip"},
		{Name: "Regionalverkehr", Path: "feeds/Regionalverkehr.zip"},
	}, config.Feeds)
}

func TestApplyFlagsInvalid(t *testing.T) {
	config := DefaultConfig()
	assert.Error(t, config.ApplyFlags(testFlags{slices: map[string][]string{"feed": {"=feeds/fv.zip"}}}))

	config = DefaultConfig()
	assert.Error(t, config.ApplyFlags(testFlags{ints: map[string]int{"workers": -3}}))
}
