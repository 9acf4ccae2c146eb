package analysis

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/travigo/railaccess/pkg/projection"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "data/railaccess.yaml"

type FeedConfig struct {
	Name string `yaml:"name" validate:"required"`
	Path string `yaml:"path" validate:"required"`
}

type Config struct {
	PopulationPath     string       `yaml:"population" validate:"required"`
	Feeds              []FeedConfig `yaml:"feeds" validate:"required,min=1,dive"`
	OutputPath         string       `yaml:"output" validate:"required"`
	StationsOutputPath string       `yaml:"stationsOutput"`

	GridEPSG int `yaml:"gridEPSG" validate:"required"`
	Workers  int `yaml:"workers" validate:"gte=0"`
}

func DefaultConfig() Config {
	return Config{
		PopulationPath: "data/Georeferenzierte_BevDaten_2021.csv",
		Feeds: []FeedConfig{
			{Name: "Fernverkehr", Path: "data/Fernverkehr"},
			{Name: "Regionalverkehr", Path: "data/Regionalverkehr"},
		},
		OutputPath: "data/analyse_ergebnis_combined.geojson",
		GridEPSG:   projection.EPSGLambertEurope,
	}
}

// LoadConfig overlays the YAML file at path onto the defaults. A missing file
// is not an error.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	contents, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}

	if err := yaml.Unmarshal(contents, &config); err != nil {
		return config, err
	}

	return config, config.Validate()
}

// ApplyFlags overrides the config with any command line flags that were set.
func (c *Config) ApplyFlags(flags flagSource) error {
	if flags.IsSet("population") {
		c.PopulationPath = flags.String("population")
	}
	if flags.IsSet("feed") {
		feeds, err := parseFeedFlags(flags.StringSlice("feed"))
		if err != nil {
			return err
		}
		c.Feeds = feeds
	}
	if flags.IsSet("output") {
		c.OutputPath = flags.String("output")
	}
	if flags.IsSet("stations") {
		c.StationsOutputPath = flags.String("stations")
	}
	if flags.IsSet("workers") {
		c.Workers = flags.Int("workers")
	}

	return c.Validate()
}

type flagSource interface {
	IsSet(name string) bool
	String(name string) string
	StringSlice(name string) []string
	Int(name string) int
}

// parseFeedFlags reads name=path pairs, a bare path is named after its base.
func parseFeedFlags(values []string) ([]FeedConfig, error) {
	feeds := make([]FeedConfig, 0, len(values))

	for _, value := range values {
		name, path, found := strings.Cut(value, "=")
		if !found {
			path = value
			name = strings.TrimSuffix(filepath.Base(value), filepath.Ext(value))
		}

		if name == "" || path == "" {
			return nil, fmt.Errorf("invalid feed %q, expected name=path", value)
		}

		feeds = append(feeds, FeedConfig{Name: name, Path: path})
	}

	return feeds, nil
}

func (c Config) Validate() error {
	return validator.New().Struct(c)
}
