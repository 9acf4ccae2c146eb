package analysis

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/railaccess/pkg/database"
	"github.com/travigo/railaccess/pkg/frequency"
	"github.com/travigo/railaccess/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "analyse",
		Usage: "Scores every populated grid cell by its rail accessibility",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: DefaultConfigPath,
				Usage: "optional YAML file overriding the default paths",
			},
			&cli.StringFlag{
				Name:  "population",
				Usage: "semicolon separated population grid CSV",
			},
			&cli.StringSliceFlag{
				Name:  "feed",
				Usage: "GTFS feed as name=path, directory or zip, repeatable",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "GeoJSON file for the scored cells",
			},
			&cli.StringFlag{
				Name:  "stations",
				Usage: "optional GeoJSON file for the station layer",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "nearest station workers, 0 uses every CPU",
			},
		},
		Action: func(c *cli.Context) error {
			config, err := LoadConfig(c.String("config"))
			if err != nil {
				return err
			}

			if err := config.ApplyFlags(c); err != nil {
				return err
			}

			if err := redis_client.Connect(false); err != nil {
				return err
			}
			if err := database.Connect(false); err != nil {
				return err
			}

			pipeline := &Pipeline{Config: config}
			if redis_client.Client != nil {
				pipeline.FrequencyCache = frequency.NewCache(redis_client.Client)
			}

			result, err := pipeline.Run(c.Context)
			if err != nil {
				return err
			}

			if database.Connected() {
				if err := database.StoreCells(c.Context, result.Cells); err != nil {
					return err
				}
				if err := database.StoreStations(c.Context, result.Stations); err != nil {
					return err
				}
			}

			log.Info().Int("cells", len(result.Cells)).Int("rejected", result.Diagnostics.RejectedRows()).Msg("Analysis complete")

			return nil
		},
	}
}
