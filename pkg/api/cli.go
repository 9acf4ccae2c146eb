package api

import (
	"github.com/travigo/railaccess/pkg/analysis"
	"github.com/travigo/railaccess/pkg/api/routes"
	"github.com/travigo/railaccess/pkg/database"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "visualise",
		Usage: "Serves the accessibility map",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the map web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8501",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "cells",
						Value: analysis.DefaultConfig().OutputPath,
						Usage: "GeoJSON written by the analyse command",
					},
					&cli.StringFlag{
						Name:  "stations",
						Usage: "optional station layer written by analyse --stations",
					},
					&cli.BoolFlag{
						Name:  "from-database",
						Usage: "read cells stored in MongoDB instead of the GeoJSON file",
					},
				},
				Action: func(c *cli.Context) error {
					var results *routes.Results
					var err error

					if c.Bool("from-database") {
						if err := database.Connect(true); err != nil {
							return err
						}
						results, err = routes.LoadResultsFromDatabase(c.Context)
					} else {
						results, err = routes.LoadResults(c.String("cells"), c.String("stations"))
					}
					if err != nil {
						return err
					}

					return SetupServer(c.String("listen"), results)
				},
			},
		},
	}
}
