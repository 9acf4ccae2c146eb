package indexer

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/railaccess/pkg/analysis"
	"github.com/travigo/railaccess/pkg/elastic_client"
	"github.com/travigo/railaccess/pkg/output"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "indexer",
		Usage: "Indexes analysis results into Elasticsearch",
		Subcommands: []*cli.Command{
			{
				Name:  "cells",
				Usage: "do an index of the scored population cells",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "input",
						Value: analysis.DefaultConfig().OutputPath,
						Usage: "GeoJSON written by the analyse command",
					},
				},
				Action: func(c *cli.Context) error {
					if err := elastic_client.Connect(true); err != nil {
						return err
					}

					cells, err := output.ReadCells(c.String("input"))
					if err != nil {
						return err
					}

					if err := IndexCells(cells); err != nil {
						return err
					}

					log.Info().Msg("Index queue emptied")

					return nil
				},
			},
		},
	}
}
