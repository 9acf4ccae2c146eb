package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railaccess/pkg/analysis"
	"github.com/travigo/railaccess/pkg/api"
	"github.com/travigo/railaccess/pkg/indexer"
	"github.com/urfave/cli/v2"
)

func main() {
	if os.Getenv("RAILACCESS_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("RAILACCESS_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "railaccess",
		Description: "Rates how well every populated grid cell is connected to the rail network",

		Commands: []*cli.Command{
			analysis.RegisterCLI(),
			api.RegisterCLI(),
			indexer.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
