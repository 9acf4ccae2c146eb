package redis_client

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railaccess/pkg/util"
)

var Client *redis.Client

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

// Connect sets up the global client. Without RAILACCESS_REDIS_ADDRESS it is
// skipped unless required.
func Connect(required bool) error {
	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	if !util.IsConfigured("REDIS_ADDRESS") && !required {
		log.Info().Msg("Skipping Redis setup")
		return nil
	}

	env := util.GetEnvironmentVariables()

	if env["RAILACCESS_REDIS_ADDRESS"] != "" {
		address = env["RAILACCESS_REDIS_ADDRESS"]
	}

	if env["RAILACCESS_REDIS_PASSWORD"] != "" {
		password = env["RAILACCESS_REDIS_PASSWORD"]
	}

	if env["RAILACCESS_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["RAILACCESS_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	Client = client

	log.Info().Msgf("Redis client setup for %s", address)

	return nil
}
