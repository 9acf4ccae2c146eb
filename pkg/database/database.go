package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/railaccess/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

const defaultMongoConnectionString = "mongodb://localhost:27017/"
const defaultMongoDatabase = "railaccess"

// Connect sets up the global MongoDB instance. Without
// RAILACCESS_MONGODB_CONNECTION it is skipped unless required.
func Connect(required bool) error {
	if !util.IsConfigured("MONGODB_CONNECTION") && !required {
		log.Info().Msg("Skipping MongoDB setup")
		return nil
	}

	return ConnectMongoDB()
}

func ConnectMongoDB() error {
	connectionString := defaultMongoConnectionString
	dbName := defaultMongoDatabase

	env := util.GetEnvironmentVariables()

	if env["RAILACCESS_MONGODB_CONNECTION"] != "" {
		connectionString = env["RAILACCESS_MONGODB_CONNECTION"]
	}

	if env["RAILACCESS_MONGODB_DATABASE"] != "" {
		dbName = env["RAILACCESS_MONGODB_DATABASE"]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return err
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	createIndexes()

	log.Info().Str("database", dbName).Msg("MongoDB client setup")

	return nil
}

func Connected() bool {
	return MongoGlobalInstance != nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}
