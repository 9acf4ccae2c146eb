package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const PopulationCellsCollection = "population_cells"
const StationsCollection = "stations"

func createIndexes() {
	createPopulationCellsIndexes()
	createStationsIndexes()
}

func createPopulationCellsIndexes() {
	cellsCollection := GetCollection(PopulationCellsCollection)
	_, err := cellsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "gridid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "location.coordinates", Value: "2d"}},
		},
		{
			Keys: bson.D{{Key: "accessibility", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "neareststationref", Value: 1}},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createStationsIndexes() {
	stationsCollection := GetCollection(StationsCollection)
	_, err := stationsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "datasource.dataset", Value: 1},
				{Key: "primaryidentifier", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "location.coordinates", Value: "2d"}},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
