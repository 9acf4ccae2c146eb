package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/railaccess/pkg/ctdf"
	"github.com/travigo/railaccess/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bulkWriteSize = 1000

func cellWriteModels(cells []*ctdf.PopulationCell) []mongo.WriteModel {
	models := make([]mongo.WriteModel, 0, len(cells))

	for _, cell := range cells {
		replaceModel := mongo.NewReplaceOneModel()
		replaceModel.SetFilter(bson.M{"gridid": cell.GridID})
		replaceModel.SetReplacement(cell)
		replaceModel.SetUpsert(true)

		models = append(models, replaceModel)
	}

	return models
}

func stationWriteModels(stations []*ctdf.Station) []mongo.WriteModel {
	models := make([]mongo.WriteModel, 0, len(stations))

	for _, station := range stations {
		dataset := ""
		if station.DataSource != nil {
			dataset = station.DataSource.Dataset
		}

		replaceModel := mongo.NewReplaceOneModel()
		replaceModel.SetFilter(bson.M{"datasource.dataset": dataset, "primaryidentifier": station.PrimaryIdentifier})
		replaceModel.SetReplacement(station)
		replaceModel.SetUpsert(true)

		models = append(models, replaceModel)
	}

	return models
}

func bulkWrite(ctx context.Context, collectionName string, models []mongo.WriteModel) error {
	collection := GetCollection(collectionName)

	for _, batch := range util.Chunk(models, bulkWriteSize) {
		_, err := collection.BulkWrite(ctx, batch, options.BulkWrite().SetOrdered(false))
		if err != nil {
			return err
		}
	}

	log.Info().Str("collection", collectionName).Int("documents", len(models)).Msg("Stored documents")

	return nil
}

// StoreCells upserts the scored cells keyed by grid id.
func StoreCells(ctx context.Context, cells []*ctdf.PopulationCell) error {
	return bulkWrite(ctx, PopulationCellsCollection, cellWriteModels(cells))
}

// StoreStations upserts the stations keyed by feed and stop id.
func StoreStations(ctx context.Context, stations []*ctdf.Station) error {
	return bulkWrite(ctx, StationsCollection, stationWriteModels(stations))
}

// LoadCells reads back every stored cell, optionally filtered.
func LoadCells(ctx context.Context, filter bson.M) ([]*ctdf.PopulationCell, error) {
	if filter == nil {
		filter = bson.M{}
	}

	cursor, err := GetCollection(PopulationCellsCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var cells []*ctdf.PopulationCell
	if err := cursor.All(ctx, &cells); err != nil {
		return nil, err
	}

	return cells, nil
}
