package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/railaccess/pkg/ctdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestConnectSkippedWhenUnconfigured(t *testing.T) {
	MongoGlobalInstance = nil
	t.Setenv("RAILACCESS_MONGODB_CONNECTION", "")

	require.NoError(t, Connect(false))
	assert.False(t, Connected())
}

func TestCellWriteModels(t *testing.T) {
	cells := []*ctdf.PopulationCell{
		{GridID: "CRS3035RES1000mN1E1", Population: 3},
		{GridID: "CRS3035RES1000mN2E2", Population: 4},
	}

	models := cellWriteModels(cells)
	require.Len(t, models, 2)

	replaceModel, ok := models[1].(*mongo.ReplaceOneModel)
	require.True(t, ok)
	assert.Equal(t, bson.M{"gridid": "CRS3035RES1000mN2E2"}, replaceModel.Filter)
	assert.Equal(t, cells[1], replaceModel.Replacement)
	assert.True(t, *replaceModel.Upsert)
}

func TestStationWriteModelsKeyedByFeed(t *testing.T) {
	stations := []*ctdf.Station{
		{PrimaryIdentifier: "8000001", DataSource: &ctdf.DataSource{Dataset: "Fernverkehr"}},
		{PrimaryIdentifier: "8000002"},
	}

	models := stationWriteModels(stations)
	require.Len(t, models, 2)

	assert.Equal(t, bson.M{"datasource.dataset": "Fernverkehr", "primaryidentifier": "8000001"}, models[0].(*mongo.ReplaceOneModel).Filter)
	assert.Equal(t, bson.M{"datasource.dataset": "", "primaryidentifier": "8000002"}, models[1].(*mongo.ReplaceOneModel).Filter)
}
