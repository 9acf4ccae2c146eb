package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railaccess/pkg/accessibility"
	"github.com/travigo/railaccess/pkg/ctdf"
	"github.com/travigo/railaccess/pkg/elastic_client"
)

const cellsIndexPrefix = "railaccess-cells-"

type geoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type cellDocument struct {
	GridID            string
	Population        int
	Easting           int
	Northing          int
	DistanceKm        float64
	StopFrequency     float64
	NearestStationRef string
	Accessibility     string
	Colour            string
	Location          geoPoint `copier:"-"`
}

var tierConverter = copier.TypeConverter{
	SrcType: accessibility.Tier(0),
	DstType: copier.String,
	Fn: func(src interface{}) (interface{}, error) {
		tier, ok := src.(accessibility.Tier)
		if !ok {
			return nil, fmt.Errorf("expected accessibility.Tier, got %T", src)
		}
		return tier.String(), nil
	},
}

func newCellDocument(cell *ctdf.PopulationCell) (*cellDocument, error) {
	document := &cellDocument{}

	err := copier.CopyWithOption(document, cell, copier.Option{
		Converters: []copier.TypeConverter{tierConverter},
	})
	if err != nil {
		return nil, err
	}

	point := cell.Location.Point()
	document.Location = geoPoint{Lat: point.Lat(), Lon: point.Lon()}
	document.Colour = cell.Accessibility.Colour()

	return document, nil
}

func encodeCellDocument(cell *ctdf.PopulationCell) ([]byte, error) {
	document, err := newCellDocument(cell)
	if err != nil {
		return nil, err
	}

	return json.Marshal(document)
}

// IndexCells writes the cells into a fresh timestamped index and removes the
// previous ones once done.
func IndexCells(cells []*ctdf.PopulationCell) error {
	indexName := fmt.Sprintf("%s%d", cellsIndexPrefix, time.Now().Unix())

	if err := createCellsIndex(indexName); err != nil {
		return err
	}

	for _, cell := range cells {
		jsonCell, err := encodeCellDocument(cell)
		if err != nil {
			log.Error().Err(err).Str("grid_id", cell.GridID).Msg("Failed to encode cell document")
			continue
		}

		elastic_client.IndexRequest(indexName, bytes.NewReader(jsonCell))
	}

	log.Info().Int("cells", len(cells)).Msg("Sent all index requests to queue")

	elastic_client.WaitUntilQueueEmpty()

	deleteOldIndexes(cellsIndexPrefix+"*", indexName)

	return nil
}

func createCellsIndex(indexName string) error {
	mapping := `{
		"settings": {
			"number_of_shards": 1,
			"number_of_replicas": 1
		},
		"mappings": {
			"properties": {
				"GridID": {
					"type": "keyword"
				},
				"Population": {
					"type": "integer"
				},
				"Easting": {
					"type": "integer"
				},
				"Northing": {
					"type": "integer"
				},
				"DistanceKm": {
					"type": "float"
				},
				"StopFrequency": {
					"type": "float"
				},
				"NearestStationRef": {
					"type": "keyword"
				},
				"Accessibility": {
					"type": "keyword"
				},
				"Colour": {
					"type": "keyword"
				},
				"Location": {
					"type": "geo_point"
				}
			}
		}
	}`

	indexReq := esapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(mapping),
	}

	resp, err := indexReq.Do(context.Background(), elastic_client.Client)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		responseBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("creating index %s: %s %s", indexName, resp.Status(), responseBytes)
	}

	log.Info().Str("index", indexName).Msg("Created index")

	return nil
}
