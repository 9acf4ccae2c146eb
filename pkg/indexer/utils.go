package indexer

import (
	"context"
	"encoding/json"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railaccess/pkg/elastic_client"
)

func staleIndexes(indexes []string, indexName string) []string {
	var stale []string
	for _, index := range indexes {
		if index != indexName {
			stale = append(stale, index)
		}
	}
	return stale
}

func deleteOldIndexes(indexWildcard string, indexName string) {
	catReq := esapi.CatIndicesRequest{
		Index:  []string{indexWildcard},
		Format: "json",
	}

	resp, err := catReq.Do(context.Background(), elastic_client.Client)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list index")
		return
	}
	defer resp.Body.Close()

	var indexes []struct {
		Index string `json:"index"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&indexes); err != nil {
		log.Error().Err(err).Msg("Failed to decode index list")
		return
	}

	names := make([]string, 0, len(indexes))
	for _, index := range indexes {
		names = append(names, index.Index)
	}

	for _, index := range staleIndexes(names, indexName) {
		deleteReq := esapi.IndicesDeleteRequest{
			Index: []string{index},
		}

		deleteResp, err := deleteReq.Do(context.Background(), elastic_client.Client)
		if err != nil {
			log.Error().Err(err).Str("index", index).Msg("Failed to delete old index")
			continue
		}
		deleteResp.Body.Close()

		log.Info().Str("index", index).Msg("Delete old index")
	}
}
