package frequency

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cacheExpiration = 7 * 24 * time.Hour

// Cache keeps aggregated tables in redis keyed by the fingerprint of the
// feeds they were computed from.
type Cache struct {
	Cache *cache.Cache[string]
}

func NewCache(client *redis.Client) *Cache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(cacheExpiration))

	return &Cache{
		Cache: cache.New[string](redisStore),
	}
}

func cacheKey(fingerprint string) string {
	return fmt.Sprintf("railaccess/frequency/%s", fingerprint)
}

func (c *Cache) Get(ctx context.Context, fingerprint string) (Table, bool) {
	if c == nil || c.Cache == nil {
		return nil, false
	}

	cached, err := c.Cache.Get(ctx, cacheKey(fingerprint))
	if err != nil {
		return nil, false
	}

	var table Table
	if err := json.Unmarshal([]byte(cached), &table); err != nil {
		log.Error().Err(err).Str("fingerprint", fingerprint).Msg("Failed to decode cached frequency table")
		return nil, false
	}

	return table, true
}

func (c *Cache) Set(ctx context.Context, fingerprint string, table Table) error {
	if c == nil || c.Cache == nil {
		return nil
	}

	encoded, err := json.Marshal(table)
	if err != nil {
		return err
	}

	return c.Cache.Set(ctx, cacheKey(fingerprint), string(encoded))
}

// AggregateCached returns the cached table for fingerprint, computing and
// storing it when absent.
func (c *Cache) AggregateCached(ctx context.Context, fingerprint string, tables func() Tables) Table {
	if table, exists := c.Get(ctx, fingerprint); exists {
		log.Info().Str("fingerprint", fingerprint).Int("stops", len(table)).Msg("Using cached frequency table")
		return table
	}

	table := Aggregate(tables())

	if err := c.Set(ctx, fingerprint, table); err != nil {
		log.Error().Err(err).Msg("Failed to cache frequency table")
	}

	return table
}
