package bureau

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/model"
)

const scoreCacheKeyPrefix = "bureau-score:"

// RedisScoreCache is the cache-aside store in front of the bureau, keyed by
// CPF with a fixed TTL. Scores are stored as JSON; concurrent writes for the
// same key are last-write-wins.
type RedisScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisScoreCache creates a cache using the given redis client and TTL.
func NewRedisScoreCache(client *redis.Client, ttl time.Duration) *RedisScoreCache {
	return &RedisScoreCache{client: client, ttl: ttl}
}

// Get looks up a cached score. A missing key is (zero, false, nil); any
// other failure is reported so the caller can fall through to the remote
// fetch.
func (c *RedisScoreCache) Get(ctx context.Context, cpf string) (model.BureauScore, bool, error) {
	raw, err := c.client.Get(ctx, scoreCacheKeyPrefix+cpf).Result()
	if errors.Is(err, redis.Nil) {
		return model.BureauScore{}, false, nil
	}
	if err != nil {
		return model.BureauScore{}, false, fmt.Errorf("redis get bureau score: %w", err)
	}

	var score model.BureauScore
	if err := json.Unmarshal([]byte(raw), &score); err != nil {
		return model.BureauScore{}, false, fmt.Errorf("decode cached bureau score: %w", err)
	}
	return score, true, nil
}

// Set stores a score with the configured TTL.
func (c *RedisScoreCache) Set(ctx context.Context, cpf string, score model.BureauScore) error {
	payload, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("encode bureau score: %w", err)
	}
	if err := c.client.Set(ctx, scoreCacheKeyPrefix+cpf, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set bureau score: %w", err)
	}
	return nil
}
