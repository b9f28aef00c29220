package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"github.com/sells-group/admissions-geo/internal/model"
)

// RedisStore keeps each record as a JSON string under prefix+Key(url), with
// no expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(url string) string {
	return s.prefix + Key(url)
}

func (s *RedisStore) Get(ctx context.Context, url string) (*model.CachedPageRecord, error) {
	val, err := s.client.Get(ctx, s.key(url)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "redis: get page")
	}

	var rec model.CachedPageRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, eris.Wrap(err, "redis: unmarshal page")
	}
	return &rec, nil
}

func (s *RedisStore) Put(ctx context.Context, url string, rec *model.CachedPageRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "redis: marshal page")
	}
	return eris.Wrap(s.client.Set(ctx, s.key(url), data, 0).Err(), "redis: put page")
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
