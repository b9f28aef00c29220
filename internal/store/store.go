// Package store persists parsed page records keyed by a hash of their URL.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/rotisserie/eris"
	"github.com/redis/go-redis/v9"

	"github.com/sells-group/admissions-geo/internal/config"
	"github.com/sells-group/admissions-geo/internal/model"
)

// Store is the durable page cache. Entries are append-only: Get never
// fetches, and Put replaces the whole record for a URL.
type Store interface {
	// Get returns the cached record for url, or nil, nil on a miss.
	Get(ctx context.Context, url string) (*model.CachedPageRecord, error)
	Put(ctx context.Context, url string, rec *model.CachedPageRecord) error
	Close() error
}

// Key returns the storage key for a URL: the hex SHA-256 of the URL string.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Open creates the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.CacheConfig) (Store, error) {
	switch cfg.Driver {
	case "", "file":
		return NewFile(cfg.Dir)
	case "sqlite":
		s, err := NewSQLite(cfg.DSN)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, eris.Wrapf(err, "redis: ping %s", cfg.RedisAddr)
		}
		return NewRedis(client, cfg.RedisPrefix), nil
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
