package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/sodaubai-backend/internal/config"
	"github.com/stemsi/sodaubai-backend/internal/kvstore"
)

// OpenStore connects the key-value backend named by cfg.StoreDriver. The
// returned close function releases the underlying connection.
func OpenStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (kvstore.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return kvstore.Instrument(kvstore.NewPostgresStore(pool), cfg.StoreDriver), pool.Close, nil

	case config.StoreRedis:
		rdb, err := NewRedisClient(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return kvstore.Instrument(kvstore.NewRedisStore(rdb), cfg.StoreDriver), func() { _ = rdb.Close() }, nil

	case config.StoreMemory:
		log.Warn().Msg("Using in-memory store; data is lost on restart")
		return kvstore.Instrument(kvstore.NewMemoryStore(), cfg.StoreDriver), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
