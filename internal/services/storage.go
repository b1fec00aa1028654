package services

import (
	"context"
	"fmt"
	"time"

	"github.com/KirkDiggler/scum-bot-discord/internal/config"
	"github.com/KirkDiggler/scum-bot-discord/internal/repositories/characters"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const connectTimeout = 5 * time.Second

// OpenCharacterRepository connects the configured backend.
// The returned close func releases the connection and is never nil.
func OpenCharacterRepository(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (characters.Repository, func() error, error) {
	noop := func() error { return nil }
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case config.StorageSQLite:
		db, err := characters.OpenSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		repo, err := characters.NewSQLite(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		logger.Info("using sqlite for persistence", zap.String("path", cfg.SQLitePath))
		return repo, db.Close, nil

	case config.StorageRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to parse redis url: %w", err)
		}
		client := redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
		}
		logger.Info("using redis for persistence", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
		return characters.NewRedis(client), client.Close, nil

	case config.StorageMemory:
		logger.Warn("using in-memory persistence; ratings are lost on restart")
		return characters.NewInMemoryRepository(), noop, nil
	}

	return nil, noop, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
}
