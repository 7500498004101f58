package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/estoqueapp/estoque-api/internal/application/notification"
	"github.com/estoqueapp/estoque-api/pkg/config"
	"github.com/estoqueapp/estoque-api/pkg/logger"
)

var _ notification.UnreadCounterCache = (*UnreadCounter)(nil)

const (
	unreadKey = "notifications:unread"
	unreadTTL = 5 * time.Minute
)

// UnreadCounter cache Redis del contador de notificaciones no leídas. Todos
// los fallos de Redis degradan a cache miss; la BD sigue siendo la fuente de
// verdad.
type UnreadCounter struct {
	rdb *redis.Client
	log *logger.Logger
}

// NewUnreadCounter construye el cache sobre un cliente Redis ya conectado.
func NewUnreadCounter(rdb *redis.Client, log *logger.Logger) *UnreadCounter {
	return &UnreadCounter{rdb: rdb, log: log}
}

// NewClient crea y verifica un cliente Redis. Devuelve nil si no hay addr
// configurada (cache deshabilitado).
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// GetUnread devuelve el contador cacheado; ok=false en miss o error.
func (c *UnreadCounter) GetUnread(ctx context.Context) (int64, bool) {
	count, err := c.rdb.Get(ctx, unreadKey).Int64()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug().Err(err).Msg("cache: fallo leyendo contador de no leídas")
		}
		return 0, false
	}
	return count, true
}

// SetUnread guarda el contador con TTL corto.
func (c *UnreadCounter) SetUnread(ctx context.Context, count int64) {
	if err := c.rdb.Set(ctx, unreadKey, count, unreadTTL).Err(); err != nil {
		c.log.Debug().Err(err).Msg("cache: fallo guardando contador de no leídas")
	}
}

// Invalidate borra el contador cacheado tras una mutación del historial.
func (c *UnreadCounter) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, unreadKey).Err(); err != nil {
		c.log.Debug().Err(err).Msg("cache: fallo invalidando contador de no leídas")
	}
}
