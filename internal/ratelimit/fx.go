package ratelimit

import (
	redis "github.com/redis/go-redis/v9"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("ratelimit",
	fx.Provide(ProvideLocker),
)

// ProvideLocker picks the redis locker when an address is configured and the
// in-process fallback otherwise.
func ProvideLocker(cfg config.Config, log *zap.Logger) Locker {
	if cfg.RedisAddr == "" {
		log.Warn("no redis address configured, using in-process customer lock")
		return NewMemoryLocker()
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	log.Info("customer lock backed by redis", zap.String("addr", cfg.RedisAddr))
	return NewRedisLocker(client)
}
