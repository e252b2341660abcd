package sessions

import (
	"context"
	"fmt"

	"github.com/shuzaifak/Property-Sync-Owner/internal/config"
)

// NewRepo builds the durable storage selected by configuration
func NewRepo(ctx context.Context, cfg config.SessionConfig) (Repo, error) {
	switch cfg.GetSessionBackend() {
	case config.SessionBackendSQLite:
		return OpenSQLite(ctx, cfg.GetSQLitePath())
	case config.SessionBackendRedis:
		return ConnectRedis(ctx, RedisConfig{
			Addr: cfg.GetRedisAddr(),
			DB:   cfg.GetRedisDB(),
			TTL:  cfg.GetSessionTTL(),
		})
	case config.SessionBackendMemory, "":
		return NewInMemoryRepo(), nil
	default:
		return nil, fmt.Errorf("[sessions NewRepo] unknown backend %q", cfg.GetSessionBackend())
	}
}
