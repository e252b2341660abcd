package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config interface {
	EnvConfig
	SessionConfig
	BackendConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	IsDev() bool
}

type SessionConfig interface {
	GetSessionBackend() string
	GetSessionCookieMaxAge() time.Duration
	GetSessionTTL() time.Duration
	GetSQLitePath() string
	GetRedisAddr() string
	GetRedisDB() int
	GetDraftTTL() time.Duration
}

type BackendConfig interface {
	GetBackendURL() string
	GetUploadsURL() string
	GetBackendTimeout() time.Duration
}

type mainConfig struct {
	EnvVars
	Session
	Backend
}

// New loads the configuration from the process environment.
func New(ctx context.Context) (Config, error) {
	return newWithLookuper(ctx, envconfig.OsLookuper())
}

// NewFromMap loads the configuration from a map, used by tests and tools.
func NewFromMap(ctx context.Context, values map[string]string) (Config, error) {
	return newWithLookuper(ctx, envconfig.MapLookuper(values))
}

func newWithLookuper(ctx context.Context, l envconfig.Lookuper) (Config, error) {
	var c mainConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &c,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("[config New] failed to process environment: %w", err)
	}
	if err := c.Session.validate(); err != nil {
		return nil, fmt.Errorf("[config New] %w", err)
	}
	return c, nil
}
