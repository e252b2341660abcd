package config

import (
	"fmt"
	"time"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendSQLite = "sqlite"
	SessionBackendRedis  = "redis"
)

type Session struct {
	Backend      string        `env:"SESSION_BACKEND, default=memory"`
	CookieMaxAge time.Duration `env:"SESSION_COOKIE_MAX_AGE, default=720h"`
	TTL          time.Duration `env:"SESSION_TTL, default=0s"` // 0 keeps entries until logout
	SQLitePath   string        `env:"SESSION_SQLITE_PATH, default=data/sessions.db"`
	RedisAddr    string        `env:"REDIS_ADDR, default=localhost:6379"`
	RedisDB      int           `env:"REDIS_DB, default=0"`
	DraftTTL     time.Duration `env:"DRAFT_TTL, default=30m"`
}

var _ SessionConfig = Session{}

func (s Session) validate() error {
	switch s.Backend {
	case SessionBackendMemory, SessionBackendSQLite, SessionBackendRedis:
		return nil
	default:
		return fmt.Errorf("unknown session backend %q", s.Backend)
	}
}

func (s Session) GetSessionBackend() string {
	return s.Backend
}

func (s Session) GetSessionCookieMaxAge() time.Duration {
	return s.CookieMaxAge
}

func (s Session) GetSessionTTL() time.Duration {
	return s.TTL
}

func (s Session) GetSQLitePath() string {
	return s.SQLitePath
}

func (s Session) GetRedisAddr() string {
	return s.RedisAddr
}

func (s Session) GetRedisDB() int {
	return s.RedisDB
}

// GetDraftTTL is how long an untouched property draft and its uploaded files are kept
func (s Session) GetDraftTTL() time.Duration {
	return s.DraftTTL
}
