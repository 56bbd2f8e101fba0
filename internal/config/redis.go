package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	redisAddrEnv      = "REDIS_ADDR"
	redisPasswordEnv  = "REDIS_PASSWORD"
	redisDBEnv        = "REDIS_DB"
	redisTLSEnv       = "REDIS_TLS"
	redisKeyPrefixEnv = "REDIS_KEY_PREFIX"

	defaultRedisAddr      = "localhost:6379"
	defaultRedisKeyPrefix = "primind:"
)

// RedisConfig describes the shared redis used as the key-value store.
// KeyPrefix namespaces every key so several shops or environments can share
// one database.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	TLS       bool
	KeyPrefix string
}

func LoadRedisConfig() (*RedisConfig, error) {
	cfg := &RedisConfig{
		Addr:      os.Getenv(redisAddrEnv),
		Password:  os.Getenv(redisPasswordEnv),
		KeyPrefix: defaultRedisKeyPrefix,
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultRedisAddr
	}

	if raw := os.Getenv(redisDBEnv); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return nil, ErrInvalidRedisDB
		}
		cfg.DB = db
	}

	if raw := os.Getenv(redisTLSEnv); raw != "" {
		useTLS, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, ErrInvalidRedisTLS
		}
		cfg.TLS = useTLS
	}

	if raw := os.Getenv(redisKeyPrefixEnv); raw != "" {
		cfg.KeyPrefix = raw
	}

	return cfg, nil
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Addr == "" {
		return ErrRedisAddrMissing
	}
	// SCAN patterns treat these as wildcards.
	if strings.ContainsAny(c.KeyPrefix, "*?[]\\ \t\n") {
		return ErrInvalidRedisKeyPrefix
	}
	return nil
}
