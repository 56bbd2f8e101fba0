package config

import "errors"

var (
	ErrRedisAddrMissing         = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB           = errors.New("REDIS_DB must be a non-negative integer")
	ErrInvalidRedisTLS          = errors.New("REDIS_TLS must be a boolean")
	ErrInvalidRedisKeyPrefix    = errors.New("REDIS_KEY_PREFIX must not contain glob characters or whitespace")
	ErrInvalidStoreBackend      = errors.New("STORE_BACKEND must be one of memory, redis, sqlite")
	ErrSQLitePathMissing        = errors.New("SQLITE_PATH is required for the sqlite backend")
	ErrInvalidGatewayPermission = errors.New("GATEWAY_PERMISSION must be granted or denied")
	ErrInvalidGatewayTimeout    = errors.New("GATEWAY_TIMEOUT_SECONDS must be a positive integer")
	ErrInvalidTimezone          = errors.New("TIMEZONE is not a known IANA zone")
)
