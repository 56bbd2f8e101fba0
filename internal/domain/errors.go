package domain

import "errors"

var (
	ErrPermissionDenied   = errors.New("notification permission denied")
	ErrGatewayUnavailable = errors.New("scheduling gateway unavailable")
	ErrKeyNotFound        = errors.New("key not found")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrInvalidRecord      = errors.New("invalid record")
)
