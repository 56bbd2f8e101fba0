package kvstore

import "errors"

var (
	ErrStoreClosed = errors.New("key-value store closed")
	ErrEmptyKey    = errors.New("empty key")
)
