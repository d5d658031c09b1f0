package cache

import "errors"

var (
	ErrUnsupportedBackend = errors.New("unsupported cache backend")
	ErrBackendUnavailable = errors.New("cache backend unavailable")
)
