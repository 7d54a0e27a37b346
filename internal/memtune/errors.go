package memtune

import "errors"

var (
	ErrMemory      = errors.New("memory query failed")
	ErrUnsupported = errors.New("memory query not supported on this platform")
)
