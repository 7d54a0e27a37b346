package engine

import "errors"

var (
	ErrEngine = errors.New("engine flag error")
)
