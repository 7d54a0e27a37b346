package tools

import "errors"

var (
	ErrTools       = errors.New("tool error")
	ErrUnknownTool = errors.New("unknown tool")
	ErrDuplicate   = errors.New("tool already registered")
)
