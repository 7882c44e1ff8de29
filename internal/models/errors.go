package models

import "errors"

var (
	ErrNotFound    = errors.New("file not found")
	ErrUnknownItem = errors.New("unknown item type")
)
