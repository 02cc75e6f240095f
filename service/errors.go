package service

import "errors"

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrInvalidGame     = errors.New("invalid game settings")
	ErrInvalidEvent    = errors.New("invalid event settings")
	ErrInvalidUser     = errors.New("invalid user details")
	ErrUnauthenticated = errors.New("authentication required")
)
