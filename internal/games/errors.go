package games

import "errors"

var (
	ErrInvalidSession = errors.New("invalid game session")
	ErrUnknownGame    = errors.New("unknown game type")
)
