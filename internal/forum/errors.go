package forum

import "errors"

var (
	ErrNotFound        = errors.New("post not found")
	ErrInvalidCategory = errors.New("invalid category")
)
