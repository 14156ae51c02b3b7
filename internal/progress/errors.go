package progress

import "errors"

var (
	ErrInvalidScore = errors.New("score out of range")
	ErrInvalidDate  = errors.New("invalid date")
)
