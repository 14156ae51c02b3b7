package users

import "errors"

var (
	ErrNotFound           = errors.New("profile not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnsupportedAvatar  = errors.New("avatar must be an image")
	ErrNoAvatar           = errors.New("profile has no avatar")
)
