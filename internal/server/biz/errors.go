package biz

import "errors"

var (
	ErrInvalidAPIKey = errors.New("invalid api key")
	ErrInternal      = errors.New("server internal error, please try again later")
)
