package errors

import "errors"

var (
	ErrInvalidCapacity = errors.New("invalid capacity")
	ErrUnknownPolicy   = errors.New("unknown policy")
	ErrBadScript       = errors.New("bad script")
)
