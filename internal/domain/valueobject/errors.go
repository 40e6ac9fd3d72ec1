package valueobject

import "errors"

var (
	ErrInvalidFilter = errors.New("invalid filter: must be one of all, pending, completed")
)
