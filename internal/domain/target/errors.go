package target

import "errors"

var (
	ErrTargetNotFound = errors.New("performance target not found")
)
