package shift

import "errors"

var (
	ErrShiftNotFound = errors.New("shift assignment not found")
)
