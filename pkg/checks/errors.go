package checks

import "errors"

var (
	ErrInvalidIdentifier = errors.New("invalid sql identifier")
	ErrBackendFailed     = errors.New("check backend failed")
)
