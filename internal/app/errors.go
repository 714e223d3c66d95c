package service

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnknownTestType = errors.New("unknown test type")
	ErrNotStarted      = errors.New("service not started")
)
