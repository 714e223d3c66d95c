package submit

import "errors"

// Sentinel kinds for submission errors.
var (
	ErrBackpressure = errors.New("server backpressure")
)
