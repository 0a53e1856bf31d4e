package availability

import "errors"

var (
	ErrUnknownTable     = errors.New("unknown table")
	ErrTableUnavailable = errors.New("table is not available")
)
