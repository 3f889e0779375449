package pgdialect

import (
	"errors"
)

var (
	// ErrUnknownDriverName is returned when the requested logical driver
	// name resolves to no known variant.
	ErrUnknownDriverName = errors.New("unknown driver name")

	// ErrDriverTooOld is returned when the native client reports a version
	// below the supported minimum.
	ErrDriverTooOld = errors.New("native client version is too old")

	// ErrInvalidDriverVersion is returned when the native client's version
	// string cannot be parsed.
	ErrInvalidDriverVersion = errors.New("native client version is not parseable")

	// ErrUnknownIsolationLevel is returned for an isolation level string
	// outside the supported set.
	ErrUnknownIsolationLevel = errors.New("unknown isolation level")

	// ErrInvalidConnectURL is returned when a connect URL cannot be turned
	// into connection arguments.
	ErrInvalidConnectURL = errors.New("invalid connect url")

	// ErrNoRowReturned is returned when a statement that must yield one row
	// yields none.
	ErrNoRowReturned = errors.New("statement returned no row")
)
