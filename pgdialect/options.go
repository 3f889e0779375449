package pgdialect

import (
	"fmt"

	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

// Option defines a functional option for configuring a Dialect.
type Option func(*Dialect) error

// WithLogger sets the logger for the dialect. Server notices arrive at info
// level as "SEVERITY: message"; connection lifecycle problems are reported
// at warn and error levels.
func WithLogger(logger Logger) Option {
	return func(d *Dialect) error {
		d.logger = logger
		return nil
	}
}

// WithIsolationLevel sets a default isolation level applied to every new
// physical connection by the on-connect hook. The level must be
// "AUTOCOMMIT" or one of the four standard level names.
func WithIsolationLevel(level string) Option {
	return func(d *Dialect) error {
		if level != levelAutocommit {
			if _, ok := isolationLookup[level]; !ok {
				return fmt.Errorf("%w: %q", ErrUnknownIsolationLevel, level)
			}
		}

		d.isolationLevel = level

		return nil
	}
}

// WithClientEncoding appends a client_encoding parameter to the connection
// arguments built by CreateConnectArgs.
func WithClientEncoding(encoding string) Option {
	return func(d *Dialect) error {
		d.clientEncoding = encoding
		return nil
	}
}

// WithoutNativeInet registers plain text loaders for the inet and cidr
// types instead of the client's native handling.
func WithoutNativeInet() Option {
	return func(d *Dialect) error {
		d.nativeInet = false
		return nil
	}
}

// WithoutNativeHstore disables the hstore metadata lookup and loader
// registration performed by Initialize.
func WithoutNativeHstore() Option {
	return func(d *Dialect) error {
		d.useNativeHstore = false
		return nil
	}
}

// WithJSONSerializer replaces the serializer used when binding JSON values.
func WithJSONSerializer(fn func(value any) ([]byte, error)) Option {
	return func(d *Dialect) error {
		d.jsonSerializer = fn
		return nil
	}
}

// WithJSONDeserializer replaces the deserializer used for JSON result
// values.
func WithJSONDeserializer(fn func(data []byte) (any, error)) Option {
	return func(d *Dialect) error {
		d.jsonDeserializer = fn
		return nil
	}
}

// WithAsyncMode selects the asynchronous variant of the logical driver even
// when the plain driver name was requested. This is how a non-blocking
// engine asks for the async flavor without using the "-async" suffix.
func WithAsyncMode() Option {
	return func(d *Dialect) error {
		d.async = true
		return nil
	}
}

// WithDriver overrides the native synchronous client. Used by tests and by
// callers bringing their own client implementation.
func WithDriver(driver driverapi.Driver) Option {
	return func(d *Dialect) error {
		d.driver = driver
		return nil
	}
}

// WithAsyncDriver overrides the native asynchronous client. The dialect
// wraps it through the async adaptation layer and switches to the async
// variant.
func WithAsyncDriver(driver driverapi.AsyncDriver) Option {
	return func(d *Dialect) error {
		d.asyncDriver = driver
		d.async = true
		return nil
	}
}
