// Package asyncadapt makes a native asynchronous client usable through the
// synchronous driver contract. Every suspending operation is routed through
// the await bridge; the caller never observes a suspension point. The
// package adds no mutual exclusion of its own: the native client serializes
// its internal operations and the layer above guarantees a connection is
// used by one logical caller at a time.
package asyncadapt

import (
	"context"

	"github.com/francipvb/pgdialect-go/pgdialect/await"
	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

// Driver adapts an AsyncDriver to the synchronous Driver contract.
type Driver struct {
	inner driverapi.AsyncDriver
}

// WrapDriver wraps a native async driver handle.
func WrapDriver(inner driverapi.AsyncDriver) *Driver {
	return &Driver{inner: inner}
}

// Version reports the wrapped client's version string.
func (d *Driver) Version() string {
	return d.inner.Version()
}

// Connect drives the async connect to completion and wraps the resulting
// connection. Connect errors keep their native identity.
func (d *Driver) Connect(ctx context.Context, dsn string) (driverapi.Conn, error) {
	conn, err := await.Await(ctx, d.inner.Connect(dsn))
	if err != nil {
		return nil, err
	}

	return WrapConn(conn), nil
}
