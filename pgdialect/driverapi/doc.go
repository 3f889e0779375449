// Package driverapi defines the contract between the dialect layer and a
// native PostgreSQL client library.
//
// The same contract exists in two shapes. The synchronous shape
// (Driver/Conn/Cursor) is what the dialect layer consumes and what it
// exposes upward: every call blocks until the database has answered. The
// asynchronous shape (AsyncDriver/AsyncConn/AsyncCursor) is offered by
// clients whose operations resolve as pending computations; it is turned
// back into the synchronous shape by the asyncadapt package.
//
// The package owns no connection machinery of its own. Enums, the native
// error type, notices, and the native wire representations of ranges and
// JSON values live here so that both shapes and all client implementations
// share them.
package driverapi
