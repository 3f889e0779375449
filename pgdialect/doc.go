// Package pgdialect binds a native PostgreSQL client library to a generic
// blocking database-access contract.
//
// The same logical driver exists in two variants. The synchronous variant
// passes calls straight to the native client. The asynchronous variant wraps
// the client's pending-computation API through the asyncadapt layer, so both
// variants present the identical blocking surface to the access layer above.
// A blocking engine resolves the plain driver name to the synchronous
// variant; a non-blocking engine, or the explicit "-async" suffix, resolves
// to the asynchronous one.
//
// A Dialect owns the per-process driver handle, the type coercion map, and
// the connection lifecycle behavior layered on top of connect and execute:
// notice logging, default isolation level, read-only and deferrable
// characteristics, two-phase commit commands, and disconnect classification.
package pgdialect
