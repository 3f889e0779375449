package driverapi

import "context"

// Driver is the synchronous shape of a native client library: a factory for
// physical connections plus the client's version string. A Driver handle is
// resolved once at dialect construction and shared read-only afterwards.
type Driver interface {
	Version() string
	Connect(ctx context.Context, dsn string) (Conn, error)
}

// Conn is one live session with the database, synchronous shape. A Conn is
// exclusively owned by one logical caller at a time; implementations do not
// need to add their own locking for that discipline.
type Conn interface {
	Autocommit() bool
	SetAutocommit(v bool) error

	IsolationLevel() IsolationLevel
	SetIsolationLevel(level IsolationLevel) error

	ReadOnly() bool
	SetReadOnly(v bool) error

	Deferrable() bool
	SetDeferrable(v bool) error

	Closed() bool
	Broken() bool
	TransactionStatus() TransactionStatus

	AddNoticeHandler(fn NoticeHandler)
	TypeInfo(ctx context.Context, name string) (*TypeInfo, error)

	// Cursor creates a client-side cursor; NamedCursor creates a server-side
	// cursor that keeps its result set on the server under the given name
	// and must be closed explicitly to release the server resource.
	Cursor() Cursor
	NamedCursor(name string) Cursor

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Close(ctx context.Context) error
}

// Cursor is one statement's execution context and its pending result rows,
// synchronous shape.
type Cursor interface {
	// Name returns the server-side cursor name, empty for plain cursors.
	Name() string
	ServerSide() bool

	Execute(ctx context.Context, stmt string, args ...any) error
	ExecuteMany(ctx context.Context, stmt string, batch [][]any) error

	// Status reports the outcome of the most recent Execute.
	Status() ExecStatus

	// FetchAll returns all remaining rows in order.
	FetchAll(ctx context.Context) ([]Row, error)

	// Next returns the next row, or ErrNoMoreRows when the result set is
	// exhausted.
	Next(ctx context.Context) (Row, error)

	Close() error
}
