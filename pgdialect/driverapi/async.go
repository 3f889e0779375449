package driverapi

import "github.com/francipvb/pgdialect-go/pgdialect/await"

// AsyncDriver is the asynchronous shape of a native client library. Connect
// yields a pending computation that resolves to a live async connection.
type AsyncDriver interface {
	Version() string
	Connect(dsn string) *await.Future[AsyncConn]
}

// AsyncConn is one live session whose mutating operations resolve as pending
// computations. Plain reads are not suspending operations and are exposed
// directly. Implementations serialize their own internal operations; one
// pending computation per connection is in flight at a time, guaranteed by
// the caller's single-owner discipline.
type AsyncConn interface {
	Autocommit() bool
	IsolationLevel() IsolationLevel
	ReadOnly() bool
	Deferrable() bool
	Closed() bool
	Broken() bool
	TransactionStatus() TransactionStatus
	AddNoticeHandler(fn NoticeHandler)

	SetAutocommit(v bool) *await.Future[await.Void]
	SetIsolationLevel(level IsolationLevel) *await.Future[await.Void]
	SetReadOnly(v bool) *await.Future[await.Void]
	SetDeferrable(v bool) *await.Future[await.Void]
	TypeInfo(name string) *await.Future[*TypeInfo]

	Cursor() AsyncCursor
	NamedCursor(name string) AsyncCursor

	Commit() *await.Future[await.Void]
	Rollback() *await.Future[await.Void]
	Close() *await.Future[await.Void]
}

// AsyncCursor is one statement's execution context, asynchronous shape.
type AsyncCursor interface {
	// Execute resolves to the execution status once the statement has run.
	Execute(stmt string, args ...any) *await.Future[ExecStatus]
	ExecuteMany(stmt string, batch [][]any) *await.Future[await.Void]

	// FetchAll resolves to all remaining rows in order.
	FetchAll() *await.Future[[]Row]

	// FetchNext resolves to the next row, failing with ErrNoMoreRows when
	// the result set is exhausted.
	FetchNext() *await.Future[Row]

	// Teardown releases the cursor without suspending. Errors during
	// teardown are swallowed by the implementation.
	Teardown()
}
