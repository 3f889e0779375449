package pgxclient

import (
	"context"

	"github.com/francipvb/pgdialect-go/pgdialect/await"
	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

// AsyncDriver is the future-returning flavor of the client. Every operation
// yields a pending computation; nothing runs until the bridge drives it.
type AsyncDriver struct {
	driver *Driver
}

// NewAsyncDriver returns the asynchronous client handle.
func NewAsyncDriver() *AsyncDriver {
	return &AsyncDriver{driver: NewDriver()}
}

// Version reports the underlying pgx module version.
func (d *AsyncDriver) Version() string {
	return d.driver.Version()
}

// Connect yields a pending computation resolving to a live async connection.
func (d *AsyncDriver) Connect(dsn string) *await.Future[driverapi.AsyncConn] {
	return await.New(func(ctx context.Context) (driverapi.AsyncConn, error) {
		conn, err := d.driver.Connect(ctx, dsn)
		if err != nil {
			return nil, err
		}

		return &AsyncConn{conn: conn.(*Conn)}, nil
	})
}

// AsyncConn is the asynchronous shape of Conn. Reads are not suspending and
// pass straight through; mutators yield pending computations.
type AsyncConn struct {
	conn *Conn
}

func (c *AsyncConn) Autocommit() bool {
	return c.conn.Autocommit()
}

func (c *AsyncConn) IsolationLevel() driverapi.IsolationLevel {
	return c.conn.IsolationLevel()
}

func (c *AsyncConn) ReadOnly() bool {
	return c.conn.ReadOnly()
}

func (c *AsyncConn) Deferrable() bool {
	return c.conn.Deferrable()
}

func (c *AsyncConn) Closed() bool {
	return c.conn.Closed()
}

func (c *AsyncConn) Broken() bool {
	return c.conn.Broken()
}

func (c *AsyncConn) TransactionStatus() driverapi.TransactionStatus {
	return c.conn.TransactionStatus()
}

func (c *AsyncConn) AddNoticeHandler(fn driverapi.NoticeHandler) {
	c.conn.AddNoticeHandler(fn)
}

func (c *AsyncConn) SetAutocommit(v bool) *await.Future[await.Void] {
	return voidFuture(func(context.Context) error { return c.conn.SetAutocommit(v) })
}

func (c *AsyncConn) SetIsolationLevel(level driverapi.IsolationLevel) *await.Future[await.Void] {
	return voidFuture(func(context.Context) error { return c.conn.SetIsolationLevel(level) })
}

func (c *AsyncConn) SetReadOnly(v bool) *await.Future[await.Void] {
	return voidFuture(func(context.Context) error { return c.conn.SetReadOnly(v) })
}

func (c *AsyncConn) SetDeferrable(v bool) *await.Future[await.Void] {
	return voidFuture(func(context.Context) error { return c.conn.SetDeferrable(v) })
}

func (c *AsyncConn) TypeInfo(name string) *await.Future[*driverapi.TypeInfo] {
	return await.New(func(ctx context.Context) (*driverapi.TypeInfo, error) {
		return c.conn.TypeInfo(ctx, name)
	})
}

func (c *AsyncConn) Cursor() driverapi.AsyncCursor {
	return &AsyncCursor{cursor: c.conn.newCursor("", false)}
}

func (c *AsyncConn) NamedCursor(name string) driverapi.AsyncCursor {
	return &AsyncCursor{cursor: c.conn.newCursor(name, true)}
}

func (c *AsyncConn) Commit() *await.Future[await.Void] {
	return voidFuture(c.conn.Commit)
}

func (c *AsyncConn) Rollback() *await.Future[await.Void] {
	return voidFuture(c.conn.Rollback)
}

func (c *AsyncConn) Close() *await.Future[await.Void] {
	return voidFuture(c.conn.Close)
}

// AsyncCursor is the asynchronous shape of Cursor.
type AsyncCursor struct {
	cursor *Cursor
}

func (c *AsyncCursor) Execute(stmt string, args ...any) *await.Future[driverapi.ExecStatus] {
	return await.New(func(ctx context.Context) (driverapi.ExecStatus, error) {
		if err := c.cursor.Execute(ctx, stmt, args...); err != nil {
			return driverapi.ExecStatusFatalError, err
		}

		return c.cursor.Status(), nil
	})
}

func (c *AsyncCursor) ExecuteMany(stmt string, batch [][]any) *await.Future[await.Void] {
	return voidFuture(func(ctx context.Context) error {
		return c.cursor.ExecuteMany(ctx, stmt, batch)
	})
}

func (c *AsyncCursor) FetchAll() *await.Future[[]driverapi.Row] {
	return await.New(func(ctx context.Context) ([]driverapi.Row, error) {
		return c.cursor.FetchAll(ctx)
	})
}

func (c *AsyncCursor) FetchNext() *await.Future[driverapi.Row] {
	return await.New(func(ctx context.Context) (driverapi.Row, error) {
		return c.cursor.Next(ctx)
	})
}

// Teardown releases the cursor without suspending.
func (c *AsyncCursor) Teardown() {
	_ = c.cursor.Close()
}

func voidFuture(fn func(ctx context.Context) error) *await.Future[await.Void] {
	return await.New(func(ctx context.Context) (await.Void, error) {
		return await.Void{}, fn(ctx)
	})
}

var (
	_ driverapi.AsyncDriver = (*AsyncDriver)(nil)
	_ driverapi.AsyncConn   = (*AsyncConn)(nil)
	_ driverapi.AsyncCursor = (*AsyncCursor)(nil)
)
