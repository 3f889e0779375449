package testutil

import (
	"context"

	"github.com/francipvb/pgdialect-go/pgdialect/await"
	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

// AsyncFromSync turns any synchronous driver into its future-returning
// flavor, so the same fake backs both dialect variants in tests.
func AsyncFromSync(driver driverapi.Driver) driverapi.AsyncDriver {
	return &asyncDriver{driver: driver}
}

type asyncDriver struct {
	driver driverapi.Driver
}

func (d *asyncDriver) Version() string {
	return d.driver.Version()
}

func (d *asyncDriver) Connect(dsn string) *await.Future[driverapi.AsyncConn] {
	return await.New(func(ctx context.Context) (driverapi.AsyncConn, error) {
		conn, err := d.driver.Connect(ctx, dsn)
		if err != nil {
			return nil, err
		}

		return &asyncConn{conn: conn}, nil
	})
}

type asyncConn struct {
	conn driverapi.Conn
}

func (c *asyncConn) Autocommit() bool                              { return c.conn.Autocommit() }
func (c *asyncConn) IsolationLevel() driverapi.IsolationLevel      { return c.conn.IsolationLevel() }
func (c *asyncConn) ReadOnly() bool                                { return c.conn.ReadOnly() }
func (c *asyncConn) Deferrable() bool                              { return c.conn.Deferrable() }
func (c *asyncConn) Closed() bool                                  { return c.conn.Closed() }
func (c *asyncConn) Broken() bool                                  { return c.conn.Broken() }
func (c *asyncConn) TransactionStatus() driverapi.TransactionStatus {
	return c.conn.TransactionStatus()
}

func (c *asyncConn) AddNoticeHandler(fn driverapi.NoticeHandler) {
	c.conn.AddNoticeHandler(fn)
}

func (c *asyncConn) SetAutocommit(v bool) *await.Future[await.Void] {
	return voidFuture(func(context.Context) error { return c.conn.SetAutocommit(v) })
}

func (c *asyncConn) SetIsolationLevel(level driverapi.IsolationLevel) *await.Future[await.Void] {
	return voidFuture(func(context.Context) error { return c.conn.SetIsolationLevel(level) })
}

func (c *asyncConn) SetReadOnly(v bool) *await.Future[await.Void] {
	return voidFuture(func(context.Context) error { return c.conn.SetReadOnly(v) })
}

func (c *asyncConn) SetDeferrable(v bool) *await.Future[await.Void] {
	return voidFuture(func(context.Context) error { return c.conn.SetDeferrable(v) })
}

func (c *asyncConn) TypeInfo(name string) *await.Future[*driverapi.TypeInfo] {
	return await.New(func(ctx context.Context) (*driverapi.TypeInfo, error) {
		return c.conn.TypeInfo(ctx, name)
	})
}

func (c *asyncConn) Cursor() driverapi.AsyncCursor {
	return &asyncCursor{cursor: c.conn.Cursor()}
}

func (c *asyncConn) NamedCursor(name string) driverapi.AsyncCursor {
	return &asyncCursor{cursor: c.conn.NamedCursor(name)}
}

func (c *asyncConn) Commit() *await.Future[await.Void] {
	return voidFuture(c.conn.Commit)
}

func (c *asyncConn) Rollback() *await.Future[await.Void] {
	return voidFuture(c.conn.Rollback)
}

func (c *asyncConn) Close() *await.Future[await.Void] {
	return voidFuture(c.conn.Close)
}

type asyncCursor struct {
	cursor driverapi.Cursor
}

func (c *asyncCursor) Execute(stmt string, args ...any) *await.Future[driverapi.ExecStatus] {
	return await.New(func(ctx context.Context) (driverapi.ExecStatus, error) {
		if err := c.cursor.Execute(ctx, stmt, args...); err != nil {
			return driverapi.ExecStatusFatalError, err
		}

		return c.cursor.Status(), nil
	})
}

func (c *asyncCursor) ExecuteMany(stmt string, batch [][]any) *await.Future[await.Void] {
	return voidFuture(func(ctx context.Context) error {
		return c.cursor.ExecuteMany(ctx, stmt, batch)
	})
}

func (c *asyncCursor) FetchAll() *await.Future[[]driverapi.Row] {
	return await.New(func(ctx context.Context) ([]driverapi.Row, error) {
		return c.cursor.FetchAll(ctx)
	})
}

func (c *asyncCursor) FetchNext() *await.Future[driverapi.Row] {
	return await.New(func(ctx context.Context) (driverapi.Row, error) {
		return c.cursor.Next(ctx)
	})
}

func (c *asyncCursor) Teardown() {
	_ = c.cursor.Close()
}

func voidFuture(fn func(ctx context.Context) error) *await.Future[await.Void] {
	return await.New(func(ctx context.Context) (await.Void, error) {
		return await.Void{}, fn(ctx)
	})
}

var (
	_ driverapi.AsyncDriver = (*asyncDriver)(nil)
	_ driverapi.AsyncConn   = (*asyncConn)(nil)
	_ driverapi.AsyncCursor = (*asyncCursor)(nil)
)
