package asyncadapt

import (
	"context"

	"github.com/francipvb/pgdialect-go/pgdialect/await"
	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

// Conn adapts an AsyncConn to the synchronous Conn contract. Mutating
// operations block on the bridge; plain reads pass straight through to the
// wrapped connection because they are not suspending operations.
type Conn struct {
	conn driverapi.AsyncConn
}

// WrapConn wraps a live native async connection.
func WrapConn(conn driverapi.AsyncConn) *Conn {
	return &Conn{conn: conn}
}

// Unwrap exposes the wrapped native async connection.
func (c *Conn) Unwrap() driverapi.AsyncConn {
	return c.conn
}

func (c *Conn) Autocommit() bool {
	return c.conn.Autocommit()
}

func (c *Conn) IsolationLevel() driverapi.IsolationLevel {
	return c.conn.IsolationLevel()
}

func (c *Conn) ReadOnly() bool {
	return c.conn.ReadOnly()
}

func (c *Conn) Deferrable() bool {
	return c.conn.Deferrable()
}

func (c *Conn) Closed() bool {
	return c.conn.Closed()
}

func (c *Conn) Broken() bool {
	return c.conn.Broken()
}

func (c *Conn) TransactionStatus() driverapi.TransactionStatus {
	return c.conn.TransactionStatus()
}

func (c *Conn) AddNoticeHandler(fn driverapi.NoticeHandler) {
	c.conn.AddNoticeHandler(fn)
}

func (c *Conn) SetAutocommit(v bool) error {
	_, err := await.Await(context.Background(), c.conn.SetAutocommit(v))
	return err
}

func (c *Conn) SetIsolationLevel(level driverapi.IsolationLevel) error {
	_, err := await.Await(context.Background(), c.conn.SetIsolationLevel(level))
	return err
}

func (c *Conn) SetReadOnly(v bool) error {
	_, err := await.Await(context.Background(), c.conn.SetReadOnly(v))
	return err
}

func (c *Conn) SetDeferrable(v bool) error {
	_, err := await.Await(context.Background(), c.conn.SetDeferrable(v))
	return err
}

func (c *Conn) TypeInfo(ctx context.Context, name string) (*driverapi.TypeInfo, error) {
	return await.Await(ctx, c.conn.TypeInfo(name))
}

// Cursor creates a client-side adapted cursor.
func (c *Conn) Cursor() driverapi.Cursor {
	return newCursor(c.conn.Cursor(), "", false)
}

// NamedCursor creates a server-side adapted cursor. Rows stay on the server
// and are fetched one bridged call at a time.
func (c *Conn) NamedCursor(name string) driverapi.Cursor {
	return newCursor(c.conn.NamedCursor(name), name, true)
}

func (c *Conn) Commit(ctx context.Context) error {
	_, err := await.Await(ctx, c.conn.Commit())
	return err
}

func (c *Conn) Rollback(ctx context.Context) error {
	_, err := await.Await(ctx, c.conn.Rollback())
	return err
}

func (c *Conn) Close(ctx context.Context) error {
	_, err := await.Await(ctx, c.conn.Close())
	return err
}

var _ driverapi.Conn = (*Conn)(nil)
