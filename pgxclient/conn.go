package pgxclient

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

var errInsideTransaction = errors.New("cannot change connection characteristics inside a transaction")

const typeInfoQuery = `select t.oid, coalesce(t.typarray, 0) from pg_type t where t.typname = $1`

// Conn is one physical session. It is owned by a single logical caller at a
// time; no internal locking is added for that discipline.
type Conn struct {
	conn *pgx.Conn

	autocommit bool
	isoLevel   driverapi.IsolationLevel
	readOnly   bool
	deferrable bool

	closed   bool
	broken   bool
	handlers []driverapi.NoticeHandler
}

func (c *Conn) Autocommit() bool {
	return c.autocommit
}

func (c *Conn) SetAutocommit(v bool) error {
	if c.autocommit == v {
		return nil
	}

	if err := c.guardIdle("set_autocommit"); err != nil {
		return err
	}

	c.autocommit = v

	return nil
}

func (c *Conn) IsolationLevel() driverapi.IsolationLevel {
	return c.isoLevel
}

func (c *Conn) SetIsolationLevel(level driverapi.IsolationLevel) error {
	if err := c.guardIdle("set_isolation_level"); err != nil {
		return err
	}

	c.isoLevel = level

	return nil
}

func (c *Conn) ReadOnly() bool {
	return c.readOnly
}

func (c *Conn) SetReadOnly(v bool) error {
	if err := c.guardIdle("set_read_only"); err != nil {
		return err
	}

	c.readOnly = v

	return nil
}

func (c *Conn) Deferrable() bool {
	return c.deferrable
}

func (c *Conn) SetDeferrable(v bool) error {
	if err := c.guardIdle("set_deferrable"); err != nil {
		return err
	}

	c.deferrable = v

	return nil
}

func (c *Conn) Closed() bool {
	return c.closed || c.conn.IsClosed()
}

func (c *Conn) Broken() bool {
	return c.broken
}

func (c *Conn) TransactionStatus() driverapi.TransactionStatus {
	if c.Closed() {
		return driverapi.TxStatusUnknown
	}

	switch c.conn.PgConn().TxStatus() {
	case 'I':
		return driverapi.TxStatusIdle
	case 'T':
		return driverapi.TxStatusInTransaction
	case 'E':
		return driverapi.TxStatusInError
	case 'A':
		return driverapi.TxStatusActive
	default:
		return driverapi.TxStatusUnknown
	}
}

func (c *Conn) AddNoticeHandler(fn driverapi.NoticeHandler) {
	c.handlers = append(c.handlers, fn)
}

// TypeInfo fetches metadata for a named type. A type that does not exist in
// the database yields nil without error.
func (c *Conn) TypeInfo(ctx context.Context, name string) (*driverapi.TypeInfo, error) {
	var oid, arrayOID uint32

	err := c.conn.QueryRow(ctx, typeInfoQuery, name).Scan(&oid, &arrayOID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, c.wrapErr("type_info", err)
	}

	return &driverapi.TypeInfo{Name: name, OID: oid, ArrayOID: arrayOID}, nil
}

func (c *Conn) Cursor() driverapi.Cursor {
	return c.newCursor("", false)
}

func (c *Conn) NamedCursor(name string) driverapi.Cursor {
	return c.newCursor(name, true)
}

func (c *Conn) Commit(ctx context.Context) error {
	if c.TransactionStatus() == driverapi.TxStatusIdle {
		return nil
	}

	_, err := c.conn.Exec(ctx, "COMMIT")

	return c.wrapErr("commit", err)
}

func (c *Conn) Rollback(ctx context.Context) error {
	if c.TransactionStatus() == driverapi.TxStatusIdle {
		return nil
	}

	_, err := c.conn.Exec(ctx, "ROLLBACK")

	return c.wrapErr("rollback", err)
}

func (c *Conn) Close(ctx context.Context) error {
	if c.closed {
		return nil
	}

	c.closed = true

	return driverapi.NewError("close", c.conn.Close(ctx))
}

// ensureTransaction opens the implicit transaction block for cursor
// statements when autocommit is off and the session is idle.
func (c *Conn) ensureTransaction(ctx context.Context) error {
	if c.autocommit {
		return nil
	}

	if c.TransactionStatus() != driverapi.TxStatusIdle {
		return nil
	}

	_, err := c.conn.Exec(ctx, c.beginStatement())

	return c.wrapErr("begin", err)
}

func (c *Conn) beginStatement() string {
	var b strings.Builder
	b.WriteString("BEGIN")

	if c.isoLevel != driverapi.IsolationDefault {
		b.WriteString(" ISOLATION LEVEL ")
		b.WriteString(c.isoLevel.String())
	}

	if c.readOnly {
		b.WriteString(" READ ONLY")
	}

	if c.deferrable {
		b.WriteString(" DEFERRABLE")
	}

	return b.String()
}

func (c *Conn) guardIdle(op string) error {
	switch c.TransactionStatus() {
	case driverapi.TxStatusInTransaction, driverapi.TxStatusInError:
		return driverapi.NewError(op, errInsideTransaction)
	default:
		return nil
	}
}

// wrapErr wraps a pgx error as a native driver error and flags the
// connection broken when the session died underneath us.
func (c *Conn) wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}

	if c.conn.IsClosed() || pgconn.Timeout(err) {
		c.broken = true
	}

	return driverapi.NewError(op, err)
}

func (c *Conn) dispatchNotice(notice *pgconn.Notice) {
	if notice == nil {
		return
	}

	converted := driverapi.Notice{
		Severity: notice.Severity,
		Message:  notice.Message,
	}

	for _, handler := range c.handlers {
		handler(converted)
	}
}

var _ driverapi.Conn = (*Conn)(nil)
