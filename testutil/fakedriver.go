// Package testutil provides an in-memory fake of the native driver contract
// for tests that need deterministic connections, canned result sets, and
// scripted failures without a running database.
package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

// FakeDriver implements driverapi.Driver against in-memory connections.
type FakeDriver struct {
	DriverVersion string
	ConnectErr    error

	// Conns collects every connection handed out, in order.
	Conns []*FakeConn
}

// NewFakeDriver returns a fake driver reporting a current client version.
func NewFakeDriver() *FakeDriver {
	return &FakeDriver{DriverVersion: "5.7.5"}
}

func (d *FakeDriver) Version() string {
	return d.DriverVersion
}

func (d *FakeDriver) Connect(_ context.Context, dsn string) (driverapi.Conn, error) {
	if d.ConnectErr != nil {
		return nil, driverapi.NewError("connect", d.ConnectErr)
	}

	conn := NewFakeConn()
	conn.DSN = dsn
	d.Conns = append(d.Conns, conn)

	return conn, nil
}

// FakeConn is one in-memory session. Statements are answered from Results,
// failed from Fail, and recorded in Executed. The connection emulates the
// implicit-transaction discipline: with autocommit off, a statement on an
// idle session moves it to in-transaction until Commit or Rollback.
type FakeConn struct {
	DSN string

	// Results maps statement text to the rows it yields.
	Results map[string][]driverapi.Row

	// Fail maps statement text to a scripted failure.
	Fail map[string]error

	// TypeInfos maps type names answered by TypeInfo.
	TypeInfos map[string]*driverapi.TypeInfo

	Executed  []string
	Commits   int
	Rollbacks int
	Cursors   []*FakeCursor

	autocommit bool
	isoLevel   driverapi.IsolationLevel
	readOnly   bool
	deferrable bool

	ClosedFlag    bool
	BrokenFlag    bool
	inTransaction bool

	handlers []driverapi.NoticeHandler
}

// NewFakeConn returns an idle open connection with autocommit off.
func NewFakeConn() *FakeConn {
	return &FakeConn{
		Results:   make(map[string][]driverapi.Row),
		Fail:      make(map[string]error),
		TypeInfos: make(map[string]*driverapi.TypeInfo),
	}
}

func (c *FakeConn) Autocommit() bool { return c.autocommit }

func (c *FakeConn) SetAutocommit(v bool) error {
	c.autocommit = v
	return nil
}

func (c *FakeConn) IsolationLevel() driverapi.IsolationLevel { return c.isoLevel }

func (c *FakeConn) SetIsolationLevel(level driverapi.IsolationLevel) error {
	c.isoLevel = level
	return nil
}

func (c *FakeConn) ReadOnly() bool { return c.readOnly }

func (c *FakeConn) SetReadOnly(v bool) error {
	c.readOnly = v
	return nil
}

func (c *FakeConn) Deferrable() bool { return c.deferrable }

func (c *FakeConn) SetDeferrable(v bool) error {
	c.deferrable = v
	return nil
}

func (c *FakeConn) Closed() bool { return c.ClosedFlag }

func (c *FakeConn) Broken() bool { return c.BrokenFlag }

func (c *FakeConn) TransactionStatus() driverapi.TransactionStatus {
	if c.ClosedFlag {
		return driverapi.TxStatusUnknown
	}

	if c.inTransaction {
		return driverapi.TxStatusInTransaction
	}

	return driverapi.TxStatusIdle
}

func (c *FakeConn) AddNoticeHandler(fn driverapi.NoticeHandler) {
	c.handlers = append(c.handlers, fn)
}

// EmitNotice pushes a notice through the registered handlers, as the server
// would during a session.
func (c *FakeConn) EmitNotice(notice driverapi.Notice) {
	for _, handler := range c.handlers {
		handler(notice)
	}
}

func (c *FakeConn) TypeInfo(_ context.Context, name string) (*driverapi.TypeInfo, error) {
	return c.TypeInfos[name], nil
}

func (c *FakeConn) Cursor() driverapi.Cursor {
	return c.newCursor("", false)
}

func (c *FakeConn) NamedCursor(name string) driverapi.Cursor {
	return c.newCursor(name, true)
}

func (c *FakeConn) Commit(context.Context) error {
	c.Commits++
	c.inTransaction = false

	return nil
}

func (c *FakeConn) Rollback(context.Context) error {
	c.Rollbacks++
	c.inTransaction = false

	return nil
}

func (c *FakeConn) Close(context.Context) error {
	c.ClosedFlag = true
	return nil
}

func (c *FakeConn) newCursor(name string, serverSide bool) *FakeCursor {
	cursor := &FakeCursor{conn: c, name: name, serverSide: serverSide}
	c.Cursors = append(c.Cursors, cursor)

	return cursor
}

func (c *FakeConn) runStatement(stmt string) ([]driverapi.Row, error) {
	c.Executed = append(c.Executed, stmt)

	if err := c.Fail[stmt]; err != nil {
		return nil, driverapi.NewError("execute", err)
	}

	if !c.autocommit {
		c.inTransaction = true
	}

	if strings.EqualFold(stmt, "SHOW TRANSACTION ISOLATION LEVEL") {
		level := c.isoLevel
		if level == driverapi.IsolationDefault {
			level = driverapi.IsolationReadCommitted
		}

		return []driverapi.Row{{strings.ToLower(level.String())}}, nil
	}

	return c.Results[stmt], nil
}

// FakeCursor is one statement context over a FakeConn. Counters expose how
// the layer above drove it.
type FakeCursor struct {
	conn       *FakeConn
	name       string
	serverSide bool

	status  driverapi.ExecStatus
	pending []driverapi.Row
	closed  bool

	ExecuteCalls   int
	FetchAllCalls  int
	FetchNextCalls int
}

func (cur *FakeCursor) Name() string { return cur.name }

func (cur *FakeCursor) ServerSide() bool { return cur.serverSide }

func (cur *FakeCursor) Status() driverapi.ExecStatus { return cur.status }

func (cur *FakeCursor) Execute(_ context.Context, stmt string, _ ...any) error {
	cur.ExecuteCalls++

	rows, err := cur.conn.runStatement(stmt)
	if err != nil {
		cur.status = driverapi.ExecStatusFatalError
		return err
	}

	cur.pending = rows

	if rows != nil {
		cur.status = driverapi.ExecStatusTuplesOK
	} else {
		cur.status = driverapi.ExecStatusCommandOK
	}

	return nil
}

func (cur *FakeCursor) ExecuteMany(_ context.Context, stmt string, batch [][]any) error {
	cur.ExecuteCalls++

	for range batch {
		if _, err := cur.conn.runStatement(stmt); err != nil {
			cur.status = driverapi.ExecStatusFatalError
			return err
		}
	}

	cur.status = driverapi.ExecStatusCommandOK

	return nil
}

func (cur *FakeCursor) FetchAll(context.Context) ([]driverapi.Row, error) {
	cur.FetchAllCalls++

	rows := cur.pending
	cur.pending = nil

	return rows, nil
}

func (cur *FakeCursor) Next(context.Context) (driverapi.Row, error) {
	cur.FetchNextCalls++

	if len(cur.pending) == 0 {
		return nil, driverapi.ErrNoMoreRows
	}

	row := cur.pending[0]
	cur.pending = cur.pending[1:]

	return row, nil
}

func (cur *FakeCursor) Close() error {
	if cur.closed {
		return fmt.Errorf("cursor already closed")
	}

	cur.closed = true
	cur.pending = nil

	return nil
}

var (
	_ driverapi.Driver = (*FakeDriver)(nil)
	_ driverapi.Conn   = (*FakeConn)(nil)
	_ driverapi.Cursor = (*FakeCursor)(nil)
)
