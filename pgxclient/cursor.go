package pgxclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

// Cursor is one statement's execution context. Client-side cursors keep
// their full result set in memory, the way classic drivers buffer the
// server reply; server-side cursors are DECLAREd under their name and
// fetched incrementally.
type Cursor struct {
	conn       *Conn
	name       string
	serverSide bool

	status   driverapi.ExecStatus
	rows     []driverapi.Row
	declared bool
	closed   bool
}

func (c *Conn) newCursor(name string, serverSide bool) *Cursor {
	return &Cursor{conn: c, name: name, serverSide: serverSide}
}

func (cur *Cursor) Name() string {
	return cur.name
}

func (cur *Cursor) ServerSide() bool {
	return cur.serverSide
}

func (cur *Cursor) Status() driverapi.ExecStatus {
	return cur.status
}

func (cur *Cursor) Execute(ctx context.Context, stmt string, args ...any) error {
	if err := cur.conn.ensureTransaction(ctx); err != nil {
		return err
	}

	if cur.serverSide {
		return cur.executeDeclare(ctx, stmt, args...)
	}

	return cur.executeBuffered(ctx, stmt, args...)
}

func (cur *Cursor) executeBuffered(ctx context.Context, stmt string, args ...any) error {
	rows, err := cur.conn.conn.Query(ctx, stmt, encodeArgs(args)...)
	if err != nil {
		cur.status = driverapi.ExecStatusFatalError
		return cur.conn.wrapErr("execute", err)
	}
	defer rows.Close()

	hasFields := len(rows.FieldDescriptions()) > 0

	var collected []driverapi.Row

	for rows.Next() {
		values, valuesErr := rows.Values()
		if valuesErr != nil {
			cur.status = driverapi.ExecStatusFatalError
			return cur.conn.wrapErr("execute", valuesErr)
		}

		collected = append(collected, decodeRow(values))
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		cur.status = driverapi.ExecStatusFatalError
		return cur.conn.wrapErr("execute", rowsErr)
	}

	if hasFields {
		cur.status = driverapi.ExecStatusTuplesOK
		cur.rows = collected
	} else {
		cur.status = driverapi.ExecStatusCommandOK
		cur.rows = nil
	}

	return nil
}

func (cur *Cursor) executeDeclare(ctx context.Context, stmt string, args ...any) error {
	declare := fmt.Sprintf("DECLARE %s CURSOR FOR %s", quoteIdent(cur.name), stmt)

	_, err := cur.conn.conn.Exec(ctx, declare, encodeArgs(args)...)
	if err != nil {
		cur.status = driverapi.ExecStatusFatalError
		return cur.conn.wrapErr("declare", err)
	}

	cur.declared = true
	cur.status = driverapi.ExecStatusTuplesOK

	return nil
}

// ExecuteMany submits the whole parameter sequence as one batch on the wire.
func (cur *Cursor) ExecuteMany(ctx context.Context, stmt string, batch [][]any) error {
	if err := cur.conn.ensureTransaction(ctx); err != nil {
		return err
	}

	pgxBatch := &pgx.Batch{}
	for _, params := range batch {
		pgxBatch.Queue(stmt, encodeArgs(params)...)
	}

	results := cur.conn.conn.SendBatch(ctx, pgxBatch)

	for range batch {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			cur.status = driverapi.ExecStatusFatalError
			return cur.conn.wrapErr("executemany", err)
		}
	}

	if err := results.Close(); err != nil {
		cur.status = driverapi.ExecStatusFatalError
		return cur.conn.wrapErr("executemany", err)
	}

	cur.status = driverapi.ExecStatusCommandOK
	cur.rows = nil

	return nil
}

func (cur *Cursor) FetchAll(ctx context.Context) ([]driverapi.Row, error) {
	if cur.serverSide {
		return cur.fetchServerSide(ctx, "FETCH ALL FROM %s")
	}

	rows := cur.rows
	cur.rows = nil

	return rows, nil
}

func (cur *Cursor) Next(ctx context.Context) (driverapi.Row, error) {
	if cur.serverSide {
		rows, err := cur.fetchServerSide(ctx, "FETCH FORWARD 1 FROM %s")
		if err != nil {
			return nil, err
		}

		if len(rows) == 0 {
			return nil, driverapi.ErrNoMoreRows
		}

		return rows[0], nil
	}

	if len(cur.rows) == 0 {
		return nil, driverapi.ErrNoMoreRows
	}

	row := cur.rows[0]
	cur.rows = cur.rows[1:]

	return row, nil
}

func (cur *Cursor) fetchServerSide(ctx context.Context, stmtTemplate string) ([]driverapi.Row, error) {
	fetch := fmt.Sprintf(stmtTemplate, quoteIdent(cur.name))

	rows, err := cur.conn.conn.Query(ctx, fetch)
	if err != nil {
		return nil, cur.conn.wrapErr("fetch", err)
	}
	defer rows.Close()

	var collected []driverapi.Row

	for rows.Next() {
		values, valuesErr := rows.Values()
		if valuesErr != nil {
			return nil, cur.conn.wrapErr("fetch", valuesErr)
		}

		collected = append(collected, decodeRow(values))
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, cur.conn.wrapErr("fetch", rowsErr)
	}

	return collected, nil
}

// Close releases the cursor. A declared server-side cursor is CLOSEd on the
// server to free its resources; the buffered queue is always discarded.
func (cur *Cursor) Close() error {
	if cur.closed {
		return nil
	}

	cur.closed = true
	cur.rows = nil

	if cur.serverSide && cur.declared && !cur.conn.Closed() {
		_, err := cur.conn.conn.Exec(context.Background(), fmt.Sprintf("CLOSE %s", quoteIdent(cur.name)))
		return cur.conn.wrapErr("close_cursor", err)
	}

	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

var _ driverapi.Cursor = (*Cursor)(nil)
