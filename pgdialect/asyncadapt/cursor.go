package asyncadapt

import (
	"context"
	"errors"

	"github.com/francipvb/pgdialect-go/pgdialect/await"
	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

// Cursor adapts an AsyncCursor to the synchronous Cursor contract.
//
// A client-side cursor eagerly drains the full result set into an in-memory
// queue right after execution, because the native async cursor cannot be
// iterated lazily by blocking-style callers. A server-side cursor never
// buffers; each Next bridges one native fetch.
type Cursor struct {
	cursor     driverapi.AsyncCursor
	name       string
	serverSide bool
	status     driverapi.ExecStatus
	rows       []driverapi.Row
}

func newCursor(cursor driverapi.AsyncCursor, name string, serverSide bool) *Cursor {
	return &Cursor{cursor: cursor, name: name, serverSide: serverSide}
}

// Name returns the server-side cursor name, empty for client-side cursors.
func (c *Cursor) Name() string {
	return c.name
}

func (c *Cursor) ServerSide() bool {
	return c.serverSide
}

// Status reports the outcome of the most recent Execute.
func (c *Cursor) Status() driverapi.ExecStatus {
	return c.status
}

// Execute runs the statement through the bridge. For client-side cursors,
// when the execution finished with rows available, all rows are pulled into
// the queue before control returns to the caller.
func (c *Cursor) Execute(ctx context.Context, stmt string, args ...any) error {
	status, err := await.Await(ctx, c.cursor.Execute(stmt, args...))
	if err != nil {
		c.status = driverapi.ExecStatusFatalError
		return err
	}

	c.status = status

	if !c.serverSide && status == driverapi.ExecStatusTuplesOK {
		rows, fetchErr := await.Await(ctx, c.cursor.FetchAll())
		if fetchErr != nil {
			c.status = driverapi.ExecStatusFatalError
			return fetchErr
		}

		c.rows = rows
	}

	return nil
}

// ExecuteMany submits the full parameter sequence as one bridged call.
// Batch statements do not produce row sets on this path, so nothing is
// buffered.
func (c *Cursor) ExecuteMany(ctx context.Context, stmt string, batch [][]any) error {
	_, err := await.Await(ctx, c.cursor.ExecuteMany(stmt, batch))
	if err != nil {
		c.status = driverapi.ExecStatusFatalError
		return err
	}

	c.status = driverapi.ExecStatusCommandOK

	return nil
}

// FetchAll returns all remaining rows. Client-side cursors hand out the
// drained queue; server-side cursors step through the remaining rows one
// bridged fetch at a time.
func (c *Cursor) FetchAll(ctx context.Context) ([]driverapi.Row, error) {
	if c.serverSide {
		var rows []driverapi.Row

		for {
			row, err := await.Await(ctx, c.cursor.FetchNext())
			if errors.Is(err, driverapi.ErrNoMoreRows) {
				return rows, nil
			}
			if err != nil {
				return nil, err
			}

			rows = append(rows, row)
		}
	}

	rows := c.rows
	c.rows = nil

	return rows, nil
}

// Next returns the next row, or ErrNoMoreRows once the result set is
// exhausted.
func (c *Cursor) Next(ctx context.Context) (driverapi.Row, error) {
	if c.serverSide {
		return await.Await(ctx, c.cursor.FetchNext())
	}

	if len(c.rows) == 0 {
		return nil, driverapi.ErrNoMoreRows
	}

	row := c.rows[0]
	c.rows = c.rows[1:]

	return row, nil
}

// Close discards any buffered rows and releases the native cursor through
// its non-bridged teardown path.
func (c *Cursor) Close() error {
	c.rows = nil
	c.cursor.Teardown()

	return nil
}

var _ driverapi.Cursor = (*Cursor)(nil)
