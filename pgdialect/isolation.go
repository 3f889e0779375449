package pgdialect

import (
	"context"
	"fmt"
	"strings"

	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

const levelAutocommit = "AUTOCOMMIT"

const stmtShowIsolationLevel = "SHOW TRANSACTION ISOLATION LEVEL"

// isolationLookup maps the supported level names to driver-native constants.
// Matching is by exact string.
var isolationLookup = map[string]driverapi.IsolationLevel{
	"READ COMMITTED":   driverapi.IsolationReadCommitted,
	"READ UNCOMMITTED": driverapi.IsolationReadUncommitted,
	"REPEATABLE READ":  driverapi.IsolationRepeatableRead,
	"SERIALIZABLE":     driverapi.IsolationSerializable,
}

// SetIsolationLevel applies an isolation level by name. "AUTOCOMMIT" toggles
// the connection into autocommit mode with no explicit level; the four
// standard level names toggle autocommit off and apply the matching native
// constant. Any other string is a configuration error and leaves the
// connection untouched.
func (d *Dialect) SetIsolationLevel(conn driverapi.Conn, level string) error {
	if level == levelAutocommit {
		return d.doIsolationLevel(conn, true, driverapi.IsolationDefault)
	}

	native, ok := isolationLookup[level]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownIsolationLevel, level)
	}

	return d.doIsolationLevel(conn, false, native)
}

func (d *Dialect) doIsolationLevel(
	conn driverapi.Conn,
	autocommit bool,
	level driverapi.IsolationLevel,
) error {
	if err := conn.SetAutocommit(autocommit); err != nil {
		return err
	}

	return conn.SetIsolationLevel(level)
}

// GetIsolationLevel reads the session's current isolation level. The
// transaction status is snapshotted first; when the session was idle, the
// implicit transaction opened purely by this inspection is rolled back
// before returning.
func (d *Dialect) GetIsolationLevel(ctx context.Context, conn driverapi.Conn) (string, error) {
	statusBefore := conn.TransactionStatus()

	cursor := conn.Cursor()
	defer d.closeCursor(cursor)

	if err := cursor.Execute(ctx, stmtShowIsolationLevel); err != nil {
		return "", err
	}

	row, err := cursor.Next(ctx)
	if err != nil {
		return "", err
	}

	if len(row) == 0 {
		return "", ErrNoRowReturned
	}

	level := strings.ToUpper(fmt.Sprint(row[0]))

	if statusBefore == driverapi.TxStatusIdle {
		if rbErr := conn.Rollback(ctx); rbErr != nil {
			return "", rbErr
		}
	}

	return level, nil
}

// SetReadOnly sets the session's read-only characteristic.
func (d *Dialect) SetReadOnly(conn driverapi.Conn, value bool) error {
	return conn.SetReadOnly(value)
}

// GetReadOnly reports the session's read-only characteristic.
func (d *Dialect) GetReadOnly(conn driverapi.Conn) bool {
	return conn.ReadOnly()
}

// SetDeferrable sets the session's deferrable characteristic.
func (d *Dialect) SetDeferrable(conn driverapi.Conn, value bool) error {
	return conn.SetDeferrable(value)
}

// GetDeferrable reports the session's deferrable characteristic.
func (d *Dialect) GetDeferrable(conn driverapi.Conn) bool {
	return conn.Deferrable()
}

func (d *Dialect) closeCursor(cursor driverapi.Cursor) {
	if closeErr := cursor.Close(); closeErr != nil && d.logger != nil {
		d.logger.Warn("failed to close cursor", logAttrError, closeErr.Error())
	}
}
