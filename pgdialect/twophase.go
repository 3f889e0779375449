package pgdialect

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

// NewXID produces a unique global transaction identifier for two-phase
// commit.
func NewXID() string {
	return fmt.Sprintf("_pgdialect_%s", uuid.NewString())
}

// DoPrepareTwoPhase prepares the current transaction under the given global
// transaction id. It runs inside the open transaction; after it succeeds the
// transaction is detached from the session and must be finished with
// DoCommitTwoPhase or DoRollbackTwoPhase.
func (d *Dialect) DoPrepareTwoPhase(ctx context.Context, conn driverapi.Conn, xid string) error {
	cursor := conn.Cursor()
	defer d.closeCursor(cursor)

	return cursor.Execute(ctx, fmt.Sprintf("PREPARE TRANSACTION '%s'", xid))
}

// DoCommitTwoPhase commits a prepared global transaction. With isPrepared
// false it degrades to a plain commit of the current transaction.
func (d *Dialect) DoCommitTwoPhase(
	ctx context.Context,
	conn driverapi.Conn,
	xid string,
	isPrepared bool,
	recover bool,
) error {
	if !isPrepared {
		return conn.Commit(ctx)
	}

	return d.doPreparedTwoPhase(ctx, conn, fmt.Sprintf("COMMIT PREPARED '%s'", xid), recover)
}

// DoRollbackTwoPhase rolls back a prepared global transaction. With
// isPrepared false it degrades to a plain rollback.
func (d *Dialect) DoRollbackTwoPhase(
	ctx context.Context,
	conn driverapi.Conn,
	xid string,
	isPrepared bool,
	recover bool,
) error {
	if !isPrepared {
		return conn.Rollback(ctx)
	}

	return d.doPreparedTwoPhase(ctx, conn, fmt.Sprintf("ROLLBACK PREPARED '%s'", xid), recover)
}

// doPreparedTwoPhase issues a COMMIT PREPARED / ROLLBACK PREPARED statement
// on a side cursor. The statement must run outside a transaction block, so
// autocommit is forced on for its duration and restored afterwards no matter
// how the statement ends. A restore failure never masks the statement's own
// error.
func (d *Dialect) doPreparedTwoPhase(
	ctx context.Context,
	conn driverapi.Conn,
	command string,
	recover bool,
) (err error) {
	if recover || conn.TransactionStatus() != driverapi.TxStatusIdle {
		if rbErr := conn.Rollback(ctx); rbErr != nil {
			return rbErr
		}
	}

	beforeAutocommit := conn.Autocommit()

	if !beforeAutocommit {
		if acErr := conn.SetAutocommit(true); acErr != nil {
			return acErr
		}

		defer func() {
			restoreErr := conn.SetAutocommit(beforeAutocommit)
			if restoreErr != nil && err == nil {
				err = restoreErr
			}
		}()
	}

	cursor := conn.Cursor()
	defer d.closeCursor(cursor)

	return cursor.Execute(ctx, command)
}
