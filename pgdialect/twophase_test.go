package pgdialect_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
	"github.com/francipvb/pgdialect-go/testutil"
)

func Test_DoPrepareTwoPhase_IssuesPrepareStatement(t *testing.T) {
	dialect, fakeDriver := newDialect(t)
	_, fake := connectFake(t, dialect, fakeDriver)

	xid := "_pgdialect_test_xid"
	require.NoError(t, dialect.DoPrepareTwoPhase(context.Background(), fake, xid))

	assert.Contains(t, fake.Executed, fmt.Sprintf("PREPARE TRANSACTION '%s'", xid))
}

func Test_DoCommitTwoPhase_UnpreparedDegradesToPlainCommit(t *testing.T) {
	dialect, fakeDriver := newDialect(t)
	_, fake := connectFake(t, dialect, fakeDriver)

	require.NoError(t, dialect.DoCommitTwoPhase(context.Background(), fake, "xid", false, false))

	assert.Equal(t, 1, fake.Commits)
	assert.Empty(t, fake.Executed)
}

func Test_DoRollbackTwoPhase_UnpreparedDegradesToPlainRollback(t *testing.T) {
	dialect, fakeDriver := newDialect(t)
	_, fake := connectFake(t, dialect, fakeDriver)

	require.NoError(t, dialect.DoRollbackTwoPhase(context.Background(), fake, "xid", false, false))

	assert.Equal(t, 1, fake.Rollbacks)
	assert.Empty(t, fake.Executed)
}

func Test_DoCommitTwoPhase_PreparedRunsOutsideTransactionAndRestoresAutocommit(t *testing.T) {
	dialect, fakeDriver := newDialect(t)
	_, fake := connectFake(t, dialect, fakeDriver)

	require.False(t, fake.Autocommit())

	xid := "_pgdialect_commit_me"
	require.NoError(t, dialect.DoCommitTwoPhase(context.Background(), fake, xid, true, false))

	assert.Contains(t, fake.Executed, fmt.Sprintf("COMMIT PREPARED '%s'", xid))
	assert.False(t, fake.Autocommit())
	assert.Equal(t, driverapi.TxStatusIdle, fake.TransactionStatus())
}

func Test_DoCommitTwoPhase_RestoresAutocommitEvenWhenStatementFails(t *testing.T) {
	dialect, fakeDriver := newDialect(t)
	_, fake := connectFake(t, dialect, fakeDriver)

	xid := "_pgdialect_doomed"
	statement := fmt.Sprintf("COMMIT PREPARED '%s'", xid)

	sentinel := errors.New("prepared transaction does not exist")
	fake.Fail[statement] = sentinel

	err := dialect.DoCommitTwoPhase(context.Background(), fake, xid, true, false)

	assert.ErrorIs(t, err, sentinel)
	assert.False(t, fake.Autocommit())
}

func Test_DoCommitTwoPhase_AlreadyAutocommitNeedsNoRestore(t *testing.T) {
	dialect, fakeDriver := newDialect(t)
	_, fake := connectFake(t, dialect, fakeDriver)

	require.NoError(t, fake.SetAutocommit(true))

	xid := "_pgdialect_auto"
	require.NoError(t, dialect.DoCommitTwoPhase(context.Background(), fake, xid, true, false))

	assert.True(t, fake.Autocommit())
}

func Test_DoRollbackTwoPhase_OpenTransactionIsRolledBackFirst(t *testing.T) {
	dialect, fakeDriver := newDialect(t)
	_, fake := connectFake(t, dialect, fakeDriver)

	cursor := fake.Cursor()
	require.NoError(t, cursor.Execute(context.Background(), "SELECT 1"))
	require.Equal(t, driverapi.TxStatusInTransaction, fake.TransactionStatus())

	xid := "_pgdialect_roll_me"
	require.NoError(t, dialect.DoRollbackTwoPhase(context.Background(), fake, xid, true, false))

	assert.Equal(t, 1, fake.Rollbacks)
	assert.Contains(t, fake.Executed, fmt.Sprintf("ROLLBACK PREPARED '%s'", xid))
	assert.False(t, fake.Autocommit())
}

func Test_DoRollbackTwoPhase_RecoverForcesRollbackOnIdleSession(t *testing.T) {
	dialect, fakeDriver := newDialect(t)
	_, fake := connectFake(t, dialect, fakeDriver)

	require.Equal(t, driverapi.TxStatusIdle, fake.TransactionStatus())

	require.NoError(t, dialect.DoRollbackTwoPhase(context.Background(), fake, "_pgdialect_rec", true, true))

	assert.Equal(t, 1, fake.Rollbacks)
}

func Test_TwoPhase_FullCycleAgainstAsyncVariant(t *testing.T) {
	fakeDriver := testutil.NewFakeDriver()

	dialect := newAsyncDialect(t, fakeDriver)
	conn, err := dialect.Connect(context.Background(), "host=localhost")
	require.NoError(t, err)

	xid := "_pgdialect_async_cycle"

	require.NoError(t, dialect.DoPrepareTwoPhase(context.Background(), conn, xid))
	require.NoError(t, dialect.DoCommitTwoPhase(context.Background(), conn, xid, true, false))

	native := fakeDriver.Conns[0]
	assert.Contains(t, native.Executed, fmt.Sprintf("PREPARE TRANSACTION '%s'", xid))
	assert.Contains(t, native.Executed, fmt.Sprintf("COMMIT PREPARED '%s'", xid))
	assert.False(t, native.Autocommit())
}
