package pgdialect_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
	"github.com/francipvb/pgdialect-go/testutil"
)

// Full session flow through the asynchronous variant: connect, pin the
// isolation level, run a query, read the level back. Everything the access
// layer above would do with a fresh connection.
func Test_AsyncVariant_FullSessionFlow(t *testing.T) {
	fakeDriver := testutil.NewFakeDriver()
	dialect := newAsyncDialect(t, fakeDriver)

	require.True(t, dialect.IsAsync())

	conn, err := dialect.Connect(context.Background(), "host=localhost dbname=app")
	require.NoError(t, err)

	require.NoError(t, dialect.SetIsolationLevel(conn, "SERIALIZABLE"))

	native := fakeDriver.Conns[0]
	native.Results["SELECT 1"] = []driverapi.Row{{1}}

	cursor := conn.Cursor()
	require.NoError(t, cursor.Execute(context.Background(), "SELECT 1"))

	row, err := cursor.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, driverapi.Row{1}, row)
	require.NoError(t, cursor.Close())

	level, err := dialect.GetIsolationLevel(context.Background(), conn)
	require.NoError(t, err)
	assert.Equal(t, "SERIALIZABLE", level)

	require.NoError(t, conn.Close(context.Background()))
	assert.True(t, conn.Closed())
}

func Test_SyncVariant_FullSessionFlow(t *testing.T) {
	dialect, fakeDriver := newDialect(t)

	conn, err := dialect.Connect(context.Background(), "host=localhost dbname=app")
	require.NoError(t, err)

	native := fakeDriver.Conns[0]
	native.Results["SELECT version()"] = []driverapi.Row{{"PostgreSQL 16.3"}}

	cursor := conn.Cursor()
	require.NoError(t, cursor.Execute(context.Background(), "SELECT version()"))

	rows, err := cursor.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "PostgreSQL 16.3", rows[0][0])

	require.NoError(t, cursor.Close())
	require.NoError(t, conn.Commit(context.Background()))
	require.NoError(t, conn.Close(context.Background()))
}
