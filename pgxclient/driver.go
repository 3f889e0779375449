// Package pgxclient is the native PostgreSQL client used by the dialect,
// backed by jackc/pgx. It offers the driverapi contract in both shapes: the
// synchronous Driver/Conn/Cursor, and a future-returning asynchronous facade
// over the same engine.
//
// The client emulates the classic driver transaction discipline: with
// autocommit off, the first statement on an idle session opens an implicit
// transaction carrying the configured isolation level, read-only and
// deferrable characteristics; Commit and Rollback end it.
package pgxclient

import (
	"context"
	"runtime/debug"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

const pgxModulePath = "github.com/jackc/pgx/v5"

// fallbackVersion is reported when build info is unavailable, matching the
// client version this package is developed against.
const fallbackVersion = "5.7.5"

// Driver is the synchronous native client handle.
type Driver struct {
	version string
}

// NewDriver returns the synchronous client handle.
func NewDriver() *Driver {
	return &Driver{version: clientVersion()}
}

// Version reports the underlying pgx module version.
func (d *Driver) Version() string {
	return d.version
}

// Connect opens one physical connection. The notice callback is installed at
// config time so notices arriving during session setup are not lost.
func (d *Driver) Connect(ctx context.Context, dsn string) (driverapi.Conn, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, driverapi.NewError("connect", err)
	}

	conn := &Conn{}

	cfg.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		conn.dispatchNotice(notice)
	}

	pgxConn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, driverapi.NewError("connect", err)
	}

	conn.conn = pgxConn

	return conn, nil
}

func clientVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range info.Deps {
			if dep.Path == pgxModulePath {
				return strings.TrimPrefix(dep.Version, "v")
			}
		}
	}

	return fallbackVersion
}

var _ driverapi.Driver = (*Driver)(nil)
