package pgdialect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

const (
	logMsgCloseAfterHookFailed = "failed to close connection after on-connect hook failure"
	logAttrError               = "error"
)

// CreateConnectArgs turns a connect URL into the keyword/value connection
// string the native client expects. A value that is already in keyword/value
// form passes through unchanged. The configured client encoding, if any, is
// appended.
func (d *Dialect) CreateConnectArgs(rawURL string) (string, error) {
	dsn := rawURL

	if strings.Contains(rawURL, "://") {
		parsed, err := pq.ParseURL(rawURL)
		if err != nil {
			return "", errors.Join(ErrInvalidConnectURL, err)
		}

		dsn = parsed
	}

	if d.clientEncoding != "" {
		dsn = strings.TrimSpace(dsn + fmt.Sprintf(" client_encoding=%s", d.clientEncoding))
	}

	return strings.TrimSpace(dsn), nil
}

// OnConnect returns the initialization function run once per new physical
// connection. The hooks run unconditionally in fixed order: first the notice
// handler registration, then the default isolation level if one is
// configured. A hook failure propagates and aborts connection setup.
func (d *Dialect) OnConnect() func(driverapi.Conn) error {
	notices := func(conn driverapi.Conn) error {
		conn.AddNoticeHandler(d.logNotice)
		return nil
	}

	fns := []func(driverapi.Conn) error{notices}

	if d.isolationLevel != "" {
		fns = append(fns, func(conn driverapi.Conn) error {
			return d.SetIsolationLevel(conn, d.isolationLevel)
		})
	}

	return func(conn driverapi.Conn) error {
		for _, fn := range fns {
			if err := fn(conn); err != nil {
				return err
			}
		}

		return nil
	}
}

func (d *Dialect) logNotice(notice driverapi.Notice) {
	if d.logger != nil {
		d.logger.Info(fmt.Sprintf("%s: %s", notice.Severity, notice.Message))
	}
}

// IsDisconnect classifies an error as "connection lost". Only a native
// driver error on a connection that reports itself closed or broken
// qualifies; every other error is not a disconnect.
func (d *Dialect) IsDisconnect(err error, conn driverapi.Conn) bool {
	var native *driverapi.Error
	if !errors.As(err, &native) {
		return false
	}

	if conn == nil {
		return false
	}

	return conn.Closed() || conn.Broken()
}
