package driverapi

// TransactionStatus reports the server-side transaction state of a session.
type TransactionStatus int

const (
	// TxStatusUnknown means the connection state could not be determined,
	// typically because the connection is bad.
	TxStatusUnknown TransactionStatus = iota

	// TxStatusIdle means no transaction is in progress.
	TxStatusIdle

	// TxStatusActive means a command is currently executing.
	TxStatusActive

	// TxStatusInTransaction means the session is inside an open transaction block.
	TxStatusInTransaction

	// TxStatusInError means the session is inside a failed transaction block.
	TxStatusInError
)

// String returns a human-readable name for logging.
func (s TransactionStatus) String() string {
	switch s {
	case TxStatusIdle:
		return "idle"
	case TxStatusActive:
		return "active"
	case TxStatusInTransaction:
		return "in_transaction"
	case TxStatusInError:
		return "in_error"
	default:
		return "unknown"
	}
}

// ExecStatus reports the outcome category of one statement execution.
type ExecStatus int

const (
	// ExecStatusEmpty means the statement text was empty.
	ExecStatusEmpty ExecStatus = iota

	// ExecStatusCommandOK means the statement completed without producing rows.
	ExecStatusCommandOK

	// ExecStatusTuplesOK means the statement completed and rows are available.
	ExecStatusTuplesOK

	// ExecStatusFatalError means the statement failed.
	ExecStatusFatalError
)

// String returns a human-readable name for logging.
func (s ExecStatus) String() string {
	switch s {
	case ExecStatusCommandOK:
		return "command_ok"
	case ExecStatusTuplesOK:
		return "tuples_ok"
	case ExecStatusFatalError:
		return "fatal_error"
	default:
		return "empty"
	}
}

// IsolationLevel is a driver-native transaction isolation constant.
// IsolationDefault leaves the choice to the server.
type IsolationLevel int

const (
	IsolationDefault IsolationLevel = iota
	IsolationReadUncommitted
	IsolationReadCommitted
	IsolationRepeatableRead
	IsolationSerializable
)

// String returns the SQL spelling of the isolation level.
func (l IsolationLevel) String() string {
	switch l {
	case IsolationReadUncommitted:
		return "READ UNCOMMITTED"
	case IsolationReadCommitted:
		return "READ COMMITTED"
	case IsolationRepeatableRead:
		return "REPEATABLE READ"
	case IsolationSerializable:
		return "SERIALIZABLE"
	default:
		return "DEFAULT"
	}
}
