package pgdialect

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/francipvb/pgdialect-go/pgdialect/asyncadapt"
	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
	"github.com/francipvb/pgdialect-go/pgdialect/pgtypes"
	"github.com/francipvb/pgdialect-go/pgxclient"
)

// Logical driver names. The same logical driver resolves to the synchronous
// variant for a blocking engine and to the asynchronous variant for a
// non-blocking engine or when the "-async" suffix is requested explicitly.
const (
	DriverNamePGX      = "pgx"
	DriverNamePGXAsync = "pgx-async"
)

// Minimum supported native client version.
var minDriverVersion = [3]int{5, 0, 0}

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// Dialect binds a native PostgreSQL client to the blocking driver contract
// consumed by the access layer above. A Dialect is constructed once; setup
// ends with Initialize on the first connection, which may still register
// loaders on the coercion map. After that the dialect is consulted read-only
// and is safe to share.
type Dialect struct {
	driver      driverapi.Driver
	asyncDriver driverapi.AsyncDriver
	async       bool

	logger           Logger
	isolationLevel   string
	clientEncoding   string
	nativeInet       bool
	useNativeHstore  bool
	jsonSerializer   func(value any) ([]byte, error)
	jsonDeserializer func(data []byte) (any, error)

	adapters        *pgtypes.Map
	version         [3]int
	hasNativeHstore bool
}

// New creates the dialect variant for the given logical driver name.
// Configuration problems (unknown name, unknown isolation level, too-old
// native client) fail here, before any connection is made.
func New(name string, options ...Option) (*Dialect, error) {
	d := &Dialect{
		nativeInet:      true,
		useNativeHstore: true,
	}

	switch name {
	case DriverNamePGX:
	case DriverNamePGXAsync:
		d.async = true
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriverName, name)
	}

	for _, option := range options {
		if err := option(d); err != nil {
			return nil, err
		}
	}

	if d.driver == nil {
		switch {
		case d.asyncDriver != nil:
			d.driver = asyncadapt.WrapDriver(d.asyncDriver)
		case d.async:
			d.driver = asyncadapt.WrapDriver(pgxclient.NewAsyncDriver())
		default:
			d.driver = pgxclient.NewDriver()
		}
	}

	version, err := parseDriverVersion(d.driver.Version())
	if err != nil {
		return nil, err
	}
	d.version = version

	if versionLess(version, minDriverVersion) {
		return nil, fmt.Errorf("%w: have %s, need at least %d.%d.%d",
			ErrDriverTooOld, d.driver.Version(),
			minDriverVersion[0], minDriverVersion[1], minDriverVersion[2])
	}

	d.adapters = d.buildAdaptersMap()

	return d, nil
}

// Driver returns the driver-shaped handle exposed to the access layer:
// connect plus the native error and status types of the driverapi package.
func (d *Dialect) Driver() driverapi.Driver {
	return d.driver
}

// IsAsync reports whether this dialect runs the asynchronous variant.
func (d *Dialect) IsAsync() bool {
	return d.async
}

// Adapters returns the dialect's type coercion map.
func (d *Dialect) Adapters() *pgtypes.Map {
	return d.adapters
}

// DriverVersion returns the memoized parsed native client version.
func (d *Dialect) DriverVersion() (major, minor, patch int) {
	return d.version[0], d.version[1], d.version[2]
}

// Connect establishes a physical connection and runs the on-connect hooks
// on it. Hook failures abort the setup and close the connection.
func (d *Dialect) Connect(ctx context.Context, dsn string) (driverapi.Conn, error) {
	conn, err := d.driver.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if hookErr := d.OnConnect()(conn); hookErr != nil {
		if closeErr := conn.Close(ctx); closeErr != nil && d.logger != nil {
			d.logger.Warn(logMsgCloseAfterHookFailed, logAttrError, closeErr.Error())
		}

		return nil, hookErr
	}

	return conn, nil
}

// Initialize performs the per-connection type-system setup that needs a live
// session: it looks up hstore metadata and, when present, registers the
// hstore loader for this and subsequent connections. Initialize is the last
// step of setup and must complete before the dialect is shared.
func (d *Dialect) Initialize(ctx context.Context, conn driverapi.Conn) error {
	if !d.useNativeHstore {
		return nil
	}

	info, err := conn.TypeInfo(ctx, "hstore")
	if err != nil {
		return err
	}

	d.hasNativeHstore = info != nil
	if info != nil {
		d.adapters.RegisterLoader("hstore", hstoreLoader)
	}

	return nil
}

// HasNativeHstore reports whether Initialize found hstore support.
func (d *Dialect) HasNativeHstore() bool {
	return d.hasNativeHstore
}

func (d *Dialect) buildAdaptersMap() *pgtypes.Map {
	adapters := pgtypes.NewMap()

	if !d.nativeInet {
		adapters.RegisterLoader("inet", pgtypes.TextLoader)
		adapters.RegisterLoader("cidr", pgtypes.TextLoader)
	}

	if d.jsonSerializer != nil {
		adapters.SetJSONEncoder(d.jsonSerializer)
	}

	if d.jsonDeserializer != nil {
		adapters.SetJSONDecoder(d.jsonDeserializer)
	}

	return adapters
}

func hstoreLoader(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = val
		}
		return out, nil
	default:
		return v, nil
	}
}

func parseDriverVersion(raw string) ([3]int, error) {
	match := versionPattern.FindStringSubmatch(raw)
	if match == nil {
		return [3]int{}, fmt.Errorf("%w: %q", ErrInvalidDriverVersion, raw)
	}

	var version [3]int
	for i, group := range match[1:] {
		if group == "" {
			break
		}

		n, err := strconv.Atoi(group)
		if err != nil {
			return [3]int{}, fmt.Errorf("%w: %q", ErrInvalidDriverVersion, raw)
		}

		version[i] = n
	}

	return version, nil
}

func versionLess(a, b [3]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}
