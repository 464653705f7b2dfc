// Package ingres implements the Ingres database adapter. Ingres is reached
// through its ODBC driver; the odbc database/sql driver must be registered
// by the binary.
package ingres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/satishbabariya/ingres-go/internal/adapters/database"
	"github.com/satishbabariya/ingres-go/internal/core/introspection/domain"
	"github.com/satishbabariya/ingres-go/internal/debug"
)

const (
	// DriverName is the database/sql driver used for Ingres.
	DriverName = "odbc"
	// ODBCDriver is the name the Ingres ODBC driver is installed under.
	ODBCDriver = "Ingres"
	// DefaultPort is the default Ingres listen port.
	DefaultPort = 21071
	// DefaultUser is the default login.
	DefaultUser = "admin"
)

var ErrMissingSettings = errors.New("host and database are required")

// Settings describe how to reach an Ingres server.
type Settings struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	// URLExtension is appended to the connection string as is.
	URLExtension string
	// DataSourceName replaces the generated connection string when set.
	DataSourceName string
}

// Validate checks that a connection string can be built.
func (s Settings) Validate() error {
	if s.DataSourceName != "" {
		return nil
	}
	if s.Host == "" || s.Database == "" {
		return ErrMissingSettings
	}
	return nil
}

func (s Settings) port() int {
	if s.Port <= 0 {
		return DefaultPort
	}
	return s.Port
}

// DSN returns the ODBC connection string. Credentials are only included
// when a user or password is set.
func (s Settings) DSN() string {
	if s.DataSourceName != "" {
		return s.DataSourceName
	}

	var b strings.Builder
	server := fmt.Sprintf("@%s,tcp_ip,%d", s.Host, s.port())
	fmt.Fprintf(&b, "Driver={%s};Server=%s;Database=%s;", ODBCDriver, quoteODBC(server), quoteODBC(s.Database))
	if s.User != "" || s.Password != "" {
		fmt.Fprintf(&b, "UID=%s;PWD=%s;", quoteODBC(s.User), quoteODBC(s.Password))
	}
	if ext := strings.TrimPrefix(s.URLExtension, ";"); ext != "" {
		b.WriteString(ext)
		if !strings.HasSuffix(ext, ";") {
			b.WriteByte(';')
		}
	}
	return b.String()
}

// quoteODBC braces a connection string value that would otherwise end the
// attribute or be trimmed by the driver manager. A closing brace inside
// braces is doubled.
func quoteODBC(v string) string {
	if !strings.ContainsAny(v, ";{}=") && strings.TrimSpace(v) == v {
		return v
	}
	return "{" + strings.ReplaceAll(v, "}", "}}") + "}"
}

// DisplayURL names the data source in messages. It never carries
// credentials.
func (s Settings) DisplayURL() string {
	if s.Host == "" && s.DataSourceName != "" {
		return "ingres://dsn"
	}
	return "ingres://" + s.Host + ":" + strconv.Itoa(s.port()) + "/" + s.Database
}

// Adapter implements database.Adapter for Ingres.
type Adapter struct {
	db       *sql.DB
	config   database.Config
	settings Settings
}

// NewAdapter creates an adapter. The connection string is built from
// settings; config supplies the driver and pool limits.
func NewAdapter(settings Settings, config database.Config) (*Adapter, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if config.Driver == "" {
		config.Driver = DriverName
	}
	config.URL = settings.DSN()

	return &Adapter{
		config:   config,
		settings: settings,
	}, nil
}

// Connect opens the pool and pings the server.
func (a *Adapter) Connect(ctx context.Context) error {
	db, err := sql.Open(a.config.Driver, a.config.URL)
	if err != nil {
		return a.connectError(err)
	}

	if a.config.MaxConnections > 0 {
		db.SetMaxOpenConns(a.config.MaxConnections)
		db.SetMaxIdleConns(max(a.config.MaxConnections/2, 1))
	}
	db.SetConnMaxIdleTime(time.Duration(a.config.MaxIdleTime) * time.Second)

	if a.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(a.config.ConnectTimeout)*time.Second)
		defer cancel()
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return a.connectError(err)
	}

	debug.Debug("connected", "data_source", a.DataSource(), "driver", a.config.Driver)
	a.db = db
	return nil
}

func (a *Adapter) connectError(err error) error {
	return &domain.DataSourceError{
		DataSource: a.DataSource(),
		Op:         "connect",
		Err:        fmt.Errorf("%w: %w", domain.ErrConnectionFailed, err),
	}
}

// Disconnect closes the database connection.
func (a *Adapter) Disconnect(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// Ping checks if the database connection is alive.
func (a *Adapter) Ping(ctx context.Context) error {
	if a.db == nil {
		return database.ErrNotConnected
	}
	return a.db.PingContext(ctx)
}

func (a *Adapter) DB() *sql.DB {
	return a.db
}

func (a *Adapter) DataSource() string {
	return a.settings.DisplayURL()
}

// GetDialect returns the SQL dialect.
func (a *Adapter) GetDialect() database.SQLDialect {
	return database.Ingres
}

// Ensure Adapter implements the database.Adapter interface.
var _ database.Adapter = (*Adapter)(nil)
