// Package ingres implements catalog introspection for Ingres.
package ingres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/satishbabariya/ingres-go/internal/core/introspection/domain"
	"github.com/satishbabariya/ingres-go/internal/debug"
)

var _ domain.Introspector = (*Introspector)(nil)

// Introspector reads the Ingres system catalogs. It holds no state besides
// its configuration and is safe for concurrent use.
type Introspector struct {
	db         *sql.DB
	user       string
	schema     string
	dataSource string
	logger     *slog.Logger
}

// Option configures an Introspector.
type Option func(*Introspector)

// WithUser sets the connecting user. Catalog rows are filtered by this owner
// unless a schema is set.
func WithUser(user string) Option {
	return func(i *Introspector) { i.user = user }
}

// WithSchema overrides the owner used for catalog lookups and reported on
// table infos.
func WithSchema(schema string) Option {
	return func(i *Introspector) { i.schema = schema }
}

// WithDataSource names the data source in errors.
func WithDataSource(name string) Option {
	return func(i *Introspector) { i.dataSource = name }
}

// WithLogger sets the logger. The global debug logger is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(i *Introspector) { i.logger = l }
}

// New creates an introspector on db.
func New(db *sql.DB, opts ...Option) *Introspector {
	i := &Introspector{db: db}
	for _, opt := range opts {
		opt(i)
	}
	if i.logger == nil {
		i.logger = debug.Logger()
	}
	i.logger = i.logger.With("component", "ingres-introspector")
	return i
}

// owner is the catalog owner name bound to catalog queries.
func (i *Introspector) owner() string {
	if i.schema != "" {
		return i.schema
	}
	return i.user
}

// schemaName is the schema reported on table infos.
func (i *Introspector) schemaName() string {
	if i.schema != "" {
		return i.schema
	}
	return strings.ToUpper(i.user)
}

func (i *Introspector) fail(op string, err error) error {
	return &domain.DataSourceError{
		DataSource: i.dataSource,
		Op:         op,
		Err:        fmt.Errorf("%w: %w", domain.ErrIntrospectionFailed, err),
	}
}

// conn checks out the single connection used for one introspection call.
func (i *Introspector) conn(ctx context.Context) (*sql.Conn, error) {
	c, err := i.db.Conn(ctx)
	if err != nil {
		return nil, &domain.DataSourceError{
			DataSource: i.dataSource,
			Op:         "connect",
			Err:        fmt.Errorf("%w: %w", domain.ErrConnectionFailed, err),
		}
	}
	return c, nil
}

func (i *Introspector) query(ctx context.Context, c *sql.Conn, trim bool, query string, args ...any) (*rowSet, error) {
	i.logger.Debug("catalog query", "sql", query, "args", args)

	rows, err := c.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRowSet(ctx, rows, trim)
}

var releasePattern = regexp.MustCompile(`\d+(\.\d+){1,2}`)

// ServerVersion returns the release of the connected server, parsed from
// dbmsinfo('_version'), e.g. "II 10.2.0 (a64.lnx/100)".
func (i *Introspector) ServerVersion(ctx context.Context) (*version.Version, error) {
	var raw string
	if err := i.db.QueryRowContext(ctx, `SELECT dbmsinfo('_version')`).Scan(&raw); err != nil {
		return nil, i.fail("server version", err)
	}

	release := releasePattern.FindString(raw)
	if release == "" {
		return nil, i.fail("server version", fmt.Errorf("unrecognized version string %q", raw))
	}

	v, err := version.NewVersion(release)
	if err != nil {
		return nil, i.fail("server version", err)
	}
	return v, nil
}

var identityRelease = version.Must(version.NewVersion("10.0"))

// SupportsIdentityColumns reports whether the server has identity columns,
// which appeared in Ingres 10.
func (i *Introspector) SupportsIdentityColumns(ctx context.Context) (bool, error) {
	v, err := i.ServerVersion(ctx)
	if err != nil {
		return false, err
	}
	return v.GreaterThanOrEqual(identityRelease), nil
}
