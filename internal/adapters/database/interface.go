// Package database defines database adapter interfaces.
package database

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotConnected is returned when an adapter is used before Connect.
var ErrNotConnected = errors.New("database not connected")

// Adapter opens and owns a connection pool for one data source.
type Adapter interface {
	// Connect opens the pool and verifies it with a ping.
	Connect(ctx context.Context) error

	// Disconnect closes the pool.
	Disconnect(ctx context.Context) error

	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// DB returns the open pool, or nil before Connect.
	DB() *sql.DB

	// DataSource returns a display name for the data source without
	// credentials.
	DataSource() string

	// GetDialect returns the SQL dialect.
	GetDialect() SQLDialect
}

// SQLDialect represents a SQL dialect.
type SQLDialect string

const (
	// Ingres dialect.
	Ingres SQLDialect = "ingres"
)

// Config holds database connection configuration.
type Config struct {
	// Driver is the database/sql driver name.
	Driver         string
	URL            string
	MaxConnections int
	MaxIdleTime    int // seconds
	ConnectTimeout int // seconds
}
