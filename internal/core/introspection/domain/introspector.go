package domain

import (
	"context"
	"errors"
	"fmt"
)

// Introspector reads catalog metadata from a database.
type Introspector interface {
	// TableInfos lists the tables and views of the requested kinds.
	TableInfos(ctx context.Context, mon ProgressMonitor, kinds TableTypes) ([]TableInfo, error)

	// TableMetadata describes the given tables.
	TableMetadata(ctx context.Context, mon ProgressMonitor, flags MetadataFlags, tables ...TableInfo) ([]TableMetadata, error)

	// EntityRelationshipModel derives foreign key relationships among tables.
	EntityRelationshipModel(ctx context.Context, mon ProgressMonitor, tables ...TableInfo) (*EntityRelationshipModel, error)

	// StoredProcedures lists procedures with their parameters and results.
	StoredProcedures(ctx context.Context, mon ProgressMonitor) ([]StoredProcedure, error)
}

// ProgressMonitor receives progress reports from long running calls.
// Cancellation is carried by the context, not the monitor.
type ProgressMonitor interface {
	BeginTask(name string, total int)
	SetTaskName(name string)
	Worked(done int)
	Done()
}

// UnknownTotal is passed to BeginTask when the amount of work is unknown.
const UnknownTotal = -1

// NopMonitor discards progress reports.
type NopMonitor struct{}

func (NopMonitor) BeginTask(string, int) {}
func (NopMonitor) SetTaskName(string)    {}
func (NopMonitor) Worked(int)            {}
func (NopMonitor) Done()                 {}

// Monitor returns mon, or a NopMonitor when mon is nil.
func Monitor(mon ProgressMonitor) ProgressMonitor {
	if mon == nil {
		return NopMonitor{}
	}
	return mon
}

var (
	ErrConnectionFailed    = errors.New("failed to connect to database")
	ErrIntrospectionFailed = errors.New("database introspection failed")
	ErrNoColumns           = errors.New("table has no columns")
)

// DataSourceError ties a failure to the data source it happened on.
type DataSourceError struct {
	DataSource string
	Op         string
	Err        error
}

func (e *DataSourceError) Error() string {
	if e.DataSource == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.DataSource, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}
