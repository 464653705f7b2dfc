// Package domain defines the engine-independent metadata model produced by
// catalog introspection.
package domain

import (
	"sort"
	"strings"

	"github.com/satishbabariya/ingres-go/internal/core/types"
)

// TableType is the kind of a catalog relation.
type TableType int

const (
	// TableTypeTable is a base table.
	TableTypeTable TableType = iota + 1
	// TableTypeView is a view.
	TableTypeView
)

func (t TableType) String() string {
	switch t {
	case TableTypeTable:
		return "TABLE"
	case TableTypeView:
		return "VIEW"
	default:
		return "UNKNOWN"
	}
}

// TableTypes is a set of table kinds.
type TableTypes uint8

const (
	// Tables selects base tables.
	Tables TableTypes = 1 << iota
	// Views selects views.
	Views

	// AllTableTypes selects tables and views.
	AllTableTypes = Tables | Views
)

// Has reports whether t is in the set.
func (s TableTypes) Has(t TableType) bool {
	switch t {
	case TableTypeTable:
		return s&Tables != 0
	case TableTypeView:
		return s&Views != 0
	}
	return false
}

// TableInfo identifies a table or view.
type TableInfo struct {
	Type   TableType
	Schema string
	Name   string
}

// QualifiedName returns schema.name, or just the name without a schema.
func (t TableInfo) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// SortTableInfos orders infos by schema, then name.
func SortTableInfos(infos []TableInfo) {
	sort.SliceStable(infos, func(i, j int) bool {
		if c := strings.Compare(infos[i].Schema, infos[j].Schema); c != 0 {
			return c < 0
		}
		return infos[i].Name < infos[j].Name
	})
}

// ColumnMetadata describes one column. Values are built once and not
// modified afterwards.
type ColumnMetadata struct {
	TableName     string
	Name          string
	Caption       string
	Type          types.SQLType
	Length        int
	Scale         int
	DefaultValue  any
	Nullable      bool
	AutoIncrement bool
}

// IndexType is the kind of an index.
type IndexType int

const (
	// IndexPrimaryKey is the primary key.
	IndexPrimaryKey IndexType = iota + 1
	// IndexUnique is a unique index.
	IndexUnique
	// IndexNormal is a non-unique index.
	IndexNormal
)

func (t IndexType) String() string {
	switch t {
	case IndexPrimaryKey:
		return "PRIMARY_KEY"
	case IndexUnique:
		return "UNIQUE"
	case IndexNormal:
		return "NORMAL"
	default:
		return "UNKNOWN"
	}
}

// IndexInfo identifies an index by name and kind. It is comparable and used
// as a map key.
type IndexInfo struct {
	Name string
	Type IndexType
}

// Index is an index with its columns in key order.
type Index struct {
	IndexInfo
	Columns []string
}

// HasColumn reports whether name is one of the index columns.
func (i Index) HasColumn(name string) bool {
	for _, c := range i.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// UnknownRowCount marks a row count that was not determined.
const UnknownRowCount int64 = -1

// TableMetadata is the full description of one table or view.
type TableMetadata struct {
	Table    TableInfo
	Columns  []ColumnMetadata
	Indexes  []Index
	RowCount int64
}

// Column returns the column with the given name.
func (m TableMetadata) Column(name string) (ColumnMetadata, bool) {
	for _, c := range m.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnMetadata{}, false
}

// PrimaryKey returns the primary key index, if any.
func (m TableMetadata) PrimaryKey() (Index, bool) {
	for _, idx := range m.Indexes {
		if idx.Type == IndexPrimaryKey {
			return idx, true
		}
	}
	return Index{}, false
}

// MetadataFlags select optional parts of table metadata.
type MetadataFlags uint8

const (
	// Indices requests primary keys and indexes.
	Indices MetadataFlags = 1 << iota
)
