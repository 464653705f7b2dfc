// Package sqlast is the dialect-neutral statement model rendered by the
// assembler.
package sqlast

import "strings"

// Owner is something a column reference can be qualified by.
type Owner interface {
	// QualifierAlias returns the correlation name, or "" when there is none.
	QualifierAlias() string
	String() string
}

// TableRef is an entry of a FROM list.
type TableRef interface {
	Owner
	tableRef()
}

// Expr is a renderable expression.
type Expr interface {
	exprNode()
}

// Table is a base table reference.
type Table struct {
	Schema string
	Name   string
	Alias  string
}

// NewTable builds a table reference.
func NewTable(schema, name, alias string) *Table {
	return &Table{Schema: schema, Name: name, Alias: alias}
}

func (t *Table) QualifierAlias() string { return t.Alias }

func (t *Table) String() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

func (*Table) tableRef() {}

// Col returns a column reference owned by the table.
func (t *Table) Col(name string) *Column {
	return &Column{Owner: t, Name: name}
}

// Derived is a sub-select used as a FROM entry.
type Derived struct {
	Query *Select
	Alias string
}

func (d *Derived) QualifierAlias() string { return d.Alias }
func (d *Derived) String() string         { return d.Alias }
func (*Derived) tableRef()                {}

// Col returns a column reference owned by the derived table.
func (d *Derived) Col(name string) *Column {
	return &Column{Owner: d, Name: name}
}

// Ref is a free-standing qualifier that is rendered verbatim.
type Ref string

func (r Ref) QualifierAlias() string { return "" }
func (r Ref) String() string         { return string(r) }

// Wildcard is the column name selecting every column.
const Wildcard = "*"

// Column is a column reference. Owner may be nil.
type Column struct {
	Owner Owner
	Name  string
}

// Star returns the wildcard column of owner.
func Star(owner Owner) *Column {
	return &Column{Owner: owner, Name: Wildcard}
}

// IsWildcard reports whether the column selects every column.
func (c *Column) IsWildcard() bool {
	return c.Name == Wildcard
}

func (*Column) exprNode() {}

// Raw is SQL text inserted as is.
type Raw struct {
	SQL string
}

func (Raw) exprNode() {}

// Param is a bind argument rendered as a placeholder.
type Param struct {
	Value interface{}
}

func (Param) exprNode() {}

// Literal is a constant rendered inline.
type Literal struct {
	Value interface{}
}

func (Literal) exprNode() {}

// Aliased renders Expr AS Alias in select lists.
type Aliased struct {
	Expr  Expr
	Alias string
}

func (Aliased) exprNode() {}

// Func is a function call such as COUNT(*).
type Func struct {
	Name     string
	Args     []Expr
	Distinct bool
}

func (Func) exprNode() {}

// OrderBy is a single ORDER BY term.
type OrderBy struct {
	Expr      Expr
	Direction string // "ASC" or "DESC"
}

// Join is a joined FROM entry.
type Join struct {
	Type  string // "INNER", "LEFT", "RIGHT", "FULL", "CROSS"
	Table TableRef
	On    *WhereClause
}

// Union appends another SELECT to a compound query.
type Union struct {
	All    bool
	Select *Select
}

// Select is a SELECT statement.
type Select struct {
	Distinct bool
	Items    []Expr
	From     []TableRef
	Joins    []Join
	Where    *WhereClause
	GroupBy  []Expr
	Having   *WhereClause
	Unions   []Union
	OrderBy  []OrderBy
	Offset   *int
	Limit    *int
}

func (*Select) exprNode() {}

// Insert is an INSERT statement. At most one of Values and Select is set;
// with neither the row is inserted with default values.
type Insert struct {
	Table   *Table
	Columns []*Column
	Values  []Expr
	Select  *Select
}

// Assignment is one SET entry of an UPDATE.
type Assignment struct {
	Column *Column
	Value  Expr
}

// Update is an UPDATE statement.
type Update struct {
	Table *Table
	Set   []Assignment
	Where *WhereClause
}

// Delete is a DELETE statement.
type Delete struct {
	Table *Table
	Where *WhereClause
}

// Int returns a pointer to n, for Offset and Limit.
func Int(n int) *int {
	return &n
}

// NormalizeDirection maps any spelling of a sort direction onto ASC or DESC.
func NormalizeDirection(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "desc") {
		return "DESC"
	}
	return "ASC"
}
