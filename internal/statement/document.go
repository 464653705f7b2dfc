// Package statement reads statement documents written in YAML and turns
// them into sqlast trees for the assembler.
//
// A document holds exactly one of select, insert, update or delete:
//
//	select:
//	  columns: [o.id, {func: count, args: ["*"], as: lines}]
//	  from: [shop.orders o]
//	  joins:
//	    - {type: left, table: shop.order_lines l, on: {conditions: [{column: l.order_id, ref: o.id}]}}
//	  where: {conditions: [{column: o.status, op: "=", value: open}]}
//	  group_by: [o.id]
//	  order_by: [o.id desc]
//	  limit: 10
package statement

import (
	"gopkg.in/yaml.v3"
)

// Document is one YAML document.
type Document struct {
	Select *Query     `yaml:"select"`
	Insert *InsertDoc `yaml:"insert"`
	Update *UpdateDoc `yaml:"update"`
	Delete *DeleteDoc `yaml:"delete"`
}

// Query describes a SELECT.
type Query struct {
	Distinct bool        `yaml:"distinct"`
	Columns  []Expr      `yaml:"columns"`
	From     []FromEntry `yaml:"from"`
	Joins    []JoinDoc   `yaml:"joins"`
	Where    *WhereDoc   `yaml:"where"`
	GroupBy  []Expr      `yaml:"group_by"`
	Having   *WhereDoc   `yaml:"having"`
	Union    []UnionDoc  `yaml:"union"`
	OrderBy  []string    `yaml:"order_by"`
	Offset   *int        `yaml:"offset"`
	Limit    *int        `yaml:"limit"`
}

// Expr is an expression. A plain string is a column reference.
type Expr struct {
	Column   string `yaml:"column"`
	Raw      string `yaml:"raw"`
	Param    any    `yaml:"param"`
	Literal  any    `yaml:"literal"`
	Func     string `yaml:"func"`
	Args     []Expr `yaml:"args"`
	Distinct bool   `yaml:"distinct"`
	Select   *Query `yaml:"select"`
	As       string `yaml:"as"`
}

func (e *Expr) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		e.Column = value.Value
		return nil
	}
	type plain Expr
	return value.Decode((*plain)(e))
}

// Value is an expression in a value position. A plain scalar is bound as a
// parameter.
type Value struct {
	Expr
}

func (v *Value) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var scalar any
		if err := value.Decode(&scalar); err != nil {
			return err
		}
		v.Expr = Expr{Param: scalar}
		if scalar == nil {
			v.Expr = Expr{Raw: "NULL"}
		}
		return nil
	}
	return value.Decode(&v.Expr)
}

// FromEntry is a FROM list entry. A plain string is parsed as
// `[schema.]table [[AS] alias]`.
type FromEntry struct {
	Table  string `yaml:"table"`
	Select *Query `yaml:"select"`
	As     string `yaml:"as"`
}

func (f *FromEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		f.Table = value.Value
		return nil
	}
	type plain FromEntry
	return value.Decode((*plain)(f))
}

// JoinDoc is a joined table.
type JoinDoc struct {
	Type  string    `yaml:"type"`
	Table FromEntry `yaml:"table"`
	On    *WhereDoc `yaml:"on"`
}

// UnionDoc appends a query to a compound select.
type UnionDoc struct {
	All    bool   `yaml:"all"`
	Select *Query `yaml:"select"`
}

// WhereDoc is a predicate tree.
type WhereDoc struct {
	Op         string         `yaml:"op"`
	Not        bool           `yaml:"not"`
	Conditions []ConditionDoc `yaml:"conditions"`
	Groups     []WhereDoc     `yaml:"groups"`
}

// ConditionDoc compares a column, or Left, with one of Value, Ref, Raw or
// Select. Op defaults to "=".
type ConditionDoc struct {
	Column string `yaml:"column"`
	Left   *Expr  `yaml:"left"`
	Op     string `yaml:"op"`
	Value  any    `yaml:"value"`
	Ref    string `yaml:"ref"`
	Raw    string `yaml:"raw"`
	Select *Query `yaml:"select"`
}

// InsertDoc describes an INSERT. Without values or select the row gets
// default values.
type InsertDoc struct {
	Table   string   `yaml:"table"`
	Columns []string `yaml:"columns"`
	Values  []Value  `yaml:"values"`
	Select  *Query   `yaml:"select"`
}

// AssignmentDoc is one SET entry.
type AssignmentDoc struct {
	Column string `yaml:"column"`
	Value  Value  `yaml:"value"`
}

// UpdateDoc describes an UPDATE.
type UpdateDoc struct {
	Table string          `yaml:"table"`
	Set   []AssignmentDoc `yaml:"set"`
	Where *WhereDoc       `yaml:"where"`
}

// DeleteDoc describes a DELETE.
type DeleteDoc struct {
	Table string    `yaml:"table"`
	Where *WhereDoc `yaml:"where"`
}
